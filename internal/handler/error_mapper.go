package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/wanderlust/web/internal/model"
	"github.com/wanderlust/web/internal/service"
)

// MapServiceError converts a service error to the HTTPError rendered on the
// error page. This centralizes status mapping so all handlers agree.
func MapServiceError(err error) *model.HTTPError {
	if err == nil {
		return nil
	}

	switch {
	// ===== Not Found → 404 =====
	case errors.Is(err, service.ErrListingNotFound),
		errors.Is(err, service.ErrReviewNotFound):
		return model.NewNotFoundError(err.Error())

	// ===== Authorization → 403 =====
	case errors.Is(err, service.ErrNotListingOwner),
		errors.Is(err, service.ErrNotReviewAuthor):
		return &model.HTTPError{StatusCode: http.StatusForbidden, Message: err.Error()}

	// ===== Input problems → 400 =====
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordTooLong):
		return &model.HTTPError{StatusCode: http.StatusBadRequest, Message: err.Error()}

	// ===== Default → 500 =====
	default:
		slog.Error("unhandled service error", slog.Any("error", err))
		return model.NewInternalError()
	}
}
