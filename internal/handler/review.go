package handler

import (
	"errors"
	"net/http"

	"github.com/wanderlust/web/internal/middleware"
	"github.com/wanderlust/web/internal/model"
	"github.com/wanderlust/web/internal/service"
	"github.com/wanderlust/web/internal/session"
)

// ReviewHandler handles review mutations nested under listings
type ReviewHandler struct {
	reviews  *service.ReviewService
	sessions *session.Manager
	renderer *Renderer
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviews *service.ReviewService, sessions *session.Manager, renderer *Renderer) *ReviewHandler {
	return &ReviewHandler{
		reviews:  reviews,
		sessions: sessions,
		renderer: renderer,
	}
}

// Create handles POST /listings/{id}/reviews
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	listingID := "listing:" + r.PathValue("id")

	req, fields, err := parseReviewForm(r)
	if err != nil {
		h.renderer.Error(w, r, h.sessions, model.NewInternalError())
		return
	}
	if len(fields) > 0 {
		h.renderer.Error(w, r, h.sessions, model.NewValidationError(fields))
		return
	}

	userID := middleware.GetUserID(r.Context())
	if _, err := h.reviews.Create(r.Context(), userID, listingID, req); err != nil {
		h.renderer.Error(w, r, h.sessions, MapServiceError(err))
		return
	}

	h.sessions.Success(w, r, "New Review created successfully!")
	http.Redirect(w, r, "/listings/"+r.PathValue("id"), http.StatusFound)
}

// Delete handles DELETE /listings/{id}/reviews/{reviewID}
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	listingID := "listing:" + r.PathValue("id")
	reviewID := "review:" + r.PathValue("reviewID")

	userID := middleware.GetUserID(r.Context())
	err := h.reviews.Delete(r.Context(), userID, listingID, reviewID)
	if errors.Is(err, service.ErrNotReviewAuthor) {
		h.sessions.Error(w, r, "You are not the author of this review")
		http.Redirect(w, r, "/listings/"+r.PathValue("id"), http.StatusFound)
		return
	}
	if err != nil {
		h.renderer.Error(w, r, h.sessions, MapServiceError(err))
		return
	}

	h.sessions.Success(w, r, "Review Deleted!")
	http.Redirect(w, r, "/listings/"+r.PathValue("id"), http.StatusFound)
}
