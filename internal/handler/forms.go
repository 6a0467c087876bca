package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/wanderlust/web/internal/model"
	"github.com/wanderlust/web/internal/upload"
)

const maxUploadSize = 32 << 20

// parseListingForm reads a listing submission, storing an uploaded image
// file if one was attached. Numeric parse failures come back as field
// errors alongside the validation errors.
func parseListingForm(r *http.Request, uploads upload.Store) (*model.CreateListingRequest, *model.ListingImage, []model.FieldError, error) {
	var fields []model.FieldError

	// Listing forms are multipart because of the image file input.
	// ParseMultipartForm is a no-op if the body was already parsed.
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			return nil, nil, nil, err
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, nil, nil, err
	}

	req := &model.CreateListingRequest{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Location:    strings.TrimSpace(r.FormValue("location")),
		Country:     strings.TrimSpace(r.FormValue("country")),
		ImageURL:    strings.TrimSpace(r.FormValue("image_url")),
	}

	priceRaw := strings.TrimSpace(r.FormValue("price"))
	switch {
	case priceRaw == "":
		fields = append(fields, model.FieldError{Field: "price", Message: "price is required"})
	default:
		price, err := strconv.ParseFloat(priceRaw, 64)
		if err != nil {
			fields = append(fields, model.FieldError{Field: "price", Message: "price must be a number"})
		} else {
			req.Price = price
		}
	}

	fields = mergeFieldErrors(fields, req.Validate())

	// Store the upload only for a valid submission, so a rejected form
	// never leaves an orphaned file behind.
	var image *model.ListingImage
	if len(fields) == 0 {
		img, err := saveUploadedImage(r, uploads)
		if err != nil {
			return nil, nil, nil, err
		}
		image = img
	}

	return req, image, fields, nil
}

// saveUploadedImage stores the "image" file field if present
func saveUploadedImage(r *http.Request, uploads upload.Store) (*model.ListingImage, error) {
	if uploads == nil || r.MultipartForm == nil {
		return nil, nil
	}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	filename, url, err := uploads.Save(file, header.Filename)
	if err != nil {
		return nil, err
	}
	return &model.ListingImage{Filename: filename, URL: url}, nil
}

// parseReviewForm reads a review submission
func parseReviewForm(r *http.Request) (*model.CreateReviewRequest, []model.FieldError, error) {
	if err := r.ParseForm(); err != nil {
		return nil, nil, err
	}

	var fields []model.FieldError

	req := &model.CreateReviewRequest{
		Comment: strings.TrimSpace(r.FormValue("comment")),
	}

	ratingRaw := strings.TrimSpace(r.FormValue("rating"))
	if ratingRaw == "" {
		fields = append(fields, model.FieldError{Field: "rating", Message: "rating is required"})
	} else {
		rating, err := strconv.Atoi(ratingRaw)
		if err != nil {
			fields = append(fields, model.FieldError{Field: "rating", Message: "rating must be a number"})
		} else {
			req.Rating = rating
		}
	}

	fields = mergeFieldErrors(fields, req.Validate())
	return req, fields, nil
}

// mergeFieldErrors appends validation errors, skipping fields that already
// failed parsing so the user sees one message per field.
func mergeFieldErrors(parsed, validated []model.FieldError) []model.FieldError {
	seen := make(map[string]bool, len(parsed))
	for _, fe := range parsed {
		seen[fe.Field] = true
	}
	for _, fe := range validated {
		if !seen[fe.Field] {
			parsed = append(parsed, fe)
		}
	}
	return parsed
}
