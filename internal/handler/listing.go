package handler

import (
	"errors"
	"net/http"

	"github.com/wanderlust/web/internal/middleware"
	"github.com/wanderlust/web/internal/model"
	"github.com/wanderlust/web/internal/service"
	"github.com/wanderlust/web/internal/session"
	"github.com/wanderlust/web/internal/upload"
)

// ListingHandler handles listing pages and mutations
type ListingHandler struct {
	listings *service.ListingService
	sessions *session.Manager
	uploads  upload.Store
	renderer *Renderer
}

// NewListingHandler creates a new listing handler
func NewListingHandler(listings *service.ListingService, sessions *session.Manager, uploads upload.Store, renderer *Renderer) *ListingHandler {
	return &ListingHandler{
		listings: listings,
		sessions: sessions,
		uploads:  uploads,
		renderer: renderer,
	}
}

// Index handles GET /listings
func (h *ListingHandler) Index(w http.ResponseWriter, r *http.Request) {
	listings, err := h.listings.List(r.Context())
	if err != nil {
		h.renderer.Error(w, r, h.sessions, MapServiceError(err))
		return
	}

	data := newPageData(w, r, h.sessions, "All Listings", listings)
	h.renderer.Render(w, http.StatusOK, "listings/index", data)
}

// Show handles GET /listings/{id}
func (h *ListingHandler) Show(w http.ResponseWriter, r *http.Request) {
	id := "listing:" + r.PathValue("id")

	details, err := h.listings.Get(r.Context(), id)
	if errors.Is(err, service.ErrListingNotFound) {
		h.sessions.Error(w, r, "Listing you requested for does not exist!")
		http.Redirect(w, r, "/listings", http.StatusFound)
		return
	}
	if err != nil {
		h.renderer.Error(w, r, h.sessions, MapServiceError(err))
		return
	}

	data := newPageData(w, r, h.sessions, details.Listing.Title, details)
	h.renderer.Render(w, http.StatusOK, "listings/show", data)
}

// New handles GET /listings/new
func (h *ListingHandler) New(w http.ResponseWriter, r *http.Request) {
	data := newPageData(w, r, h.sessions, "New Listing", nil)
	h.renderer.Render(w, http.StatusOK, "listings/new", data)
}

// Create handles POST /listings
func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, image, fields, err := parseListingForm(r, h.uploads)
	if err != nil {
		h.renderer.Error(w, r, h.sessions, model.NewInternalError())
		return
	}
	if len(fields) > 0 {
		h.renderer.Error(w, r, h.sessions, model.NewValidationError(fields))
		return
	}

	userID := middleware.GetUserID(r.Context())
	if _, err := h.listings.Create(r.Context(), userID, req, image); err != nil {
		h.renderer.Error(w, r, h.sessions, MapServiceError(err))
		return
	}

	h.sessions.Success(w, r, "New listing created successfully!")
	http.Redirect(w, r, "/listings", http.StatusFound)
}

// Edit handles GET /listings/{id}/edit
func (h *ListingHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := "listing:" + r.PathValue("id")

	details, err := h.listings.Get(r.Context(), id)
	if errors.Is(err, service.ErrListingNotFound) {
		h.sessions.Error(w, r, "Listing you requested for does not exist!")
		http.Redirect(w, r, "/listings", http.StatusFound)
		return
	}
	if err != nil {
		h.renderer.Error(w, r, h.sessions, MapServiceError(err))
		return
	}

	if details.Listing.OwnerID != middleware.GetUserID(r.Context()) {
		h.sessions.Error(w, r, "You are not the owner of this listing")
		http.Redirect(w, r, "/listings/"+r.PathValue("id"), http.StatusFound)
		return
	}

	data := newPageData(w, r, h.sessions, "Edit Listing", details.Listing)
	h.renderer.Render(w, http.StatusOK, "listings/edit", data)
}

// Update handles PUT /listings/{id}
func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := "listing:" + r.PathValue("id")

	req, image, fields, err := parseListingForm(r, h.uploads)
	if err != nil {
		h.renderer.Error(w, r, h.sessions, model.NewInternalError())
		return
	}
	if len(fields) > 0 {
		h.renderer.Error(w, r, h.sessions, model.NewValidationError(fields))
		return
	}

	userID := middleware.GetUserID(r.Context())
	updated, prev, err := h.listings.Update(r.Context(), userID, id, req, image)
	if errors.Is(err, service.ErrNotListingOwner) {
		h.sessions.Error(w, r, "You are not the owner of this listing")
		http.Redirect(w, r, "/listings/"+r.PathValue("id"), http.StatusFound)
		return
	}
	if err != nil {
		h.renderer.Error(w, r, h.sessions, MapServiceError(err))
		return
	}

	// A replaced upload would otherwise linger on disk forever
	if h.uploads != nil && prev.Filename != updated.Image.Filename && prev.Filename != model.DefaultImageFilename {
		_ = h.uploads.Remove(prev.Filename)
	}

	h.sessions.Success(w, r, "Listing Updated!")
	http.Redirect(w, r, "/listings/"+r.PathValue("id"), http.StatusFound)
}

// Delete handles DELETE /listings/{id}
func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := "listing:" + r.PathValue("id")

	userID := middleware.GetUserID(r.Context())
	listing, err := h.listings.Delete(r.Context(), userID, id)
	if errors.Is(err, service.ErrNotListingOwner) {
		h.sessions.Error(w, r, "You are not the owner of this listing")
		http.Redirect(w, r, "/listings/"+r.PathValue("id"), http.StatusFound)
		return
	}
	if err != nil {
		h.renderer.Error(w, r, h.sessions, MapServiceError(err))
		return
	}

	// Clean up the stored file if the image was an upload
	if h.uploads != nil && listing.Image.Filename != model.DefaultImageFilename {
		_ = h.uploads.Remove(listing.Image.Filename)
	}

	h.sessions.Success(w, r, "Listing Deleted!")
	http.Redirect(w, r, "/listings", http.StatusFound)
}
