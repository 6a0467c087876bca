package service

import (
	"context"

	"github.com/wanderlust/web/internal/model"
)

// ListingRepository defines the interface for listing storage
type ListingRepository interface {
	Create(ctx context.Context, listing *model.Listing) error
	List(ctx context.Context) ([]*model.Listing, error)
	GetByID(ctx context.Context, id string) (*model.Listing, error)
	GetDetails(ctx context.Context, id string) (*model.ListingDetails, error)
	Update(ctx context.Context, listing *model.Listing) error
	DeleteCascade(ctx context.Context, id string) error
}

// ListingService handles listing operations and ownership checks
type ListingService struct {
	listingRepo ListingRepository
}

// ListingServiceConfig holds configuration for the listing service
type ListingServiceConfig struct {
	ListingRepo ListingRepository
}

// NewListingService creates a new listing service
func NewListingService(cfg ListingServiceConfig) *ListingService {
	return &ListingService{listingRepo: cfg.ListingRepo}
}

// List retrieves all listings
func (s *ListingService) List(ctx context.Context) ([]*model.Listing, error) {
	return s.listingRepo.List(ctx)
}

// Get retrieves a listing with its owner and reviews resolved
func (s *ListingService) Get(ctx context.Context, id string) (*model.ListingDetails, error) {
	details, err := s.listingRepo.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if details == nil || details.Listing == nil {
		return nil, ErrListingNotFound
	}
	return details, nil
}

// Create creates a listing owned by the given user. When image is nil and
// the request carries no image URL, the placeholder image is used.
func (s *ListingService) Create(ctx context.Context, ownerID string, req *model.CreateListingRequest, image *model.ListingImage) (*model.Listing, error) {
	listing := &model.Listing{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Location:    req.Location,
		Country:     req.Country,
		Image:       resolveImage(req.ImageURL, image),
		OwnerID:     ownerID,
	}

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// Update modifies a listing. Only the owner may update it. A nil image and
// empty image URL keep the current image. The image the update replaced is
// returned alongside the listing so callers can clean up a stored file.
func (s *ListingService) Update(ctx context.Context, userID, id string, req *model.UpdateListingRequest, image *model.ListingImage) (*model.Listing, model.ListingImage, error) {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, model.ListingImage{}, err
	}
	if listing == nil {
		return nil, model.ListingImage{}, ErrListingNotFound
	}
	if listing.OwnerID != userID {
		return nil, model.ListingImage{}, ErrNotListingOwner
	}

	listing.Title = req.Title
	listing.Description = req.Description
	listing.Price = req.Price
	listing.Location = req.Location
	listing.Country = req.Country

	prev := listing.Image
	switch {
	case image != nil:
		listing.Image = *image
	case req.ImageURL != "" && req.ImageURL != listing.Image.URL:
		listing.Image = model.ListingImage{Filename: model.DefaultImageFilename, URL: req.ImageURL}
	}

	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return nil, model.ListingImage{}, err
	}
	return listing, prev, nil
}

// Delete removes a listing and all of its reviews. Only the owner may
// delete it. The deleted listing is returned so callers can clean up any
// stored image file.
func (s *ListingService) Delete(ctx context.Context, userID, id string) (*model.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, ErrListingNotFound
	}
	if listing.OwnerID != userID {
		return nil, ErrNotListingOwner
	}

	if err := s.listingRepo.DeleteCascade(ctx, id); err != nil {
		return nil, err
	}
	return listing, nil
}

func resolveImage(formURL string, uploaded *model.ListingImage) model.ListingImage {
	if uploaded != nil {
		return *uploaded
	}
	if formURL != "" {
		return model.ListingImage{Filename: model.DefaultImageFilename, URL: formURL}
	}
	return model.ListingImage{Filename: model.DefaultImageFilename, URL: model.DefaultImageURL}
}
