package service

import (
	"context"

	"github.com/wanderlust/web/internal/model"
)

// ReviewRepository defines the interface for review storage
type ReviewRepository interface {
	Create(ctx context.Context, listingID string, review *model.Review) error
	GetByID(ctx context.Context, id string) (*model.Review, error)
	Delete(ctx context.Context, listingID, reviewID string) error
}

// ListingGetter is the listing lookup the review service needs
type ListingGetter interface {
	GetByID(ctx context.Context, id string) (*model.Listing, error)
}

// ReviewService handles review operations and authorship checks
type ReviewService struct {
	reviewRepo  ReviewRepository
	listingRepo ListingGetter
}

// ReviewServiceConfig holds configuration for the review service
type ReviewServiceConfig struct {
	ReviewRepo  ReviewRepository
	ListingRepo ListingGetter
}

// NewReviewService creates a new review service
func NewReviewService(cfg ReviewServiceConfig) *ReviewService {
	return &ReviewService{
		reviewRepo:  cfg.ReviewRepo,
		listingRepo: cfg.ListingRepo,
	}
}

// Create adds a review to a listing, authored by the given user
func (s *ReviewService) Create(ctx context.Context, userID, listingID string, req *model.CreateReviewRequest) (*model.Review, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, ErrListingNotFound
	}

	review := &model.Review{
		Comment:  req.Comment,
		Rating:   req.Rating,
		AuthorID: userID,
	}

	if err := s.reviewRepo.Create(ctx, listing.ID, review); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete removes a review from a listing. Only the author may delete it.
func (s *ReviewService) Delete(ctx context.Context, userID, listingID, reviewID string) error {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return err
	}
	if listing == nil {
		return ErrListingNotFound
	}

	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review == nil {
		return ErrReviewNotFound
	}
	if review.AuthorID != userID {
		return ErrNotReviewAuthor
	}

	return s.reviewRepo.Delete(ctx, listing.ID, review.ID)
}
