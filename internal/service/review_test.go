package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/wanderlust/web/internal/model"
)

type mockReviewRepo struct {
	reviews   map[string]*model.Review
	byListing map[string][]string
	nextID    int
	createErr error
}

func newMockReviewRepo() *mockReviewRepo {
	return &mockReviewRepo{
		reviews:   make(map[string]*model.Review),
		byListing: make(map[string][]string),
	}
}

func (m *mockReviewRepo) Create(ctx context.Context, listingID string, review *model.Review) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	review.ID = fmt.Sprintf("review:%d", m.nextID)
	review.CreatedOn = time.Now()
	m.reviews[review.ID] = review
	m.byListing[listingID] = append(m.byListing[listingID], review.ID)
	return nil
}

func (m *mockReviewRepo) GetByID(ctx context.Context, id string) (*model.Review, error) {
	return m.reviews[id], nil
}

func (m *mockReviewRepo) Delete(ctx context.Context, listingID, reviewID string) error {
	delete(m.reviews, reviewID)
	ids := m.byListing[listingID]
	for i, id := range ids {
		if id == reviewID {
			m.byListing[listingID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

func setupReviewService() (*ReviewService, *mockReviewRepo, *mockListingRepo) {
	reviewRepo := newMockReviewRepo()
	listingRepo := newMockListingRepo()
	svc := NewReviewService(ReviewServiceConfig{
		ReviewRepo:  reviewRepo,
		ListingRepo: listingRepo,
	})
	return svc, reviewRepo, listingRepo
}

func seedListing(repo *mockListingRepo, ownerID string) *model.Listing {
	listing := &model.Listing{
		Title:       "Cozy Cabin",
		Description: "A cabin in the woods",
		Price:       120,
		Location:    "Lake Tahoe",
		Country:     "USA",
		OwnerID:     ownerID,
	}
	_ = repo.Create(context.Background(), listing)
	return listing
}

func TestReviewService_Create_Success(t *testing.T) {
	svc, reviewRepo, listingRepo := setupReviewService()
	ctx := context.Background()

	listing := seedListing(listingRepo, "user:owner")

	review, err := svc.Create(ctx, "user:reviewer", listing.ID, &model.CreateReviewRequest{
		Comment: "Wonderful stay",
		Rating:  5,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if review.AuthorID != "user:reviewer" {
		t.Errorf("expected author user:reviewer, got %s", review.AuthorID)
	}
	if review.Rating != 5 {
		t.Errorf("expected rating 5, got %d", review.Rating)
	}
	if len(reviewRepo.byListing[listing.ID]) != 1 {
		t.Error("review was not attached to the listing")
	}
}

func TestReviewService_Create_ListingNotFound(t *testing.T) {
	svc, _, _ := setupReviewService()

	_, err := svc.Create(context.Background(), "user:reviewer", "listing:missing", &model.CreateReviewRequest{
		Comment: "Wonderful stay",
		Rating:  5,
	})
	if !errors.Is(err, ErrListingNotFound) {
		t.Errorf("expected ErrListingNotFound, got %v", err)
	}
}

func TestReviewService_Delete_Success(t *testing.T) {
	svc, reviewRepo, listingRepo := setupReviewService()
	ctx := context.Background()

	listing := seedListing(listingRepo, "user:owner")
	review, err := svc.Create(ctx, "user:reviewer", listing.ID, &model.CreateReviewRequest{
		Comment: "Wonderful stay",
		Rating:  5,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Delete(ctx, "user:reviewer", listing.ID, review.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := reviewRepo.reviews[review.ID]; ok {
		t.Error("review was not deleted")
	}
	if len(reviewRepo.byListing[listing.ID]) != 0 {
		t.Error("review reference was not removed from the listing")
	}
}

func TestReviewService_Delete_NotAuthor(t *testing.T) {
	svc, _, listingRepo := setupReviewService()
	ctx := context.Background()

	listing := seedListing(listingRepo, "user:owner")
	review, err := svc.Create(ctx, "user:reviewer", listing.ID, &model.CreateReviewRequest{
		Comment: "Wonderful stay",
		Rating:  5,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = svc.Delete(ctx, "user:intruder", listing.ID, review.ID)
	if !errors.Is(err, ErrNotReviewAuthor) {
		t.Errorf("expected ErrNotReviewAuthor, got %v", err)
	}
}

func TestReviewService_Delete_ListingNotFound(t *testing.T) {
	svc, _, _ := setupReviewService()

	err := svc.Delete(context.Background(), "user:reviewer", "listing:missing", "review:1")
	if !errors.Is(err, ErrListingNotFound) {
		t.Errorf("expected ErrListingNotFound, got %v", err)
	}
}

func TestReviewService_Delete_ReviewNotFound(t *testing.T) {
	svc, _, listingRepo := setupReviewService()

	listing := seedListing(listingRepo, "user:owner")

	err := svc.Delete(context.Background(), "user:reviewer", listing.ID, "review:missing")
	if !errors.Is(err, ErrReviewNotFound) {
		t.Errorf("expected ErrReviewNotFound, got %v", err)
	}
}
