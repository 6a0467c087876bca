package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/wanderlust/web/internal/model"
)

type mockListingRepo struct {
	listings   map[string]*model.Listing
	reviews    map[string]*model.Review
	nextID     int
	createErr  error
	deleteErr  error
	deletedIDs []string
}

func newMockListingRepo() *mockListingRepo {
	return &mockListingRepo{
		listings: make(map[string]*model.Listing),
		reviews:  make(map[string]*model.Review),
	}
}

func (m *mockListingRepo) Create(ctx context.Context, listing *model.Listing) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	listing.ID = fmt.Sprintf("listing:%d", m.nextID)
	listing.CreatedOn = time.Now()
	listing.UpdatedOn = listing.CreatedOn
	m.listings[listing.ID] = listing
	return nil
}

func (m *mockListingRepo) List(ctx context.Context) ([]*model.Listing, error) {
	result := make([]*model.Listing, 0, len(m.listings))
	for _, l := range m.listings {
		result = append(result, l)
	}
	return result, nil
}

func (m *mockListingRepo) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	return m.listings[id], nil
}

func (m *mockListingRepo) GetDetails(ctx context.Context, id string) (*model.ListingDetails, error) {
	l, ok := m.listings[id]
	if !ok {
		return nil, nil
	}
	details := &model.ListingDetails{Listing: l}
	for _, rid := range l.ReviewIDs {
		if r, ok := m.reviews[rid]; ok {
			details.Reviews = append(details.Reviews, &model.ReviewWithAuthor{Review: r})
		}
	}
	return details, nil
}

func (m *mockListingRepo) Update(ctx context.Context, listing *model.Listing) error {
	m.listings[listing.ID] = listing
	return nil
}

func (m *mockListingRepo) DeleteCascade(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if l, ok := m.listings[id]; ok {
		for _, rid := range l.ReviewIDs {
			delete(m.reviews, rid)
		}
		delete(m.listings, id)
	}
	m.deletedIDs = append(m.deletedIDs, id)
	return nil
}

func setupListingService() (*ListingService, *mockListingRepo) {
	repo := newMockListingRepo()
	svc := NewListingService(ListingServiceConfig{ListingRepo: repo})
	return svc, repo
}

func validListingRequest() *model.CreateListingRequest {
	return &model.CreateListingRequest{
		Title:       "Cozy Cabin",
		Description: "A cabin in the woods",
		Price:       120,
		Location:    "Lake Tahoe",
		Country:     "USA",
	}
}

func TestListingService_Create_DefaultImage(t *testing.T) {
	svc, _ := setupListingService()

	listing, err := svc.Create(context.Background(), "user:owner", validListingRequest(), nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if listing.OwnerID != "user:owner" {
		t.Errorf("expected owner user:owner, got %s", listing.OwnerID)
	}
	if listing.Image.URL != model.DefaultImageURL {
		t.Errorf("expected placeholder image, got %s", listing.Image.URL)
	}
	if listing.Image.Filename != model.DefaultImageFilename {
		t.Errorf("expected placeholder filename, got %s", listing.Image.Filename)
	}
}

func TestListingService_Create_UploadedImageWins(t *testing.T) {
	svc, _ := setupListingService()

	req := validListingRequest()
	req.ImageURL = "https://example.com/from-form.jpg"
	uploaded := &model.ListingImage{Filename: "abc123.jpg", URL: "/uploads/abc123.jpg"}

	listing, err := svc.Create(context.Background(), "user:owner", req, uploaded)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if listing.Image != *uploaded {
		t.Errorf("expected uploaded image to win, got %+v", listing.Image)
	}
}

func TestListingService_Get_NotFound(t *testing.T) {
	svc, _ := setupListingService()

	_, err := svc.Get(context.Background(), "listing:missing")
	if !errors.Is(err, ErrListingNotFound) {
		t.Errorf("expected ErrListingNotFound, got %v", err)
	}
}

func TestListingService_Update_Success(t *testing.T) {
	svc, _ := setupListingService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "user:owner", validListingRequest(), nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	req := validListingRequest()
	req.Title = "Renovated Cabin"
	req.Price = 150

	updated, prev, err := svc.Update(ctx, "user:owner", created.ID, req, nil)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if prev.URL != model.DefaultImageURL {
		t.Errorf("expected the previous image to be reported, got %+v", prev)
	}
	if updated.Title != "Renovated Cabin" {
		t.Errorf("expected updated title, got %s", updated.Title)
	}
	if updated.Price != 150 {
		t.Errorf("expected updated price, got %v", updated.Price)
	}
	// Image untouched when no new one is supplied
	if updated.Image.URL != model.DefaultImageURL {
		t.Errorf("expected image to be kept, got %s", updated.Image.URL)
	}
}

func TestListingService_Update_ReportsReplacedImage(t *testing.T) {
	svc, _ := setupListingService()
	ctx := context.Background()

	old := &model.ListingImage{Filename: "old.jpg", URL: "/uploads/old.jpg"}
	created, err := svc.Create(ctx, "user:owner", validListingRequest(), old)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	replacement := &model.ListingImage{Filename: "new.jpg", URL: "/uploads/new.jpg"}
	updated, prev, err := svc.Update(ctx, "user:owner", created.ID, validListingRequest(), replacement)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Image != *replacement {
		t.Errorf("expected the new image to be stored, got %+v", updated.Image)
	}
	if prev != *old {
		t.Errorf("expected the old image back for cleanup, got %+v", prev)
	}
}

func TestListingService_Update_NotOwner(t *testing.T) {
	svc, _ := setupListingService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "user:owner", validListingRequest(), nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, _, err = svc.Update(ctx, "user:intruder", created.ID, validListingRequest(), nil)
	if !errors.Is(err, ErrNotListingOwner) {
		t.Errorf("expected ErrNotListingOwner, got %v", err)
	}
}

func TestListingService_Update_NotFound(t *testing.T) {
	svc, _ := setupListingService()

	_, _, err := svc.Update(context.Background(), "user:owner", "listing:missing", validListingRequest(), nil)
	if !errors.Is(err, ErrListingNotFound) {
		t.Errorf("expected ErrListingNotFound, got %v", err)
	}
}

func TestListingService_Delete_CascadesReviews(t *testing.T) {
	svc, repo := setupListingService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "user:owner", validListingRequest(), nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	repo.reviews["review:1"] = &model.Review{ID: "review:1", Comment: "great", Rating: 5}
	created.ReviewIDs = []string{"review:1"}

	if _, err := svc.Delete(ctx, "user:owner", created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := repo.listings[created.ID]; ok {
		t.Error("listing was not deleted")
	}
	if _, ok := repo.reviews["review:1"]; ok {
		t.Error("review was not cascade deleted")
	}
}

func TestListingService_Delete_NotOwner(t *testing.T) {
	svc, repo := setupListingService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "user:owner", validListingRequest(), nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = svc.Delete(ctx, "user:intruder", created.ID)
	if !errors.Is(err, ErrNotListingOwner) {
		t.Errorf("expected ErrNotListingOwner, got %v", err)
	}
	if len(repo.deletedIDs) != 0 {
		t.Error("delete should not reach the repository")
	}
}
