package repository

import (
	"context"
	"errors"

	"github.com/wanderlust/web/internal/database"
	"github.com/wanderlust/web/internal/model"
)

// ListingRepository handles listing data access
type ListingRepository struct {
	db database.Database
}

// NewListingRepository creates a new listing repository
func NewListingRepository(db database.Database) *ListingRepository {
	return &ListingRepository{db: db}
}

// Create creates a new listing owned by the given user
func (r *ListingRepository) Create(ctx context.Context, listing *model.Listing) error {
	query := `
		CREATE listing CONTENT {
			title: $title,
			description: $description,
			image: { filename: $image_filename, url: $image_url },
			price: $price,
			location: $location,
			country: $country,
			reviews: [],
			owner: type::record($owner_id),
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"title":          listing.Title,
		"description":    listing.Description,
		"image_filename": listing.Image.Filename,
		"image_url":      listing.Image.URL,
		"price":          listing.Price,
		"location":       listing.Location,
		"country":        listing.Country,
		"owner_id":       listing.OwnerID,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	listing.ID = created.ID
	listing.CreatedOn = created.CreatedOn
	listing.UpdatedOn = created.UpdatedOn
	return nil
}

// List retrieves all listings, newest first
func (r *ListingRepository) List(ctx context.Context) ([]*model.Listing, error) {
	query := `SELECT * FROM listing ORDER BY created_on DESC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	listings := make([]*model.Listing, 0)
	for _, row := range resultRows(result) {
		listings = append(listings, parseListingRow(row))
	}
	return listings, nil
}

// GetByID retrieves a listing by ID. Returns nil if the listing does not exist.
func (r *ListingRepository) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}
	return parseListingRow(data), nil
}

// GetDetails retrieves a listing with its owner and reviews (and review
// authors) resolved. Returns nil if the listing does not exist.
func (r *ListingRepository) GetDetails(ctx context.Context, id string) (*model.ListingDetails, error) {
	query := `SELECT * FROM type::record($id) FETCH owner, reviews, reviews.author`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}
	return parseListingDetails(data), nil
}

// Update replaces the mutable fields of a listing
func (r *ListingRepository) Update(ctx context.Context, listing *model.Listing) error {
	query := `
		UPDATE type::record($id) SET
			title = $title,
			description = $description,
			image = { filename: $image_filename, url: $image_url },
			price = $price,
			location = $location,
			country = $country,
			updated_on = time::now()
	`

	vars := map[string]interface{}{
		"id":             listing.ID,
		"title":          listing.Title,
		"description":    listing.Description,
		"image_filename": listing.Image.Filename,
		"image_url":      listing.Image.URL,
		"price":          listing.Price,
		"location":       listing.Location,
		"country":        listing.Country,
	}

	return r.db.Execute(ctx, query, vars)
}

// DeleteCascade deletes a listing together with all of its reviews in a
// single transaction, so a failure leaves both intact.
func (r *ListingRepository) DeleteCascade(ctx context.Context, id string) error {
	tx := database.NewTxBuilder()
	tx.Add(`DELETE review WHERE id IN (SELECT VALUE reviews FROM ONLY type::record($id))`,
		map[string]interface{}{"id": id})
	tx.Add(`DELETE type::record($id)`,
		map[string]interface{}{"id": id})

	_, err := database.ExecuteTransaction(ctx, r.db, tx)
	return err
}

// Row parsing

func parseListingRow(data map[string]interface{}) *model.Listing {
	listing := &model.Listing{
		ID:          convertSurrealID(data["id"]),
		Title:       getString(data, "title"),
		Description: getString(data, "description"),
		Price:       getFloat(data, "price"),
		Location:    getString(data, "location"),
		Country:     getString(data, "country"),
		ReviewIDs:   getRecordIDSlice(data, "reviews"),
		OwnerID:     convertSurrealID(data["owner"]),
	}

	if img, ok := data["image"].(map[string]interface{}); ok {
		listing.Image = model.ListingImage{
			Filename: getString(img, "filename"),
			URL:      getString(img, "url"),
		}
	}

	if t := getTime(data, "created_on"); t != nil {
		listing.CreatedOn = *t
	}
	if t := getTime(data, "updated_on"); t != nil {
		listing.UpdatedOn = *t
	}

	return listing
}

func parseListingDetails(data map[string]interface{}) *model.ListingDetails {
	details := &model.ListingDetails{}

	// With FETCH the owner and reviews come back as full records. Parse the
	// listing itself off a shallow copy so the fetched owner object doesn't
	// leak into OwnerID.
	if owner, ok := data["owner"].(map[string]interface{}); ok {
		if u, err := parseUserResult(owner); err == nil {
			details.Owner = u
		}
		shallow := make(map[string]interface{}, len(data))
		for k, v := range data {
			shallow[k] = v
		}
		shallow["owner"] = owner["id"]
		data = shallow
	}

	details.Listing = parseListingRow(data)
	details.Listing.ReviewIDs = nil

	if reviews, ok := data["reviews"].([]interface{}); ok {
		for _, item := range reviews {
			row, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			rwa := &model.ReviewWithAuthor{}
			if author, ok := row["author"].(map[string]interface{}); ok {
				if u, err := parseUserResult(author); err == nil {
					rwa.Author = u
				}
				row["author"] = author["id"]
			}
			rwa.Review = parseReviewRow(row)
			details.Listing.ReviewIDs = append(details.Listing.ReviewIDs, rwa.Review.ID)
			details.Reviews = append(details.Reviews, rwa)
		}
	}

	return details
}
