package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wanderlust/web/internal/database"
	"github.com/wanderlust/web/internal/model"
)

// ReviewRepository handles review data access
type ReviewRepository struct {
	db database.Database
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db database.Database) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// newReviewID generates a client-side record ID so the CREATE and the
// listing UPDATE can reference the same record inside one transaction.
func newReviewID() string {
	return "review:" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Create creates a review and appends it to the listing's review list in a
// single transaction. Either both writes land or neither does.
func (r *ReviewRepository) Create(ctx context.Context, listingID string, review *model.Review) error {
	rid := newReviewID()

	tx := database.NewTxBuilder()
	tx.Add(`
		CREATE type::record($rid) CONTENT {
			comment: $comment,
			rating: $rating,
			author: type::record($author_id),
			created_on: time::now()
		}
	`, map[string]interface{}{
		"rid":       rid,
		"comment":   review.Comment,
		"rating":    review.Rating,
		"author_id": review.AuthorID,
	})
	tx.Add(`UPDATE type::record($listing_id) SET reviews += type::record($rid), updated_on = time::now()`,
		map[string]interface{}{
			"listing_id": listingID,
			"rid":        rid,
		})

	result, err := database.ExecuteTransaction(ctx, r.db, tx)
	if err != nil {
		return err
	}

	review.ID = rid
	if created, err := extractCreatedRecord(result); err == nil && created.ID != "" {
		review.ID = created.ID
		review.CreatedOn = created.CreatedOn
	}
	if review.CreatedOn.IsZero() {
		review.CreatedOn = time.Now().UTC()
	}
	return nil
}

// GetByID retrieves a review by ID. Returns nil if the review does not exist.
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*model.Review, error) {
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
	return parseReviewRow(data), nil
}

// Delete removes a review and pulls its reference off the listing in a
// single transaction.
func (r *ReviewRepository) Delete(ctx context.Context, listingID, reviewID string) error {
	tx := database.NewTxBuilder()
	tx.Add(`UPDATE type::record($listing_id) SET reviews -= type::record($rid), updated_on = time::now()`,
		map[string]interface{}{
			"listing_id": listingID,
			"rid":        reviewID,
		})
	tx.Add(`DELETE type::record($rid)`,
		map[string]interface{}{"rid": reviewID})

	_, err := database.ExecuteTransaction(ctx, r.db, tx)
	return err
}

func parseReviewRow(data map[string]interface{}) *model.Review {
	review := &model.Review{
		ID:       convertSurrealID(data["id"]),
		Comment:  getString(data, "comment"),
		Rating:   getInt(data, "rating"),
		AuthorID: convertSurrealID(data["author"]),
	}

	if t := getTime(data, "created_on"); t != nil {
		review.CreatedOn = *t
	}

	return review
}
