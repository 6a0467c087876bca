package model

import "time"

// Rating bounds for a review
const (
	MinRating = 1
	MaxRating = 5
)

// Review represents a rated comment left against a listing
type Review struct {
	ID        string    `json:"id"`
	Comment   string    `json:"comment"`
	Rating    int       `json:"rating"`
	AuthorID  string    `json:"author"`
	CreatedOn time.Time `json:"created_on"`
}

// ReviewWithAuthor is a review with its author resolved for display
type ReviewWithAuthor struct {
	Review *Review
	Author *User
}

// CreateReviewRequest represents a validated review submission
type CreateReviewRequest struct {
	Comment string `form:"comment" validate:"required"`
	Rating  int    `form:"rating" validate:"min=1,max=5"`
}

// Validate checks if the create request is valid
func (r *CreateReviewRequest) Validate() []FieldError {
	return validateStruct(r)
}
