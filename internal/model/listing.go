package model

import "time"

// Default placeholder image applied when a listing is created without one
const (
	DefaultImageFilename = "listingimage"
	DefaultImageURL      = "https://images.unsplash.com/photo-1501785888041-af3ef285b470?w=860&q=80"
)

// ListingImage holds the stored image metadata for a listing
type ListingImage struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// Listing represents a rentable property
type Listing struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Image       ListingImage `json:"image"`
	Price       float64      `json:"price"`
	Location    string       `json:"location"`
	Country     string       `json:"country"`
	ReviewIDs   []string     `json:"reviews"`
	OwnerID     string       `json:"owner"`
	CreatedOn   time.Time    `json:"created_on"`
	UpdatedOn   time.Time    `json:"updated_on"`
}

// ListingDetails is a listing with its owner and reviews resolved,
// as needed by the detail view.
type ListingDetails struct {
	Listing *Listing
	Owner   *User
	Reviews []*ReviewWithAuthor
}

// CreateListingRequest represents a validated listing submission
type CreateListingRequest struct {
	Title       string  `form:"title" validate:"required"`
	Description string  `form:"description" validate:"required"`
	Price       float64 `form:"price" validate:"gte=0"`
	Location    string  `form:"location" validate:"required"`
	Country     string  `form:"country" validate:"required"`
	ImageURL    string  `form:"image_url" validate:"omitempty,url"`
}

// Validate checks if the create request is valid
func (r *CreateListingRequest) Validate() []FieldError {
	return validateStruct(r)
}

// UpdateListingRequest carries the same fields as creation; listing
// updates are full-form submissions, not partial patches.
type UpdateListingRequest = CreateListingRequest
