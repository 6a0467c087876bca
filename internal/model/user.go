package model

import "time"

// User represents a user account
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Hash      *string   `json:"-"` // Never expose password hash
	CreatedOn time.Time `json:"created_on"`
}

// SignupRequest represents a registration submission
type SignupRequest struct {
	Username string `form:"username" validate:"required,min=3,max=30"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// Validate checks if the signup request is valid.
// Password length bounds are enforced by the auth service.
func (r *SignupRequest) Validate() []FieldError {
	return validateStruct(r)
}

// LoginRequest represents a login submission
type LoginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}
