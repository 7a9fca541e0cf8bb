// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/notes/internal/auth/domain"
)

// RegisterRequest contains the fields for creating an account.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"` //nolint:gosec // request payload
}

// Validate checks that all fields are present. Format rules are enforced by
// the session service so every caller gets the same checks.
func (r *RegisterRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// ToInput converts the request to the session service input.
func (r *RegisterRequest) ToInput() *authDomain.RegisterInput {
	return &authDomain.RegisterInput{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
	}
}

// LoginRequest contains the login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"` //nolint:gosec // request payload
}

// Validate checks that both credentials are present.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// ToInput converts the request to the session service input.
func (r *LoginRequest) ToInput() *authDomain.LoginInput {
	return &authDomain.LoginInput{
		Email:    r.Email,
		Password: r.Password,
	}
}
