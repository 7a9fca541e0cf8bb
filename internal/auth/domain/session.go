package domain

import (
	"time"

	validation "github.com/jellydator/validation"

	userDomain "github.com/allisson/notes/internal/user/domain"
	customValidation "github.com/allisson/notes/internal/validation"
)

// Account field limits. Passwords have no strength policy, only an upper bound
// that keeps hashing cost predictable.
const (
	MaxUsernameLength = 100
	MaxEmailLength    = 255
	MaxPasswordLength = 256
)

// RegisterInput contains the data required to create an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Validate checks the registration fields.
func (r *RegisterInput) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Username,
			validation.Length(1, MaxUsernameLength),
		),
		validation.Field(&r.Email,
			validation.Required,
			customValidation.Email,
			validation.Length(1, MaxEmailLength),
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(1, MaxPasswordLength),
		),
	)
	return customValidation.WrapValidationError(err)
}

// LoginInput contains the credentials presented at login.
type LoginInput struct {
	Email    string
	Password string
}

// Validate checks that both credentials were provided.
func (l *LoginInput) Validate() error {
	err := validation.ValidateStruct(l,
		validation.Field(&l.Email, validation.Required),
		validation.Field(&l.Password, validation.Required),
	)
	return customValidation.WrapValidationError(err)
}

// LoginOutput is returned by a successful login.
type LoginOutput struct {
	Token     string
	ExpiresAt time.Time
	User      *userDomain.User
}
