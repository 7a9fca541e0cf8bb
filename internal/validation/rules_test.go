package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/notes/internal/errors"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		shouldErr bool
	}{
		{name: "valid email", email: "user@example.com", shouldErr: false},
		{name: "short domain", email: "a@x.com", shouldErr: false},
		{name: "plus addressing", email: "user+notes@example.co", shouldErr: false},
		{name: "missing at", email: "userexample.com", shouldErr: true},
		{name: "missing tld", email: "user@example", shouldErr: true},
		{name: "spaces", email: "user @example.com", shouldErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Email.Validate(tt.email)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUsername(t *testing.T) {
	assert.NoError(t, Username.Validate("alice"))
	assert.NoError(t, Username.Validate("alice.smith-01_x"))
	assert.Error(t, Username.Validate("alice smith"))
	assert.Error(t, Username.Validate("alice@home"))
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, NotBlank.Validate("value"))
	assert.Error(t, NotBlank.Validate("   "))
}

func TestNoWhitespace(t *testing.T) {
	assert.NoError(t, NoWhitespace.Validate("value"))
	assert.Error(t, NoWhitespace.Validate(" value"))
	assert.Error(t, NoWhitespace.Validate("value "))
}

func TestWrapValidationError(t *testing.T) {
	assert.NoError(t, WrapValidationError(nil))

	err := WrapValidationError(errors.New("email: must be a valid email address."))
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "email")
}
