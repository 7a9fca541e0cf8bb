// Package service provides technical services for authentication: signed access
// tokens, password hashing and loading of the token signing secret.
package service

import (
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/notes/internal/auth/domain"
)

// TokenService issues and verifies signed, expiring access tokens.
// The signing secret is fixed when the service is built and never changes.
type TokenService interface {
	// Issue signs a token for subject that expires after ttl. A fresh instance
	// id is minted on every call. Returns ErrInvalidTTL when ttl is not positive.
	Issue(subject uuid.UUID, ttl time.Duration) (string, *authDomain.Claims, error)

	// Verify checks the signature and expiry of token and returns its claims.
	// Errors are ErrMalformedCredential, ErrBadSignature or ErrExpired.
	Verify(token string) (*authDomain.Claims, error)
}

// PasswordService hashes and verifies user passwords.
type PasswordService interface {
	// Hash returns an encoded hash of password suitable for storage.
	Hash(password string) (string, error)

	// Verify reports whether password matches the encoded hash.
	// It never returns true for a malformed hash.
	Verify(password, encodedHash string) bool
}
