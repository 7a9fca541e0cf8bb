package domain

import (
	"github.com/allisson/notes/internal/errors"
)

// Authentication errors. Every credential failure wraps ErrUnauthorized so the
// HTTP layer answers with one uniform 401, while the concrete sentinel stays
// available to logs and metrics.
var (
	// ErrMalformedCredential indicates the token could not be parsed or decoded.
	ErrMalformedCredential = errors.Wrap(errors.ErrUnauthorized, "malformed credential")

	// ErrBadSignature indicates the token signature does not match the signing secret.
	ErrBadSignature = errors.Wrap(errors.ErrUnauthorized, "bad signature")

	// ErrExpired indicates the token expiry is not in the future.
	ErrExpired = errors.Wrap(errors.ErrUnauthorized, "credential expired")

	// ErrRevoked indicates the token instance was revoked before its expiry.
	ErrRevoked = errors.Wrap(errors.ErrUnauthorized, "credential revoked")

	// ErrInvalidCredentials is returned by login for an unknown email or a wrong
	// password alike.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid email or password")

	// ErrRevocationStoreUnavailable indicates the revocation store could not be
	// reached in time. Callers must fail closed.
	ErrRevocationStoreUnavailable = errors.Wrap(errors.ErrServiceUnavailable, "revocation store unavailable")

	// ErrEmptySigningSecret indicates the signing secret is empty.
	ErrEmptySigningSecret = errors.Wrap(errors.ErrInvalidInput, "signing secret must not be empty")

	// ErrInvalidTTL indicates a non-positive lifetime was requested.
	ErrInvalidTTL = errors.Wrap(errors.ErrInvalidInput, "ttl must be positive")
)
