// Package http provides the HTTP surface of authentication: the request gate,
// session handlers and the login rate limiter.
package http

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/allisson/notes/internal/auth/domain"
)

// claimsKey is a context key type for storing verified token claims.
type claimsKey struct{}

// WithClaims stores verified token claims in the context.
// This is called by the authentication middleware after the token is admitted.
func WithClaims(ctx context.Context, claims *authDomain.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaims retrieves the verified token claims from the context.
func GetClaims(ctx context.Context) (*authDomain.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*authDomain.Claims)
	return claims, ok && claims != nil
}

// GetUserID returns the authenticated user id from the context.
// Returns (uuid.Nil, false) when the request did not pass the gate.
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	claims, ok := GetClaims(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return claims.Subject, true
}
