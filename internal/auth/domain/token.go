package domain

import (
	"time"

	"github.com/google/uuid"
)

// Claims are the verified contents of an access token.
type Claims struct {
	// Subject is the user the token was issued to.
	Subject uuid.UUID
	// InstanceID is minted once per issuance and is the unit of revocation.
	InstanceID string
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

// RemainingLifetime returns how long the token stays valid after now,
// or zero when it has already expired.
func (c *Claims) RemainingLifetime(now time.Time) time.Duration {
	remaining := c.ExpiresAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// RevocationKey returns the cache key under which the instance id is revoked.
func RevocationKey(instanceID string) string {
	return RevocationKeyPrefix + instanceID
}
