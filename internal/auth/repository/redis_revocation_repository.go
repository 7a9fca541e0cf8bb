// Package repository provides persistence for authentication state.
//
// Revoked token instances are kept in Redis under the "bl:" prefix with a TTL
// no shorter than the remaining lifetime of the token, so entries expire by
// themselves once the token could no longer be used anyway.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	authDomain "github.com/allisson/notes/internal/auth/domain"
	apperrors "github.com/allisson/notes/internal/errors"
)

// NewRedisClient parses redisURL and creates a client that honours context
// deadlines on socket reads and writes. Without that, go-redis applies its own
// ReadTimeout and the per-call timeout of the repository would not bound a
// connection that stops answering.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	opts.ContextTimeoutEnabled = true
	return redis.NewClient(opts), nil
}

// RedisRevocationRepository stores revoked token instance ids in Redis.
type RedisRevocationRepository struct {
	client  redis.Cmdable
	timeout time.Duration
}

// NewRedisRevocationRepository creates a repository that bounds every Redis
// call to timeout.
func NewRedisRevocationRepository(client redis.Cmdable, timeout time.Duration) *RedisRevocationRepository {
	return &RedisRevocationRepository{
		client:  client,
		timeout: timeout,
	}
}

// IsRevoked reports whether instanceID has been revoked.
func (r *RedisRevocationRepository) IsRevoked(ctx context.Context, instanceID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	n, err := r.client.Exists(ctx, authDomain.RevocationKey(instanceID)).Result()
	if err != nil {
		return false, unavailable(err)
	}
	return n > 0, nil
}

// Revoke marks instanceID as revoked for ttl. Revoking twice is harmless.
func (r *RedisRevocationRepository) Revoke(ctx context.Context, instanceID string, ttl time.Duration) error {
	if ttl <= 0 {
		return authDomain.ErrInvalidTTL
	}
	if instanceID == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "instance id must not be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.client.Set(ctx, authDomain.RevocationKey(instanceID), "1", ttl).Err(); err != nil {
		return unavailable(err)
	}
	return nil
}

// Ping checks connectivity for readiness probes.
func (r *RedisRevocationRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.client.Ping(ctx).Err(); err != nil {
		return unavailable(err)
	}
	return nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", authDomain.ErrRevocationStoreUnavailable, err)
}
