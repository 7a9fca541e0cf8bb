package repository

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/notes/internal/auth/domain"
	apperrors "github.com/allisson/notes/internal/errors"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *RedisRevocationRepository) {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := NewRedisClient("redis://" + mr.Addr() + "/0")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Close()
	})

	return mr, NewRedisRevocationRepository(client, 500*time.Millisecond)
}

func TestRedisRevocationRepository_Revoke(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_StoresPrefixedKeyWithTTL", func(t *testing.T) {
		mr, repo := setupRedis(t)

		require.NoError(t, repo.Revoke(ctx, "instance-1", 90*time.Second))

		assert.True(t, mr.Exists("bl:instance-1"))
		value, err := mr.Get("bl:instance-1")
		require.NoError(t, err)
		assert.Equal(t, "1", value)
		assert.Equal(t, 90*time.Second, mr.TTL("bl:instance-1"))
	})

	t.Run("Success_Idempotent", func(t *testing.T) {
		mr, repo := setupRedis(t)

		require.NoError(t, repo.Revoke(ctx, "instance-2", time.Minute))
		require.NoError(t, repo.Revoke(ctx, "instance-2", time.Minute))

		revoked, err := repo.IsRevoked(ctx, "instance-2")
		require.NoError(t, err)
		assert.True(t, revoked)
		assert.Len(t, mr.Keys(), 1)
	})

	t.Run("Success_EntryExpires", func(t *testing.T) {
		mr, repo := setupRedis(t)

		require.NoError(t, repo.Revoke(ctx, "instance-3", 10*time.Second))
		mr.FastForward(11 * time.Second)

		revoked, err := repo.IsRevoked(ctx, "instance-3")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("Error_NonPositiveTTL", func(t *testing.T) {
		mr, repo := setupRedis(t)

		assert.ErrorIs(t, repo.Revoke(ctx, "instance-4", 0), authDomain.ErrInvalidTTL)
		assert.ErrorIs(t, repo.Revoke(ctx, "instance-4", -time.Second), apperrors.ErrInvalidInput)
		assert.False(t, mr.Exists("bl:instance-4"))
	})

	t.Run("Error_EmptyInstanceID", func(t *testing.T) {
		_, repo := setupRedis(t)
		assert.ErrorIs(t, repo.Revoke(ctx, "", time.Minute), apperrors.ErrInvalidInput)
	})

	t.Run("Error_StoreFailure", func(t *testing.T) {
		mr, repo := setupRedis(t)
		mr.SetError("ERR simulated failure")

		err := repo.Revoke(ctx, "instance-5", time.Minute)
		assert.ErrorIs(t, err, authDomain.ErrRevocationStoreUnavailable)
		assert.ErrorIs(t, err, apperrors.ErrServiceUnavailable)
	})
}

func TestRedisRevocationRepository_IsRevoked(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_NoFalsePositives", func(t *testing.T) {
		_, repo := setupRedis(t)

		require.NoError(t, repo.Revoke(ctx, "revoked", time.Minute))

		for _, id := range []string{"other", "revoked-suffix", "REVOKED", ""} {
			revoked, err := repo.IsRevoked(ctx, id)
			require.NoError(t, err)
			assert.False(t, revoked, "instance %q", id)
		}
	})

	t.Run("Success_DoesNotMutate", func(t *testing.T) {
		mr, repo := setupRedis(t)

		revoked, err := repo.IsRevoked(ctx, "unknown")
		require.NoError(t, err)
		assert.False(t, revoked)
		assert.Empty(t, mr.Keys())
	})

	t.Run("Error_StoreUnreachable", func(t *testing.T) {
		mr, repo := setupRedis(t)
		mr.Close()

		revoked, err := repo.IsRevoked(ctx, "instance")
		assert.False(t, revoked)
		assert.ErrorIs(t, err, authDomain.ErrRevocationStoreUnavailable)
	})

	t.Run("Error_CanceledContext", func(t *testing.T) {
		_, repo := setupRedis(t)

		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := repo.IsRevoked(canceled, "instance")
		assert.ErrorIs(t, err, authDomain.ErrRevocationStoreUnavailable)
	})
}

func TestRedisRevocationRepository_Ping(t *testing.T) {
	mr, repo := setupRedis(t)
	require.NoError(t, repo.Ping(context.Background()))

	mr.Close()
	assert.ErrorIs(t, repo.Ping(context.Background()), authDomain.ErrRevocationStoreUnavailable)
}

// startSilentServer accepts TCP connections and never writes a byte back.
func startSilentServer(t *testing.T) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var (
		mu    sync.Mutex
		conns []net.Conn
		wg    sync.WaitGroup
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, conn)
			mu.Unlock()
		}
	}()

	t.Cleanup(func() {
		_ = listener.Close()
		wg.Wait()
		mu.Lock()
		defer mu.Unlock()
		for _, conn := range conns {
			_ = conn.Close()
		}
	})

	return listener.Addr().String()
}

func TestRedisRevocationRepository_UnresponsiveStore(t *testing.T) {
	const timeout = 200 * time.Millisecond

	client, err := NewRedisClient("redis://" + startSilentServer(t) + "/0")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Close()
	})
	repo := NewRedisRevocationRepository(client, timeout)
	ctx := context.Background()

	calls := map[string]func() error{
		"IsRevoked": func() error {
			_, err := repo.IsRevoked(ctx, "instance-1")
			return err
		},
		"Revoke": func() error {
			return repo.Revoke(ctx, "instance-1", time.Minute)
		},
		"Ping": func() error {
			return repo.Ping(ctx)
		},
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			start := time.Now()
			err := call()
			elapsed := time.Since(start)

			assert.ErrorIs(t, err, authDomain.ErrRevocationStoreUnavailable)
			assert.ErrorIs(t, err, apperrors.ErrServiceUnavailable)
			assert.Less(t, elapsed, timeout+time.Second, "call was not bounded by the repository timeout")
		})
	}
}

func TestNewRedisClient(t *testing.T) {
	t.Run("Success_HonoursContextDeadlines", func(t *testing.T) {
		client, err := NewRedisClient("redis://localhost:6379/2")
		require.NoError(t, err)
		defer func() { _ = client.Close() }()

		assert.True(t, client.Options().ContextTimeoutEnabled)
		assert.Equal(t, 2, client.Options().DB)
	})

	t.Run("Error_InvalidURL", func(t *testing.T) {
		client, err := NewRedisClient("not-a-url://")
		assert.Nil(t, client)
		assert.Error(t, err)
	})
}
