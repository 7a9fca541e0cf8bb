package service

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	authDomain "github.com/allisson/notes/internal/auth/domain"
	apperrors "github.com/allisson/notes/internal/errors"
)

var testSecret = []byte("test-signing-secret-with-enough-bytes")

func newTestTokenService(t *testing.T, secret []byte) *tokenService {
	t.Helper()
	svc, err := NewTokenService(secret)
	require.NoError(t, err)
	return svc.(*tokenService)
}

func TestNewTokenService(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, err := NewTokenService(testSecret)
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})

	t.Run("Error_EmptySecret", func(t *testing.T) {
		svc, err := NewTokenService(nil)
		assert.Nil(t, svc)
		assert.ErrorIs(t, err, authDomain.ErrEmptySigningSecret)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Success_SecretIsCopied", func(t *testing.T) {
		secret := []byte("mutable-secret")
		svc, err := NewTokenService(secret)
		require.NoError(t, err)

		token, _, err := svc.Issue(uuid.New(), time.Minute)
		require.NoError(t, err)

		secret[0] = 'X'
		_, err = svc.Verify(token)
		assert.NoError(t, err)
	})
}

func TestTokenService_Issue(t *testing.T) {
	svc := newTestTokenService(t, testSecret)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 500_000_000, time.UTC)
	svc.now = func() time.Time { return fixed }

	t.Run("Success", func(t *testing.T) {
		subject := uuid.New()

		token, claims, err := svc.Issue(subject, 30*time.Minute)
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, 3, len(strings.Split(token, ".")))
		assert.Equal(t, subject, claims.Subject)
		assert.Equal(t, fixed.Truncate(time.Second), claims.IssuedAt)
		assert.Equal(t, time.Date(2026, 3, 1, 12, 30, 1, 0, time.UTC), claims.ExpiresAt)

		_, err = uuid.Parse(claims.InstanceID)
		assert.NoError(t, err)
	})

	t.Run("Success_WholeSecondExpiryKept", func(t *testing.T) {
		whole := newTestTokenService(t, testSecret)
		start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		whole.now = func() time.Time { return start }

		_, claims, err := whole.Issue(uuid.New(), time.Minute)
		require.NoError(t, err)
		assert.Equal(t, start.Add(time.Minute), claims.ExpiresAt)
	})

	t.Run("Success_FreshInstanceIDPerIssue", func(t *testing.T) {
		subject := uuid.New()

		token1, claims1, err := svc.Issue(subject, time.Minute)
		require.NoError(t, err)
		token2, claims2, err := svc.Issue(subject, time.Minute)
		require.NoError(t, err)

		assert.NotEqual(t, claims1.InstanceID, claims2.InstanceID)
		assert.NotEqual(t, token1, token2)
	})

	t.Run("Error_NonPositiveTTL", func(t *testing.T) {
		for _, ttl := range []time.Duration{0, -time.Second} {
			token, claims, err := svc.Issue(uuid.New(), ttl)
			assert.Empty(t, token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, authDomain.ErrInvalidTTL)
		}
	})
}

func TestTokenService_Verify(t *testing.T) {
	svc := newTestTokenService(t, testSecret)

	t.Run("Success_RoundTrip", func(t *testing.T) {
		subject := uuid.New()
		token, issued, err := svc.Issue(subject, time.Hour)
		require.NoError(t, err)

		claims, err := svc.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, subject, claims.Subject)
		assert.Equal(t, issued.InstanceID, claims.InstanceID)
		assert.Equal(t, issued.ExpiresAt, claims.ExpiresAt)
		assert.Equal(t, issued.IssuedAt, claims.IssuedAt)
	})

	t.Run("Success_SubSecondTTLUsableImmediately", func(t *testing.T) {
		start := time.Date(2026, 3, 1, 12, 0, 0, 300_000_000, time.UTC)
		for _, ttl := range []time.Duration{time.Nanosecond, 500 * time.Millisecond, 699 * time.Millisecond, 1500 * time.Millisecond} {
			clocked := newTestTokenService(t, testSecret)
			clocked.now = func() time.Time { return start }

			token, issued, err := clocked.Issue(uuid.New(), ttl)
			require.NoError(t, err)
			assert.True(t, issued.ExpiresAt.After(start), "ttl %s", ttl)
			assert.False(t, issued.ExpiresAt.Before(start.Add(ttl)), "ttl %s", ttl)

			_, err = clocked.Verify(token)
			assert.NoError(t, err, "ttl %s", ttl)
		}
	})

	t.Run("Error_WrongSecret", func(t *testing.T) {
		other := newTestTokenService(t, []byte("another-secret"))
		token, _, err := other.Issue(uuid.New(), time.Hour)
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, authDomain.ErrBadSignature)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Error_TamperedPayload", func(t *testing.T) {
		token, _, err := svc.Issue(uuid.New(), time.Hour)
		require.NoError(t, err)

		forged, _, err := svc.Issue(uuid.New(), time.Hour)
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		forgedParts := strings.Split(forged, ".")
		tampered := parts[0] + "." + forgedParts[1] + "." + parts[2]

		_, err = svc.Verify(tampered)
		assert.ErrorIs(t, err, authDomain.ErrBadSignature)
	})

	t.Run("Error_SignatureCheckedByHS256", func(t *testing.T) {
		token, _, err := svc.Issue(uuid.New(), time.Hour)
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		signature, err := jwt.NewParser().DecodeSegment(parts[2])
		require.NoError(t, err)

		signingString := parts[0] + "." + parts[1]
		require.NoError(t, jwt.SigningMethodHS256.Verify(signingString, signature, testSecret))

		signature[len(signature)-1] ^= 0x01
		require.ErrorIs(t,
			jwt.SigningMethodHS256.Verify(signingString, signature, testSecret),
			jwt.ErrSignatureInvalid,
		)

		flipped := signingString + "." + new(jwt.Token).EncodeSegment(signature)
		_, err = svc.Verify(flipped)
		assert.ErrorIs(t, err, authDomain.ErrBadSignature)
	})

	t.Run("Error_Expired", func(t *testing.T) {
		past := newTestTokenService(t, testSecret)
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

		token, _, err := past.Issue(uuid.New(), time.Hour)
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, authDomain.ErrExpired)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Error_ExpiryEqualToNow", func(t *testing.T) {
		fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		clock := newTestTokenService(t, testSecret)
		clock.now = func() time.Time { return fixed }

		token, _, err := clock.Issue(uuid.New(), time.Minute)
		require.NoError(t, err)

		clock.now = func() time.Time { return fixed.Add(time.Minute) }
		_, err = clock.Verify(token)
		assert.ErrorIs(t, err, authDomain.ErrExpired)
	})

	t.Run("Error_Malformed", func(t *testing.T) {
		for _, token := range []string{"", "not-a-token", "a.b.c", "eyJhbGciOiJIUzI1NiJ9.e30"} {
			_, err := svc.Verify(token)
			assert.ErrorIs(t, err, authDomain.ErrMalformedCredential, "token %q", token)
		}
	})

	t.Run("Error_AlgorithmNone", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, authDomain.ErrMalformedCredential)
	})

	t.Run("Error_OtherHMACAlgorithm", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString(testSecret)
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, authDomain.ErrMalformedCredential)
	})

	t.Run("Error_MissingClaims", func(t *testing.T) {
		cases := map[string]jwt.RegisteredClaims{
			"missing exp": {Subject: uuid.NewString(), ID: uuid.NewString()},
			"missing jti": {Subject: uuid.NewString(), ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
			"invalid sub": {
				Subject:   "not-a-uuid",
				ID:        uuid.NewString(),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}

		for name, claims := range cases {
			t.Run(name, func(t *testing.T) {
				token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
				require.NoError(t, err)

				_, err = svc.Verify(token)
				assert.ErrorIs(t, err, authDomain.ErrMalformedCredential)
			})
		}
	})
}

func TestTokenService_ConcurrentUse(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	svc := newTestTokenService(t, testSecret)

	const workers = 16
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[string]struct{}, workers)
	)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			token, issued, err := svc.Issue(uuid.New(), time.Minute)
			if !assert.NoError(t, err) {
				return
			}
			claims, err := svc.Verify(token)
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, issued.InstanceID, claims.InstanceID)

			mu.Lock()
			ids[claims.InstanceID] = struct{}{}
			mu.Unlock()
		}()
	}

	wg.Wait()
	assert.Len(t, ids, workers)
}
