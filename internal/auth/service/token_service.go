package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/allisson/notes/internal/auth/domain"
)

var errUnexpectedSigningMethod = errors.New("unexpected signing method")

// tokenService implements TokenService with HS256 JSON Web Tokens.
type tokenService struct {
	secret []byte
	now    func() time.Time
}

// TokenOption configures a TokenService.
type TokenOption func(*tokenService)

// WithClock replaces the time source used for issuing and verifying tokens.
func WithClock(now func() time.Time) TokenOption {
	return func(s *tokenService) {
		s.now = now
	}
}

// NewTokenService creates a TokenService bound to secret. The secret is copied,
// so later changes to the caller's slice have no effect.
func NewTokenService(secret []byte, opts ...TokenOption) (TokenService, error) {
	if len(secret) == 0 {
		return nil, authDomain.ErrEmptySigningSecret
	}

	key := make([]byte, len(secret))
	copy(key, secret)

	s := &tokenService{
		secret: key,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue signs a new token for subject. Timestamps have second precision and
// the expiry is rounded up, so a token stays valid for at least ttl.
func (s *tokenService) Issue(subject uuid.UUID, ttl time.Duration) (string, *authDomain.Claims, error) {
	if ttl <= 0 {
		return "", nil, authDomain.ErrInvalidTTL
	}

	now := s.now().UTC()
	claims := &authDomain.Claims{
		Subject:    subject,
		InstanceID: uuid.NewString(),
		IssuedAt:   now.Truncate(time.Second),
		ExpiresAt:  ceilSecond(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   claims.Subject.String(),
		ID:        claims.InstanceID,
		IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
		ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}

	return signed, claims, nil
}

// Verify parses token and validates its signature and expiry.
func (s *tokenService) Verify(token string) (*authDomain.Claims, error) {
	registered := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(
		token,
		registered,
		s.keyFunc,
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, classifyParseError(err)
	}

	subject, err := uuid.Parse(registered.Subject)
	if err != nil {
		return nil, authDomain.ErrMalformedCredential
	}
	if registered.ID == "" {
		return nil, authDomain.ErrMalformedCredential
	}

	claims := &authDomain.Claims{
		Subject:    subject,
		InstanceID: registered.ID,
		ExpiresAt:  registered.ExpiresAt.UTC(),
	}
	if registered.IssuedAt != nil {
		claims.IssuedAt = registered.IssuedAt.UTC()
	}

	return claims, nil
}

// keyFunc only accepts HS256 so tokens signed with "none" or another
// algorithm never reach signature verification. The signature itself is
// checked by jwt.SigningMethodHS256.Verify, which compares MACs with
// hmac.Equal in constant time.
func (s *tokenService) keyFunc(t *jwt.Token) (any, error) {
	if t.Method == nil || t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, errUnexpectedSigningMethod
	}
	return s.secret, nil
}

// ceilSecond rounds t up to the next whole second unless it already is one.
func ceilSecond(t time.Time) time.Time {
	truncated := t.Truncate(time.Second)
	if truncated.Equal(t) {
		return t
	}
	return truncated.Add(time.Second)
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return authDomain.ErrBadSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return authDomain.ErrExpired
	default:
		return authDomain.ErrMalformedCredential
	}
}
