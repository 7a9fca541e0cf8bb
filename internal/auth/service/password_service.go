package service

import (
	"strings"

	"github.com/allisson/go-pwdhash"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/allisson/notes/internal/errors"
)

// bcryptPrefixes identify hashes written by earlier deployments.
var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// passwordService hashes with Argon2id and still verifies legacy bcrypt hashes.
type passwordService struct {
	hasher *pwdhash.PasswordHasher
}

// NewPasswordService creates a PasswordService using the Interactive Argon2id policy.
func NewPasswordService() (PasswordService, error) {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyInteractive),
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &passwordService{
		hasher: hasher,
	}, nil
}

// Hash hashes password with Argon2id in PHC string format.
func (p *passwordService) Hash(password string) (string, error) {
	hash, err := p.hasher.Hash([]byte(password))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hash, nil
}

// Verify compares password with encodedHash in constant time.
func (p *passwordService) Verify(password, encodedHash string) bool {
	if isBcryptHash(encodedHash) {
		return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)) == nil
	}

	ok, err := p.hasher.Verify([]byte(password), encodedHash)
	if err != nil {
		return false
	}
	return ok
}

func isBcryptHash(encodedHash string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(encodedHash, prefix) {
			return true
		}
	}
	return false
}
