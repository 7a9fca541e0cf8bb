// Package usecase implements the session service: account registration,
// login, logout and authentication of bearer tokens.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/notes/internal/auth/domain"
	userDomain "github.com/allisson/notes/internal/user/domain"
)

// UserRepository defines the user persistence needed by the session service.
// Implementations must support transaction-aware operations via context propagation.
type UserRepository interface {
	// Create stores a new user. Returns ErrUserAlreadyExists on a unique violation.
	Create(ctx context.Context, user *userDomain.User) error

	// GetByID retrieves a user by ID. Returns ErrUserNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error)

	// GetByEmail retrieves a user by email. Returns ErrUserNotFound if not found.
	GetByEmail(ctx context.Context, email string) (*userDomain.User, error)

	// ExistsByUsernameOrEmail reports whether the username or the email is taken.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

// RevocationRepository records revoked token instances.
type RevocationRepository interface {
	// IsRevoked reports whether instanceID was revoked. Never mutates state.
	IsRevoked(ctx context.Context, instanceID string) (bool, error)

	// Revoke marks instanceID as revoked for at least ttl. Idempotent.
	Revoke(ctx context.Context, instanceID string, ttl time.Duration) error
}

// SessionUseCase defines the account and session operations.
type SessionUseCase interface {
	// Register validates the input, rejects a taken username or email with
	// ErrUserAlreadyExists and stores the user with a hashed password.
	Register(ctx context.Context, input *authDomain.RegisterInput) (*userDomain.User, error)

	// Login checks the credentials and issues a token. An unknown email and a
	// wrong password both return ErrInvalidCredentials.
	Login(ctx context.Context, input *authDomain.LoginInput) (*authDomain.LoginOutput, error)

	// Logout revokes the token instance for its remaining lifetime. Logging out
	// with an already expired token succeeds without touching the store.
	Logout(ctx context.Context, token string) error

	// Authenticate verifies the token and checks that it has not been revoked.
	Authenticate(ctx context.Context, token string) (*authDomain.Claims, error)

	// Me returns the user behind an authenticated subject.
	Me(ctx context.Context, userID uuid.UUID) (*userDomain.User, error)
}
