package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/notes/internal/auth/domain"
	authService "github.com/allisson/notes/internal/auth/service"
	"github.com/allisson/notes/internal/database"
	userDomain "github.com/allisson/notes/internal/user/domain"
)

// revocationMargin is added to every revocation TTL to absorb clock skew
// between the nodes that verify tokens.
const revocationMargin = time.Second

// sessionUseCase implements SessionUseCase.
type sessionUseCase struct {
	txManager       database.TxManager
	userRepo        UserRepository
	revocationRepo  RevocationRepository
	tokenService    authService.TokenService
	passwordService authService.PasswordService
	tokenTTL        time.Duration
	now             func() time.Time
}

// NewSessionUseCase creates a SessionUseCase that issues tokens valid for tokenTTL.
func NewSessionUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	revocationRepo RevocationRepository,
	tokenService authService.TokenService,
	passwordService authService.PasswordService,
	tokenTTL time.Duration,
) SessionUseCase {
	return &sessionUseCase{
		txManager:       txManager,
		userRepo:        userRepo,
		revocationRepo:  revocationRepo,
		tokenService:    tokenService,
		passwordService: passwordService,
		tokenTTL:        tokenTTL,
		now:             time.Now,
	}
}

// Register creates a new account.
//
// A concurrent registration that slips past the uniqueness check still fails
// on the unique indexes and surfaces as ErrUserAlreadyExists.
func (s *sessionUseCase) Register(
	ctx context.Context,
	input *authDomain.RegisterInput,
) (*userDomain.User, error) {
	normalized := &authDomain.RegisterInput{
		Username: strings.TrimSpace(input.Username),
		Email:    normalizeEmail(input.Email),
		Password: input.Password,
	}
	if err := normalized.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, normalized.Username, normalized.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, userDomain.ErrUserAlreadyExists
	}

	hash, err := s.passwordService.Hash(normalized.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := &userDomain.User{
		ID:        uuid.Must(uuid.NewV7()),
		Username:  normalized.Username,
		Email:     normalized.Email,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.txManager.WithTx(ctx, func(ctx context.Context) error {
		return s.userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates the user by email and password and issues a token.
func (s *sessionUseCase) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.LoginOutput, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.passwordService.Verify(input.Password, user.Password) {
		return nil, authDomain.ErrInvalidCredentials
	}

	token, claims, err := s.tokenService.Issue(user.ID, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	return &authDomain.LoginOutput{
		Token:     token,
		ExpiresAt: claims.ExpiresAt,
		User:      user,
	}, nil
}

// Logout revokes the presented token.
func (s *sessionUseCase) Logout(ctx context.Context, token string) error {
	claims, err := s.tokenService.Verify(token)
	if err != nil {
		if errors.Is(err, authDomain.ErrExpired) {
			return nil
		}
		return err
	}

	remaining := claims.RemainingLifetime(s.now())
	if remaining <= 0 {
		return nil
	}

	return s.revocationRepo.Revoke(ctx, claims.InstanceID, revocationTTL(remaining))
}

// Authenticate verifies token and rejects revoked instances. The revocation
// store is consulted only for tokens that verified.
func (s *sessionUseCase) Authenticate(ctx context.Context, token string) (*authDomain.Claims, error) {
	claims, err := s.tokenService.Verify(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revocationRepo.IsRevoked(ctx, claims.InstanceID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, authDomain.ErrRevoked
	}

	return claims, nil
}

// Me returns the user identified by userID.
func (s *sessionUseCase) Me(ctx context.Context, userID uuid.UUID) (*userDomain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// revocationTTL rounds remaining up to whole seconds and adds the skew margin,
// so the entry always outlives the token.
func revocationTTL(remaining time.Duration) time.Duration {
	rounded := remaining.Truncate(time.Second)
	if rounded < remaining {
		rounded += time.Second
	}
	return rounded + revocationMargin
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
