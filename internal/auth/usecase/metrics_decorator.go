package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/notes/internal/auth/domain"
	"github.com/allisson/notes/internal/metrics"
	userDomain "github.com/allisson/notes/internal/user/domain"
)

// sessionUseCaseWithMetrics decorates SessionUseCase with metrics instrumentation.
type sessionUseCaseWithMetrics struct {
	next    SessionUseCase
	metrics metrics.BusinessMetrics
}

// NewSessionUseCaseWithMetrics wraps a SessionUseCase with metrics recording.
func NewSessionUseCaseWithMetrics(useCase SessionUseCase, m metrics.BusinessMetrics) SessionUseCase {
	return &sessionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Register records metrics for account registration.
func (s *sessionUseCaseWithMetrics) Register(
	ctx context.Context,
	input *authDomain.RegisterInput,
) (*userDomain.User, error) {
	start := time.Now()
	user, err := s.next.Register(ctx, input)
	s.record(ctx, "register", start, err)
	return user, err
}

// Login records metrics for login attempts.
func (s *sessionUseCaseWithMetrics) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.LoginOutput, error) {
	start := time.Now()
	output, err := s.next.Login(ctx, input)
	s.record(ctx, "login", start, err)
	return output, err
}

// Logout records metrics for logouts.
func (s *sessionUseCaseWithMetrics) Logout(ctx context.Context, token string) error {
	start := time.Now()
	err := s.next.Logout(ctx, token)
	s.record(ctx, "logout", start, err)
	return err
}

// Authenticate records metrics for token authentication.
func (s *sessionUseCaseWithMetrics) Authenticate(ctx context.Context, token string) (*authDomain.Claims, error) {
	start := time.Now()
	claims, err := s.next.Authenticate(ctx, token)
	s.record(ctx, "authenticate", start, err)
	return claims, err
}

// Me records metrics for profile lookups.
func (s *sessionUseCaseWithMetrics) Me(ctx context.Context, userID uuid.UUID) (*userDomain.User, error) {
	start := time.Now()
	user, err := s.next.Me(ctx, userID)
	s.record(ctx, "me", start, err)
	return user, err
}

func (s *sessionUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "auth", operation, status)
	s.metrics.RecordDuration(ctx, "auth", operation, time.Since(start), status)
}
