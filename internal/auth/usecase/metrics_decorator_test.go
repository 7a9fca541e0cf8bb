package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/notes/internal/auth/domain"
	"github.com/allisson/notes/internal/auth/http/mocks"
	"github.com/allisson/notes/internal/auth/usecase"
	userDomain "github.com/allisson/notes/internal/user/domain"
)

// mockBusinessMetrics is a local mock for metrics.BusinessMetrics.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func expectMetrics(m *mockBusinessMetrics, ctx context.Context, operation, status string) {
	m.On("RecordOperation", ctx, "auth", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "auth", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestSessionUseCaseWithMetrics(t *testing.T) {
	mockNext := &mocks.MockSessionUseCase{}
	mockMetrics := &mockBusinessMetrics{}
	uc := usecase.NewSessionUseCaseWithMetrics(mockNext, mockMetrics)

	ctx := context.Background()
	user := &userDomain.User{ID: uuid.New(), Username: "alice"}

	t.Run("Register success", func(t *testing.T) {
		input := &authDomain.RegisterInput{Username: "alice"}
		mockNext.On("Register", ctx, input).Return(user, nil).Once()
		expectMetrics(mockMetrics, ctx, "register", "success")

		res, err := uc.Register(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, user, res)
	})

	t.Run("Register error", func(t *testing.T) {
		input := &authDomain.RegisterInput{Username: "alice"}
		mockNext.On("Register", ctx, input).Return(nil, userDomain.ErrUserAlreadyExists).Once()
		expectMetrics(mockMetrics, ctx, "register", "error")

		_, err := uc.Register(ctx, input)
		assert.ErrorIs(t, err, userDomain.ErrUserAlreadyExists)
	})

	t.Run("Login success", func(t *testing.T) {
		input := &authDomain.LoginInput{Email: "alice@example.com"}
		output := &authDomain.LoginOutput{Token: "token", User: user}
		mockNext.On("Login", ctx, input).Return(output, nil).Once()
		expectMetrics(mockMetrics, ctx, "login", "success")

		res, err := uc.Login(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, output, res)
	})

	t.Run("Logout error", func(t *testing.T) {
		expectedErr := errors.New("error")
		mockNext.On("Logout", ctx, "token").Return(expectedErr).Once()
		expectMetrics(mockMetrics, ctx, "logout", "error")

		assert.Equal(t, expectedErr, uc.Logout(ctx, "token"))
	})

	t.Run("Authenticate success", func(t *testing.T) {
		claims := &authDomain.Claims{Subject: user.ID}
		mockNext.On("Authenticate", ctx, "token").Return(claims, nil).Once()
		expectMetrics(mockMetrics, ctx, "authenticate", "success")

		res, err := uc.Authenticate(ctx, "token")
		assert.NoError(t, err)
		assert.Equal(t, claims, res)
	})

	t.Run("Me success", func(t *testing.T) {
		mockNext.On("Me", ctx, user.ID).Return(user, nil).Once()
		expectMetrics(mockMetrics, ctx, "me", "success")

		res, err := uc.Me(ctx, user.ID)
		assert.NoError(t, err)
		assert.Equal(t, user, res)
	})

	mockNext.AssertExpectations(t)
	mockMetrics.AssertExpectations(t)
}
