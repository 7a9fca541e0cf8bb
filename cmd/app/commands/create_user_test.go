package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/notes/internal/auth/domain"
	"github.com/allisson/notes/internal/auth/http/mocks"
	userDomain "github.com/allisson/notes/internal/user/domain"
)

func TestRunCreateUser(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	user := &userDomain.User{
		ID:        uuid.Must(uuid.NewV7()),
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "$argon2id$hash",
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	t.Run("non-interactive-text", func(t *testing.T) {
		mockUseCase := &mocks.MockSessionUseCase{}
		mockUseCase.On("Register", ctx, &authDomain.RegisterInput{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "s3cret",
		}).Return(user, nil).Once()

		var out bytes.Buffer
		err := RunCreateUser(ctx, mockUseCase, logger, "alice", "alice@example.com", "s3cret", "text",
			IOTuple{Reader: &bytes.Buffer{}, Writer: &out})
		require.NoError(t, err)

		assert.Contains(t, out.String(), "User created successfully")
		assert.Contains(t, out.String(), user.ID.String())
		assert.NotContains(t, out.String(), user.Password)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("interactive-json", func(t *testing.T) {
		mockUseCase := &mocks.MockSessionUseCase{}
		mockUseCase.On("Register", ctx, mock.MatchedBy(func(in *authDomain.RegisterInput) bool {
			return in.Password == "typed-password"
		})).Return(user, nil).Once()

		var out bytes.Buffer
		err := RunCreateUser(ctx, mockUseCase, logger, "alice", "alice@example.com", "", "json",
			IOTuple{Reader: bytes.NewBufferString("typed-password\n"), Writer: &out})
		require.NoError(t, err)

		jsonStart := bytes.IndexByte(out.Bytes(), '{')
		require.GreaterOrEqual(t, jsonStart, 0)

		var got map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes()[jsonStart:], &got))
		assert.Equal(t, user.ID.String(), got["id"])
		assert.Equal(t, "alice", got["username"])
		assert.NotContains(t, got, "password")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("empty-prompted-password", func(t *testing.T) {
		mockUseCase := &mocks.MockSessionUseCase{}

		err := RunCreateUser(ctx, mockUseCase, logger, "alice", "alice@example.com", "", "text",
			IOTuple{Reader: bytes.NewBufferString("\n"), Writer: &bytes.Buffer{}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "password cannot be empty")
		mockUseCase.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("register-error", func(t *testing.T) {
		mockUseCase := &mocks.MockSessionUseCase{}
		mockUseCase.On("Register", ctx, mock.Anything).Return(nil, userDomain.ErrUserAlreadyExists).Once()

		err := RunCreateUser(ctx, mockUseCase, logger, "alice", "alice@example.com", "s3cret", "text",
			IOTuple{Reader: &bytes.Buffer{}, Writer: &bytes.Buffer{}})
		require.Error(t, err)
		assert.True(t, errors.Is(err, userDomain.ErrUserAlreadyExists))
	})
}
