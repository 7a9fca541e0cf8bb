package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/notes/internal/auth/domain"
	"github.com/allisson/notes/internal/auth/http/mocks"
)

func TestRunRevokeToken(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("success", func(t *testing.T) {
		mockUseCase := &mocks.MockSessionUseCase{}
		mockUseCase.On("Logout", ctx, "header.payload.signature").Return(nil).Once()

		var out bytes.Buffer
		err := RunRevokeToken(ctx, mockUseCase, logger, " header.payload.signature\n", IOTuple{Writer: &out})
		require.NoError(t, err)
		assert.Equal(t, "Token revoked\n", out.String())
		mockUseCase.AssertExpectations(t)
	})

	t.Run("empty-token", func(t *testing.T) {
		mockUseCase := &mocks.MockSessionUseCase{}

		err := RunRevokeToken(ctx, mockUseCase, logger, "  ", IOTuple{Writer: &bytes.Buffer{}})
		require.Error(t, err)
		mockUseCase.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
	})

	t.Run("invalid-token", func(t *testing.T) {
		mockUseCase := &mocks.MockSessionUseCase{}
		mockUseCase.On("Logout", ctx, "garbage").Return(authDomain.ErrMalformedCredential).Once()

		err := RunRevokeToken(ctx, mockUseCase, logger, "garbage", IOTuple{Writer: &bytes.Buffer{}})
		require.ErrorIs(t, err, authDomain.ErrMalformedCredential)
	})
}
