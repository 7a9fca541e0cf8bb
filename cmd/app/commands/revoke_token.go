package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	authUseCase "github.com/allisson/notes/internal/auth/usecase"
)

// RunRevokeToken adds a token to the revocation list for the rest of its
// lifetime. An already expired token is accepted and left alone.
func RunRevokeToken(
	ctx context.Context,
	sessionUseCase authUseCase.SessionUseCase,
	logger *slog.Logger,
	token string,
	io IOTuple,
) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("token is required")
	}

	if err := sessionUseCase.Logout(ctx, token); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	_, _ = fmt.Fprintln(io.Writer, "Token revoked")
	logger.Info("token revoked")
	return nil
}
