package commands

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	authDomain "github.com/allisson/notes/internal/auth/domain"
	authUseCase "github.com/allisson/notes/internal/auth/usecase"
	userDomain "github.com/allisson/notes/internal/user/domain"
)

// createUserOutput is the JSON shape printed by create-user. It never
// includes the password hash.
type createUserOutput struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// RunCreateUser registers an account through the session service, so the same
// validation and uniqueness rules apply as for POST /auth/register.
// When password is empty it is read from io.Reader.
func RunCreateUser(
	ctx context.Context,
	sessionUseCase authUseCase.SessionUseCase,
	logger *slog.Logger,
	username string,
	email string,
	password string,
	format string,
	io IOTuple,
) error {
	logger.Info("creating user", slog.String("username", username))

	if password == "" {
		var err error
		password, err = promptForPassword(io)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
	}

	user, err := sessionUseCase.Register(ctx, &authDomain.RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if format == "json" {
		if err := writeJSON(io.Writer, toCreateUserOutput(user)); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintln(io.Writer, "User created successfully")
		_, _ = fmt.Fprintf(io.Writer, "ID: %s\n", user.ID)
		_, _ = fmt.Fprintf(io.Writer, "Username: %s\n", user.Username)
		_, _ = fmt.Fprintf(io.Writer, "Email: %s\n", user.Email)
	}

	logger.Info("user created successfully", slog.String("user_id", user.ID.String()))
	return nil
}

func promptForPassword(io IOTuple) (string, error) {
	_, _ = fmt.Fprint(io.Writer, "Enter password: ")

	reader := bufio.NewReader(io.Reader)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}

	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	return password, nil
}

func toCreateUserOutput(user *userDomain.User) createUserOutput {
	return createUserOutput{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
