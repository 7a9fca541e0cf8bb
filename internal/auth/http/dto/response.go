package dto

import (
	"time"

	authDomain "github.com/allisson/notes/internal/auth/domain"
	userDomain "github.com/allisson/notes/internal/user/domain"
)

// UserResponse is the public projection of a user. It never includes the password hash.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// MapUserToResponse converts a domain user to an API response.
func MapUserToResponse(user *userDomain.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// LoginResponse contains the issued token and the logged in user.
type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt time.Time    `json:"expires_at"`
	UserInfo  UserResponse `json:"user_info"`
}

// MapLoginOutputToResponse converts a login result to an API response.
func MapLoginOutputToResponse(output *authDomain.LoginOutput) LoginResponse {
	return LoginResponse{
		Token:     output.Token,
		TokenType: "Bearer",
		ExpiresAt: output.ExpiresAt,
		UserInfo:  MapUserToResponse(output.User),
	}
}
