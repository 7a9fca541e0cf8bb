package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/notes/internal/auth/http/dto"
	authUseCase "github.com/allisson/notes/internal/auth/usecase"
	apperrors "github.com/allisson/notes/internal/errors"
	"github.com/allisson/notes/internal/httputil"
	customValidation "github.com/allisson/notes/internal/validation"
)

// SessionHandler handles HTTP requests for registration, login, logout and
// the current user.
type SessionHandler struct {
	sessionUseCase authUseCase.SessionUseCase
	logger         *slog.Logger
}

// NewSessionHandler creates a new session handler with required dependencies.
func NewSessionHandler(sessionUseCase authUseCase.SessionUseCase, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		sessionUseCase: sessionUseCase,
		logger:         logger,
	}
}

// RegisterHandler creates an account.
// POST /auth/register - No authentication required.
// Returns 201 Created with the public user, or 409 Conflict for a taken username or email.
func (h *SessionHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	user, err := h.sessionUseCase.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.InfoContext(c.Request.Context(), "user registered", slog.String("user_id", user.ID.String()))
	c.JSON(http.StatusCreated, dto.MapUserToResponse(user))
}

// LoginHandler exchanges credentials for a bearer token.
// POST /auth/login - No authentication required.
// Returns 200 OK with the token, its expiry and the user, or 401 for bad credentials.
func (h *SessionHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.sessionUseCase.Login(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.InfoContext(c.Request.Context(), "user logged in", slog.String("user_id", output.User.ID.String()))
	c.JSON(http.StatusOK, dto.MapLoginOutputToResponse(output))
}

// LogoutHandler revokes the bearer token of the request.
// POST /auth/logout - Reads the bearer token directly so an expired token can still log out.
// Returns 204 No Content.
func (h *SessionHandler) LogoutHandler(c *gin.Context) {
	token, outcome := ExtractBearerToken(c.GetHeader("Authorization"))
	if token == "" {
		h.logger.DebugContext(c.Request.Context(), "logout rejected", slog.String("reason", string(outcome)))
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	if err := h.sessionUseCase.Logout(c.Request.Context(), token); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// MeHandler returns the authenticated user.
// GET /auth/me - Requires AuthenticationMiddleware.
func (h *SessionHandler) MeHandler(c *gin.Context) {
	userID, ok := GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	user, err := h.sessionUseCase.Me(c.Request.Context(), userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}
