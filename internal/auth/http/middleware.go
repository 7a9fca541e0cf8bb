package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/notes/internal/auth/domain"
	authUseCase "github.com/allisson/notes/internal/auth/usecase"
	apperrors "github.com/allisson/notes/internal/errors"
	"github.com/allisson/notes/internal/httputil"
	"github.com/allisson/notes/internal/metrics"
)

const bearerPrefix = "bearer "

// AuthenticationMiddleware admits requests that carry a valid, unrevoked
// bearer token in the Authorization header.
//
// The checks run in order and stop at the first failure:
//   - Missing header, non-bearer scheme (case-insensitive) or empty token → 401
//   - Bad signature, malformed or expired token → 401
//   - Revoked token → 401
//   - Revocation store unreachable → 503
//
// On success the verified claims are stored in the request context and are
// available to handlers via GetClaims and GetUserID.
//
// Every decision is logged with a reason code and counted as the "gate"
// operation of the "auth" domain. Token contents are never logged.
func AuthenticationMiddleware(
	sessionUseCase authUseCase.SessionUseCase,
	businessMetrics metrics.BusinessMetrics,
	logger *slog.Logger,
) gin.HandlerFunc {
	reject := func(c *gin.Context, outcome authDomain.GateOutcome, err error) {
		ctx := c.Request.Context()
		logger.DebugContext(ctx, "authentication rejected",
			slog.String("reason", string(outcome)),
			slog.String("path", c.FullPath()))
		businessMetrics.RecordOperation(ctx, "auth", "gate", string(outcome))
		httputil.HandleErrorGin(c, err, logger)
		c.Abort()
	}

	return func(c *gin.Context) {
		token, outcome := ExtractBearerToken(c.GetHeader("Authorization"))
		if outcome != authDomain.GateAdmitted {
			reject(c, outcome, apperrors.ErrUnauthorized)
			return
		}

		claims, err := sessionUseCase.Authenticate(c.Request.Context(), token)
		if err != nil {
			reject(c, authDomain.OutcomeForError(err), err)
			return
		}

		ctx := WithClaims(c.Request.Context(), claims)
		c.Request = c.Request.WithContext(ctx)

		logger.DebugContext(ctx, "authentication admitted",
			slog.String("reason", string(authDomain.GateAdmitted)),
			slog.String("user_id", claims.Subject.String()))
		businessMetrics.RecordOperation(ctx, "auth", "gate", string(authDomain.GateAdmitted))

		c.Next()
	}
}

// ExtractBearerToken parses an Authorization header value. The returned outcome
// is GateAdmitted when a non-empty bearer token was found.
func ExtractBearerToken(header string) (string, authDomain.GateOutcome) {
	if header == "" {
		return "", authDomain.GateMissingHeader
	}
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", authDomain.GateMalformedHeader
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", authDomain.GateMalformedHeader
	}
	return token, authDomain.GateAdmitted
}
