package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/corebank/banking-backend/internal/apperrors"
	portssvc "github.com/corebank/banking-backend/internal/core/ports/services"
)

// AuthMiddleware resolves the bearer token through the session registry and
// stores the bound user id in the request context. Clients may send either
// "Authorization: Bearer <token>" or the raw token.
func AuthMiddleware(sessions portssvc.SessionSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization token"})
			return
		}
		token := authHeader
		if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			token = parts[1]
		}

		userID, err := sessions.Verify(c.Request.Context(), token)
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, apperrors.ErrSessionExpired) {
				msg = "Token has expired"
			}
			logger.Warn("session verification failed", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		ctx := withUserID(c.Request.Context(), userID)
		ctx = withBearerToken(ctx, token)
		ctx = withLogger(ctx, logger.With(slog.String("user_id", userID)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
