package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// userIDKey stores the authenticated user's id in the request context.
const userIDKey = contextKey("userID")

// bearerTokenKey stores the raw bearer token so logout can revoke it.
const bearerTokenKey = contextKey("bearerToken")

// GetUserIDFromContext retrieves the authenticated user id set by AuthMiddleware.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetBearerTokenFromContext retrieves the raw bearer token of the request.
func GetBearerTokenFromContext(c *gin.Context) (string, bool) {
	token, ok := c.Request.Context().Value(bearerTokenKey).(string)
	return token, ok && token != ""
}

func withUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func withBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerTokenKey, token)
}
