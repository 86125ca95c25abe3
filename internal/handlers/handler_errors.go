package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/corebank/banking-backend/internal/apperrors"
	"github.com/corebank/banking-backend/internal/middleware"
)

// ErrorResponse is the structured error body returned on every failure path.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps service errors onto the HTTP taxonomy. Internal causes
// are logged, never echoed; insufficient funds is distinguished in the body.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Insufficient balance"})
	case errors.Is(err, apperrors.ErrUnauthorized), errors.Is(err, apperrors.ErrSessionExpired):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Access denied"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Resource already exists"})
	default:
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("request failed",
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}
