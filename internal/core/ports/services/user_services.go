package services

import (
	"context"

	"github.com/corebank/banking-backend/internal/core/domain"
	"github.com/corebank/banking-backend/internal/dto"
)

// UserSvcFacade exposes registration and credential verification.
type UserSvcFacade interface {
	// Register creates a new user from validated input. Returns
	// apperrors.ErrValidation for malformed fields and
	// apperrors.ErrDuplicate when the username or email is taken.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// Authenticate verifies a username/password pair. Both unknown-user and
	// bad-password cases return apperrors.ErrUnauthorized so the caller
	// cannot distinguish them.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// GetUserByID resolves a user by id.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
