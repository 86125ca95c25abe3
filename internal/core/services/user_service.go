package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/corebank/banking-backend/internal/apperrors"
	"github.com/corebank/banking-backend/internal/core/domain"
	portsrepo "github.com/corebank/banking-backend/internal/core/ports/repositories"
	portssvc "github.com/corebank/banking-backend/internal/core/ports/services"
	"github.com/corebank/banking-backend/internal/dto"
	"github.com/corebank/banking-backend/internal/middleware"
	"github.com/corebank/banking-backend/internal/utils"
)

// userService implements registration and credential verification.
type userService struct {
	userRepo portsrepo.UserRepository
}

// NewUserService creates the user service.
func NewUserService(userRepo portsrepo.UserRepository) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// Register validates the request, hashes the password, and persists the user.
func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	username := utils.SanitizeString(req.Username)
	if username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", apperrors.ErrValidation)
	}
	if !utils.IsValidEmail(req.Email) {
		return nil, fmt.Errorf("%w: invalid email format", apperrors.ErrValidation)
	}

	digest, err := utils.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, err
		}
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}

	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		Email:        req.Email,
		PasswordHash: digest,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username or email already taken", apperrors.ErrDuplicate)
		}
		return nil, apperrors.NewAppError(500, "failed to save user", err)
	}
	return &user, nil
}

// Authenticate verifies a username/password pair. Unknown users and bad
// passwords are indistinguishable to the caller.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, apperrors.NewAppError(500, "failed to look up user", err)
	}

	if err := utils.CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, apperrors.ErrCorruptCredential) {
			// A digest we cannot parse is a data problem, not a caller problem.
			middleware.GetLoggerFromCtx(ctx).Error("corrupt password digest",
				slog.String("user_id", user.UserID))
			return nil, apperrors.NewAppError(500, "corrupt credential for user", err)
		}
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

// GetUserByID resolves a user by id.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}
