package memory

import (
	"context"
	"sync"

	"github.com/corebank/banking-backend/internal/apperrors"
	"github.com/corebank/banking-backend/internal/core/domain"
	portsrepo "github.com/corebank/banking-backend/internal/core/ports/repositories"
)

// UserRepository is the in-memory user store.
type UserRepository struct {
	mu         sync.RWMutex
	byID       map[string]domain.User
	byUsername map[string]string
	byEmail    map[string]string
}

// NewUserRepository creates an empty in-memory user store.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:       make(map[string]domain.User),
		byUsername: make(map[string]string),
		byEmail:    make(map[string]string),
	}
}

var _ portsrepo.UserRepository = (*UserRepository)(nil)

// SaveUser persists a new user, enforcing username and email uniqueness.
func (r *UserRepository) SaveUser(ctx context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byUsername[user.Username]; taken {
		return apperrors.ErrDuplicate
	}
	if _, taken := r.byEmail[user.Email]; taken {
		return apperrors.ErrDuplicate
	}
	r.byID[user.UserID] = user
	r.byUsername[user.Username] = user.UserID
	r.byEmail[user.Email] = user.UserID
	return nil
}

// FindUserByID retrieves a user by id.
func (r *UserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &user, nil
}

// FindUserByUsername retrieves a user by username.
func (r *UserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byUsername[username]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	user := r.byID[id]
	return &user, nil
}
