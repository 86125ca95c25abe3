package memory_test

import (
	"context"
	"testing"

	"github.com/corebank/banking-backend/internal/apperrors"
	"github.com/corebank/banking-backend/internal/core/domain"
	"github.com/corebank/banking-backend/internal/repositories/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	user := domain.User{
		UserID:   uuid.NewString(),
		Username: "alice",
		Email:    "alice@example.com",
	}
	require.NoError(t, repo.SaveUser(ctx, user))

	byID, err := repo.FindUserByID(ctx, user.UserID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	byUsername, err := repo.FindUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.UserID, byUsername.UserID)

	_, err = repo.FindUserByID(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = repo.FindUserByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	require.NoError(t, repo.SaveUser(ctx, domain.User{
		UserID: uuid.NewString(), Username: "alice", Email: "alice@example.com",
	}))

	err := repo.SaveUser(ctx, domain.User{
		UserID: uuid.NewString(), Username: "alice", Email: "alice2@example.com",
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	require.NoError(t, repo.SaveUser(ctx, domain.User{
		UserID: uuid.NewString(), Username: "alice", Email: "alice@example.com",
	}))

	err := repo.SaveUser(ctx, domain.User{
		UserID: uuid.NewString(), Username: "alice2", Email: "alice@example.com",
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}
