package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/habitflow/internal/error_values"
	"github.com/limbo/habitflow/internal/repository"
	"github.com/limbo/habitflow/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUsersCreateAndFind(t *testing.T) {
	repo := repository.NewMemoryUsersRepo()
	ctx := context.Background()
	user, err := repo.Create(ctx, &entity.User{
		Username:     "test_user",
		Email:        "test@example.com",
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.UUID{}, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byEmail, err := repo.FindByEmail(ctx, "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "test_user", byID.Username)
}

func TestMemoryUsersDuplicateEmail(t *testing.T) {
	repo := repository.NewMemoryUsersRepo()
	ctx := context.Background()
	_, err := repo.Create(ctx, &entity.User{Username: "a", Email: "dup@example.com", PasswordHash: "h"})
	require.NoError(t, err)
	// Case-insensitive uniqueness
	_, err = repo.Create(ctx, &entity.User{Username: "b", Email: "Dup@Example.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, errorvalues.ErrUserExists)
}

func TestMemoryUsersNotFound(t *testing.T) {
	repo := repository.NewMemoryUsersRepo()
	ctx := context.Background()
	_, err := repo.FindByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
}
