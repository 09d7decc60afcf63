package repository_test

import (
	"context"
	"testing"

	"recipe-api/internal/models"
	"recipe-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Email: "test@example.com", PasswordHash: "hash", Name: "Test"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)

	got, err := repo.GetByEmail(ctx, "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.True(t, got.IsActive, "is_active 默认为 true")

	exists, err := repo.ExistsByEmail(ctx, "test@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.GetByID(ctx, user.ID+100)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Email: "dup@example.com", PasswordHash: "x"}))
	err := repo.Create(ctx, &models.User{Email: "dup@example.com", PasswordHash: "y"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEntry)
}

func TestUserRepository_List(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		createUser(t, db, email)
	}

	users, total, err := repo.List(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, users, 1)
	assert.Equal(t, "b@example.com", users[0].Email)
}

func TestTokenRepository(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewTokenRepository(db)
	ctx := context.Background()
	user := createUser(t, db, "token@example.com")

	_, err := repo.GetByUserID(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.Create(ctx, &models.AuthToken{Key: "abc123", UserID: user.ID}))

	token, err := repo.GetByKey(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, token.UserID)
	assert.Equal(t, "token@example.com", token.User.Email)

	err = repo.Create(ctx, &models.AuthToken{Key: "other", UserID: user.ID})
	assert.ErrorIs(t, err, repository.ErrDuplicateEntry, "每个用户最多一个令牌")
}
