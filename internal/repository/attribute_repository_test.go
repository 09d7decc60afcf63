package repository_test

import (
	"context"
	"testing"

	"recipe-api/internal/models"
	"recipe-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagRepository_ListByUserID(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewTagRepository(db)
	ctx := context.Background()

	user := createUser(t, db, "user@example.com")
	other := createUser(t, db, "other@example.com")

	for _, tag := range []*models.Tag{
		{Name: "Vegan", UserID: user.ID},
		{Name: "Dessert", UserID: user.ID},
		{Name: "Fruity", UserID: other.ID},
	} {
		require.NoError(t, repo.Create(ctx, tag))
	}

	tags, err := repo.ListByUserID(ctx, user.ID, false)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "Vegan", tags[0].Name, "按名称倒序")
	assert.Equal(t, "Dessert", tags[1].Name)

	empty, err := repo.ListByUserID(ctx, user.ID+100, false)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestIngredientRepository_AssignedOnly(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewIngredientRepository(db)
	ctx := context.Background()
	user := createUser(t, db, "user@example.com")

	eggs := &models.Ingredient{Name: "Eggs", UserID: user.ID}
	salt := &models.Ingredient{Name: "Salt", UserID: user.ID}
	require.NoError(t, repo.Create(ctx, eggs))
	require.NoError(t, repo.Create(ctx, salt))

	// 同一食材被两个菜谱使用时也只返回一次
	createRecipe(t, db, user.ID, "Eggs Benedict", nil, []models.Ingredient{*eggs})
	createRecipe(t, db, user.ID, "Herb Eggs", nil, []models.Ingredient{*eggs})

	assigned, err := repo.ListByUserID(ctx, user.ID, true)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, eggs.ID, assigned[0].ID)

	all, err := repo.ListByUserID(ctx, user.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTagRepository_GetByIDsAndUserID(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewTagRepository(db)
	ctx := context.Background()

	user := createUser(t, db, "user@example.com")
	other := createUser(t, db, "other@example.com")

	mine := &models.Tag{Name: "Mine", UserID: user.ID}
	theirs := &models.Tag{Name: "Theirs", UserID: other.ID}
	require.NoError(t, repo.Create(ctx, mine))
	require.NoError(t, repo.Create(ctx, theirs))

	found, err := repo.GetByIDsAndUserID(ctx, []uint{mine.ID, theirs.ID}, user.ID)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, mine.ID, found[0].ID)

	none, err := repo.GetByIDsAndUserID(ctx, nil, user.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}
