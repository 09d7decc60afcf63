package repository_test

import (
	"context"
	"testing"

	"recipe-api/internal/models"
	"recipe-api/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(recipes []models.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.Title
	}
	return out
}

func TestRecipeRepository_ListOwnedNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewRecipeRepository(db)
	ctx := context.Background()

	user := createUser(t, db, "user@example.com")
	other := createUser(t, db, "other@example.com")
	createRecipe(t, db, user.ID, "First", nil, nil)
	createRecipe(t, db, other.ID, "Not mine", nil, nil)
	createRecipe(t, db, user.ID, "Second", nil, nil)

	recipes, err := repo.List(ctx, repository.RecipeFilter{UserID: user.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"Second", "First"}, titles(recipes))
}

func TestRecipeRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewRecipeRepository(db)
	ctx := context.Background()
	user := createUser(t, db, "user@example.com")

	vegan := models.Tag{Name: "Vegan", UserID: user.ID}
	veggie := models.Tag{Name: "Vegetarian", UserID: user.ID}
	feta := models.Ingredient{Name: "Feta", UserID: user.ID}
	require.NoError(t, db.Create(&vegan).Error)
	require.NoError(t, db.Create(&veggie).Error)
	require.NoError(t, db.Create(&feta).Error)

	createRecipe(t, db, user.ID, "Curry", []models.Tag{vegan}, nil)
	createRecipe(t, db, user.ID, "Tahini", []models.Tag{veggie}, []models.Ingredient{feta})
	createRecipe(t, db, user.ID, "Fish", nil, nil)

	byTags, err := repo.List(ctx, repository.RecipeFilter{UserID: user.ID, TagIDs: []uint{vegan.ID, veggie.ID}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Curry", "Tahini"}, titles(byTags))

	both, err := repo.List(ctx, repository.RecipeFilter{
		UserID:        user.ID,
		TagIDs:        []uint{vegan.ID, veggie.ID},
		IngredientIDs: []uint{feta.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Tahini"}, titles(both))
	require.Len(t, both[0].Tags, 1)
	assert.Equal(t, veggie.ID, both[0].Tags[0].ID)
}

func TestRecipeRepository_GetByIDAndUserID(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewRecipeRepository(db)
	ctx := context.Background()

	user := createUser(t, db, "user@example.com")
	other := createUser(t, db, "other@example.com")
	recipe := createRecipe(t, db, user.ID, "Mine", nil, nil)

	got, err := repo.GetByIDAndUserID(ctx, recipe.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("5.50").Equal(got.Price))

	_, err = repo.GetByIDAndUserID(ctx, recipe.ID, other.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRecipeRepository_UpdateAssociations(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewRecipeRepository(db)
	ctx := context.Background()
	user := createUser(t, db, "user@example.com")

	breakfast := models.Tag{Name: "Breakfast", UserID: user.ID}
	lunch := models.Tag{Name: "Lunch", UserID: user.ID}
	require.NoError(t, db.Create(&breakfast).Error)
	require.NoError(t, db.Create(&lunch).Error)

	recipe := createRecipe(t, db, user.ID, "Eggs", []models.Tag{breakfast}, nil)

	// 只替换标签，标量字段同步保存
	recipe.Title = "Better eggs"
	require.NoError(t, repo.Update(ctx, recipe, &[]models.Tag{lunch}, nil))

	got, err := repo.GetByIDAndUserID(ctx, recipe.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Better eggs", got.Title)
	assert.Equal(t, []uint{lunch.ID}, got.TagIDs())

	// 空列表清空关联，标签本身保留
	require.NoError(t, repo.Update(ctx, got, &[]models.Tag{}, nil))
	got, err = repo.GetByIDAndUserID(ctx, recipe.ID, user.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Tags)

	var count int64
	require.NoError(t, db.Model(&models.Tag{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestRecipeRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewRecipeRepository(db)
	ctx := context.Background()
	user := createUser(t, db, "user@example.com")

	tag := models.Tag{Name: "Dinner", UserID: user.ID}
	require.NoError(t, db.Create(&tag).Error)
	recipe := createRecipe(t, db, user.ID, "Soup", []models.Tag{tag}, nil)

	require.NoError(t, repo.Delete(ctx, recipe))

	_, err := repo.GetByIDAndUserID(ctx, recipe.ID, user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	var links int64
	require.NoError(t, db.Table(models.RecipeTagsTable).Where("recipe_id = ?", recipe.ID).Count(&links).Error)
	assert.Zero(t, links)
}
