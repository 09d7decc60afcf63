package repository

import (
	"context"

	"recipe-api/internal/models"

	"gorm.io/gorm"
)

// RecipeFilter 菜谱列表的过滤条件
// TagIDs/IngredientIDs 内部为"任一匹配"，两者同时给出时取交集
type RecipeFilter struct {
	UserID        uint
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipeRepository 菜谱数据访问层
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository 创建菜谱Repository
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// scope 根据过滤条件构造查询
func (r *RecipeRepository) scope(ctx context.Context, filter RecipeFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Recipe{}).Where("user_id = ?", filter.UserID)

	if len(filter.TagIDs) > 0 {
		query = query.Where("id IN (?)", r.db.Table(models.RecipeTagsTable).
			Select("recipe_id").Where("tag_id IN ?", filter.TagIDs))
	}
	if len(filter.IngredientIDs) > 0 {
		query = query.Where("id IN (?)", r.db.Table(models.RecipeIngredientsTable).
			Select("recipe_id").Where("ingredient_id IN ?", filter.IngredientIDs))
	}

	return query
}

// List 按ID倒序返回符合条件的菜谱
func (r *RecipeRepository) List(ctx context.Context, filter RecipeFilter) ([]models.Recipe, error) {
	recipes := make([]models.Recipe, 0)
	err := r.scope(ctx, filter).
		Preload("Tags").
		Preload("Ingredients").
		Order("id DESC").
		Find(&recipes).Error
	return recipes, err
}

// GetByIDAndUserID 获取用户自己的菜谱
func (r *RecipeRepository) GetByIDAndUserID(ctx context.Context, id uint, userID uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.WithContext(ctx).
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id ASC") }).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("ingredients.id ASC") }).
		Where("id = ? AND user_id = ?", id, userID).
		First(&recipe).Error
	if err != nil {
		return nil, mapError(err)
	}
	return &recipe, nil
}

// Create 创建菜谱及其关联，只写关联表不回写标签/食材本身
func (r *RecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	return mapError(r.db.WithContext(ctx).Omit("Tags.*", "Ingredients.*").Create(recipe).Error)
}

// Update 在一个事务内保存标量字段，并按需替换关联
// tags/ingredients 为 nil 表示不修改对应关联
func (r *RecipeRepository) Update(ctx context.Context, recipe *models.Recipe, tags *[]models.Tag, ingredients *[]models.Ingredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(recipe).
			Select("title", "time_minutes", "price", "link").
			Updates(recipe).Error
		if err != nil {
			return err
		}

		if tags != nil {
			if err := replaceAssociation(tx, recipe, "Tags", *tags); err != nil {
				return err
			}
			recipe.Tags = *tags
		}
		if ingredients != nil {
			if err := replaceAssociation(tx, recipe, "Ingredients", *ingredients); err != nil {
				return err
			}
			recipe.Ingredients = *ingredients
		}
		return nil
	})
}

func replaceAssociation[T models.Attribute](tx *gorm.DB, recipe *models.Recipe, name string, items []T) error {
	assoc := tx.Model(recipe).Omit(name + ".*").Association(name)
	if len(items) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(items)
}

// UpdateImage 只更新图片路径
func (r *RecipeRepository) UpdateImage(ctx context.Context, recipe *models.Recipe, image string) error {
	if err := r.db.WithContext(ctx).Model(recipe).Update("image", image).Error; err != nil {
		return err
	}
	recipe.Image = image
	return nil
}

// Delete 删除菜谱及其关联行
func (r *RecipeRepository) Delete(ctx context.Context, recipe *models.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Ingredients").Clear(); err != nil {
			return err
		}
		return tx.Delete(recipe).Error
	})
}
