package repository

import (
	"context"

	"recipe-api/internal/models"

	"gorm.io/gorm"
)

// AttributeRepository 标签/食材数据访问层，所有查询都按所属用户过滤
type AttributeRepository[T models.Attribute] struct {
	db        *gorm.DB
	joinTable string
	joinKey   string
}

// NewTagRepository 创建标签Repository
func NewTagRepository(db *gorm.DB) *AttributeRepository[models.Tag] {
	return &AttributeRepository[models.Tag]{db: db, joinTable: models.RecipeTagsTable, joinKey: "tag_id"}
}

// NewIngredientRepository 创建食材Repository
func NewIngredientRepository(db *gorm.DB) *AttributeRepository[models.Ingredient] {
	return &AttributeRepository[models.Ingredient]{db: db, joinTable: models.RecipeIngredientsTable, joinKey: "ingredient_id"}
}

// Create 创建记录
func (r *AttributeRepository[T]) Create(ctx context.Context, item *T) error {
	return mapError(r.db.WithContext(ctx).Create(item).Error)
}

// ListByUserID 按名称倒序返回用户的记录，assignedOnly 时只返回被菜谱引用的记录
func (r *AttributeRepository[T]) ListByUserID(ctx context.Context, userID uint, assignedOnly bool) ([]T, error) {
	items := make([]T, 0)

	query := r.db.WithContext(ctx).Model(new(T)).Where("user_id = ?", userID)
	if assignedOnly {
		// 子查询天然去重，不需要 DISTINCT
		query = query.Where("id IN (?)", r.db.Table(r.joinTable).Select(r.joinKey))
	}

	err := query.Order("name DESC").Order("id DESC").Find(&items).Error
	return items, err
}

// GetByIDsAndUserID 返回用户拥有的指定记录，不属于该用户的ID会被忽略
func (r *AttributeRepository[T]) GetByIDsAndUserID(ctx context.Context, ids []uint, userID uint) ([]T, error) {
	items := make([]T, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	err := r.db.WithContext(ctx).Where("id IN ? AND user_id = ?", ids, userID).Find(&items).Error
	return items, err
}
