package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// 菜谱与属性的多对多关联表
const (
	RecipeTagsTable        = "recipe_tags"
	RecipeIngredientsTable = "recipe_ingredients"
)

// Recipe 菜谱模型
type Recipe struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	UserID      uint            `gorm:"not null;index" json:"-"`
	Title       string          `gorm:"size:255;not null" json:"title"`
	TimeMinutes int             `gorm:"not null" json:"time_minutes"`
	Price       decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"price"`
	Link        string          `gorm:"size:255" json:"link"`
	Image       string          `gorm:"size:255" json:"image"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// 关联
	Tags        []Tag        `gorm:"many2many:recipe_tags" json:"tags"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients" json:"ingredients"`
}

// TableName 指定表名
func (Recipe) TableName() string {
	return "recipes"
}

// TagIDs 返回关联标签的ID
func (r *Recipe) TagIDs() []uint {
	ids := make([]uint, len(r.Tags))
	for i, t := range r.Tags {
		ids[i] = t.ID
	}
	return ids
}

// IngredientIDs 返回关联食材的ID
func (r *Recipe) IngredientIDs() []uint {
	ids := make([]uint, len(r.Ingredients))
	for i, in := range r.Ingredients {
		ids[i] = in.ID
	}
	return ids
}
