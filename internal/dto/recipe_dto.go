package dto

import (
	"strings"

	"recipe-api/internal/models"

	"github.com/shopspring/decimal"
)

// AttributeRequest 创建标签/食材请求
type AttributeRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// AttributeResponse 标签/食材响应
type AttributeResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// NewAttributeResponse 转换单个标签/食材
func NewAttributeResponse[T models.Attribute](item T) AttributeResponse {
	switch v := any(item).(type) {
	case models.Tag:
		return AttributeResponse{ID: v.ID, Name: v.Name}
	case models.Ingredient:
		return AttributeResponse{ID: v.ID, Name: v.Name}
	}
	return AttributeResponse{}
}

// NewAttributeResponses 转换标签/食材列表
func NewAttributeResponses[T models.Attribute](items []T) []AttributeResponse {
	resp := make([]AttributeResponse, len(items))
	for i, item := range items {
		resp[i] = NewAttributeResponse(item)
	}
	return resp
}

// RecipeRequest 创建或整体替换(PUT)菜谱
// 未提供 tags/ingredients 时整体替换会清空对应关联
type RecipeRequest struct {
	Title       *string          `json:"title" binding:"required,min=1,max=255"`
	TimeMinutes *int             `json:"time_minutes" binding:"required,min=0"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Link        *string          `json:"link" binding:"omitempty,max=255"`
	Tags        *[]uint          `json:"tags" binding:"omitempty,idlist"`
	Ingredients *[]uint          `json:"ingredients" binding:"omitempty,idlist"`
}

// RecipePatchRequest 部分更新(PATCH)菜谱，只修改出现的字段
type RecipePatchRequest struct {
	Title       *string          `json:"title" binding:"omitempty,min=1,max=255"`
	TimeMinutes *int             `json:"time_minutes" binding:"omitempty,min=0"`
	Price       *decimal.Decimal `json:"price"`
	Link        *string          `json:"link" binding:"omitempty,max=255"`
	Tags        *[]uint          `json:"tags" binding:"omitempty,idlist"`
	Ingredients *[]uint          `json:"ingredients" binding:"omitempty,idlist"`
}

// Patch 将整体替换请求转换为字段全部出现的部分更新
func (r *RecipeRequest) Patch() *RecipePatchRequest {
	empty := []uint{}
	patch := &RecipePatchRequest{
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Tags:        r.Tags,
		Ingredients: r.Ingredients,
	}
	if patch.Link == nil {
		blank := ""
		patch.Link = &blank
	}
	if patch.Tags == nil {
		patch.Tags = &empty
	}
	if patch.Ingredients == nil {
		patch.Ingredients = &empty
	}
	return patch
}

// RecipeShape 菜谱响应的形态
type RecipeShape int

const (
	// ShapeList 列表/写操作形态，关联只给出ID
	ShapeList RecipeShape = iota
	// ShapeDetail 详情形态，关联展开为对象
	ShapeDetail
	// ShapeImage 上传图片后的形态
	ShapeImage
)

// RecipeResponse 列表形态
type RecipeResponse struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Tags        []uint  `json:"tags"`
	Ingredients []uint  `json:"ingredients"`
	TimeMinutes int     `json:"time_minutes"`
	Price       string  `json:"price"`
	Link        string  `json:"link"`
	Image       *string `json:"image"`
}

// RecipeDetailResponse 详情形态
type RecipeDetailResponse struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	Tags        []AttributeResponse `json:"tags"`
	Ingredients []AttributeResponse `json:"ingredients"`
	TimeMinutes int                 `json:"time_minutes"`
	Price       string              `json:"price"`
	Link        string              `json:"link"`
	Image       *string             `json:"image"`
}

// RecipeImageResponse 图片形态
type RecipeImageResponse struct {
	ID    uint    `json:"id"`
	Image *string `json:"image"`
}

// RecipeRenderer 按形态渲染菜谱，mediaURL 为图片访问前缀
type RecipeRenderer struct {
	MediaURL string
}

// Render 渲染单个菜谱
func (r RecipeRenderer) Render(recipe *models.Recipe, shape RecipeShape) interface{} {
	switch shape {
	case ShapeDetail:
		return RecipeDetailResponse{
			ID:          recipe.ID,
			Title:       recipe.Title,
			Tags:        NewAttributeResponses(recipe.Tags),
			Ingredients: NewAttributeResponses(recipe.Ingredients),
			TimeMinutes: recipe.TimeMinutes,
			Price:       recipe.Price.StringFixed(2),
			Link:        recipe.Link,
			Image:       r.imageURL(recipe.Image),
		}
	case ShapeImage:
		return RecipeImageResponse{
			ID:    recipe.ID,
			Image: r.imageURL(recipe.Image),
		}
	default:
		return r.list(recipe)
	}
}

// RenderList 渲染菜谱列表
func (r RecipeRenderer) RenderList(recipes []models.Recipe) []RecipeResponse {
	resp := make([]RecipeResponse, len(recipes))
	for i := range recipes {
		resp[i] = r.list(&recipes[i])
	}
	return resp
}

func (r RecipeRenderer) list(recipe *models.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:          recipe.ID,
		Title:       recipe.Title,
		Tags:        recipe.TagIDs(),
		Ingredients: recipe.IngredientIDs(),
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price.StringFixed(2),
		Link:        recipe.Link,
		Image:       r.imageURL(recipe.Image),
	}
}

func (r RecipeRenderer) imageURL(image string) *string {
	if image == "" {
		return nil
	}
	url := strings.TrimSuffix(r.MediaURL, "/") + "/" + image
	return &url
}
