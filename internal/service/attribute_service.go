package service

import (
	"context"
	"fmt"
	"strings"

	"recipe-api/internal/models"
	"recipe-api/internal/repository"
)

// AttributeService 标签/食材服务
type AttributeService[T models.Attribute] struct {
	repo *repository.AttributeRepository[T]
}

// NewAttributeService 创建标签/食材服务
func NewAttributeService[T models.Attribute](repo *repository.AttributeRepository[T]) *AttributeService[T] {
	return &AttributeService[T]{repo: repo}
}

// List 列出用户自己的记录
func (s *AttributeService[T]) List(ctx context.Context, userID uint, assignedOnly bool) ([]T, error) {
	return s.repo.ListByUserID(ctx, userID, assignedOnly)
}

// Create 以当前用户为所有者创建记录
func (s *AttributeService[T]) Create(ctx context.Context, userID uint, name string) (*T, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, newValidationError("name", "名称不能为空")
	}

	item := newAttribute[T](name, userID)
	if err := s.repo.Create(ctx, &item); err != nil {
		return nil, fmt.Errorf("保存失败: %w", err)
	}
	return &item, nil
}

func newAttribute[T models.Attribute](name string, userID uint) T {
	var item T
	switch p := any(&item).(type) {
	case *models.Tag:
		p.Name, p.UserID = name, userID
	case *models.Ingredient:
		p.Name, p.UserID = name, userID
	}
	return item
}
