package repository

import (
	"context"

	"recipe-api/internal/models"

	"gorm.io/gorm"
)

// TokenRepository 访问令牌数据访问层
type TokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository 创建令牌Repository
func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// GetByUserID 获取用户已有的令牌
func (r *TokenRepository) GetByUserID(ctx context.Context, userID uint) (*models.AuthToken, error) {
	var token models.AuthToken
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&token).Error; err != nil {
		return nil, mapError(err)
	}
	return &token, nil
}

// GetByKey 根据令牌获取令牌及其用户
func (r *TokenRepository) GetByKey(ctx context.Context, key string) (*models.AuthToken, error) {
	var token models.AuthToken
	if err := r.db.WithContext(ctx).Preload("User").Where("token_key = ?", key).First(&token).Error; err != nil {
		return nil, mapError(err)
	}
	return &token, nil
}

// Create 保存新令牌
func (r *TokenRepository) Create(ctx context.Context, token *models.AuthToken) error {
	return mapError(r.db.WithContext(ctx).Create(token).Error)
}
