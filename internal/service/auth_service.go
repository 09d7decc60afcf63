package service

import (
	"context"
	"errors"
	"fmt"

	"recipe-api/internal/config"
	"recipe-api/internal/models"
	"recipe-api/internal/repository"
	"recipe-api/internal/utils"

	"github.com/sirupsen/logrus"
)

// AuthService 账户与令牌服务
type AuthService struct {
	userRepo   *repository.UserRepository
	tokenRepo  *repository.TokenRepository
	tokenBytes int
	logger     logrus.FieldLogger
}

// NewAuthService 创建认证服务
func NewAuthService(userRepo *repository.UserRepository, tokenRepo *repository.TokenRepository, cfg *config.Config, logger logrus.FieldLogger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		tokenBytes: cfg.Auth.TokenBytes,
		logger:     logger,
	}
}

// CreateUser 创建普通用户，邮箱为空时返回校验错误且不写库
func (s *AuthService) CreateUser(ctx context.Context, email, password, name string) (*models.User, error) {
	return s.createUser(ctx, &models.User{Name: name}, email, password)
}

// CreateSuperuser 创建超级用户
func (s *AuthService) CreateSuperuser(ctx context.Context, email, password string) (*models.User, error) {
	return s.createUser(ctx, &models.User{IsStaff: true, IsSuperuser: true}, email, password)
}

func (s *AuthService) createUser(ctx context.Context, user *models.User, email, password string) (*models.User, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return nil, newValidationError("email", "用户必须提供邮箱")
	}
	if password == "" {
		return nil, newValidationError("password", "密码不能为空")
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("检查邮箱失败: %w", err)
	}
	if exists {
		return nil, newValidationError("email", "该邮箱已被注册")
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("密码哈希失败: %w", err)
	}

	user.Email = email
	user.PasswordHash = hashedPassword
	user.IsActive = true

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, newValidationError("email", "该邮箱已被注册")
		}
		return nil, fmt.Errorf("创建用户失败: %w", err)
	}

	return user, nil
}

// Authenticate 校验邮箱和密码，成功时返回用户已有的令牌或新签发的令牌
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", ErrAuthenticationFailed
	}

	user, err := s.userRepo.GetByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrAuthenticationFailed
		}
		return "", fmt.Errorf("查询用户失败: %w", err)
	}

	if err := utils.CheckPassword(password, user.PasswordHash); err != nil {
		return "", ErrAuthenticationFailed
	}
	if !user.IsActive {
		return "", ErrAuthenticationFailed
	}

	token, err := s.getOrCreateToken(ctx, user.ID)
	if err != nil {
		return "", err
	}
	return token.Key, nil
}

func (s *AuthService) getOrCreateToken(ctx context.Context, userID uint) (*models.AuthToken, error) {
	token, err := s.tokenRepo.GetByUserID(ctx, userID)
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("查询令牌失败: %w", err)
	}

	key, err := utils.GenerateToken(s.tokenBytes)
	if err != nil {
		return nil, err
	}

	token = &models.AuthToken{Key: key, UserID: userID}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		// 并发登录时另一个请求先创建了令牌
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return s.tokenRepo.GetByUserID(ctx, userID)
		}
		return nil, fmt.Errorf("保存令牌失败: %w", err)
	}
	return token, nil
}

// ResolveToken 根据令牌找到有效用户
func (s *AuthService) ResolveToken(ctx context.Context, key string) (*models.User, error) {
	token, err := s.tokenRepo.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAuthenticationFailed
		}
		return nil, err
	}
	if !token.User.IsActive {
		return nil, ErrAuthenticationFailed
	}
	return &token.User, nil
}

// GetUser 获取用户
func (s *AuthService) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return user, err
}

// UpdateUser 更新当前用户的名字和/或密码
func (s *AuthService) UpdateUser(ctx context.Context, userID uint, name, password *string) (*models.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		user.Name = *name
	}
	if password != nil {
		hashedPassword, err := utils.HashPassword(*password)
		if err != nil {
			return nil, fmt.Errorf("密码哈希失败: %w", err)
		}
		user.PasswordHash = hashedPassword
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("更新用户失败: %w", err)
	}
	return user, nil
}

// ListUsers 分页列出用户
func (s *AuthService) ListUsers(ctx context.Context, page, perPage int) ([]models.User, int64, error) {
	return s.userRepo.List(ctx, (page-1)*perPage, perPage)
}

// InitAdmin 按配置创建初始超级用户，已存在超级用户时跳过
func (s *AuthService) InitAdmin(ctx context.Context, admin config.AdminConfig) error {
	if admin.Email == "" {
		return nil
	}

	exists, err := s.userRepo.HasSuperuser(ctx)
	if err != nil {
		return fmt.Errorf("检查超级用户失败: %w", err)
	}
	if exists {
		return nil
	}

	user, err := s.CreateSuperuser(ctx, admin.Email, admin.Password)
	if err != nil {
		return fmt.Errorf("创建超级用户失败: %w", err)
	}

	if admin.Name != "" {
		if _, err := s.UpdateUser(ctx, user.ID, &admin.Name, nil); err != nil {
			return err
		}
	}

	s.logger.WithField("email", user.Email).Info("已创建初始超级用户")
	return nil
}
