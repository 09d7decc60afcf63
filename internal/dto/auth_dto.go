package dto

import "recipe-api/internal/models"

// CreateUserRequest 注册请求
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=5,max=128"`
	Name     string `json:"name" binding:"max=255"`
}

// TokenRequest 换取令牌请求
type TokenRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse 令牌响应
type TokenResponse struct {
	Token string `json:"token"`
}

// UpdateUserRequest 更新当前用户
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=255"`
	Password *string `json:"password" binding:"omitempty,min=5,max=128"`
}

// UserInfo 用户信息，不包含密码
type UserInfo struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AdminUserInfo 管理员查看的用户信息
type AdminUserInfo struct {
	UserInfo
	IsActive    bool   `json:"is_active"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
	CreatedAt   string `json:"created_at"`
}

// NewUserInfo 从模型构造用户信息
func NewUserInfo(user *models.User) UserInfo {
	return UserInfo{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}
}

// NewAdminUserInfo 从模型构造管理员视图
func NewAdminUserInfo(user *models.User) AdminUserInfo {
	return AdminUserInfo{
		UserInfo:    NewUserInfo(user),
		IsActive:    user.IsActive,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
		CreatedAt:   user.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
