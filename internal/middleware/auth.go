package middleware

import (
	"context"
	"strings"

	"recipe-api/internal/models"
	"recipe-api/internal/utils"

	"github.com/gin-gonic/gin"
)

const contextUserKey = "user"

// TokenResolver 根据令牌找到用户
type TokenResolver interface {
	ResolveToken(ctx context.Context, key string) (*models.User, error)
}

// AuthMiddleware 令牌认证中间件，支持 "Bearer <token>" 和 "Token <token>"
func AuthMiddleware(resolver TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c, "未提供身份认证信息")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || (!strings.EqualFold(parts[0], "Bearer") && !strings.EqualFold(parts[0], "Token")) {
			utils.Unauthorized(c, "无效的认证格式")
			c.Abort()
			return
		}

		key := strings.TrimSpace(parts[1])
		if key == "" {
			utils.Unauthorized(c, "无效的认证格式")
			c.Abort()
			return
		}

		user, err := resolver.ResolveToken(c.Request.Context(), key)
		if err != nil {
			utils.Unauthorized(c, "无效的令牌")
			c.Abort()
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// GetUser 从上下文获取当前用户
func GetUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(contextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// GetUserID 从上下文获取用户ID
func GetUserID(c *gin.Context) (uint, bool) {
	user, ok := GetUser(c)
	if !ok {
		return 0, false
	}
	return user.ID, true
}

// IsStaff 当前用户是否为管理人员
func IsStaff(c *gin.Context) bool {
	user, ok := GetUser(c)
	return ok && user.IsStaff
}
