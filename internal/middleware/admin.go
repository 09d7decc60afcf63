package middleware

import (
	"recipe-api/internal/utils"

	"github.com/gin-gonic/gin"
)

// StaffMiddleware 管理人员权限中间件，需放在 AuthMiddleware 之后
func StaffMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsStaff(c) {
			utils.Forbidden(c, "需要管理员权限")
			c.Abort()
			return
		}
		c.Next()
	}
}
