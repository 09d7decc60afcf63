package middleware

import (
	"time"

	"recipe-api/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// RateLimit 按客户端IP的固定窗口限流，计数保存在Redis
func RateLimit(redisClient *redis.Client, scope string, maxRequests int, window time.Duration, logger logrus.FieldLogger) gin.HandlerFunc {
	if redisClient == nil {
		panic("Redis client cannot be nil for RateLimit middleware")
	}
	if maxRequests <= 0 || window <= 0 {
		panic("RateLimit requires positive maxRequests and window")
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := "ratelimit:" + scope + ":" + c.ClientIP()

		count, err := redisClient.Incr(ctx, key).Result()
		if err == nil && count == 1 {
			err = redisClient.Expire(ctx, key, window).Err()
		}
		if err != nil {
			// Redis 故障时放行
			logger.WithError(err).WithField("scope", scope).Error("限流计数失败")
			c.Next()
			return
		}

		if count > int64(maxRequests) {
			utils.TooManyRequests(c, "请求过于频繁，请稍后再试")
			c.Abort()
			return
		}

		c.Next()
	}
}
