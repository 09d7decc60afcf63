package redis_limiter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// ErrLimitReached 并发槽位已满
var ErrLimitReached = errors.New("并发限制已达到上限")

// 计数小于上限时加一并刷新过期时间，否则返回上限+1表示失败
var acquireScript = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
if current >= tonumber(ARGV[1]) then
	return current + 1
end
local newCount = redis.call('INCR', KEYS[1])
redis.call('EXPIRE', KEYS[1], tonumber(ARGV[2]))
return newCount
`)

// 计数减一，归零时删除key
var releaseScript = redis.NewScript(`
local count = redis.call('DECR', KEYS[1])
if tonumber(count) <= 0 then
	redis.call('DEL', KEYS[1])
	return 0
end
redis.call('EXPIRE', KEYS[1], tonumber(ARGV[1]))
return count
`)

// RedisLimiter 基于Redis的并发限制器，多个实例共享同一计数
// ttl 保证进程崩溃后槽位最终会被释放
type RedisLimiter struct {
	client        *redis.Client
	maxConcurrent int
	keyPrefix     string
	ttl           time.Duration
	log           *logrus.Entry
}

// NewRedisLimiter 创建基于Redis的并发限制器
func NewRedisLimiter(client *redis.Client, maxConcurrent int, keyPrefix string, ttl time.Duration, logger *logrus.Logger) *RedisLimiter {
	return &RedisLimiter{
		client:        client,
		maxConcurrent: maxConcurrent,
		keyPrefix:     keyPrefix,
		ttl:           ttl,
		log:           logger.WithField("component", "redis_limiter"),
	}
}

// Acquire 获取并发槽位，槽位已满时返回 ErrLimitReached
func (rl *RedisLimiter) Acquire(ctx context.Context, key string) error {
	redisKey := rl.keyPrefix + key

	result, err := acquireScript.Run(ctx, rl.client, []string{redisKey}, rl.maxConcurrent, int(rl.ttl.Seconds())).Int()
	if err != nil {
		return fmt.Errorf("执行Lua脚本失败: %w", err)
	}

	if result > rl.maxConcurrent {
		rl.log.WithFields(logrus.Fields{"key": key, "max": rl.maxConcurrent}).Warn("槽位已满")
		return ErrLimitReached
	}

	rl.log.WithFields(logrus.Fields{"key": key, "current": result}).Debug("获取槽位")
	return nil
}

// Release 释放并发槽位
func (rl *RedisLimiter) Release(ctx context.Context, key string) {
	redisKey := rl.keyPrefix + key

	remaining, err := releaseScript.Run(ctx, rl.client, []string{redisKey}, int(rl.ttl.Seconds())).Int()
	if err != nil {
		rl.log.WithError(err).WithField("key", key).Error("释放槽位失败")
		return
	}

	rl.log.WithFields(logrus.Fields{"key": key, "remaining": remaining}).Debug("释放槽位")
}

// GetCurrent 获取当前并发数
func (rl *RedisLimiter) GetCurrent(ctx context.Context, key string) (int, error) {
	current, err := rl.client.Get(ctx, rl.keyPrefix+key).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("获取当前并发数失败: %w", err)
	}
	return current, nil
}
