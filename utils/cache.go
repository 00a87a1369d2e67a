// File: utils/cache.go
package utils

import (
	"context"
	"time"

	"dreamdecol/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CacheClient is the session cache client. It stays nil when REDIS_ADDR is empty.
var CacheClient *redis.Client

// InitCache connects to Redis when configured. A failed ping leaves caching
// disabled.
func InitCache() *redis.Client {
	if config.AppConfig.RedisAddr == "" {
		GetLogger().Info("REDIS_ADDR not set, session cache disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		GetLogger().Warn("Failed to connect to Redis, session cache disabled", zap.Error(err))
		_ = client.Close()
		return nil
	}
	CacheClient = client
	return client
}
