// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"rotharc/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client (wizard sessions).
	CacheClient *redis.Client
	// AuthCacheClient is the dedicated client for session tokens.
	AuthCacheClient *redis.Client
)

func newRedisClient(db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
}

func ping(client *redis.Client, name string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis (%s): %w", name, err)
	}
	return nil
}

// InitRedis connects both Redis clients and verifies they answer.
func InitRedis() error {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB)
	if err := ping(CacheClient, "cache"); err != nil {
		return err
	}
	AuthCacheClient = newRedisClient(config.AppConfig.RedisAuthDB)
	return ping(AuthCacheClient, "auth")
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	return CacheClient
}

// GetAuthCacheClient returns the Redis client for session tokens.
func GetAuthCacheClient() *redis.Client {
	return AuthCacheClient
}
