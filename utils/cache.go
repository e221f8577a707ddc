// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/mbendary2019/Shoporia-sub001/config"
)

var (
	// CacheClient is the generic cache client.
	CacheClient *redis.Client
	// IdempotencyCacheClient is the dedicated client for booking idempotency keys.
	IdempotencyCacheClient *redis.Client
)

// InitCache initializes the generic Redis cache client (using DB from AppConfig for general caching).
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := CacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitIdempotencyCache initializes the Redis client for booking idempotency keys.
func InitIdempotencyCache() {
	IdempotencyCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisIdempotencyDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := IdempotencyCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Idempotency Cache): %v", err)
	}
}

// GetIdempotencyCacheClient returns the Redis client for booking idempotency keys.
func GetIdempotencyCacheClient() *redis.Client {
	if IdempotencyCacheClient == nil {
		InitIdempotencyCache()
	}
	return IdempotencyCacheClient
}

// InitRedis initializes all Redis clients used by the service.
func InitRedis() {
	InitCache()
	InitIdempotencyCache()
}
