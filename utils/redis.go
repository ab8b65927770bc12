package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/draftbook/clinic-management-backend/config"
)

var redisClient *redis.Client

// InitRedis connects the shared client used for password-reset tokens.
func InitRedis(cfg *config.Config) error {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	log.Println("✅ Connected to Redis")
	return nil
}

func resetKey(token string) string {
	return "reset_token:" + token
}

// StoreResetToken maps a reset token to a user ID with a TTL.
func StoreResetToken(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	return redisClient.Set(ctx, resetKey(token), userID, ttl).Err()
}

// ConsumeResetToken returns the user ID for a token and deletes it so
// it cannot be replayed.
func ConsumeResetToken(ctx context.Context, token string) (uint, error) {
	id, err := redisClient.Get(ctx, resetKey(token)).Uint64()
	if err != nil {
		return 0, err
	}
	if err := redisClient.Del(ctx, resetKey(token)).Err(); err != nil {
		log.Printf("⚠️ Failed to delete reset token: %v", err)
	}
	return uint(id), nil
}
