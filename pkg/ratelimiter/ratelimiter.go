package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit"

// CheckAndSetRateLimit marks one hit for (key, scope). It returns false if a
// hit is already recorded inside the window. SetNX makes check and set a
// single round trip, so concurrent requests cannot both pass.
func CheckAndSetRateLimit(ctx context.Context, client *redis.Client, key, scope string, window time.Duration) (bool, error) {
	ok, err := client.SetNX(ctx, redisKey(key, scope), 1, window).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// GetRateLimitTTL reports the remaining window for (key, scope).
func GetRateLimitTTL(ctx context.Context, client *redis.Client, key, scope string) (time.Duration, error) {
	return client.TTL(ctx, redisKey(key, scope)).Result()
}

func redisKey(key, scope string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, scope, key)
}
