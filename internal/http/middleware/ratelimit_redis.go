package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// InitRedis wires the shared Redis client used by the rate limiter. When
// addr is empty or the ping fails the client stays nil and RateLimit
// falls back to the in-process window.
func InitRedis(addr, password string, db int) {
	if addr == "" {
		return
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return
	}
	redisClient = client
}

// redisRateLimit implements the fixed window with INCR/EXPIRE.
// key format: rl:<window_seconds>:<ip>
func redisRateLimit(c *gin.Context, maxRequests int, window time.Duration) bool {
	key := "rl:" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + c.ClientIP()
	ctx := context.Background()

	val, err := redisClient.Incr(ctx, key).Result()
	if err != nil {
		// fail-open on Redis errors to keep the API available
		c.Header("X-RateLimit-Error", "redis-error")
		return true
	}
	if val == 1 {
		redisClient.Expire(ctx, key, window)
	}
	return val <= int64(maxRequests)
}
