package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type window struct {
	start time.Time
	count int
}

var (
	rlMu      sync.Mutex
	rlClients = make(map[string]*window)
)

// memRateLimit is the in-process fixed-window fallback used when Redis
// is not configured. Keyed by client IP.
func memRateLimit(c *gin.Context, maxRequests int, windowDur time.Duration) bool {
	ip := c.ClientIP()
	now := time.Now()

	rlMu.Lock()
	w, ok := rlClients[ip]
	if !ok || now.Sub(w.start) > windowDur {
		rlClients[ip] = &window{start: now, count: 1}
		rlMu.Unlock()
		return true
	}
	w.count++
	blocked := w.count > maxRequests
	rlMu.Unlock()

	return !blocked
}

// RateLimit enforces a fixed-window per-IP limit, using Redis when the
// shared client is configured and the in-process window otherwise.
func RateLimit(maxRequests int, windowDur time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		RLRequests.WithLabelValues(c.FullPath()).Inc()

		allowed := true
		if redisClient != nil {
			allowed = redisRateLimit(c, maxRequests, windowDur)
		} else {
			allowed = memRateLimit(c, maxRequests, windowDur)
		}

		if !allowed {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
