package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// IPRateLimiter throttles requests per client IP with a token bucket.
// Applied to the credential-sensitive routes (login, registration, email
// verification).
type IPRateLimiter struct {
	visitors map[string]*visitor
	mu       sync.Mutex
	rate     float64 // tokens restored per second
	burst    int     // bucket capacity
}

type visitor struct {
	timestamp time.Time
	remaining float64
}

// NewIPRateLimiter builds a limiter restoring rate tokens per second with
// burst capacity. A rate of 0.2 with burst 10 allows 10 quick requests, then
// one every five seconds.
func NewIPRateLimiter(rate float64, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		burst:    burst,
	}
}

// Middleware returns the gin middleware enforcing the limit.
func (r *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if r.rate <= 0 || r.burst <= 0 {
			c.Next()
			return
		}

		r.mu.Lock()
		defer r.mu.Unlock()

		now := time.Now()
		for ip, v := range r.visitors {
			if now.Sub(v.timestamp) > time.Duration(float64(r.burst)/r.rate)*time.Second {
				delete(r.visitors, ip)
			}
		}

		ip := c.ClientIP()

		v, exists := r.visitors[ip]
		if !exists {
			v = &visitor{timestamp: now, remaining: float64(r.burst)}
			r.visitors[ip] = v
		} else {
			elapsed := now.Sub(v.timestamp)
			v.timestamp = now

			if elapsed > 0 {
				v.remaining += elapsed.Seconds() * r.rate
				if v.remaining > float64(r.burst) {
					v.remaining = float64(r.burst)
				}
			}
		}

		v.remaining -= 1

		if v.remaining < 0 {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, slow down"})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(r.burst))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(math.Floor(v.remaining))))

		c.Next()
	}
}
