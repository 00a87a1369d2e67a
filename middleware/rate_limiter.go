package middleware

import (
	"net/http"
	"sync"
	"time"

	"dreamdecol/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const visitorTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter holds one token bucket per client IP.
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter allows perMinute requests per IP, with the full minute available as burst.
func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		now:      time.Now,
	}
}

// getLimiter returns the limiter for ip, creating one if needed and dropping idle ones.
func (s *RateLimiter) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) > time.Minute {
		for key, v := range s.visitors {
			if now.Sub(v.lastSeen) > visitorTTL {
				delete(s.visitors, key)
			}
		}
		s.lastSweep = now
	}

	v, exists := s.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// Middleware limits requests per client IP.
func (s *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := ClientIP(c)
		if !s.getLimiter(ip).Allow() {
			utils.GetLogger().Warn("Rate limit exceeded", zap.String("ip", ip), zap.String("path", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests from this IP, please try again later."})
			return
		}
		c.Next()
	}
}

// RateLimitMiddleware is shorthand for NewRateLimiter(perMinute).Middleware().
func RateLimitMiddleware(perMinute int) gin.HandlerFunc {
	return NewRateLimiter(perMinute).Middleware()
}
