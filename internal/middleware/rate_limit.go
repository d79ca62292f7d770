package middleware

import (
	"golang.org/x/time/rate"

	"github.com/gin-gonic/gin"

	"couple-schedule-manager/pkg/response"
)

// RateLimit enforces a per-user request budget. Limiters are kept in an
// expiring LRU so idle users are evicted automatically.
func (m Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		sc, ok := GetScope(c)
		if !ok {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		limiter, found := m.limiters.Get(sc.UserID)
		if !found {
			limiter = rate.NewLimiter(m.rate, m.burst)
			m.limiters.Add(sc.UserID, limiter)
		}

		if !limiter.Allow() {
			m.l.Warnf(c.Request.Context(), "rate limit exceeded for user %s", sc.UserID)
			response.TooManyRequests(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
