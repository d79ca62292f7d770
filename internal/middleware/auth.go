package middleware

import (
	"github.com/gin-gonic/gin"

	"couple-schedule-manager/internal/model"
	"couple-schedule-manager/pkg/response"
)

// Trusted identity headers set by the frontend gateway after Supabase auth.
const (
	HeaderUserID    = "X-User-ID"
	HeaderUserEmail = "X-User-Email"
)

// Auth builds the request scope from the gateway identity headers.
// Requests without a user ID are rejected with 401.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(HeaderUserID)
		if userID == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(scopeKey, model.Scope{
			UserID: userID,
			Email:  c.GetHeader(HeaderUserEmail),
		})
		c.Next()
	}
}
