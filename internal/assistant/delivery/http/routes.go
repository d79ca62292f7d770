package http

import (
	"github.com/gin-gonic/gin"

	"couple-schedule-manager/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
// Both routes require an authenticated scope and share the per-user limiter.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	rg.POST("/chat", mw.Auth(), mw.RateLimit(), h.Chat)
	rg.GET("/suggestions", mw.Auth(), mw.RateLimit(), h.Suggestions)
}
