package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"couple-schedule-manager/internal/model"
	"couple-schedule-manager/pkg/log"
)

const scopeKey = "x-scope"

type Middleware struct {
	l        log.Logger
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func New(l log.Logger, rateLimitPerMin int) Middleware {
	burst := rateLimitPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return Middleware{
		l: l,
		limiters: expirable.NewLRU[string, *rate.Limiter](
			1000, // max unique users
			nil,
			time.Minute*5,
		),
		rate:  rate.Limit(float64(rateLimitPerMin) / 60.0),
		burst: burst,
	}
}

// GetScope returns the authenticated scope set by Auth.
func GetScope(c *gin.Context) (model.Scope, bool) {
	v, ok := c.Get(scopeKey)
	if !ok {
		return model.Scope{}, false
	}
	sc, ok := v.(model.Scope)
	return sc, ok
}
