package middleware

import (
	"net/http"
	"time"

	"github.com/careercompass/api/internal/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit allows perMinute requests per minute across all callers, with
// a burst of the same size. Zero or negative disables the limit.
func RateLimit(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	lim := rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
	return func(c *gin.Context) {
		if !lim.Allow() {
			c.Header("Retry-After", "60")
			abort(c, http.StatusTooManyRequests, utils.CodeRateLimited, "Too many requests, try again later")
			return
		}
		c.Next()
	}
}
