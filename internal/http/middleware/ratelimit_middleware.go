package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/saradorri/fairplay/internal/domain"
	"github.com/saradorri/fairplay/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// RateLimitMiddleware limits requests per authenticated user, falling back to
// the client IP. A limiter outage lets traffic through.
func RateLimitMiddleware(limiter domain.RateLimiter, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetString(UserIDKey)
		if key == "" {
			key = "ip:" + c.ClientIP()
		}

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.WithContext(c.Request.Context()).Warn("Rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			Abort(c, domain.NewRateLimitedError())
			return
		}
		c.Next()
	}
}
