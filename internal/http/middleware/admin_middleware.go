package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/fairplay/internal/domain"
)

// AdminKeyHeader carries the back-office API key
const AdminKeyHeader = "X-Admin-Key"

// AdminMiddleware admits requests presenting apiKey. An empty apiKey closes
// the admin surface entirely.
func AdminMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.GetHeader(AdminKeyHeader)
		if presented == "" {
			Abort(c, domain.NewUnauthorizedError("Admin key required"))
			return
		}
		if apiKey == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(apiKey)) != 1 {
			Abort(c, domain.NewForbiddenError("Invalid admin key"))
			return
		}
		c.Next()
	}
}
