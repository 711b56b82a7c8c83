package middleware

import (
	"github.com/gin-gonic/gin"

	"hoodlab-backend/internal/shared"
	"hoodlab-backend/internal/shared/utils"
)

// ClientIP resolves the real client IP (behind proxies) and stores it in
// both the gin context and the request context so that service code can
// read it without depending on gin.
func ClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := utils.ExtractClientIP(c)
		c.Set("client_ip", ip)
		c.Request = c.Request.WithContext(shared.WithClientIP(c.Request.Context(), ip))
		c.Next()
	}
}
