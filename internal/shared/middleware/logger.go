package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"hoodlab-backend/internal/shared/utils"
)

// RequestLogger - structured request logging với zerolog
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		event := log.Info()
		if c.Writer.Status() >= 500 {
			event = log.Error()
		} else if c.Writer.Status() >= 400 {
			event = log.Warn()
		}

		// Đánh dấu traffic từ dải IP private (healthcheck, proxy nội bộ)
		// để lọc khi soi log
		clientIP := c.GetString("client_ip")

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("client_ip", clientIP).
			Bool("internal", utils.IsPrivateIP(clientIP)).
			Str("request_id", c.GetString("request_id")).
			Msg("HTTP request")
	}
}
