package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware - chỉ cho phép role admin, dùng sau AuthMiddleware
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
