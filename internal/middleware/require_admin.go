package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin only lets through requests whose token carries role "admin".
func RequireAdmin(c *gin.Context) {
	role, exists := c.Get("role")
	if !exists || role != "admin" {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}
	c.Next()
}
