package middlewares

import (
	"net/http"
	"strings"

	"deployhub/internal/services"

	"github.com/gin-gonic/gin"
)

// RequireAdmin guards the admin surface. It accepts only a session token
// issued by the admin login endpoint, carried as "Bearer <token>".
func RequireAdmin(adminService *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing admin session token"})
			return
		}

		ok, err := adminService.ValidateSession(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Failed to validate session"})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired admin session"})
			return
		}

		c.Next()
	}
}
