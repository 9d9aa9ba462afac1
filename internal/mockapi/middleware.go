package mockapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const bearerPrefix = "Bearer "

func envelope(data any) gin.H {
	return gin.H{"success": true, "data": data}
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success":    false,
		"message":    message,
		"statusCode": status,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"path":       c.Request.URL.Path,
	})
}

func failFields(c *gin.Context, status int, message string, fields []gin.H) {
	c.JSON(status, gin.H{
		"success":    false,
		"message":    message,
		"statusCode": status,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"path":       c.Request.URL.Path,
		"errors":     fields,
	})
}

// requireAuth validates the Bearer token and stashes its claims
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, bearerPrefix) {
			fail(c, http.StatusUnauthorized, "Missing or malformed authorization header")
			c.Abort()
			return
		}

		claims, err := validateAccessToken(s.secret, strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			fail(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}

func (s *Server) requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("claims")
		claims, ok := value.(*Claims)
		if !exists || !ok || claims.Role != role {
			fail(c, http.StatusForbidden, "Insufficient privileges")
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentClaims(c *gin.Context) *Claims {
	value, _ := c.Get("claims")
	claims, _ := value.(*Claims)
	return claims
}
