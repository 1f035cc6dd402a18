package auth

import (
	"net/http"

	"gamelibrary/webapp/internal/web"

	"github.com/gin-gonic/gin"
)

// LoginRequired sends visitors to the login page.
// It must be used AFTER OptionalAuthMiddleware.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Username(c) == "" {
			web.SetFlash(c, "warning", "You should login first!")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// APIAuthRequired answers 401 for API calls without a valid session.
// It must be used AFTER OptionalAuthMiddleware.
func APIAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Username(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}
		c.Next()
	}
}
