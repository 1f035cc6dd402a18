package auth

import (
	"strings"

	"gamelibrary/webapp/internal/logger"

	"github.com/gin-gonic/gin"
)

// OptionalAuthMiddleware reads the session token from the cookie, or from a Bearer
// header for API clients, and sets the username if the token is valid. It never
// rejects a request.
func (s *Sessions) OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(CookieName)
		if authHeader := c.GetHeader("Authorization"); token == "" && authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				token = parts[1]
			}
		}

		if token != "" {
			username, err := s.Resolve(token)
			if err == nil {
				c.Set(logger.UsernameKey, username)
			} else {
				logger.From(c.Request.Context()).Debug("ignoring session token")
			}
		}
		c.Next()
	}
}

// Username returns the logged-in user's name, or "" for visitors.
func Username(c *gin.Context) string {
	return c.GetString(logger.UsernameKey)
}
