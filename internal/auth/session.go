// Package auth manages cookie sessions: issuing signed session tokens on login,
// revoking them on logout and resolving the current user on each request.
package auth

import (
	"errors"
	"net/http"
	"time"

	"gamelibrary/webapp/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// CookieName is the cookie carrying the session token.
const CookieName = "session"

var ErrRevoked = errors.New("session revoked")

// Sessions issues and validates session tokens. Logged-out token ids are kept in a
// cache until the token would have expired anyway.
type Sessions struct {
	secret  []byte
	ttl     time.Duration
	secure  bool
	revoked *cache.Cache
	log     *zap.Logger
}

func NewSessions(secret []byte, ttl time.Duration, secure bool, log *zap.Logger) *Sessions {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sessions{
		secret:  secret,
		ttl:     ttl,
		secure:  secure,
		revoked: cache.New(ttl, 10*time.Minute),
		log:     log,
	}
}

// Secure reports whether session cookies carry the Secure attribute.
func (s *Sessions) Secure() bool {
	return s.secure
}

// Issue creates a token for username and stores it in the session cookie.
func (s *Sessions) Issue(c *gin.Context, username string) (string, error) {
	token, _, err := jwt.GenerateToken(s.secret, username, s.ttl)
	if err != nil {
		return "", err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(s.ttl.Seconds()), "/", "", s.secure, true)
	return token, nil
}

// Resolve returns the username a token belongs to.
func (s *Sessions) Resolve(token string) (string, error) {
	claims, err := jwt.ParseToken(s.secret, token)
	if err != nil {
		return "", err
	}
	if _, revoked := s.revoked.Get(claims.TokenID); revoked {
		return "", ErrRevoked
	}
	return claims.Username, nil
}

// Revoke invalidates a token until it expires. Invalid tokens are ignored.
func (s *Sessions) Revoke(token string) {
	claims, err := jwt.ParseToken(s.secret, token)
	if err != nil {
		return
	}
	remaining := time.Until(claims.ExpiresAt)
	if remaining <= 0 {
		return
	}
	s.revoked.Set(claims.TokenID, claims.Username, remaining)
	s.log.Debug("session revoked", zap.String("username", claims.Username), zap.String("jti", claims.TokenID))
}

// Clear revokes the request's session token, if any, and deletes the cookie.
func (s *Sessions) Clear(c *gin.Context) {
	if token, err := c.Cookie(CookieName); err == nil && token != "" {
		s.Revoke(token)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", s.secure, true)
}
