package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid session token")

// Claims is what a session token carries: the username as subject and a unique id.
type Claims struct {
	Username  string
	TokenID   string
	ExpiresAt time.Time
}

// GenerateToken creates a signed session token for a username.
func GenerateToken(secret []byte, username string, ttl time.Duration) (string, Claims, error) {
	now := time.Now()
	c := Claims{
		Username:  username,
		TokenID:   uuid.NewString(),
		ExpiresAt: now.Add(ttl),
	}
	claims := jwt.MapClaims{
		"sub": c.Username,
		"jti": c.TokenID,
		"exp": c.ExpiresAt.Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", Claims{}, err
	}
	return signed, c, nil
}

// ParseToken validates the signature and expiry and returns the claims.
func ParseToken(secret []byte, tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	sub, _ := mc["sub"].(string)
	jti, _ := mc["jti"].(string)
	if sub == "" || jti == "" {
		return Claims{}, ErrInvalidToken
	}
	exp, err := mc.GetExpirationTime()
	if err != nil || exp == nil {
		return Claims{}, ErrInvalidToken
	}

	return Claims{Username: sub, TokenID: jti, ExpiresAt: exp.Time}, nil
}
