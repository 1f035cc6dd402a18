// Package web holds the HTML templates and the flash message cookie.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses every embedded page. Each page is addressed by its file name.
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"price": func(p float64) string {
			if p == 0 {
				return "Free"
			}
			return fmt.Sprintf("$%.2f", p)
		},
		"join": strings.Join,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

const (
	flashCookie      = "flash"
	secureCookiesKey = "web.secureCookies"
)

// SecureCookies marks the cookies this package writes as Secure when secure is set.
func SecureCookies(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(secureCookiesKey, secure)
		c.Next()
	}
}

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

// SetFlash stores a message for the next request.
func SetFlash(c *gin.Context, category, message string) {
	value := url.QueryEscape(category) + "|" + url.QueryEscape(message)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, value, 60, "/", "", c.GetBool(secureCookiesKey), true)
}

// PopFlash returns the pending message, if any, and clears it.
func PopFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", c.GetBool(secureCookiesKey), true)

	category, message, ok := strings.Cut(raw, "|")
	if !ok {
		return nil
	}
	category, _ = url.QueryUnescape(category)
	message, _ = url.QueryUnescape(message)
	return &Flash{Category: category, Message: message}
}
