package handler

import (
	"net/http"
	"strconv"
	"strings"

	"gamelibrary/webapp/internal/auth"
	"gamelibrary/webapp/internal/logger"
	"gamelibrary/webapp/internal/repository"
	"gamelibrary/webapp/internal/web"
	"gamelibrary/webapp/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const repositoryKey = "repository"

// Handler serves the HTML pages and the JSON API.
type Handler struct {
	sessions *auth.Sessions
}

func New(sessions *auth.Sessions) *Handler {
	return &Handler{sessions: sessions}
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// WithRepository opens a repository session for the request and releases it once
// the handler chain has finished.
func WithRepository(store repository.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		repo, release, err := store.Session(c.Request.Context())
		if err != nil {
			logger.From(c.Request.Context()).Error("failed to open repository session", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Storage unavailable"})
			return
		}
		defer release()

		c.Set(repositoryKey, repo)
		c.Next()
	}
}

// Repo returns the request's repository session.
func Repo(c *gin.Context) repository.Repository {
	return c.MustGet(repositoryKey).(repository.Repository)
}

// render adds the fields every page needs and renders the named template.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Username"] = auth.Username(c)
	data["Flash"] = web.PopFlash(c)
	if _, ok := data["Title"]; !ok {
		data["Title"] = "Game Library"
	}
	c.HTML(status, name, data)
}

// renderError shows the error page for err, logging unexpected failures.
func renderError(c *gin.Context, err error) {
	status := apperrors.Status(err)
	if status >= http.StatusInternalServerError {
		logger.From(c.Request.Context()).Error("request failed", zap.Error(err))
		_ = c.Error(err)
	}
	render(c, status, "error.html", gin.H{
		"Title":   http.StatusText(status),
		"Status":  status,
		"Message": apperrors.Message(err),
	})
}

// respondError writes err as a JSON error body.
func respondError(c *gin.Context, err error) {
	status := apperrors.Status(err)
	if status >= http.StatusInternalServerError {
		logger.From(c.Request.Context()).Error("request failed", zap.Error(err))
		_ = c.Error(err)
	}
	if apperrors.HasCode(err, apperrors.CodeUnauthorized) {
		c.Header("WWW-Authenticate", `Bearer realm="gamelibrary"`)
	}
	c.JSON(status, ErrorResponse{Error: apperrors.Message(err)})
}

// gameIDParam parses the :id path parameter.
func gameIDParam(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, apperrors.BadRequest("Invalid game ID", err)
	}
	return id, nil
}

// pageParam parses the :page path parameter, defaulting to 1.
func pageParam(c *gin.Context) (int, error) {
	raw := c.Param("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, apperrors.BadRequest("Invalid page number", err)
	}
	return page, nil
}

// localRedirect accepts only same-site absolute paths.
func localRedirect(target, fallback string) string {
	if strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "//") && !strings.HasPrefix(target, "/\\") {
		return target
	}
	return fallback
}
