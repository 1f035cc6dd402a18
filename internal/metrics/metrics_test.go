package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGinMiddlewareCountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	r := gin.New()
	r.Use(m.GinMiddleware())
	r.GET("/game/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/game/1", "/game/2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/game/:id", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.httpInflight.WithLabelValues("GET", "/game/:id")))
}

func TestRecordImportAndHandler(t *testing.T) {
	m := New()
	m.RecordImport(3, 4, 2)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.catalogImported.WithLabelValues("games")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `catalog_imported_total{kind="genres"} 4`))
}
