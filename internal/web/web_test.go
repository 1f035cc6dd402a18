package web

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{"home.html", "browse.html", "search.html", "game.html", "register.html",
		"login.html", "wishlist.html", "profile.html", "error.html"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "error.html", gin.H{
		"Title": "Not found", "Status": 404, "Message": "game not found",
		"Flash": &Flash{Category: "warning", Message: "You should login first!"},
	}))
	assert.Contains(t, buf.String(), "game not found")
	assert.Contains(t, buf.String(), "You should login first!")
	assert.Contains(t, buf.String(), `href="/login"`)
}

func TestFlashRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	SetFlash(c, "success", "Review submitted | thanks!")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.False(t, cookies[0].Secure)

	rec2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(rec2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c2.Request.AddCookie(cookies[0])

	flash := PopFlash(c2)
	require.NotNil(t, flash)
	assert.Equal(t, Flash{Category: "success", Message: "Review submitted | thanks!"}, *flash)

	cleared := rec2.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Negative(t, cleared[0].MaxAge)
}

func TestPopFlashWithoutCookie(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, PopFlash(c))
}

func TestSecureCookiesMarksFlash(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, secure := range []bool{true, false} {
		r := gin.New()
		r.Use(SecureCookies(secure))
		r.GET("/set", func(c *gin.Context) {
			SetFlash(c, "success", "saved")
			c.Status(http.StatusNoContent)
		})
		r.GET("/pop", func(c *gin.Context) {
			PopFlash(c)
			c.Status(http.StatusNoContent)
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/set", nil))
		set := rec.Result().Cookies()
		require.Len(t, set, 1)
		assert.Equal(t, secure, set[0].Secure)

		req := httptest.NewRequest(http.MethodGet, "/pop", nil)
		req.AddCookie(set[0])
		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		cleared := rec.Result().Cookies()
		require.Len(t, cleared, 1)
		assert.Equal(t, secure, cleared[0].Secure)
	}
}
