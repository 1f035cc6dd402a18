package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "gamelibrary/webapp/docs"
	"gamelibrary/webapp/internal/auth"
	"gamelibrary/webapp/internal/database"
	"gamelibrary/webapp/internal/metrics"
	"gamelibrary/webapp/internal/models"
	"gamelibrary/webapp/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func seedGames(t *testing.T, repo repository.Repository) {
	t.Helper()
	var games []models.Game
	for _, g := range []struct {
		id    int
		title string
		genre string
	}{
		{7940, "Call of Duty", "Action"},
		{1228870, "Bullet Train", "Indie"},
		{3010, "Xpand Rally", "Racing"},
	} {
		game := models.NewGame(g.id, g.title)
		game.Price = 9.99
		game.ReleaseDate = "Jan 1, 2020"
		game.SetPublisher(models.NewPublisher("Publisher " + g.title))
		game.AddGenre(models.NewGenre(g.genre))
		games = append(games, *game)
	}
	require.NoError(t, repo.AddMultipleGames(games))
}

func memoryStore(t *testing.T) repository.Store {
	repo := repository.NewMemoryRepository(nil)
	seedGames(t, repo)
	return repository.NewMemoryStore(repo)
}

func gormStore(t *testing.T) repository.Store {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "games.db")), &gorm.Config{
		Logger:         database.NewGormLogger(zap.NewNop()),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	store := repository.NewGormStore(db, nil)
	seedGames(t, store.Repository())
	return store
}

type testClient struct {
	t      *testing.T
	server *httptest.Server
	client *http.Client
}

func newTestClient(t *testing.T, store repository.Store) *testClient {
	t.Helper()
	engine, err := New(Deps{
		Store:    store,
		Sessions: auth.NewSessions([]byte("test-secret"), time.Hour, false, nil),
		Metrics:  metrics.New(),
	})
	require.NoError(t, err)

	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testClient{
		t:      t,
		server: server,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (tc *testClient) do(req *http.Request) (*http.Response, string) {
	tc.t.Helper()
	resp, err := tc.client.Do(req)
	require.NoError(tc.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(tc.t, err)
	return resp, string(body)
}

func (tc *testClient) get(path string) (*http.Response, string) {
	tc.t.Helper()
	req, err := http.NewRequest(http.MethodGet, tc.server.URL+path, nil)
	require.NoError(tc.t, err)
	return tc.do(req)
}

func (tc *testClient) post(path string, form url.Values) (*http.Response, string) {
	tc.t.Helper()
	req, err := http.NewRequest(http.MethodPost, tc.server.URL+path, strings.NewReader(form.Encode()))
	require.NoError(tc.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return tc.do(req)
}

func (tc *testClient) postJSON(path, token, body string) (*http.Response, string) {
	tc.t.Helper()
	req, err := http.NewRequest(http.MethodPost, tc.server.URL+path, strings.NewReader(body))
	require.NoError(tc.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return tc.do(req)
}

func (tc *testClient) register(username, password string) *http.Response {
	tc.t.Helper()
	resp, _ := tc.post("/register", url.Values{
		"username": {username}, "password": {password}, "confirm_password": {password},
	})
	return resp
}

func (tc *testClient) login(username, password string) (*http.Response, string) {
	tc.t.Helper()
	return tc.post("/login", url.Values{"username": {username}, "password": {password}})
}

func forEachStore(t *testing.T, fn func(t *testing.T, tc *testClient)) {
	t.Run("memory", func(t *testing.T) { fn(t, newTestClient(t, memoryStore(t))) })
	t.Run("gorm", func(t *testing.T) { fn(t, newTestClient(t, gormStore(t))) })
}

func TestEndToEnd(t *testing.T) {
	forEachStore(t, func(t *testing.T, tc *testClient) {
		resp := tc.register("alice", "Passw0rdX")
		require.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))

		resp, _ = tc.login("alice", "Passw0rdX")
		require.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))

		resp, body := tc.get("/")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "You have successfully logged in!")
		assert.Contains(t, body, "Logout")

		resp, body = tc.get("/browse")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "Bullet Train")
		assert.Contains(t, body, "Page 1 of 1")

		resp, _ = tc.post("/add_to_wishlist/7940", nil)
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/game/7940", resp.Header.Get("Location"))

		_, body = tc.get("/wishlist")
		assert.Contains(t, body, "Call of Duty")

		resp, _ = tc.post("/remove/7940", url.Values{"redirect_url": {"/wishlist"}})
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/wishlist", resp.Header.Get("Location"))

		_, body = tc.get("/wishlist")
		assert.Contains(t, body, "Your wishlist is empty.")

		resp, _ = tc.get("/logout")
		require.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))

		resp, _ = tc.get("/wishlist")
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	})
}

func TestLogoutRevokesToken(t *testing.T) {
	tc := newTestClient(t, memoryStore(t))
	require.Equal(t, http.StatusFound, tc.register("alice", "Passw0rdX").StatusCode)
	tc.login("alice", "Passw0rdX")

	u, err := url.Parse(tc.server.URL)
	require.NoError(t, err)
	var token string
	for _, c := range tc.client.Jar.Cookies(u) {
		if c.Name == auth.CookieName {
			token = c.Value
		}
	}
	require.NotEmpty(t, token)

	tc.get("/logout")

	req, err := http.NewRequest(http.MethodGet, tc.server.URL+"/api/v1/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, _ := tc.do(req)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterAndLoginErrors(t *testing.T) {
	tc := newTestClient(t, memoryStore(t))
	require.Equal(t, http.StatusFound, tc.register("alice", "Passw0rdX").StatusCode)

	resp, body := tc.post("/register", url.Values{
		"username": {"alice"}, "password": {"Passw0rdX"}, "confirm_password": {"Passw0rdX"},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, body, "Username already exists")

	resp, body = tc.post("/register", url.Values{
		"username": {"bob"}, "password": {"password1"}, "confirm_password": {"password1"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "upper case")

	resp, body = tc.post("/register", url.Values{
		"username": {"bob"}, "password": {"Passw0rdX"}, "confirm_password": {"Passw0rdY"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "Passwords must match")

	resp, body = tc.login("mallory", "Passw0rdX")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Invalid username, please try again")

	resp, body = tc.login("alice", "Wr0ngPassword")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Invalid password, please try again")
}

func TestLoginRequiredRedirectsWithMessage(t *testing.T) {
	tc := newTestClient(t, memoryStore(t))

	resp, _ := tc.get("/profile")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	_, body := tc.get("/login")
	assert.Contains(t, body, "You should login first!")
}

func TestReviewFlow(t *testing.T) {
	forEachStore(t, func(t *testing.T, tc *testClient) {
		tc.register("alice", "Passw0rdX")
		tc.login("alice", "Passw0rdX")

		resp, _ := tc.post("/game/3010", url.Values{"rating": {"4"}, "comment": {"Dusty fun"}})
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/game/3010", resp.Header.Get("Location"))

		_, body := tc.get("/game/3010")
		assert.Contains(t, body, "Review submitted successfully!")
		assert.Contains(t, body, "Dusty fun")
		assert.Contains(t, body, "Average rating: 4.00")
		assert.Contains(t, body, "You have already reviewed this game.")

		resp, _ = tc.post("/game/3010", url.Values{"rating": {"1"}, "comment": {"Changed my mind"}})
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		_, body = tc.get("/game/3010")
		assert.Contains(t, body, "You have already reviewed this game")
		assert.NotContains(t, body, "Changed my mind")

		resp, _ = tc.post("/game/7940", url.Values{"rating": {"9"}, "comment": {"x"}})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		_, body = tc.get("/profile")
		assert.Contains(t, body, "Dusty fun")
	})
}

func TestCatalogPages(t *testing.T) {
	tc := newTestClient(t, memoryStore(t))

	resp, body := tc.get("/browse/genre/Racing")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Xpand Rally")
	assert.NotContains(t, body, "Bullet Train")

	resp, body = tc.get("/browse/page/2")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "No games found.")

	resp, _ = tc.get("/browse/page/zero")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = tc.get("/search?search_type=id&query=abc")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "0 results")

	_, body = tc.get("/search?search_type=publisher&query=Publisher+Bullet")
	assert.Contains(t, body, "1 results")

	resp, _ = tc.get("/game/424242")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI(t *testing.T) {
	forEachStore(t, func(t *testing.T, tc *testClient) {
		resp, body := tc.get("/api/v1/games?page=1")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var page struct {
			Data []struct {
				ID    int    `json:"game_id"`
				Title string `json:"title"`
			} `json:"data"`
			Meta struct {
				TotalItems int64 `json:"total_items"`
				PageSize   int   `json:"page_size"`
			} `json:"meta"`
		}
		require.NoError(t, json.Unmarshal([]byte(body), &page))
		assert.EqualValues(t, 3, page.Meta.TotalItems)
		assert.Equal(t, 15, page.Meta.PageSize)
		require.Len(t, page.Data, 3)
		assert.Equal(t, "Bullet Train", page.Data[0].Title)

		resp, _ = tc.get("/api/v1/wishlist")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		tc.register("alice", "Passw0rdX")
		resp, body = tc.postJSON("/api/v1/auth/login", "", `{"username":"alice","password":"Passw0rdX"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var tok struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal([]byte(body), &tok))
		require.NotEmpty(t, tok.Token)

		resp, _ = tc.postJSON("/api/v1/wishlist", tok.Token, `{"game_id":3010}`)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		resp, _ = tc.postJSON("/api/v1/wishlist", tok.Token, `{"game_id":1}`)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp, body = tc.postJSON("/api/v1/games/7940/reviews", tok.Token, `{"rating":5,"comment":"classic"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Contains(t, body, `"average_rating":5`)

		resp, _ = tc.postJSON("/api/v1/games/7940/reviews", tok.Token, `{"rating":4,"comment":"again"}`)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		req, err := http.NewRequest(http.MethodDelete, tc.server.URL+"/api/v1/wishlist/3010", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok.Token)
		resp, _ = tc.do(req)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp, body = tc.get("/api/v1/genres")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `[{"name":"Action"},{"name":"Indie"},{"name":"Racing"}]`, body)
	})
}

func TestOperationalRoutes(t *testing.T) {
	tc := newTestClient(t, memoryStore(t))

	resp, body := tc.get("/ping")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"pong"}`, body)

	tc.get("/browse")
	resp, body = tc.get("/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `http_requests_total{method="GET",path="/browse",status="200"} 1`)
}

func TestNewRequiresStore(t *testing.T) {
	_, err := New(Deps{})
	assert.Error(t, err)
}

type failingStore struct{}

func (failingStore) Session(context.Context) (repository.Repository, func(), error) {
	return nil, nil, assert.AnError
}

func TestStorageUnavailable(t *testing.T) {
	tc := newTestClient(t, failingStore{})
	resp, _ := tc.get("/browse")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestReviewRequiresRating(t *testing.T) {
	forEachStore(t, func(t *testing.T, tc *testClient) {
		tc.register("alice", "Passw0rdX")
		tc.login("alice", "Passw0rdX")

		resp, body := tc.post("/game/3010", url.Values{"comment": {"forgot the stars"}})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body, "Your rating is required.")

		_, body = tc.get("/game/3010")
		assert.Contains(t, body, "No reviews yet.")
		assert.NotContains(t, body, "You have already reviewed this game.")

		resp, body = tc.postJSON("/api/v1/auth/login", "", `{"username":"alice","password":"Passw0rdX"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var tok struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal([]byte(body), &tok))

		resp, _ = tc.postJSON("/api/v1/games/7940/reviews", tok.Token, `{"comment":"no rating given"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		_, body = tc.get("/api/v1/games/7940")
		assert.Contains(t, body, `"reviews":[]`)
		assert.Contains(t, body, `"already_reviewed":false`)

		resp, body = tc.postJSON("/api/v1/games/7940/reviews", tok.Token, `{"rating":0,"comment":"not for me"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Contains(t, body, `"rating":0`)
	})
}

func TestAPIWrongPasswordAdvertisesBearer(t *testing.T) {
	tc := newTestClient(t, memoryStore(t))
	tc.register("alice", "Passw0rdX")

	resp, _ := tc.postJSON("/api/v1/auth/login", "", `{"username":"alice","password":"Wr0ngPassword"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("WWW-Authenticate"), "Bearer")

	resp, _ = tc.postJSON("/api/v1/auth/login", "", `{"username":"mallory","password":"Passw0rdX"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("WWW-Authenticate"))
}

func TestFlashCookieFollowsCookieSecure(t *testing.T) {
	for _, secure := range []bool{true, false} {
		engine, err := New(Deps{
			Store:    memoryStore(t),
			Sessions: auth.NewSessions([]byte("test-secret"), time.Hour, secure, nil),
		})
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/profile", nil))
		require.Equal(t, http.StatusFound, rec.Code)

		var flash *http.Cookie
		for _, c := range rec.Result().Cookies() {
			if c.Name == "flash" {
				flash = c
			}
		}
		require.NotNil(t, flash)
		assert.Equal(t, secure, flash.Secure)
	}
}

func TestSwaggerDocumentsEveryAPIRoute(t *testing.T) {
	engine, err := New(Deps{
		Store:    memoryStore(t),
		Sessions: auth.NewSessions([]byte("test-secret"), time.Hour, false, nil),
	})
	require.NoError(t, err)

	raw, err := swag.ReadDoc()
	require.NoError(t, err)
	var doc struct {
		BasePath string                               `json:"basePath"`
		Paths    map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	require.Equal(t, "/api/v1", doc.BasePath)

	documented := map[string]bool{}
	for path, ops := range doc.Paths {
		for method := range ops {
			documented[strings.ToUpper(method)+" "+path] = true
		}
	}

	routed := map[string]bool{}
	for _, r := range engine.Routes() {
		path, ok := strings.CutPrefix(r.Path, doc.BasePath)
		if !ok {
			continue
		}
		segments := strings.Split(path, "/")
		for i, seg := range segments {
			if name, isParam := strings.CutPrefix(seg, ":"); isParam {
				segments[i] = "{" + name + "}"
			}
		}
		routed[r.Method+" "+strings.Join(segments, "/")] = true
	}

	assert.Equal(t, routed, documented)
}
