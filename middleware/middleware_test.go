package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"LoveForTennis/config"
	models "LoveForTennis/models/postgres"
	"LoveForTennis/services/identity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter(provider identity.Provider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetUpMiddleware(r, config.App{SessionKey: "test-key", CORSOrigins: []string{"*"}, JWTExpireMin: 60})

	r.POST("/session", func(c *gin.Context) {
		if err := StartSession(c, "user-1", []string{models.RoleBoardMember, models.RolePlayer}); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})
	private := r.Group("/private", AuthRequired(provider))
	private.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": CurrentUserID(c), "roles": CurrentRoles(c)})
	})
	private.POST("/logout", func(c *gin.Context) {
		_ = EndSession(c)
		c.Status(http.StatusNoContent)
	})
	private.GET("/board", RequireRole(models.RoleAdmin, models.RoleBoardMember), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	private.GET("/admin", RequireRole(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func do(r http.Handler, method, path string, cookies []*http.Cookie, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequiredRejectsAnonymous(t *testing.T) {
	r := testRouter(identity.NewProvider(identity.NewMemoryTokenStore(), identity.Options{JWTSecret: "s"}))

	w := do(r, http.MethodGet, "/private/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "unauthorized", body["code"])

	w = do(r, http.MethodGet, "/private/me", nil, map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionAuthAndRoles(t *testing.T) {
	r := testRouter(identity.NewProvider(identity.NewMemoryTokenStore(), identity.Options{JWTSecret: "s"}))

	login := do(r, http.MethodPost, "/session", nil, nil)
	require.Equal(t, http.StatusNoContent, login.Code)
	cookies := login.Result().Cookies()
	require.NotEmpty(t, cookies)

	w := do(r, http.MethodGet, "/private/me", cookies, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		User  string   `json:"user"`
		Roles []string `json:"roles"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "user-1", body.User)
	assert.Equal(t, []string{models.RoleBoardMember, models.RolePlayer}, body.Roles)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/private/board", cookies, nil).Code)
	forbidden := do(r, http.MethodGet, "/private/admin", cookies, nil)
	assert.Equal(t, http.StatusForbidden, forbidden.Code)
	assert.Contains(t, forbidden.Body.String(), `"code":"forbidden"`)

	logout := do(r, http.MethodPost, "/private/logout", cookies, nil)
	require.Equal(t, http.StatusNoContent, logout.Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/private/me", logout.Result().Cookies(), nil).Code)
}

func TestBearerTokenAuth(t *testing.T) {
	provider := identity.NewProvider(identity.NewMemoryTokenStore(), identity.Options{JWTSecret: "s"})
	r := testRouter(provider)

	token, err := provider.IssueAccessToken(&models.User{ID: "admin-1", Email: "admin@dummy.com"}, []string{models.RoleAdmin, models.RolePlayer})
	require.NoError(t, err)
	bearer := map[string]string{"Authorization": "Bearer " + token}

	w := do(r, http.MethodGet, "/private/me", nil, bearer)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user":"admin-1"`)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/private/admin", nil, bearer).Code)

	other := identity.NewProvider(identity.NewMemoryTokenStore(), identity.Options{JWTSecret: "other"})
	forged, err := other.IssueAccessToken(&models.User{ID: "admin-1"}, []string{models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/private/me", nil, map[string]string{"Authorization": "Bearer " + forged}).Code)
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", NewRateLimiter(3).Limit(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/login", nil, nil).Code)
	}
	w := do(r, http.MethodPost, "/login", nil, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"rate_limited"`)

	// Buckets are per client IP.
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	other := httptest.NewRecorder()
	r.ServeHTTP(other, req)
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestTracingPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Tracing("test"))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := do(r, http.MethodGet, "/ping", nil, map[string]string{"traceparent": "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}
