package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/ticket-stock-reconciler/internal/config"
	"github.com/iliyamo/ticket-stock-reconciler/internal/utils"
)

const secret = "test-secret"

func protected(t *testing.T, token string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.GET("/v1/whoami", func(c echo.Context) error {
		return c.String(http.StatusOK, Operator(c))
	}, JWTAuth(secret), RequireRole(utils.RoleOperator))

	req := httptest.NewRequest(http.MethodGet, "/v1/whoami", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthAcceptsOperator(t *testing.T) {
	tok, err := utils.NewAccessToken(secret, "ops", utils.RoleOperator, 5)
	require.NoError(t, err)

	rec := protected(t, tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ops", rec.Body.String())
}

func TestJWTAuthRejects(t *testing.T) {
	rec := protected(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"missing bearer token"}`, rec.Body.String())

	rec = protected(t, "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	other, err := utils.NewAccessToken("other-secret", "ops", utils.RoleOperator, 5)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, protected(t, other.Token).Code)
}

func TestRequireRoleForbids(t *testing.T) {
	tok, err := utils.NewAccessToken(secret, "ops", "VIEWER", 5)
	require.NoError(t, err)
	rec := protected(t, tok.Token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestOperatorDefaultsToAnon(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Equal(t, "anon", Operator(c))
}

func TestCacheKey(t *testing.T) {
	e := echo.New()
	newCtx := func(target string) echo.Context {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
		c.SetPath("/v1/sectors/resolve")
		return c
	}
	cfg := config.CacheConfig{Prefix: "p", KeyStrategy: "route_query"}

	a := cacheKey(cfg, newCtx("/v1/sectors/resolve?label=210"))
	b := cacheKey(cfg, newCtx("/v1/sectors/resolve?label=211"))
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, cacheKey(cfg, newCtx("/v1/sectors/resolve?label=210")))
	assert.Regexp(t, `^p:[0-9a-f]{40}$`, a)

	cfg.KeyStrategy = "route"
	assert.Equal(t, cacheKey(cfg, newCtx("/v1/sectors/resolve?label=1")), cacheKey(cfg, newCtx("/v1/sectors/resolve?label=2")))
}

func TestRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/stock/scan", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.7")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/stock/scan")
	c.Set(KeyOperator, "ops")

	cfg := config.RateLimitConfig{Prefix: "rl"}
	assert.Equal(t, "rl:ip:10.0.0.7:user:ops:route:POST /v1/stock/scan", rateKey(cfg, c))
	cfg.KeyStrategy = "user"
	assert.Equal(t, "rl:user:ops", rateKey(cfg, c))
	cfg.KeyStrategy = "IP"
	assert.Equal(t, "rl:ip:10.0.0.7", rateKey(cfg, c))
}

func TestWithoutRedisIsPassthrough(t *testing.T) {
	e := echo.New()
	e.Use(NewRedisCache(config.CacheConfig{Enabled: true}, nil))
	e.Use(NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil))
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, "pong", rec.Body.String())
	assert.Empty(t, rec.Header().Get("X-Cache"))
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestCaptureWriterLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, limit: 4}
	_, _ = cw.Write([]byte("abc"))
	assert.False(t, cw.truncated)
	_, _ = cw.Write([]byte("de"))
	assert.True(t, cw.truncated)
	assert.Equal(t, "abc", cw.buf.String())
	assert.Equal(t, "abcde", rec.Body.String())
}

func TestRetryAfterSeconds(t *testing.T) {
	assert.Equal(t, 0, retryAfterSeconds(-5))
	assert.Equal(t, 1, retryAfterSeconds(1))
	assert.Equal(t, 2, retryAfterSeconds(1500))
}
