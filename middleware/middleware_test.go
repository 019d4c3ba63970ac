package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	require.NoError(t, services.InitJWTService("test-secret", time.Hour))

	r := gin.New()
	r.GET("/me", AuthMiddleware(), func(c *gin.Context) {
		user, ok := GetSessionUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, user)
	})
	return r
}

func issueToken(t *testing.T) string {
	t.Helper()
	token, _, err := services.GetJWTService().GenerateCustomerJWT("u-1", "ada@example.com", "Ada", "password")
	require.NoError(t, err)
	return token
}

func TestAuthMiddlewareAcceptsCookieAndBearer(t *testing.T) {
	r := newAuthRouter(t)
	token := issueToken(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookie, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"ada@example.com"`)
	assert.Contains(t, w.Body.String(), `"provider":"password"`)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareRejects(t *testing.T) {
	r := newAuthRouter(t)

	cases := map[string]string{
		"missing":  "",
		"scheme":   "Token abc",
		"garbage":  "Bearer not-a-jwt",
		"no token": "Bearer ",
	}
	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, name)
		assert.Contains(t, w.Body.String(), `"error":true`, name)
	}
}

func TestRateLimiterPassesThroughWithoutRedis(t *testing.T) {
	prev := config.RedisClient
	config.RedisClient = nil
	t.Cleanup(func() { config.RedisClient = prev })

	r := gin.New()
	r.GET("/x", RateLimiter(1, time.Minute), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}

func TestMetricsCountsByRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := gin.New()
	r.Use(MetricsWithRegistry(reg))
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, p := range []string{"/items/1", "/items/2", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	count, err := testutil.GatherAndCount(reg, "storefront_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one series per route and status")

	families, err := reg.Gather()
	require.NoError(t, err)
	var total float64
	for _, mf := range families {
		if mf.GetName() != "storefront_http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "route" && l.GetValue() == "/items/:id" {
					total += m.GetCounter().GetValue()
				}
			}
		}
	}
	assert.Equal(t, float64(2), total)
}

func TestRequestLoggerLevels(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	prev := config.Log
	config.Log = zap.New(core)
	t.Cleanup(func() { config.Log = prev })

	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusBadGateway) })

	for _, p := range []string{"/ok?size=M&page=&size=M", "/bad", "/boom"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "size=M", entries[0].ContextMap()["query"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
}
