package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw)
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func get(r http.Handler, headers map[string]string) int {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestAdminTokenMiddleware(t *testing.T) {
	r := newEngine(AdminTokenMiddleware("s3cret"))

	assert.Equal(t, http.StatusOK, get(r, map[string]string{"Authorization": "Bearer s3cret"}))
	assert.Equal(t, http.StatusUnauthorized, get(r, map[string]string{"Authorization": "Bearer nope"}))
	assert.Equal(t, http.StatusUnauthorized, get(r, map[string]string{"Authorization": "s3cret"}))
	assert.Equal(t, http.StatusUnauthorized, get(r, nil))

	disabled := newEngine(AdminTokenMiddleware(""))
	assert.Equal(t, http.StatusForbidden, get(disabled, map[string]string{"Authorization": "Bearer "}))
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newEngine(RateLimitMiddleware(3))
	alice := map[string]string{"X-Forwarded-For": "10.0.0.1, 172.16.0.1"}
	bob := map[string]string{"X-Real-IP": "10.0.0.2"}

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, get(r, alice))
	}
	assert.Equal(t, http.StatusTooManyRequests, get(r, alice))
	assert.Equal(t, http.StatusOK, get(r, bob))
}

func TestGetClientIP(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"first forwarded address", map[string]string{"X-Forwarded-For": "10.0.0.1, 172.16.0.1"}, "192.0.2.1:5000", "10.0.0.1"},
		{"junk forwarded entries skipped", map[string]string{"X-Forwarded-For": "unknown, 10.0.0.9"}, "192.0.2.1:5000", "10.0.0.9"},
		{"real ip header", map[string]string{"X-Real-IP": " 10.0.0.2 "}, "192.0.2.1:5000", "10.0.0.2"},
		{"junk real ip falls back to socket", map[string]string{"X-Real-IP": "nope"}, "192.0.2.1:5000", "192.0.2.1"},
		{"remote address without port", nil, "192.0.2.7", "192.0.2.7"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = tc.remote
			for k, v := range tc.headers {
				c.Request.Header.Set(k, v)
			}
			assert.Equal(t, tc.want, getClientIP(c))
		})
	}
}

func TestRateLimiterStore_EvictsIdleClients(t *testing.T) {
	clock := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	store := newRateLimiterStore(2)
	store.now = func() time.Time { return clock }
	store.lastSweep = clock

	quiet := store.getLimiter("10.0.0.1")
	require.True(t, quiet.Allow())
	require.True(t, quiet.Allow())
	assert.False(t, quiet.Allow())

	clock = clock.Add(5 * time.Minute)
	busy := store.getLimiter("10.0.0.2")
	assert.Len(t, store.limiters, 2)

	// The sweep after the idle window keeps recently seen clients only.
	clock = clock.Add(6 * time.Minute)
	assert.Same(t, busy, store.getLimiter("10.0.0.2"))
	assert.Len(t, store.limiters, 1)
	assert.NotContains(t, store.limiters, "10.0.0.1")

	fresh := store.getLimiter("10.0.0.1")
	assert.NotSame(t, quiet, fresh)
	assert.True(t, fresh.Allow())
}
