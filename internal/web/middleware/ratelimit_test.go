package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docflow-io/docflow/internal/web/ratelimit"
)

func newTestLimiter(t *testing.T, limit int) ratelimit.Limiter {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	limiter, err := ratelimit.NewRedisLimiter(client, limit, time.Minute)
	require.NoError(t, err)
	return limiter
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitAllowsUnderLimit(t *testing.T) {
	handler := RateLimit(newTestLimiter(t, 3))(okHandler())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/customer", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "request %d under the limit", i+1)
	}
}

func TestRateLimitBlocksOverLimit(t *testing.T) {
	handler := RateLimit(newTestLimiter(t, 2))(okHandler())

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/customer", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		last = httptest.NewRecorder()
		handler.ServeHTTP(last, req)
	}

	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.Equal(t, "2", last.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", last.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, last.Header().Get("Retry-After"))
}

func TestRateLimitKeyedPerUser(t *testing.T) {
	handler := RateLimit(newTestLimiter(t, 1))(okHandler())

	send := func(user string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/customer", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req = req.WithContext(WithIdentity(req.Context(), Identity{UserID: user}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("alice"))
	assert.Equal(t, http.StatusTooManyRequests, send("alice"))
	assert.Equal(t, http.StatusOK, send("bob"), "each user has an independent window")
}

type failingLimiter struct{}

func (failingLimiter) Allow(ctx context.Context, key string) (*ratelimit.Decision, error) {
	return nil, context.DeadlineExceeded
}

func TestRateLimitFailsOpen(t *testing.T) {
	handler := RateLimit(failingLimiter{})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/customer", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, "a limiter outage must not reject traffic")
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.9:4321"
	assert.Equal(t, "10.0.0.9", clientIP(req))

	req.Header.Set("X-Real-IP", "10.1.1.1")
	assert.Equal(t, "10.1.1.1", clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.1.1.1")
	assert.Equal(t, "203.0.113.7", clientIP(req), "first forwarded hop wins")
}
