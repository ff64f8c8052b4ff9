package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bnema/splice/internal/adapter/http/ratelimit"
)

func hashKey(t *testing.T, key string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func newLimiter(t *testing.T, max int) *ratelimit.AuthLimiter {
	l := ratelimit.NewAuthLimiter(max, time.Minute, time.Minute)
	t.Cleanup(l.Stop)
	return l
}

func TestAPIKey_Disabled(t *testing.T) {
	rec := httptest.NewRecorder()
	APIKey("", newLimiter(t, 3), okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/merges", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestAPIKey(t *testing.T) {
	hash := hashKey(t, "s3cret")

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		status int
	}{
		{name: "bearer", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer s3cret") }, status: http.StatusTeapot},
		{name: "query", setup: func(r *http.Request) { r.URL.RawQuery = "key=s3cret" }, status: http.StatusTeapot},
		{name: "missing", setup: func(*http.Request) {}, status: http.StatusUnauthorized},
		{name: "wrong key", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, status: http.StatusUnauthorized},
		{name: "basic scheme", setup: func(r *http.Request) { r.Header.Set("Authorization", "Basic czNjcmV0") }, status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/merges", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()

			APIKey(hash, newLimiter(t, 5), okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusUnauthorized {
				assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")
			}
		})
	}
}

func TestAPIKey_BlocksRepeatedFailures(t *testing.T) {
	hash := hashKey(t, "s3cret")
	handler := APIKey(hash, newLimiter(t, 2), okHandler())

	send := func(key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/merges", nil)
		req.RemoteAddr = "192.0.2.7:4321"
		req.Header.Set("Authorization", "Bearer "+key)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusUnauthorized, send("bad").Code)
	rec := send("bad")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusTooManyRequests, send("s3cret").Code, "blocked even with the right key")
}
