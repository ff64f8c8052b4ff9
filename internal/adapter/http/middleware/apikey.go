package middleware

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/bnema/splice/internal/adapter/http/ratelimit"
	"github.com/bnema/splice/internal/infrastructure/logger"
)

// KeyQueryParam carries the API key for clients that cannot set headers,
// such as EventSource and browser WebSockets.
const KeyQueryParam = "key"

// APIKey accepts requests presenting the key whose bcrypt hash is hash, either
// as a bearer token or in the key query parameter. An empty hash disables the
// check. Clients that fail repeatedly are turned away with 429 by limiter.
func APIKey(hash string, limiter *ratelimit.AuthLimiter, next http.Handler) http.Handler {
	if hash == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientIP(r)

		if blocked, remaining := limiter.Blocked(client); blocked {
			tooManyAttempts(w, remaining)
			return
		}

		key := presentedKey(r)
		if key == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) != nil {
			logger.Warn.Printf("rejected API key from %s", logger.SanitizeForLog(client))
			if blocked, remaining := limiter.Fail(client); blocked {
				tooManyAttempts(w, remaining)
				return
			}
			w.Header().Set("WWW-Authenticate", `Bearer realm="splice"`)
			http.Error(w, "invalid or missing API key", http.StatusUnauthorized)
			return
		}

		limiter.Reset(client)
		next.ServeHTTP(w, r)
	})
}

func presentedKey(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return r.URL.Query().Get(KeyQueryParam)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func tooManyAttempts(w http.ResponseWriter, remaining time.Duration) {
	w.Header().Set("Retry-After", fmt.Sprintf("%d", int(math.Ceil(remaining.Seconds()))))
	http.Error(w, "too many failed attempts", http.StatusTooManyRequests)
}
