package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"kptshop/internal/httputil"
)

// RateLimit caps the wrapped routes at perMinute requests per minute across
// all clients, with a burst of a tenth of that. perMinute <= 0 disables it.
func RateLimit(perMinute int, logger *slog.Logger) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	burst := max(perMinute/10, 1)
	limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst)
	retryAfter := strconv.Itoa(max(int(60/perMinute), 1))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				logger.Warn("rate limit exceeded",
					"path", r.URL.Path,
					"request_id", httputil.RequestID(r.Context()),
				)
				w.Header().Set("Retry-After", retryAfter)
				httputil.RespondError(w, http.StatusTooManyRequests, "too many requests, slow down")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
