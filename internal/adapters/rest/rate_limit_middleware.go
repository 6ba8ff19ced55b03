package rest

import (
	"net/http"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/port"

	"golang.org/x/time/rate"
)

// RateLimitMiddleware - общий token bucket на группу маршрутов.
// rps <= 0 отключает ограничение.
func RateLimitMiddleware(rps float64, burst int) func(next http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				contextkeys.LoggerFromContext(r.Context()).Warn("Search rate limit exceeded", port.Fields{
					"remote_addr": r.RemoteAddr,
				})
				w.Header().Set("Retry-After", "1")
				WriteJSONError(w, http.StatusTooManyRequests, "search rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
