package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"nestling/shared"
	"nestling/shared/cache"
	"nestling/shared/constant"
	"nestling/transport/http/response"
)

const (
	cacheKeyRateLimit = "limiter"
)

// RateLimit throttles requests per client within a fixed window, keyed by
// client IP and user agent. The counter lives in redis, so the limit holds
// across replicas. The limiter fails open: when the cache is unreachable the
// request passes through.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limiter := a.config.App.RateLimiter
			if !limiter.Enable {
				next.ServeHTTP(w, r)

				return
			}

			cacheKey := shared.BuildCacheKey(cacheKeyRateLimit, a.getClientIP(r), a.getUA(r))

			count, ok := a.windowCount(r, cacheKey)
			if !ok {
				next.ServeHTTP(w, r)

				return
			}

			if count > limiter.MaxRequests {
				response.WithRequestLimitExceeded(w)

				return
			}

			// Persisting only allowed requests lets a saturated window expire
			// on its own schedule.
			if err := a.cache.Save(r.Context(), cacheKey, count, limiter.WindowSeconds); err != nil {
				next.ServeHTTP(w, r)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(limiter.MaxRequests))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, limiter.MaxRequests-count)))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(limiter.WindowSeconds))

			next.ServeHTTP(w, r)
		})
	}
}

// windowCount reads the counter for cacheKey and returns it incremented for
// the current request. A miss starts a fresh window at one. ok is false when
// the cache round trip failed.
func (a *appMiddleware) windowCount(r *http.Request, cacheKey string) (int, bool) {
	var count int

	err := a.cache.Get(r.Context(), cacheKey, &count)

	switch {
	case err == nil:
		return count + 1, true
	case errors.Is(err, cache.Nil):
		return 1, true
	default:
		return 0, false
	}
}

func (a *appMiddleware) getUA(r *http.Request) string {
	ua := r.Header.Get(constant.RequestHeaderUserAgent)
	if ua == "" {
		ua = "unknown"
	}

	return ua
}

func (a *appMiddleware) getClientIP(r *http.Request) string {
	// X-Forwarded-For may carry a chain of addresses, the first is the client.
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		if commaIdx := strings.Index(xff, ","); commaIdx > 0 {
			return strings.TrimSpace(xff[:commaIdx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	return r.RemoteAddr
}
