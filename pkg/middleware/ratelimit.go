package middleware

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"showtime-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimit is a fixed-window per-client limiter backed by Redis, keyed
// by authenticated user id when present and client IP otherwise. On
// Redis failure requests pass through; limiting is best effort.
func RateLimit(client *redis.Client, perMinute int, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)

			count, err := client.Incr(r.Context(), key).Result()
			if err != nil {
				logger.Warn("Rate limiter unavailable", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			if count == 1 {
				client.Expire(r.Context(), key, time.Minute)
			}

			if count > int64(perMinute) {
				utils.ResponseTooManyRequests(w, "Too many requests, slow down")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	window := time.Now().Unix() / 60

	if id := r.Header.Get(UserIDHeader); id != "" {
		return fmt.Sprintf("ratelimit:user:%s:%d", id, window)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return fmt.Sprintf("ratelimit:ip:%s:%d", host, window)
}
