package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"travel-booking/internal/handler/httperr"
	"travel-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

var errRateLimited = errors.New("rate limit exceeded")

type RateLimiter interface {
	Allow(ctx context.Context, key string) (shared.RateLimitResult, error)
}

// RateLimit counts requests per client IP. Counter failures let the request through.
func RateLimit(limiter RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			slog.Warn("rate limiter unavailable", "error", err.Error(), "request_id", GetRequestID(c))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(res.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(int64(res.ResetIn.Seconds()), 10))

		if !res.Allowed {
			c.Header("Retry-After", strconv.FormatInt(int64(res.ResetIn.Seconds()), 10))
			httperr.AbortWithError(c, http.StatusTooManyRequests, errRateLimited,
				"Too many requests from this IP, please try again later.", nil)
			return
		}
		c.Next()
	}
}
