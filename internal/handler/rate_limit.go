package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prismedia/news-server/internal/dto"
	"github.com/prismedia/news-server/internal/service"
)

// RateLimitMiddleware throttles requests per client key within a sliding
// window. A rate limiter outage fails open: losing throttling is better
// than losing the endpoint.
func RateLimitMiddleware(rateLimiter *service.RateLimiter, limit int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()

		allowed, err := rateLimiter.Allow(c.Request.Context(), key, limit, window)
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		remaining, err := rateLimiter.Remaining(c.Request.Context(), key, limit, window)
		if err == nil {
			c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
			c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Status:  http.StatusTooManyRequests,
				Error:   "Too Many Requests",
				Message: "요청이 너무 많습니다. 잠시 후 다시 시도해 주세요.",
			})
			return
		}

		c.Next()
	}
}
