package middleware

import (
	"github.com/gin-gonic/gin"

	"meetingmind/internal/api/errors"
	"meetingmind/internal/app/metrics"
	"meetingmind/internal/app/ratelimit"
)

// KeyFunc derives the rate limit key for a request
type KeyFunc func(c *gin.Context) string

// ByUserOrIP keys authenticated requests by user id and anonymous ones by client IP
func ByUserOrIP(c *gin.Context) string {
	if userID := c.GetString(UserIDKey); userID != "" {
		return "user:" + userID
	}
	return "ip:" + c.ClientIP()
}

// ByShareToken keys public requests by client IP and the share token they target
func ByShareToken(c *gin.Context) string {
	token := c.Query("token")
	if token == "" {
		token = c.Param("token")
	}
	if token == "" {
		token = c.GetHeader(HeaderShareToken)
	}
	return "ip:" + c.ClientIP() + ":share:" + token
}

// RateLimit rejects requests over the tier's quota with 429 and a Retry-After header
func RateLimit(registry *ratelimit.Registry, tier string, key KeyFunc, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := registry.Allow(c.Request.Context(), tier, tier+":"+key(c))
		if !decision.Allowed {
			if m != nil {
				m.RateLimitDenials.WithLabelValues(tier).Inc()
			}
			HandleError(c, errors.NewRateLimitError(decision.RetryAfter))
			return
		}
		c.Next()
	}
}
