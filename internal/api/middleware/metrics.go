package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"meetingmind/internal/app/metrics"
)

// Metrics records request latency by matched route and status class
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status()/100) + "xx"
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
	}
}
