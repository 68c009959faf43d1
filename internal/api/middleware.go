package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/fleet-availability-backend/internal/metrics"
)

// RequestMetrics records request latency per method/route/status.
// Uses the route template (e.g. /v1/fleet/:id) rather than the raw path
// to keep label cardinality bounded.
func RequestMetrics(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		collector.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
