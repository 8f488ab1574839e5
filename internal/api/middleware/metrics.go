package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/veritaslab/veritas/internal/metrics"
)

// Metrics returns a middleware that records per-route request
// durations. Routes are labeled by their registered pattern, not the
// raw path, to keep the cardinality bounded.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
