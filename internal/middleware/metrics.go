package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stwalsh4118/leadrank/internal/metrics"
)

// Metrics records request counts, latencies and in-flight requests.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.RequestStarted()

		c.Next()

		metrics.RequestFinished(c.Request.Method, routeOf(c), c.Writer.Status(), time.Since(start))
	}
}
