package middleware

import (
	"strconv"
	"time"

	"clinical-trials-api/observability"

	"github.com/gin-gonic/gin"
)

// Metrics instruments HTTP request counts and latency.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		observability.InflightInc()
		defer observability.InflightDec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		observability.ObserveHTTP(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
