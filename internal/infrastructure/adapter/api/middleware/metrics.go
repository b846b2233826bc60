package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// HTTPObserver records served requests
type HTTPObserver interface {
	ObserveHTTP(route, method string, status int, elapsed time.Duration)
}

// Metrics reports every request under its route template
func Metrics(observer HTTPObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		observer.ObserveHTTP(route, c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}
