package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-vote-api/internal/service"
)

// RouteKey is the context key under which the dispatcher records the resolved route label.
const RouteKey = "route"

// Metrics returns middleware that captures request metrics using the provided service.
// Requests routed through the /api dispatcher are labelled with the route it resolved.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()
		path := c.GetString(RouteKey)
		if path == "" {
			path = c.FullPath()
		}
		if path == "" {
			path = "unmatched"
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, status, duration)
	}
}
