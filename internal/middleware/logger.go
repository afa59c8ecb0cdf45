package middleware

import (
	"net/http" // HTTP status codes
	"time"     // Request latency

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// AccessLog writes one logrus entry per request once the handler chain is done
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now() // Request start
		path := c.Request.URL.Path
		c.Next() // Run the handlers

		status := c.Writer.Status()
		entry := logrus.WithFields(logrus.Fields{
			"method":     c.Request.Method,                 // HTTP method
			"path":       path,                             // Request path
			"route":      c.FullPath(),                     // Matched route pattern
			"status":     status,                           // Response status
			"latency_ms": time.Since(start).Milliseconds(), // Handler latency
			"client_ip":  c.ClientIP(),                     // Caller address
			"request_id": GetRequestID(c),                  // Correlation id
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String()) // Errors attached by handlers
		}
		// Pick the level from the status class
		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("Request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request served")
		}
	}
}
