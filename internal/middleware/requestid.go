package middleware

import (
	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/google/uuid"   // Request id generation
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

// requestIDKey is the gin context key holding the request id
const requestIDKey = "requestID"

// RequestID reuses the caller's X-Request-ID or assigns a new one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader) // Caller supplied id
		// Reject empty or oversized ids
		if id == "" || len(id) > 64 {
			id = uuid.NewString() // Fresh id
		}
		c.Set(requestIDKey, id)       // Store id in context
		c.Header(RequestIDHeader, id) // Echo id to the caller
		c.Next()                      // Proceed to the next handler
	}
}

// GetRequestID returns the id assigned by RequestID, or ""
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
