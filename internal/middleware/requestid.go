package middleware

import (
	"time" // Request latency

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/google/uuid"     // Request ids
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

// RequestLogger assigns a request id and logs every request once it completes
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(RequestIDHeader) // Reuse the caller's id when present
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("requestID", requestID)                     // Store request id in context
		c.Writer.Header().Set(RequestIDHeader, requestID) // Echo it to the caller
		c.Next()                                          // Proceed to the next handler

		entry := logrus.WithFields(logrus.Fields{
			"request_id": requestID,                  // Request id
			"method":     c.Request.Method,           // HTTP method
			"path":       c.Request.URL.Path,         // Request path
			"query":      c.Request.URL.RawQuery,     // Raw query string
			"status":     c.Writer.Status(),          // Response status
			"latency":    time.Since(start).String(), // Time spent
		})
		switch {
		case c.Writer.Status() >= 500:
			entry.Error("Request failed")
		case c.Writer.Status() >= 400:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request served")
		}
	}
}

// RequestID returns the id assigned by RequestLogger
func RequestID(c *gin.Context) string {
	return c.GetString("requestID")
}
