package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"nuam/internal/logger"
	"nuam/internal/session"
	"nuam/internal/uuid"
)

const requestIDKey = "requestID"

// RequestIDHeader carries the request id back to the client.
const RequestIDHeader = "X-Request-ID"

// RequestLogging logs every request with a UUIDv7 request id. It runs after
// the session loader so the user is included when known.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := uuid.New()
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)

		c.Next()

		fields := []interface{}{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if id, ok := session.FromContext(c.Request.Context()); ok {
			fields = append(fields, "user", id.Username)
		}
		logger.Get().Infow("request", fields...)
	}
}
