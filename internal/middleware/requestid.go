package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDKey = "request_id"

// requestIDHeader carries the request ID on the wire, in both directions.
const requestIDHeader = "X-Request-ID"

// RequestID is a Gin middleware that tags every request with an identifier.
//
// Behavior:
//   - Reuses an inbound X-Request-ID header when a caller (a gateway or a
//     retrying client) already assigned one, so traces correlate across hops.
//   - Generates a new UUID (v4) otherwise.
//   - Stores the ID in the Gin context under the key "request_id" and echoes
//     it back in the X-Request-ID response header.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RequestID())
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		// Store in context for downstream usage
		c.Set(RequestIDKey, id)

		// Expose in response headers for clients
		c.Writer.Header().Set(requestIDHeader, id)

		c.Next()
	}
}
