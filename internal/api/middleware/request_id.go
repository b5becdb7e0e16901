package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Headers understood by the API
const (
	HeaderRequestID  = "X-Request-ID"
	HeaderShareToken = "X-Share-Token"
)

// RequestIDKey is the gin context key holding the request id
const RequestIDKey = "request_id"

const maxRequestIDLength = 128

// RequestID reuses a caller-supplied X-Request-ID when it is short and printable,
// otherwise it mints a UUID. The id is echoed back and attached to error bodies.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if !validRequestID(id) {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}
