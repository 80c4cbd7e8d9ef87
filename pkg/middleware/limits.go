package middleware

import (
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

// UploadLimit caps request body size. The limit can be swapped at
// runtime, which is how config hot-reload reaches in-flight traffic.
type UploadLimit struct {
	maxBytes atomic.Int64
}

// NewUploadLimit creates a limit with the given initial cap.
func NewUploadLimit(maxBytes int64) *UploadLimit {
	limit := &UploadLimit{}
	limit.maxBytes.Store(maxBytes)
	return limit
}

// Set replaces the cap for subsequent requests.
func (l *UploadLimit) Set(maxBytes int64) {
	l.maxBytes.Store(maxBytes)
}

// Middleware wraps request bodies with http.MaxBytesReader so an
// oversized upload fails the read instead of filling the disk.
func (l *UploadLimit) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, l.maxBytes.Load())
		c.Next()
	}
}
