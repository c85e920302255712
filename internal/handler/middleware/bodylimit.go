package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DefaultMaxBodyBytes comfortably fits a booking submission with the longest special requests.
const DefaultMaxBodyBytes = 16 << 10

// MaxBodyBytes caps the request body. Decoding a larger body fails and the handler answers 400.
// It runs inside the route chain, so it does not call c.Next.
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
	}
}
