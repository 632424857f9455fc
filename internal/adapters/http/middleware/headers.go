package middleware

import "github.com/gin-gonic/gin"

// HeaderAPIVersion carries the service version on every response.
const HeaderAPIVersion = "X-API-Version"

// ResponseHeaders returns middleware that sets the headers every response
// carries, error responses included.
func ResponseHeaders(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Cache-Control", "no-store")
		h.Set(HeaderAPIVersion, version)
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "no-referrer")

		c.Next()
	}
}
