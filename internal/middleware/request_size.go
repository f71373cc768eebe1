package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"electrotrack/pkg/utils"
)

// DefaultMaxRequestSize leaves room for the base64 signature images of a loan.
const DefaultMaxRequestSize = 10 << 20

func RequestSizeLimitMiddleware(maxSize int64) gin.HandlerFunc {
	if maxSize <= 0 {
		maxSize = DefaultMaxRequestSize
	}

	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "Request body too large")
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}
