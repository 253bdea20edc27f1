package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marketplace/backend/internal/interfaces/http/dto"
)

// BodyLimit rejects requests whose declared or actual body size exceeds
// maxBytes. The reader wrapper catches chunked requests that carry no
// Content-Length header.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse("PAYLOAD_TOO_LARGE", "Request body exceeds the size limit"))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
