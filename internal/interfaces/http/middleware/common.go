// Package middleware holds the gin middleware for the HTTP layer.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/infrastructure/config"
)

// RequestIDKey is the gin context key for the request ID
const RequestIDKey = "request_id"

// RequestIDHeader is the header the request ID is read from and echoed to
const RequestIDHeader = "X-Request-ID"

// RequestID assigns each request an ID, honoring one supplied by the
// caller, and echoes it in the response for log correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// CORS applies the configured cross-origin policy
func CORS(cfg config.HTTPConfig) gin.HandlerFunc {
	allowOrigins := cfg.CORSAllowOrigins
	allowMethods := strings.Join(cfg.CORSAllowMethods, ", ")
	allowHeaders := strings.Join(cfg.CORSAllowHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && originAllowed(allowOrigins, origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", allowMethods)
			c.Header("Access-Control-Allow-Headers", allowHeaders)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

func originAllowed(allowed []string, origin string) bool {
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}

// privatePathPrefixes are routes whose responses carry user-specific
// data and must never be stored by shared caches.
var privatePathPrefixes = []string{"/account", "/checkout", "/admin", "/api/v1/admin"}

// SecurityHeaders sets baseline security headers and suppresses
// caching on authenticated surfaces.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		path := c.Request.URL.Path
		for _, prefix := range privatePathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Header("Cache-Control", "no-store")
				break
			}
		}
		c.Next()
	}
}
