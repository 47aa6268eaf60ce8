package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/invirogens/website/pkg/logger"
)

// RequestLogger logs one line per request. 5xx responses log at error level.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		status := c.Writer.Status()
		format := "%s %s -> %d (%s) request_id=%s"
		args := []interface{}{c.Request.Method, path, status, time.Since(start).Round(time.Microsecond), GetRequestID(c)}
		switch {
		case status >= 500:
			logger.Errorf(format, args...)
		case status >= 400:
			logger.Warnf(format, args...)
		default:
			logger.Infof(format, args...)
		}
	}
}

// CORS sets permissive headers and answers preflight requests.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, "+RequestIDHeader)
		h.Set("Access-Control-Expose-Headers", "Content-Length, "+RequestIDHeader)
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	}
}
