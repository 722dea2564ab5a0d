package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"
	"github.com/oklog/ulid/v2"

	apperrors "github.com/edukit/campus/pkg/errors"
)

const (
	// RequestIDKey is the gin context key carrying the request identifier.
	RequestIDKey = "request_id"
	// RequestIDHeader is the header the identifier is read from and echoed to.
	RequestIDHeader = "X-Request-ID"
)

// RequestID assigns each request a ULID unless the client supplied one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = ulid.Make().String()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestIDFromContext returns the request identifier, or "" before RequestID ran.
func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// AccessLog writes one structured line per request after it completes.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"request_id", RequestIDFromContext(c),
		}
		if c.Writer.Status() >= 500 {
			logger.Global().Errorw("Request failed", fields...)
			return
		}
		logger.Global().Infow("Request completed", fields...)
	}
}

// Recovery converts panics into 500 responses and logs the panic value.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Global().Errorw("Handler panic recovered",
					"panic", r,
					"path", c.Request.URL.Path,
					"request_id", RequestIDFromContext(c),
				)
				abortWithErrno(c, apperrors.ErrInternal)
			}
		}()
		c.Next()
	}
}
