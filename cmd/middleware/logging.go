package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wb-go/wbf/zlog"
)

// LoggingMiddleware logs one line per request after the handler chain
// completes.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		zlog.Logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	}
}
