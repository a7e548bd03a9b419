package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wanderquest/pkg/utils"
)

// LoggingMiddleware installs a request scoped logger and writes one access
// line per request. Bodies are never logged.
func LoggingMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLog := log.With(zap.String("trace_id", c.GetString(utils.TraceIDKey)))
		c.Set(utils.LoggerKey, reqLog)

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("dur", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if userId, ok := utils.CurrentUserID(c); ok {
			fields = append(fields, zap.String("user_id", userId.String()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			reqLog.Error("http", fields...)
		case status >= http.StatusBadRequest:
			reqLog.Warn("http", fields...)
		default:
			reqLog.Info("http", fields...)
		}
	}
}

func RecoveryMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic",
					zap.Any("reason", r),
					zap.ByteString("stack", debug.Stack()),
					zap.String("path", c.Request.URL.Path),
				)
				utils.RespondError(c, http.StatusInternalServerError, "Internal server error")
			}
		}()
		c.Next()
	}
}
