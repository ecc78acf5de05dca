package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"jobpost-backend/internal/shared/telemetry"
)

// Logging emits a structured log per request. Preflight requests are skipped.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if userID := UserIDFromContext(c); userID != "" {
			fields["user_id"] = userID
		}
		if target := c.GetString(targetUserIDKey); target != "" {
			fields["target_user_id"] = target
		}
		telemetry.Info("request.complete", fields)
	}
}
