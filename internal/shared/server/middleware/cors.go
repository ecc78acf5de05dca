package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"jobpost-backend/internal/shared/config"
)

var (
	corsMethods = []string{"GET", "OPTIONS", "PATCH", "DELETE", "POST", "PUT"}
	corsHeaders = []string{
		"X-CSRF-Token", "X-Requested-With", "Accept", "Accept-Version",
		"Content-Length", "Content-MD5", "Content-Type", "Date", "X-Api-Version",
		"Authorization", "X-Request-Id",
	}
)

// CORS answers cross-origin requests. An empty origin list, or one that
// contains "*", admits every origin. Credentials are always allowed, so
// the wildcard case reflects the caller's Origin instead of sending "*".
// Origins are expected to have passed config.Validate.
func CORS(cfg config.Config) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:              corsMethods,
		AllowHeaders:              corsHeaders,
		ExposeHeaders:             []string{"X-Request-Id"},
		AllowCredentials:          true,
		MaxAge:                    10 * time.Minute,
		OptionsResponseStatusCode: http.StatusOK,
	}
	if cfg.AllowAllOrigins() {
		corsCfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		corsCfg.AllowOrigins = cfg.CORSAllowOrigins
	}
	return cors.New(corsCfg)
}

// Preflight answers OPTIONS on any path with a bare 200, including requests
// that carry no Origin header and so pass through the CORS handler. It must
// be installed with Use so it also covers unmatched paths.
func Preflight() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

