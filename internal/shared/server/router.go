package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	googleauth "jobpost-backend/internal/auth"
	"jobpost-backend/internal/jobposts"
	"jobpost-backend/internal/linkedin"
	"jobpost-backend/internal/organizations"
	"jobpost-backend/internal/profiles"
	"jobpost-backend/internal/shared/config"
	"jobpost-backend/internal/shared/metrics"
	"jobpost-backend/internal/shared/server/middleware"
	"jobpost-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers mounted under /api. Nil handlers are skipped.
type RouterDeps struct {
	Config              config.Config
	JobPostHandler      *jobposts.Handler
	OrganizationHandler *organizations.Handler
	LinkedInHandler     *linkedin.Handler
	ProfileHandler      *profiles.Handler
	GoogleAuth          *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.HandleMethodNotAllowed = true

	serviceName := deps.Config.ServiceName
	if serviceName == "" {
		serviceName = "jobpost-backend"
	}

	r.Use(
		middleware.RequestID(),
		otelgin.Middleware(serviceName),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config),
		middleware.Preflight(),
		middleware.Identity(),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"status": "ok", "message": "Server is running"})
	})
	registerMeRoutes(api)

	if deps.JobPostHandler != nil {
		deps.JobPostHandler.RegisterRoutes(api)
	}
	if deps.OrganizationHandler != nil {
		deps.OrganizationHandler.RegisterRoutes(api)
	}
	if deps.LinkedInHandler != nil {
		deps.LinkedInHandler.RegisterRoutes(api)
	}
	if deps.ProfileHandler != nil {
		deps.ProfileHandler.RegisterRoutes(api)
	}
	if deps.GoogleAuth.Configured() {
		deps.GoogleAuth.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "Route not found", nil)
	})
	r.NoMethod(func(c *gin.Context) {
		respond.Error(c, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed", nil)
	})

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":3001"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
