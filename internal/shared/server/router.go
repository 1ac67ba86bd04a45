package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"governance-backend/internal/assessments"
	"governance-backend/internal/audit"
	googleauth "governance-backend/internal/auth"
	"governance-backend/internal/projects"
	"governance-backend/internal/shared/config"
	"governance-backend/internal/shared/metrics"
	"governance-backend/internal/shared/server/middleware"
	"governance-backend/internal/shared/server/respond"
	"governance-backend/internal/users"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config            config.Config
	ProjectHandler    *projects.Handler
	AssessmentHandler *assessments.Handler
	AuditHandler      *audit.Handler
	UserHandler       *users.Handler
	GoogleAuth        *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.ProjectHandler != nil {
		deps.ProjectHandler.RegisterRoutes(api)
	}
	if deps.AssessmentHandler != nil {
		// Assessment runs are the costly path; keep them behind the limiter.
		limited := api.Group("", middleware.RateLimit(middleware.RateLimitConfig{
			DefaultGroup: "assess",
			Rules: map[string]middleware.RateLimitRule{
				"assess": {Rate: 5, Burst: 10},
			},
		}))
		deps.AssessmentHandler.RegisterRoutes(limited)
	}
	if deps.AuditHandler != nil {
		deps.AuditHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
