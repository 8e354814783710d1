package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/account"
	"resume-optimizer/internal/experiences"
	"resume-optimizer/internal/generatedresumes"
	"resume-optimizer/internal/generation"
	"resume-optimizer/internal/profiles"
	"resume-optimizer/internal/services/health"
	"resume-optimizer/internal/shared/config"
	"resume-optimizer/internal/shared/metrics"
	"resume-optimizer/internal/shared/server/middleware"
	"resume-optimizer/internal/targetjobs"
	"resume-optimizer/internal/users"
)

var (
	authRule     = middleware.RateLimitRule{Rate: 0.2, Burst: 10}
	generateRule = middleware.RateLimitRule{Rate: 0.05, Burst: 3}
)

// RouterDeps lists the handlers mounted under /api/v1.
type RouterDeps struct {
	Config            config.Config
	Verifier          middleware.TokenVerifier
	Health            *health.Service
	UserHandler       *users.Handler
	AccountHandler    *account.Handler
	ProfileHandler    *profiles.Handler
	ExperienceHandler *experiences.Handler
	TargetJobHandler  *targetjobs.Handler
	ResumeHandler     *generatedresumes.Handler
	GenerateHandler   *generation.Handler
	Limiter           *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	limiter := deps.Limiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(nil)
	}
	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService()
	}

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		report := healthSvc.Status(c.Request.Context())
		status := http.StatusOK
		if !report.OK {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, report)
	})

	if deps.UserHandler != nil {
		public := api.Group("", middleware.Throttle(limiter, "auth", authRule))
		deps.UserHandler.RegisterRoutes(public)
	}

	private := api.Group("", middleware.Auth(deps.Verifier))
	if deps.AccountHandler != nil {
		deps.AccountHandler.RegisterRoutes(private)
	}
	if deps.ProfileHandler != nil {
		deps.ProfileHandler.RegisterRoutes(private)
	}
	if deps.ExperienceHandler != nil {
		deps.ExperienceHandler.RegisterRoutes(private)
	}
	if deps.TargetJobHandler != nil {
		deps.TargetJobHandler.RegisterRoutes(private)
	}
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(private)
	}
	if deps.GenerateHandler != nil {
		deps.GenerateHandler.RegisterRoutes(private, middleware.Throttle(limiter, "generate", generateRule))
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
