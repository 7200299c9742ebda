package routes

import (
	"net/http"

	"github.com/careercompass/api/internal/api/handlers"
	"github.com/careercompass/api/internal/api/middleware"
	"github.com/careercompass/api/internal/auth"
	"github.com/careercompass/api/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Deps struct {
	Logger     *logrus.Logger
	Resolver   *auth.Resolver
	CORSOrigin string
	// SyncRatePerMinute throttles POST /jobs/sync; 0 disables.
	SyncRatePerMinute int

	Health   *handlers.HealthHandler
	Lookup   *handlers.LookupHandler
	Career   *handlers.CareerHandler
	Analysis *handlers.AnalysisHandler
	Jobs     *handlers.JobsHandler
	Tracking *handlers.TrackingHandler
	Auth     *handlers.AuthHandler
	WS       *handlers.WSHandler // nil without redis
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	if d.Logger != nil {
		r.Use(middleware.RequestLogger(d.Logger))
	}
	r.Use(middleware.CORS(d.CORSOrigin))
	r.Use(middleware.Authenticate(d.Resolver, d.Logger))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Career Compass API",
			"docs":    "/api/v1/health",
		})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handlers.APIError{
			Code:    utils.CodeNotFound,
			Message: "Route not found: " + c.Request.Method + " " + c.Request.URL.Path,
		})
	})

	v1 := r.Group("/api/v1")

	v1.GET("/health", d.Health.Get)
	v1.GET("/lookups", d.Lookup.Lookups)
	v1.GET("/stats/world", d.Lookup.WorldStats)
	v1.GET("/careers/paths", d.Career.Paths)
	v1.POST("/analysis/recommendations", d.Analysis.Recommendations)

	jobs := v1.Group("/jobs")
	jobs.GET("", d.Jobs.List)
	jobs.POST("/sync", middleware.RateLimit(d.SyncRatePerMinute), d.Jobs.Sync)
	jobs.GET("/sync/runs", middleware.RequireAdmin(), d.Jobs.Runs)
	if d.WS != nil {
		jobs.GET("/sync/ws", d.WS.SyncFeed)
	}

	authG := v1.Group("/auth")
	authG.POST("/register", d.Auth.Register)
	authG.POST("/login", d.Auth.Login)
	authG.GET("/me", d.Auth.Me)

	tracking := v1.Group("/tracking")
	tracking.Use(middleware.RequireAuth())
	tracking.GET("/history", d.Tracking.History)
	tracking.GET("/checklist", d.Tracking.Checklist)
	tracking.POST("/checklist/bootstrap", d.Tracking.Bootstrap)
	tracking.PATCH("/checklist/:itemId", d.Tracking.UpdateItem)
}
