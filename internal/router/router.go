package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "healthmon/docs"
	"healthmon/internal/config"
	"healthmon/internal/domain"
	"healthmon/internal/handler"
	"healthmon/internal/middleware"
	"healthmon/internal/service"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	Report    *handler.ReportHandler
	Village   *handler.VillageHandler
	Alert     *handler.AlertHandler
	Dashboard *handler.DashboardHandler
	Export    *handler.ExportHandler
	I18n      *handler.I18nHandler
	Health    *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, authSvc service.AuthService, h Handlers, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	if !cfg.Server.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	v1.GET("/i18n/:lang", h.I18n.Catalog)

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", middleware.RateLimit(cfg.RateLimit), h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)

	// Protected routes - require valid JWT and a live session
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/auth/me", h.Auth.Me)

	protected.GET("/symptoms", h.Report.Symptoms)
	reports := protected.Group("/reports")
	reporters := middleware.RequireRole(domain.RoleFieldWorker, domain.RoleAdmin)
	reports.POST("/health", reporters, h.Report.SubmitHealth)
	reports.POST("/water", reporters, h.Report.SubmitWater)
	reports.GET("/health", h.Report.ListHealth)
	reports.GET("/water", h.Report.ListWater)

	protected.GET("/villages", h.Village.List)
	protected.GET("/villages/:id", h.Village.Get)
	protected.GET("/map/markers", h.Village.Markers)

	officers := middleware.RequireRole(domain.RoleDistrictOfficer, domain.RoleAdmin)
	alerts := protected.Group("/alerts")
	alerts.GET("", h.Alert.List)
	alerts.GET("/stream", h.Alert.Stream)
	alerts.POST("/:id/acknowledge", officers, h.Alert.Acknowledge)
	alerts.POST("/:id/resolve", officers, h.Alert.Resolve)

	protected.GET("/dashboard", h.Dashboard.Get)
	protected.GET("/export", officers, h.Export.Export)

	return r
}
