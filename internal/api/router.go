package api

import (
	"github.com/gin-gonic/gin"
	"github.com/veritaslab/veritas/internal/api/handler"
	"github.com/veritaslab/veritas/internal/api/middleware"
	"github.com/veritaslab/veritas/internal/config"
	"github.com/veritaslab/veritas/internal/metrics"
	"github.com/veritaslab/veritas/internal/service"
)

// SetupRouter configures the Gin router with all routes.
func SetupRouter(
	analysisService *service.AnalysisService,
	authService *service.AuthService,
	m *metrics.Metrics,
	modelDimensions int,
	cfg *config.ServerConfig,
) *gin.Engine {
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics(m))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.CORS.AllowAllOrigins,
	}))

	healthHandler := handler.NewHealthHandler(modelDimensions)
	authHandler := handler.NewAuthHandler(authService)
	analysisHandler := handler.NewAnalysisHandler(analysisService)

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/profile", middleware.Auth(authService), authHandler.Profile)
	}

	// Every core operation sits behind the auth boundary.
	v1 := r.Group("/api/v1", middleware.Auth(authService))
	{
		v1.POST("/analyze", analysisHandler.Analyze)
		v1.GET("/analyses", analysisHandler.History)
		v1.GET("/analyses/:id", analysisHandler.Get)
		v1.DELETE("/analyses/:id", analysisHandler.Delete)
	}

	return r
}
