package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/veritaslab/veritas/internal/api"
	"github.com/veritaslab/veritas/internal/config"
	"github.com/veritaslab/veritas/internal/logger"
	"github.com/veritaslab/veritas/internal/metrics"
	"github.com/veritaslab/veritas/internal/model"
	"github.com/veritaslab/veritas/internal/repository"
	"github.com/veritaslab/veritas/internal/service"
	"github.com/veritaslab/veritas/internal/storage"
)

func main() {
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal("Failed to load config: %v", err)
	}
	if err := cfg.Auth.Validate(); err != nil {
		logger.Fatal("Invalid config: %v", err)
	}

	logger.SetDefaultLogger(logger.NewDefault())
	defer logger.Sync()

	// Model artifacts are loaded exactly once, before any request is
	// served. Everything downstream shares them read-only.
	artifactStore, err := storage.NewArtifactStore(&cfg.Model)
	if err != nil {
		logger.Fatal("Failed to initialize artifact store: %v", err)
	}

	ctx := context.Background()
	encoder, classifier, err := model.Load(ctx, artifactStore, cfg.Model.EncoderKey, cfg.Model.ClassifierKey)
	if err != nil {
		logger.Fatal("Failed to load model artifacts: %v", err)
	}
	logger.Info("Model loaded: %d dimensions, %d token window", encoder.Dimensions(), encoder.MaxTokens())

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	analysisRepo := repository.NewAnalysisRepository(db)
	userRepo := repository.NewUserRepository(db)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New("veritas")
	}

	analysisService := service.NewAnalysisService(
		analysisRepo,
		encoder,
		classifier,
		logger.GetDefault(),
		m,
		&service.AnalysisConfig{
			PreviewLength: cfg.History.PreviewLength,
		},
	)

	authService := service.NewAuthService(userRepo, &service.AuthConfig{
		Secret:   cfg.Auth.JWTSecret,
		TokenTTL: cfg.Auth.TokenTTL,
	})

	router := api.SetupRouter(analysisService, authService, m, encoder.Dimensions(), &cfg.Server)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Info("Starting API server on port %d (%s mode)", cfg.Server.Port, cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
