package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andresuchdata/outlet-insight/internal/api"
	"github.com/andresuchdata/outlet-insight/internal/cache"
	"github.com/andresuchdata/outlet-insight/internal/config"
	"github.com/andresuchdata/outlet-insight/internal/metrics"
	"github.com/andresuchdata/outlet-insight/internal/service"
	"github.com/andresuchdata/outlet-insight/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetFormat(cfg.Log.Format)
	logger.SetLevel(cfg.Log.Level)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	reg := metrics.NewRegistry()

	var resultCache cache.ResultCache
	if cfg.Cache.Enabled {
		rc, err := cache.NewResultCache(cfg.Cache)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("Result cache unavailable, continuing without it")
		} else {
			resultCache = rc
		}
	}

	// Initialize services
	analysisService := service.NewAnalysisService(resultCache, reg, cfg.App.Workers)

	router := api.NewRouter(&api.Services{AnalysisService: analysisService}, api.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		MaxUploadBytes: cfg.App.MaxUploadMB << 20,
		Metrics:        reg,
	})
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
