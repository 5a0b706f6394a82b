package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/andresuchdata/outlet-insight/internal/api/handlers"
	"github.com/andresuchdata/outlet-insight/internal/api/middleware"
	"github.com/andresuchdata/outlet-insight/internal/metrics"
	"github.com/andresuchdata/outlet-insight/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	AnalysisService *service.AnalysisService
}

// Options configures the router. Metrics may be nil to leave /metrics off.
type Options struct {
	AllowedOrigins []string
	MaxUploadBytes int64
	Metrics        *metrics.Registry
}

func NewRouter(services *Services, opts Options) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(opts.AllowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(opts.AllowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	apiGroup := router.Group("/api/v1")

	if services != nil && services.AnalysisService != nil {
		workbookHandler := handlers.NewWorkbookHandler(services.AnalysisService)
		workbookGroup := apiGroup.Group("/workbooks", middleware.BodyLimit(opts.MaxUploadBytes))
		{
			workbookGroup.POST("/validate", workbookHandler.Validate)
			workbookGroup.POST("/analyze", workbookHandler.Analyze)
			workbookGroup.POST("/compare", workbookHandler.Compare)
			workbookGroup.POST("/export", workbookHandler.Export)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
