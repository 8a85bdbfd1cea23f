package api

import (
	"log/slog"

	"dropflow-go/pkg/api/handlers"
	"dropflow-go/pkg/api/middleware"
	"dropflow-go/pkg/metrics"
	"dropflow-go/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options configures the dashboard router.
type Options struct {
	StaticDir string
	Token     string
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer
}

func NewRouter(catalog *services.CatalogService, opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.ErrorHandler(opts.Logger))
	router.Use(middleware.RequestLogger(opts.Logger))
	if opts.Metrics != nil {
		router.Use(middleware.Metrics(opts.Metrics))
	}

	// Health check
	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))

	// API routes
	api := router.Group("/api")
	{
		products := api.Group("/products")
		{
			products.GET("", handlers.ListProducts(catalog, opts.Metrics))
			products.POST("", middleware.RequireToken(opts.Token), handlers.CreateProduct(catalog))
		}

		api.GET("/orders", handlers.ListOrders(catalog))
	}

	// Frontend assets with SPA fallback
	router.NoRoute(handlers.SPA(opts.StaticDir))

	return router
}
