package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"quantdash-go-api/internal/config"
	"quantdash-go-api/internal/handlers"
	"quantdash-go-api/internal/logger"
	"quantdash-go-api/internal/services"
	"quantdash-go-api/pkg/analytics"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Logger is not up yet
		panic(err)
	}

	log := logger.New(cfg.LogLevel)
	defer log.Sync()

	// Initialize services
	cacheService := services.NewCacheService(cfg, log)
	defer cacheService.Close()

	analyticsClient := analytics.NewClient(cfg.AnalyticsServiceURL, nil, log)
	portfolioService := services.NewPortfolioService(analyticsClient, cacheService, log)

	// Initialize handlers
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	assetHandler := handlers.NewAssetHandler(portfolioService)
	healthHandler := handlers.NewHealthHandler()

	// Create Fiber app with optimized config
	app := fiber.New(fiber.Config{
		Prefork:       false,
		StrictRouting: true,
		CaseSensitive: true,
		ServerHeader:  "QuantDash-API",
		AppName:       "QuantDash v1.0",
		ReadTimeout:   time.Second * 10,
		WriteTimeout:  time.Second * 10,
		BodyLimit:     4 * 1024 * 1024, // 4MB
		ErrorHandler:  handlers.CustomErrorHandler,
	})

	// Middleware stack
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000,http://localhost:8080",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: false,
		MaxAge:           3600,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error": "Rate limit exceeded. Please try again later.",
			})
		},
	}))

	// Routes
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "QuantDash API",
			"version": "1.0.0",
			"status":  "running",
		})
	})

	app.Get("/health", healthHandler.Health)
	app.Get("/health/ready", healthHandler.Ready)

	// API v1 routes
	v1 := app.Group("/v1")
	v1.Post("/portfolio/analyze", portfolioHandler.Analyze)
	v1.Get("/assets/:symbol/history", assetHandler.History)
	v1.Get("/assets/:symbol/metrics", assetHandler.Metrics)
	v1.Post("/admin/refresh", portfolioHandler.RefreshCache)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	// Graceful shutdown
	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	log.Info("quantdash API started",
		zap.String("port", port),
		zap.String("environment", cfg.Environment),
		zap.String("analytics_service", cfg.AnalyticsServiceURL))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server shutdown complete")
}
