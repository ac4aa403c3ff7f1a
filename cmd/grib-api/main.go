package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/evenoes/grib-api/internal/api/http"
	"github.com/evenoes/grib-api/internal/config"
	"github.com/evenoes/grib-api/internal/download"
	"github.com/evenoes/grib-api/internal/grib"
	"github.com/evenoes/grib-api/internal/grib/netcdf"
	"github.com/evenoes/grib-api/internal/scheduler"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for upstream downloads.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Download boundary: resilient fetcher behind a single-flight cache.
	downloader := download.NewDownloader(httpClient, cfg.CacheDir)
	cache := download.NewCache(downloader, cfg.CacheMaxAge)
	defer cache.Clear()

	// Extraction core and per-endpoint orchestration.
	extractor := grib.NewExtractor(cfg.SampleCap, cfg.FillValues)
	service := grib.NewService(cache, netcdf.Open, extractor, cfg.GribBaseURL)

	// Periodic eviction of expired cache files.
	sched := scheduler.New(cache, cfg.SweepInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "grib-api",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "grib-api",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
