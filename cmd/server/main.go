package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/geosite/cms/internal/api"
	"github.com/geosite/cms/internal/cache"
	"github.com/geosite/cms/internal/config"
	"github.com/geosite/cms/internal/database"
	"github.com/geosite/cms/internal/logger"
	"github.com/geosite/cms/internal/seed"
	"github.com/geosite/cms/internal/store"
	"github.com/geosite/cms/internal/upload"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: "stdout",
		Pretty: cfg.Debug,
	}); err != nil {
		panic(err)
	}

	log := logger.Get()
	log.Info().Str("environment", cfg.Env).Msg("Starting CMS backend")

	db, err := database.Open(cfg.DatabaseURL, cfg.Debug)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// A cache outage degrades to an uncached deployment, never a dead one.
	var cacheClient cache.Cache
	cacheClient, err = cache.NewRedisCache(cfg.RedisURL, cfg.RedisPrefix)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, falling back to in-memory cache")
		cacheClient = cache.NewMemoryCache()
	}
	defer func() {
		if err := cacheClient.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing cache client")
		}
	}()

	uploads, err := upload.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize upload handler")
	}

	if cfg.SeedOnStart {
		if _, err := seed.EnsureAdmin(context.Background(), store.NewUserStore(db), cfg); err != nil {
			log.Error().Err(err).Msg("Admin seeding failed")
		}
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		IdleTimeout:  120 * time.Second,
		BodyLimit:    int(cfg.MaxUploadSize) + 1<<20,
		ErrorHandler: api.ErrorHandler,
	})

	handlers := api.NewHandlers(cfg, db, cacheClient, uploads)
	api.SetupRoutes(app, handlers, cfg)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
