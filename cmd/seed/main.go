package main

import (
	"context"
	"flag"

	"github.com/geosite/cms/internal/config"
	"github.com/geosite/cms/internal/database"
	"github.com/geosite/cms/internal/logger"
	"github.com/geosite/cms/internal/seed"
	"github.com/geosite/cms/internal/store"
)

func main() {
	demo := flag.Bool("demo", false, "also seed demo articles when the articles table is empty")
	flag.Parse()

	cfg := config.Load()

	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Output: "stdout", Pretty: true}); err != nil {
		panic(err)
	}
	log := logger.Get()

	db, err := database.Open(cfg.DatabaseURL, cfg.Debug)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	ctx := context.Background()

	admin, err := seed.EnsureAdmin(ctx, store.NewUserStore(db), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Admin seeding failed")
	}
	if admin != nil {
		log.Info().Str("username", admin.Username).Str("email", admin.Email).Msg("Admin account ready")
	}

	if *demo {
		count, err := seed.SeedDemoArticles(ctx, store.NewArticleStore(db))
		if err != nil {
			log.Fatal().Err(err).Msg("Demo article seeding failed")
		}
		log.Info().Int("created", count).Msg("Demo articles ready")
	}
}
