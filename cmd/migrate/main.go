package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"fintrack/config"
	"fintrack/database"
	"fintrack/logger"
)

// Applies pending schema migrations and exits; the API server runs the same steps on start.
func main() {
	configFile := flag.String("c", "", "external config file (optional)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Server.Mode)

	db, err := database.Open(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	if err := database.Migrate(context.Background(), db, log); err != nil {
		log.Error().Err(err).Msg("migration failed")
		os.Exit(1)
	}
	log.Info().Str("driver", cfg.Database.Driver).Msg("migrations applied")
}
