package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kurakampus/kurakampus-cli/internal/config"
	"github.com/kurakampus/kurakampus-cli/internal/logger"
	"github.com/kurakampus/kurakampus-cli/internal/mockapi"
)

func main() {
	addr := flag.String("addr", ":3000", "Listen address")
	dbPath := flag.String("db", "mockapi.db", "SQLite database path")
	secret := flag.String("jwt-secret", "", "JWT signing secret (or set MOCKAPI_JWT_SECRET)")
	seed := flag.Bool("seed", true, "Seed demo data on first start")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging)

	if *secret == "" {
		*secret = os.Getenv("MOCKAPI_JWT_SECRET")
	}

	srv, err := mockapi.New(mockapi.Options{
		DatabasePath: *dbPath,
		JWTSecret:    *secret,
		Seed:         *seed,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create mock API server")
	}

	if err := srv.Run(*addr); err != nil {
		log.Fatal().Err(err).Msg("Server failed to start")
	}
}
