package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"user-registry-api/config"
	"user-registry-api/internal/infrastructure/db/postgres"
)

// usage: migrate [up|down|status|redo|version|reset] [args...]
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file, using process environment: %v", err)
	}
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config error", zap.Error(err))
	}
	dsn, err := cfg.DBDSN()
	if err != nil {
		logger.Fatal("DB config error", zap.Error(err))
	}

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"}
	}

	if err = postgres.Migrate(context.Background(), logger, dsn, arguments[0], arguments[1:]...); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
}
