// Rewrites stored payment, storage and checklist sections whose enum values
// fall outside their allow-lists.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"clinical-trials-api/config"
	"clinical-trials-api/services"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	var (
		databaseURL string
		timeout     time.Duration
	)
	flag.StringVar(&databaseURL, "database-url", cfg.DatabaseURL, "store connection string (defaults to DATABASE_URL)")
	flag.DurationVar(&timeout, "timeout", 5*time.Minute, "maximum run time")
	flag.Parse()

	if timeout <= 0 {
		log.Fatal("timeout must be greater than 0")
	}
	cfg.DatabaseURL = databaseURL

	logger := config.NewLogger(cfg)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	st, err := config.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = st.Close(context.Background()) }()

	svc := services.NewApplicationService(st, logger)
	fixed, err := svc.NormalizeEnums(ctx)
	if err != nil {
		logger.Fatal("normalize failed", zap.Int("sections_fixed", fixed), zap.Error(err))
	}

	fmt.Printf("Sections normalized: %d\n", fixed)
}
