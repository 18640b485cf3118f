package main

import (
	"context"                                // Seed deadline
	"transaction_dashboard/internal/config"  // Configuration
	"transaction_dashboard/internal/db"      // Storage backends
	"transaction_dashboard/internal/logging" // Logger setup
	"transaction_dashboard/internal/seed"    // Seed operation

	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main entry point for a one-shot import of the seed dataset
func main() {
	cfg := config.LoadConfig() // Load configuration
	logging.Setup(cfg.LogLevel, cfg.IsProd)

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.SeedTimeout)
	defer cancel()

	store, closeStore, err := db.Open(ctx, cfg)
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	defer closeStore(context.Background())

	// Share the server's lock so a running server cannot seed concurrently
	var locker seed.Locker
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPass, DB: cfg.RedisDB})
		defer rdb.Close()
		locker = seed.NewRedisLocker(rdb, seed.LockKey, 2*cfg.SeedTimeout)
	}

	n, err := seed.NewSeeder(seed.NewHTTPSource(cfg.SeedURL, cfg.SeedTimeout), store, locker).Run(ctx)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	logrus.WithField("records", n).Info("Seed completed")
}
