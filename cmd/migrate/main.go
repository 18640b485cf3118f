package main

import (
	"context"                                // Migration deadline
	"time"                                   // Timeout
	"transaction_dashboard/internal/config"  // Custom import path (Config)
	"transaction_dashboard/internal/db"      // Custom import path (Database)
	"transaction_dashboard/internal/logging" // Logger setup

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	logging.Setup(cfg.LogLevel, cfg.IsProd)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, closeStore, err := db.Open(ctx, cfg)
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	defer closeStore(ctx)

	if err := db.Migrate(ctx, store); err != nil {
		logrus.Fatalf("%v", err)
	}
}
