package main

import (
	"context"                                   // Startup and shutdown deadlines
	"errors"                                    // Server close detection
	"net/http"                                  // HTTP server
	"os"                                        // Signals
	"os/signal"                                 // Graceful shutdown
	"syscall"                                   // SIGTERM
	"time"                                      // Timeouts
	"transaction_dashboard/internal/api"        // Custom package for API handlers
	"transaction_dashboard/internal/config"     // Custom package for configuration
	"transaction_dashboard/internal/dashboard"  // Aggregations
	"transaction_dashboard/internal/db"         // Storage backends
	"transaction_dashboard/internal/logging"    // Logger setup
	"transaction_dashboard/internal/middleware" // Custom package for middleware
	"transaction_dashboard/internal/seed"       // Seed operation

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logging.Setup(cfg.LogLevel, cfg.IsProd)

	// Connect the storage backend selected by DB_DRIVER
	startCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	store, closeStore, err := db.Open(startCtx, cfg)
	cancel()
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Seed lock: shared through Redis when configured, in-process otherwise
	var locker seed.Locker
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		locker = seed.NewRedisLocker(redisClient, seed.LockKey, cfg.SeedTimeout+time.Minute)
	}
	seeder := seed.NewSeeder(seed.NewHTTPSource(cfg.SeedURL, cfg.SeedTimeout), store, locker)
	agg := dashboard.NewAggregator(store)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORS(cfg.CORSOrigins))

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	api.RegisterRoutes(r.Group(cfg.APIPrefix), store, agg, seeder)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logrus.WithField("addr", srv.Addr).Info("Server running") // Log server start
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server failed: %v", err)
		}
	}()

	// Wait for a shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Server shutdown failed")
	}
	if err := closeStore(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Failed to close store")
	}
	logrus.Info("Server stopped")
}
