package db

import (
	"context"                               // Connection setup
	"fmt"                                   // Error wrapping
	"transaction_dashboard/internal/config" // Backend selection

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// CloseFunc releases a store's connections
type CloseFunc func(ctx context.Context) error

// Open connects the backend selected by cfg.DBDriver
func Open(ctx context.Context, cfg *config.Config) (Store, CloseFunc, error) {
	switch cfg.DBDriver {
	case config.DriverMongo:
		store, err := ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoCollection)
		if err != nil {
			return nil, nil, err
		}
		logrus.WithFields(logrus.Fields{"database": cfg.MongoDB, "collection": cfg.MongoCollection}).Info("Connected to MongoDB")
		return store, store.Close, nil
	case config.DriverMySQL:
		store, err := OpenMySQL(cfg.MySQLDSN())
		if err != nil {
			return nil, nil, err
		}
		logrus.WithFields(logrus.Fields{"host": cfg.DBHost, "database": cfg.DBName}).Info("Connected to MySQL")
		return store, store.Close, nil
	case config.DriverMemory:
		logrus.Warn("Using in-memory store; data is lost on restart")
		return NewMemoryStore(), func(context.Context) error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
}
