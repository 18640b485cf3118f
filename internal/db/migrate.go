package db

import (
	"context" // Migration calls
	"fmt"     // Error wrapping

	"github.com/sirupsen/logrus"
)

// Migrator is implemented by stores that need schema or index setup
type Migrator interface {
	Migrate(ctx context.Context) error
}

// Migrate prepares the store's schema and indexes
func Migrate(ctx context.Context, store Store) error {
	m, ok := store.(Migrator)
	if !ok {
		logrus.Info("Store needs no migration.")
		return nil
	}
	if err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}
