// Package seed replaces the transaction collection with the external dataset.
package seed

import (
	"context"                           // Request cancellation
	"fmt"                               // Error wrapping
	"transaction_dashboard/internal/db" // Store interface

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Seeder fetches the dataset and swaps it into the store
type Seeder struct {
	source Source
	store  db.Store
	locker Locker
}

// NewSeeder creates a Seeder. A nil locker falls back to an in-process lock.
func NewSeeder(source Source, store db.Store, locker Locker) *Seeder {
	if locker == nil {
		locker = &LocalLocker{}
	}
	return &Seeder{source: source, store: store, locker: locker}
}

// Run replaces the collection and returns the number of inserted records.
// The store is untouched unless the whole dataset was fetched first.
func (s *Seeder) Run(ctx context.Context) (int, error) {
	release, err := s.locker.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		// Release with a fresh context so a cancelled request still frees the lock
		if err := release(context.WithoutCancel(ctx)); err != nil {
			logrus.WithError(err).Warn("Failed to release seed lock")
		}
	}()

	txs, err := s.source.Fetch(ctx)
	if err != nil {
		return 0, err
	}
	// The delete and insert must not be split by a client hanging up
	if err := s.store.ReplaceAll(context.WithoutCancel(ctx), txs); err != nil {
		return 0, fmt.Errorf("replace transactions: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"records": len(txs), // Inserted records
	}).Info("Database initialized with seed data")
	return len(txs), nil
}
