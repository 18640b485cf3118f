// Package db holds the transaction stores behind the dashboard: MongoDB,
// MySQL through GORM, and an in-process store.
package db

import (
	"context" // Request-scoped cancellation
	"transaction_dashboard/internal/domain"
	"transaction_dashboard/internal/query"
)

// Store is the read model of the dashboard plus the bulk replace used by the seed
type Store interface {
	// Find returns up to limit matching transactions after skip, in insertion order
	Find(ctx context.Context, f query.Filter, skip, limit int64) ([]domain.Transaction, error)
	// Count returns the number of matching transactions
	Count(ctx context.Context, f query.Filter) (int64, error)
	// Statistics returns the sale totals of a month, zeros when nothing matches
	Statistics(ctx context.Context, month int) (domain.Statistics, error)
	// PriceBands returns the record count per histogram band (see query.BandIndex); absent bands are zero
	PriceBands(ctx context.Context, month int) (map[int]int64, error)
	// CategoryCounts returns the record count per category present in a month, sorted by category
	CategoryCounts(ctx context.Context, month int) ([]domain.CategoryCount, error)
	// ReplaceAll deletes every transaction and inserts txs
	ReplaceAll(ctx context.Context, txs []domain.Transaction) error
	// Ping checks the backend is reachable
	Ping(ctx context.Context) error
}
