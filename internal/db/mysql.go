package db

import (
	"context"                               // Request-scoped queries
	"fmt"                                   // Error wrapping
	"time"                                  // Sale date column
	"transaction_dashboard/internal/domain" // Importing domain models
	"transaction_dashboard/internal/query"  // Filters and SQL fragments

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// transactionRow is the SQL representation of a transaction
type transactionRow struct {
	ID          uint      `gorm:"primaryKey"`              // Row key, follows insertion order
	DatasetID   int64     `gorm:"index"`                   // Identifier from the seed dataset
	Title       string    `gorm:"size:512;not null"`       // Product title
	Price       float64   `gorm:"not null"`                // Sale price
	Description string    `gorm:"type:text;not null"`      // Product description
	Category    string    `gorm:"size:191;index;not null"` // Product category
	Image       string    `gorm:"size:1024;not null"`      // Image URL
	Sold        bool      `gorm:"not null"`                // Whether the item was sold
	DateOfSale  time.Time `gorm:"index;not null"`          // Date of sale, stored in UTC
}

func (transactionRow) TableName() string {
	return "transactions"
}

func toRow(tx domain.Transaction) transactionRow {
	return transactionRow{
		DatasetID:   tx.ID,
		Title:       tx.Title,
		Price:       tx.Price,
		Description: tx.Description,
		Category:    tx.Category,
		Image:       tx.Image,
		Sold:        tx.Sold,
		DateOfSale:  tx.DateOfSale.UTC(),
	}
}

func (r transactionRow) toDomain() domain.Transaction {
	return domain.Transaction{
		ID:          r.DatasetID,
		Title:       r.Title,
		Price:       r.Price,
		Description: r.Description,
		Category:    r.Category,
		Image:       r.Image,
		Sold:        r.Sold,
		DateOfSale:  r.DateOfSale.UTC(),
	}
}

// SQLStore answers the dashboard queries from a relational table through GORM
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore wraps an open GORM handle
func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

// OpenMySQL connects to MySQL with the given Data Source Name
func OpenMySQL(dsn string) (*SQLStore, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return NewSQLStore(db), nil
}

// Close releases the connection pool
func (s *SQLStore) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *SQLStore) model(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&transactionRow{})
}

func (s *SQLStore) Find(ctx context.Context, f query.Filter, skip, limit int64) ([]domain.Transaction, error) {
	var rows []transactionRow
	// Filter, keep insertion order, then page
	if err := s.model(ctx).Scopes(query.FilterScope(f)).
		Order("id asc").
		Offset(int(skip)).
		Limit(int(limit)).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	txs := make([]domain.Transaction, len(rows))
	for i, r := range rows {
		txs[i] = r.toDomain()
	}
	return txs, nil
}

func (s *SQLStore) Count(ctx context.Context, f query.Filter) (int64, error) {
	var total int64
	if err := s.model(ctx).Scopes(query.FilterScope(f)).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return total, nil
}

func (s *SQLStore) Statistics(ctx context.Context, month int) (domain.Statistics, error) {
	var stats domain.Statistics
	if err := s.model(ctx).Scopes(query.MonthScope(month)).
		Select(query.StatisticsColumns).
		Scan(&stats).Error; err != nil {
		return domain.Statistics{}, fmt.Errorf("aggregate statistics: %w", err)
	}
	return stats, nil
}

func (s *SQLStore) PriceBands(ctx context.Context, month int) (map[int]int64, error) {
	var rows []struct {
		Band  int   // Band index
		Count int64 // Records in the band
	}
	if err := s.model(ctx).Scopes(query.MonthScope(month)).
		Select(query.PriceBandColumns()).
		Group("band").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("aggregate price bands: %w", err)
	}
	counts := make(map[int]int64, len(rows))
	for _, row := range rows {
		counts[row.Band] = row.Count
	}
	return counts, nil
}

func (s *SQLStore) CategoryCounts(ctx context.Context, month int) ([]domain.CategoryCount, error) {
	var rows []domain.CategoryCount
	if err := s.model(ctx).Scopes(query.MonthScope(month)).
		Select(query.CategoryColumns).
		Group("category").
		Order("category asc").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("aggregate categories: %w", err)
	}
	return rows, nil
}

// ReplaceAll swaps the table contents atomically
func (s *SQLStore) ReplaceAll(ctx context.Context, txs []domain.Transaction) error {
	rows := make([]transactionRow, len(txs))
	for i, tx := range txs {
		rows[i] = toRow(tx)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Delete every row
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&transactionRow{}).Error; err != nil {
			return fmt.Errorf("delete transactions: %w", err) // Return error to rollback
		}
		if len(rows) == 0 {
			return nil // Commit the empty table
		}
		if err := tx.CreateInBatches(rows, 200).Error; err != nil {
			return fmt.Errorf("insert transactions: %w", err) // Return error to rollback
		}
		return nil // Commit transaction
	})
}

func (s *SQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Migrate creates or updates the transactions table
func (s *SQLStore) Migrate(ctx context.Context) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	return s.db.WithContext(ctx).AutoMigrate(&transactionRow{})
}
