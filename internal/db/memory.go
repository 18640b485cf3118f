package db

import (
	"context" // Store interface
	"sort"    // Category ordering
	"sync"    // Guards the slice against a concurrent seed
	"transaction_dashboard/internal/domain"
	"transaction_dashboard/internal/query"
)

// MemoryStore keeps transactions in insertion order in process memory
type MemoryStore struct {
	mu  sync.RWMutex
	txs []domain.Transaction
}

// NewMemoryStore creates a store holding a copy of txs
func NewMemoryStore(txs ...domain.Transaction) *MemoryStore {
	return &MemoryStore{txs: append([]domain.Transaction(nil), txs...)}
}

func (s *MemoryStore) matching(f query.Filter) []domain.Transaction {
	var out []domain.Transaction
	for _, tx := range s.txs {
		if f.Matches(tx) {
			out = append(out, tx)
		}
	}
	return out
}

func (s *MemoryStore) Find(ctx context.Context, f query.Filter, skip, limit int64) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := s.matching(f)
	if skip >= int64(len(matched)) {
		return []domain.Transaction{}, nil
	}
	end := int64(len(matched))
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}
	return append([]domain.Transaction{}, matched[skip:end]...), nil
}

func (s *MemoryStore) Count(ctx context.Context, f query.Filter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.matching(f))), nil
}

func (s *MemoryStore) Statistics(ctx context.Context, month int) (domain.Statistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var stats domain.Statistics
	for _, tx := range s.matching(query.Filter{Month: month}) {
		stats.TotalSaleAmount += tx.Price
		if tx.Sold {
			stats.SoldItems++
		} else {
			stats.NotSoldItems++
		}
	}
	return stats, nil
}

func (s *MemoryStore) PriceBands(ctx context.Context, month int) (map[int]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[int]int64)
	for _, tx := range s.matching(query.Filter{Month: month}) {
		counts[query.BandIndex(tx.Price)]++
	}
	return counts, nil
}

func (s *MemoryStore) CategoryCounts(ctx context.Context, month int) ([]domain.CategoryCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int64)
	for _, tx := range s.matching(query.Filter{Month: month}) {
		counts[tx.Category]++
	}
	out := make([]domain.CategoryCount, 0, len(counts))
	for category, count := range counts {
		out = append(out, domain.CategoryCount{Category: category, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (s *MemoryStore) ReplaceAll(ctx context.Context, txs []domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = append([]domain.Transaction(nil), txs...)
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}
