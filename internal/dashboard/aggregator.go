// Package dashboard computes the dashboard payloads. Every method returns
// plain data; writing responses is left to the HTTP layer.
package dashboard

import (
	"context"                               // Request-scoped store calls
	"fmt"                                   // Error wrapping
	"transaction_dashboard/internal/db"     // Store interface
	"transaction_dashboard/internal/domain" // Payload types
	"transaction_dashboard/internal/query"  // Validated parameters

	"golang.org/x/sync/errgroup" // Parallel sub-aggregations
)

// Aggregator answers the dashboard queries from a Store
type Aggregator struct {
	store db.Store
}

// NewAggregator creates an Aggregator over store
func NewAggregator(store db.Store) *Aggregator {
	return &Aggregator{store: store}
}

// List returns one page of transactions matching p.Filter with pagination metadata
func (a *Aggregator) List(ctx context.Context, p query.ListParams) (domain.TransactionPage, error) {
	total, err := a.store.Count(ctx, p.Filter)
	if err != nil {
		return domain.TransactionPage{}, err
	}
	txs := []domain.Transaction{}
	if p.Skip() < total {
		found, err := a.store.Find(ctx, p.Filter, p.Skip(), p.Limit())
		if err != nil {
			return domain.TransactionPage{}, err
		}
		txs = append(txs, found...)
	}
	return domain.TransactionPage{
		Data: txs,
		Pagination: domain.Pagination{
			CurrentPage:  p.Page,
			PerPage:      p.PerPage,
			TotalPages:   query.TotalPages(total, p.PerPage),
			TotalRecords: total,
		},
	}, nil
}

// Statistics returns the sale totals of a month
func (a *Aggregator) Statistics(ctx context.Context, month int) (domain.Statistics, error) {
	return a.store.Statistics(ctx, month)
}

// BarChart returns all histogram bands of a month in order, empty bands included
func (a *Aggregator) BarChart(ctx context.Context, month int) ([]domain.PriceRangeCount, error) {
	counts, err := a.store.PriceBands(ctx, month)
	if err != nil {
		return nil, err
	}
	return query.FillBands(counts), nil
}

// PieChart returns the record count of each category sold in a month
func (a *Aggregator) PieChart(ctx context.Context, month int) ([]domain.CategoryCount, error) {
	counts, err := a.store.CategoryCounts(ctx, month)
	if err != nil {
		return nil, err
	}
	if counts == nil {
		counts = []domain.CategoryCount{}
	}
	return counts, nil
}

// Combined runs the three monthly aggregations concurrently. The first failure cancels the others.
func (a *Aggregator) Combined(ctx context.Context, month int) (domain.Dashboard, error) {
	var out domain.Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if out.Statistics, err = a.Statistics(gctx, month); err != nil {
			return fmt.Errorf("statistics: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if out.BarChart, err = a.BarChart(gctx, month); err != nil {
			return fmt.Errorf("bar chart: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if out.PieChart, err = a.PieChart(gctx, month); err != nil {
			return fmt.Errorf("pie chart: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.Dashboard{}, err
	}
	return out, nil
}
