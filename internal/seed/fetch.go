package seed

import (
	"context"                               // Request cancellation
	"encoding/json"                         // Dataset decoding
	"errors"                                // Sentinel errors
	"fmt"                                   // Error wrapping
	"io"                                    // Body size limit
	"net/http"                              // Dataset download
	"time"                                  // Client timeout
	"transaction_dashboard/internal/domain" // Importing domain models
)

// ErrFetch marks a failure to download or decode the dataset
var ErrFetch = errors.New("fetch seed data")

const maxDatasetBytes = 32 << 20

// Source yields the transactions that replace the collection
type Source interface {
	Fetch(ctx context.Context) ([]domain.Transaction, error)
}

// HTTPSource downloads the dataset as a JSON array
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates a source for url with a request timeout
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{url: url, client: &http.Client{Timeout: timeout}}
}

// Fetch downloads and validates the whole dataset
func (s *HTTPSource) Fetch(ctx context.Context) ([]domain.Transaction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrFetch, resp.StatusCode)
	}
	var txs []domain.Transaction
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxDatasetBytes)).Decode(&txs); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrFetch, err)
	}
	if err := validate(txs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return txs, nil
}

// validate rejects datasets the collection must not be replaced with
func validate(txs []domain.Transaction) error {
	if len(txs) == 0 {
		return errors.New("dataset is empty")
	}
	for i, tx := range txs {
		if tx.Title == "" || tx.Category == "" {
			return fmt.Errorf("record %d: missing title or category", i)
		}
		if tx.DateOfSale.IsZero() {
			return fmt.Errorf("record %d: missing dateOfSale", i)
		}
	}
	return nil
}
