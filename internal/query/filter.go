package query

import (
	"math"    // Finite check for numeric searches
	"regexp"  // Escaping search text
	"strconv" // Numeric searches
	"strings" // Case-insensitive matching
	"time"    // Month extraction
	"transaction_dashboard/internal/domain"
)

// Filter selects transactions by sale month and search text.
// The zero value matches everything.
type Filter struct {
	Month  int    // 1-12, 0 for any month
	Search string // Matched against title, description and price
}

// HasMonth reports whether the filter is scoped to a month
func (f Filter) HasMonth() bool {
	return f.Month != 0
}

// HasSearch reports whether the filter carries search text
func (f Filter) HasSearch() bool {
	return f.Search != ""
}

// SearchPattern returns the search text escaped for use as a literal regular expression
func (f Filter) SearchPattern() string {
	return regexp.QuoteMeta(f.Search)
}

// SearchPrice returns the search text as a price when it is a finite number
func (f Filter) SearchPrice() (float64, bool) {
	if f.Search == "" {
		return 0, false
	}
	price, err := strconv.ParseFloat(f.Search, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, false
	}
	return price, true
}

// Matches evaluates the filter against a single transaction
func (f Filter) Matches(tx domain.Transaction) bool {
	if f.HasMonth() && MonthOf(tx.DateOfSale) != f.Month {
		return false
	}
	if !f.HasSearch() {
		return true
	}
	needle := strings.ToLower(f.Search)
	if strings.Contains(strings.ToLower(tx.Title), needle) || strings.Contains(strings.ToLower(tx.Description), needle) {
		return true
	}
	price, ok := f.SearchPrice()
	return ok && tx.Price == price
}

// MonthOf returns the calendar month of t in UTC, matching the databases' month extraction
func MonthOf(t time.Time) int {
	return int(t.UTC().Month())
}

// TotalPages returns ceil(total/perPage); zero records give zero pages
func TotalPages(total int64, perPage int) int {
	if perPage < 1 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
