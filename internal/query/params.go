// Package query turns raw dashboard query parameters into typed filters and
// into the database expressions that evaluate them.
package query

import (
	"math"    // Overflow guard for the skip offset
	"net/url" // Raw query values
	"regexp"  // Month pattern
	"strconv" // Integer parsing
	"strings" // Trimming
)

// Messages returned to callers on validation failures. Consumers match on them.
const (
	MsgMonthRequired  = "Month parameter is required"
	MsgInvalidMonth   = "Invalid month parameter. It must be between 1 and 12."
	MsgInvalidPage    = "Page must be a positive integer."
	MsgInvalidPerPage = "Per Page must be a positive integer."
)

// Listing defaults
const (
	DefaultPage    = 1  // First page
	DefaultPerPage = 10 // Records per page when perPage is absent
)

var monthPattern = regexp.MustCompile(`^(0?[1-9]|1[0-2])$`) // 1-12, leading zero allowed

// ValidationError reports a rejected query parameter
type ValidationError struct {
	Message string // Client-facing message
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// ListParams is the validated input of the listing endpoint
type ListParams struct {
	Filter  Filter // Month and search filter
	Page    int    // 1-based page number
	PerPage int    // Page size
}

// Skip returns the number of records before the requested page
func (p ListParams) Skip() int64 {
	if int64(p.Page-1) > math.MaxInt64/int64(p.PerPage) {
		return math.MaxInt64
	}
	return int64(p.Page-1) * int64(p.PerPage)
}

// Limit returns the page size as the drivers expect it
func (p ListParams) Limit() int64 {
	return int64(p.PerPage)
}

// ParseListParams validates month, search, page and perPage for the listing endpoint.
// An absent or empty month means no month filter.
func ParseListParams(q url.Values) (ListParams, error) {
	params := ListParams{Page: DefaultPage, PerPage: DefaultPerPage}

	if raw := q.Get("month"); raw != "" {
		month, err := parseMonthValue(raw)
		if err != nil {
			return ListParams{}, err
		}
		params.Filter.Month = month
	}

	if values, ok := q["page"]; ok && len(values) > 0 {
		page, err := parsePositive(values[0])
		if err != nil {
			return ListParams{}, invalid(MsgInvalidPage)
		}
		params.Page = page
	}

	if values, ok := q["perPage"]; ok && len(values) > 0 {
		perPage, err := parsePositive(values[0])
		if err != nil {
			return ListParams{}, invalid(MsgInvalidPerPage)
		}
		params.PerPage = perPage
	}

	params.Filter.Search = strings.TrimSpace(q.Get("search"))
	return params, nil
}

// ParseMonth validates the month of the month-scoped endpoints, where it is required
func ParseMonth(q url.Values) (int, error) {
	raw := q.Get("month")
	if raw == "" {
		return 0, invalid(MsgMonthRequired)
	}
	return parseMonthValue(raw)
}

func parseMonthValue(raw string) (int, error) {
	if !monthPattern.MatchString(raw) {
		return 0, invalid(MsgInvalidMonth)
	}
	month, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalid(MsgInvalidMonth)
	}
	return month, nil
}

func parsePositive(raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if v < 1 {
		return 0, strconv.ErrRange
	}
	return v, nil
}
