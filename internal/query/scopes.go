package query

import (
	"strconv" // Band case expression
	"strings" // LIKE escaping

	"gorm.io/gorm" // GORM ORM library
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a lower-cased "contains" pattern with LIKE wildcards escaped
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// MonthScope restricts a query to sales in the given calendar month
func MonthScope(month int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("MONTH(date_of_sale) = ?", month)
	}
}

// FilterScope applies a Filter to a gorm query, the SQL counterpart of MatchDocument
func FilterScope(f Filter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.HasMonth() {
			db = MonthScope(f.Month)(db)
		}
		if !f.HasSearch() {
			return db
		}
		pattern := likePattern(f.Search)
		if price, ok := f.SearchPrice(); ok {
			return db.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR price = ?)", pattern, pattern, price)
		}
		return db.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}
}

// StatisticsColumns selects the monthly sale totals; COALESCE keeps an empty month at zero
const StatisticsColumns = "COALESCE(SUM(price), 0) AS total_sale_amount, " +
	"COALESCE(SUM(CASE WHEN sold THEN 1 ELSE 0 END), 0) AS sold_items, " +
	"COALESCE(SUM(CASE WHEN sold THEN 0 ELSE 1 END), 0) AS not_sold_items"

// CategoryColumns selects the per-category record count
const CategoryColumns = "category, COUNT(*) AS count"

// PriceBandColumns selects the band index of each price (see BandIndex) and the record count
func PriceBandColumns() string {
	var b strings.Builder
	b.WriteString("CASE")
	for i := 1; i < len(PriceBoundaries); i++ {
		b.WriteString(" WHEN price >= " + formatBound(PriceBoundaries[i-1]) +
			" AND price < " + formatBound(PriceBoundaries[i]) +
			" THEN " + strconv.Itoa(i-1))
	}
	b.WriteString(" ELSE " + strconv.Itoa(CatchAllBand) + " END AS band, COUNT(*) AS count")
	return b.String()
}
