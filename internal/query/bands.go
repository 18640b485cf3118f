package query

import (
	"strconv" // Label formatting
	"transaction_dashboard/internal/domain"
)

// PriceBoundaries are the histogram band edges. Band i covers [PriceBoundaries[i], PriceBoundaries[i+1]).
var PriceBoundaries = []float64{0, 100, 200, 300, 400, 500, 600, 700, 800, 900, 1000}

// CatchAllLabel names the band for every price outside the bounded bands
const CatchAllLabel = "901+"

// BandCount is the number of histogram entries, catch-all included
var BandCount = len(PriceBoundaries)

// CatchAllBand is the index of the catch-all band
var CatchAllBand = BandCount - 1

// BandLabels returns the labels of all bands in order
func BandLabels() []string {
	labels := make([]string, 0, BandCount)
	for i := 1; i < len(PriceBoundaries); i++ {
		labels = append(labels, formatBound(PriceBoundaries[i-1])+" - "+formatBound(PriceBoundaries[i]))
	}
	return append(labels, CatchAllLabel)
}

// BandIndex returns the band a price falls into
func BandIndex(price float64) int {
	for i := 1; i < len(PriceBoundaries); i++ {
		if price >= PriceBoundaries[i-1] && price < PriceBoundaries[i] {
			return i - 1
		}
	}
	return CatchAllBand
}

// BucketBand maps the _id of a $bucket result (a lower boundary or the default label) to a band
func BucketBand(id any) (int, bool) {
	var lower float64
	switch v := id.(type) {
	case string:
		if v == CatchAllLabel {
			return CatchAllBand, true
		}
		return 0, false
	case float64:
		lower = v
	case int32:
		lower = float64(v)
	case int64:
		lower = float64(v)
	case int:
		lower = float64(v)
	default:
		return 0, false
	}
	for i := 0; i < len(PriceBoundaries)-1; i++ {
		if PriceBoundaries[i] == lower {
			return i, true
		}
	}
	return 0, false
}

// FillBands expands sparse per-band counts into the full ordered histogram, zeros included
func FillBands(counts map[int]int64) []domain.PriceRangeCount {
	labels := BandLabels()
	out := make([]domain.PriceRangeCount, len(labels))
	for i, label := range labels {
		out[i] = domain.PriceRangeCount{PriceRange: label, Count: counts[i]}
	}
	return out
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
