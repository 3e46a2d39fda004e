package dataprocessing

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// sanitizeColumn masks values outside [min, max] and infinities, fills every absent value
// with the median of the remaining ones and rounds to two decimals. A column
// with no value left keeps all rows absent.
func sanitizeColumn(col *Column, min, max float64) {
	if col.Kind != KindNumeric {
		return
	}

	present := make([]float64, 0, len(col.Numbers))
	for i, n := range col.Numbers {
		if !n.Valid {
			continue
		}
		if n.Float64 < min || n.Float64 > max || math.IsInf(n.Float64, 0) {
			col.Numbers[i] = NullFloat{}
			continue
		}
		present = append(present, n.Float64)
	}

	if len(present) == 0 {
		return
	}

	fill := median(present)
	for i, n := range col.Numbers {
		v := fill
		if n.Valid {
			v = n.Float64
		}
		col.Numbers[i] = NullFloat{Float64: round2(v), Valid: true}
	}
}

// median sorts values in place and returns the middle value, or the mean of
// the two middle values for an even count.
func median(values []float64) float64 {
	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 1 {
		return values[mid]
	}
	return (values[mid-1] + values[mid]) / 2
}

// round2 rounds half to even on the shortest decimal form of v.
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).RoundBank(2).Float64()
	return f
}
