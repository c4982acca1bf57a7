package chartsense

import (
	"math"
	"sort"
)

// NearestIndexByX returns the index of the record in data whose x pixel is
// closest to px, or -1 when no record can be placed on xs.
//
// Continuous scales invert px and bisect when the x values are ascending.
// Categorical scales (and unsorted data) scan band or step centers. Pixels
// outside the domain resolve to the nearest boundary record.
func NearestIndexByX(data []any, x Accessor, xs Scale, px float64) int {
	if len(data) == 0 || xs == nil || !x.Valid() {
		return -1
	}
	if inv, ok := xs.(Invertible); ok {
		if i, ok := bisectNearest(data, x, inv, px); ok {
			return i
		}
	}
	return scanNearest(data, x, xs, px)
}

// bisectNearest reports ok=false when the x values are not all numeric and
// ascending, leaving the caller to scan.
func bisectNearest(data []any, x Accessor, xs Invertible, px float64) (int, bool) {
	values := make([]float64, len(data))
	for i, rec := range data {
		f, ok := x.Number(rec)
		if !ok || (i > 0 && f < values[i-1]) {
			return -1, false
		}
		values[i] = f
	}

	v := xs.Invert(px)
	k := sort.SearchFloat64s(values, v)
	lo := min(max(k-1, 0), len(values)-1)
	hi := min(k, len(values)-1)
	dl := math.Abs(xs.Map(values[lo]) - px)
	dh := math.Abs(xs.Map(values[hi]) - px)
	if dh < dl {
		return hi, true
	}
	return lo, true
}

func scanNearest(data []any, x Accessor, xs Scale, px float64) int {
	off := bandOffset(xs)
	best, bestD := -1, math.Inf(1)
	for i, rec := range data {
		v, ok := x.Value(rec)
		if !ok {
			continue
		}
		d := math.Abs(xs.Map(v) + off - px)
		if d < bestD {
			best, bestD = i, d
		}
	}
	return best
}
