package chartsense

import (
	"math"
	"sort"
)

// StrategyKind tags the closed set of strategy variants.
type StrategyKind uint8

const (
	StrategyLinear StrategyKind = iota
	StrategyBinaryX
	StrategyQuadtree
)

// String returns the variant name.
func (k StrategyKind) String() string {
	switch k {
	case StrategyLinear:
		return "linear"
	case StrategyBinaryX:
		return "binary-x"
	case StrategyQuadtree:
		return "quadtree"
	default:
		return "unknown"
	}
}

// Strategy answers "what is the nearest point of this series to pixel
// (px, py) within radius?". Implementations return nil for no match and never
// panic on missing scales or empty data.
type Strategy interface {
	Kind() StrategyKind
	Find(px, py, radius float64, xs, ys Scale) *Target
}

// minSpatialPoints is the dataset size below which the linear scan is used
// regardless of chart type.
const minSpatialPoints = 50

// selectStrategy picks a strategy for a hydrated series.
func selectStrategy(s *Series) Strategy {
	n := len(s.Data)
	switch {
	case n == 0, n < minSpatialPoints:
		return NewLinearStrategy(s)
	case s.Type.twoDimensional() || s.InteractionMode == ModeXY:
		return NewQuadtreeStrategy(s)
	case s.Type == "" || s.Type == ChartLine || s.Type == ChartArea:
		return NewBinaryXStrategy(s)
	default:
		return NewLinearStrategy(s)
	}
}

// pixelX returns the x pixel of record i, centered in its band for band
// scales. NaN means the record cannot be placed.
func pixelX(s *Series, i int, xs Scale) float64 {
	v, ok := s.X.Value(s.Data[i])
	if !ok {
		return math.NaN()
	}
	return xs.Map(v) + bandOffset(xs)
}

func pixelY(s *Series, i int, ys Scale) float64 {
	v, ok := s.Y.Value(s.Data[i])
	if !ok {
		return math.NaN()
	}
	return ys.Map(v)
}

func (s *Series) target(i int, x, y, dist float64) *Target {
	return &Target{
		SeriesID:       s.ID,
		SeriesColor:    s.Color,
		Record:         s.Data[i],
		Index:          i,
		X:              x,
		Y:              y,
		Distance:       dist,
		SuppressMarker: s.SuppressMarker,
	}
}

// LinearStrategy scans every point. In x mode it delegates to the
// nearest-by-x helper and validates the x distance; in xy mode it finds the
// Euclidean nearest point and validates that distance.
type LinearStrategy struct {
	series *Series
}

// NewLinearStrategy returns a linear scan over s.
func NewLinearStrategy(s *Series) *LinearStrategy {
	return &LinearStrategy{series: s}
}

// Kind implements Strategy.
func (l *LinearStrategy) Kind() StrategyKind { return StrategyLinear }

// Find implements Strategy.
func (l *LinearStrategy) Find(px, py, radius float64, xs, ys Scale) *Target {
	s := l.series
	if s == nil || len(s.Data) == 0 || xs == nil || ys == nil {
		return nil
	}
	if s.InteractionMode == ModeXY {
		return l.findXY(px, py, radius, xs, ys)
	}
	i := NearestIndexByX(s.Data, s.X, xs, px)
	if i < 0 {
		return nil
	}
	tx := pixelX(s, i, xs)
	d := math.Abs(tx - px)
	if math.IsNaN(d) || d > radius {
		return nil
	}
	return s.target(i, tx, pixelY(s, i, ys), d)
}

func (l *LinearStrategy) findXY(px, py, radius float64, xs, ys Scale) *Target {
	s := l.series
	best, bestD := -1, math.Inf(1)
	var bx, by float64
	for i := range s.Data {
		x, y := pixelX(s, i, xs), pixelY(s, i, ys)
		d := math.Hypot(x-px, y-py)
		if d < bestD {
			best, bestD, bx, by = i, d, x, y
		}
	}
	if best < 0 || bestD > radius {
		return nil
	}
	return s.target(best, bx, by, bestD)
}

// BinaryXStrategy bisects x values precomputed at construction. The series
// data must be sorted ascending by x.
type BinaryXStrategy struct {
	series *Series
	values []float64 // ascending x domain values
	index  []int     // values[k] belongs to series.Data[index[k]]
}

// NewBinaryXStrategy precomputes the bisector over s's x values. Records
// without a numeric x are left out.
func NewBinaryXStrategy(s *Series) *BinaryXStrategy {
	b := &BinaryXStrategy{series: s}
	for i, rec := range s.Data {
		f, ok := s.X.Number(rec)
		if !ok {
			continue
		}
		b.values = append(b.values, f)
		b.index = append(b.index, i)
	}
	return b
}

// Kind implements Strategy.
func (b *BinaryXStrategy) Kind() StrategyKind { return StrategyBinaryX }

// Find implements Strategy. Non-invertible x scales fall back to the
// nearest-by-x helper.
func (b *BinaryXStrategy) Find(px, py, radius float64, xs, ys Scale) *Target {
	s := b.series
	if s == nil || len(s.Data) == 0 || xs == nil || ys == nil {
		return nil
	}

	i := -1
	if inv, ok := xs.(Invertible); ok && len(b.values) > 0 {
		v := inv.Invert(px)
		k := sort.SearchFloat64s(b.values, v)
		i = b.closer(k-1, k, px, xs)
	} else {
		i = NearestIndexByX(s.Data, s.X, xs, px)
	}
	if i < 0 {
		return nil
	}

	tx := pixelX(s, i, xs)
	d := math.Abs(tx - px)
	if math.IsNaN(d) || d > radius {
		return nil
	}
	return s.target(i, tx, pixelY(s, i, ys), d)
}

// closer returns the data index of whichever neighbor (by bisector position)
// is nearer to px in pixel space. Out-of-range positions clamp.
func (b *BinaryXStrategy) closer(lo, hi int, px float64, xs Scale) int {
	n := len(b.values)
	lo = min(max(lo, 0), n-1)
	hi = min(max(hi, 0), n-1)
	dl := math.Abs(xs.Map(b.values[lo]) + bandOffset(xs) - px)
	dh := math.Abs(xs.Map(b.values[hi]) + bandOffset(xs) - px)
	if dh < dl {
		return b.index[hi]
	}
	return b.index[lo]
}
