package chartsense

import "math"

// Scale maps domain values to pixels.
type Scale interface {
	// Map returns the pixel position of v, or NaN when v is outside what the
	// scale can represent.
	Map(v any) float64
	// Range returns the pixel extent [start, end].
	Range() [2]float64
}

// Invertible is implemented by continuous scales.
type Invertible interface {
	Scale
	Invert(px float64) float64
}

// Categorical is implemented by band and point scales, where inversion is not
// well defined.
type Categorical interface {
	Scale
	Bandwidth() float64
	Step() float64
	Domain() []string
}

// LinearScale is a continuous domain→range mapping.
type LinearScale struct {
	domain [2]float64
	rng    [2]float64
}

// NewLinearScale returns a linear scale from domain to rng.
func NewLinearScale(domain, rng [2]float64) *LinearScale {
	return &LinearScale{domain: domain, rng: rng}
}

// Domain returns the domain extent.
func (s *LinearScale) Domain() [2]float64 { return s.domain }

// Range returns the pixel extent.
func (s *LinearScale) Range() [2]float64 { return s.rng }

// Map converts a numeric domain value to pixels.
func (s *LinearScale) Map(v any) float64 {
	f, ok := toFloat(v)
	if !ok {
		return math.NaN()
	}
	return s.Apply(f)
}

// Apply converts a float domain value to pixels. A zero-width domain maps
// everything to the middle of the range.
func (s *LinearScale) Apply(v float64) float64 {
	span := s.domain[1] - s.domain[0]
	if span == 0 {
		return (s.rng[0] + s.rng[1]) / 2
	}
	t := (v - s.domain[0]) / span
	return s.rng[0] + t*(s.rng[1]-s.rng[0])
}

// Invert converts a pixel back to a domain value. Pixels outside the range
// extrapolate; callers clamp.
func (s *LinearScale) Invert(px float64) float64 {
	span := s.rng[1] - s.rng[0]
	if span == 0 {
		return s.domain[0]
	}
	t := (px - s.rng[0]) / span
	return s.domain[0] + t*(s.domain[1]-s.domain[0])
}

// Nice extends the domain to round values using the 1/2/5 step rule for
// roughly count ticks. It returns a new scale.
func (s *LinearScale) Nice(count int) *LinearScale {
	lo, hi := s.domain[0], s.domain[1]
	reversed := lo > hi
	if reversed {
		lo, hi = hi, lo
	}
	// Two passes: widening the domain can change the step.
	for range 2 {
		step := niceStep(hi-lo, count)
		if step == 0 || math.IsInf(step, 0) || math.IsNaN(step) {
			break
		}
		lo = math.Floor(lo/step) * step
		hi = math.Ceil(hi/step) * step
	}
	if reversed {
		lo, hi = hi, lo
	}
	return &LinearScale{domain: [2]float64{lo, hi}, rng: s.rng}
}

func niceStep(span float64, count int) float64 {
	if span <= 0 || count < 1 {
		return 0
	}
	raw := span / float64(count)
	magnitude := math.Pow(10, math.Floor(math.Log10(raw)))
	switch n := raw / magnitude; {
	case n <= 1:
		return magnitude
	case n <= 2:
		return 2 * magnitude
	case n <= 5:
		return 5 * magnitude
	default:
		return 10 * magnitude
	}
}

// BandScale is a categorical scale that divides the range into equal bands.
// A point scale is a BandScale with zero bandwidth.
type BandScale struct {
	domain    []string
	index     map[string]int
	rng       [2]float64
	start     float64
	step      float64
	bandwidth float64
}

// NewBandScale returns a band scale with the given padding (0..1) applied to
// both inner and outer gaps.
func NewBandScale(domain []string, rng [2]float64, padding float64) *BandScale {
	padding = min(max(padding, 0), 1)
	return newBandScale(domain, rng, padding, padding)
}

// NewPointScale returns a categorical scale placing each category on a point,
// with outerPadding expressed in steps.
func NewPointScale(domain []string, rng [2]float64, outerPadding float64) *BandScale {
	return newBandScale(domain, rng, 1, max(outerPadding, 0))
}

func newBandScale(domain []string, rng [2]float64, inner, outer float64) *BandScale {
	s := &BandScale{
		domain: domain,
		index:  make(map[string]int, len(domain)),
		rng:    rng,
	}
	for i, d := range domain {
		if _, dup := s.index[d]; !dup {
			s.index[d] = i
		}
	}
	n := float64(len(domain))
	r0, r1 := rng[0], rng[1]
	reverse := r1 < r0
	if reverse {
		r0, r1 = r1, r0
	}
	s.step = (r1 - r0) / max(1, n-inner+outer*2)
	s.start = r0 + (r1-r0-s.step*(n-inner))*0.5
	s.bandwidth = s.step * (1 - inner)
	if reverse {
		s.start = r1 - (s.start - r0) - s.bandwidth
		s.step = -s.step
	}
	return s
}

// Map returns the start of v's band, or NaN for unknown categories.
func (s *BandScale) Map(v any) float64 {
	i, ok := s.index[category(v)]
	if !ok {
		return math.NaN()
	}
	return s.start + s.step*float64(i)
}

// Center returns the pixel center of the band at index i.
func (s *BandScale) Center(i int) float64 {
	return s.start + s.step*float64(i) + s.bandwidth/2
}

// Range returns the pixel extent.
func (s *BandScale) Range() [2]float64 { return s.rng }

// Bandwidth returns the width of each band.
func (s *BandScale) Bandwidth() float64 { return s.bandwidth }

// Step returns the distance between band starts.
func (s *BandScale) Step() float64 { return math.Abs(s.step) }

// Domain returns the categories in order.
func (s *BandScale) Domain() []string { return s.domain }

// Scales is the result of BuildScales.
type Scales struct {
	X           Scale
	Y           Scale
	InnerWidth  float64
	InnerHeight float64
}

// ScaleInput is the input to BuildScales.
type ScaleInput struct {
	Data    []any
	Width   float64
	Height  float64
	Margins Margins
	X, Y    Accessor
	Type    ChartType
}

const (
	bandPadding   = 0.1
	yHeadroom     = 1.1
	niceTickCount = 10
)

// BuildScales derives x and y scales from data and chart geometry. It returns
// nil for empty data, a non-positive plot area, or missing accessors; it never
// panics on bad input. Every call returns fresh scale instances.
func BuildScales(in ScaleInput) *Scales {
	dims := NewDimensions(in.Width, in.Height, in.Margins)
	if len(in.Data) == 0 || !dims.Valid() || !in.X.Valid() || !in.Y.Valid() {
		return nil
	}

	xs := buildXScale(in, dims.InnerWidth)
	if xs == nil {
		return nil
	}
	ys := buildYScale(in, dims.InnerHeight)
	if ys == nil {
		return nil
	}
	return &Scales{X: xs, Y: ys, InnerWidth: dims.InnerWidth, InnerHeight: dims.InnerHeight}
}

func buildXScale(in ScaleInput, width float64) Scale {
	numeric := true
	seen := 0
	for _, rec := range in.Data {
		v, ok := in.X.Value(rec)
		if !ok {
			continue
		}
		seen++
		if !isNumeric(v) {
			numeric = false
			break
		}
	}
	if seen == 0 {
		return nil
	}

	rng := [2]float64{0, width}
	if numeric && in.Type != ChartBar {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, rec := range in.Data {
			if f, ok := in.X.Number(rec); ok {
				lo = min(lo, f)
				hi = max(hi, f)
			}
		}
		return NewLinearScale([2]float64{lo, hi}, rng)
	}

	var domain []string
	dup := make(map[string]bool)
	for _, rec := range in.Data {
		v, ok := in.X.Value(rec)
		if !ok {
			continue
		}
		c := category(v)
		if dup[c] {
			continue
		}
		dup[c] = true
		domain = append(domain, c)
	}
	if in.Type == ChartBar {
		return NewBandScale(domain, rng, bandPadding)
	}
	return NewPointScale(domain, rng, 0)
}

func buildYScale(in ScaleInput, height float64) *LinearScale {
	lo, hi := 0.0, math.Inf(-1)
	found := false
	for _, rec := range in.Data {
		f, ok := in.Y.Number(rec)
		if !ok {
			continue
		}
		found = true
		hi = max(hi, f)
		lo = min(lo, f*yHeadroom)
	}
	if !found {
		return nil
	}
	hi *= yHeadroom
	if hi <= lo {
		hi = lo + 1
	}
	return NewLinearScale([2]float64{lo, hi}, [2]float64{height, 0}).Nice(niceTickCount)
}

// bandOffset returns half the bandwidth for band scales and zero otherwise.
func bandOffset(s Scale) float64 {
	if c, ok := s.(Categorical); ok {
		return c.Bandwidth() / 2
	}
	return 0
}
