package chartsense

import "fmt"

// TooltipAlign is the preferred horizontal side of the panel relative to the
// anchor.
type TooltipAlign uint8

const (
	AlignRight  TooltipAlign = iota // panel starts gap pixels right of the anchor
	AlignLeft                       // panel ends gap pixels left of the anchor
	AlignCenter                     // panel is centered on the anchor
)

// TooltipPlacement is the input to Reposition. All coordinates share the
// container's coordinate space.
type TooltipPlacement struct {
	Anchor Vec2
	Touch  bool
	// Gap separates the panel from the anchor on both axes.
	Gap   float64
	Align TooltipAlign
	// TouchOffset lifts the panel above a touch point so the finger does not
	// cover it.
	TouchOffset float64
	// Panel is the measured panel size.
	Panel     Vec2
	Container Rect
}

// Reposition returns the top-left corner of the floating panel. The panel is
// placed on the preferred side and flipped to the opposite side on the axis
// where it would overflow; a panel still overflowing after the flip (or
// larger than the container) is clamped to the container's top-left edges.
// The function is pure.
func Reposition(p TooltipPlacement) Vec2 {
	w, h := max(p.Panel.X, 0), max(p.Panel.Y, 0)
	c := p.Container
	ax, ay := p.Anchor.X, p.Anchor.Y

	var x float64
	switch p.Align {
	case AlignLeft:
		x = ax - p.Gap - w
		if x < c.X {
			x = ax + p.Gap
		}
	case AlignCenter:
		x = ax - w/2
	default:
		x = ax + p.Gap
		if x+w > c.Right() {
			x = ax - p.Gap - w
		}
	}

	var y float64
	if p.Touch {
		y = ay - p.TouchOffset - h
		if y < c.Y {
			y = ay + p.TouchOffset
		}
	} else {
		y = ay + p.Gap
		if y+h > c.Bottom() {
			y = ay - p.Gap - h
		}
	}

	return Vec2{X: clampSpan(x, c.X, c.Right()-w), Y: clampSpan(y, c.Y, c.Bottom()-h)}
}

// clampSpan clamps v to [lo, hi], preferring lo when the span is empty.
func clampSpan(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// TooltipLines describes t for a tooltip: the series label followed by the
// record's x and y values. Unknown series fall back to the series id.
func TooltipLines(st *State, t Target) []string {
	label := t.SeriesID
	x, y := Accessor{}, Accessor{}
	if st != nil {
		for _, s := range st.ProcessedSeries {
			if s.ID == t.SeriesID {
				label, x, y = s.Label, s.X, s.Y
				break
			}
		}
	}
	lines := []string{label}
	if v, ok := x.Value(t.Record); ok {
		lines = append(lines, fmt.Sprintf("%s: %v", accessorName(x, "x"), v))
	}
	if v, ok := y.Value(t.Record); ok {
		lines = append(lines, fmt.Sprintf("%s: %v", accessorName(y, "y"), v))
	}
	return lines
}

func accessorName(a Accessor, fallback string) string {
	if a.Key != "" {
		return a.Key
	}
	return fallback
}
