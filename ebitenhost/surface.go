package ebitenhost

import (
	"math"

	"github.com/phanxgames/chartsense"
)

// MarkSelector is the selector under which Surface exposes its marks.
const MarkSelector = "mark"

// Mark is one drawn data point. It carries the Target it represents so the
// exact search mode and HighlightBehavior can identify it.
type Mark struct {
	Target chartsense.Target
	// X and Y are the mark center in window coordinates.
	X, Y   float64
	Radius float64
	Color  string
	State  chartsense.HighlightState
}

// Data implements chartsense.Element.
func (m *Mark) Data() any { return m.Target }

// SetHighlight implements chartsense.Element.
func (m *Mark) SetHighlight(h chartsense.HighlightState) { m.State = h }

// Surface is the window-sized region a chart is mounted on.
type Surface struct {
	bounds chartsense.Rect
	marks  []*Mark
}

// NewSurface returns a surface covering bounds.
func NewSurface(bounds chartsense.Rect) *Surface {
	return &Surface{bounds: bounds}
}

// Bounds implements chartsense.Surface.
func (s *Surface) Bounds() chartsense.Rect { return s.bounds }

// SetBounds moves or resizes the surface.
func (s *Surface) SetBounds(r chartsense.Rect) { s.bounds = r }

// Query implements chartsense.Surface. The empty selector and MarkSelector
// both return every mark.
func (s *Surface) Query(selector string) []chartsense.Element {
	if selector != "" && selector != MarkSelector {
		return nil
	}
	out := make([]chartsense.Element, len(s.marks))
	for i, m := range s.marks {
		out[i] = m
	}
	return out
}

// Marks returns the current marks.
func (s *Surface) Marks() []*Mark { return s.marks }

// SetMarks replaces the marks.
func (s *Surface) SetMarks(marks []*Mark) { s.marks = marks }

// HitTest returns the topmost mark containing (x, y), or nil.
func (s *Surface) HitTest(x, y float64) *Mark {
	for i := len(s.marks) - 1; i >= 0; i-- {
		m := s.marks[i]
		if math.Hypot(m.X-x, m.Y-y) <= m.Radius {
			return m
		}
	}
	return nil
}

// BuildMarks projects every record of every processed series through the
// current scales into window coordinates. Records that cannot be placed are
// skipped. It returns nil when the chart has no scales.
func BuildMarks(st *chartsense.State, radius float64) []*Mark {
	if st == nil || st.Scales == nil {
		return nil
	}
	xs, ys := st.Scales.X, st.Scales.Y
	var off float64
	if c, ok := xs.(chartsense.Categorical); ok {
		off = c.Bandwidth() / 2
	}
	m := st.Dimensions.Margins

	var out []*Mark
	for _, s := range st.ProcessedSeries {
		for i, rec := range s.Data {
			xv, okX := s.X.Value(rec)
			yv, okY := s.Y.Value(rec)
			if !okX || !okY {
				continue
			}
			px, py := xs.Map(xv)+off, ys.Map(yv)
			if math.IsNaN(px) || math.IsNaN(py) {
				continue
			}
			out = append(out, &Mark{
				Target: chartsense.Target{
					SeriesID:       s.ID,
					SeriesColor:    s.Color,
					Record:         rec,
					Index:          i,
					X:              px,
					Y:              py,
					SuppressMarker: s.SuppressMarker,
				},
				X:      px + m.Left,
				Y:      py + m.Top,
				Radius: radius,
				Color:  s.Color,
			})
		}
	}
	return out
}

// carryHighlights copies highlight states from old marks to the marks that
// replace them, matched by target key. While any old mark was highlighted,
// marks with no predecessor start dimmed.
func carryHighlights(old, marks []*Mark) {
	if len(old) == 0 {
		return
	}
	states := make(map[string]chartsense.HighlightState, len(old))
	active := false
	for _, m := range old {
		states[chartsense.TargetKey(m.Target)] = m.State
		active = active || m.State == chartsense.HighlightHighlighted
	}
	for _, m := range marks {
		if st, ok := states[chartsense.TargetKey(m.Target)]; ok {
			m.State = st
		} else if active {
			m.State = chartsense.HighlightDimmed
		}
	}
}
