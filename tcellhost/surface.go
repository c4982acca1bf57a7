package tcellhost

import (
	"math"

	"github.com/phanxgames/chartsense"
)

// CellSelector is the selector under which Surface exposes its cells.
const CellSelector = "cell"

// Cell is one data point drawn as a single terminal cell.
type Cell struct {
	Target   chartsense.Target
	Col, Row int
	Color    string
	State    chartsense.HighlightState
}

// Data implements chartsense.Element.
func (c *Cell) Data() any { return c.Target }

// SetHighlight implements chartsense.Element.
func (c *Cell) SetHighlight(h chartsense.HighlightState) { c.State = h }

// Surface is the terminal screen as seen by a chart. One chart unit is one
// cell.
type Surface struct {
	width, height int
	cells         []*Cell
}

// Bounds implements chartsense.Surface.
func (s *Surface) Bounds() chartsense.Rect {
	return chartsense.Rect{Width: float64(s.width), Height: float64(s.height)}
}

// Query implements chartsense.Surface.
func (s *Surface) Query(selector string) []chartsense.Element {
	if selector != "" && selector != CellSelector {
		return nil
	}
	out := make([]chartsense.Element, len(s.cells))
	for i, c := range s.cells {
		out[i] = c
	}
	return out
}

// Cells returns the current cells.
func (s *Surface) Cells() []*Cell { return s.cells }

// At returns the last cell drawn at (col, row), or nil.
func (s *Surface) At(col, row int) *Cell {
	for i := len(s.cells) - 1; i >= 0; i-- {
		if c := s.cells[i]; c.Col == col && c.Row == row {
			return c
		}
	}
	return nil
}

// BuildCells rounds every placeable record to its screen cell.
func BuildCells(st *chartsense.State) []*Cell {
	if st == nil || st.Scales == nil {
		return nil
	}
	xs, ys := st.Scales.X, st.Scales.Y
	var off float64
	if c, ok := xs.(chartsense.Categorical); ok {
		off = c.Bandwidth() / 2
	}
	m := st.Dimensions.Margins

	var out []*Cell
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
			out = append(out, &Cell{
				Target: chartsense.Target{
					SeriesID:       s.ID,
					SeriesColor:    s.Color,
					Record:         rec,
					Index:          i,
					X:              px,
					Y:              py,
					SuppressMarker: s.SuppressMarker,
				},
				Col:   int(math.Round(px + m.Left)),
				Row:   int(math.Round(py + m.Top)),
				Color: s.Color,
			})
		}
	}
	return out
}

// carryHighlights keeps the highlight of every cell whose target survives a
// rebuild. New cells start dimmed while another cell is highlighted.
func carryHighlights(old, cells []*Cell) {
	states := make(map[string]chartsense.HighlightState, len(old))
	active := false
	for _, c := range old {
		states[chartsense.TargetKey(c.Target)] = c.State
		active = active || c.State == chartsense.HighlightHighlighted
	}
	for _, c := range cells {
		if st, ok := states[chartsense.TargetKey(c.Target)]; ok {
			c.State = st
		} else if active {
			c.State = chartsense.HighlightDimmed
		}
	}
}
