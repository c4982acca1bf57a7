package tcellhost

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/phanxgames/chartsense"
)

const (
	markRune   = '●'
	cursorRune = '┊'
	background = "#000000"
)

var (
	axisStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	tooltipStyle = tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)
)

func rgb(hex string) tcell.Color {
	c := chartsense.ParseColor(hex)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func cellStyle(c *Cell) tcell.Style {
	switch c.State {
	case chartsense.HighlightHighlighted:
		return tcell.StyleDefault.Foreground(rgb(chartsense.Lighten(c.Color, 0.3))).Bold(true)
	case chartsense.HighlightDimmed:
		return tcell.StyleDefault.Foreground(rgb(chartsense.Dim(c.Color, background, 0.6)))
	}
	return tcell.StyleDefault.Foreground(rgb(c.Color))
}

// drawString writes s at (x, y) one grapheme cluster at a time and returns
// the number of columns used.
func (t *Terminal) drawString(x, y int, s string, style tcell.Style) int {
	start := x
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		r := g.Runes()
		t.screen.SetContent(x, y, r[0], r[1:], style)
		x += max(g.Width(), 1)
	}
	return x - start
}

// Draw renders the chart and shows the screen.
func (t *Terminal) Draw() {
	t.screen.Clear()
	defer t.screen.Show()

	st := t.chart.State()
	if st.Status != chartsense.StatusReady || st.Scales == nil {
		t.drawString(0, 0, st.Status.String(), axisStyle)
		return
	}
	t.drawAxes(st)
	t.drawCursor(st)
	for _, c := range t.root.cells {
		t.screen.SetContent(c.Col, c.Row, markRune, nil, cellStyle(c))
	}
	t.drawTooltip(st)
}

func (t *Terminal) drawAxes(st *chartsense.State) {
	m := st.Dimensions.Margins
	left, top := int(m.Left)-1, int(m.Top)
	bottom := top + int(st.Dimensions.InnerHeight)
	right := left + int(st.Dimensions.InnerWidth) + 1
	for y := top; y <= bottom; y++ {
		t.screen.SetContent(left, y, '│', nil, axisStyle)
	}
	for x := left; x <= right; x++ {
		t.screen.SetContent(x, bottom+1, '─', nil, axisStyle)
	}
	t.screen.SetContent(left, bottom+1, '└', nil, axisStyle)
}

func (t *Terminal) drawCursor(st *chartsense.State) {
	p := st.Interactions[chartsense.ChannelHover]
	if p == nil || p.Best == nil || math.IsNaN(p.Best.X) {
		return
	}
	for _, s := range st.ProcessedSeries {
		if s.ID == p.Best.SeriesID && s.HideCursor {
			return
		}
	}
	m := st.Dimensions.Margins
	col := int(math.Round(p.Best.X + m.Left))
	top := int(m.Top)
	for y := top; y <= top+int(st.Dimensions.InnerHeight); y++ {
		t.screen.SetContent(col, y, cursorRune, nil, axisStyle)
	}
}

// tooltipBox returns the tooltip lines and their top-left cell, or ok false
// when no target is active.
func (t *Terminal) tooltipBox(st *chartsense.State) (lines []string, col, row, width int, ok bool) {
	p := st.Interactions[chartsense.ChannelHover]
	if p == nil || p.Best == nil {
		return nil, 0, 0, 0, false
	}
	lines = chartsense.TooltipLines(st, *p.Best)
	for _, l := range lines {
		width = max(width, uniseg.StringWidth(l))
	}
	width += 2
	m := st.Dimensions.Margins
	pos := chartsense.Reposition(chartsense.TooltipPlacement{
		Anchor:    chartsense.Vec2{X: p.Best.X + m.Left, Y: p.Best.Y + m.Top},
		Gap:       1,
		Align:     t.chart.Config().TooltipAlign(),
		Panel:     chartsense.Vec2{X: float64(width), Y: float64(len(lines))},
		Container: t.root.Bounds(),
	})
	return lines, int(math.Round(pos.X)), int(math.Round(pos.Y)), width, true
}

func (t *Terminal) drawTooltip(st *chartsense.State) {
	lines, col, row, width, ok := t.tooltipBox(st)
	if !ok {
		return
	}
	for i, l := range lines {
		for x := col; x < col+width; x++ {
			t.screen.SetContent(x, row+i, ' ', nil, tooltipStyle)
		}
		t.drawString(col+1, row+i, l, tooltipStyle)
	}
}
