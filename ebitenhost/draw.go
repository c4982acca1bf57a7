package ebitenhost

import (
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/chartsense"
)

// DebugPrint glyph metrics.
const (
	glyphW       = 6
	glyphH       = 16
	panelPadding = 4
)

var (
	axisColor    = color.RGBA{0x80, 0x80, 0x90, 0xff}
	cursorColor  = color.RGBA{0xc0, 0xc0, 0xc8, 0x80}
	tooltipColor = color.RGBA{0x10, 0x10, 0x18, 0xe0}
)

// tooltipView is the tooltip as last laid out by Update.
type tooltipView struct {
	visible bool
	lines   []string
	size    chartsense.Vec2
	x, y    float64
}

// panelSize measures lines as rendered by ebitenutil.DebugPrintAt.
func panelSize(lines []string) chartsense.Vec2 {
	w := 0
	for _, l := range lines {
		w = max(w, len(l))
	}
	return chartsense.Vec2{
		X: float64(w*glyphW + 2*panelPadding),
		Y: float64(len(lines)*glyphH + 2*panelPadding),
	}
}

// markColor returns the fill for a mark in its highlight state.
func markColor(m *Mark, background string) color.RGBA {
	switch m.State {
	case chartsense.HighlightHighlighted:
		return chartsense.ParseColor(chartsense.Lighten(m.Color, 0.3))
	case chartsense.HighlightDimmed:
		return chartsense.ParseColor(chartsense.Dim(m.Color, background, 0.6))
	}
	return chartsense.ParseColor(m.Color)
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	defer g.flushScreenshots(screen)
	screen.Fill(chartsense.ParseColor(g.cfg.Background))
	st := g.chart.State()
	if st.Status != chartsense.StatusReady || st.Scales == nil {
		ebitenutil.DebugPrintAt(screen, st.Status.String(), 4, 4)
		return
	}
	g.drawAxes(screen, st)
	g.drawLines(screen, st)
	g.drawCursor(screen, st)
	for _, m := range g.root.Marks() {
		r := float32(m.Radius)
		if m.State == chartsense.HighlightHighlighted {
			r *= 1.6
		}
		vector.DrawFilledCircle(screen, float32(m.X), float32(m.Y), r, markColor(m, g.cfg.Background), true)
	}
	g.drawTooltip(screen)
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

func (g *Game) drawAxes(screen *ebiten.Image, st *chartsense.State) {
	m := st.Dimensions.Margins
	left, top := float32(m.Left), float32(m.Top)
	bottom := top + float32(st.Dimensions.InnerHeight)
	right := left + float32(st.Dimensions.InnerWidth)
	vector.StrokeLine(screen, left, top, left, bottom, 1, axisColor, false)
	vector.StrokeLine(screen, left, bottom, right, bottom, 1, axisColor, false)
}

// drawLines connects consecutive marks of line and area series.
func (g *Game) drawLines(screen *ebiten.Image, st *chartsense.State) {
	types := make(map[string]chartsense.ChartType, len(st.ProcessedSeries))
	for _, s := range st.ProcessedSeries {
		types[s.ID] = s.Type
	}
	var prev *Mark
	for _, m := range g.root.Marks() {
		t := types[m.Target.SeriesID]
		if t != chartsense.ChartLine && t != chartsense.ChartArea && t != "" {
			prev = nil
			continue
		}
		if prev != nil && prev.Target.SeriesID == m.Target.SeriesID {
			vector.StrokeLine(screen, float32(prev.X), float32(prev.Y), float32(m.X), float32(m.Y),
				1.5, chartsense.ParseColor(m.Color), true)
		}
		prev = m
	}
}

// drawCursor draws a vertical rule through the hovered target unless its
// series hides the cursor, plus a ring around it unless markers are
// suppressed.
func (g *Game) drawCursor(screen *ebiten.Image, st *chartsense.State) {
	p := st.Interactions[chartsense.ChannelHover]
	if p == nil || p.Best == nil {
		return
	}
	m := st.Dimensions.Margins
	x := float32(p.Best.X + m.Left)
	y := float32(p.Best.Y + m.Top)
	if math.IsNaN(float64(x)) || math.IsNaN(float64(y)) {
		return
	}
	hide := false
	for _, s := range st.ProcessedSeries {
		if s.ID == p.Best.SeriesID {
			hide = s.HideCursor
			break
		}
	}
	if !hide {
		top := float32(m.Top)
		vector.StrokeLine(screen, x, top, x, top+float32(st.Dimensions.InnerHeight), 1, cursorColor, false)
	}
	if !p.Best.SuppressMarker {
		vector.StrokeCircle(screen, x, y, float32(g.cfg.MarkRadius)*2.5, 1.5,
			chartsense.ParseColor(p.Best.SeriesColor), true)
	}
}

func (g *Game) drawTooltip(screen *ebiten.Image) {
	t := g.tooltip
	if !t.visible {
		return
	}
	vector.DrawFilledRect(screen, float32(t.x), float32(t.y), float32(t.size.X), float32(t.size.Y), tooltipColor, false)
	ebitenutil.DebugPrintAt(screen, strings.Join(t.lines, "\n"), int(t.x)+panelPadding, int(t.y)+panelPadding)
}
