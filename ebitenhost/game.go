// Package ebitenhost runs a chartsense chart in an Ebitengine window.
//
// Game implements ebiten.Game: it forwards cursor, touch, and navigation
// keys to the chart, keeps one Mark per record in sync with the chart's
// scales, and draws series, marks, the hover cursor, and a tooltip that
// follows the active target.
package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/phanxgames/chartsense"
)

// RunConfig holds window settings for Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// Background is a hex color; empty uses a dark default.
	Background string
	// MarkRadius is the drawn and hit-tested radius of each mark.
	MarkRadius float64
	// ScreenshotDir receives captures; empty means "screenshots".
	ScreenshotDir string
	Logger        *zap.Logger
}

const (
	defaultBackground = "#1e1e28"
	defaultMarkRadius = 3
	screenshotKey     = ebiten.KeyF12
)

// Game adapts a Chart to ebiten.Game.
type Game struct {
	chart    *chartsense.Chart
	root     *Surface
	cfg      RunConfig
	pointer  pointerTracker
	follower *chartsense.TooltipFollower
	fps      *fpsOverlay
	tooltip  tooltipView
	unwatch  func()
	width    int
	height   int
	shots    []string
	logger   *zap.Logger
}

// marksKey changes identity whenever marks need rebuilding.
type marksKey struct {
	series []*chartsense.Series
	scales *chartsense.Scales
}

// NewGame mounts chart on a window-sized surface.
func NewGame(chart *chartsense.Chart, cfg RunConfig) *Game {
	if cfg.Background == "" {
		cfg.Background = defaultBackground
	}
	if cfg.MarkRadius <= 0 {
		cfg.MarkRadius = defaultMarkRadius
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	tc := chart.Config().Tooltip
	g := &Game{
		chart:    chart,
		root:     NewSurface(chartsense.Rect{Width: float64(cfg.Width), Height: float64(cfg.Height)}),
		cfg:      cfg,
		follower: chartsense.NewTooltipFollower(float32(tc.Duration), nil),
		width:    cfg.Width,
		height:   cfg.Height,
		logger:   cfg.Logger,
	}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}

	chart.Mount(g.root, g.root)
	g.rebuildMarks()
	g.unwatch = chartsense.Select(chart.Store(),
		func(st *chartsense.State) marksKey { return marksKey{st.ProcessedSeries, st.Scales} },
		nil,
		func(marksKey) { g.rebuildMarks() })
	return g
}

// Chart returns the hosted chart.
func (g *Game) Chart() *chartsense.Chart { return g.chart }

// Surface returns the mounted surface.
func (g *Game) Surface() *Surface { return g.root }

// Close unmounts the chart.
func (g *Game) Close() {
	if g.unwatch != nil {
		g.unwatch()
		g.unwatch = nil
	}
	g.chart.Unmount()
}

func (g *Game) rebuildMarks() {
	marks := BuildMarks(g.chart.State(), g.cfg.MarkRadius)
	carryHighlights(g.root.Marks(), marks)
	g.root.SetMarks(marks)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	s := g.pointer.poll(g.root.Bounds())
	var native any
	if m := g.root.HitTest(s.X, s.Y); m != nil {
		native = m
	}
	g.pointer.step(g.chart, s, native, readModifiers())
	pollKeys(g.chart)
	if inpututil.IsKeyJustPressed(screenshotKey) {
		g.Screenshot(g.shotLabel())
	}

	g.updateTooltip(1 / float32(ebiten.TPS()))
	if g.fps != nil {
		g.fps.update(1 / float64(ebiten.TPS()))
	}
	return nil
}

// shotLabel names a capture after the hovered target, if any.
func (g *Game) shotLabel() string {
	if p := g.chart.Interaction(chartsense.ChannelHover); p != nil && p.Best != nil {
		return chartsense.TargetKey(*p.Best)
	}
	return g.chart.State().Status.String()
}

// updateTooltip retargets the follower at the hover channel's best target.
func (g *Game) updateTooltip(dt float32) {
	st := g.chart.State()
	p := st.Interactions[chartsense.ChannelHover]
	if p == nil || p.Best == nil {
		g.tooltip = tooltipView{}
		g.follower.Reset()
		return
	}
	lines := chartsense.TooltipLines(st, *p.Best)
	panel := panelSize(lines)
	m := st.Dimensions.Margins
	tc := g.chart.Config()
	pos := chartsense.Reposition(chartsense.TooltipPlacement{
		Anchor:      chartsense.Vec2{X: p.Best.X + m.Left, Y: p.Best.Y + m.Top},
		Touch:       p.Pointer.Touch,
		Gap:         tc.Tooltip.Gap,
		Align:       tc.TooltipAlign(),
		TouchOffset: tc.Tooltip.TouchOffset,
		Panel:       panel,
		Container:   g.root.Bounds(),
	})
	g.follower.MoveTo(pos)
	g.follower.Update(dt)
	g.tooltip = tooltipView{visible: true, lines: lines, size: panel, x: g.follower.X, y: g.follower.Y}
}

// Layout implements ebiten.Game. The chart is resized to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.root.SetBounds(chartsense.Rect{Width: float64(outsideWidth), Height: float64(outsideHeight)})
		g.chart.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and runs g until it is closed.
func Run(g *Game) error {
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	defer g.Close()
	return ebiten.RunGame(g)
}
