package tcellhost

import (
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/chartsense"
)

func testRecords(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = map[string]any{"x": float64(i * 10), "y": float64(i * 10)}
	}
	return out
}

// newTestTerminal mounts an 11-point line chart on a 60x20 simulated screen.
// The plot spans columns 6..58 and rows 1..18.
func newTestTerminal(t *testing.T, opts ...chartsense.Option) (*Terminal, tcell.SimulationScreen, *chartsense.Chart) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(60, 20)

	cfg := chartsense.DefaultConfig()
	cfg.Margins = chartsense.Margins{Top: 1, Right: 2, Bottom: 2, Left: 6}
	opts = append([]chartsense.Option{chartsense.WithData(testRecords(11))}, opts...)
	chart := chartsense.NewChart(cfg, opts...)
	chart.RegisterSeries("main", []chartsense.SeriesConfig{{ID: "sales", Label: "Sales"}})

	term := New(screen, chart)
	t.Cleanup(term.Close)
	return term, screen, chart
}

func mouse(col, row int, buttons tcell.ButtonMask) *tcell.EventMouse {
	return tcell.NewEventMouse(col, row, buttons, tcell.ModNone)
}

func key(k tcell.Key, r rune) *tcell.EventKey {
	return tcell.NewEventKey(k, r, tcell.ModNone)
}

func TestBuildCells(t *testing.T) {
	term, _, _ := newTestTerminal(t)
	cells := term.Surface().Cells()
	if len(cells) != 11 {
		t.Fatalf("cells = %d, want 11", len(cells))
	}
	if cells[0].Col != 6 || cells[0].Row != 18 {
		t.Errorf("first cell = (%d, %d), want (6, 18)", cells[0].Col, cells[0].Row)
	}
	if cells[10].Col != 58 {
		t.Errorf("last cell col = %d, want 58", cells[10].Col)
	}
	if got := term.Surface().At(cells[3].Col, cells[3].Row); got != cells[3] {
		t.Errorf("At(cell 3) = %+v", got)
	}
	if got := term.Surface().Query("bar"); got != nil {
		t.Errorf("Query(bar) = %v, want nil", got)
	}
}

func TestMouseHover(t *testing.T) {
	term, _, chart := newTestTerminal(t)

	if err := term.HandleEvent(mouse(32, 10, tcell.ButtonNone)); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
	p := chart.Interaction(chartsense.ChannelHover)
	if p == nil || p.Best == nil || p.Best.Index != 5 {
		t.Fatalf("hover = %+v, want index 5", p)
	}

	if err := term.HandleEvent(tcell.NewEventFocus(false)); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
	if chart.Interaction(chartsense.ChannelHover) != nil {
		t.Error("focus loss did not clear hover")
	}
}

func TestMouseClickSelectsOnce(t *testing.T) {
	selections := 0
	term, _, chart := newTestTerminal(t, chartsense.WithSensors(
		chartsense.SelectionSensor(chartsense.ChannelSelection, chartsense.SearchNearestX),
	))
	unsub := chart.Subscribe(func(next, prev *chartsense.State) {
		if next.Interactions[chartsense.ChannelSelection] != prev.Interactions[chartsense.ChannelSelection] {
			selections++
		}
	})
	defer unsub()

	term.HandleEvent(mouse(11, 10, tcell.Button1))
	term.HandleEvent(mouse(12, 10, tcell.Button1))
	term.HandleEvent(mouse(12, 10, tcell.ButtonNone))

	if selections != 1 {
		t.Errorf("selection updates = %d, want 1 for a single press", selections)
	}
	p := chart.Interaction(chartsense.ChannelSelection)
	if p == nil || p.Best == nil || p.Best.Index != 1 {
		t.Errorf("selection = %+v, want index 1", p)
	}
}

func TestKeys(t *testing.T) {
	term, _, chart := newTestTerminal(t)

	term.HandleEvent(key(tcell.KeyEnd, 0))
	p := chart.Interaction(chartsense.ChannelHover)
	if p == nil || p.FocusIndex != 10 {
		t.Fatalf("after End: %+v, want focus 10", p)
	}
	term.HandleEvent(key(tcell.KeyLeft, 0))
	if p := chart.Interaction(chartsense.ChannelHover); p.FocusIndex != 9 || p.Best.Index != 9 {
		t.Errorf("after Left: focus %d best %d, want 9", p.FocusIndex, p.Best.Index)
	}
	term.HandleEvent(key(tcell.KeyEscape, 0))
	if chart.Interaction(chartsense.ChannelHover) != nil {
		t.Error("Escape did not clear hover")
	}

	if err := term.HandleEvent(key(tcell.KeyRune, 'q')); !errors.Is(err, errQuit) {
		t.Errorf("q = %v, want errQuit", err)
	}
	if err := term.HandleEvent(key(tcell.KeyCtrlC, 0)); !errors.Is(err, errQuit) {
		t.Errorf("Ctrl-C = %v, want errQuit", err)
	}
	if err := term.HandleEvent(key(tcell.KeyRune, 'x')); err != nil {
		t.Errorf("x = %v, want nil", err)
	}
}

func TestResize(t *testing.T) {
	term, screen, chart := newTestTerminal(t)
	screen.SetSize(80, 20)
	term.HandleEvent(tcell.NewEventResize(80, 20))

	if got := chart.State().Dimensions.Width; got != 80 {
		t.Errorf("chart width = %v, want 80", got)
	}
	if cells := term.Surface().Cells(); cells[10].Col != 78 {
		t.Errorf("last cell col = %d, want 78", cells[10].Col)
	}
}

func TestResizeKeepsHighlight(t *testing.T) {
	term, screen, _ := newTestTerminal(t, chartsense.WithBehaviors(
		chartsense.HighlightBehavior(chartsense.HighlightOptions{Selector: CellSelector}),
	))
	term.HandleEvent(mouse(32, 10, tcell.ButtonNone))
	if got := term.Surface().Cells()[5].State; got != chartsense.HighlightHighlighted {
		t.Fatalf("cell 5 = %v, want highlighted", got)
	}

	screen.SetSize(80, 20)
	term.HandleEvent(tcell.NewEventResize(80, 20))
	cells := term.Surface().Cells()
	if cells[10].Col != 78 {
		t.Fatalf("cells were not rebuilt: last col %d", cells[10].Col)
	}
	if cells[5].State != chartsense.HighlightHighlighted || cells[4].State != chartsense.HighlightDimmed {
		t.Errorf("after resize cell 5 = %v, cell 4 = %v, want highlighted and dimmed", cells[5].State, cells[4].State)
	}
}

// screenText returns row y of the simulated screen.
func screenText(screen tcell.SimulationScreen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestDraw(t *testing.T) {
	term, screen, _ := newTestTerminal(t)
	term.HandleEvent(mouse(32, 10, tcell.ButtonNone))
	term.Draw()

	cells := term.Surface().Cells()
	c := cells[5]
	r, _, style, _ := screen.GetContent(c.Col, c.Row)
	if r != markRune {
		t.Errorf("cell 5 rune = %q, want %q", r, markRune)
	}
	if _, _, attrs := style.Decompose(); attrs&tcell.AttrBold == 0 {
		t.Error("highlighted cell is not bold")
	}

	lines, _, row, _, ok := term.tooltipBox(term.chart.State())
	if !ok {
		t.Fatal("no tooltip for hovered target")
	}
	if !strings.Contains(screenText(screen, row), lines[0]) {
		t.Errorf("row %d = %q, want tooltip label %q", row, screenText(screen, row), lines[0])
	}
}

func TestDrawNotReady(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(40, 10)
	term := New(screen, chartsense.NewChart(chartsense.DefaultConfig()))
	t.Cleanup(term.Close)

	term.Draw()
	if got := screenText(screen, 0); !strings.HasPrefix(got, "idle") {
		t.Errorf("status row = %q, want idle", got)
	}
}

func TestConvertMod(t *testing.T) {
	got := convertMod(tcell.ModShift | tcell.ModAlt)
	if got != chartsense.ModShift|chartsense.ModAlt {
		t.Errorf("convertMod = %v, want shift|alt", got)
	}
}
