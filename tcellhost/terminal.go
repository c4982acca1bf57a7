// Package tcellhost runs a chartsense chart in a terminal through tcell.
//
// Each record is drawn as one cell. Mouse motion and clicks become pointer
// events, arrow keys plus Home, End and Escape drive keyboard navigation,
// and losing terminal focus counts as the pointer leaving the chart.
package tcellhost

import (
	"errors"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/chartsense"
)

// Terminal adapts a Chart to a tcell.Screen.
type Terminal struct {
	screen  tcell.Screen
	chart   *chartsense.Chart
	root    *Surface
	pressed bool
	unwatch func()
}

type cellsKey struct {
	series []*chartsense.Series
	scales *chartsense.Scales
}

// Open creates and initializes the default terminal screen and mounts chart
// on it.
func Open(chart *chartsense.Chart) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return New(screen, chart), nil
}

// New mounts chart on an initialized screen and sizes it to the screen.
func New(screen tcell.Screen, chart *chartsense.Chart) *Terminal {
	screen.EnableMouse()
	screen.EnableFocus()
	w, h := screen.Size()
	t := &Terminal{
		screen: screen,
		chart:  chart,
		root:   &Surface{width: w, height: h},
	}
	chart.Resize(float64(w), float64(h))
	chart.Mount(t.root, t.root)
	t.rebuild()
	t.unwatch = chartsense.Select(chart.Store(),
		func(st *chartsense.State) cellsKey { return cellsKey{st.ProcessedSeries, st.Scales} },
		nil,
		func(cellsKey) { t.rebuild() })
	return t
}

// Surface returns the mounted surface.
func (t *Terminal) Surface() *Surface { return t.root }

// Close unmounts the chart and restores the terminal.
func (t *Terminal) Close() {
	if t.unwatch != nil {
		t.unwatch()
		t.unwatch = nil
	}
	t.chart.Unmount()
	t.screen.Fini()
}

func (t *Terminal) rebuild() {
	cells := BuildCells(t.chart.State())
	carryHighlights(t.root.cells, cells)
	t.root.cells = cells
}

// errQuit stops Run.
var errQuit = errors.New("quit")

// Run draws and handles events until the user quits with q, Ctrl-C, or the
// screen is finalized.
func (t *Terminal) Run() error {
	for {
		t.Draw()
		ev := t.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if err := t.HandleEvent(ev); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			return err
		}
	}
}

// HandleEvent forwards one tcell event to the chart. It returns errQuit
// when the event asks to exit.
func (t *Terminal) HandleEvent(ev tcell.Event) error {
	switch e := ev.(type) {
	case *tcell.EventResize:
		w, h := e.Size()
		t.root.width, t.root.height = w, h
		t.chart.Resize(float64(w), float64(h))
		t.screen.Sync()

	case *tcell.EventMouse:
		col, row := e.Position()
		raw := chartsense.RawPointer{
			ClientX:   float64(col),
			ClientY:   float64(row),
			Modifiers: convertMod(e.Modifiers()),
		}
		if c := t.root.At(col, row); c != nil {
			raw.Native = c
		}
		t.chart.PointerMove(raw)
		down := e.Buttons()&tcell.Button1 != 0
		if down && !t.pressed {
			t.chart.PointerDown(raw)
		}
		t.pressed = down

	case *tcell.EventFocus:
		if !e.Focused {
			t.chart.PointerLeave()
		}

	case *tcell.EventKey:
		if e.Key() == tcell.KeyCtrlC || (e.Key() == tcell.KeyRune && e.Rune() == 'q') {
			return errQuit
		}
		if k, ok := convertKey(e.Key()); ok {
			t.chart.KeyDown(k, convertMod(e.Modifiers()))
		}
	}
	return nil
}

func convertKey(k tcell.Key) (chartsense.Key, bool) {
	switch k {
	case tcell.KeyLeft:
		return chartsense.KeyArrowLeft, true
	case tcell.KeyRight:
		return chartsense.KeyArrowRight, true
	case tcell.KeyUp:
		return chartsense.KeyArrowUp, true
	case tcell.KeyDown:
		return chartsense.KeyArrowDown, true
	case tcell.KeyHome:
		return chartsense.KeyHome, true
	case tcell.KeyEnd:
		return chartsense.KeyEnd, true
	case tcell.KeyEscape:
		return chartsense.KeyEscape, true
	}
	return chartsense.KeyUnknown, false
}

func convertMod(m tcell.ModMask) chartsense.KeyModifiers {
	var mods chartsense.KeyModifiers
	if m&tcell.ModShift != 0 {
		mods |= chartsense.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= chartsense.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= chartsense.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= chartsense.ModMeta
	}
	return mods
}
