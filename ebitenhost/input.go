package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/chartsense"
)

// keyBindings maps ebiten keys to chart navigation keys, in polling order.
var keyBindings = []struct {
	key ebiten.Key
	nav chartsense.Key
}{
	{ebiten.KeyArrowLeft, chartsense.KeyArrowLeft},
	{ebiten.KeyArrowRight, chartsense.KeyArrowRight},
	{ebiten.KeyArrowUp, chartsense.KeyArrowUp},
	{ebiten.KeyArrowDown, chartsense.KeyArrowDown},
	{ebiten.KeyHome, chartsense.KeyHome},
	{ebiten.KeyEnd, chartsense.KeyEnd},
	{ebiten.KeyEscape, chartsense.KeyEscape},
}

// navKey returns the chart key bound to k.
func navKey(k ebiten.Key) (chartsense.Key, bool) {
	for _, b := range keyBindings {
		if b.key == k {
			return b.nav, true
		}
	}
	return chartsense.KeyUnknown, false
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() chartsense.KeyModifiers {
	var mods chartsense.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= chartsense.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= chartsense.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= chartsense.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= chartsense.ModMeta
	}
	return mods
}

// pointerTracker turns polled cursor and touch positions into move, leave,
// and press events. It is separate from Game so it can be driven without a
// running window.
type pointerTracker struct {
	inside    bool
	lastX     float64
	lastY     float64
	touchDown bool
	touchIDs  []ebiten.TouchID
}

// pointerSample is one frame of polled pointer state.
type pointerSample struct {
	X, Y    float64
	Touch   bool
	Present bool // false when no touch is active and the cursor is outside
	Pressed bool // primary button or touch started this frame
}

// step forwards s to c. Native is the host hit-test result for the sample.
func (p *pointerTracker) step(c *chartsense.Chart, s pointerSample, native any, mods chartsense.KeyModifiers) {
	if !s.Present {
		if p.inside {
			p.inside = false
			c.PointerLeave()
		}
		return
	}
	raw := chartsense.RawPointer{ClientX: s.X, ClientY: s.Y, Touch: s.Touch, Modifiers: mods, Native: native}
	if !p.inside || s.X != p.lastX || s.Y != p.lastY {
		p.inside = true
		p.lastX, p.lastY = s.X, s.Y
		c.PointerMove(raw)
	}
	if s.Pressed {
		c.PointerDown(raw)
	}
}

// poll reads ebiten's pointer state. A touch wins over the cursor.
func (p *pointerTracker) poll(bounds chartsense.Rect) pointerSample {
	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
	if len(p.touchIDs) > 0 {
		tx, ty := ebiten.TouchPosition(p.touchIDs[0])
		started := !p.touchDown
		p.touchDown = true
		x, y := float64(tx), float64(ty)
		return pointerSample{X: x, Y: y, Touch: true, Present: bounds.Contains(x, y), Pressed: started}
	}
	p.touchDown = false

	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	return pointerSample{
		X: x, Y: y,
		Present: bounds.Contains(x, y),
		Pressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
	}
}

// pollKeys forwards every navigation key pressed this frame.
func pollKeys(c *chartsense.Chart) {
	mods := readModifiers()
	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.key) {
			c.KeyDown(b.nav, mods)
		}
	}
}
