package chartsense

// InjectMove dispatches a synthetic mouse move at container coordinates
// (x, y). It goes through the same normalization as host input.
func (c *Chart) InjectMove(x, y float64) {
	c.PointerMove(c.syntheticPointer(x, y, false))
}

// InjectTouch dispatches a synthetic touch move at container coordinates.
func (c *Chart) InjectTouch(x, y float64) {
	c.PointerMove(c.syntheticPointer(x, y, true))
}

// InjectPress dispatches a synthetic pointer press at container coordinates.
func (c *Chart) InjectPress(x, y float64) {
	c.PointerDown(c.syntheticPointer(x, y, false))
}

// InjectLeave dispatches a synthetic pointer leave.
func (c *Chart) InjectLeave() {
	c.PointerLeave()
}

// InjectKey dispatches a synthetic key press without modifiers.
func (c *Chart) InjectKey(key Key) {
	c.KeyDown(key, 0)
}

// InjectSweep dispatches moves linearly interpolated from (fromX, fromY) to
// (toX, toY), both ends included. Minimum steps is 2.
func (c *Chart) InjectSweep(fromX, fromY, toX, toY float64, steps int) {
	if steps < 2 {
		steps = 2
	}
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps-1)
		c.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// syntheticPointer converts container coordinates into client coordinates so
// injected events normalize exactly like real ones.
func (c *Chart) syntheticPointer(x, y float64, touch bool) RawPointer {
	c.mustBeMounted("Inject")
	origin := c.store.State().Elements.Root.Bounds()
	return RawPointer{ClientX: origin.X + x, ClientY: origin.Y + y, Touch: touch}
}
