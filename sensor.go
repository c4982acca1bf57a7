package chartsense

import (
	"math"

	"go.uber.org/zap"
)

// Sensor attaches listeners through ctx and returns a cleanup that detaches
// them. Sensors are instantiated only while the chart is ready.
type Sensor func(ctx *SensorContext) (cleanup func())

// ChartContext is the read-only view of a chart handed to sensors and
// behaviors.
type ChartContext struct {
	State *State
	Type  ChartType
	// X and Y are the chart-level accessors used for keyboard navigation.
	X, Y Accessor
}

// SensorContext is the capability set passed to a Sensor. It is bound to one
// sensor instantiation; using it after teardown panics.
type SensorContext struct {
	chart   *Chart
	handles []ListenerHandle
	active  bool
}

func newSensorContext(c *Chart) *SensorContext {
	return &SensorContext{chart: c, active: true}
}

func (ctx *SensorContext) mustBeActive(op string) {
	if !ctx.active {
		panic("chartsense: " + op + " on a sensor context that was torn down")
	}
}

// On registers fn for events named name.
func (ctx *SensorContext) On(name EventName, fn Listener) ListenerHandle {
	ctx.mustBeActive("On")
	h := ctx.chart.bus.on(name, fn)
	ctx.handles = append(ctx.handles, h)
	return h
}

// Off removes a listener registered with On.
func (ctx *SensorContext) Off(h ListenerHandle) {
	ctx.mustBeActive("Off")
	h.Remove()
	for i := range ctx.handles {
		if ctx.handles[i] == h {
			ctx.handles = append(ctx.handles[:i], ctx.handles[i+1:]...)
			break
		}
	}
}

// Emit dispatches ev to every listener registered for ev.Name.
func (ctx *SensorContext) Emit(ev ChartEvent) {
	ctx.mustBeActive("Emit")
	ctx.chart.bus.emit(ev)
}

// Chart returns the current chart view.
func (ctx *SensorContext) Chart() ChartContext {
	ctx.mustBeActive("Chart")
	return ctx.chart.context()
}

// UpsertInteraction sets the payload for channel.
func (ctx *SensorContext) UpsertInteraction(channel string, payload *InteractionPayload) {
	ctx.mustBeActive("UpsertInteraction")
	ctx.chart.UpsertInteraction(channel, payload)
}

// RemoveInteraction clears channel. Clearing an inactive channel does not
// notify store listeners.
func (ctx *SensorContext) RemoveInteraction(channel string) {
	ctx.mustBeActive("RemoveInteraction")
	ctx.chart.RemoveInteraction(channel)
}

// teardown deactivates the context and removes any listener the sensor's
// cleanup left behind.
func (ctx *SensorContext) teardown() {
	if len(ctx.handles) > 0 {
		ctx.chart.logger.Debug("removing listeners left by sensor cleanup",
			zap.Int("count", len(ctx.handles)))
	}
	for _, h := range ctx.handles {
		h.Remove()
	}
	ctx.handles = nil
	ctx.active = false
}

// PointerSensor resolves pointer moves with mode and writes the result to
// channel. Leaving the chart, or the sensor being torn down, clears the
// channel.
func PointerSensor(channel string, mode SearchMode) Sensor {
	return func(ctx *SensorContext) func() {
		move := ctx.On(EventPointerMove, func(ev ChartEvent) {
			st := ctx.Chart().State
			targets := FindClosestTargets(ev, mode, st)
			ctx.UpsertInteraction(channel, &InteractionPayload{
				Pointer:    ev.Pointer,
				Targets:    targets,
				Best:       BestTarget(targets),
				FocusIndex: -1,
			})
		})
		leave := ctx.On(EventPointerLeave, func(ChartEvent) {
			ctx.RemoveInteraction(channel)
		})
		return func() {
			ctx.Off(move)
			ctx.Off(leave)
			ctx.RemoveInteraction(channel)
		}
	}
}

// KeyboardSensor moves a focus index through the chart data with arrow,
// Home and End keys and resolves the focused record through the same search
// a pointer uses. Escape clears focus and the channel.
func KeyboardSensor(channel string, mode SearchMode) Sensor {
	return func(ctx *SensorContext) func() {
		focus := -1
		h := ctx.On(EventKeyDown, func(ev ChartEvent) {
			cc := ctx.Chart()
			st := cc.State
			n := len(st.Data)

			switch ev.Key {
			case KeyEscape:
				focus = -1
				ctx.RemoveInteraction(channel)
				return
			case KeyArrowRight, KeyArrowDown:
				focus++
			case KeyArrowLeft, KeyArrowUp:
				focus--
			case KeyHome:
				focus = 0
			case KeyEnd:
				focus = n - 1
			default:
				return
			}
			if n == 0 || st.Scales == nil {
				focus = -1
				return
			}
			focus = min(max(focus, 0), n-1)

			pos, ok := focusPosition(cc, focus)
			if !ok {
				return
			}
			kev := ChartEvent{Name: EventPointerMove, Pointer: pos, Modifiers: ev.Modifiers}
			searchMode := mode
			if searchMode == SearchExact {
				searchMode = SearchNearestX
			}
			targets := FindClosestTargets(kev, searchMode, st)
			ctx.UpsertInteraction(channel, &InteractionPayload{
				Pointer:    pos,
				Targets:    targets,
				Best:       BestTarget(targets),
				FocusIndex: focus,
			})
		})
		return func() {
			ctx.Off(h)
			ctx.RemoveInteraction(channel)
		}
	}
}

// focusPosition returns the pixel position of data[i] via the current scales.
// A record without a usable y is placed on the vertical middle of the plot.
func focusPosition(cc ChartContext, i int) (PointerPosition, bool) {
	st := cc.State
	rec := st.Data[i]
	xv, ok := cc.X.Value(rec)
	if !ok {
		return PointerPosition{}, false
	}
	x := st.Scales.X.Map(xv) + bandOffset(st.Scales.X)
	if math.IsNaN(x) {
		return PointerPosition{}, false
	}
	y := st.Scales.InnerHeight / 2
	if yv, ok := cc.Y.Value(rec); ok {
		if py := st.Scales.Y.Map(yv); !math.IsNaN(py) {
			y = py
		}
	}
	m := st.Dimensions.Margins
	return PointerPosition{X: x, Y: y, ContainerX: x + m.Left, ContainerY: y + m.Top}, true
}

// SelectionSensor writes the best target under a pointer press to channel.
// Pressing where nothing matches clears the channel.
func SelectionSensor(channel string, mode SearchMode) Sensor {
	return func(ctx *SensorContext) func() {
		h := ctx.On(EventPointerDown, func(ev ChartEvent) {
			targets := FindClosestTargets(ev, mode, ctx.Chart().State)
			if len(targets) == 0 {
				ctx.RemoveInteraction(channel)
				return
			}
			ctx.UpsertInteraction(channel, &InteractionPayload{
				Pointer:    ev.Pointer,
				Targets:    targets,
				Best:       BestTarget(targets),
				FocusIndex: -1,
			})
		})
		return func() {
			ctx.Off(h)
			ctx.RemoveInteraction(channel)
		}
	}
}

// PointerMode returns the search mode continuous charts of type t use.
func PointerMode(t ChartType) SearchMode {
	switch {
	case t.twoDimensional():
		return SearchClosest
	case t.continuous():
		return SearchNearestX
	default:
		return SearchExact
	}
}

// DefaultSensors returns the sensor set for chart type t: continuous types get
// a pointer sensor and a keyboard sensor on ChannelHover, other types get an
// exact pointer sensor only.
func DefaultSensors(t ChartType) []Sensor {
	mode := PointerMode(t)
	if mode == SearchExact {
		return []Sensor{PointerSensor(ChannelHover, SearchExact)}
	}
	return []Sensor{
		PointerSensor(ChannelHover, mode),
		KeyboardSensor(ChannelHover, mode),
	}
}
