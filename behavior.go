package chartsense

import "strconv"

// Behavior reacts to interaction state and applies side effects. It returns a
// cleanup that fully unwinds those effects.
type Behavior func(ctx *BehaviorContext) (cleanup func())

// BehaviorContext is the capability set passed to a Behavior. Like
// SensorContext it is bound to one instantiation.
type BehaviorContext struct {
	chart  *Chart
	unsubs []func()
	active bool
}

func newBehaviorContext(c *Chart) *BehaviorContext {
	return &BehaviorContext{chart: c, active: true}
}

func (ctx *BehaviorContext) mustBeActive(op string) {
	if !ctx.active {
		panic("chartsense: " + op + " on a behavior context that was torn down")
	}
}

// Chart returns the current chart view.
func (ctx *BehaviorContext) Chart() ChartContext {
	ctx.mustBeActive("Chart")
	return ctx.chart.context()
}

// Elements returns the mounted surfaces.
func (ctx *BehaviorContext) Elements() Elements {
	ctx.mustBeActive("Elements")
	return ctx.chart.store.State().Elements
}

// Watch calls fn with channel's payload now and whenever it changes
// identity. fn receives nil when the channel is inactive.
func (ctx *BehaviorContext) Watch(channel string, fn func(*InteractionPayload)) (unwatch func()) {
	ctx.mustBeActive("Watch")
	sel := func(st *State) *InteractionPayload { return st.Interactions[channel] }
	unsub := Select(ctx.chart.store, sel, nil, fn)
	ctx.unsubs = append(ctx.unsubs, unsub)
	fn(sel(ctx.chart.store.State()))
	return unsub
}

// Subscribe registers fn for every state change.
func (ctx *BehaviorContext) Subscribe(fn func(next, prev *State)) (unsubscribe func()) {
	ctx.mustBeActive("Subscribe")
	unsub := ctx.chart.store.Subscribe(fn)
	ctx.unsubs = append(ctx.unsubs, unsub)
	return unsub
}

// RemoveInteraction clears channel.
func (ctx *BehaviorContext) RemoveInteraction(channel string) {
	ctx.mustBeActive("RemoveInteraction")
	ctx.chart.RemoveInteraction(channel)
}

func (ctx *BehaviorContext) teardown() {
	for _, u := range ctx.unsubs {
		u()
	}
	ctx.unsubs = nil
	ctx.active = false
}

// TargetKey is the default identity of a target: series id and record index.
func TargetKey(t Target) string {
	return t.SeriesID + "#" + strconv.Itoa(t.Index)
}

// ElementKey is the default identity of an element. Elements carrying a
// Target (directly or via TargetCarrier) use TargetKey; elements carrying a
// string use it as is.
func ElementKey(el Element) string {
	if t, ok := nativeTarget(el); ok {
		return TargetKey(t)
	}
	if s, ok := el.Data().(string); ok {
		return s
	}
	return ""
}

// HighlightOptions configures HighlightBehavior.
type HighlightOptions struct {
	Channel  string
	Selector string
	// Key identifies an element. Defaults to ElementKey.
	Key func(Element) string
	// TargetKey identifies the active target. Defaults to TargetKey.
	TargetKey func(Target) string
}

// HighlightBehavior marks every element matching Selector as highlighted when
// its key equals the active target's key and dimmed otherwise. With no active
// target all elements return to HighlightNone.
func HighlightBehavior(opts HighlightOptions) Behavior {
	if opts.Channel == "" {
		opts.Channel = ChannelHover
	}
	if opts.Key == nil {
		opts.Key = ElementKey
	}
	if opts.TargetKey == nil {
		opts.TargetKey = TargetKey
	}
	return func(ctx *BehaviorContext) func() {
		query := func() []Element {
			els := ctx.Elements()
			surface := els.Plot
			if surface == nil {
				surface = els.Root
			}
			if surface == nil {
				return nil
			}
			return surface.Query(opts.Selector)
		}
		apply := func(p *InteractionPayload) {
			var active string
			if p != nil && p.Best != nil {
				active = opts.TargetKey(*p.Best)
			}
			for _, el := range query() {
				switch {
				case active == "":
					el.SetHighlight(HighlightNone)
				case opts.Key(el) == active:
					el.SetHighlight(HighlightHighlighted)
				default:
					el.SetHighlight(HighlightDimmed)
				}
			}
		}
		unwatch := ctx.Watch(opts.Channel, apply)
		return func() {
			unwatch()
			for _, el := range query() {
				el.SetHighlight(HighlightNone)
			}
			ctx.RemoveInteraction(opts.Channel)
		}
	}
}

// HoverEvent reports a change of hovered target.
type HoverEvent struct {
	Active  bool
	Target  *Target
	Pointer PointerPosition
}

// HoverBehavior calls fn when the best target on channel changes, including
// when the pointer leaves. Its cleanup reports a final inactive event if a
// target was hovered.
func HoverBehavior(channel string, fn func(HoverEvent)) Behavior {
	return func(ctx *BehaviorContext) func() {
		var current string
		unwatch := ctx.Watch(channel, func(p *InteractionPayload) {
			if p == nil || p.Best == nil {
				if current != "" {
					current = ""
					var pos PointerPosition
					if p != nil {
						pos = p.Pointer
					}
					fn(HoverEvent{Pointer: pos})
				}
				return
			}
			key := TargetKey(*p.Best)
			if key == current {
				return
			}
			current = key
			fn(HoverEvent{Active: true, Target: p.Best, Pointer: p.Pointer})
		})
		return func() {
			unwatch()
			if current != "" {
				current = ""
				fn(HoverEvent{})
			}
			ctx.RemoveInteraction(channel)
		}
	}
}
