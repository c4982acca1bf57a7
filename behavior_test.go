package chartsense

import (
	"testing"
)

// markChart is a ready line chart whose plot surface holds one element per
// record under ".point".
func markChart(t *testing.T, opts ...Option) (*Chart, []*testElement) {
	t.Helper()
	data := lineData(5, 25)
	cfg := testConfig(ChartLine)
	c := NewChart(cfg, append([]Option{WithData(data)}, opts...)...)

	root := newTestSurface(0, 0, cfg.Width, cfg.Height)
	els := make([]*testElement, len(data))
	for i := range data {
		els[i] = &testElement{data: Target{SeriesID: "main", Index: i}}
		root.add(".point", els[i])
	}
	c.Mount(root, root)
	t.Cleanup(c.Unmount)
	c.RegisterSeries("main", []SeriesConfig{{ID: "main"}})
	return c, els
}

func highlightStates(els []*testElement) []HighlightState {
	out := make([]HighlightState, len(els))
	for i, el := range els {
		out[i] = el.state
	}
	return out
}

func TestHighlightBehavior(t *testing.T) {
	c, els := markChart(t, WithBehaviors(HighlightBehavior(HighlightOptions{Selector: ".point"})))

	c.InjectMove(52, 50)
	want := []HighlightState{HighlightDimmed, HighlightDimmed, HighlightHighlighted, HighlightDimmed, HighlightDimmed}
	got := highlightStates(els)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d = %v, want %v", i, got[i], want[i])
		}
	}

	c.InjectLeave()
	for i, el := range els {
		if el.state != HighlightNone {
			t.Errorf("element %d = %v after leave, want none", i, el.state)
		}
	}
}

func TestHighlightBehaviorCleanup(t *testing.T) {
	c, els := markChart(t, WithBehaviors(HighlightBehavior(HighlightOptions{Selector: ".point"})))
	c.InjectMove(0, 100)
	if els[0].state != HighlightHighlighted {
		t.Fatalf("element 0 = %v, want highlighted", els[0].state)
	}
	listeners := c.Store().ListenerCount()

	c.SetBehaviors()
	for i, el := range els {
		if el.state != HighlightNone {
			t.Errorf("element %d = %v after cleanup, want none", i, el.state)
		}
	}
	if c.Interaction(ChannelHover) != nil {
		t.Error("cleanup left the hover channel set")
	}
	if got := c.Store().ListenerCount(); got != listeners-1 {
		t.Errorf("store listeners = %d, want %d", got, listeners-1)
	}
}

func TestHighlightBehaviorRepeatedCleanup(t *testing.T) {
	b := HighlightBehavior(HighlightOptions{Selector: ".point"})
	c, els := markChart(t)

	for range 3 {
		c.SetBehaviors(b)
		c.InjectMove(25, 75)
		c.SetBehaviors()
	}
	for i, el := range els {
		if el.state != HighlightNone {
			t.Errorf("element %d = %v, want none", i, el.state)
		}
	}
	if c.Store().ListenerCount() != 0 {
		t.Errorf("store listeners = %d, want 0", c.Store().ListenerCount())
	}
}

func TestHighlightBehaviorCustomKeys(t *testing.T) {
	data := lineData(3, 50)
	cfg := testConfig(ChartLine)
	c := NewChart(cfg, WithData(data), WithBehaviors(HighlightBehavior(HighlightOptions{
		Selector:  "bar",
		Key:       func(el Element) string { return el.Data().(string) },
		TargetKey: func(t Target) string { return []string{"a", "b", "c"}[t.Index] },
	})))
	root := newTestSurface(0, 0, 100, 100)
	a, b := &testElement{data: "a"}, &testElement{data: "b"}
	root.add("bar", a, b)
	c.Mount(root, root)
	defer c.Unmount()
	c.RegisterSeries("s", []SeriesConfig{{}})

	c.InjectMove(55, 0)
	if a.state != HighlightDimmed || b.state != HighlightHighlighted {
		t.Errorf("a=%v b=%v, want dimmed/highlighted", a.state, b.state)
	}
}

func TestHoverBehavior(t *testing.T) {
	var events []HoverEvent
	c, _ := markChart(t, WithBehaviors(HoverBehavior(ChannelHover, func(ev HoverEvent) {
		events = append(events, ev)
	})))

	c.InjectMove(24, 10)
	c.InjectMove(26, 90)
	c.InjectMove(49, 10)
	c.InjectLeave()

	if len(events) != 3 {
		t.Fatalf("events = %d, want 3 (enter, change, leave)", len(events))
	}
	if !events[0].Active || events[0].Target.Index != 1 {
		t.Errorf("first = %+v, want active on index 1", events[0])
	}
	if !events[1].Active || events[1].Target.Index != 2 {
		t.Errorf("second = %+v, want active on index 2", events[1])
	}
	if events[2].Active || events[2].Target != nil {
		t.Errorf("third = %+v, want inactive", events[2])
	}
}

func TestHoverBehaviorCleanupReportsLeave(t *testing.T) {
	var events []HoverEvent
	c, _ := markChart(t, WithBehaviors(HoverBehavior(ChannelHover, func(ev HoverEvent) {
		events = append(events, ev)
	})))
	c.InjectMove(50, 50)
	c.Unmount()

	if len(events) != 2 || events[1].Active {
		t.Errorf("events = %+v, want enter then inactive", events)
	}
}

func TestBehaviorContextAfterTeardownPanics(t *testing.T) {
	var saved *BehaviorContext
	c, _ := markChart(t, WithBehaviors(func(ctx *BehaviorContext) func() {
		saved = ctx
		return nil
	}))
	c.Unmount()
	expectPanic(t, "Watch", func() { saved.Watch(ChannelHover, func(*InteractionPayload) {}) })
	expectPanic(t, "Elements", func() { saved.Elements() })
}

func TestElementKey(t *testing.T) {
	tests := []struct {
		name string
		el   Element
		want string
	}{
		{"target", &testElement{data: Target{SeriesID: "s", Index: 4}}, "s#4"},
		{"string", &testElement{data: "slice"}, "slice"},
		{"other", &testElement{data: 3}, ""},
		{"carrier", &carrierElement{target: Target{SeriesID: "c", Index: 1}}, "c#1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ElementKey(tt.el); got != tt.want {
				t.Errorf("ElementKey = %q, want %q", got, tt.want)
			}
		})
	}
}
