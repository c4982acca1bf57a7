package chartsense

import (
	"testing"
)

// testSurface is an in-memory Surface.
type testSurface struct {
	bounds   Rect
	elements map[string][]Element
}

func newTestSurface(x, y, w, h float64) *testSurface {
	return &testSurface{bounds: Rect{X: x, Y: y, Width: w, Height: h}, elements: map[string][]Element{}}
}

func (s *testSurface) Bounds() Rect { return s.bounds }

func (s *testSurface) Query(selector string) []Element { return s.elements[selector] }

func (s *testSurface) add(selector string, els ...Element) {
	s.elements[selector] = append(s.elements[selector], els...)
}

// testElement records highlight changes.
type testElement struct {
	data  any
	state HighlightState
	calls int
}

func (e *testElement) Data() any { return e.data }

func (e *testElement) SetHighlight(h HighlightState) {
	e.state = h
	e.calls++
}

// lineData returns n records with x = y = i*step.
func lineData(n int, step float64) []any {
	out := make([]any, n)
	for i := range out {
		v := float64(i) * step
		out[i] = map[string]any{"x": v, "y": v}
	}
	return out
}

// point returns a single record.
func point(x, y float64) map[string]any {
	return map[string]any{"x": x, "y": y}
}

// testConfig is a 100x100 chart with no margins.
func testConfig(t ChartType) Config {
	cfg := DefaultConfig()
	cfg.Type = t
	cfg.Width, cfg.Height = 100, 100
	cfg.Margins = Margins{}
	return cfg
}

// mountedChart returns a chart mounted on a surface at the origin.
func mountedChart(t *testing.T, cfg Config, opts ...Option) (*Chart, *testSurface) {
	t.Helper()
	c := NewChart(cfg, opts...)
	root := newTestSurface(0, 0, cfg.Width, cfg.Height)
	c.Mount(root, root)
	t.Cleanup(c.Unmount)
	return c, root
}

// testScales builds fixed scales over an explicit linear domain.
func testScales(xd, yd [2]float64, w, h float64) *Scales {
	return &Scales{
		X:           NewLinearScale(xd, [2]float64{0, w}),
		Y:           NewLinearScale(yd, [2]float64{h, 0}),
		InnerWidth:  w,
		InnerHeight: h,
	}
}

// testSeries hydrates a single series the way the registry does.
func testSeries(t ChartType, mode InteractionMode, data []any) *Series {
	return hydrateSeries("test", 0, 0, SeriesConfig{
		Type:            t,
		Data:            data,
		InteractionMode: mode,
	}, hydrateDefaults{x: ByKey("x"), y: ByKey("y"), typ: t})
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic, got none", name)
		}
	}()
	fn()
}
