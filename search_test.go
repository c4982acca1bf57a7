package chartsense

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func searchState(series ...*Series) *State {
	return &State{ProcessedSeries: series, Scales: unitScales()}
}

func moveAt(x, y float64) ChartEvent {
	return ChartEvent{Name: EventPointerMove, Pointer: PointerPosition{X: x, Y: y}}
}

func TestFindClosestTargetsClosestUsesEuclideanRadius(t *testing.T) {
	// Line series in x mode: the strategy alone only checks x.
	st := searchState(testSeries(ChartLine, ModeX, []any{point(50, 50)}))

	if got := FindClosestTargets(moveAt(100, 100), SearchClosest, st); len(got) != 0 {
		t.Errorf("closest mode at ~70.7px matched %+v", got)
	}
	if got := FindClosestTargets(moveAt(50, 150), SearchClosest, st); len(got) != 0 {
		t.Errorf("closest mode at 100px matched %+v", got)
	}
	if got := FindClosestTargets(moveAt(50, 150), SearchNearestX, st); len(got) != 1 {
		t.Errorf("nearest-x mode with dx=0 matched %d targets, want 1", len(got))
	}

	got := FindClosestTargets(moveAt(80, 90), SearchClosest, st)
	if len(got) != 1 {
		t.Fatalf("closest mode at 50px matched %d targets, want 1", len(got))
	}
	if got[0].Distance != 50 {
		t.Errorf("Distance = %v, want Euclidean 50", got[0].Distance)
	}
}

func TestFindClosestTargetsMultipleSeries(t *testing.T) {
	a := hydrateSeries("r", 0, 0, SeriesConfig{ID: "a", Data: []any{point(50, 50)}},
		hydrateDefaults{x: ByKey("x"), y: ByKey("y"), typ: ChartLine})
	b := hydrateSeries("r", 1, 1, SeriesConfig{ID: "b", Data: []any{point(55, 10)}},
		hydrateDefaults{x: ByKey("x"), y: ByKey("y"), typ: ChartLine})
	far := hydrateSeries("r", 2, 2, SeriesConfig{ID: "far", Data: []any{point(0, 0)}},
		hydrateDefaults{x: ByKey("x"), y: ByKey("y"), typ: ChartLine})
	noStrategy := &Series{ID: "none"}

	got := FindClosestTargets(moveAt(60, 0), SearchNearestX, searchState(a, noStrategy, b, far))
	want := []Target{
		{SeriesID: "a", SeriesColor: PaletteColor(0), Index: 0, X: 50, Y: 50, Distance: 10},
		{SeriesID: "b", SeriesColor: PaletteColor(1), Index: 0, X: 55, Y: 90, Distance: 5},
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(Target{}, "Record")); diff != "" {
		t.Errorf("targets mismatch (-want +got):\n%s", diff)
	}

	best := BestTarget(got)
	if best == nil || best.SeriesID != "b" {
		t.Errorf("BestTarget = %+v, want series b", best)
	}
}

func TestFindClosestTargetsNoScales(t *testing.T) {
	st := &State{ProcessedSeries: []*Series{testSeries(ChartLine, "", []any{point(0, 0)})}}
	if got := FindClosestTargets(moveAt(0, 0), SearchNearestX, st); got != nil {
		t.Errorf("targets without scales = %+v, want nil", got)
	}
	if got := FindClosestTargets(moveAt(0, 0), SearchNearestX, nil); got != nil {
		t.Errorf("targets with nil state = %+v, want nil", got)
	}
}

type carrierElement struct {
	testElement
	target Target
}

func (c *carrierElement) InteractionTarget() (Target, bool) { return c.target, true }

func TestFindClosestTargetsExact(t *testing.T) {
	want := Target{SeriesID: "pie", Index: 3}
	tests := []struct {
		name   string
		native any
		want   []Target
	}{
		{"nil", nil, nil},
		{"target value", want, []Target{want}},
		{"target pointer", &want, []Target{want}},
		{"nil target pointer", (*Target)(nil), nil},
		{"carrier", &carrierElement{target: want}, []Target{want}},
		{"element with target data", &testElement{data: want}, []Target{want}},
		{"element with other data", &testElement{data: "slice-3"}, nil},
		{"unrelated", 42, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := moveAt(0, 0)
			ev.Native = tt.native
			got := FindClosestTargets(ev, SearchExact, &State{})
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBestTarget(t *testing.T) {
	if BestTarget(nil) != nil {
		t.Error("BestTarget(nil) should be nil")
	}
	targets := []Target{
		{SeriesID: "a", Distance: 5},
		{SeriesID: "b", Distance: 2},
		{SeriesID: "c", Distance: 2},
	}
	best := BestTarget(targets)
	if best.SeriesID != "b" {
		t.Errorf("BestTarget = %q, want b (first of the ties)", best.SeriesID)
	}
	best.SeriesID = "mutated"
	if targets[1].SeriesID != "b" {
		t.Error("BestTarget returned a pointer into the input slice")
	}
}
