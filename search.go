package chartsense

import "math"

// SearchMode selects how FindClosestTargets resolves a pointer position.
type SearchMode string

const (
	// SearchExact uses only the payload carried by the native event target.
	SearchExact SearchMode = "exact"
	// SearchNearestX asks each series' strategy with the series' own mode.
	SearchNearestX SearchMode = "nearest-x"
	// SearchClosest additionally requires Euclidean distance within radius.
	SearchClosest SearchMode = "closest"
)

// InteractionRadius is the pixel radius used for every strategy lookup.
const InteractionRadius = 50.0

// TargetCarrier is implemented by native event targets (drawn elements) that
// know which data point they represent.
type TargetCarrier interface {
	InteractionTarget() (Target, bool)
}

// FindClosestTargets resolves ev against every processed series. A single
// position may match several series. Series without a strategy are skipped.
func FindClosestTargets(ev ChartEvent, mode SearchMode, st *State) []Target {
	if mode == SearchExact {
		if t, ok := nativeTarget(ev.Native); ok {
			return []Target{t}
		}
		return nil
	}
	if st == nil || st.Scales == nil {
		return nil
	}

	px, py := ev.Pointer.X, ev.Pointer.Y
	var out []Target
	for _, s := range st.ProcessedSeries {
		if s == nil || s.Strategy == nil {
			continue
		}
		t := s.Strategy.Find(px, py, InteractionRadius, st.Scales.X, st.Scales.Y)
		if t == nil {
			continue
		}
		if mode == SearchClosest {
			d := math.Hypot(t.X-px, t.Y-py)
			if math.IsNaN(d) || d > InteractionRadius {
				continue
			}
			t.Distance = d
		}
		out = append(out, *t)
	}
	return out
}

func nativeTarget(native any) (Target, bool) {
	switch n := native.(type) {
	case nil:
		return Target{}, false
	case Target:
		return n, true
	case *Target:
		if n == nil {
			return Target{}, false
		}
		return *n, true
	case TargetCarrier:
		return n.InteractionTarget()
	case Element:
		return nativeTarget(n.Data())
	}
	return Target{}, false
}

// BestTarget returns the target with the smallest distance, preferring the
// earliest on ties. It returns nil for an empty slice.
func BestTarget(targets []Target) *Target {
	if len(targets) == 0 {
		return nil
	}
	best := 0
	for i := 1; i < len(targets); i++ {
		if targets[i].Distance < targets[best].Distance {
			best = i
		}
	}
	t := targets[best]
	return &t
}
