package chartsense

// State is the chart's single mutable record. It is partitioned into slices by
// convention; every slice is replaced wholesale on update so identity
// comparison detects change.
type State struct {
	Dimensions Dimensions
	Data       []any

	// Series maps a registration id to its hydrated series, in config order.
	Series map[string][]*Series
	// SeriesOrder lists registration ids in registration order.
	SeriesOrder []string
	// ProcessedSeries is Series flattened in registration order. It is
	// derived and must never be set directly.
	ProcessedSeries []*Series

	// Interactions maps a channel name to its active payload. A missing key
	// means the channel is inactive.
	Interactions map[string]*InteractionPayload

	Scales   *Scales
	Status   Status
	Err      error
	Elements Elements
}

// PointerPosition is a normalized pointer location.
type PointerPosition struct {
	// X and Y are relative to the plot area origin.
	X, Y float64
	// ContainerX and ContainerY are relative to the root surface origin.
	ContainerX, ContainerY float64
	Touch                  bool
}

// Target is a single data point matched by a strategy.
type Target struct {
	SeriesID    string
	SeriesColor string
	// Record is the matched data record, by reference.
	Record any
	// Index is the record's position in the series data.
	Index int
	// X and Y are the record's pixel position in plot coordinates.
	X, Y float64
	// Distance is the pixel distance from the query point used to validate
	// the match (x-only or Euclidean depending on the lookup).
	Distance       float64
	SuppressMarker bool
}

// InteractionPayload is what a channel holds in State.Interactions.
type InteractionPayload struct {
	Pointer PointerPosition
	Targets []Target
	// Best is the closest of Targets, or nil when Targets is empty.
	Best *Target
	// FocusIndex is the keyboard focus position, or -1 for pointer input.
	FocusIndex int
}

// Common channel names.
const (
	ChannelHover     = "primary-hover"
	ChannelSelection = "selection"
)

func withInteraction(st *State, channel string, payload *InteractionPayload) *State {
	next := *st
	next.Interactions = make(map[string]*InteractionPayload, len(st.Interactions)+1)
	for k, v := range st.Interactions {
		next.Interactions[k] = v
	}
	next.Interactions[channel] = payload
	return &next
}

func withoutInteraction(st *State, channel string) *State {
	if _, ok := st.Interactions[channel]; !ok {
		return st
	}
	next := *st
	next.Interactions = make(map[string]*InteractionPayload, len(st.Interactions))
	for k, v := range st.Interactions {
		if k != channel {
			next.Interactions[k] = v
		}
	}
	return &next
}
