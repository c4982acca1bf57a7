package chartsense

import "fmt"

// SeriesConfig is the raw description a host registers for one series.
// Zero fields fall back to chart-level defaults during hydration.
type SeriesConfig struct {
	ID    string
	Label string
	Color string
	Type  ChartType
	// Data overrides the chart's shared dataset for this series.
	Data []any
	X    Accessor
	Y    Accessor
	Size Accessor

	HideCursor      bool
	InteractionMode InteractionMode
	// SuppressMarker asks hosts not to draw a point marker for matches
	// (bar series, for example).
	SuppressMarker bool
}

// Series is one hydrated, drawable data series with its assigned strategy.
type Series struct {
	ID    string
	Label string
	Color string
	Type  ChartType
	Data  []any
	X     Accessor
	Y     Accessor
	Size  Accessor

	HideCursor      bool
	InteractionMode InteractionMode
	SuppressMarker  bool

	// Strategy is selected once at hydration and never nil for hydrated
	// series.
	Strategy Strategy

	config SeriesConfig
	index  int
}

// hydrateDefaults carries the chart-level values a config falls back to.
type hydrateDefaults struct {
	data []any
	x, y Accessor
	typ  ChartType
}

// hydrateSeries turns cfg into a Series. index is the series' global position
// and drives the default label and color; local is its position within the
// registration.
func hydrateSeries(registryID string, local, index int, cfg SeriesConfig, def hydrateDefaults) *Series {
	s := &Series{
		ID:              cfg.ID,
		Label:           cfg.Label,
		Color:           cfg.Color,
		Type:            cfg.Type,
		Data:            cfg.Data,
		X:               cfg.X,
		Y:               cfg.Y,
		Size:            cfg.Size,
		HideCursor:      cfg.HideCursor,
		InteractionMode: cfg.InteractionMode,
		SuppressMarker:  cfg.SuppressMarker,
		config:          cfg,
		index:           index,
	}
	if s.ID == "" {
		s.ID = fmt.Sprintf("%s-%d", registryID, local)
	}
	if s.Label == "" {
		s.Label = fmt.Sprintf("Series %d", index+1)
	}
	if s.Color == "" {
		s.Color = PaletteColor(index)
	}
	if s.Type == "" {
		s.Type = def.typ
	}
	if s.Data == nil {
		s.Data = def.data
	}
	if !s.X.Valid() {
		s.X = def.x
	}
	if !s.Y.Valid() {
		s.Y = def.y
	}
	if s.InteractionMode == "" {
		s.InteractionMode = ModeX
		if s.Type.twoDimensional() {
			s.InteractionMode = ModeXY
		}
	}
	if s.Type == ChartBar {
		s.SuppressMarker = true
	}
	s.Strategy = selectStrategy(s)
	return s
}

// registerSeries returns a new state with configs hydrated under registryID.
// Re-registration replaces the previous entry and keeps its position.
func registerSeries(st *State, registryID string, configs []SeriesConfig, def hydrateDefaults) *State {
	next := *st

	order := st.SeriesOrder
	known := false
	for _, id := range order {
		if id == registryID {
			known = true
			break
		}
	}
	if !known {
		order = append(append([]string(nil), order...), registryID)
	}

	offset := 0
	for _, id := range order {
		if id == registryID {
			break
		}
		offset += len(st.Series[id])
	}

	hydrated := make([]*Series, len(configs))
	for i, cfg := range configs {
		hydrated[i] = hydrateSeries(registryID, i, offset+i, cfg, def)
	}

	next.Series = make(map[string][]*Series, len(st.Series)+1)
	for k, v := range st.Series {
		next.Series[k] = v
	}
	next.Series[registryID] = hydrated
	next.SeriesOrder = order
	reindexSeries(next.Series, order)
	next.ProcessedSeries = flattenSeries(next.Series, order)
	return &next
}

// unregisterSeries returns st unchanged when registryID is unknown.
func unregisterSeries(st *State, registryID string) *State {
	if _, ok := st.Series[registryID]; !ok {
		return st
	}
	next := *st
	next.Series = make(map[string][]*Series, len(st.Series))
	for k, v := range st.Series {
		if k != registryID {
			next.Series[k] = v
		}
	}
	next.SeriesOrder = make([]string, 0, len(st.SeriesOrder))
	for _, id := range st.SeriesOrder {
		if id != registryID {
			next.SeriesOrder = append(next.SeriesOrder, id)
		}
	}
	reindexSeries(next.Series, next.SeriesOrder)
	next.ProcessedSeries = flattenSeries(next.Series, next.SeriesOrder)
	return &next
}

// rehydrateAll rebuilds every registered series against new defaults, used
// when the chart's data, accessors, or type change.
func rehydrateAll(st *State, configs map[string][]SeriesConfig, def hydrateDefaults) *State {
	next := *st
	next.Series = make(map[string][]*Series, len(st.Series))
	offset := 0
	for _, id := range st.SeriesOrder {
		cfgs := configs[id]
		hydrated := make([]*Series, len(cfgs))
		for i, cfg := range cfgs {
			hydrated[i] = hydrateSeries(id, i, offset+i, cfg, def)
		}
		offset += len(cfgs)
		next.Series[id] = hydrated
	}
	next.ProcessedSeries = flattenSeries(next.Series, st.SeriesOrder)
	return &next
}

// reindexSeries refreshes the index-derived defaults of every series whose
// global position moved. Moved series are copied with a fresh strategy;
// series, which must be a map owned by the caller, gets new slices for them.
func reindexSeries(series map[string][]*Series, order []string) {
	index := 0
	for _, id := range order {
		list := series[id]
		var out []*Series
		for i, s := range list {
			if s.index != index {
				if out == nil {
					out = append([]*Series(nil), list...)
				}
				moved := *s
				moved.index = index
				if s.config.Label == "" {
					moved.Label = fmt.Sprintf("Series %d", index+1)
				}
				if s.config.Color == "" {
					moved.Color = PaletteColor(index)
				}
				moved.Strategy = selectStrategy(&moved)
				out[i] = &moved
			}
			index++
		}
		if out != nil {
			series[id] = out
		}
	}
}

func flattenSeries(series map[string][]*Series, order []string) []*Series {
	var out []*Series
	for _, id := range order {
		out = append(out, series[id]...)
	}
	return out
}
