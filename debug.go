package chartsense

import (
	"time"

	"go.uber.org/zap"
)

// debugStats holds dispatch timing and match counts.
// Only populated when the chart is in debug mode.
type debugStats struct {
	events       int
	lastDispatch time.Duration
	totalTime    time.Duration
	channels     int
	targetCount  int
	lastEvent    EventName
}

func (s *debugStats) record(name EventName, d time.Duration, st *State) {
	s.events++
	s.lastEvent = name
	s.lastDispatch = d
	s.totalTime += d
	s.channels = len(st.Interactions)
	s.targetCount = 0
	for _, p := range st.Interactions {
		if p != nil {
			s.targetCount += len(p.Targets)
		}
	}
}

// SetDebugMode enables or disables debug mode. When enabled, every dispatched
// event is timed and logged at debug level along with the number of active
// channels and matched targets.
func (c *Chart) SetDebugMode(enabled bool) {
	c.debug = enabled
	if !enabled {
		c.stats = debugStats{}
	}
}

// debugLog writes the stats for the last dispatch.
func (c *Chart) debugLog(ev ChartEvent) {
	if !c.debug {
		return
	}
	s := c.stats
	var avg time.Duration
	if s.events > 0 {
		avg = s.totalTime / time.Duration(s.events)
	}
	c.logger.Debug("dispatch",
		zap.String("event", string(ev.Name)),
		zap.Duration("took", s.lastDispatch),
		zap.Duration("avg", avg),
		zap.Int("events", s.events),
		zap.Int("channels", s.channels),
		zap.Int("targets", s.targetCount),
		zap.Float64("x", ev.Pointer.X),
		zap.Float64("y", ev.Pointer.Y),
	)
}

// debugCheckStrategies warns when a series is assigned a strategy that
// cannot use the current x scale efficiently.
func (c *Chart) debugCheckStrategies() {
	st := c.store.State()
	if st.Scales == nil {
		return
	}
	_, invertible := st.Scales.X.(Invertible)
	for _, s := range st.ProcessedSeries {
		if s.Strategy != nil && s.Strategy.Kind() == StrategyBinaryX && !invertible {
			c.logger.Warn("binary-x strategy on a categorical x scale falls back to scanning",
				zap.String("series", s.ID), zap.Int("points", len(s.Data)))
		}
	}
}
