package chartsense

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestDebugModeLogsDispatch(t *testing.T) {
	logger, logs := observedLogger()
	c := readyLineChart(t, WithLogger(logger))
	c.SetDebugMode(true)

	c.InjectMove(50, 50)
	c.InjectMove(60, 50)

	entries := logs.FilterMessage("dispatch").All()
	if len(entries) != 2 {
		t.Fatalf("dispatch entries = %d, want 2", len(entries))
	}
	fields := entries[1].ContextMap()
	if fields["event"] != string(EventPointerMove) {
		t.Errorf("event = %v", fields["event"])
	}
	if fields["events"] != int64(2) || fields["channels"] != int64(1) || fields["targets"] != int64(1) {
		t.Errorf("fields = %v", fields)
	}
	if fields["chart"] != c.ID() {
		t.Errorf("chart field = %v, want %s", fields["chart"], c.ID())
	}
}

func TestReleaseModeDoesNotLogDispatch(t *testing.T) {
	logger, logs := observedLogger()
	c := readyLineChart(t, WithLogger(logger))
	c.InjectMove(50, 50)
	if n := logs.FilterMessage("dispatch").Len(); n != 0 {
		t.Errorf("dispatch entries = %d in release mode", n)
	}

	c.SetDebugMode(true)
	c.InjectMove(50, 50)
	c.SetDebugMode(false)
	if c.stats.events != 0 {
		t.Errorf("stats not reset: %+v", c.stats)
	}
}

func TestDebugCheckStrategiesWarnsOnCategoricalBinaryX(t *testing.T) {
	logger, logs := observedLogger()
	data := make([]any, 60)
	for i := range data {
		data[i] = map[string]any{"x": float64(i), "y": 1.0}
	}
	cfg := testConfig(ChartLine)
	cfg.Debug = true
	c := NewChart(cfg, WithLogger(logger), WithData(data))

	// A categorical shared x with a numeric series x keeps binary-x on a
	// point scale.
	c.SetData([]any{map[string]any{"x": "a", "y": 1.0}})
	c.RegisterSeries("s", []SeriesConfig{{Data: data}})

	if n := logs.FilterLevelExact(zapcore.WarnLevel).Len(); n != 1 {
		t.Errorf("warnings = %d, want 1", n)
	}
}

func TestFailLogsError(t *testing.T) {
	logger, logs := observedLogger()
	c := NewChart(testConfig(ChartLine), WithLogger(logger))
	c.Fail(ErrUnknownChartType)
	if n := logs.FilterMessage("chart failed").Len(); n != 1 {
		t.Errorf("error entries = %d, want 1", n)
	}
}
