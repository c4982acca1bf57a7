package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/phanxgames/chartsense"
	"github.com/phanxgames/chartsense/internal/dataload"
	"github.com/phanxgames/chartsense/internal/observability"
)

var version = "0.3.0"

// app holds the flags shared by every subcommand.
type app struct {
	configPath string
	dataPath   string
	where      string
	debug      bool
	log        observability.Config
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}
	root := &cobra.Command{
		Use:          "chartsense",
		Short:        "Drive chart interactions from the command line",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.logger = observability.New(a.log, zapcore.Lock(os.Stderr))
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.SetVersionTemplate("chartsense {{ .Version }}\n")

	f := root.PersistentFlags()
	f.StringVarP(&a.configPath, "config", "c", "", "chart config (TOML)")
	f.StringVarP(&a.dataPath, "data", "d", "", "records file (.json, .xlsx)")
	f.StringVar(&a.where, "where", "", "gjson path for JSON data or sheet name for XLSX")
	f.BoolVar(&a.debug, "debug", false, "log every dispatched event")
	f.StringVar(&a.log.Level, "log-level", "info", "debug, info, warn or error")
	f.StringVar(&a.log.Format, "log-format", "console", "console or json")
	f.StringVar(&a.log.File, "log-file", "", "also write JSON logs to this rotated file")
	a.log.MaxSize, a.log.MaxBackups, a.log.MaxAge = 10, 3, 28
	a.log.Name = "chartsense"

	root.AddCommand(replayCmd(a), inspectCmd(a), viewCmd(a))
	return root
}

// seriesEntry is one [[series]] table in the config file.
type seriesEntry struct {
	ID             string `toml:"id"`
	Label          string `toml:"label"`
	Color          string `toml:"color"`
	Type           string `toml:"type"`
	X              string `toml:"x"`
	Y              string `toml:"y"`
	Mode           string `toml:"mode"`
	HideCursor     bool   `toml:"hide_cursor"`
	SuppressMarker bool   `toml:"suppress_marker"`
}

type seriesFile struct {
	Series []seriesEntry `toml:"series"`
}

const (
	defaultWidth  = 640
	defaultHeight = 400
)

func (e seriesEntry) config() (chartsense.SeriesConfig, error) {
	t, err := chartsense.ParseChartType(e.Type)
	if err != nil {
		return chartsense.SeriesConfig{}, fmt.Errorf("series %q: %w", e.ID, err)
	}
	mode := chartsense.InteractionMode(e.Mode)
	switch mode {
	case "", chartsense.ModeX, chartsense.ModeXY:
	default:
		return chartsense.SeriesConfig{}, fmt.Errorf("series %q: unknown mode %q", e.ID, e.Mode)
	}
	sc := chartsense.SeriesConfig{
		ID:              e.ID,
		Label:           e.Label,
		Color:           e.Color,
		Type:            t,
		HideCursor:      e.HideCursor,
		InteractionMode: mode,
		SuppressMarker:  e.SuppressMarker,
	}
	if e.X != "" {
		sc.X = chartsense.ByKey(e.X)
	}
	if e.Y != "" {
		sc.Y = chartsense.ByKey(e.Y)
	}
	return sc, nil
}

// loadChart builds a chart from the config and data flags. Without a config
// the defaults are used; without [[series]] one series named "main" plots
// the chart-level accessors.
func (a *app) loadChart(opts ...chartsense.Option) (*chartsense.Chart, error) {
	cfg := chartsense.DefaultConfig()
	var sf seriesFile
	if a.configPath != "" {
		var err error
		if cfg, err = chartsense.LoadConfig(a.configPath); err != nil {
			return nil, err
		}
		if _, err := toml.DecodeFile(a.configPath, &sf); err != nil {
			return nil, fmt.Errorf("load series %s: %w", a.configPath, err)
		}
	}
	if cfg.Width <= 0 {
		cfg.Width = defaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = defaultHeight
	}
	cfg.Debug = cfg.Debug || a.debug

	var records []any
	if a.dataPath != "" {
		var err error
		if records, err = dataload.File(a.dataPath, a.where); err != nil {
			return nil, err
		}
		a.logger.Debug("loaded records", zap.String("path", a.dataPath), zap.Int("count", len(records)))
	}

	configs := []chartsense.SeriesConfig{{ID: "main"}}
	if len(sf.Series) > 0 {
		configs = configs[:0]
		for _, e := range sf.Series {
			sc, err := e.config()
			if err != nil {
				return nil, err
			}
			configs = append(configs, sc)
		}
	}

	opts = append([]chartsense.Option{chartsense.WithLogger(a.logger), chartsense.WithData(records)}, opts...)
	chart := chartsense.NewChart(cfg, opts...)
	chart.RegisterSeries("config", configs)
	return chart, nil
}

// headless is a surface with no drawn elements, used when no host renders
// the chart.
type headless struct {
	width, height float64
}

func (h headless) Bounds() chartsense.Rect {
	return chartsense.Rect{Width: h.width, Height: h.height}
}

func (headless) Query(string) []chartsense.Element { return nil }
