package chartsense

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// TooltipConfig holds tooltip placement settings.
type TooltipConfig struct {
	Gap         float64 `toml:"gap"`
	TouchOffset float64 `toml:"touch_offset"`
	// Align is "right", "left" or "center".
	Align string `toml:"align"`
	// Duration is the follow animation length in seconds; zero snaps.
	Duration float64 `toml:"duration"`
}

// Config holds chart settings. The zero value is not useful; start from
// DefaultConfig or ParseConfig.
type Config struct {
	Type    ChartType `toml:"type"`
	Width   float64   `toml:"width"`
	Height  float64   `toml:"height"`
	Margins Margins   `toml:"margins"`

	// X and Y are chart-level accessor keys. WithAccessors overrides them.
	X string `toml:"x"`
	Y string `toml:"y"`

	// AllowEmptyData lets the chart become ready with positive dimensions
	// and no data.
	AllowEmptyData bool `toml:"allow_empty_data"`

	Tooltip TooltipConfig `toml:"tooltip"`
	Debug   bool          `toml:"debug"`
}

// DefaultConfig returns a line chart config with conventional margins.
func DefaultConfig() Config {
	return Config{
		Type:    ChartLine,
		Margins: Margins{Top: 20, Right: 20, Bottom: 30, Left: 40},
		X:       "x",
		Y:       "y",
		Tooltip: TooltipConfig{Gap: 12, TouchOffset: 40, Align: "right", Duration: 0.12},
	}
}

// ParseConfig decodes TOML over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a TOML config file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	if _, err := ParseChartType(string(c.Type)); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := parseAlign(c.Tooltip.Align); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("config: negative size %vx%v", c.Width, c.Height)
	}
	return nil
}

// TooltipAlign returns the parsed tooltip alignment, defaulting to right.
func (c Config) TooltipAlign() TooltipAlign {
	a, _ := parseAlign(c.Tooltip.Align)
	return a
}

func parseAlign(s string) (TooltipAlign, error) {
	switch s {
	case "", "right":
		return AlignRight, nil
	case "left":
		return AlignLeft, nil
	case "center":
		return AlignCenter, nil
	}
	return AlignRight, fmt.Errorf("unknown tooltip align %q", s)
}
