package config

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"

	yaml "github.com/goccy/go-yaml"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	ModePNG   = "png"
	ModeTable = "table"
	ModeCSV   = "csv"
)

// DefaultPalette is the pastel palette used when none is configured.
var DefaultPalette = []string{
	"#FFA987", "#E54B4B", "#F7EBE8", "#457EAC",
	"#FF00FF", "#008B8B", "#B8860B", "#006400",
}

// Config mirrors schedgantt.yml
type Config struct {
	Cores   int      `yaml:"cores"`   // 4 (by default)
	Mode    string   `yaml:"mode"`    // png, table or csv
	Output  string   `yaml:"output"`  // "" = gantt.png for png, stdout otherwise
	Palette []string `yaml:"palette"` // hex colours, indexed by pid
	Chart   Chart    `yaml:"chart"`
}

// Chart holds the geometry and colours of the png chart.
type Chart struct {
	SlotWidth  int    `yaml:"slot_width"` // px per time slot
	RowHeight  int    `yaml:"row_height"` // px per core row
	MaxWidth   int    `yaml:"max_width"`  // slot width shrinks to fit
	Background string `yaml:"background"`
	Grid       string `yaml:"grid"`
	Foreground string `yaml:"foreground"`
}

// If the config file is not found, we use default values
func defaultConfig() Config {
	return Config{
		Cores:   4,
		Mode:    ModePNG,
		Palette: append([]string(nil), DefaultPalette...),
		Chart:   defaultChart(),
	}
}

func defaultChart() Chart {
	return Chart{
		SlotWidth:  40,
		RowHeight:  44,
		MaxWidth:   8192,
		Background: "#1E1E24",
		Grid:       "#5A5A66",
		Foreground: "#FFFFFF",
	}
}

// Default returns the configuration used when no file is given.
func Default() Config { return defaultConfig() }

// Load reads YAML and overrides defaults; empty path or missing file = defaults only.
func Load(path string) (Config, error) {
	cfg := defaultConfig()

	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.clamp()
	return cfg, cfg.Validate()
}

// sanity clamps
func (cfg *Config) clamp() {
	def := defaultChart()
	if cfg.Cores <= 0 {
		cfg.Cores = 4
	}
	if cfg.Mode == "" {
		cfg.Mode = ModePNG
	}
	if len(cfg.Palette) == 0 {
		cfg.Palette = append([]string(nil), DefaultPalette...)
	}
	if cfg.Chart.SlotWidth <= 0 {
		cfg.Chart.SlotWidth = def.SlotWidth
	}
	if cfg.Chart.RowHeight <= 0 {
		cfg.Chart.RowHeight = def.RowHeight
	}
	if cfg.Chart.MaxWidth <= 0 {
		cfg.Chart.MaxWidth = def.MaxWidth
	}
	if cfg.Chart.Background == "" {
		cfg.Chart.Background = def.Background
	}
	if cfg.Chart.Grid == "" {
		cfg.Chart.Grid = def.Grid
	}
	if cfg.Chart.Foreground == "" {
		cfg.Chart.Foreground = def.Foreground
	}
}

// Validate checks the values that cannot be clamped.
func (cfg Config) Validate() error {
	switch cfg.Mode {
	case ModePNG, ModeTable, ModeCSV:
	default:
		return fmt.Errorf("unknown mode %q (want %s, %s or %s)", cfg.Mode, ModePNG, ModeTable, ModeCSV)
	}
	if _, err := cfg.Colors(); err != nil {
		return err
	}
	for _, c := range []string{cfg.Chart.Background, cfg.Chart.Grid, cfg.Chart.Foreground} {
		if _, err := ParseColor(c); err != nil {
			return err
		}
	}
	return nil
}

// OutputPath returns where the chart is written; "" means stdout.
func (cfg Config) OutputPath() string {
	if cfg.Output == "-" {
		return ""
	}
	if cfg.Output == "" && cfg.Mode == ModePNG {
		return "gantt.png"
	}
	return cfg.Output
}

// Colors parses the palette.
func (cfg Config) Colors() ([]color.RGBA, error) {
	out := make([]color.RGBA, 0, len(cfg.Palette))
	for _, hex := range cfg.Palette {
		c, err := ParseColor(hex)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// ParseColor parses a "#RRGGBB" or "#RGB" string into an opaque colour.
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}
