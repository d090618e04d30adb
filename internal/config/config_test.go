package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedgantt.yml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.yml")} {
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if cfg.Cores != 4 || cfg.Mode != ModePNG || len(cfg.Palette) != 8 {
			t.Fatalf("unexpected defaults: %+v", cfg)
		}
		if got := cfg.OutputPath(); got != "gantt.png" {
			t.Fatalf("expected gantt.png, got %q", got)
		}
	}
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
cores: 8
mode: table
palette: ["#000000", "#fff"]
chart:
  slot_width: 10
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.Cores != 8 || cfg.Mode != ModeTable || cfg.Chart.SlotWidth != 10 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Chart.RowHeight != 44 || cfg.Chart.Background != "#1E1E24" {
		t.Fatalf("unset chart keys must keep defaults: %+v", cfg.Chart)
	}
	if got := cfg.OutputPath(); got != "" {
		t.Fatalf("table mode defaults to stdout, got %q", got)
	}
	colors, err := cfg.Colors()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	want := []color.RGBA{{0, 0, 0, 0xff}, {0xff, 0xff, 0xff, 0xff}}
	if len(colors) != 2 || colors[0] != want[0] || colors[1] != want[1] {
		t.Fatalf("unexpected palette %v", colors)
	}
}

func TestLoad_Clamps(t *testing.T) {
	path := writeConfig(t, "cores: -2\npalette: []\nchart:\n  max_width: 0\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.Cores != 4 || len(cfg.Palette) != 8 || cfg.Chart.MaxWidth != 8192 {
		t.Fatalf("sanity clamps not applied: %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"yaml":    "cores: [1, 2\n",
		"mode":    "mode: svg\n",
		"palette": "palette: [\"red\"]\n",
		"grid":    "chart:\n  grid: \"#12\"\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Fatalf("expected error for %q", body)
			}
		})
	}
}

func TestOutputPath_Dash(t *testing.T) {
	cfg := Default()
	cfg.Output = "-"
	if got := cfg.OutputPath(); got != "" {
		t.Fatalf("expected stdout, got %q", got)
	}
}
