package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config should validate, got: %v", err)
	}

	if cfg.Start != 600 || cfg.Step != 1.5 || cfg.Canvas != 600 {
		t.Errorf("Expected 600/1.5/600, got %d/%v/%d", cfg.Start, cfg.Step, cfg.Canvas)
	}
	if len(cfg.Categories) != 2 || cfg.Categories[0] != "black" || cfg.Categories[1] != "white" {
		t.Errorf("Expected [black white], got %v", cfg.Categories)
	}
}

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "pixelspriter.yaml")

	configContent := `
source_root: "art"
categories: ["dark"]
output_dir: "out"
step: 2
anchor: "center"
fill: "transparent"
workers: 4
manifest: true
`
	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create test config: %v", err)
	}

	cfg, err := Load(configFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.SourceRoot != "art" {
		t.Errorf("Expected source_root 'art', got '%s'", cfg.SourceRoot)
	}
	if len(cfg.Categories) != 1 || cfg.Categories[0] != "dark" {
		t.Errorf("Expected categories [dark], got %v", cfg.Categories)
	}
	if cfg.Step != 2 {
		t.Errorf("Expected step 2, got %v", cfg.Step)
	}
	if cfg.Anchor != AnchorCenter {
		t.Errorf("Expected anchor center, got %s", cfg.Anchor)
	}
	if cfg.Workers != 4 || !cfg.Manifest {
		t.Errorf("Expected workers 4 and manifest on, got %d and %v", cfg.Workers, cfg.Manifest)
	}

	// Untouched keys keep their defaults
	if cfg.Start != DefaultStart || cfg.Suffix != DefaultSuffix {
		t.Errorf("Expected defaults for start and suffix, got %d and %q", cfg.Start, cfg.Suffix)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no categories", func(c *Config) { c.Categories = nil }},
		{"empty category", func(c *Config) { c.Categories = []string{""} }},
		{"zero start", func(c *Config) { c.Start = 0 }},
		{"step of one", func(c *Config) { c.Step = 1 }},
		{"canvas below start", func(c *Config) { c.Canvas = 100 }},
		{"no workers", func(c *Config) { c.Workers = 0 }},
		{"bad anchor", func(c *Config) { c.Anchor = "south" }},
		{"bad backend", func(c *Config) { c.Backend = "gimp" }},
		{"bad fill", func(c *Config) { c.Fill = "#12" }},
		{"empty suffix", func(c *Config) { c.Suffix = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Expected validation error")
			}
		})
	}
}

func TestPaths(t *testing.T) {
	cfg := Default()

	if got, want := cfg.SourceDir("black"), filepath.Join("600px", "black"); got != want {
		t.Errorf("SourceDir: expected %s, got %s", want, got)
	}
	if got, want := cfg.ScaledPath("foo", 437, ".png"), filepath.Join("scaled", "foo-437.png"); got != want {
		t.Errorf("ScaledPath: expected %s, got %s", want, got)
	}
	if got, want := cfg.TiledPath("foo", ".png"), filepath.Join("scaled", "foo-tiled.png"); got != want {
		t.Errorf("TiledPath: expected %s, got %s", want, got)
	}
	if got, want := cfg.ManifestPath("foo", ".png"), filepath.Join("scaled", "foo-tiled.png.json"); got != want {
		t.Errorf("ManifestPath: expected %s, got %s", want, got)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#fff", color.NRGBA{255, 255, 255, 255}},
		{"#000000", color.NRGBA{0, 0, 0, 255}},
		{"#10203040", color.NRGBA{0x10, 0x20, 0x30, 0x40}},
		{"transparent", color.NRGBA{}},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}

	if _, err := ParseColor("#zzzzzz"); err == nil {
		t.Error("Expected error for non-hex color")
	}
}
