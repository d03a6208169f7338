package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded board.yaml does not parse: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded default = %+v, expected %+v", cfg, Default())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("embedded default is invalid: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	data := []byte("board:\n  width: 10\n  height: 8\npathfinding:\n  mode: four\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Board.Width != 10 || cfg.Board.Height != 8 {
		t.Errorf("board size = %dx%d, expected 10x8", cfg.Board.Width, cfg.Board.Height)
	}
	if cfg.Pathfinding.Mode != "four" {
		t.Errorf("mode = %q, expected four", cfg.Pathfinding.Mode)
	}
	// Unset keys keep defaults.
	if cfg.Placement.MaxSearchRadius != 64 || cfg.Board.CellSize != 1.0 {
		t.Errorf("defaults not preserved: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("board: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("pathfinding:\n  mode: hex\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(dir, "nope.yaml")},
		{"malformed", bad},
		{"invalid", invalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.path); err == nil {
				t.Errorf("Load(%s) should fail", tt.name)
			}
		})
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	// Nothing on disk: embedded default.
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, expected embedded default", cfg)
	}

	userDir := filepath.Join(home, ".strategyboard")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, "board.yaml"), []byte("board:\n  width: 12\n  height: 12\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Board.Width != 12 {
		t.Errorf("user config not picked up: width = %d", cfg.Board.Width)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"default", func(*Config) {}, true},
		{"unbounded", func(c *Config) { c.Board.Width, c.Board.Height = 0, 0 }, true},
		{"negative width", func(c *Config) { c.Board.Width = -1 }, false},
		{"half bounded", func(c *Config) { c.Board.Height = 0 }, false},
		{"zero cell size", func(c *Config) { c.Board.CellSize = 0 }, false},
		{"negative radius", func(c *Config) { c.Placement.MaxSearchRadius = -1 }, false},
		{"unknown mode", func(c *Config) { c.Pathfinding.Mode = "diagonal" }, false},
		{"zero iterations", func(c *Config) { c.Pathfinding.MaxIterations = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tt.valid {
				if err == nil {
					t.Error("Validate() = nil, expected error")
				} else if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
				}
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset SizePreset
		w, h   int
		ok     bool
	}{
		{SizeSmall, 16, 16, true},
		{SizeStandard, 32, 32, true},
		{SizeLarge, 64, 64, true},
		{SizeOpen, 0, 0, true},
		{"huge", 32, 32, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := Default()
			ok := ApplyPreset(&cfg, tt.preset)
			if ok != tt.ok {
				t.Errorf("ApplyPreset() = %v, expected %v", ok, tt.ok)
			}
			if cfg.Board.Width != tt.w || cfg.Board.Height != tt.h {
				t.Errorf("size = %dx%d, expected %dx%d", cfg.Board.Width, cfg.Board.Height, tt.w, tt.h)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset produced invalid config: %v", err)
			}
		})
	}
}
