package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Width != 1000 || cfg.Height != 650 {
		t.Errorf("expected 1000x650 arena, got %vx%v", cfg.Width, cfg.Height)
	}
	if cfg.Particles != 10 {
		t.Errorf("expected 10 particles, got %d", cfg.Particles)
	}
	if cfg.Resolver != "axis-wise" {
		t.Errorf("expected axis-wise resolver, got %s", cfg.Resolver)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := "width: 400\nparticles: 3\npopulation:\n  mass_max: 20\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Width != 400 {
		t.Errorf("expected width 400, got %v", cfg.Width)
	}
	if cfg.Height != DefaultHeight {
		t.Errorf("expected default height, got %v", cfg.Height)
	}
	if cfg.Population.MassMax != 20 || cfg.Population.MassMin != DefaultMassMin {
		t.Errorf("unexpected mass range [%d, %d)", cfg.Population.MassMin, cfg.Population.MassMax)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.toml")
	data := "height = 300.0\nresolver = \"normal\"\n\n[[bodies]]\nx = 50.0\ny = 50.0\nvx = 1.0\nmass = 4.0\ncolor = \"red\"\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Height != 300 || cfg.Resolver != "normal" {
		t.Errorf("unexpected config: height=%v resolver=%s", cfg.Height, cfg.Resolver)
	}
	if len(cfg.Bodies) != 1 || cfg.Bodies[0].Mass != 4 {
		t.Errorf("expected one body of mass 4, got %+v", cfg.Bodies)
	}
	if cfg.ParticleCount() != 1 {
		t.Errorf("explicit bodies should set the count, got %d", cfg.ParticleCount())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, ext := range []string{".yaml", ".toml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cfg"+ext)
			cfg := GetPreset("head-on")
			cfg.Seed = 7

			if err := Save(path, cfg); err != nil {
				t.Fatalf("save failed: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}
			if got.Seed != 7 || len(got.Bodies) != 2 || got.Bodies[1].VX != -5 {
				t.Errorf("round trip lost data: %+v", got)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
		{"no steps", func(c *Config) { c.Steps = 0 }},
		{"no particles", func(c *Config) { c.Particles = 0 }},
		{"empty mass range", func(c *Config) { c.Population.MassMax = c.Population.MassMin }},
		{"zero mass", func(c *Config) { c.Population.MassMin = 0 }},
		{"negative speed", func(c *Config) { c.Population.SpeedMax = -1 }},
		{"huge margin", func(c *Config) { c.Population.Margin = 400 }},
		{"massless body", func(c *Config) { c.Bodies = []BodyConfig{{X: 1, Y: 1}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("head-on")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if len(cfg.Bodies) != 2 {
		t.Errorf("expected 2 bodies, got %d", len(cfg.Bodies))
	}

	cfg.Bodies[0].Mass = 99
	if Presets["head-on"].Bodies[0].Mass == 99 {
		t.Error("GetPreset should return an independent copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}
