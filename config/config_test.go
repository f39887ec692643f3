package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.World.Width != 1280 || cfg.World.Height != 720 {
		t.Errorf("world = %dx%d, want 1280x720", cfg.World.Width, cfg.World.Height)
	}
	if cfg.Ants.Count != 200 {
		t.Errorf("ants.count = %d, want 200", cfg.Ants.Count)
	}
	if math.Abs(cfg.Ants.SensorAngle-math.Pi/4) > 1e-9 {
		t.Errorf("sensor_angle = %v, want pi/4", cfg.Ants.SensorAngle)
	}

	// Colony defaults to world center.
	if cfg.Colony.X != 640 || cfg.Colony.Y != 360 {
		t.Errorf("colony = (%v, %v), want (640, 360)", cfg.Colony.X, cfg.Colony.Y)
	}

	// Startup sources inherit the default amount.
	if len(cfg.Food.Sources) != 4 {
		t.Fatalf("len(food.sources) = %d, want 4", len(cfg.Food.Sources))
	}
	for i, src := range cfg.Food.Sources {
		if src.Amount != cfg.Food.DefaultAmount {
			t.Errorf("sources[%d].amount = %d, want %d", i, src.Amount, cfg.Food.DefaultAmount)
		}
	}
}

func TestLoadOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	override := "ants:\n  count: 50\n  speed: 2.0\n"
	if err := os.WriteFile(path, []byte(override), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Ants.Count != 50 {
		t.Errorf("ants.count = %d, want 50", cfg.Ants.Count)
	}
	if cfg.Ants.Speed != 2.0 {
		t.Errorf("ants.speed = %v, want 2.0", cfg.Ants.Speed)
	}
	// Untouched fields keep their defaults.
	if cfg.Pheromone.Max != 1000.0 {
		t.Errorf("pheromone.max = %v, want 1000", cfg.Pheromone.Max)
	}
}

func TestValidateRejects(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load(\"\") failed: %v", err)
		}
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero speed", func(c *Config) { c.Ants.Speed = 0 }, "ants.speed"},
		{"negative speed", func(c *Config) { c.Ants.Speed = -1 }, "ants.speed"},
		{"zero pickup radius", func(c *Config) { c.Ants.PickupRadius = 0 }, "ants.pickup_radius"},
		{"zero capture radius", func(c *Config) { c.Colony.CaptureRadius = 0 }, "colony.capture_radius"},
		{"zero ants", func(c *Config) { c.Ants.Count = 0 }, "ants.count"},
		{"zero sensor distance", func(c *Config) { c.Ants.SensorDistance = 0 }, "ants.sensor_distance"},
		{"evaporation one", func(c *Config) { c.Pheromone.EvaporationRate = 1.0 }, "pheromone.evaporation_rate"},
		{"evaporation zero", func(c *Config) { c.Pheromone.EvaporationRate = 0 }, "pheromone.evaporation_rate"},
		{"zero diffusion interval", func(c *Config) { c.Pheromone.DiffusionInterval = 0 }, "pheromone.diffusion_interval"},
		{"zero max pheromone", func(c *Config) { c.Pheromone.Max = 0 }, "pheromone.max"},
		{"zero patience", func(c *Config) { c.Ants.MaxPatience = 0 }, "ants.max_patience"},
		{"zero panic duration", func(c *Config) { c.Ants.PanicDuration = 0 }, "ants.panic_duration"},
		{"margin swallows world", func(c *Config) { c.Ants.BoundaryMargin = 1000 }, "ants.boundary_margin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not mention %q", err, tt.field)
			}
		})
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults failed validation: %v", err)
	}
}
