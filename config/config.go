// Package config provides configuration loading and validation for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
// A loaded Config is immutable for the lifetime of a run.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Colony    ColonyConfig    `yaml:"colony"`
	Ants      AntsConfig      `yaml:"ants"`
	Pheromone PheromoneConfig `yaml:"pheromone"`
	Food      FoodConfig      `yaml:"food"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds world dimensions.
// The pheromone grids cover the world at one cell per unit.
type WorldConfig struct {
	Width  int `yaml:"width"`  // 0 = use screen width
	Height int `yaml:"height"` // 0 = use screen height
}

// ColonyConfig holds the nest position and capture geometry.
type ColonyConfig struct {
	X             float64 `yaml:"x"` // 0 = world center
	Y             float64 `yaml:"y"` // 0 = world center
	CaptureRadius float64 `yaml:"capture_radius"`
}

// AntsConfig holds agent parameters.
type AntsConfig struct {
	Count          int     `yaml:"count"`
	Speed          float64 `yaml:"speed"`
	RotationStep   float64 `yaml:"rotation_step"`   // radians per steering correction
	SensorAngle    float64 `yaml:"sensor_angle"`    // radians off heading for side sensors
	SensorDistance float64 `yaml:"sensor_distance"` // world units ahead of the ant
	WanderStrength float64 `yaml:"wander_strength"` // max random heading perturbation
	NestGravity    float64 `yaml:"nest_gravity"`    // weight of colony bearing in return confidence
	MaxPatience    int     `yaml:"max_patience"`    // on-trail ticks before panic
	PanicDuration  int     `yaml:"panic_duration"`  // ticks spent panicking
	PickupRadius   float64 `yaml:"pickup_radius"`
	BoundaryMargin float64 `yaml:"boundary_margin"` // inset of the play rectangle
}

// PheromoneConfig holds field dynamics parameters.
type PheromoneConfig struct {
	EvaporationRate   float64 `yaml:"evaporation_rate"`   // per-tick multiplicative decay, in (0,1)
	DiffusionSigma    float64 `yaml:"diffusion_sigma"`    // Gaussian spread in cells
	DiffusionInterval int     `yaml:"diffusion_interval"` // ticks between diffusion passes
	Max               float64 `yaml:"max"`                // per-cell saturation cap
	DepositAmount     float64 `yaml:"deposit_amount"`     // full-strength deposit
	TrailThreshold    float64 `yaml:"trail_threshold"`    // ahead scent above this counts as on-trail
}

// FoodSourceConfig places one food source at startup.
type FoodSourceConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Amount int     `yaml:"amount"` // 0 = default_amount
}

// FoodConfig holds food source parameters.
type FoodConfig struct {
	DefaultAmount int                `yaml:"default_amount"`
	Sources       []FoodSourceConfig `yaml:"sources"`
}

// TelemetryConfig holds stats window parameters.
type TelemetryConfig struct {
	WindowTicks int `yaml:"window_ticks"`
}

// Load reads configuration from a YAML file, merging it over the embedded
// defaults, and validates the result. An empty path uses defaults only.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into the same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills values that derive from other fields.
func (c *Config) applyDefaults() {
	if c.World.Width == 0 {
		c.World.Width = c.Screen.Width
	}
	if c.World.Height == 0 {
		c.World.Height = c.Screen.Height
	}
	if c.Colony.X == 0 {
		c.Colony.X = float64(c.World.Width) / 2
	}
	if c.Colony.Y == 0 {
		c.Colony.Y = float64(c.World.Height) / 2
	}
	for i := range c.Food.Sources {
		if c.Food.Sources[i].Amount == 0 {
			c.Food.Sources[i].Amount = c.Food.DefaultAmount
		}
	}
}

// Validate rejects malformed configuration before the tick loop starts.
func (c *Config) Validate() error {
	check := func(ok bool, field, why string) error {
		if ok {
			return nil
		}
		return fmt.Errorf("config: %s %s", field, why)
	}

	checks := []error{
		check(c.World.Width > 0, "world.width", "must be positive"),
		check(c.World.Height > 0, "world.height", "must be positive"),
		check(c.Screen.TargetFPS > 0, "screen.target_fps", "must be positive"),
		check(c.Colony.CaptureRadius > 0, "colony.capture_radius", "must be positive"),
		check(c.Ants.Count > 0, "ants.count", "must be positive"),
		check(c.Ants.Speed > 0, "ants.speed", "must be positive"),
		check(c.Ants.RotationStep > 0, "ants.rotation_step", "must be positive"),
		check(c.Ants.SensorDistance > 0, "ants.sensor_distance", "must be positive"),
		check(c.Ants.SensorAngle > 0, "ants.sensor_angle", "must be positive"),
		check(c.Ants.WanderStrength >= 0, "ants.wander_strength", "must not be negative"),
		check(c.Ants.NestGravity >= 0, "ants.nest_gravity", "must not be negative"),
		check(c.Ants.MaxPatience > 0, "ants.max_patience", "must be positive"),
		check(c.Ants.PanicDuration > 0, "ants.panic_duration", "must be positive"),
		check(c.Ants.PickupRadius > 0, "ants.pickup_radius", "must be positive"),
		check(c.Ants.BoundaryMargin >= 0, "ants.boundary_margin", "must not be negative"),
		check(c.Ants.BoundaryMargin*2 < float64(c.World.Width), "ants.boundary_margin", "leaves no play area"),
		check(c.Ants.BoundaryMargin*2 < float64(c.World.Height), "ants.boundary_margin", "leaves no play area"),
		check(c.Pheromone.EvaporationRate > 0 && c.Pheromone.EvaporationRate < 1,
			"pheromone.evaporation_rate", "must be in (0, 1)"),
		check(c.Pheromone.DiffusionSigma > 0, "pheromone.diffusion_sigma", "must be positive"),
		check(c.Pheromone.DiffusionInterval > 0, "pheromone.diffusion_interval", "must be positive"),
		check(c.Pheromone.Max > 0, "pheromone.max", "must be positive"),
		check(c.Pheromone.DepositAmount > 0, "pheromone.deposit_amount", "must be positive"),
		check(c.Pheromone.TrailThreshold >= 0, "pheromone.trail_threshold", "must not be negative"),
		check(c.Food.DefaultAmount > 0, "food.default_amount", "must be positive"),
		check(c.Telemetry.WindowTicks > 0, "telemetry.window_ticks", "must be positive"),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	for i, src := range c.Food.Sources {
		if src.Amount < 0 {
			return fmt.Errorf("config: food.sources[%d].amount must not be negative", i)
		}
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
