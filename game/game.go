// Package game runs the ant colony simulation: it owns the ECS world,
// the pheromone field, the food registry, and the tick loop, and in
// graphical mode the raylib rendering and input.
package game

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/stigmerge/antfarm/components"
	"github.com/stigmerge/antfarm/config"
	"github.com/stigmerge/antfarm/systems"
	"github.com/stigmerge/antfarm/telemetry"
)

// Options holds per-run settings that are not part of the config file.
type Options struct {
	Seed           int64
	Headless       bool
	LogStats       bool
	StepsPerUpdate int
	OutputDir      string
}

// Game holds the complete simulation state.
type Game struct {
	cfg  *config.Config
	opts Options
	rng  *rand.Rand

	world  ecs.World
	mapper *ecs.Map3[components.Position, components.Rotation, components.Ant]
	filter *ecs.Filter3[components.Position, components.Rotation, components.Ant]

	field  *systems.Field
	foods  systems.FoodStore
	colony systems.Colony
	params systems.Params

	collector *telemetry.Collector
	output    *telemetry.OutputManager

	tick           int64
	paused         bool
	stepsPerUpdate int
	showField      bool

	// Rendering state, created lazily on the first Draw so headless
	// runs never touch raylib.
	render *renderState
}

// NewGame creates a simulation from a validated config.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	if opts.StepsPerUpdate < 1 {
		opts.StepsPerUpdate = 1
	}

	world := ecs.NewWorld()
	g := &Game{
		cfg:            cfg,
		opts:           opts,
		rng:            rand.New(rand.NewSource(opts.Seed)),
		world:          world,
		stepsPerUpdate: opts.StepsPerUpdate,
		showField:      true,
	}
	g.mapper = ecs.NewMap3[components.Position, components.Rotation, components.Ant](&g.world)
	g.filter = ecs.NewFilter3[components.Position, components.Rotation, components.Ant](&g.world)

	g.field = systems.NewField(cfg.World.Width, cfg.World.Height, float32(cfg.Pheromone.Max))
	g.colony = systems.Colony{
		X:             float32(cfg.Colony.X),
		Y:             float32(cfg.Colony.Y),
		CaptureRadius: float32(cfg.Colony.CaptureRadius),
	}
	g.params = systems.Params{
		Speed:          float32(cfg.Ants.Speed),
		RotationStep:   float32(cfg.Ants.RotationStep),
		SensorAngle:    float32(cfg.Ants.SensorAngle),
		SensorDistance: float32(cfg.Ants.SensorDistance),
		WanderStrength: float32(cfg.Ants.WanderStrength),
		NestGravity:    float32(cfg.Ants.NestGravity),
		TrailThreshold: float32(cfg.Pheromone.TrailThreshold),
		MaxPatience:    int32(cfg.Ants.MaxPatience),
		PanicDuration:  int32(cfg.Ants.PanicDuration),
		PickupRadius:   float32(cfg.Ants.PickupRadius),
		DepositAmount:  float32(cfg.Pheromone.DepositAmount),
		BoundaryMargin: float32(cfg.Ants.BoundaryMargin),
		WorldW:         float32(cfg.World.Width),
		WorldH:         float32(cfg.World.Height),
	}

	for _, src := range cfg.Food.Sources {
		g.foods.Add(float32(src.X), float32(src.Y), int32(src.Amount))
	}

	g.collector = telemetry.NewCollector(cfg.Telemetry.WindowTicks)

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("setting up output: %w", err)
	}
	g.output = output
	if err := g.output.WriteConfig(cfg); err != nil {
		return nil, err
	}

	g.spawnAnts()
	return g, nil
}

// spawnAnts creates the colony population at the nest with random
// headings. Ants are never destroyed, so entity creation order fixes
// the per-tick update order for the lifetime of the run.
func (g *Game) spawnAnts() {
	for i := 0; i < g.cfg.Ants.Count; i++ {
		pos := components.Position{X: g.colony.X, Y: g.colony.Y}
		rot := components.Rotation{
			Heading: systems.NormalizeAngle(g.rng.Float32() * 2 * math.Pi),
		}
		ant := components.Ant{
			State:    components.Searching,
			Patience: g.params.MaxPatience,
		}
		g.mapper.NewEntity(&pos, &rot, &ant)
	}
}

// Update runs one frame in graphical mode: input, then zero or more
// simulation steps depending on pause state and speed.
func (g *Game) Update() {
	g.handleInput()
	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// UpdateHeadless runs simulation steps with no input or rendering.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// AddFoodSource registers a new food source with the default amount.
// This is the only external mutation path besides the tick loop.
func (g *Game) AddFoodSource(x, y float32) {
	g.foods.Add(x, y, int32(g.cfg.Food.DefaultAmount))
	g.collector.RecordFoodAdded()
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int64 {
	return g.tick
}

// Foods returns the food registry in registration order. Read-only.
func (g *Game) Foods() []systems.FoodSource {
	return g.foods.Sources()
}

// ColonyPos returns the colony position.
func (g *Game) ColonyPos() (float32, float32) {
	return g.colony.X, g.colony.Y
}

// Field returns the pheromone field. Read-only for callers; the tick
// loop is the only writer.
func (g *Game) Field() *systems.Field {
	return g.field
}

// VisitAnts calls fn for every ant in update order with its position,
// heading and panic flag. Used by the renderer and by tests.
func (g *Game) VisitAnts(fn func(x, y, heading float32, panicking bool)) {
	query := g.filter.Query()
	for query.Next() {
		pos, rot, ant := query.Get()
		fn(pos.X, pos.Y, rot.Heading, ant.Panicking())
	}
}

// Close flushes telemetry output.
func (g *Game) Close() error {
	return g.output.Close()
}
