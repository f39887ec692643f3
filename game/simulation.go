package game

import (
	"math"

	"github.com/stigmerge/antfarm/components"
	"github.com/stigmerge/antfarm/systems"
	"github.com/stigmerge/antfarm/telemetry"
)

// simulationStep advances the world by one tick: all ants in update
// order, then field evaporation, then the periodic diffusion pass.
// Ants see deposits made earlier in the same tick.
func (g *Game) simulationStep() {
	query := g.filter.Query()
	for query.Next() {
		pos, rot, ant := query.Get()
		g.updateAnt(pos, rot, ant)
	}

	g.field.Evaporate(float32(g.cfg.Pheromone.EvaporationRate))
	if g.tick%int64(g.cfg.Pheromone.DiffusionInterval) == 0 {
		g.field.Diffuse(float32(g.cfg.Pheromone.DiffusionSigma))
	}
	g.tick++

	if g.collector.ShouldFlush(g.tick) {
		stats := g.collector.Flush(g.tick, g.snapshot())
		if g.opts.LogStats {
			stats.LogStats()
		}
		g.output.WriteTelemetry(stats)
	}
}

// updateAnt runs one ant for one tick. A panicking ant skips sensing
// and steering entirely; it still moves and bounces, so panic entered
// this tick carries the ant away at full speed immediately.
func (g *Game) updateAnt(pos *components.Position, rot *components.Rotation, ant *components.Ant) {
	p := &g.params

	if ant.Panicking() {
		rot.Heading = systems.PanicHeading(rot.Heading, g.rng, p)
		systems.Move(pos, rot.Heading, p)
		if systems.HandleBoundaries(pos, rot, g.rng, p) {
			g.collector.RecordWallBounce()
		}
		ant.PanicTimer--
		return
	}

	kind := systems.FoodScent
	if ant.State == components.CarryingFood {
		kind = systems.HomeScent
	}
	samples := systems.Sense(g.field, kind, pos.X, pos.Y, rot.Heading, p)
	onTrail := samples.Ahead > p.TrailThreshold

	if ant.State == components.CarryingFood {
		bearing := g.colony.Bearing(pos.X, pos.Y)
		rot.Heading = systems.SteerCarrying(rot.Heading, samples, bearing, g.rng, p)
	} else {
		rot.Heading = systems.SteerSearching(rot.Heading, samples, g.rng, p)
	}

	if systems.UpdatePatience(ant, onTrail, p) {
		g.collector.RecordPanic()
	}

	systems.Move(pos, rot.Heading, p)
	if systems.HandleBoundaries(pos, rot, g.rng, p) {
		g.collector.RecordWallBounce()
	}

	g.interact(pos, rot, ant)
}

// interact applies the pickup/delivery rules and trail deposits after
// movement. The state switch runs once per tick, so a transition made
// here is not re-evaluated under the new state until the next tick.
func (g *Game) interact(pos *components.Position, rot *components.Rotation, ant *components.Ant) {
	p := &g.params

	switch ant.State {
	case components.Searching:
		if _, ok := g.foods.TryPickup(pos.X, pos.Y, p.PickupRadius); ok {
			ant.State = components.CarryingFood
			rot.Heading = systems.NormalizeAngle(rot.Heading + math.Pi)
			ant.Patience = p.MaxPatience
			g.collector.RecordPickup()
			return
		}
		// Breadcrumbs back toward the nest, at half strength.
		g.field.Deposit(pos.X, pos.Y, systems.HomeScent, p.DepositAmount/2)

	case components.CarryingFood:
		if g.colony.Contains(pos.X, pos.Y) {
			ant.State = components.Searching
			rot.Heading = systems.NormalizeAngle(rot.Heading + math.Pi)
			ant.Patience = p.MaxPatience
			g.collector.RecordDelivery()
			return
		}
		g.field.Deposit(pos.X, pos.Y, systems.FoodScent, p.DepositAmount)
	}
}

// snapshot samples the state the collector cannot see through events.
func (g *Game) snapshot() telemetry.Snapshot {
	snap := telemetry.Snapshot{
		HomeFieldMass: g.field.TotalMass(systems.HomeScent),
		FoodFieldMass: g.field.TotalMass(systems.FoodScent),
		FoodRemaining: g.foods.Remaining(),
	}
	query := g.filter.Query()
	for query.Next() {
		_, _, ant := query.Get()
		snap.AntCount++
		if ant.Panicking() {
			snap.Panicking++
		}
		switch ant.State {
		case components.CarryingFood:
			snap.Carrying++
		default:
			snap.Searching++
		}
		snap.Patience = append(snap.Patience, float64(ant.Patience))
	}
	return snap
}
