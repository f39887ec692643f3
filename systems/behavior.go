package systems

import (
	"math"
	"math/rand"

	"github.com/stigmerge/antfarm/components"
)

// Params holds the agent constants in the float32 form the tick loop
// wants. Built once from config at game construction.
type Params struct {
	Speed          float32
	RotationStep   float32
	SensorAngle    float32
	SensorDistance float32
	WanderStrength float32
	NestGravity    float32
	TrailThreshold float32
	MaxPatience    int32
	PanicDuration  int32
	PickupRadius   float32
	DepositAmount  float32
	BoundaryMargin float32
	WorldW, WorldH float32
}

// NormalizeAngle wraps an angle into (-pi, pi]. Headings are normalized
// after every mutation so they never drift unbounded.
func NormalizeAngle(a float32) float32 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// AngleDiff returns the signed wrapped difference a-b in (-pi, pi].
func AngleDiff(a, b float32) float32 {
	return NormalizeAngle(a - b)
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// Samples holds the three scent readings an ant takes each tick.
type Samples struct {
	Ahead, Left, Right float32
}

// Sense reads the relevant grid at three points a sensor distance out:
// along the heading and at heading +- the sensor angle. Reads past the
// grid edge come back as zero, same as any out-of-bounds sample.
func Sense(f *Field, kind GridKind, x, y, heading float32, p *Params) Samples {
	at := func(angle float32) float32 {
		sx := x + p.SensorDistance*float32(math.Cos(float64(angle)))
		sy := y + p.SensorDistance*float32(math.Sin(float64(angle)))
		return f.Sample(sx, sy, kind)
	}
	return Samples{
		Ahead: at(heading),
		Left:  at(heading - p.SensorAngle),
		Right: at(heading + p.SensorAngle),
	}
}

// SteerSearching returns the new heading for a searching ant. Ahead
// strictly largest means stay the course with a small random wander;
// a stronger side rotates toward that side by one rotation step; any
// tie (including all-zero) falls back to the same random wander, so an
// ant with no information explores.
func SteerSearching(heading float32, s Samples, rng *rand.Rand, p *Params) float32 {
	switch {
	case s.Ahead > s.Left && s.Ahead > s.Right:
		heading += wander(rng, p.WanderStrength)
	case s.Left > s.Right:
		heading -= p.RotationStep
	case s.Right > s.Left:
		heading += p.RotationStep
	default:
		heading += wander(rng, p.WanderStrength)
	}
	return NormalizeAngle(heading)
}

// SteerCarrying returns the new heading for an ant hauling food home.
// Each candidate direction scores scent plus agreement with the colony
// bearing ("nest gravity"); precedence matches SteerSearching. The tie
// fallback is deliberately directional rather than random: the ant
// turns a rotation-step fraction of the way toward the colony.
func SteerCarrying(heading float32, s Samples, colonyBearing float32, rng *rand.Rand, p *Params) float32 {
	confidence := func(scent, candidate float32) float32 {
		diff := absf(AngleDiff(candidate, colonyBearing))
		return scent + (math.Pi-diff)*p.NestGravity
	}
	ahead := confidence(s.Ahead, heading)
	left := confidence(s.Left, heading-p.SensorAngle)
	right := confidence(s.Right, heading+p.SensorAngle)

	switch {
	case ahead > left && ahead > right:
		heading += wander(rng, p.WanderStrength)
	case left > right:
		heading -= p.RotationStep
	case right > left:
		heading += p.RotationStep
	default:
		heading += AngleDiff(colonyBearing, heading) * p.RotationStep
	}
	return NormalizeAngle(heading)
}

// UpdatePatience applies the per-tick fatigue bookkeeping. On-trail
// ticks drain patience by 1; off-trail ticks recover 2 up to the cap.
// Hitting zero trips the panic override: the timer is armed and
// patience resets. Returns true on the tick panic is entered.
func UpdatePatience(ant *components.Ant, onTrail bool, p *Params) bool {
	if onTrail {
		ant.Patience--
	} else {
		ant.Patience += 2
		if ant.Patience > p.MaxPatience {
			ant.Patience = p.MaxPatience
		}
	}
	if ant.Patience <= 0 {
		ant.PanicTimer = p.PanicDuration
		ant.Patience = p.MaxPatience
		return true
	}
	return false
}

// PanicHeading perturbs the heading at double the normal wander
// magnitude. While panicking an ant ignores all sensing.
func PanicHeading(heading float32, rng *rand.Rand, p *Params) float32 {
	return NormalizeAngle(heading + wander(rng, 2*p.WanderStrength))
}

// Move advances a position along the heading at the fixed speed.
func Move(pos *components.Position, heading float32, p *Params) {
	pos.X += p.Speed * float32(math.Cos(float64(heading)))
	pos.Y += p.Speed * float32(math.Sin(float64(heading)))
}

// HandleBoundaries keeps ants inside the inset play rectangle. An ant
// that crossed it is clamped back in and turned around with a jitter
// so it does not stick to the wall. Returns true on a bounce.
func HandleBoundaries(pos *components.Position, rot *components.Rotation, rng *rand.Rand, p *Params) bool {
	minX, maxX := p.BoundaryMargin, p.WorldW-p.BoundaryMargin
	minY, maxY := p.BoundaryMargin, p.WorldH-p.BoundaryMargin

	if pos.X > minX && pos.X < maxX && pos.Y > minY && pos.Y < maxY {
		return false
	}
	pos.X = clamp(pos.X, minX, maxX)
	pos.Y = clamp(pos.Y, minY, maxY)
	rot.Heading = NormalizeAngle(rot.Heading + math.Pi + wander(rng, 0.5))
	return true
}

// wander returns a uniform random value in (-strength, strength).
func wander(rng *rand.Rand, strength float32) float32 {
	return (rng.Float32()*2 - 1) * strength
}

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
