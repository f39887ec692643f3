package systems

import "math"

// FoodSource is a depletable pile of food. A source whose Amount has
// reached zero stays registered but is inert.
type FoodSource struct {
	X, Y   float32
	Amount int32
}

// Colony is the fixed capture point ants return food to.
type Colony struct {
	X, Y          float32
	CaptureRadius float32
}

// Contains reports whether a point is within the capture radius.
func (c Colony) Contains(x, y float32) bool {
	return dist(x, y, c.X, c.Y) < c.CaptureRadius
}

// Bearing returns the straight-line angle from (x, y) to the colony.
func (c Colony) Bearing(x, y float32) float32 {
	return float32(math.Atan2(float64(c.Y-y), float64(c.X-x)))
}

// FoodStore is the registry of food sources. Registration order is a
// behavioral contract: pickup scans stop at the first match.
type FoodStore struct {
	sources []FoodSource
}

// Add registers a new source and returns its index.
func (s *FoodStore) Add(x, y float32, amount int32) int {
	s.sources = append(s.sources, FoodSource{X: x, Y: y, Amount: amount})
	return len(s.sources) - 1
}

// Sources returns the registry in registration order. Read-only for
// the renderer; the pickup path goes through TryPickup.
func (s *FoodStore) Sources() []FoodSource {
	return s.sources
}

// Remaining sums the amounts of all sources.
func (s *FoodStore) Remaining() int64 {
	var sum int64
	for i := range s.sources {
		sum += int64(s.sources[i].Amount)
	}
	return sum
}

// TryPickup scans sources in registration order and decrements the
// first non-empty one within radius of (x, y). Returns the source
// index and true on a pickup. Amount never goes below zero: empty
// sources are skipped, not decremented.
func (s *FoodStore) TryPickup(x, y, radius float32) (int, bool) {
	for i := range s.sources {
		src := &s.sources[i]
		if src.Amount <= 0 {
			continue
		}
		if dist(x, y, src.X, src.Y) < radius {
			src.Amount--
			return i, true
		}
	}
	return 0, false
}

func dist(x1, y1, x2, y2 float32) float32 {
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	return float32(math.Hypot(dx, dy))
}
