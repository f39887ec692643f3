package systems

import "testing"

func TestTryPickupFirstMatchWins(t *testing.T) {
	var store FoodStore
	store.Add(10, 10, 5)
	store.Add(12, 10, 5) // also within radius of the probe point

	idx, ok := store.TryPickup(11, 10, 10)
	if !ok {
		t.Fatal("TryPickup = false, want pickup")
	}
	if idx != 0 {
		t.Errorf("picked source %d, want 0 (registration order)", idx)
	}
	if got := store.Sources()[0].Amount; got != 4 {
		t.Errorf("sources[0].Amount = %d, want 4", got)
	}
	if got := store.Sources()[1].Amount; got != 5 {
		t.Errorf("sources[1].Amount = %d, want untouched 5", got)
	}
}

func TestTryPickupSkipsEmptySources(t *testing.T) {
	var store FoodStore
	store.Add(10, 10, 0)
	store.Add(12, 10, 3)

	idx, ok := store.TryPickup(11, 10, 10)
	if !ok || idx != 1 {
		t.Fatalf("TryPickup = (%d, %v), want (1, true)", idx, ok)
	}
	// The empty source is inert, never decremented below zero.
	if got := store.Sources()[0].Amount; got != 0 {
		t.Errorf("empty source amount = %d, want 0", got)
	}
}

func TestTryPickupRespectsRadius(t *testing.T) {
	var store FoodStore
	store.Add(100, 100, 10)

	if _, ok := store.TryPickup(100, 111, 10); ok {
		t.Error("picked up a source outside the pickup radius")
	}
	if _, ok := store.TryPickup(100, 109, 10); !ok {
		t.Error("failed to pick up a source inside the pickup radius")
	}
}

func TestTryPickupDepletesToZero(t *testing.T) {
	var store FoodStore
	store.Add(50, 50, 2)

	for i := 0; i < 5; i++ {
		store.TryPickup(50, 50, 10)
	}
	if got := store.Sources()[0].Amount; got != 0 {
		t.Errorf("amount = %d after over-draining, want 0", got)
	}
	if got := store.Remaining(); got != 0 {
		t.Errorf("Remaining = %d, want 0", got)
	}
}

func TestColonyQueries(t *testing.T) {
	c := Colony{X: 100, Y: 100, CaptureRadius: 20}

	if !c.Contains(110, 100) {
		t.Error("Contains(110, 100) = false, want true")
	}
	if c.Contains(100, 121) {
		t.Error("Contains(100, 121) = true, want false")
	}
	// Bearing from due west of the colony points east (angle 0).
	if b := c.Bearing(50, 100); b != 0 {
		t.Errorf("Bearing from west = %v, want 0", b)
	}
}
