package systems

import (
	"math"
	"math/rand"
	"testing"
)

func TestSampleOutOfBoundsReturnsZero(t *testing.T) {
	f := NewField(64, 48, 1000)
	f.Deposit(10, 10, FoodScent, 500)

	tests := []struct {
		name string
		x, y float32
	}{
		{"negative x", -1, 10},
		{"negative y", 10, -0.5},
		{"x at width", 64, 10},
		{"y at height", 10, 48},
		{"far outside", 1e6, 1e6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, kind := range []GridKind{HomeScent, FoodScent} {
				if got := f.Sample(tt.x, tt.y, kind); got != 0 {
					t.Errorf("Sample(%v, %v, %d) = %v, want 0", tt.x, tt.y, kind, got)
				}
			}
		})
	}
}

func TestDepositOutOfBoundsIsDropped(t *testing.T) {
	f := NewField(32, 32, 1000)
	f.Deposit(-5, -5, HomeScent, 500)
	f.Deposit(40, 12, HomeScent, 500)

	// No silent wraparound or clamping into bounds: the grid stays empty
	// and sampling the deposit point still yields zero.
	if mass := f.TotalMass(HomeScent); mass != 0 {
		t.Errorf("TotalMass = %v after out-of-bounds deposits, want 0", mass)
	}
	if got := f.Sample(-5, -5, HomeScent); got != 0 {
		t.Errorf("Sample at dropped deposit point = %v, want 0", got)
	}
}

func TestDepositSaturates(t *testing.T) {
	f := NewField(16, 16, 1000)
	f.Deposit(3, 3, FoodScent, 600)
	f.Deposit(3.9, 3.9, FoodScent, 600) // same cell after flooring

	if got := f.Sample(3, 3, FoodScent); got != 1000 {
		t.Errorf("Sample = %v, want saturated 1000", got)
	}
}

func TestSampleFloorsCoordinates(t *testing.T) {
	f := NewField(16, 16, 1000)
	f.Deposit(5.7, 8.2, HomeScent, 100)

	if got := f.Sample(5.1, 8.9, HomeScent); got != 100 {
		t.Errorf("Sample in same cell = %v, want 100", got)
	}
	if got := f.Sample(6, 8, HomeScent); got != 0 {
		t.Errorf("Sample in neighbor cell = %v, want 0", got)
	}
}

func TestEvaporateIsMultiplicative(t *testing.T) {
	f := NewField(8, 8, 1000)
	f.Deposit(2, 2, HomeScent, 800)
	f.Deposit(5, 5, FoodScent, 400)

	const rate = 0.998
	const ticks = 50
	for i := 0; i < ticks; i++ {
		f.Evaporate(rate)
	}

	want := 800 * math.Pow(rate, ticks)
	if got := float64(f.Sample(2, 2, HomeScent)); math.Abs(got-want) > 1e-2 {
		t.Errorf("home cell = %v after %d ticks, want %v", got, ticks, want)
	}
	want = 400 * math.Pow(rate, ticks)
	if got := float64(f.Sample(5, 5, FoodScent)); math.Abs(got-want) > 1e-2 {
		t.Errorf("food cell = %v after %d ticks, want %v", got, ticks, want)
	}
}

func TestDiffuseConservesInteriorMass(t *testing.T) {
	f := NewField(64, 64, 1000)
	// Interior blob well away from the edges so reflection cannot bias the sum.
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		x := 20 + rng.Float32()*20
		y := 20 + rng.Float32()*20
		f.Deposit(x, y, FoodScent, rng.Float32()*800)
	}

	before := f.TotalMass(FoodScent)
	f.Diffuse(0.5)
	after := f.TotalMass(FoodScent)

	if rel := math.Abs(after-before) / before; rel > 1e-4 {
		t.Errorf("mass %v -> %v, relative drift %v", before, after, rel)
	}
}

func TestDiffuseSpreadsPeak(t *testing.T) {
	f := NewField(32, 32, 1000)
	f.Deposit(16, 16, HomeScent, 1000)

	f.Diffuse(0.5)

	peak := f.Sample(16, 16, HomeScent)
	if peak >= 1000 {
		t.Errorf("peak = %v, want < 1000 after blur", peak)
	}
	if n := f.Sample(17, 16, HomeScent); n <= 0 {
		t.Errorf("neighbor = %v, want > 0 after blur", n)
	}
	if n := f.Sample(16, 15, HomeScent); n <= 0 {
		t.Errorf("neighbor = %v, want > 0 after blur", n)
	}
}

func TestFieldStaysBounded(t *testing.T) {
	f := NewField(24, 24, 1000)
	rng := rand.New(rand.NewSource(3))

	for tick := 0; tick < 200; tick++ {
		for i := 0; i < 20; i++ {
			f.Deposit(rng.Float32()*24, rng.Float32()*24, HomeScent, 500)
			f.Deposit(rng.Float32()*24, rng.Float32()*24, FoodScent, 250)
		}
		f.Evaporate(0.998)
		if tick%5 == 0 {
			f.Diffuse(0.5)
		}
	}

	for _, kind := range []GridKind{HomeScent, FoodScent} {
		for i, v := range f.Grid(kind) {
			if v < 0 || v > 1000 {
				t.Fatalf("grid %d cell %d = %v, outside [0, 1000]", kind, i, v)
			}
		}
	}
}
