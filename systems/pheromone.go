// Package systems holds the pheromone field, the food registry, and the
// pure agent decision rules. The game package orchestrates them per tick.
package systems

import "math"

// GridKind selects one of the two scent grids.
type GridKind uint8

const (
	// HomeScent is deposited by searching ants as breadcrumbs back to
	// the colony and followed by carrying ants.
	HomeScent GridKind = iota
	// FoodScent is deposited by carrying ants on the way home and
	// followed by searching ants.
	FoodScent
)

// Field is a pair of independently-addressed scalar grids covering the
// world at one cell per unit. Every cell stays in [0, Max]; all
// operations are total, out-of-bounds access is a defined no-op or zero.
type Field struct {
	W, H int
	Max  float32

	home []float32
	food []float32

	// Scratch buffer for the separable blur
	tmp []float32
}

// NewField creates a zeroed field of w*h cells per grid.
func NewField(w, h int, max float32) *Field {
	return &Field{
		W: w, H: h,
		Max:  max,
		home: make([]float32, w*h),
		food: make([]float32, w*h),
		tmp:  make([]float32, w*h),
	}
}

// Grid returns the raw cell slice for a grid, indexed y*W+x.
// Callers treating it as read-only include the renderer and telemetry.
func (f *Field) Grid(kind GridKind) []float32 {
	if kind == HomeScent {
		return f.home
	}
	return f.food
}

// cellIndex floors world coordinates to a cell index.
// ok is false when the point lies outside the grid.
func (f *Field) cellIndex(x, y float32) (int, bool) {
	cx := int(math.Floor(float64(x)))
	cy := int(math.Floor(float64(y)))
	if cx < 0 || cx >= f.W || cy < 0 || cy >= f.H {
		return 0, false
	}
	return cy*f.W + cx, true
}

// Sample returns the cell value at the point's floored coordinates,
// or 0 for points outside the grid.
func (f *Field) Sample(x, y float32, kind GridKind) float32 {
	i, ok := f.cellIndex(x, y)
	if !ok {
		return 0
	}
	return f.Grid(kind)[i]
}

// Deposit adds amount to the addressed cell, saturating at Max.
// Points outside the grid are dropped, never wrapped or clamped inward.
func (f *Field) Deposit(x, y float32, kind GridKind, amount float32) {
	i, ok := f.cellIndex(x, y)
	if !ok {
		return
	}
	g := f.Grid(kind)
	v := g[i] + amount
	if v > f.Max {
		v = f.Max
	}
	if v < 0 {
		v = 0
	}
	g[i] = v
}

// Evaporate multiplies every cell of both grids by rate.
// Called once per tick with a rate just below 1.
func (f *Field) Evaporate(rate float32) {
	for i := range f.home {
		f.home[i] *= rate
	}
	for i := range f.food {
		f.food[i] *= rate
	}
}

// Diffuse applies an isotropic Gaussian blur with spread sigma to both
// grids. Edges are handled by reflection (mirroring the grid about each
// border), so total mass is approximately conserved even when trails
// accumulate near the walls. Run every diffusion interval, not every
// tick; the blur is by far the most expensive field operation.
func (f *Field) Diffuse(sigma float32) {
	kernel := gaussianKernel(sigma)
	f.convolveSeparable(f.home, kernel)
	f.convolveSeparable(f.food, kernel)
}

// gaussianKernel builds a normalized 1D Gaussian with radius round(4*sigma).
func gaussianKernel(sigma float32) []float32 {
	radius := int(4*float64(sigma) + 0.5)
	if radius < 1 {
		radius = 1
	}
	k := make([]float32, 2*radius+1)
	s2 := 2 * float64(sigma) * float64(sigma)
	var sum float64
	for i := -radius; i <= radius; i++ {
		w := math.Exp(-float64(i*i) / s2)
		k[i+radius] = float32(w)
		sum += w
	}
	for i := range k {
		k[i] = float32(float64(k[i]) / sum)
	}
	return k
}

// reflectIndex mirrors an out-of-range index back into [0, n).
func reflectIndex(i, n int) int {
	if i < 0 {
		i = -i - 1
	}
	if i >= n {
		i = 2*n - 1 - i
	}
	return i
}

// convolveSeparable blurs grid in place: horizontal pass into the
// scratch buffer, vertical pass back.
func (f *Field) convolveSeparable(grid, kernel []float32) {
	radius := len(kernel) / 2
	w, h := f.W, f.H

	for y := 0; y < h; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			var acc float32
			for k := -radius; k <= radius; k++ {
				acc += grid[row+reflectIndex(x+k, w)] * kernel[k+radius]
			}
			f.tmp[row+x] = acc
		}
	}

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			var acc float32
			for k := -radius; k <= radius; k++ {
				acc += f.tmp[reflectIndex(y+k, h)*w+x] * kernel[k+radius]
			}
			grid[y*w+x] = acc
		}
	}
}

// TotalMass sums every cell of a grid. Used by telemetry and the
// diffusion conservation tests.
func (f *Field) TotalMass(kind GridKind) float64 {
	var sum float64
	for _, v := range f.Grid(kind) {
		sum += float64(v)
	}
	return sum
}
