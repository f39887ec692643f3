package telemetry

// Snapshot is the state the collector cannot observe through events,
// sampled by the caller at flush time.
type Snapshot struct {
	AntCount      int
	Searching     int
	Carrying      int
	Panicking     int
	Patience      []float64
	HomeFieldMass float64
	FoodFieldMass float64
	FoodRemaining int64
}

// Collector accumulates events within tick windows and produces
// WindowStats.
type Collector struct {
	windowTicks     int64
	windowStartTick int64

	pickups     int
	deliveries  int
	panics      int
	wallBounces int
	foodAdded   int
}

// NewCollector creates a collector flushing every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: int64(windowTicks)}
}

// RecordPickup records a searching ant picking up one unit of food.
func (c *Collector) RecordPickup() { c.pickups++ }

// RecordDelivery records a carrying ant reaching the colony.
func (c *Collector) RecordDelivery() { c.deliveries++ }

// RecordPanic records an ant entering panic.
func (c *Collector) RecordPanic() { c.panics++ }

// RecordWallBounce records a boundary bounce.
func (c *Collector) RecordWallBounce() { c.wallBounces++ }

// RecordFoodAdded records an externally injected food source.
func (c *Collector) RecordFoodAdded() { c.foodAdded++ }

// ShouldFlush reports whether the current window is complete.
func (c *Collector) ShouldFlush(tick int64) bool {
	return tick-c.windowStartTick >= c.windowTicks
}

// Flush produces the stats for the closing window and resets the
// counters for the next one.
func (c *Collector) Flush(tick int64, snap Snapshot) WindowStats {
	patience := Summarize(snap.Patience)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   tick,

		AntCount:  snap.AntCount,
		Searching: snap.Searching,
		Carrying:  snap.Carrying,
		Panicking: snap.Panicking,

		Pickups:     c.pickups,
		Deliveries:  c.deliveries,
		Panics:      c.panics,
		WallBounces: c.wallBounces,
		FoodAdded:   c.foodAdded,

		PatienceMean: patience.Mean,
		PatienceStd:  patience.Std,
		PatienceP10:  patience.P10,
		PatienceP50:  patience.P50,
		PatienceP90:  patience.P90,

		HomeFieldMass: snap.HomeFieldMass,
		FoodFieldMass: snap.FoodFieldMass,
		FoodRemaining: snap.FoodRemaining,
	}

	c.windowStartTick = tick
	c.pickups = 0
	c.deliveries = 0
	c.panics = 0
	c.wallBounces = 0
	c.foodAdded = 0

	return stats
}

// WindowTicks returns the window length in ticks.
func (c *Collector) WindowTicks() int64 {
	return c.windowTicks
}
