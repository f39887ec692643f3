// Package telemetry aggregates per-window foraging statistics.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one stats window.
type WindowStats struct {
	WindowStartTick int64 `csv:"-"`
	WindowEndTick   int64 `csv:"window_end"`

	// Population snapshot at window end
	AntCount  int `csv:"ants"`
	Searching int `csv:"searching"`
	Carrying  int `csv:"carrying"`
	Panicking int `csv:"panicking"`

	// Events during the window
	Pickups     int `csv:"pickups"`
	Deliveries  int `csv:"deliveries"`
	Panics      int `csv:"panics"`
	WallBounces int `csv:"wall_bounces"`
	FoodAdded   int `csv:"food_added"`

	// Patience distribution (sampled at window end)
	PatienceMean float64 `csv:"patience_mean"`
	PatienceStd  float64 `csv:"patience_std"`
	PatienceP10  float64 `csv:"patience_p10"`
	PatienceP50  float64 `csv:"patience_p50"`
	PatienceP90  float64 `csv:"patience_p90"`

	// Field totals
	HomeFieldMass float64 `csv:"home_field_mass"`
	FoodFieldMass float64 `csv:"food_field_mass"`

	// Remaining food across all sources
	FoodRemaining int64 `csv:"food_remaining"`
}

// Distribution summarizes a sample with mean, spread and percentiles.
type Distribution struct {
	Mean, Std, P10, P50, P90 float64
}

// Summarize computes the distribution of a sample. Empty samples yield
// zeros; the standard deviation of a single-element sample is 0.
func Summarize(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	d := Distribution{
		Mean: stat.Mean(sorted, nil),
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
	if len(sorted) > 1 {
		d.Std = stat.StdDev(sorted, nil)
	}
	return d
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Int("ants", s.AntCount),
		slog.Int("searching", s.Searching),
		slog.Int("carrying", s.Carrying),
		slog.Int("panicking", s.Panicking),
		slog.Int("pickups", s.Pickups),
		slog.Int("deliveries", s.Deliveries),
		slog.Int("panics", s.Panics),
		slog.Int("wall_bounces", s.WallBounces),
		slog.Int("food_added", s.FoodAdded),
		slog.Float64("patience_mean", s.PatienceMean),
		slog.Float64("patience_std", s.PatienceStd),
		slog.Float64("patience_p10", s.PatienceP10),
		slog.Float64("patience_p50", s.PatienceP50),
		slog.Float64("patience_p90", s.PatienceP90),
		slog.Float64("home_field_mass", s.HomeFieldMass),
		slog.Float64("food_field_mass", s.FoodFieldMass),
		slog.Int64("food_remaining", s.FoodRemaining),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
