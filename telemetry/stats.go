// Package telemetry provides generation statistics, milestones, performance timing and run output.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// GenerationStats holds aggregated statistics for one generation.
type GenerationStats struct {
	Generation     int     `csv:"generation"`
	Ticks          int     `csv:"ticks"`
	AverageFitness float64 `csv:"average_fitness"`
	HighestFitness float64 `csv:"highest_fitness"`
	FitnessP50     float64 `csv:"fitness_p50"`
	FitnessP90     float64 `csv:"fitness_p90"`

	// Population at generation end
	Feeders       int `csv:"feeders"`
	FoodEaten     int `csv:"food_eaten"`
	FoodRemaining int `csv:"food_remaining"`

	// Events during the generation
	Perceptions  int     `csv:"perceptions"`
	Recognitions int     `csv:"recognitions"`
	Rejections   int     `csv:"rejections"`
	Reflections  int     `csv:"reflections"`
	Recognition  float64 `csv:"recognition_rate"`

	// Mean raw traits of the evaluated population
	MeanSpeed        float64 `csv:"mean_speed"`
	MeanEyesight     float64 `csv:"mean_eyesight"`
	MeanIntelligence float64 `csv:"mean_intelligence"`
}

// TraitMeans holds mean raw trait values across the population.
type TraitMeans struct {
	Speed        float64
	Eyesight     float64
	Intelligence float64
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeFitnessStats calculates mean and percentiles from fitness values.
func ComputeFitnessStats(values []float64) (mean, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return mean, Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("ticks", s.Ticks),
		slog.Float64("average_fitness", s.AverageFitness),
		slog.Float64("highest_fitness", s.HighestFitness),
		slog.Float64("fitness_p50", s.FitnessP50),
		slog.Float64("fitness_p90", s.FitnessP90),
		slog.Int("feeders", s.Feeders),
		slog.Int("food_eaten", s.FoodEaten),
		slog.Int("food_remaining", s.FoodRemaining),
		slog.Int("perceptions", s.Perceptions),
		slog.Int("recognitions", s.Recognitions),
		slog.Int("rejections", s.Rejections),
		slog.Int("reflections", s.Reflections),
		slog.Float64("recognition_rate", s.Recognition),
		slog.Float64("mean_speed", s.MeanSpeed),
		slog.Float64("mean_eyesight", s.MeanEyesight),
		slog.Float64("mean_intelligence", s.MeanIntelligence),
	)
}

// LogStats logs the generation stats using slog.
func (s GenerationStats) LogStats() {
	slog.Info("generation",
		"generation", s.Generation,
		"average_fitness", s.AverageFitness,
		"highest_fitness", s.HighestFitness,
		"fitness_p50", s.FitnessP50,
		"fitness_p90", s.FitnessP90,
		"feeders", s.Feeders,
		"food_eaten", s.FoodEaten,
		"food_remaining", s.FoodRemaining,
		"perceptions", s.Perceptions,
		"recognitions", s.Recognitions,
		"rejections", s.Rejections,
		"reflections", s.Reflections,
		"mean_speed", s.MeanSpeed,
		"mean_eyesight", s.MeanEyesight,
		"mean_intelligence", s.MeanIntelligence,
	)
}
