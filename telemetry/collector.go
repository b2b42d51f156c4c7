package telemetry

import "github.com/pthm-cable/feeders/genetics"

// Collector accumulates events within a generation and produces GenerationStats.
type Collector struct {
	ticks int

	// Event counters for the current generation
	perceptions  int
	recognitions int
	meals        int
	rejections   int
	reflections  int
}

// NewCollector creates a new stats collector.
func NewCollector() *Collector {
	return &Collector{}
}

// RecordTick records one simulation tick.
func (c *Collector) RecordTick() {
	c.ticks++
}

// RecordPerception records an agent perceiving food.
func (c *Collector) RecordPerception() {
	c.perceptions++
}

// RecordRecognition records perceived food being recognised and observed.
func (c *Collector) RecordRecognition() {
	c.recognitions++
}

// RecordMeal records food being eaten.
func (c *Collector) RecordMeal() {
	c.meals++
}

// RecordRejection records an agent reaching food and failing to recognise it.
func (c *Collector) RecordRejection() {
	c.rejections++
}

// RecordReflection records an agent turning back from an edge.
func (c *Collector) RecordReflection() {
	c.reflections++
}

// Meals returns the number of meals recorded since the last flush.
func (c *Collector) Meals() int {
	return c.meals
}

// Reset discards all counters.
func (c *Collector) Reset() {
	*c = Collector{}
}

// Flush produces GenerationStats and resets counters for the next generation.
// The caller must provide:
// - rec: the record returned by evaluating the generation
// - fitness: raw fitness per population member, for percentiles
// - foodRemaining: active food left at generation end
// - means: mean raw traits of the evaluated population
func (c *Collector) Flush(rec genetics.GenerationRecord, fitness []float64, foodRemaining int, means TraitMeans) GenerationStats {
	_, p50, p90 := ComputeFitnessStats(fitness)

	var recognition float64
	if c.perceptions > 0 {
		recognition = float64(c.recognitions) / float64(c.perceptions)
	}

	stats := GenerationStats{
		Generation:     rec.Generation,
		Ticks:          c.ticks,
		AverageFitness: rec.AverageFitness,
		HighestFitness: rec.HighestFitness,
		FitnessP50:     p50,
		FitnessP90:     p90,

		Feeders:       len(fitness),
		FoodEaten:     c.meals,
		FoodRemaining: foodRemaining,

		Perceptions:  c.perceptions,
		Recognitions: c.recognitions,
		Rejections:   c.rejections,
		Reflections:  c.reflections,
		Recognition:  recognition,

		MeanSpeed:        means.Speed,
		MeanEyesight:     means.Eyesight,
		MeanIntelligence: means.Intelligence,
	}

	c.Reset()
	return stats
}
