package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/feeders/genetics"
)

func TestCollectorFlush(t *testing.T) {
	c := NewCollector()
	for i := 0; i < 100; i++ {
		c.RecordTick()
	}
	for i := 0; i < 8; i++ {
		c.RecordPerception()
	}
	for i := 0; i < 6; i++ {
		c.RecordRecognition()
	}
	c.RecordMeal()
	c.RecordMeal()
	c.RecordRejection()
	c.RecordReflection()
	c.RecordReflection()
	c.RecordReflection()

	if c.Meals() != 2 {
		t.Errorf("Meals() = %d, want 2", c.Meals())
	}

	rec := genetics.GenerationRecord{Generation: 4, AverageFitness: 0.5, HighestFitness: 2}
	stats := c.Flush(rec, []float64{0, 0, 2, 0}, 248, TraitMeans{Speed: 7, Eyesight: 8, Intelligence: 9})

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"Generation", float64(stats.Generation), 4},
		{"Ticks", float64(stats.Ticks), 100},
		{"AverageFitness", stats.AverageFitness, 0.5},
		{"HighestFitness", stats.HighestFitness, 2},
		{"Feeders", float64(stats.Feeders), 4},
		{"FoodEaten", float64(stats.FoodEaten), 2},
		{"FoodRemaining", float64(stats.FoodRemaining), 248},
		{"Perceptions", float64(stats.Perceptions), 8},
		{"Recognitions", float64(stats.Recognitions), 6},
		{"Rejections", float64(stats.Rejections), 1},
		{"Reflections", float64(stats.Reflections), 3},
		{"Recognition", stats.Recognition, 0.75},
		{"MeanIntelligence", stats.MeanIntelligence, 9},
	}
	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 0.001 {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	// Counters reset after flush.
	next := c.Flush(genetics.GenerationRecord{Generation: 5}, nil, 0, TraitMeans{})
	if next.Ticks != 0 || next.Perceptions != 0 || next.FoodEaten != 0 || next.Recognition != 0 {
		t.Errorf("second flush = %+v, want zero counters", next)
	}
}
