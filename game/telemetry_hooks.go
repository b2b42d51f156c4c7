package game

import (
	"log/slog"

	"github.com/pthm-cable/feeders/genetics"
	"github.com/pthm-cable/feeders/telemetry"
	"github.com/pthm-cable/feeders/traits"
)

// flushTelemetry turns the finished generation into stats, writes and logs
// them and checks for milestones. chromosomes and g.fitness are indexed by
// pre-evaluation population order.
func (g *Game) flushTelemetry(rec genetics.GenerationRecord, chromosomes []string) {
	stats := g.collector.Flush(rec, g.fitness, g.NumFood(), g.traitMeans())
	perfStats := g.perfCollector.Stats()

	g.considerHallOfFame(rec.Generation, chromosomes)

	if g.onStats != nil {
		g.onStats(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteGeneration(stats); err != nil {
		slog.Error("failed to write generation stats", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, rec.Generation); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, m := range g.milestones.Check(stats) {
		if g.logStats {
			m.Log()
		}
		if g.onMilestone != nil {
			g.onMilestone(m)
		}
	}
}

// traitMeans averages raw traits over the live agents.
func (g *Game) traitMeans() telemetry.TraitMeans {
	var speed, eyesight, intelligence []float64

	query := g.feederFilter.Query()
	for query.Next() {
		tr, _ := query.Get()
		speed = append(speed, float64(tr.Speed))
		eyesight = append(eyesight, float64(tr.Eyesight))
		intelligence = append(intelligence, float64(tr.Intelligence))
	}

	return telemetry.TraitMeans{
		Speed:        telemetry.Mean(speed),
		Eyesight:     telemetry.Mean(eyesight),
		Intelligence: telemetry.Mean(intelligence),
	}
}

// considerHallOfFame offers every scored chromosome to the hall of fame.
func (g *Game) considerHallOfFame(generation int, chromosomes []string) {
	for i, c := range chromosomes {
		if i >= len(g.fitness) || g.fitness[i] <= 0 {
			continue
		}
		tr := traits.Decode(genetics.ParseChromosome(c), g.modifiers)
		g.hallOfFame.Consider(telemetry.HallEntry{
			Chromosome: c,
			Traits:     traits.Describe(tr),
			Fitness:    g.fitness[i],
			Generation: generation,
		})
	}
}
