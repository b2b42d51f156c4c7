package telemetry

import (
	"fmt"
	"log/slog"
)

// MilestoneType identifies the kind of milestone.
type MilestoneType string

const (
	MilestoneNewBest       MilestoneType = "new_best"
	MilestoneBreakthrough  MilestoneType = "breakthrough"
	MilestoneStagnation    MilestoneType = "stagnation"
	MilestoneFoodExhausted MilestoneType = "food_exhausted"
)

// Detector thresholds.
const (
	breakthroughFactor    = 1.5
	breakthroughMinAvg    = 1.0
	breakthroughMinWindow = 3
	stagnationGenerations = 25
)

// Milestone marks a notable generation.
type Milestone struct {
	Type        MilestoneType
	Generation  int
	Description string
}

// Log writes the milestone using slog.
func (m Milestone) Log() {
	slog.Info("milestone",
		"type", string(m.Type),
		"generation", m.Generation,
		"description", m.Description,
	)
}

// MilestoneDetector watches generation stats for notable changes.
type MilestoneDetector struct {
	// Rolling history of average fitness (circular buffer)
	history     []float64
	historySize int
	historyIdx  int
	historyFull bool

	best           float64
	seenAny        bool
	sinceBest      int
	stagnationSeen bool
}

// NewMilestoneDetector creates a detector averaging over historySize generations.
func NewMilestoneDetector(historySize int) *MilestoneDetector {
	if historySize < breakthroughMinWindow {
		historySize = breakthroughMinWindow
	}
	return &MilestoneDetector{
		history:     make([]float64, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest generation and returns any triggered milestones.
func (md *MilestoneDetector) Check(stats GenerationStats) []Milestone {
	var out []Milestone

	if m := md.checkNewBest(stats); m != nil {
		out = append(out, *m)
	}
	if m := md.checkBreakthrough(stats); m != nil {
		out = append(out, *m)
	}
	if m := md.checkStagnation(stats); m != nil {
		out = append(out, *m)
	}
	if stats.Feeders > 0 && stats.FoodRemaining == 0 {
		out = append(out, Milestone{
			Type:        MilestoneFoodExhausted,
			Generation:  stats.Generation,
			Description: fmt.Sprintf("All food eaten (%d meals)", stats.FoodEaten),
		})
	}

	md.addToHistory(stats.AverageFitness)
	return out
}

// Reset forgets all history.
func (md *MilestoneDetector) Reset() {
	*md = MilestoneDetector{
		history:     make([]float64, md.historySize),
		historySize: md.historySize,
	}
}

func (md *MilestoneDetector) addToHistory(avg float64) {
	md.history[md.historyIdx] = avg
	md.historyIdx = (md.historyIdx + 1) % md.historySize
	if md.historyIdx == 0 {
		md.historyFull = true
	}
}

func (md *MilestoneDetector) getHistory() []float64 {
	if md.historyFull {
		return md.history
	}
	return md.history[:md.historyIdx]
}

func (md *MilestoneDetector) checkNewBest(stats GenerationStats) *Milestone {
	if md.seenAny && stats.HighestFitness <= md.best {
		md.sinceBest++
		return nil
	}

	prev, first := md.best, !md.seenAny
	md.best = stats.HighestFitness
	md.seenAny = true
	md.sinceBest = 0
	md.stagnationSeen = false

	// The first generation sets the baseline.
	if first || stats.HighestFitness == 0 {
		return nil
	}
	return &Milestone{
		Type:        MilestoneNewBest,
		Generation:  stats.Generation,
		Description: fmt.Sprintf("Highest fitness %.0f beats %.0f", stats.HighestFitness, prev),
	}
}

func (md *MilestoneDetector) checkBreakthrough(stats GenerationStats) *Milestone {
	history := md.getHistory()
	if len(history) < breakthroughMinWindow {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h
	}
	avg := total / float64(len(history))
	if avg <= 0 {
		return nil
	}

	if stats.AverageFitness > avg*breakthroughFactor && stats.AverageFitness >= breakthroughMinAvg {
		return &Milestone{
			Type:        MilestoneBreakthrough,
			Generation:  stats.Generation,
			Description: fmt.Sprintf("Average fitness %.2f is %.1fx rolling average (%.2f)", stats.AverageFitness, stats.AverageFitness/avg, avg),
		}
	}
	return nil
}

func (md *MilestoneDetector) checkStagnation(stats GenerationStats) *Milestone {
	if md.stagnationSeen || md.sinceBest < stagnationGenerations {
		return nil
	}
	md.stagnationSeen = true
	return &Milestone{
		Type:        MilestoneStagnation,
		Generation:  stats.Generation,
		Description: fmt.Sprintf("No improvement on %.0f for %d generations", md.best, md.sinceBest),
	}
}
