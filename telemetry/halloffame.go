package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// DefaultHallOfFameSize is the number of chromosomes a hall keeps.
const DefaultHallOfFameSize = 10

// HallEntry is one remembered chromosome and the best fitness it scored.
type HallEntry struct {
	Chromosome string  `json:"chromosome"`
	Traits     string  `json:"traits,omitempty"`
	Fitness    float64 `json:"fitness"`
	Generation int     `json:"generation"`
}

// HallOfFame keeps the fittest distinct chromosomes seen over a run,
// sorted by descending fitness.
type HallOfFame struct {
	entries []HallEntry
	maxSize int
}

// NewHallOfFame creates an empty hall holding at most maxSize entries.
func NewHallOfFame(maxSize int) *HallOfFame {
	if maxSize < 1 {
		maxSize = DefaultHallOfFameSize
	}
	return &HallOfFame{
		entries: make([]HallEntry, 0, maxSize),
		maxSize: maxSize,
	}
}

// Consider offers an evaluated chromosome to the hall.
// A chromosome already present only moves if it scored higher.
// Returns true if the hall changed.
func (hof *HallOfFame) Consider(entry HallEntry) bool {
	if entry.Fitness <= 0 {
		return false
	}

	for i, e := range hof.entries {
		if e.Chromosome != entry.Chromosome {
			continue
		}
		if entry.Fitness <= e.Fitness {
			return false
		}
		hof.entries = append(hof.entries[:i], hof.entries[i+1:]...)
		break
	}

	// Find insertion point (sorted descending by fitness, ties keep the elder)
	idx := sort.Search(len(hof.entries), func(i int) bool {
		return hof.entries[i].Fitness < entry.Fitness
	})
	if idx >= hof.maxSize {
		return false
	}

	hof.entries = append(hof.entries, HallEntry{})
	copy(hof.entries[idx+1:], hof.entries[idx:])
	hof.entries[idx] = entry

	if len(hof.entries) > hof.maxSize {
		hof.entries = hof.entries[:hof.maxSize]
	}
	return true
}

// Entries returns a copy of the hall, best first.
func (hof *HallOfFame) Entries() []HallEntry {
	out := make([]HallEntry, len(hof.entries))
	copy(out, hof.entries)
	return out
}

// Size returns the number of entries.
func (hof *HallOfFame) Size() int {
	return len(hof.entries)
}

// TopFitness returns the highest fitness in the hall, or 0 when empty.
func (hof *HallOfFame) TopFitness() float64 {
	if len(hof.entries) == 0 {
		return 0
	}
	return hof.entries[0].Fitness
}

// Reset empties the hall.
func (hof *HallOfFame) Reset() {
	hof.entries = hof.entries[:0]
}

// Save writes the hall as indented JSON.
func (hof *HallOfFame) Save(path string) error {
	data, err := json.MarshalIndent(hof.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding hall of fame: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing hall of fame: %w", err)
	}
	return nil
}
