package genetics

import (
	"math"
	"math/rand"
	"testing"
)

func newTestEngine(seed int64) *Engine {
	return NewEngine(rand.New(rand.NewSource(seed)))
}

func TestInitialize(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		length   int
		wantSize int
		wantLen  int
	}{
		{"defaults", DefaultPopulationSize, DefaultChromosomeLength, 20, 12},
		{"capped", 900, 12, MaxPopulation, 12},
		{"negative size", -4, 12, 0, 12},
		{"zero length falls back", 5, 0, 5, DefaultChromosomeLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(1)
			e.Initialize(tt.size, tt.length)
			if e.Size() != tt.wantSize {
				t.Errorf("Size() = %d, want %d", e.Size(), tt.wantSize)
			}
			for i, g := range e.Population() {
				if g.Len() != tt.wantLen {
					t.Fatalf("member %d length = %d, want %d", i, g.Len(), tt.wantLen)
				}
			}
		})
	}
}

func TestEvaluateNormalizes(t *testing.T) {
	e := newTestEngine(2)
	e.Initialize(10, 12)

	e.Evaluate(func(i int, _ *Genotype) float64 { return float64(i + 1) })

	var sum float64
	for _, g := range e.Population() {
		sum += g.NormalizedFitness
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("sum of normalized fitness = %v, want 1", sum)
	}

	pop := e.Population()
	for i := 1; i < len(pop); i++ {
		if pop[i-1].RawFitness < pop[i].RawFitness {
			t.Fatalf("population not sorted descending at %d: %v < %v", i, pop[i-1].RawFitness, pop[i].RawFitness)
		}
	}
}

func TestEvaluateZeroTotal(t *testing.T) {
	e := newTestEngine(3)
	e.Initialize(8, 12)

	rec := e.Evaluate(func(int, *Genotype) float64 { return 0 })

	for i, g := range e.Population() {
		if g.NormalizedFitness != 0 {
			t.Errorf("member %d normalized = %v, want 0", i, g.NormalizedFitness)
		}
	}
	if rec.AverageFitness != 0 || rec.HighestFitness != 0 {
		t.Errorf("record = %+v, want zero fitness", rec)
	}

	// Selection still returns a member (the first).
	if got := e.Select(); got != e.Population()[0] {
		t.Errorf("Select() with zero total did not fall back to first member")
	}
}

func TestEvaluateRecord(t *testing.T) {
	e := newTestEngine(4)
	e.Initialize(20, 12)

	// Fitness 0..19: mean 9.5, max 19.
	rec := e.Evaluate(func(i int, _ *Genotype) float64 { return float64(i) })

	if rec.Generation != 1 {
		t.Errorf("Generation = %d, want 1", rec.Generation)
	}
	if math.Abs(rec.AverageFitness-9.5) > 0.001 {
		t.Errorf("AverageFitness = %v, want 9.5", rec.AverageFitness)
	}
	if rec.HighestFitness != 19 {
		t.Errorf("HighestFitness = %v, want 19", rec.HighestFitness)
	}

	rec2 := e.Evaluate(func(int, *Genotype) float64 { return 1 })
	if rec2.Generation != 2 {
		t.Errorf("second Generation = %d, want 2", rec2.Generation)
	}
	if len(e.Records()) != 2 {
		t.Errorf("len(Records()) = %d, want 2", len(e.Records()))
	}
}

func TestEvaluateEmpty(t *testing.T) {
	e := newTestEngine(5)
	e.Initialize(0, 12)

	rec := e.Evaluate(func(int, *Genotype) float64 { return 1 })
	if rec.AverageFitness != 0 || rec.HighestFitness != 0 {
		t.Errorf("empty record = %+v, want zeros", rec)
	}
	if e.Select() != nil {
		t.Error("Select() on empty population should be nil")
	}
}

func TestSelectCertain(t *testing.T) {
	e := newTestEngine(6)
	e.Initialize(5, 12)

	// Only member 3 has fitness, so it holds normalized fitness 1.0.
	e.Evaluate(func(i int, _ *Genotype) float64 {
		if i == 3 {
			return 7
		}
		return 0
	})
	want := e.Population()[0]
	if want.NormalizedFitness != 1 {
		t.Fatalf("top member normalized = %v, want 1", want.NormalizedFitness)
	}

	for i := 0; i < 100; i++ {
		if got := e.Select(); got != want {
			t.Fatalf("Select() iteration %d returned a zero-fitness member", i)
		}
	}
}

func TestMateWithoutCrossover(t *testing.T) {
	e := newTestEngine(7)
	g1 := NewGenotype(ParseChromosome("000000000000"))
	g2 := NewGenotype(ParseChromosome("111111111111"))

	for i := 0; i < 50; i++ {
		if got := e.Mate(g1, g2, 0); got != g1 {
			t.Fatalf("Mate(g1, g2, 0) did not return g1")
		}
	}
}

func TestMateAlwaysCrosses(t *testing.T) {
	e := newTestEngine(8)
	g1 := NewGenotype(ParseChromosome("000000000000"))
	g2 := NewGenotype(ParseChromosome("111111111111"))

	for i := 0; i < 50; i++ {
		child := e.Mate(g1, g2, 1)
		if child == g1 {
			t.Fatal("Mate(g1, g2, 1) returned g1")
		}
		// Point is in [1, 12): first bit from g1, last bit from g2.
		if child.Bit(0) || !child.Bit(11) {
			t.Fatalf("child %s does not straddle a crossover point", child)
		}
	}
}

func TestCrossoverEveryPoint(t *testing.T) {
	g1 := NewGenotype(ParseChromosome("101100111000"))
	g2 := NewGenotype(ParseChromosome("010011000111"))

	for c := 0; c <= g1.Len(); c++ {
		child := Crossover(g1, g2, c)
		for i := 0; i < child.Len(); i++ {
			want := g2.Bit(i)
			if i < c {
				want = g1.Bit(i)
			}
			if child.Bit(i) != want {
				t.Errorf("Crossover(c=%d) bit %d = %v, want %v", c, i, child.Bit(i), want)
			}
		}
		if child.RawFitness != 0 || child.NormalizedFitness != 0 {
			t.Errorf("Crossover(c=%d) child has fitness set", c)
		}
	}
}

func TestMutate(t *testing.T) {
	e := newTestEngine(9)
	g := NewGenotype(ParseChromosome("000000000000"))

	if got := e.Mutate(g, 0); got != g {
		t.Error("Mutate with probability 0 should return the same genotype")
	}

	flipped := e.Mutate(g, 1)
	if flipped.String() != "111111111111" {
		t.Errorf("Mutate with probability 1 = %s, want all ones", flipped)
	}
	if g.String() != "000000000000" {
		t.Errorf("Mutate changed the parent: %s", g)
	}
}

func TestNextGeneration(t *testing.T) {
	e := newTestEngine(10)
	e.Initialize(20, 12)
	e.Evaluate(func(i int, _ *Genotype) float64 { return float64(i % 4) })

	e.NextGeneration(DefaultCrossover, DefaultMutation)

	pop := e.Population()
	if len(pop) != 20 {
		t.Fatalf("len(population) = %d, want 20", len(pop))
	}
	seen := make(map[*Genotype]bool)
	for i, g := range pop {
		if seen[g] {
			t.Errorf("slot %d shares a genotype with another slot", i)
		}
		seen[g] = true
		if g.RawFitness != 0 {
			t.Errorf("slot %d RawFitness = %v, want 0", i, g.RawFitness)
		}
	}
}

func TestAdd(t *testing.T) {
	e := newTestEngine(11)
	e.Initialize(MaxPopulation-1, 12)

	if !e.Add(RandomGenotype(e.rng, 12)) {
		t.Fatal("Add below capacity returned false")
	}
	if e.Add(RandomGenotype(e.rng, 12)) {
		t.Error("Add at capacity returned true")
	}

	e.Initialize(1, 12)
	if e.Add(RandomGenotype(e.rng, 9)) {
		t.Error("Add with mismatched length returned true")
	}
}

func TestChromosomeImmutable(t *testing.T) {
	g := NewGenotype(ParseChromosome("1010"))
	c := g.Chromosome()
	c[0] = false
	if !g.Bit(0) {
		t.Error("modifying the returned chromosome changed the genotype")
	}
}

func TestTotalFitness(t *testing.T) {
	e := newTestEngine(12)
	e.Initialize(4, 12)

	if got := e.TotalFitness(); got != 0 {
		t.Errorf("TotalFitness() before Evaluate = %v, want 0", got)
	}

	e.Evaluate(func(i int, _ *Genotype) float64 { return float64(2 * i) })
	if got := e.TotalFitness(); got != 12 {
		t.Errorf("TotalFitness() = %v, want 12", got)
	}
}
