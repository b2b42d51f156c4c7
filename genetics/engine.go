package genetics

import (
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Population limits and defaults.
const (
	MaxPopulation           = 500
	DefaultPopulationSize   = 20
	DefaultChromosomeLength = 12
	DefaultCrossover        = 0.7
	DefaultMutation         = 0.001
)

// GenerationRecord summarizes one evaluated generation.
type GenerationRecord struct {
	Generation     int     `csv:"generation"`
	AverageFitness float64 `csv:"average_fitness"`
	HighestFitness float64 `csv:"highest_fitness"`
}

// FitnessFunc returns the raw fitness of the i-th population member.
type FitnessFunc func(i int, g *Genotype) float64

// Engine owns a population and evolves it one generation at a time.
// The engine knows nothing about what the bits mean; fitness is supplied by
// the caller on every Evaluate.
type Engine struct {
	rng              *rand.Rand
	population       []*Genotype
	chromosomeLength int
	records          []GenerationRecord

	// scratch buffers reused across generations
	fitness    []float64
	cumulative []float64
}

// NewEngine creates an empty engine drawing randomness from rng.
func NewEngine(rng *rand.Rand) *Engine {
	return &Engine{
		rng:              rng,
		chromosomeLength: DefaultChromosomeLength,
	}
}

// Initialize replaces the population with size random genotypes of the given
// chromosome length and clears the generation records. size is clamped to
// [0, MaxPopulation]; a non-positive length falls back to the default.
func (e *Engine) Initialize(size, length int) {
	if size < 0 {
		size = 0
	}
	if size > MaxPopulation {
		size = MaxPopulation
	}
	if length <= 0 {
		length = DefaultChromosomeLength
	}

	e.chromosomeLength = length
	e.population = make([]*Genotype, size)
	for i := range e.population {
		e.population[i] = RandomGenotype(e.rng, length)
	}
	e.records = e.records[:0]
}

// Add appends g to the population. Returns false when the population is full
// or the chromosome length does not match.
func (e *Engine) Add(g *Genotype) bool {
	if len(e.population) >= MaxPopulation || g.Len() != e.chromosomeLength {
		return false
	}
	e.population = append(e.population, g)
	return true
}

// Population returns the current population in engine order.
// After Evaluate the order is descending raw fitness.
func (e *Engine) Population() []*Genotype {
	return e.population
}

// Size returns the population size.
func (e *Engine) Size() int {
	return len(e.population)
}

// ChromosomeLength returns the length of every chromosome in the population.
func (e *Engine) ChromosomeLength() int {
	return e.chromosomeLength
}

// Records returns the generation records in evaluation order.
func (e *Engine) Records() []GenerationRecord {
	out := make([]GenerationRecord, len(e.records))
	copy(out, e.records)
	return out
}

// Generation returns the number of evaluated generations.
func (e *Engine) Generation() int {
	return len(e.records)
}

// TotalFitness returns the sum of raw fitness over the population.
func (e *Engine) TotalFitness() float64 {
	e.fitness = e.fitness[:0]
	for _, g := range e.population {
		e.fitness = append(e.fitness, g.RawFitness)
	}
	return floats.Sum(e.fitness)
}

// Evaluate scores every member with fitnessOf, normalizes the scores, sorts
// the population by descending raw fitness and appends a generation record.
// fitnessOf is called with each member's index before sorting.
func (e *Engine) Evaluate(fitnessOf FitnessFunc) GenerationRecord {
	e.fitness = e.fitness[:0]
	for i, g := range e.population {
		g.RawFitness = fitnessOf(i, g)
		e.fitness = append(e.fitness, g.RawFitness)
	}

	total := floats.Sum(e.fitness)
	for _, g := range e.population {
		if total > 0 {
			g.NormalizedFitness = g.RawFitness / total
		} else {
			g.NormalizedFitness = 0
		}
	}

	sort.SliceStable(e.population, func(i, j int) bool {
		return e.population[i].RawFitness > e.population[j].RawFitness
	})

	rec := GenerationRecord{Generation: len(e.records) + 1}
	if len(e.fitness) > 0 {
		rec.AverageFitness = stat.Mean(e.fitness, nil)
		rec.HighestFitness = floats.Max(e.fitness)
	}
	e.records = append(e.records, rec)
	return rec
}

// Select picks a member by roulette wheel over normalized fitness: the first
// member whose cumulative normalized fitness exceeds u ~ U(0,1). When no
// member qualifies (for example every fitness is zero) the first member is
// returned. Returns nil for an empty population.
func (e *Engine) Select() *Genotype {
	if len(e.population) == 0 {
		return nil
	}

	e.cumulative = e.cumulative[:0]
	for _, g := range e.population {
		e.cumulative = append(e.cumulative, g.NormalizedFitness)
	}
	floats.CumSum(e.cumulative, e.cumulative)

	u := e.rng.Float64()
	for i, c := range e.cumulative {
		if c > u {
			return e.population[i]
		}
	}
	return e.population[0]
}

// Mate crosses g1 and g2 at a uniform point in [1, length) with probability
// crossoverProbability. Otherwise g1 itself is returned.
func (e *Engine) Mate(g1, g2 *Genotype, crossoverProbability float64) *Genotype {
	if g1.Len() < 2 {
		return g1
	}
	if e.rng.Float64() < crossoverProbability {
		point := 1 + e.rng.Intn(g1.Len()-1)
		return Crossover(g1, g2, point)
	}
	return g1
}

// Mutate flips each bit of g independently with probability
// mutationProbability. Returns a new genotype if any bit flipped, g otherwise.
func (e *Engine) Mutate(g *Genotype, mutationProbability float64) *Genotype {
	var c Chromosome
	for i := 0; i < g.Len(); i++ {
		if e.rng.Float64() < mutationProbability {
			if c == nil {
				c = g.Chromosome()
			}
			c[i] = !c[i]
		}
	}
	if c == nil {
		return g
	}
	return &Genotype{chromosome: c}
}

// NextGeneration replaces the population with children bred by selection,
// mating and mutation. The new population has the same size as the old one
// and every slot holds its own genotype with zeroed fitness.
func (e *Engine) NextGeneration(crossoverProbability, mutationProbability float64) {
	next := make([]*Genotype, 0, len(e.population))
	for len(next) < len(e.population) {
		p1 := e.Select()
		p2 := e.Select()
		child := e.Mutate(e.Mate(p1, p2, crossoverProbability), mutationProbability)
		next = append(next, child.clone())
	}
	e.population = next
}
