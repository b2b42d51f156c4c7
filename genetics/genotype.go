// Package genetics implements a fixed-length bit-string genetic algorithm:
// roulette-wheel selection, single-point crossover and per-bit mutation.
package genetics

import (
	"math/rand"
	"strings"
)

// Chromosome is an ordered, fixed-length sequence of bits.
type Chromosome []bool

// ParseChromosome builds a chromosome from a string of '0' and '1'.
// Any character other than '1' is read as a zero bit.
func ParseChromosome(s string) Chromosome {
	c := make(Chromosome, len(s))
	for i := range s {
		c[i] = s[i] == '1'
	}
	return c
}

// String renders the chromosome as a string of '0' and '1'.
func (c Chromosome) String() string {
	var b strings.Builder
	b.Grow(len(c))
	for _, bit := range c {
		if bit {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// Genotype pairs an immutable chromosome with its fitness scores.
type Genotype struct {
	chromosome Chromosome

	RawFitness        float64
	NormalizedFitness float64 // RawFitness / total raw fitness of the population
}

// NewGenotype creates a genotype holding a copy of c.
func NewGenotype(c Chromosome) *Genotype {
	cp := make(Chromosome, len(c))
	copy(cp, c)
	return &Genotype{chromosome: cp}
}

// RandomGenotype creates a genotype with length uniformly random bits.
func RandomGenotype(rng *rand.Rand, length int) *Genotype {
	c := make(Chromosome, length)
	for i := range c {
		c[i] = rng.Intn(2) == 1
	}
	return &Genotype{chromosome: c}
}

// Chromosome returns a copy of the genotype's bits.
func (g *Genotype) Chromosome() Chromosome {
	cp := make(Chromosome, len(g.chromosome))
	copy(cp, g.chromosome)
	return cp
}

// Len returns the chromosome length.
func (g *Genotype) Len() int {
	return len(g.chromosome)
}

// Bit returns the i-th bit.
func (g *Genotype) Bit(i int) bool {
	return g.chromosome[i]
}

// String renders the chromosome bits.
func (g *Genotype) String() string {
	return g.chromosome.String()
}

// clone returns an independent genotype with the same bits and no fitness.
func (g *Genotype) clone() *Genotype {
	return &Genotype{chromosome: g.chromosome}
}

// Crossover builds a child from the first point bits of g1 followed by the
// remaining bits of g2. point is clamped to [0, len].
func Crossover(g1, g2 *Genotype, point int) *Genotype {
	n := g1.Len()
	if point < 0 {
		point = 0
	}
	if point > n {
		point = n
	}

	c := make(Chromosome, n)
	copy(c[:point], g1.chromosome[:point])
	copy(c[point:], g2.chromosome[point:])
	return &Genotype{chromosome: c}
}
