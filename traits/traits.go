// Package traits decodes chromosomes into agent traits and back.
//
// A chromosome is read as three equal segments, each a big-endian unsigned
// integer: speed, eyesight, intelligence.
package traits

import (
	"fmt"

	"github.com/pthm-cable/feeders/components"
	"github.com/pthm-cable/feeders/genetics"
)

// Count is the number of traits packed into a chromosome.
const Count = 3

// Modifiers scale raw trait values into effective values.
type Modifiers struct {
	Speed        float64
	Eyesight     float64
	Intelligence float64
}

// DefaultModifiers match the arena's pixel scale.
var DefaultModifiers = Modifiers{
	Speed:        0.013,
	Eyesight:     6.67,
	Intelligence: 6.67,
}

// MaxValue returns the largest raw trait value for the given segment width.
func MaxValue(bitsPerTrait int) int {
	return 1<<bitsPerTrait - 1
}

// Decode reads the three trait segments of c and applies m.
// Trailing bits beyond a multiple of three are ignored.
func Decode(c genetics.Chromosome, m Modifiers) components.Traits {
	bits := len(c) / Count
	speed := segment(c, 0, bits)
	eyesight := segment(c, bits, 2*bits)
	intelligence := segment(c, 2*bits, 3*bits)
	return New(speed, eyesight, intelligence, m)
}

// New builds traits from raw values.
func New(speed, eyesight, intelligence int, m Modifiers) components.Traits {
	return components.Traits{
		Speed:                 speed,
		Eyesight:              eyesight,
		Intelligence:          intelligence,
		EffectiveSpeed:        float64(speed) * m.Speed,
		EffectiveEyesight:     float64(eyesight) * m.Eyesight,
		EffectiveIntelligence: float64(intelligence) * m.Intelligence,
	}
}

// Encode packs raw trait values into a chromosome with bitsPerTrait bits per
// segment. Values are clamped to [0, MaxValue(bitsPerTrait)].
func Encode(speed, eyesight, intelligence, bitsPerTrait int) genetics.Chromosome {
	c := make(genetics.Chromosome, Count*bitsPerTrait)
	for i, v := range []int{speed, eyesight, intelligence} {
		v = clampTrait(v, bitsPerTrait)
		for b := 0; b < bitsPerTrait; b++ {
			shift := bitsPerTrait - 1 - b
			c[i*bitsPerTrait+b] = v>>shift&1 == 1
		}
	}
	return c
}

// Describe renders raw trait values as a short label.
func Describe(t components.Traits) string {
	return fmt.Sprintf("S%d E%d I%d", t.Speed, t.Eyesight, t.Intelligence)
}

func segment(c genetics.Chromosome, from, to int) int {
	v := 0
	for _, bit := range c[from:to] {
		v <<= 1
		if bit {
			v |= 1
		}
	}
	return v
}

func clampTrait(v, bitsPerTrait int) int {
	if v < 0 {
		return 0
	}
	if max := MaxValue(bitsPerTrait); v > max {
		return max
	}
	return v
}
