// Package components defines ECS components for the simulation.
package components

import "github.com/mlange-42/ark/ecs"

// Traits holds an agent's decoded trait values.
// Computed once from the genotype and never changed afterwards.
type Traits struct {
	Speed        int
	Eyesight     int
	Intelligence int

	EffectiveSpeed        float64 // distance per tick
	EffectiveEyesight     float64 // perception radius
	EffectiveIntelligence float64
}

// Blind reports whether the agent has no eyesight.
func (t Traits) Blind() bool {
	return t.EffectiveEyesight == 0
}

// Feeder holds agent-specific state.
type Feeder struct {
	ID       uint32
	Genotype int // index of the paired genotype in the population
	Eaten    int // raw fitness
	Observed map[ecs.Entity]struct{}
}

// Observes reports whether food is in the observed set.
func (f *Feeder) Observes(food ecs.Entity) bool {
	_, ok := f.Observed[food]
	return ok
}

// Observe adds food to the observed set.
func (f *Feeder) Observe(food ecs.Entity) {
	if f.Observed == nil {
		f.Observed = make(map[ecs.Entity]struct{})
	}
	f.Observed[food] = struct{}{}
}

// Forget removes food from the observed set.
func (f *Feeder) Forget(food ecs.Entity) {
	delete(f.Observed, food)
}

// Food is a stationary square food item.
type Food struct {
	ID     uint32
	Size   float64 // side length
	Active bool
}

// MarkEaten deactivates the food. Eaten food never becomes active again.
func (f *Food) MarkEaten() {
	f.Active = false
}
