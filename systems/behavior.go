package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/feeders/components"
	"github.com/pthm-cable/feeders/traits"
)

// Agent bundles the components of one feeder entity.
type Agent struct {
	Entity ecs.Entity
	Pos    *components.Position
	Motion *components.Motion
	Traits *components.Traits
	Feeder *components.Feeder
}

// Target bundles the components of one food entity.
type Target struct {
	Entity ecs.Entity
	Pos    *components.Position
	Food   *components.Food
}

// FoodLookup resolves a food entity. ok is false if the entity is gone.
type FoodLookup func(e ecs.Entity) (t Target, ok bool)

// Outcome reports what happened to an agent during a behavior call.
type Outcome uint8

const (
	OutcomeSteered   Outcome = 1 << iota // Movement vector turned toward food
	OutcomeAte                           // Food eaten
	OutcomeRejected                      // Food reached but not recognised, dropped from observed
	OutcomeReflected                     // Crossed an edge and turned back
)

// Has checks if an outcome set contains an outcome.
func (o Outcome) Has(other Outcome) bool {
	return o&other != 0
}

// Behavior applies perception, recognition and movement rules to agents.
type Behavior struct {
	arena    Arena
	rng      *rand.Rand
	maxTrait int

	// Upper bound of the recognition roll: maxTrait * intelligence modifier.
	recognitionCeiling float64
}

// NewBehavior creates a behavior system for the given arena. maxTrait is the
// largest raw trait value a chromosome can encode.
func NewBehavior(arena Arena, rng *rand.Rand, maxTrait int, m traits.Modifiers) *Behavior {
	return &Behavior{
		arena:              arena,
		rng:                rng,
		maxTrait:           maxTrait,
		recognitionCeiling: float64(maxTrait) * m.Intelligence,
	}
}

// Arena returns the bounds agents are kept in.
func (b *Behavior) Arena() Arena {
	return b.arena
}

// IsFood rolls whether an agent recognises something it sees as food.
// Agents at maximum intelligence always do. Every call draws a fresh roll.
func (b *Behavior) IsFood(t components.Traits) bool {
	if t.Intelligence >= b.maxTrait {
		return true
	}
	return t.EffectiveIntelligence > b.rng.Float64()*b.recognitionCeiling
}

// React adds perceived food to the agent's observed set if recognised.
// Returns whether the food was recognised.
func (b *Behavior) React(agent Agent, food Target) bool {
	if !b.IsFood(*agent.Traits) {
		return false
	}
	agent.Feeder.Observe(food.Entity)
	return true
}

// MoveTo handles an agent heading for food. Within one step (or inside the
// food square) the agent eats it if a fresh recognition roll succeeds and
// otherwise forgets it. Further away, the movement vector is pointed at the
// food. Inactive food is ignored.
func (b *Behavior) MoveTo(agent Agent, food Target) Outcome {
	if !food.Food.Active {
		return 0
	}

	dir := r2.Sub(food.Pos.Vec(), agent.Pos.Vec())
	d := r2.Norm(dir)
	if d <= r2.Norm(agent.Motion.Vector) || d <= food.Food.Size/2 {
		agent.Feeder.Forget(food.Entity)
		if b.IsFood(*agent.Traits) {
			agent.Feeder.Eaten++
			food.Food.MarkEaten()
			return OutcomeAte
		}
		return OutcomeRejected
	}

	agent.Motion.Direction = normalizeHeading(math.Atan2(dir.Y, dir.X))
	agent.Motion.Vector = r2.Scale(agent.Traits.EffectiveSpeed, r2.Unit(dir))
	return OutcomeSteered
}

// Update advances an agent by one tick: drop observed food that is gone,
// head for the nearest remaining one, move, and turn back from any edge
// crossed.
func (b *Behavior) Update(agent Agent, lookup FoodLookup) Outcome {
	var out Outcome

	if target, ok := b.nearestObserved(agent, lookup); ok {
		out |= b.MoveTo(agent, target)
	}

	next := r2.Add(agent.Pos.Vec(), agent.Motion.Vector)
	if edges := b.arena.Edges(next); edges != 0 {
		heading := ReflectDirection(edges).Sample(b.rng)
		agent.Motion.Direction = heading
		agent.Motion.Vector = r2.Scale(agent.Traits.EffectiveSpeed, headingVec(heading))
		next = b.arena.Clamp(next)
		out |= OutcomeReflected
	}
	agent.Pos.Set(next)

	return out
}

// nearestObserved prunes inactive food from the observed set and returns the
// closest remaining item. Ties go to the lower food ID.
func (b *Behavior) nearestObserved(agent Agent, lookup FoodLookup) (Target, bool) {
	from := agent.Pos.Vec()

	var best Target
	bestDist := math.Inf(1)
	found := false

	for e := range agent.Feeder.Observed {
		t, ok := lookup(e)
		if !ok || !t.Food.Active {
			agent.Feeder.Forget(e)
			continue
		}
		d := distanceSq(from, t.Pos.Vec())
		if d < bestDist || (d == bestDist && t.Food.ID < best.Food.ID) {
			best, bestDist, found = t, d, true
		}
	}
	return best, found
}

// NewMotion returns the motion of an agent heading in the given direction at
// its effective speed.
func NewMotion(heading float64, t components.Traits) components.Motion {
	heading = normalizeHeading(heading)
	return components.Motion{
		Direction: heading,
		Vector:    r2.Scale(t.EffectiveSpeed, headingVec(heading)),
	}
}

// RandomMotion returns a motion with a uniformly random heading.
func RandomMotion(rng *rand.Rand, t components.Traits) components.Motion {
	return NewMotion(FullCircle.Sample(rng), t)
}
