package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/feeders/components"
	"github.com/pthm-cable/feeders/traits"
)

var testArena = Arena{MinX: 5, MinY: 5, MaxX: 475, MaxY: 475}

// testTag gives test entities a component so the world can create them.
type testTag struct{ n int }

// testWorld hands out real entities so observed sets behave as in the game.
// Component values live outside the world so pointers stay stable.
type testWorld struct {
	world *ecs.World
	tags  *ecs.Map1[testTag]
	foods map[ecs.Entity]Target
}

func newTestWorld() *testWorld {
	world := ecs.NewWorld()
	return &testWorld{
		world: world,
		tags:  ecs.NewMap1[testTag](world),
		foods: make(map[ecs.Entity]Target),
	}
}

func (w *testWorld) entity() ecs.Entity {
	return w.tags.NewEntity(&testTag{})
}

func (w *testWorld) agent(x, y, heading float64, speed, eyesight, intelligence int) Agent {
	t := traits.New(speed, eyesight, intelligence, traits.DefaultModifiers)
	return Agent{
		Entity: w.entity(),
		Pos:    &components.Position{X: x, Y: y},
		Motion: &components.Motion{
			Direction: heading,
			Vector:    r2.Scale(t.EffectiveSpeed, headingVec(heading)),
		},
		Traits: &t,
		Feeder: &components.Feeder{ID: 1, Observed: make(map[ecs.Entity]struct{})},
	}
}

func (w *testWorld) food(x, y, size float64) Target {
	t := Target{
		Entity: w.entity(),
		Pos:    &components.Position{X: x, Y: y},
		Food:   &components.Food{ID: uint32(len(w.foods) + 1), Size: size, Active: true},
	}
	w.foods[t.Entity] = t
	return t
}

func (w *testWorld) lookup(e ecs.Entity) (Target, bool) {
	t, ok := w.foods[e]
	return t, ok
}

func newTestBehavior(seed int64) *Behavior {
	return NewBehavior(testArena, rand.New(rand.NewSource(seed)), 15, traits.DefaultModifiers)
}
