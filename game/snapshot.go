package game

import (
	"github.com/pthm-cable/feeders/systems"
	"github.com/pthm-cable/feeders/traits"
)

// FeederView is a read-only copy of one agent for drawing.
type FeederView struct {
	ID        uint32       `inspect:"skip"`
	X, Y      float64      `inspect:"label,fmt:%.1f"`
	Direction float64      `inspect:"angle"` // radians
	Eaten     int          `inspect:"label"`
	Observed  int          `inspect:"label"` // size of the observed-food set
	Traits    string       `inspect:"label"` // "S%d E%d I%d"
	Blind     bool         `inspect:"bool"`
	Cone      systems.Cone `inspect:"skip"` // zero when Blind
}

// FoodView is a read-only copy of one food item for drawing.
type FoodView struct {
	ID     uint32
	X, Y   float64
	Size   float64
	Active bool
}

// Snapshot is everything a host needs to draw one frame. It shares no memory
// with the game.
type Snapshot struct {
	Tick       int
	Generation int
	State      State
	Arena      systems.Arena
	FeederSize float64
	Feeders    []FeederView // population order
	Food       []FoodView   // creation order, eaten food included
}

// Snapshot copies the drawable state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:       g.tick,
		Generation: g.engine.Generation(),
		State:      g.state,
		Arena:      g.Arena(),
		FeederSize: g.cfg.Simulation.FeederSize,
		Feeders:    make([]FeederView, 0, len(g.agents)),
		Food:       make([]FoodView, 0, len(g.foods)),
	}

	for _, e := range g.agents {
		pos, motion, tr, feeder := g.feederMapper.Get(e)
		v := FeederView{
			ID:        feeder.ID,
			X:         pos.X,
			Y:         pos.Y,
			Direction: motion.Direction,
			Eaten:     feeder.Eaten,
			Observed:  len(feeder.Observed),
			Traits:    traits.Describe(*tr),
			Blind:     tr.Blind(),
		}
		if !v.Blind {
			v.Cone = systems.PerceptionCone(*pos, *motion, *tr)
		}
		s.Feeders = append(s.Feeders, v)
	}

	for _, e := range g.foods {
		pos, food := g.foodMapper.Get(e)
		s.Food = append(s.Food, FoodView{
			ID:     food.ID,
			X:      pos.X,
			Y:      pos.Y,
			Size:   food.Size,
			Active: food.Active,
		})
	}

	return s
}

// ActiveFood returns the active items of the snapshot.
func (s Snapshot) ActiveFood() []FoodView {
	out := make([]FoodView, 0, len(s.Food))
	for _, f := range s.Food {
		if f.Active {
			out = append(out, f)
		}
	}
	return out
}
