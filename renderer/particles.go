package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/feeders/game"
)

// eatEffectLife is how many frames an eat ring stays visible.
const eatEffectLife = 30

// eatEffect is a ring expanding where a food item was eaten.
type eatEffect struct {
	X, Y    float32
	Size    float32
	Life    int
	MaxLife int
}

// ParticleRenderer renders eat effects. It diffs consecutive snapshots to find
// food that went from active to eaten.
type ParticleRenderer struct {
	effects    []eatEffect
	lastActive map[uint32]bool
	generation int
}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{lastActive: make(map[uint32]bool)}
}

// Update spawns effects for newly eaten food and ages the existing ones.
func (r *ParticleRenderer) Update(s game.Snapshot) {
	// Food is respawned each generation, so active flags are only comparable
	// within one.
	if s.Generation != r.generation {
		r.generation = s.Generation
		clear(r.lastActive)
	}

	for _, f := range s.Food {
		wasActive, seen := r.lastActive[f.ID]
		if seen && wasActive && !f.Active {
			r.effects = append(r.effects, eatEffect{
				X:       float32(f.X),
				Y:       float32(f.Y),
				Size:    float32(f.Size),
				Life:    eatEffectLife,
				MaxLife: eatEffectLife,
			})
		}
		r.lastActive[f.ID] = f.Active
	}

	live := r.effects[:0]
	for _, e := range r.effects {
		e.Life--
		if e.Life > 0 {
			live = append(live, e)
		}
	}
	r.effects = live
}

// Reset drops all effects.
func (r *ParticleRenderer) Reset() {
	r.effects = r.effects[:0]
	clear(r.lastActive)
}

// Draw renders all effects.
func (r *ParticleRenderer) Draw() {
	for i := range r.effects {
		p := &r.effects[i]

		// Calculate life ratio for fade
		lifeRatio := float32(p.Life) / float32(p.MaxLife)

		color := rl.Color{
			R: 255,
			G: 220,
			B: 90,
			A: uint8(lifeRatio * 200),
		}

		radius := p.Size * (1.5 - lifeRatio)
		if radius < 0.5 {
			radius = 0.5
		}
		rl.DrawCircleLines(int32(p.X), int32(p.Y), radius, color)
	}
}
