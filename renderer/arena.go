// Package renderer draws the arena and its agents from a game snapshot.
package renderer

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/feeders/game"
	"github.com/pthm-cable/feeders/systems"
	"github.com/pthm-cable/feeders/ui"
)

// ArenaRenderer draws the arena background, food and feeders.
// Arena coordinates are screen pixels.
type ArenaRenderer struct {
	theme ui.Theme
}

// NewArenaRenderer creates an arena renderer with the given theme.
func NewArenaRenderer(theme ui.Theme) *ArenaRenderer {
	return &ArenaRenderer{theme: theme}
}

// Draw renders one frame of s. Overlays toggle the optional layers.
func (r *ArenaRenderer) Draw(s game.Snapshot, overlays *ui.OverlayRegistry) {
	r.drawBackground(s.Arena, s.FeederSize)

	showEaten := overlays.IsEnabled(ui.OverlayEatenFood)
	for _, f := range s.Food {
		if !f.Active && !showEaten {
			continue
		}
		r.drawFood(f)
	}

	if overlays.IsEnabled(ui.OverlayPerceptionCones) {
		for _, f := range s.Feeders {
			if !f.Blind {
				r.drawCone(f.Cone)
			}
		}
	}

	showIDs := overlays.IsEnabled(ui.OverlayFeederIDs)
	showTraits := overlays.IsEnabled(ui.OverlayFeederTraits)
	for _, f := range s.Feeders {
		r.drawFeeder(f, s.FeederSize)
		switch {
		case showIDs:
			r.drawLabel(f, s.FeederSize, fmt.Sprintf("%d", f.ID))
		case showTraits:
			r.drawLabel(f, s.FeederSize, f.Traits)
		}
	}
}

// drawBackground fills the arena with the feeder margin included.
func (r *ArenaRenderer) drawBackground(a systems.Arena, feederSize float64) {
	pad := float32(feederSize / 2)
	x := float32(a.MinX) - pad
	y := float32(a.MinY) - pad
	w := float32(a.Width()) + 2*pad
	h := float32(a.Height()) + 2*pad

	rl.DrawRectangleRec(rl.Rectangle{X: x, Y: y, Width: w, Height: h}, r.theme.ArenaBg)
	rl.DrawRectangleLinesEx(rl.Rectangle{X: x, Y: y, Width: w, Height: h}, 1, r.theme.ArenaBorder)
}

func (r *ArenaRenderer) drawFood(f game.FoodView) {
	color := r.theme.Food
	if !f.Active {
		color = r.theme.FoodEaten
	}
	size := float32(f.Size)
	rl.DrawRectangleV(
		rl.Vector2{X: float32(f.X) - size/2, Y: float32(f.Y) - size/2},
		rl.Vector2{X: size, Y: size},
		color,
	)
}

func (r *ArenaRenderer) drawCone(c systems.Cone) {
	apex := vec(c.Apex.X, c.Apex.Y)
	left := vec(c.Left.X, c.Left.Y)
	right := vec(c.Right.X, c.Right.Y)
	tip := vec(c.Tip.X, c.Tip.Y)

	rl.DrawLineV(apex, left, r.theme.Cone)
	rl.DrawLineV(apex, right, r.theme.Cone)
	rl.DrawLineV(left, right, r.theme.Cone)
	rl.DrawLineV(apex, tip, fade(r.theme.Cone, 0.5))
}

// drawFeeder draws a filled circle with a heading tick.
func (r *ArenaRenderer) drawFeeder(f game.FeederView, size float64) {
	color := r.theme.Feeder
	if f.Blind {
		color = r.theme.FeederBlind
	}
	radius := float32(size / 2)
	center := vec(f.X, f.Y)
	rl.DrawCircleV(center, radius, color)

	sin, cos := math.Sincos(f.Direction)
	head := vec(f.X+cos*size, f.Y+sin*size)
	rl.DrawLineV(center, head, color)
}

func (r *ArenaRenderer) drawLabel(f game.FeederView, size float64, text string) {
	x := int32(f.X + size)
	y := int32(f.Y - size)
	rl.DrawText(text, x, y, 10, r.theme.ValueColor)
}

func vec(x, y float64) rl.Vector2 {
	return rl.Vector2{X: float32(x), Y: float32(y)}
}

func fade(c rl.Color, alpha float32) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: uint8(float32(c.A) * alpha)}
}
