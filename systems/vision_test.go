package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/feeders/components"
)

func TestConeContains(t *testing.T) {
	// Facing +X with eyesight 10: edges at +/-60 degrees.
	pos := components.Position{X: 0, Y: 0}
	motion := components.Motion{Direction: 0, Vector: r2.Vec{X: 1, Y: 0}}
	tr := components.Traits{EffectiveEyesight: 10}
	cone := PerceptionCone(pos, motion, tr)

	tests := []struct {
		name string
		p    r2.Vec
		want bool
	}{
		{"ahead", r2.Vec{X: 5, Y: 0}, true},
		{"apex", r2.Vec{X: 0, Y: 0}, true},
		{"45 degrees", r2.Vec{X: 3, Y: 3}, true},
		{"55 degrees", r2.Vec{X: math.Cos(55 * math.Pi / 180), Y: math.Sin(55 * math.Pi / 180)}, true},
		{"70 degrees", r2.Vec{X: math.Cos(70 * math.Pi / 180), Y: math.Sin(70 * math.Pi / 180)}, false},
		{"behind", r2.Vec{X: -5, Y: 0}, false},
		{"side", r2.Vec{X: 0, Y: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cone.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestConeFallsBackToHeading(t *testing.T) {
	pos := components.Position{X: 0, Y: 0}
	motion := components.Motion{Direction: math.Pi / 2} // zero vector, facing +Y
	tr := components.Traits{EffectiveEyesight: 10}
	cone := PerceptionCone(pos, motion, tr)

	if math.Abs(cone.Tip.X) > 1e-9 || math.Abs(cone.Tip.Y-10) > 1e-9 {
		t.Errorf("Tip = %v, want (0, 10)", cone.Tip)
	}
	if !cone.Contains(r2.Vec{X: 0, Y: 5}) {
		t.Error("cone should contain a point along the heading")
	}
}

func TestConeHalfAngle(t *testing.T) {
	cone := PerceptionCone(components.Position{}, components.Motion{Vector: r2.Vec{X: 1}}, components.Traits{EffectiveEyesight: 10})

	for name, side := range map[string]r2.Vec{"left": cone.Left, "right": cone.Right} {
		angle := math.Abs(math.Atan2(side.Y, side.X)) * 180 / math.Pi
		if math.Abs(angle-60) > 1e-9 {
			t.Errorf("%s edge at %v degrees, want 60", name, angle)
		}
	}
}

func TestPerceivesStationaryLooksAhead(t *testing.T) {
	w := newTestWorld()
	agent := w.agent(100, 100, 0, 0, 15, 5) // speed 0, facing +X

	tests := []struct {
		name string
		x    float64
		want bool
	}{
		{"ahead", 120, true},
		{"behind", 80, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Perceives(agent, w.food(tt.x, 100, 2)); got != tt.want {
				t.Errorf("Perceives(food at x=%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestPerceivesBlind(t *testing.T) {
	w := newTestWorld()
	agent := w.agent(100, 100, 0, 15, 0, 5) // speed 0.195
	speed := agent.Traits.EffectiveSpeed

	tests := []struct {
		name string
		dx   float64
		dy   float64
		want bool
	}{
		{"at distance zero", 0, 0, true},
		{"within one step ahead", speed * 0.9, 0, true},
		{"within one step behind", -speed * 0.9, 0, true},
		{"exactly one step", 0, speed, true},
		{"beyond one step", speed * 1.5, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			food := w.food(100+tt.dx, 100+tt.dy, 5)
			if got := Perceives(agent, food); got != tt.want {
				t.Errorf("Perceives = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPerceivesSighted(t *testing.T) {
	w := newTestWorld()
	agent := w.agent(100, 100, 0, 5, 3, 5) // eyesight 20.01, facing +X

	tests := []struct {
		name string
		x, y float64
		size float64
		want bool
	}{
		{"ahead in range", 110, 100, 5, true},
		{"ahead out of range", 125, 100, 5, false},
		{"behind in range", 90, 100, 5, false},
		{"beside, center outside cone", 101, 110, 5, false},
		{"beside, corner bleeds in", 101, 110, 12, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			food := w.food(tt.x, tt.y, tt.size)
			if got := Perceives(agent, food); got != tt.want {
				t.Errorf("Perceives(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestPerceivesIgnoresEatenAndObserved(t *testing.T) {
	w := newTestWorld()
	agent := w.agent(100, 100, 0, 5, 15, 15)

	eaten := w.food(110, 100, 5)
	eaten.Food.MarkEaten()
	if Perceives(agent, eaten) {
		t.Error("eaten food should never be perceived")
	}

	seen := w.food(110, 100, 5)
	agent.Feeder.Observe(seen.Entity)
	if Perceives(agent, seen) {
		t.Error("observed food should not be perceived again")
	}
}
