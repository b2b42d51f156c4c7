package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/feeders/components"
)

// coneSideRatio places the side points so each edge sits 60 degrees off the
// axis: sin(60)/sin(30).
var coneSideRatio = math.Sin(math.Pi/3) / math.Sin(math.Pi/6)

// Cone is an agent's perception wedge: the region between the rays from
// Apex through Left and from Apex through Right.
type Cone struct {
	Apex  r2.Vec // agent center
	Tip   r2.Vec // Apex + axis * eyesight
	Left  r2.Vec
	Right r2.Vec
}

// PerceptionCone builds the cone for an agent. The axis follows the movement
// vector, or the heading when the agent is not moving.
func PerceptionCone(pos components.Position, motion components.Motion, t components.Traits) Cone {
	apex := pos.Vec()
	// A stationary agent keeps looking along its heading rather than
	// collapsing the cone onto its center, which would see in every direction.
	axis := unitOr(motion.Vector, headingVec(motion.Direction))
	tip := r2.Add(apex, r2.Scale(t.EffectiveEyesight, axis))
	side := r2.Scale(t.EffectiveEyesight*coneSideRatio, r2.Vec{X: -axis.Y, Y: axis.X})
	return Cone{
		Apex:  apex,
		Tip:   tip,
		Left:  r2.Add(tip, side),
		Right: r2.Sub(tip, side),
	}
}

// Contains reports whether p lies inside the wedge, boundary included.
func (c Cone) Contains(p r2.Vec) bool {
	a := r2.Sub(c.Left, c.Apex)
	b := r2.Sub(c.Right, c.Apex)
	e := r2.Sub(p, c.Apex)
	return r2.Cross(a, e)*r2.Cross(a, b) >= 0 && r2.Cross(b, e)*r2.Cross(b, a) >= 0
}

// Perceives reports whether the agent can see the food this tick.
//
// Eaten and already-observed food is never perceived. A blind agent
// perceives food within one step. Otherwise the food must be within eyesight
// and its center, or one of its corners, inside the perception cone.
func Perceives(agent Agent, food Target) bool {
	if !food.Food.Active || agent.Feeder.Observes(food.Entity) {
		return false
	}

	from := agent.Pos.Vec()
	center := food.Pos.Vec()
	d := distance(from, center)

	if agent.Traits.Blind() {
		return d <= agent.Traits.EffectiveSpeed
	}
	if d > agent.Traits.EffectiveEyesight {
		return false
	}

	cone := PerceptionCone(*agent.Pos, *agent.Motion, *agent.Traits)
	if cone.Contains(center) {
		return true
	}

	// Bleed-over: part of the food square reaches into the cone.
	half := food.Food.Size / 2
	corners := [4]r2.Vec{
		{X: center.X - half, Y: center.Y - half},
		{X: center.X + half, Y: center.Y - half},
		{X: center.X - half, Y: center.Y + half},
		{X: center.X + half, Y: center.Y + half},
	}
	for _, c := range corners {
		if cone.Contains(c) {
			return true
		}
	}
	return false
}
