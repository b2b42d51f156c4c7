package components

import "gonum.org/v1/gonum/spatial/r2"

// Position represents an entity's center in arena coordinates.
type Position struct {
	X, Y float64
}

// Vec returns the position as a vector.
func (p Position) Vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// Set moves the position to v.
func (p *Position) Set(v r2.Vec) {
	p.X, p.Y = v.X, v.Y
}

// Motion holds an agent's heading and per-tick displacement.
// Vector always has length EffectiveSpeed (or zero for a stationary agent).
type Motion struct {
	Direction float64 // radians
	Vector    r2.Vec
}
