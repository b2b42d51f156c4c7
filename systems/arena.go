package systems

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/feeders/components"
)

// Arena is the rectangle agents and food live in.
type Arena struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width returns the horizontal extent.
func (a Arena) Width() float64 { return a.MaxX - a.MinX }

// Height returns the vertical extent.
func (a Arena) Height() float64 { return a.MaxY - a.MinY }

// Contains reports whether p lies inside the arena, edges included.
func (a Arena) Contains(p r2.Vec) bool {
	return p.X >= a.MinX && p.X <= a.MaxX && p.Y >= a.MinY && p.Y <= a.MaxY
}

// Clamp moves p onto the nearest point inside the arena.
func (a Arena) Clamp(p r2.Vec) r2.Vec {
	return r2.Vec{
		X: clampFloat(p.X, a.MinX, a.MaxX),
		Y: clampFloat(p.Y, a.MinY, a.MaxY),
	}
}

// Edges reports which bounds p has crossed.
func (a Arena) Edges(p r2.Vec) EdgeMask {
	var m EdgeMask
	if p.X < a.MinX {
		m |= EdgeLeft
	}
	if p.X > a.MaxX {
		m |= EdgeRight
	}
	if p.Y < a.MinY {
		m |= EdgeTop
	}
	if p.Y > a.MaxY {
		m |= EdgeBottom
	}
	return m
}

// EdgeMask is a set of arena edges. Y grows downward, so the top edge is MinY.
type EdgeMask uint8

const (
	EdgeLeft EdgeMask = 1 << iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// Has checks if the mask contains an edge.
func (m EdgeMask) Has(e EdgeMask) bool {
	return m&e != 0
}

// AngleRange is a range of headings in degrees, Min <= Max.
type AngleRange struct {
	Min, Max float64
}

// Sample draws a uniform heading from the range, in radians.
func (r AngleRange) Sample(rng *rand.Rand) float64 {
	return normalizeHeading(toRadians(r.Min + rng.Float64()*(r.Max-r.Min)))
}

// FullCircle is every heading.
var FullCircle = AngleRange{Min: 0, Max: 360}

// reflectTable maps a crossed edge (or corner) to the headings pointing back
// into the arena. Ranges stop 0.1 degrees short of running along an edge.
var reflectTable = [16]AngleRange{
	EdgeLeft:               {-89.9, 89.9},
	EdgeRight:              {90.1, 269.9},
	EdgeTop:                {0.1, 179.9},
	EdgeBottom:             {180.1, 359.9},
	EdgeTop | EdgeLeft:     {0.1, 89.9},
	EdgeTop | EdgeRight:    {90.1, 179.9},
	EdgeBottom | EdgeLeft:  {270.1, 359.9},
	EdgeBottom | EdgeRight: {180.1, 269.9},
}

// ReflectDirection returns the headings an agent may take after crossing the
// edges in m. Opposite edges cancel out; an empty mask allows any heading.
func ReflectDirection(m EdgeMask) AngleRange {
	if m.Has(EdgeLeft) && m.Has(EdgeRight) {
		m &^= EdgeLeft | EdgeRight
	}
	if m.Has(EdgeTop) && m.Has(EdgeBottom) {
		m &^= EdgeTop | EdgeBottom
	}
	if m == 0 {
		return FullCircle
	}
	return reflectTable[m&0xF]
}

// SpawnFood places a new active food item uniformly inside the arena, inset
// by size on every side. A too-small arena puts the food at its center.
func SpawnFood(a Arena, size float64, rng *rand.Rand) (components.Position, components.Food) {
	pos := components.Position{
		X: spawnCoord(a.MinX, a.MaxX, size, rng),
		Y: spawnCoord(a.MinY, a.MaxY, size, rng),
	}
	return pos, components.Food{Size: size, Active: true}
}

func spawnCoord(lo, hi, inset float64, rng *rand.Rand) float64 {
	lo, hi = lo+inset, hi-inset
	if hi <= lo {
		return (lo + hi) / 2
	}
	return lo + rng.Float64()*(hi-lo)
}

// RandomPosition returns a uniform point inside the arena.
func (a Arena) RandomPosition(rng *rand.Rand) components.Position {
	return components.Position{
		X: a.MinX + rng.Float64()*a.Width(),
		Y: a.MinY + rng.Float64()*a.Height(),
	}
}
