package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// clampFloat clamps a value between min and max.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// normalizeHeading wraps a heading to [0, 2*Pi).
func normalizeHeading(h float64) float64 {
	const twoPi = 2 * math.Pi
	h = math.Mod(h, twoPi)
	if h < 0 {
		h += twoPi
	}
	return h
}

// headingVec returns the unit vector for a heading.
func headingVec(h float64) r2.Vec {
	return r2.Vec{X: math.Cos(h), Y: math.Sin(h)}
}

// unitOr returns the unit vector of v, or fallback when v has zero length.
func unitOr(v, fallback r2.Vec) r2.Vec {
	if r2.Norm(v) == 0 {
		return fallback
	}
	return r2.Unit(v)
}

// distance returns the Euclidean distance between two points.
func distance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// distanceSq returns the squared distance between two points.
func distanceSq(a, b r2.Vec) float64 {
	return r2.Norm2(r2.Sub(a, b))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
