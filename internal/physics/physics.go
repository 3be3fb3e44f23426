// Package physics provides the math helpers and burst geometry shared by the
// particle simulation.
package physics

import (
	"math"
	"math/rand"
)

// Tau is a full turn in radians.
const Tau = 2 * math.Pi

// Random returns a uniform value in [min, max).
func Random(min, max float64) float64 {
	return rand.Float64()*(max-min) + min
}

// RandomInt returns a uniform integer in [min, max]. Returns min when max <= min.
func RandomInt(min, max int) int {
	if max <= min {
		return min
	}
	return min + rand.Intn(max-min+1)
}

// RandomChoice returns a random element of items. Panics on an empty slice.
func RandomChoice[T any](items []T) T {
	return items[rand.Intn(len(items))]
}

// Chance reports true with probability p.
func Chance(p float64) bool {
	return rand.Float64() < p
}

// Clamp limits v to [min, max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Lerp interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// Angle returns the direction from (x1, y1) to (x2, y2) in radians.
func Angle(x1, y1, x2, y2 float64) float64 {
	return math.Atan2(y2-y1, x2-x1)
}

// NormalizeAngle wraps a into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, Tau)
	if a < 0 {
		a += Tau
	}
	if a >= Tau {
		a = 0
	}
	return a
}
