package rocketry

import (
	"math"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

const (
	deg2rad = math.Pi / 180

	// distanceε is the absolute tolerance on distances (in meters).
	distanceε = 1e-3
	// velocityε is the absolute tolerance on velocities (in m/s).
	velocityε = 1e-6
	// angleε is the absolute tolerance on angles (in radians).
	angleε = 1e-9
	// eccentricityε is the tolerance below which an orbit is considered circular.
	eccentricityε = 5e-5
)

// norm returns the norm of a 2D vector given by its components.
func norm(x, y float64) float64 {
	return math.Hypot(x, y)
}

// dot performs the inner product via mat64/BLAS.
func dot(a, b []float64) float64 {
	return mat64.Dot(mat64.NewVector(len(a), a), mat64.NewVector(len(b), b))
}

// unit returns the unit vector of the given 2D vector.
func unit(x, y float64) (ux, uy float64) {
	n := norm(x, y)
	if floats.EqualWithinAbs(n, 0, 1e-12) {
		return 0, 0
	}
	return x / n, y / n
}

// wrapTwoPi wraps an angle into [0, 2π).
func wrapTwoPi(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// Deg2rad converts degrees to radians, and enforces only positive numbers.
func Deg2rad(a float64) float64 {
	if a < 0 {
		a += 360
	}
	return math.Mod(a*deg2rad, 2*math.Pi)
}

// Rad2deg converts radians to degrees, and enforces only positive numbers.
func Rad2deg(a float64) float64 {
	if a < 0 {
		a += 2 * math.Pi
	}
	return math.Mod(a/deg2rad, 360)
}
