package rocketry

import (
	"fmt"
	"math"
	"time"
)

// Orbit defines the planar orbital elements reconstructed from an
// instantaneous position/velocity pair. All lengths are in meters.
type Orbit struct {
	a float64 // semi-major axis
	e float64 // eccentricity
	θ float64 // orientation of the periapsis direction
	ξ float64 // specific mechanical energy
	h float64 // specific angular momentum, signed
	μ float64 // gravitational parameter of the origin
}

// SemiMajorAxis returns the semi-major axis in meters.
func (o Orbit) SemiMajorAxis() float64 {
	return o.a
}

// Eccentricity returns the magnitude of the eccentricity vector.
func (o Orbit) Eccentricity() float64 {
	return o.e
}

// OrientationAngle returns the angle of the periapsis direction, flipped by π
// for retrograde orbits so the derived orbit matches the direction of travel.
func (o Orbit) OrientationAngle() float64 {
	return o.θ
}

// Energyξ returns the specific mechanical energy ξ.
func (o Orbit) Energyξ() float64 {
	return o.ξ
}

// Retrograde returns whether the orbit is flown clockwise.
func (o Orbit) Retrograde() bool {
	return o.h < 0
}

// Periapsis returns the periapsis radius.
func (o Orbit) Periapsis() float64 {
	return o.a * (1 - o.e)
}

// Apoapsis returns the apoapsis radius.
func (o Orbit) Apoapsis() float64 {
	return o.a * (1 + o.e)
}

// Period returns the period of this orbit.
func (o Orbit) Period() time.Duration {
	seconds := 2 * math.Pi * math.Sqrt(math.Pow(o.a, 3)/o.μ)
	duration, _ := time.ParseDuration(fmt.Sprintf("%.6fs", seconds))
	return duration
}

// String implements the Stringer interface.
func (o Orbit) String() string {
	return fmt.Sprintf("a=%.1f e=%.4f θ=%.3f", o.a, o.e, Rad2deg(o.θ))
}

// NewOrbitFromState reconstructs orbital elements from a position (m) and
// velocity (m/s) relative to a body of gravitational parameter μ (m³/s²),
// via the vis-viva and eccentricity-vector derivations. Only bound orbits
// are supported: a parabolic or hyperbolic state fails with
// ErrDegenerateOrbit and must not be drawn or propagated as an ellipse.
func NewOrbitFromState(x, y, dx, dy, μ float64) (*Orbit, error) {
	r := norm(x, y)
	if r <= 0 || μ <= 0 {
		return nil, fmt.Errorf("r=%g μ=%g: %w", r, μ, ErrInvalidArgument)
	}
	v2 := dx*dx + dy*dy
	ξ := v2/2 - μ/r
	if ξ >= 0 {
		return nil, fmt.Errorf("ξ=%g m²/s²: %w", ξ, ErrDegenerateOrbit)
	}
	h := x*dy - y*dx
	rDotV := dot([]float64{x, y}, []float64{dx, dy})
	eX := ((v2-μ/r)*x - rDotV*dx) / μ
	eY := ((v2-μ/r)*y - rDotV*dy) / μ
	e := norm(eX, eY)
	if e >= 1 {
		return nil, fmt.Errorf("e=%g: %w", e, ErrDegenerateOrbit)
	}
	a := -μ / (2 * ξ)
	θ := math.Atan2(eY, eX)
	if h < 0 {
		θ += math.Pi
	}
	return &Orbit{a: a, e: e, θ: wrapTwoPi(θ), ξ: ξ, h: h, μ: μ}, nil
}

// HohmannPhaseAngle returns the angle in radians by which the destination
// body must lead the origin body at departure so that it arrives at the
// transfer ellipse's apoapsis together with the vehicle. Both bodies must
// orbit the same parent. The radii are ordered so that the inner orbit is
// always the origin, making the result symmetric in its arguments. The sign
// and range are not normalized; wrap into [0, 2π) if a canonical value is
// needed.
func HohmannPhaseAngle(b1, b2 *CelestialBody) (float64, error) {
	if b1.Parent() == nil || b1.Parent() != b2.Parent() {
		return 0, fmt.Errorf("%s and %s: %w", b1.Name, b2.Name, ErrMismatchedParent)
	}
	r1 := b1.DistanceFromParent() * 1e3
	r2 := b2.DistanceFromParent() * 1e3
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	μ := b1.Parent().GM()
	a := (r1 + r2) / 2
	transferTime := math.Pi * math.Sqrt(a*a*a/μ)
	ω2 := math.Sqrt(μ / (r2 * r2 * r2))
	return math.Pi - ω2*transferTime, nil
}

// HohmannVelocities computes a Hohmann transfer between two circular orbits
// of radii rI and rF meters around the given body. It returns the departure
// and arrival velocities in m/s and the time of flight.
// To get final computations:
// ΔvInit = vDeparture - vI
// ΔvFinal = vArrival - vF
func HohmannVelocities(rI, rF float64, body *CelestialBody) (vDeparture, vArrival float64, tof time.Duration) {
	μ := body.GM()
	aTransfer := 0.5 * (rI + rF)
	vDeparture = math.Sqrt((2 * μ / rI) - (μ / aTransfer))
	vArrival = math.Sqrt((2 * μ / rF) - (μ / aTransfer))
	tof = time.Duration(math.Pi*math.Sqrt(math.Pow(aTransfer, 3)/μ)) * time.Second
	return
}
