package rocketry

import (
	"fmt"
	"math"
)

const (
	// G is the gravitational constant in m³/(kg·s²).
	G = 6.67430e-11
	// AU is one astronomical unit in kilometers.
	AU = 1.49597870700e8

	// maxHierarchyDepth bounds parent-chain walks. The deepest real chain is
	// Sun → planet → moon; anything past this bound means a corrupt tree.
	maxHierarchyDepth = 16
)

// CelestialBody defines a body in the hierarchy: a star, planet or moon.
// A body with a nil parent is the root of its hierarchy. Masses are in kg,
// radii and distances in km, angles in radians.
type CelestialBody struct {
	Name       string
	Mass       float64
	Radius     float64
	Color      [3]uint8 // Display metadata, opaque to the physics.
	parent     *CelestialBody
	children   []*CelestialBody
	distanceKm float64
	orbitAngle float64
}

// NewCelestialBody creates a body and, if a parent is given, registers it as
// one of the parent's children. The distance is measured center to center.
func NewCelestialBody(name string, massKg, radiusKm float64, color [3]uint8, parent *CelestialBody, distanceKm float64) (*CelestialBody, error) {
	if massKg <= 0 || radiusKm <= 0 {
		return nil, fmt.Errorf("body %s: mass=%g kg radius=%g km: %w", name, massKg, radiusKm, ErrInvalidArgument)
	}
	if parent == nil && distanceKm != 0 {
		return nil, fmt.Errorf("body %s: root body cannot have a distance from parent: %w", name, ErrInvalidArgument)
	}
	if parent != nil && distanceKm <= 0 {
		return nil, fmt.Errorf("body %s: distance=%g km: %w", name, distanceKm, ErrInvalidArgument)
	}
	for depth, b := 0, parent; b != nil; depth, b = depth+1, b.parent {
		if depth >= maxHierarchyDepth {
			return nil, fmt.Errorf("body %s: parent chain too deep: %w", name, ErrCorruptHierarchy)
		}
	}
	body := &CelestialBody{Name: name, Mass: massKg, Radius: radiusKm, Color: color, parent: parent, distanceKm: distanceKm}
	if parent != nil {
		parent.children = append(parent.children, body)
	}
	return body, nil
}

// GM returns the gravitational parameter μ of this body in m³/s².
func (c *CelestialBody) GM() float64 {
	return G * c.Mass
}

// Parent returns the body this one orbits, nil for the root.
func (c *CelestialBody) Parent() *CelestialBody {
	return c.parent
}

// Children returns the bodies orbiting this one, in construction order.
func (c *CelestialBody) Children() []*CelestialBody {
	return c.children
}

// DistanceFromParent returns the center-to-center orbital radius in km,
// zero for the root.
func (c *CelestialBody) DistanceFromParent() float64 {
	return c.distanceKm
}

// OrbitAngle returns the current orbital angle in [0, 2π).
func (c *CelestialBody) OrbitAngle() float64 {
	return c.orbitAngle
}

// AdvanceAngle advances the orbital angle by Δθ radians, wrapping into [0, 2π).
func (c *CelestialBody) AdvanceAngle(Δθ float64) {
	c.orbitAngle = wrapTwoPi(c.orbitAngle + Δθ)
}

// PositionInParentFrame returns the Cartesian position in meters relative to
// the parent's center, (0, 0) for the root.
func (c *CelestialBody) PositionInParentFrame() (x, y float64) {
	if c.parent == nil {
		return 0, 0
	}
	distanceM := c.distanceKm * 1e3
	sinθ, cosθ := math.Sincos(c.orbitAngle)
	return distanceM * cosθ, distanceM * sinθ
}

// SurfaceGravity returns the gravitational acceleration at the surface in m/s².
func (c *CelestialBody) SurfaceGravity() float64 {
	radiusM := c.Radius * 1e3
	return G * c.Mass / (radiusM * radiusM)
}

// GravityAtDistance returns the gravitational acceleration in m/s² at the
// given center distance in km.
func (c *CelestialBody) GravityAtDistance(distanceKm float64) (float64, error) {
	if distanceKm <= 0 {
		return 0, fmt.Errorf("%s gravity at %g km: %w", c.Name, distanceKm, ErrInvalidArgument)
	}
	distanceM := distanceKm * 1e3
	return G * c.Mass / (distanceM * distanceM), nil
}

// OrbitalVelocity returns the circular orbit velocity in m/s at the given
// altitude above the surface in km.
func (c *CelestialBody) OrbitalVelocity(altitudeKm float64) (float64, error) {
	orbitRadiusKm := c.Radius + altitudeKm
	if orbitRadiusKm <= 0 {
		return 0, fmt.Errorf("%s orbital velocity at %g km altitude: %w", c.Name, altitudeKm, ErrInvalidArgument)
	}
	return math.Sqrt(G * c.Mass / (orbitRadiusKm * 1e3)), nil
}

// EscapeVelocity returns the escape velocity at the surface in m/s.
func (c *CelestialBody) EscapeVelocity() float64 {
	return math.Sqrt(2 * G * c.Mass / (c.Radius * 1e3))
}

// CurrentOrbitalVelocity returns the circular orbit velocity in m/s of this
// body around its parent at its actual orbital radius.
func (c *CelestialBody) CurrentOrbitalVelocity() (float64, error) {
	if c.parent == nil {
		return 0, fmt.Errorf("%s does not orbit anything: %w", c.Name, ErrInvalidArgument)
	}
	return math.Sqrt(c.parent.GM() / (c.distanceKm * 1e3)), nil
}

// SphereOfInfluence returns the radius in km within which this body's gravity
// dominates its parent's, computed from the mass ratio. The root body has no
// SOI (its influence is unbounded in this model).
func (c *CelestialBody) SphereOfInfluence() (float64, error) {
	if c.parent == nil {
		return 0, fmt.Errorf("%s: %w", c.Name, ErrUndefinedSOI)
	}
	return c.distanceKm * math.Pow(c.Mass/c.parent.Mass, 0.4), nil
}

// String implements the Stringer interface.
func (c *CelestialBody) String() string {
	if c.parent == nil {
		return fmt.Sprintf("%s (%.2e kg, %.1f km)", c.Name, c.Mass, c.Radius)
	}
	return fmt.Sprintf("%s (%.2e kg, %.1f km, orbiting %s)", c.Name, c.Mass, c.Radius, c.parent.Name)
}
