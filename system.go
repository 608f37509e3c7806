package rocketry

import (
	"fmt"
	"math"
)

// System holds a forest of celestial bodies rooted at a primary. Bodies are
// enumerated in insertion order. The system owns the tree; bodies hold only
// weak back-references to their parents.
type System struct {
	bodies []*CelestialBody
	byName map[string]*CelestialBody
}

// NewSystem creates a system rooted at the given body.
func NewSystem(root *CelestialBody) (*System, error) {
	if root == nil {
		return nil, fmt.Errorf("nil root body: %w", ErrInvalidArgument)
	}
	if root.Parent() != nil {
		return nil, fmt.Errorf("root body %s has a parent: %w", root.Name, ErrInvalidArgument)
	}
	s := &System{byName: make(map[string]*CelestialBody)}
	s.bodies = append(s.bodies, root)
	s.byName[root.Name] = root
	return s, nil
}

// Add registers a body. Its parent must already be part of the system and its
// name must be unique.
func (s *System) Add(body *CelestialBody) error {
	if body == nil || body.Parent() == nil {
		return fmt.Errorf("body must be non-nil and have a parent: %w", ErrInvalidArgument)
	}
	if _, found := s.byName[body.Name]; found {
		return fmt.Errorf("duplicate body name %s: %w", body.Name, ErrInvalidArgument)
	}
	if _, found := s.byName[body.Parent().Name]; !found {
		return fmt.Errorf("parent %s of %s not in system: %w", body.Parent().Name, body.Name, ErrInvalidArgument)
	}
	s.bodies = append(s.bodies, body)
	s.byName[body.Name] = body
	return nil
}

// Bodies returns all bodies in insertion order.
func (s *System) Bodies() []*CelestialBody {
	return s.bodies
}

// BodyByName returns the named body, if present.
func (s *System) BodyByName(name string) (*CelestialBody, bool) {
	b, found := s.byName[name]
	return b, found
}

// AbsolutePosition resolves the position of a body in meters relative to the
// root by accumulating parent-frame positions up the chain. The walk is
// bounded so that a corrupt tree fails instead of hanging.
func (s *System) AbsolutePosition(body *CelestialBody) (x, y float64, err error) {
	return absolutePositionOf(body)
}

func absolutePositionOf(body *CelestialBody) (x, y float64, err error) {
	depth := 0
	for b := body; b != nil; b = b.Parent() {
		if depth >= maxHierarchyDepth {
			return 0, 0, fmt.Errorf("resolving %s: %w", body.Name, ErrCorruptHierarchy)
		}
		depth++
		bx, by := b.PositionInParentFrame()
		x += bx
		y += by
	}
	return x, y, nil
}

// Advance moves every orbiting body along its circular orbit by Δt seconds,
// using ω = √(GM_parent/r³). Each body's update reads only its own radius and
// its parent's mass, so the iteration order does not matter.
func (s *System) Advance(Δt float64) {
	for _, b := range s.bodies {
		parent := b.Parent()
		if parent == nil {
			continue
		}
		r := b.DistanceFromParent() * 1e3
		ω := math.Sqrt(parent.GM() / (r * r * r))
		b.AdvanceAngle(ω * Δt)
	}
}

// mustBody builds a catalog body, panicking on invalid literal data.
func mustBody(name string, massKg, radiusKm float64, color [3]uint8, parent *CelestialBody, distanceKm float64) *CelestialBody {
	b, err := NewCelestialBody(name, massKg, radiusKm, color, parent, distanceKm)
	if err != nil {
		panic(err)
	}
	return b
}

// NewSolarSystem builds the full body catalog: the Sun, the eight planets and
// their major moons. Masses in kg, radii and distances in km.
func NewSolarSystem() *System {
	sun := mustBody("Sun", 1.989e30, 696340.0, [3]uint8{255, 255, 0}, nil, 0)

	mercury := mustBody("Mercury", 3.285e23, 2439.7, [3]uint8{169, 169, 169}, sun, 57.9e6)
	venus := mustBody("Venus", 4.867e24, 6051.8, [3]uint8{255, 198, 73}, sun, 108.2e6)

	earth := mustBody("Earth", 5.972e24, 6371.0, [3]uint8{0, 0, 255}, sun, 149.6e6)
	moon := mustBody("Moon", 7.348e22, 1737.4, [3]uint8{128, 128, 128}, earth, 384400)

	mars := mustBody("Mars", 6.39e23, 3389.5, [3]uint8{255, 0, 0}, sun, 227.9e6)
	phobos := mustBody("Phobos", 1.06e16, 11.267, [3]uint8{169, 169, 169}, mars, 9377)
	deimos := mustBody("Deimos", 1.48e15, 6.2, [3]uint8{169, 169, 169}, mars, 23460)

	jupiter := mustBody("Jupiter", 1.898e27, 69911.0, [3]uint8{255, 165, 0}, sun, 778.5e6)
	io := mustBody("Io", 8.932e22, 1821.6, [3]uint8{255, 255, 150}, jupiter, 421700)
	europa := mustBody("Europa", 4.800e22, 1560.8, [3]uint8{255, 220, 200}, jupiter, 671100)
	ganymede := mustBody("Ganymede", 1.482e23, 2634.1, [3]uint8{169, 169, 169}, jupiter, 1070400)
	callisto := mustBody("Callisto", 1.076e23, 2410.3, [3]uint8{128, 128, 128}, jupiter, 1882700)

	saturn := mustBody("Saturn", 5.683e26, 58232.0, [3]uint8{238, 232, 205}, sun, 1.434e9)
	titan := mustBody("Titan", 1.345e23, 2574.73, [3]uint8{255, 200, 100}, saturn, 1221870)
	rhea := mustBody("Rhea", 2.307e21, 763.8, [3]uint8{200, 200, 200}, saturn, 527108)
	iapetus := mustBody("Iapetus", 1.806e21, 734.5, [3]uint8{200, 200, 200}, saturn, 3560820)
	enceladus := mustBody("Enceladus", 1.080e20, 252.1, [3]uint8{255, 255, 255}, saturn, 237948)

	uranus := mustBody("Uranus", 8.681e25, 25362.0, [3]uint8{173, 216, 230}, sun, 2.871e9)
	titania := mustBody("Titania", 3.527e21, 788.9, [3]uint8{169, 169, 169}, uranus, 435910)
	oberon := mustBody("Oberon", 3.014e21, 761.4, [3]uint8{169, 169, 169}, uranus, 583520)
	miranda := mustBody("Miranda", 6.59e19, 235.8, [3]uint8{169, 169, 169}, uranus, 129390)

	neptune := mustBody("Neptune", 1.024e26, 24622.0, [3]uint8{0, 0, 139}, sun, 4.495e9)
	triton := mustBody("Triton", 2.139e22, 1353.4, [3]uint8{200, 200, 200}, neptune, 354759)
	naiad := mustBody("Naiad", 1.9e17, 33.0, [3]uint8{169, 169, 169}, neptune, 48227)

	sys, err := NewSystem(sun)
	if err != nil {
		panic(err)
	}
	for _, b := range []*CelestialBody{
		mercury, venus,
		earth, moon,
		mars, phobos, deimos,
		jupiter, io, europa, ganymede, callisto,
		saturn, titan, rhea, iapetus, enceladus,
		uranus, titania, oberon, miranda,
		neptune, triton, naiad,
	} {
		if err := sys.Add(b); err != nil {
			panic(err)
		}
	}
	return sys
}
