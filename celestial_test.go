package rocketry

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/gonum/floats"
)

func TestCelestialBodyValidation(t *testing.T) {
	sun := mustBody("Sun", 1.989e30, 696340.0, [3]uint8{}, nil, 0)
	for _, tc := range []struct {
		name     string
		mass     float64
		radius   float64
		parent   *CelestialBody
		distance float64
	}{
		{"no mass", 0, 6371, nil, 0},
		{"negative mass", -1, 6371, nil, 0},
		{"no radius", 5.972e24, 0, nil, 0},
		{"root with distance", 5.972e24, 6371, nil, 100},
		{"orbiter without distance", 5.972e24, 6371, sun, 0},
		{"orbiter negative distance", 5.972e24, 6371, sun, -149.6e6},
	} {
		if _, err := NewCelestialBody(tc.name, tc.mass, tc.radius, [3]uint8{}, tc.parent, tc.distance); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("%s: expected ErrInvalidArgument, got %v", tc.name, err)
		}
	}
}

func TestCelestialBodyDeepChain(t *testing.T) {
	parent := mustBody("root", 1e30, 1e5, [3]uint8{}, nil, 0)
	var err error
	for i := 0; i < maxHierarchyDepth; i++ {
		parent, err = NewCelestialBody("link", 1e20, 1e3, [3]uint8{}, parent, 1e6)
		if err != nil {
			t.Fatalf("link %d: %v", i, err)
		}
	}
	if _, err = NewCelestialBody("one too deep", 1e20, 1e3, [3]uint8{}, parent, 1e6); !errors.Is(err, ErrCorruptHierarchy) {
		t.Fatalf("expected ErrCorruptHierarchy, got %v", err)
	}
}

func TestGravityIdentities(t *testing.T) {
	for _, body := range NewSolarSystem().Bodies() {
		gSurf := body.SurfaceGravity()
		gDist, err := body.GravityAtDistance(body.Radius)
		if err != nil {
			t.Fatalf("%s: %v", body.Name, err)
		}
		if !floats.EqualWithinAbsOrRel(gSurf, gDist, 1e-9, 1e-12) {
			t.Fatalf("%s: surface gravity %f != gravity at radius %f", body.Name, gSurf, gDist)
		}
		vOrbit0, err := body.OrbitalVelocity(0)
		if err != nil {
			t.Fatalf("%s: %v", body.Name, err)
		}
		if vEsc := body.EscapeVelocity(); !floats.EqualWithinAbsOrRel(vEsc, vOrbit0*math.Sqrt2, 1e-9, 1e-12) {
			t.Fatalf("%s: escape velocity %f != surface orbital velocity * sqrt(2) = %f", body.Name, vEsc, vOrbit0*math.Sqrt2)
		}
	}
}

func TestEarthReferenceValues(t *testing.T) {
	earth, found := NewSolarSystem().BodyByName("Earth")
	if !found {
		t.Fatal("no Earth in the catalog")
	}
	if g := earth.SurfaceGravity(); !floats.EqualWithinAbs(g, 9.82, 0.005) {
		t.Fatalf("Earth surface gravity = %f m/s²", g)
	}
	vLEO, err := earth.OrbitalVelocity(200)
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualWithinAbs(vLEO, 7788.4, 1) {
		t.Fatalf("Earth orbital velocity at 200 km = %f m/s", vLEO)
	}
	if vEsc := earth.EscapeVelocity(); !floats.EqualWithinAbs(vEsc, 11186, 2) {
		t.Fatalf("Earth escape velocity = %f m/s", vEsc)
	}
}

func TestSphereOfInfluence(t *testing.T) {
	sys := NewSolarSystem()
	sun := sys.Bodies()[0]
	if _, err := sun.SphereOfInfluence(); !errors.Is(err, ErrUndefinedSOI) {
		t.Fatalf("expected ErrUndefinedSOI for the root, got %v", err)
	}
	if _, err := sun.CurrentOrbitalVelocity(); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for the root, got %v", err)
	}
	earth, _ := sys.BodyByName("Earth")
	soi, err := earth.SphereOfInfluence()
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualWithinAbs(soi, 924500, 500) {
		t.Fatalf("Earth SOI = %f km", soi)
	}
	moon, _ := sys.BodyByName("Moon")
	soi, err = moon.SphereOfInfluence()
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualWithinAbs(soi, 66190, 50) {
		t.Fatalf("Moon SOI = %f km", soi)
	}
}

func TestAdvanceAngleWraps(t *testing.T) {
	moon := mustBody("moon", 7.348e22, 1737.4, [3]uint8{}, mustBody("planet", 5.972e24, 6371.0, [3]uint8{}, nil, 0), 384400)
	moon.AdvanceAngle(1.234)
	before := moon.OrbitAngle()
	moon.AdvanceAngle(4 * math.Pi)
	if ok, err := anglesEqual(before, moon.OrbitAngle()); !ok {
		t.Fatalf("advancing by 4π changed the angle: %v", err)
	}
	moon.AdvanceAngle(-2 * math.Pi)
	if ok, err := anglesEqual(before, moon.OrbitAngle()); !ok {
		t.Fatalf("advancing by -2π changed the angle: %v", err)
	}
	if θ := moon.OrbitAngle(); θ < 0 || θ >= 2*math.Pi {
		t.Fatalf("orbit angle %f out of [0, 2π)", θ)
	}
}

func TestPositionInParentFrame(t *testing.T) {
	planet := mustBody("planet", 5.972e24, 6371.0, [3]uint8{}, nil, 0)
	if x, y := planet.PositionInParentFrame(); x != 0 || y != 0 {
		t.Fatalf("root position = (%f, %f)", x, y)
	}
	moon := mustBody("moon", 7.348e22, 1737.4, [3]uint8{}, planet, 384400)
	x, y := moon.PositionInParentFrame()
	if !floats.EqualWithinAbs(x, 384400e3, distanceε) || !floats.EqualWithinAbs(y, 0, distanceε) {
		t.Fatalf("moon at angle 0 = (%f, %f)", x, y)
	}
	moon.AdvanceAngle(math.Pi / 2)
	x, y = moon.PositionInParentFrame()
	if !floats.EqualWithinAbs(x, 0, 1) || !floats.EqualWithinAbs(y, 384400e3, 1) {
		t.Fatalf("moon at angle π/2 = (%f, %f)", x, y)
	}
}

func TestGravityAtDistanceErrors(t *testing.T) {
	earth := mustBody("planet", 5.972e24, 6371.0, [3]uint8{}, nil, 0)
	for _, d := range []float64{0, -1} {
		if _, err := earth.GravityAtDistance(d); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("gravity at %f km: expected ErrInvalidArgument, got %v", d, err)
		}
	}
	if _, err := earth.OrbitalVelocity(-earth.Radius); !errors.Is(err, ErrInvalidArgument) {
		t.Fatal("expected ErrInvalidArgument for an orbit radius of zero")
	}
}

func TestCelestialBodyString(t *testing.T) {
	sun := mustBody("Sun", 1.989e30, 696340.0, [3]uint8{}, nil, 0)
	earth := mustBody("Earth", 5.972e24, 6371.0, [3]uint8{}, sun, 149.6e6)
	if s := earth.String(); !strings.Contains(s, "orbiting Sun") {
		t.Fatalf("unexpected String: %s", s)
	}
	if s := sun.String(); strings.Contains(s, "orbiting") {
		t.Fatalf("unexpected String: %s", s)
	}
}
