package rocketry

import (
	"fmt"
	"math"
	"os"

	kitlog "github.com/go-kit/kit/log"
)

// Rocket defines a powered vehicle moving under patched-conic gravity.
// Position and velocity are expressed in meters and m/s relative to the
// current parent body's center; the parent changes only through SOI
// transitions. Rotation is the thrust heading in radians, 0 pointing along
// +x, and is kept in [0, 2π).
type Rocket struct {
	Name            string
	DryMass         float64 // kg
	FuelMass        float64 // kg
	Thrust          float64 // N
	FuelConsumption float64 // kg/s
	X, Y            float64
	DX, DY          float64
	Rotation        float64
	thrustFraction  float64
	parent          *CelestialBody
	logger          kitlog.Logger
}

// NewRocket creates a rocket at rest at the parent's center frame origin.
// Mass, thrust and consumption-rate arguments are validated once here so the
// derived formulas do not need to re-check them.
func NewRocket(name string, dryMass, fuelMass, thrust, fuelConsumption float64, parent *CelestialBody) (*Rocket, error) {
	if parent == nil {
		return nil, fmt.Errorf("rocket %s: nil parent body: %w", name, ErrInvalidArgument)
	}
	if dryMass <= 0 || fuelMass < 0 || thrust < 0 || fuelConsumption <= 0 {
		return nil, fmt.Errorf("rocket %s: dry=%g fuel=%g thrust=%g rate=%g: %w", name, dryMass, fuelMass, thrust, fuelConsumption, ErrInvalidArgument)
	}
	logger := kitlog.With(kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout)), "rocket", name)
	return &Rocket{Name: name, DryMass: dryMass, FuelMass: fuelMass, Thrust: thrust, FuelConsumption: fuelConsumption, parent: parent, logger: logger}, nil
}

// NewRocketInCircularOrbit creates a rocket in a prograde circular orbit at
// the given altitude above the parent's surface: at (r, 0) with velocity
// (0, v_circ).
func NewRocketInCircularOrbit(name string, dryMass, fuelMass, thrust, fuelConsumption float64, parent *CelestialBody, altitudeKm float64) (*Rocket, error) {
	r, err := NewRocket(name, dryMass, fuelMass, thrust, fuelConsumption, parent)
	if err != nil {
		return nil, err
	}
	vCirc, err := parent.OrbitalVelocity(altitudeKm)
	if err != nil {
		return nil, err
	}
	r.X = (parent.Radius + altitudeKm) * 1e3
	r.DY = vCirc
	return r, nil
}

// Parent returns the body whose frame the state is expressed in.
func (r *Rocket) Parent() *CelestialBody {
	return r.parent
}

// ThrustFraction returns the current throttle setting in [0, 1].
func (r *Rocket) ThrustFraction() float64 {
	return r.thrustFraction
}

// SetThrust sets the throttle as a fraction of maximum thrust, clamped to [0, 1].
func (r *Rocket) SetThrust(fraction float64) {
	r.thrustFraction = math.Max(0, math.Min(1, fraction))
}

// Rotate turns the rocket by Δ radians, counterclockwise for positive values.
func (r *Rocket) Rotate(Δ float64) {
	r.Rotation = wrapTwoPi(r.Rotation + Δ)
}

// DistanceFromParent returns the distance from the parent's center in km.
func (r *Rocket) DistanceFromParent() float64 {
	return norm(r.X, r.Y) / 1e3
}

// Speed returns the speed in m/s relative to the parent.
func (r *Rocket) Speed() float64 {
	return norm(r.DX, r.DY)
}

// TotalMass returns the rocket mass including fuel in kg.
func (r *Rocket) TotalMass() float64 {
	return r.DryMass + r.FuelMass
}

// MassRatio returns total mass over dry mass.
func (r *Rocket) MassRatio() float64 {
	return r.TotalMass() / r.DryMass
}

// CurrentThrust returns the thrust in Newtons at the current throttle.
func (r *Rocket) CurrentThrust() float64 {
	return r.Thrust * r.thrustFraction
}

// CurrentFuelConsumption returns the fuel flow in kg/s at the current throttle.
func (r *Rocket) CurrentFuelConsumption() float64 {
	return r.FuelConsumption * r.thrustFraction
}

// ExhaustVelocity returns the effective exhaust velocity in m/s.
func (r *Rocket) ExhaustVelocity() float64 {
	if r.FuelConsumption == 0 {
		return 0
	}
	return r.Thrust / r.FuelConsumption
}

// DeltaV returns the ideal Tsiolkovsky delta-v in m/s. Domain errors (a
// non-positive mass ratio, a zero consumption rate) are absorbed and return
// 0: this is an informational quantity, not a physics-critical one.
func (r *Rocket) DeltaV() float64 {
	ratio := r.MassRatio()
	if ratio <= 0 {
		return 0
	}
	Δv := r.ExhaustVelocity() * math.Log(ratio)
	if math.IsNaN(Δv) || math.IsInf(Δv, 0) {
		return 0
	}
	return Δv
}

// BurnTime returns the full-throttle burn time in seconds, 0 when the
// consumption rate is 0.
func (r *Rocket) BurnTime() float64 {
	if r.FuelConsumption == 0 {
		return 0
	}
	return r.FuelMass / r.FuelConsumption
}

// LocalGravity returns the gravitational acceleration in m/s² at the rocket's
// current position.
func (r *Rocket) LocalGravity() (float64, error) {
	return r.parent.GravityAtDistance(r.DistanceFromParent())
}

// ThrustToWeight returns the thrust-to-weight ratio at the current position.
func (r *Rocket) ThrustToWeight() (float64, error) {
	g, err := r.LocalGravity()
	if err != nil {
		return 0, err
	}
	return r.Thrust / (r.TotalMass() * g), nil
}

// RequiredOrbitalSpeed returns the speed in m/s of a circular orbit at the
// rocket's current radius around its parent.
func (r *Rocket) RequiredOrbitalSpeed() (float64, error) {
	return r.parent.OrbitalVelocity(r.DistanceFromParent() - r.parent.Radius)
}

// AbsolutePosition resolves the rocket's position in meters relative to the
// hierarchy root.
func (r *Rocket) AbsolutePosition() (x, y float64, err error) {
	px, py, err := absolutePositionOf(r.parent)
	if err != nil {
		return 0, 0, err
	}
	return r.X + px, r.Y + py, nil
}

// AbsoluteVelocity resolves the rocket's velocity in m/s relative to the
// hierarchy root, modelling every ancestor's motion as prograde circular.
func (r *Rocket) AbsoluteVelocity() (dx, dy float64, err error) {
	dx, dy = r.DX, r.DY
	depth := 0
	for b := r.parent; b.Parent() != nil; b = b.Parent() {
		if depth >= maxHierarchyDepth {
			return 0, 0, fmt.Errorf("resolving %s velocity: %w", r.Name, ErrCorruptHierarchy)
		}
		depth++
		speed, err := b.CurrentOrbitalVelocity()
		if err != nil {
			return 0, 0, err
		}
		sinθ, cosθ := math.Sincos(b.OrbitAngle() + math.Pi/2)
		dx += speed * cosθ
		dy += speed * sinθ
	}
	return dx, dy, nil
}

// Orbit reconstructs the rocket's current two-body orbital elements around
// its parent. Fails with ErrDegenerateOrbit on an unbound state.
func (r *Rocket) Orbit() (*Orbit, error) {
	return NewOrbitFromState(r.X, r.Y, r.DX, r.DY, r.parent.GM())
}

// Update advances the rocket state by Δt seconds: fuel depletion, gravity and
// thrust integrated with explicit Euler, then the SOI transition check.
// Explicit Euler is not symplectic, so energy drifts over long runs at large
// Δt; that is the accepted fidelity limit of this integrator.
func (r *Rocket) Update(Δt float64) error {
	if Δt <= 0 {
		return fmt.Errorf("rocket %s: Δt=%g s: %w", r.Name, Δt, ErrInvalidArgument)
	}
	if r.thrustFraction > 0 {
		r.depleteFuel(Δt)
	}

	g, err := r.LocalGravity()
	if err != nil {
		return err
	}
	ux, uy := unit(r.X, r.Y)
	r.DX += -g * ux * Δt
	r.DY += -g * uy * Δt

	if r.thrustFraction > 0 && r.FuelMass > 0 {
		accel := r.CurrentThrust() / r.TotalMass()
		sinRot, cosRot := math.Sincos(r.Rotation)
		r.DX += accel * cosRot * Δt
		r.DY += accel * sinRot * Δt
	}

	r.X += r.DX * Δt
	r.Y += r.DY * Δt

	_, err = r.CheckSOITransition()
	return err
}

func (r *Rocket) depleteFuel(Δt float64) {
	r.FuelMass = math.Max(0, r.FuelMass-r.CurrentFuelConsumption()*Δt)
}

// CheckSOITransition reparents the rocket if it has left its parent's sphere
// of influence or entered a child body's. At most one transition happens per
// call; when several child spheres contain the rocket, the nearest body
// center wins. It returns the new parent, or nil if no transition occurred.
func (r *Rocket) CheckSOITransition() (*CelestialBody, error) {
	parent := r.parent
	distanceKm := r.DistanceFromParent()

	// Leaving: the parent itself orbits something and we are outside its SOI.
	if parent.Parent() != nil {
		soi, err := parent.SphereOfInfluence()
		if err != nil {
			return nil, err
		}
		if distanceKm > soi {
			if err := r.TransitionTo(parent.Parent()); err != nil {
				return nil, err
			}
			return r.parent, nil
		}
	}

	// Entering: inside a sibling moon's (child of the parent) SOI.
	var nearest *CelestialBody
	var nearestKm float64
	for _, body := range parent.Children() {
		soi, err := body.SphereOfInfluence()
		if err != nil {
			return nil, err
		}
		bx, by := body.PositionInParentFrame()
		dKm := norm(r.X-bx, r.Y-by) / 1e3
		if dKm < soi && (nearest == nil || dKm < nearestKm) {
			nearest = body
			nearestKm = dKm
		}
	}
	if nearest == nil {
		return nil, nil
	}
	if err := r.TransitionTo(nearest); err != nil {
		return nil, err
	}
	return r.parent, nil
}

// TransitionTo re-expresses the state in the new parent's frame. Only the two
// patched-conic moves are defined: up to the current parent's parent, or down
// to one of its children. The departed/entered body's own velocity is modelled
// as circular and prograde, the velocity vector 90° ahead of its position
// vector; this is the patched-conic approximation, not its true velocity.
func (r *Rocket) TransitionTo(newParent *CelestialBody) error {
	oldParent := r.parent
	switch {
	case newParent == oldParent.Parent():
		// Leaving the SOI: fold the old parent's state into ours.
		px, py := oldParent.PositionInParentFrame()
		speed, err := oldParent.CurrentOrbitalVelocity()
		if err != nil {
			return err
		}
		velocityAngle := math.Atan2(py, px) + math.Pi/2
		sinθ, cosθ := math.Sincos(velocityAngle)
		r.X += px
		r.Y += py
		r.DX += speed * cosθ
		r.DY += speed * sinθ
	case newParent.Parent() == oldParent:
		// Entering a child SOI: subtract the child's state.
		cx, cy := newParent.PositionInParentFrame()
		speed, err := newParent.CurrentOrbitalVelocity()
		if err != nil {
			return err
		}
		velocityAngle := math.Atan2(cy, cx) + math.Pi/2
		sinθ, cosθ := math.Sincos(velocityAngle)
		r.X -= cx
		r.Y -= cy
		r.DX -= speed * cosθ
		r.DY -= speed * sinθ
	default:
		return fmt.Errorf("cannot transition from %s to %s: %w", oldParent.Name, newParent.Name, ErrMismatchedParent)
	}
	r.parent = newParent
	r.logger.Log("level", "info", "subsys", "rocket", "transition", fmt.Sprintf("%s->%s", oldParent.Name, newParent.Name), "r(km)", r.DistanceFromParent())
	return nil
}
