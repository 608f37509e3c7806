package rocketry

import (
	"fmt"
	"time"

	"github.com/ChristopherRabotin/ode"
)

// PredictedState is one sample of a predicted ballistic trajectory, in the
// frame of the rocket's parent at prediction time.
type PredictedState struct {
	X, Y   float64 // m
	DX, DY float64 // m/s
}

// predictor propagates a two-body state without thrust. It implements
// ode.Integrable.
type predictor struct {
	x, y, dx, dy float64
	μ            float64
	step         time.Duration
	elapsed      time.Duration
	duration     time.Duration
	samples      []PredictedState
}

// GetState returns the state for the integrator.
func (p *predictor) GetState() []float64 {
	return []float64{p.x, p.y, p.dx, p.dy}
}

// SetState sets the updated state and records the sample.
func (p *predictor) SetState(t float64, s []float64) {
	p.x, p.y, p.dx, p.dy = s[0], s[1], s[2], s[3]
	p.samples = append(p.samples, PredictedState{p.x, p.y, p.dx, p.dy})
}

// Stop implements the stop call of the integrator.
func (p *predictor) Stop(t float64) bool {
	p.elapsed += p.step
	return p.elapsed >= p.duration
}

// Func is the two-body integration function.
func (p *predictor) Func(t float64, f []float64) (fDot []float64) {
	fDot = make([]float64, 4)
	r := norm(f[0], f[1])
	bodyAcc := -p.μ / (r * r * r)
	fDot[0] = f[2]
	fDot[1] = f[3]
	fDot[2] = bodyAcc * f[0]
	fDot[3] = bodyAcc * f[1]
	return
}

// PredictTrajectory propagates the rocket's instantaneous state ballistically
// (no thrust, two-body gravity only) with an RK4 integrator and returns the
// sampled positions and velocities. The rocket itself is not mutated. Used to
// preview the coast trajectory without committing the Euler state to it.
func PredictTrajectory(r *Rocket, duration, step time.Duration) ([]PredictedState, error) {
	if duration <= 0 || step <= 0 {
		return nil, fmt.Errorf("duration=%s step=%s: %w", duration, step, ErrInvalidArgument)
	}
	if norm(r.X, r.Y) <= 0 {
		return nil, fmt.Errorf("rocket %s at frame origin: %w", r.Name, ErrInvalidArgument)
	}
	p := &predictor{x: r.X, y: r.Y, dx: r.DX, dy: r.DY, μ: r.Parent().GM(), step: step, duration: duration}
	ode.NewRK4(0, step.Seconds(), p).Solve()
	return p.samples, nil
}
