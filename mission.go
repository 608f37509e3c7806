package rocketry

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	kitlog "github.com/go-kit/kit/log"
)

const (
	// StepSize is the default simulation step.
	StepSize = 1 * time.Second
)

/* Handles the tick-driven propagation of the body hierarchy and rockets. */

// Simulation drives the propagation: on every tick the hierarchy's orbit
// angles advance first, then each rocket integrates against the
// freshly-advanced body positions. Single-threaded by design; the body
// angles are owned by the advance phase and read-only everywhere else
// during a tick.
type Simulation struct {
	Name                       string
	System                     *System
	Rockets                    []*Rocket
	StartDT, StopDT, CurrentDT time.Time
	step                       time.Duration
	stopChan                   chan bool
	histChan                   chan State
	logger                     kitlog.Logger
	wg                         sync.WaitGroup
	done                       atomic.Bool
}

// State stores a propagated rocket state.
type State struct {
	DT     time.Time
	Rocket Rocket
	Parent string
}

// NewSimulation is the same as NewPreciseSimulation with the default step size.
func NewSimulation(name string, sys *System, rockets []*Rocket, start, end time.Time, conf ExportConfig) *Simulation {
	return NewPreciseSimulation(name, sys, rockets, start, end, StepSize, conf)
}

// NewPreciseSimulation returns a new Simulation with a custom time step.
// If the export config is useless, no output is written.
func NewPreciseSimulation(name string, sys *System, rockets []*Rocket, start, end time.Time, step time.Duration, conf ExportConfig) *Simulation {
	s := &Simulation{Name: name, System: sys, Rockets: rockets, StartDT: start, StopDT: end, CurrentDT: start, step: step, stopChan: make(chan bool, 1)}
	s.logger = kitlog.With(kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout)), "sim", name)
	if !conf.IsUseless() {
		s.histChan = make(chan State, 1000) // a 1k entry buffer
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			StreamStates(conf, s.histChan)
		}()
	}
	if end.Before(start) {
		s.logger.Log("level", "warning", "subsys", "sim", "message", "no end date")
	}
	return s
}

// LogStatus logs the status of the propagation and each vehicle.
func (s *Simulation) LogStatus() {
	for _, r := range s.Rockets {
		s.logger.Log("level", "info", "subsys", "sim", "date", s.CurrentDT, "rocket", r.Name, "parent", r.Parent().Name, "fuel(kg)", r.FuelMass, "r(km)", r.DistanceFromParent())
	}
}

// Tick performs exactly one simulation step of Δt seconds: hierarchy first,
// then the rockets.
func (s *Simulation) Tick(Δt float64) error {
	s.System.Advance(Δt)
	for _, r := range s.Rockets {
		if err := r.Update(Δt); err != nil {
			return fmt.Errorf("tick at %s: %w", s.CurrentDT, err)
		}
		pushTelemetry(r)
	}
	countTick()
	return nil
}

// PropagateUntil propagates until the given time is reached.
func (s *Simulation) PropagateUntil(dt time.Time) error {
	s.StopDT = dt
	return s.Propagate()
}

// Propagate runs the simulation until StopDT or until StopPropagation is
// called. Blocking.
func (s *Simulation) Propagate() error {
	s.LogStatus()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	go func() {
		for range ticker.C {
			if s.done.Load() {
				break
			}
			s.LogStatus()
		}
	}()
	initFuel := s.totalFuel()
	for !s.done.Load() {
		select {
		case <-s.stopChan:
			s.done.Store(true)
		default:
			if err := s.Tick(s.step.Seconds()); err != nil {
				s.done.Store(true)
				s.logger.Log("level", "critical", "subsys", "sim", "err", err)
				s.closeHist()
				s.wg.Wait()
				return err
			}
			s.CurrentDT = s.CurrentDT.Add(s.step)
			if s.histChan != nil {
				for _, r := range s.Rockets {
					s.histChan <- State{s.CurrentDT, *r, r.Parent().Name}
				}
			}
			if s.CurrentDT.Sub(s.StopDT).Nanoseconds() > 0 {
				s.done.Store(true)
			}
		}
	}
	s.closeHist()
	s.wg.Wait() // Don't return until we're done writing all the files.
	duration := s.CurrentDT.Sub(s.StartDT)
	durStr := duration.String()
	if duration.Hours() > 24 {
		durStr += fmt.Sprintf(" (~%.3fd)", duration.Hours()/24)
	}
	s.logger.Log("level", "notice", "subsys", "sim", "status", "finished", "duration", durStr, "fuel(kg)", initFuel-s.totalFuel())
	s.LogStatus()
	return nil
}

// StopPropagation is used to stop the propagation before it is completed.
func (s *Simulation) StopPropagation() {
	s.stopChan <- true
}

func (s *Simulation) closeHist() {
	if s.histChan != nil {
		close(s.histChan)
		s.histChan = nil
	}
}

func (s *Simulation) totalFuel() (fuel float64) {
	for _, r := range s.Rockets {
		fuel += r.FuelMass
	}
	return
}
