// Package decoherence integrates the coherence of a single two-level system
// under exponential decay and additive noise, and places the resulting
// state on the Bloch sphere.
package decoherence

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultMaxCoherence   = 0.5
	DefaultPrecessionRate = 0.5 // rad/s
	noiseScale            = 0.1
)

var ErrUnknownParameter = errors.New("unknown parameter")

type Model struct {
	MaxCoherence   float64
	PrecessionRate float64
	Noise          Distribution
}

func DefaultModel() Model {
	return Model{
		MaxCoherence:   DefaultMaxCoherence,
		PrecessionRate: DefaultPrecessionRate,
		Noise:          Uniform,
	}
}

func (m Model) Validate() error {
	if !(m.MaxCoherence > 0) || math.IsInf(m.MaxCoherence, 0) {
		return fmt.Errorf("max coherence must be positive and finite, got %v", m.MaxCoherence)
	}
	if math.IsNaN(m.PrecessionRate) || math.IsInf(m.PrecessionRate, 0) {
		return fmt.Errorf("precession rate must be finite, got %v", m.PrecessionRate)
	}
	return nil
}

// Step advances s by dt seconds. The noise sample is drawn before the decay
// is applied and the coherence is clamped only after both terms. NaN in the
// state or parameters is carried through unchanged.
func (m Model) Step(s State, p Parameters, dt float64, src Source) State {
	n := m.Noise.Sample(src)

	c := s.Coherence * math.Exp(-p.Gamma*dt)
	c += n * math.Sqrt(p.Kappa*dt) * noiseScale
	c = math.Max(0, math.Min(c, m.MaxCoherence))

	return State{
		Coherence: c,
		Theta:     m.Theta(c),
		Phi:       s.Phi + dt*m.PrecessionRate,
		Time:      s.Time + dt,
	}
}

// Theta maps coherence onto the polar angle: full coherence sits at the
// north pole, none at the south pole.
func (m Model) Theta(coherence float64) float64 {
	return math.Pi * (1 - coherence/m.MaxCoherence)
}

// Project converts polar and azimuthal angles to a point on the unit sphere.
func Project(theta, phi float64) mgl64.Vec3 {
	sinTheta, cosTheta := math.Sincos(theta)
	sinPhi, cosPhi := math.Sincos(phi)
	return mgl64.Vec3{sinTheta * cosPhi, sinTheta * sinPhi, cosTheta}
}

// Simulator owns the mutable state of one simulated system. It is not safe
// for concurrent use; the frame loop is its only caller.
type Simulator struct {
	model   Model
	state   State
	params  Parameters
	source  Source
	running bool
}

func NewSimulator(model Model, params Parameters, source Source) *Simulator {
	var s = &Simulator{
		model:   model,
		params:  params,
		source:  source,
		running: true,
	}
	s.Reset()
	return s
}

func (s *Simulator) Model() Model {
	return s.model
}

func (s *Simulator) State() State {
	return s.state
}

func (s *Simulator) Parameters() Parameters {
	return s.params
}

func (s *Simulator) IsRunning() bool {
	return s.running
}

func (s *Simulator) Toggle() {
	s.running = !s.running
}

// Tick steps the simulation when it is running. The elapsed time is
// discarded while paused.
func (s *Simulator) Tick(dt float64) State {
	if s.running {
		s.Advance(dt)
	}
	return s.state
}

// Advance steps the simulation regardless of the running flag.
func (s *Simulator) Advance(dt float64) State {
	s.state = s.model.Step(s.state, s.params, dt, s.source)
	return s.state
}

// SetParameter updates one parameter. The value is not validated and takes
// effect on the next step.
func (s *Simulator) SetParameter(name Parameter, value float64) error {
	switch name {
	case ParamKappa:
		s.params.Kappa = value
	case ParamGamma:
		s.params.Gamma = value
	case ParamInitialCoherence:
		s.params.InitialCoherence = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownParameter, string(name))
	}
	return nil
}

// Reset returns the state vector to the equator at the initial coherence.
// Kappa, gamma and the simulated time are left alone.
func (s *Simulator) Reset() {
	s.state.Coherence = s.params.InitialCoherence
	s.state.Theta = math.Pi / 2
	s.state.Phi = 0
}
