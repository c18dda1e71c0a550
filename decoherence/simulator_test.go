package decoherence

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource returns the same draw every time.
type fixedSource struct {
	u, n float64
}

func (f fixedSource) Float64() float64 { return f.u }
func (f fixedSource) NormFloat64() float64 { return f.n }

func TestStepClampsUnderExtremeNoise(t *testing.T) {
	model := DefaultModel()
	draws := []fixedSource{{u: 0}, {u: math.Nextafter(1, 0)}, {u: 0.5}}
	starts := []float64{0, 0.01, 0.25, 0.49, 0.5}
	dts := []float64{0, 0.016, 1, 100, 1e6}

	for _, src := range draws {
		for _, c := range starts {
			for _, dt := range dts {
				s := model.Step(State{Coherence: c}, Parameters{Kappa: 50, Gamma: 0.05}, dt, src)
				assert.GreaterOrEqual(t, s.Coherence, 0.0)
				assert.LessOrEqual(t, s.Coherence, model.MaxCoherence)
			}
		}
	}
}

func TestStepDerivesTheta(t *testing.T) {
	model := DefaultModel()
	rng := rand.New(rand.NewSource(7))
	s := State{Coherence: 0.3}
	for i := 0; i < 200; i++ {
		s = model.Step(s, Parameters{Kappa: 0.4, Gamma: 0.05}, 0.05, rng)
		assert.InDelta(t, math.Pi*(1-s.Coherence/model.MaxCoherence), s.Theta, 1e-12)
		assert.True(t, s.Theta >= 0 && s.Theta <= math.Pi)
	}
}

func TestStepPureDecay(t *testing.T) {
	model := DefaultModel()
	s := model.Step(State{Coherence: 0.5}, Parameters{Kappa: 0, Gamma: 0.01}, 1, fixedSource{u: 0.9})
	assert.InDelta(t, 0.5*math.Exp(-0.01), s.Coherence, 1e-12)
	assert.InDelta(t, 0.4950, s.Coherence, 1e-4)

	rng := rand.New(rand.NewSource(1))
	prev := s.Coherence
	for i := 0; i < 100; i++ {
		s = model.Step(s, Parameters{Gamma: 0.2}, 0.1, rng)
		assert.LessOrEqual(t, s.Coherence, prev)
		prev = s.Coherence
	}
}

func TestStepNoiseTerm(t *testing.T) {
	model := DefaultModel()
	p := Parameters{Kappa: 0.25, Gamma: 0}
	// u = 0.75 gives n = 0.25; sqrt(0.25*1) * 0.1 * 0.25 = 0.0125
	s := model.Step(State{Coherence: 0.2}, p, 1, fixedSource{u: 0.75})
	assert.InDelta(t, 0.2125, s.Coherence, 1e-12)

	model.Noise = Gaussian
	s = model.Step(State{Coherence: 0.2}, p, 1, fixedSource{n: -1})
	assert.InDelta(t, 0.15, s.Coherence, 1e-12)
}

func TestStepPrecession(t *testing.T) {
	model := DefaultModel()
	rng := rand.New(rand.NewSource(3))
	s := State{Coherence: 0.4, Phi: 1}
	for i := 0; i < 10; i++ {
		s = model.Step(s, Parameters{Kappa: 1, Gamma: 1}, 0.5, rng)
	}
	assert.Equal(t, 1+10*0.5*0.5, s.Phi)
	assert.Equal(t, 5.0, s.Time)
}

func TestStepPropagatesNaN(t *testing.T) {
	model := DefaultModel()
	s := model.Step(State{Coherence: 0.4}, Parameters{Kappa: math.NaN(), Gamma: 0.05}, 0.1, fixedSource{u: 0.2})
	assert.True(t, math.IsNaN(s.Coherence))
	assert.True(t, math.IsNaN(s.Theta))

	s = model.Step(s, Parameters{Kappa: 0.1, Gamma: 0.05}, 0.1, fixedSource{u: 0.2})
	assert.True(t, math.IsNaN(s.Coherence), "NaN is not recovered by later steps")
}

func TestStepSeededIsReproducible(t *testing.T) {
	model := DefaultModel()
	run := func() State {
		rng := rand.New(rand.NewSource(42))
		s := State{Coherence: 0.5}
		for i := 0; i < 50; i++ {
			s = model.Step(s, Parameters{Kappa: 0.1, Gamma: 0.05}, 1.0/60, rng)
		}
		return s
	}
	assert.Equal(t, run(), run())
}

func TestProject(t *testing.T) {
	for _, phi := range []float64{0, 0.3, math.Pi, 5, -2} {
		north := Project(0, phi)
		assert.InDelta(t, 0, north.X(), 1e-12)
		assert.InDelta(t, 0, north.Y(), 1e-12)
		assert.InDelta(t, 1, north.Z(), 1e-12)

		south := Project(math.Pi, phi)
		assert.InDelta(t, 0, south.X(), 1e-12)
		assert.InDelta(t, 0, south.Y(), 1e-12)
		assert.InDelta(t, -1, south.Z(), 1e-12)
	}

	assert.InDelta(t, 1, Project(math.Pi/2, 0).X(), 1e-12)
	assert.InDelta(t, 0, Project(math.Pi/2, 0).Z(), 1e-12)

	v := Project(math.Pi/2, math.Pi/2)
	assert.InDelta(t, 0, v.X(), 1e-12)
	assert.InDelta(t, 1, v.Y(), 1e-12)
	assert.InDelta(t, 0, v.Z(), 1e-12)
}

func TestSimulatorReset(t *testing.T) {
	sim := NewSimulator(DefaultModel(), Parameters{Kappa: 0.1, Gamma: 0.05, InitialCoherence: 0.5}, rand.New(rand.NewSource(1)))
	for i := 0; i < 30; i++ {
		sim.Tick(0.1)
	}
	require.NoError(t, sim.SetParameter(ParamKappa, 0.7))
	require.NoError(t, sim.SetParameter(ParamInitialCoherence, 0.3))
	before := sim.State()

	sim.Reset()
	once := sim.State()
	sim.Reset()
	assert.Equal(t, once, sim.State())

	assert.Equal(t, 0.3, once.Coherence)
	assert.Equal(t, math.Pi/2, once.Theta)
	assert.Equal(t, 0.0, once.Phi)
	assert.Equal(t, before.Time, once.Time)
	assert.Equal(t, 0.7, sim.Parameters().Kappa)
	assert.Equal(t, 0.05, sim.Parameters().Gamma)
}

func TestSimulatorSetParameter(t *testing.T) {
	sim := NewSimulator(DefaultModel(), Parameters{}, fixedSource{u: 0.5})

	require.NoError(t, sim.SetParameter(ParamGamma, 2))
	assert.Equal(t, 2.0, sim.Parameters().Gamma)

	err := sim.SetParameter("temperature", 1)
	assert.ErrorIs(t, err, ErrUnknownParameter)
	assert.Equal(t, Parameters{Gamma: 2}, sim.Parameters())
}

func TestSimulatorPause(t *testing.T) {
	sim := NewSimulator(DefaultModel(), Parameters{Gamma: 1, InitialCoherence: 0.5}, fixedSource{u: 0.5})
	sim.Toggle()
	assert.False(t, sim.IsRunning())

	s := sim.Tick(1)
	assert.Equal(t, 0.5, s.Coherence)
	assert.Equal(t, 0.0, s.Time)

	s = sim.Advance(1)
	assert.InDelta(t, 0.5*math.Exp(-1), s.Coherence, 1e-12)
	assert.Equal(t, 1.0, s.Time)
}

func TestModelValidate(t *testing.T) {
	assert.NoError(t, DefaultModel().Validate())
	assert.Error(t, Model{MaxCoherence: 0}.Validate())
	assert.Error(t, Model{MaxCoherence: math.NaN()}.Validate())
	assert.Error(t, Model{MaxCoherence: 0.5, PrecessionRate: math.Inf(1)}.Validate())
}

func TestParseDistribution(t *testing.T) {
	d, err := ParseDistribution("gaussian")
	require.NoError(t, err)
	assert.Equal(t, Gaussian, d)

	d, err = ParseDistribution("")
	require.NoError(t, err)
	assert.Equal(t, Uniform, d)

	_, err = ParseDistribution("cauchy")
	assert.Error(t, err)
}
