package decoherence

// State is the single simulated two-level system. Theta and Phi place the
// state vector on the Bloch sphere, Time is the simulated clock in seconds.
type State struct {
	Coherence, Theta, Phi, Time float64
}

// Parameters are read on every step and may be changed between steps.
type Parameters struct {
	Kappa            float64 // noise intensity
	Gamma            float64 // decay rate
	InitialCoherence float64
}

type Parameter string

const (
	ParamKappa            Parameter = "kappa"
	ParamGamma            Parameter = "gamma"
	ParamInitialCoherence Parameter = "initialCoherence"
)
