package decoherence

import "fmt"

// Source is the random capability a step draws its noise sample from.
// *rand.Rand satisfies it.
type Source interface {
	Float64() float64
	NormFloat64() float64
}

type Distribution int

const (
	Uniform Distribution = iota
	Gaussian
)

func (d Distribution) String() string {
	switch d {
	case Uniform:
		return "uniform"
	case Gaussian:
		return "gaussian"
	}
	return fmt.Sprintf("Distribution(%d)", int(d))
}

func ParseDistribution(name string) (Distribution, error) {
	switch name {
	case "uniform", "":
		return Uniform, nil
	case "gaussian":
		return Gaussian, nil
	}
	return Uniform, fmt.Errorf("unknown noise distribution %q", name)
}

// Sample draws one noise value. Uniform yields U(-0.5, 0.5), Gaussian N(0, 1).
func (d Distribution) Sample(src Source) float64 {
	if d == Gaussian {
		return src.NormFloat64()
	}
	return src.Float64() - 0.5
}
