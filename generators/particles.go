package generators

import (
	"math"
	"math/rand"

	"github.com/ob6160/Bloch/utils"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Offsets decorrelate the three displacement axes sampled from one noise field.
const (
	offsetY    = 31.416
	offsetZ    = 47.853
	noiseScale = 0.8
	noiseSpeed = 0.15
	baseSpread = 0.08
)

// ParticleCloud is a shell of points around the sphere that drifts through
// a 4D simplex noise field.
type ParticleCloud struct {
	base     [][3]float32
	vertices []float32
	noise    opensimplex.Noise
}

// NewParticleCloud scatters count points uniformly in direction between
// the inner and outer radii. Placement depends only on seed.
func NewParticleCloud(count int, inner, outer float32, seed int64) *ParticleCloud {
	var rng = rand.New(rand.NewSource(seed))
	var c = &ParticleCloud{
		base:     make([][3]float32, count),
		vertices: make([]float32, count*Stride),
		noise:    opensimplex.New(seed),
	}
	mid := (inner + outer) / 2
	half := (outer - inner) / 2
	for i := range c.base {
		dir := [3]float64{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
		length := math.Sqrt(dir[0]*dir[0] + dir[1]*dir[1] + dir[2]*dir[2])
		if length == 0 {
			dir, length = [3]float64{0, 0, 1}, 1
		}
		r := utils.Jitter(rng, mid, half)
		for k := 0; k < 3; k++ {
			c.base[i][k] = float32(dir[k]/length) * r
		}
	}
	c.Update(0, 0)
	return c
}

func (c *ParticleCloud) Len() int {
	return len(c.base)
}

// Vertices returns the interleaved vertex data last written by Update.
func (c *ParticleCloud) Vertices() []float32 {
	return c.vertices
}

// Indices returns one index per point, for drawing as GL_POINTS.
func (c *ParticleCloud) Indices() []uint32 {
	var indices = make([]uint32, len(c.base))
	for i := range indices {
		indices[i] = uint32(i)
	}
	return indices
}

// Update displaces every point by at most baseSpread*(1+spread) along each
// axis at time t.
func (c *ParticleCloud) Update(t float64, spread float32) {
	amplitude := baseSpread * (1 + spread)
	w := t * noiseSpeed
	for i, p := range c.base {
		x, y, z := float64(p[0])*noiseScale, float64(p[1])*noiseScale, float64(p[2])*noiseScale
		moved := [3]float32{
			p[0] + amplitude*float32(c.noise.Eval4(x, y, z, w)),
			p[1] + amplitude*float32(c.noise.Eval4(x+offsetY, y, z, w)),
			p[2] + amplitude*float32(c.noise.Eval4(x, y+offsetZ, z, w)),
		}
		putVertex(c.vertices, i, moved, p, float32(i)/float32(len(c.base)), 0)
	}
}
