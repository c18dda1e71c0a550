package generators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func position(vertices []float32, i int) [3]float32 {
	o := i * Stride
	return [3]float32{vertices[o], vertices[o+1], vertices[o+2]}
}

func length(v [3]float32) float64 {
	return math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2]))
}

func TestSphere(t *testing.T) {
	g := Sphere(2, 32, 16)
	require.Equal(t, 33*17, g.VertexCount())
	// two triangles per quad, minus one per quad on each polar ring
	assert.Len(t, g.Indices, (32*16*2-2*32)*3)

	for i := 0; i < g.VertexCount(); i++ {
		assert.InDelta(t, 2, length(position(g.Vertices, i)), 1e-5)
	}
	for _, idx := range g.Indices {
		assert.Less(t, int(idx), g.VertexCount())
	}

	north := position(g.Vertices, 0)
	assert.InDelta(t, 2, north[2], 1e-6)
	south := position(g.Vertices, g.VertexCount()-1)
	assert.InDelta(t, -2, south[2], 1e-6)
}

func TestSphereWireframe(t *testing.T) {
	g := SphereWireframe(1, 8, 4)
	assert.Len(t, g.Indices, (3*8+8*4)*2)
	for _, idx := range g.Indices {
		assert.Less(t, int(idx), g.VertexCount())
	}
}

func TestAxes(t *testing.T) {
	g := Axes(1.5)
	require.Equal(t, 6, g.VertexCount())
	assert.Equal(t, [3]float32{0, 0, -1.5}, position(g.Vertices, 4))
	assert.Equal(t, [3]float32{0, 0, 1.5}, position(g.Vertices, 5))
}

func TestStateVector(t *testing.T) {
	g := StateVector([3]float32{0, 0, 1})
	assert.Equal(t, [3]float32{}, position(g.Vertices, 0))
	assert.Equal(t, [3]float32{0, 0, 1}, position(g.Vertices, 1))

	SetStateVector(g.Vertices, [3]float32{1, 0, 0})
	assert.Equal(t, [3]float32{1, 0, 0}, position(g.Vertices, 1))
	assert.Equal(t, [3]float32{}, position(g.Vertices, 0))
}

func TestParticleCloudShell(t *testing.T) {
	c := NewParticleCloud(500, 1.2, 1.8, 11)
	require.Equal(t, 500, c.Len())
	require.Len(t, c.Vertices(), 500*Stride)
	require.Len(t, c.Indices(), 500)

	slack := float64(baseSpread) * math.Sqrt(3)
	for i := 0; i < c.Len(); i++ {
		r := length(position(c.Vertices(), i))
		assert.True(t, r >= 1.2-slack && r <= 1.8+slack, "particle %d at radius %v", i, r)
	}
}

func TestParticleCloudDeterministic(t *testing.T) {
	a := NewParticleCloud(64, 1.2, 1.8, 5)
	b := NewParticleCloud(64, 1.2, 1.8, 5)
	a.Update(3.5, 0.4)
	b.Update(3.5, 0.4)
	assert.Equal(t, a.Vertices(), b.Vertices())

	c := NewParticleCloud(64, 1.2, 1.8, 6)
	c.Update(3.5, 0.4)
	assert.NotEqual(t, a.Vertices(), c.Vertices())
}

func TestParticleCloudDrift(t *testing.T) {
	c := NewParticleCloud(32, 1.2, 1.8, 2)
	before := append([]float32(nil), c.Vertices()...)
	c.Update(10, 1)

	limit := float64(baseSpread * 2)
	moved := false
	for i := 0; i < c.Len(); i++ {
		p, q := position(before, i), position(c.Vertices(), i)
		for k := 0; k < 3; k++ {
			d := math.Abs(float64(p[k] - q[k]))
			// before was written with zero spread, so both are within one amplitude of base
			assert.LessOrEqual(t, d, limit+float64(baseSpread)+1e-6)
			if d > 0 {
				moved = true
			}
		}
	}
	assert.True(t, moved)
}
