package generators

import "math"

// Stride is the number of floats per interleaved vertex:
// position (3), normal (3), texture coordinates (2).
const Stride = 8

type Geometry struct {
	Vertices []float32
	Indices  []uint32
}

func (g Geometry) VertexCount() int {
	return len(g.Vertices) / Stride
}

func putVertex(vertices []float32, i int, position, normal [3]float32, u, v float32) {
	o := i * Stride
	copy(vertices[o:o+3], position[:])
	copy(vertices[o+3:o+6], normal[:])
	vertices[o+6] = u
	vertices[o+7] = v
}

// sphereVertices lays out (heightSegments+1) rings of (widthSegments+1)
// vertices from the north pole (+Z) to the south pole. The seam column is
// duplicated so texture coordinates wrap cleanly.
func sphereVertices(radius float32, widthSegments, heightSegments int) []float32 {
	var vertices = make([]float32, (widthSegments+1)*(heightSegments+1)*Stride)
	i := 0
	for ring := 0; ring <= heightSegments; ring++ {
		v := float32(ring) / float32(heightSegments)
		theta := float64(v) * math.Pi
		sinTheta, cosTheta := math.Sincos(theta)
		for seg := 0; seg <= widthSegments; seg++ {
			u := float32(seg) / float32(widthSegments)
			phi := float64(u) * 2 * math.Pi
			sinPhi, cosPhi := math.Sincos(phi)
			normal := [3]float32{
				float32(sinTheta * cosPhi),
				float32(sinTheta * sinPhi),
				float32(cosTheta),
			}
			position := [3]float32{normal[0] * radius, normal[1] * radius, normal[2] * radius}
			putVertex(vertices, i, position, normal, u, v)
			i++
		}
	}
	return vertices
}

// Sphere builds a triangulated UV sphere. Degenerate triangles at the poles
// are skipped.
func Sphere(radius float32, widthSegments, heightSegments int) Geometry {
	var indices []uint32
	cols := widthSegments + 1
	for ring := 0; ring < heightSegments; ring++ {
		for seg := 0; seg < widthSegments; seg++ {
			a := uint32(ring*cols + seg)
			b := a + uint32(cols)
			if ring != 0 {
				indices = append(indices, a, b, a+1)
			}
			if ring != heightSegments-1 {
				indices = append(indices, a+1, b, b+1)
			}
		}
	}
	return Geometry{
		Vertices: sphereVertices(radius, widthSegments, heightSegments),
		Indices:  indices,
	}
}

// SphereWireframe builds line pairs along every latitude ring between the
// poles and every meridian.
func SphereWireframe(radius float32, widthSegments, heightSegments int) Geometry {
	var indices []uint32
	cols := widthSegments + 1
	for ring := 1; ring < heightSegments; ring++ {
		for seg := 0; seg < widthSegments; seg++ {
			a := uint32(ring*cols + seg)
			indices = append(indices, a, a+1)
		}
	}
	for seg := 0; seg < widthSegments; seg++ {
		for ring := 0; ring < heightSegments; ring++ {
			a := uint32(ring*cols + seg)
			indices = append(indices, a, a+uint32(cols))
		}
	}
	return Geometry{
		Vertices: sphereVertices(radius, widthSegments, heightSegments),
		Indices:  indices,
	}
}

// Axes builds the x, y and z axes as three line segments through the origin.
func Axes(length float32) Geometry {
	var vertices = make([]float32, 6*Stride)
	for axis := 0; axis < 3; axis++ {
		var lo, hi, normal [3]float32
		lo[axis], hi[axis], normal[axis] = -length, length, 1
		putVertex(vertices, axis*2, lo, normal, 0, 0)
		putVertex(vertices, axis*2+1, hi, normal, 1, 0)
	}
	return Geometry{Vertices: vertices, Indices: []uint32{0, 1, 2, 3, 4, 5}}
}

// StateVector builds the segment from the origin to tip.
func StateVector(tip [3]float32) Geometry {
	var vertices = make([]float32, 2*Stride)
	SetStateVector(vertices, tip)
	return Geometry{Vertices: vertices, Indices: []uint32{0, 1}}
}

// SetStateVector moves the tip of a segment built by StateVector.
func SetStateVector(vertices []float32, tip [3]float32) {
	putVertex(vertices, 0, [3]float32{}, tip, 0, 0)
	putVertex(vertices, 1, tip, tip, 1, 0)
}
