package core

import (
	"github.com/go-gl/gl/v4.3-core/gl"

	"github.com/ob6160/Bloch/generators"
)

type Mesh struct {
	Vertices      []float32
	Texture       uint32
	Indices       []uint32
	vao, vbo, ebo uint32
	RenderMode    uint32
	usage         uint32
}

// NewMesh uploads geometry once. Meshes whose vertices change every frame
// should come from NewDynamicMesh.
func NewMesh(g generators.Geometry, mode uint32) *Mesh {
	var m = &Mesh{Vertices: g.Vertices, Indices: g.Indices, RenderMode: mode, usage: gl.STATIC_DRAW}
	m.Construct()
	return m
}

func NewDynamicMesh(g generators.Geometry, mode uint32) *Mesh {
	var m = &Mesh{Vertices: g.Vertices, Indices: g.Indices, RenderMode: mode, usage: gl.DYNAMIC_DRAW}
	m.Construct()
	return m
}

func (m *Mesh) Draw() {
	gl.BindVertexArray(m.vao)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, m.Texture)
	gl.DrawElements(m.RenderMode, int32(len(m.Indices)), gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
}

func (m *Mesh) Construct() {
	// Free up memory used for last buffers
	m.Dispose()

	if m.usage == 0 {
		m.usage = gl.STATIC_DRAW
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.ebo)
	gl.GenBuffers(1, &m.vbo)

	gl.BindVertexArray(m.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*4, gl.Ptr(m.Vertices), m.usage)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	// positions, normals, texcoords
	const stride = generators.Stride * 4
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))

	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))

	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*4))

	gl.BindVertexArray(0)
}

// UpdateVertices re-uploads m.Vertices. The vertex count must not change.
func (m *Mesh) UpdateVertices() {
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(m.Vertices)*4, gl.Ptr(m.Vertices))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (m *Mesh) Dispose() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	m.vao, m.vbo, m.ebo = 0, 0, 0
}
