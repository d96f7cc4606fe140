package render

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when an index would reference a vertex the
// mesh does not have.
var ErrIndexOutOfRange = errors.New("render: index out of range")

// Mesh holds a vertex buffer and a triangle index buffer. At no point may an
// index reference a vertex past the end of the vertex buffer, including
// between the two halves of an update.
type Mesh struct {
	vertices []Vertex
	indices  []uint16
}

// Vertices returns the current vertex buffer.
func (m *Mesh) Vertices() []Vertex {
	return m.vertices
}

// Indices returns the current index buffer.
func (m *Mesh) Indices() []uint16 {
	return m.indices
}

// SetVertices replaces the vertex buffer. It fails if the current indices
// would then point past the end.
func (m *Mesh) SetVertices(vertices []Vertex) error {
	if err := checkIndices(m.indices, len(vertices)); err != nil {
		return err
	}
	m.vertices = append(m.vertices[:0], vertices...)
	return nil
}

// SetIndices replaces the index buffer. It fails if any index points past
// the current vertex buffer.
func (m *Mesh) SetIndices(indices []uint16) error {
	if err := checkIndices(indices, len(m.vertices)); err != nil {
		return err
	}
	m.indices = append(m.indices[:0], indices...)
	return nil
}

// Apply replaces both buffers. When the vertex count shrinks the indices are
// swapped first, otherwise the vertices are, so the mesh stays valid after
// each step.
func (m *Mesh) Apply(vertices []Vertex, indices []uint16) error {
	if err := checkIndices(indices, len(vertices)); err != nil {
		return err
	}

	if len(vertices) < len(m.vertices) {
		if err := m.SetIndices(indices); err != nil {
			return err
		}
		return m.SetVertices(vertices)
	}

	if err := m.SetVertices(vertices); err != nil {
		return err
	}
	return m.SetIndices(indices)
}

// Clear empties both buffers, indices first.
func (m *Mesh) Clear() {
	m.indices = m.indices[:0]
	m.vertices = m.vertices[:0]
}

// Draw renders the mesh onto dst, sampling src.
func (m *Mesh) Draw(dst, src Image, opts *DrawTrianglesOptions) {
	if len(m.indices) == 0 {
		return
	}
	dst.DrawTriangles(m.vertices, m.indices, src, opts)
}

func checkIndices(indices []uint16, vertexCount int) error {
	for i, idx := range indices {
		if int(idx) >= vertexCount {
			return fmt.Errorf("%w: index %d is %d, have %d vertices", ErrIndexOutOfRange, i, idx, vertexCount)
		}
	}
	return nil
}
