// Package terrain builds renderable terrain meshes from flat vertex/index
// buffers or from a procedurally generated height grid.
package terrain

import (
	"github.com/Faultbox/terrain-viewer/pkg/math"
)

// Axis selects the elevation component of a vertex.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns the lower-case axis name.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisZ:
		return "z"
	default:
		return "y"
	}
}

// ParseAxis converts "x", "y" or "z" to an Axis.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AxisX, nil
	case "y", "Y", "":
		return AxisY, nil
	case "z", "Z":
		return AxisZ, nil
	}
	return AxisY, &InvalidParameterError{Param: "up axis", Value: s, Reason: "must be x, y or z"}
}

// Geometry is raw, unvalidated mesh input: flat xyz positions, optional flat
// uv pairs and triangle indices. The procedural generator emits it and
// BuildGeometry consumes it.
type Geometry struct {
	Vertices []float32
	UVs      []float32
	Indices  []uint32
}

// VertexCount returns the number of xyz triples.
func (g *Geometry) VertexCount() int {
	return len(g.Vertices) / 3
}

// TriangleCount returns the number of index triples.
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// Mesh holds a validated, centred terrain mesh ready for GPU upload.
// A Mesh is never modified after BuildMesh returns it; regeneration
// produces a new one.
type Mesh struct {
	Vertices []math.Vec3
	Normals  []math.Vec3
	UVs      []math.Vec2 // nil when the source had no texture coordinates
	Indices  []uint32

	Bounds  Bounds
	Heights HeightRange
	UpAxis  Axis
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Height returns the elevation of vertex i along the mesh's up axis.
func (m *Mesh) Height(i int) float32 {
	return m.Vertices[i].Axis(int(m.UpAxis))
}

// HeightsInto writes every vertex elevation into dst, growing it if needed.
func (m *Mesh) HeightsInto(dst []float32) []float32 {
	if cap(dst) < len(m.Vertices) {
		dst = make([]float32, len(m.Vertices))
	}
	dst = dst[:len(m.Vertices)]
	for i := range m.Vertices {
		dst[i] = m.Height(i)
	}
	return dst
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the bounding box midpoint.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// HeightRange is the elevation span of a mesh, used to normalise heights
// for colour mapping.
type HeightRange struct {
	Min float32
	Max float32
}

// Span returns Max - Min.
func (r HeightRange) Span() float32 {
	return r.Max - r.Min
}
