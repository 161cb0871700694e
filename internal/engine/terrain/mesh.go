package terrain

import (
	"github.com/Faultbox/terrain-viewer/pkg/math"
)

type buildConfig struct {
	upAxis Axis
	uvs    []float32
}

// BuildOption customises BuildMesh.
type BuildOption func(*buildConfig)

// WithUpAxis selects the vertex component used as elevation for the
// mesh's HeightRange. The default is AxisY.
func WithUpAxis(axis Axis) BuildOption {
	return func(c *buildConfig) {
		c.upAxis = axis
	}
}

// WithUVs attaches flat uv pairs, one per vertex.
func WithUVs(uvs []float32) BuildOption {
	return func(c *buildConfig) {
		c.uvs = uvs
	}
}

// BuildGeometry builds a mesh from generator output, carrying its UVs.
func BuildGeometry(g *Geometry, opts ...BuildOption) (*Mesh, error) {
	if len(g.UVs) > 0 {
		opts = append([]BuildOption{WithUVs(g.UVs)}, opts...)
	}
	return BuildMesh(g.Vertices, g.Indices, opts...)
}

// BuildMesh validates flat vertex and index buffers, computes smooth vertex
// normals and recentres the geometry so its bounding box midpoint sits at
// the origin. The input slices are not modified.
func BuildMesh(vertices []float32, indices []uint32, opts ...BuildOption) (*Mesh, error) {
	cfg := buildConfig{upAxis: AxisY}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := validate(vertices, indices, cfg.uvs); err != nil {
		return nil, err
	}

	vertexCount := len(vertices) / 3
	positions := make([]math.Vec3, vertexCount)
	for i := range positions {
		positions[i] = math.Vec3At(vertices, i)
	}

	// Normals are computed before centering; a translation does not change them.
	normals := computeNormals(positions, indices)
	bounds := center(positions)

	mesh := &Mesh{
		Vertices: positions,
		Normals:  normals,
		Indices:  append([]uint32(nil), indices...),
		Bounds:   bounds,
		UpAxis:   cfg.upAxis,
	}
	mesh.Heights = HeightRange{
		Min: bounds.Min.Axis(int(cfg.upAxis)),
		Max: bounds.Max.Axis(int(cfg.upAxis)),
	}

	if len(cfg.uvs) > 0 {
		mesh.UVs = make([]math.Vec2, vertexCount)
		for i := range mesh.UVs {
			mesh.UVs[i] = math.Vec2{X: cfg.uvs[i*2], Y: cfg.uvs[i*2+1]}
		}
	}

	return mesh, nil
}

func validate(vertices []float32, indices []uint32, uvs []float32) error {
	if len(vertices)%3 != 0 {
		return &InvalidGeometryError{Reason: "vertex buffer length is not a multiple of 3", Index: -1}
	}
	if len(indices)%3 != 0 {
		return &InvalidGeometryError{Reason: "index buffer length is not a multiple of 3", Index: -1}
	}
	vertexCount := uint64(len(vertices) / 3)
	if len(uvs) > 0 && uint64(len(uvs)) != vertexCount*2 {
		return &InvalidGeometryError{Reason: "uv buffer must hold one pair per vertex", Index: -1}
	}

	for i := 0; i < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		for j, idx := range [3]uint32{a, b, c} {
			if uint64(idx) >= vertexCount {
				return &InvalidGeometryError{
					Reason: "index out of range",
					Index:  i + j,
				}
			}
		}
		if a == b || b == c || a == c {
			return &InvalidGeometryError{Reason: "triangle references the same vertex twice", Index: i}
		}
	}
	return nil
}

// computeNormals accumulates the un-normalised face normal of every triangle
// onto its three corners, then normalises. Larger faces weigh more. Vertices
// no triangle touches keep the zero vector.
func computeNormals(positions []math.Vec3, indices []uint32) []math.Vec3 {
	normals := make([]math.Vec3, len(positions))

	for i := 0; i < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		pa := positions[a]
		edge1 := positions[b].Sub(pa)
		edge2 := positions[c].Sub(pa)
		face := edge1.Cross(edge2)

		normals[a] = normals[a].Add(face)
		normals[b] = normals[b].Add(face)
		normals[c] = normals[c].Add(face)
	}

	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	return normals
}

// center translates positions in place so the bounding box midpoint is the
// origin, and returns the translated bounds.
func center(positions []math.Vec3) Bounds {
	b := computeBounds(positions)
	mid := b.Center()
	if mid == (math.Vec3{}) {
		return b
	}
	for i := range positions {
		positions[i] = positions[i].Sub(mid)
	}
	return Bounds{Min: b.Min.Sub(mid), Max: b.Max.Sub(mid)}
}

func computeBounds(positions []math.Vec3) Bounds {
	if len(positions) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: positions[0], Max: positions[0]}
	for _, p := range positions[1:] {
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}
