package terrain

import (
	gomath "math"
	"math/rand"
	"time"
)

// MaxResolution keeps resolution*resolution addressable by uint32 indices.
const MaxResolution = 65535

// GenerateOptions describes a procedural terrain grid.
type GenerateOptions struct {
	Resolution int     // grid points per side, >= 2
	Size       float32 // world-space extent per side, > 0
	Elevation  ElevationParams

	// Rand drives jitter and the Perlin permutation. Nil means the
	// process-wide entropy-seeded source, so every call differs.
	Rand *rand.Rand
}

// DefaultGenerateOptions returns a 100x100 grid over 100 world units.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Resolution: 100,
		Size:       100,
		Elevation:  DefaultElevation(),
	}
}

// NewRand returns a deterministic source for seed, or an entropy-seeded one
// when seed is 0.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Validate checks the grid parameters without generating anything.
func (o GenerateOptions) Validate() error {
	if o.Resolution < 2 {
		return &InvalidParameterError{Param: "resolution", Value: o.Resolution, Reason: "must be at least 2"}
	}
	if o.Resolution > MaxResolution {
		return &InvalidParameterError{Param: "resolution", Value: o.Resolution, Reason: "grid would overflow 32-bit indices"}
	}
	size := float64(o.Size)
	if gomath.IsNaN(size) || gomath.IsInf(size, 0) {
		return &InvalidParameterError{Param: "size", Value: o.Size, Reason: "must be finite"}
	}
	if o.Size <= 0 {
		return &InvalidParameterError{Param: "size", Value: o.Size, Reason: "must be positive"}
	}
	if o.Size/float32(o.Resolution-1) == 0 {
		return &InvalidParameterError{Param: "size", Value: o.Size, Reason: "segment size underflows to zero"}
	}
	return nil
}

// Generate builds the vertex, uv and index buffers of a square height grid
// centred on the origin in the XZ plane, with Y as elevation.
//
// Vertices are emitted row by row (z outer, x inner) so vertex (x, z) has
// index z*Resolution + x. Each cell is split into two triangles wound
// counter-clockwise seen from +Y, so normals point up.
func Generate(opts GenerateOptions) (*Geometry, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	res := opts.Resolution
	size := float64(opts.Size)
	segment := size / float64(res-1)
	half := size / 2
	last := float64(res - 1)

	elev := NewElevation(opts.Elevation, opts.Rand)

	vertices := make([]float32, 0, res*res*3)
	uvs := make([]float32, 0, res*res*2)
	for z := range res {
		worldZ := float64(z)*segment - half
		for x := range res {
			worldX := float64(x)*segment - half
			vertices = append(vertices,
				float32(worldX),
				float32(elev.At(worldX, worldZ)),
				float32(worldZ),
			)
			uvs = append(uvs, float32(float64(x)/last), float32(float64(z)/last))
		}
	}

	return &Geometry{
		Vertices: vertices,
		UVs:      uvs,
		Indices:  GridIndices(res),
	}, nil
}

// GridIndices triangulates a res x res row-major vertex grid.
func GridIndices(res int) []uint32 {
	if res < 2 {
		return nil
	}
	cells := (res - 1) * (res - 1)
	indices := make([]uint32, 0, cells*6)
	stride := uint32(res)

	for z := range uint32(res - 1) {
		for x := range uint32(res - 1) {
			topLeft := z*stride + x
			topRight := topLeft + 1
			bottomLeft := (z+1)*stride + x
			bottomRight := bottomLeft + 1

			indices = append(indices,
				topLeft, bottomLeft, topRight,
				topRight, bottomLeft, bottomRight,
			)
		}
	}
	return indices
}
