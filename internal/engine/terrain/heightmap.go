package terrain

import (
	gomath "math"

	"github.com/Faultbox/terrain-viewer/pkg/math"
)

// Heightmap is a regular grid of elevation samples over a mesh's ground
// plane (the two axes other than its up axis). It lets callers look up the
// surface height at any ground position without walking triangles.
type Heightmap struct {
	Altitudes []float32 // row-major, Rows*Cols
	Covered   []bool    // false where no triangle projects onto the sample
	Cols      int
	Rows      int
	Origin    math.Vec2 // ground position of sample (0, 0)
	Step      math.Vec2 // ground distance between neighbouring samples
	Range     HeightRange
	UpAxis    Axis
}

// groundAxes returns the two vertex components spanning the ground plane.
func groundAxes(up Axis) (int, int) {
	switch up {
	case AxisX:
		return 2, 1
	case AxisZ:
		return 0, 1
	default:
		return 0, 2
	}
}

// Ground projects a vertex onto the mesh's ground plane.
func (m *Mesh) Ground(v math.Vec3) math.Vec2 {
	a, b := groundAxes(m.UpAxis)
	return math.Vec2{X: v.Axis(a), Y: v.Axis(b)}
}

// BuildHeightmap rasterises every triangle of mesh onto a cols x rows sample
// grid covering its ground-plane bounds. Where triangles overlap the highest
// surface wins. Samples outside every triangle hold the mesh's minimum height.
func BuildHeightmap(mesh *Mesh, cols, rows int) (*Heightmap, error) {
	if cols < 2 || rows < 2 {
		return nil, &InvalidParameterError{Param: "heightmap size", Value: [2]int{cols, rows}, Reason: "needs at least 2x2 samples"}
	}

	lo := mesh.Ground(mesh.Bounds.Min)
	hi := mesh.Ground(mesh.Bounds.Max)
	hm := &Heightmap{
		Altitudes: make([]float32, cols*rows),
		Covered:   make([]bool, cols*rows),
		Cols:      cols,
		Rows:      rows,
		Origin:    lo,
		Step: math.Vec2{
			X: (hi.X - lo.X) / float32(cols-1),
			Y: (hi.Y - lo.Y) / float32(rows-1),
		},
		Range:  mesh.Heights,
		UpAxis: mesh.UpAxis,
	}
	for i := range hm.Altitudes {
		hm.Altitudes[i] = mesh.Heights.Min
	}
	if hm.Step.X == 0 || hm.Step.Y == 0 {
		return hm, nil
	}

	for i := 0; i < len(mesh.Indices); i += 3 {
		hm.rasterize(mesh, mesh.Indices[i], mesh.Indices[i+1], mesh.Indices[i+2])
	}
	return hm, nil
}

// toSample converts a ground position to fractional sample coordinates.
func (h *Heightmap) toSample(g math.Vec2) math.Vec2 {
	return math.Vec2{
		X: (g.X - h.Origin.X) / h.Step.X,
		Y: (g.Y - h.Origin.Y) / h.Step.Y,
	}
}

func (h *Heightmap) rasterize(mesh *Mesh, ia, ib, ic uint32) {
	pa := h.toSample(mesh.Ground(mesh.Vertices[ia]))
	pb := h.toSample(mesh.Ground(mesh.Vertices[ib]))
	pc := h.toSample(mesh.Ground(mesh.Vertices[ic]))

	area := pb.Sub(pa).Cross(pc.Sub(pa))
	if area == 0 {
		return
	}
	ha, hb, hc := mesh.Height(int(ia)), mesh.Height(int(ib)), mesh.Height(int(ic))

	minX := max(0, int(gomath.Ceil(float64(min(pa.X, pb.X, pc.X)))))
	maxX := min(h.Cols-1, int(gomath.Floor(float64(max(pa.X, pb.X, pc.X)))))
	minY := max(0, int(gomath.Ceil(float64(min(pa.Y, pb.Y, pc.Y)))))
	maxY := min(h.Rows-1, int(gomath.Floor(float64(max(pa.Y, pb.Y, pc.Y)))))

	const eps = -1e-5
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := math.Vec2{X: float32(x), Y: float32(y)}
			// Barycentric weights from edge functions, normalised by the
			// signed area so either winding works.
			w0 := pc.Sub(pb).Cross(p.Sub(pb)) / area
			w1 := pa.Sub(pc).Cross(p.Sub(pc)) / area
			w2 := pb.Sub(pa).Cross(p.Sub(pa)) / area
			if w0 < eps || w1 < eps || w2 < eps {
				continue
			}
			height := w0*ha + w1*hb + w2*hc
			idx := y*h.Cols + x
			if !h.Covered[idx] || height > h.Altitudes[idx] {
				h.Altitudes[idx] = height
				h.Covered[idx] = true
			}
		}
	}
}

// At returns the sample at (col, row).
func (h *Heightmap) At(col, row int) (float32, bool) {
	idx := row*h.Cols + col
	return h.Altitudes[idx], h.Covered[idx]
}

// HeightAt returns the bilinearly interpolated height at a ground position.
// Positions outside the grid clamp to its edge. The bool reports whether
// the nearest sample lies on the surface.
func (h *Heightmap) HeightAt(ground math.Vec2) (float32, bool) {
	s := h.toSample(ground)
	if h.Step.X == 0 {
		s.X = 0
	}
	if h.Step.Y == 0 {
		s.Y = 0
	}

	cellX := clampi(int(gomath.Floor(float64(s.X))), 0, h.Cols-2)
	cellY := clampi(int(gomath.Floor(float64(s.Y))), 0, h.Rows-2)
	fracX := clampf(s.X-float32(cellX), 0, 1)
	fracY := clampf(s.Y-float32(cellY), 0, 1)

	h00, _ := h.At(cellX, cellY)
	h10, _ := h.At(cellX+1, cellY)
	h01, _ := h.At(cellX, cellY+1)
	h11, _ := h.At(cellX+1, cellY+1)

	near := h.Covered[(cellY+int(fracY+0.5))*h.Cols+cellX+int(fracX+0.5)]

	south := h00*(1-fracX) + h10*fracX
	north := h01*(1-fracX) + h11*fracX
	return south*(1-fracY) + north*fracY, near
}

// GroundBounds returns the ground-plane rectangle covered by the grid.
func (h *Heightmap) GroundBounds() (lo, hi math.Vec2) {
	return h.Origin, math.Vec2{
		X: h.Origin.X + h.Step.X*float32(h.Cols-1),
		Y: h.Origin.Y + h.Step.Y*float32(h.Rows-1),
	}
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
