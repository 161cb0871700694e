package terrain

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/Faultbox/terrain-viewer/pkg/math"
)

func TestBuildMeshFlatQuadNormals(t *testing.T) {
	// Unit quad in the XY plane (z=0), wound counter-clockwise seen from +Z.
	vertices := []float32{
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 0,
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}

	mesh, err := BuildMesh(vertices, indices)
	if err != nil {
		t.Fatalf("BuildMesh: %v", err)
	}

	want := math.Vec3{X: 0, Y: 0, Z: 1}
	for i, n := range mesh.Normals {
		if n != want {
			t.Errorf("normal %d = %v, want %v", i, n, want)
		}
	}
}

func TestBuildMeshCentersBounds(t *testing.T) {
	vertices := []float32{
		10, 5, -3,
		14, 9, -1,
		12, 7, 4,
		11, 20, 0,
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}

	mesh, err := BuildMesh(vertices, indices)
	if err != nil {
		t.Fatalf("BuildMesh: %v", err)
	}

	got := computeBounds(mesh.Vertices).Center()
	if got.Length() > 1e-5 {
		t.Errorf("bounding box center = %v, want origin", got)
	}
	if mesh.Bounds.Center().Length() > 1e-5 {
		t.Errorf("reported bounds center = %v, want origin", mesh.Bounds.Center())
	}

	size := mesh.Bounds.Size()
	if size != (math.Vec3{X: 4, Y: 15, Z: 7}) {
		t.Errorf("bounds size = %v, want (4, 15, 7)", size)
	}
}

func TestBuildMeshCentersAnyInput(t *testing.T) {
	tests := []struct {
		name     string
		vertices []float32
		tol      float32
	}{
		{
			name: "far from origin",
			vertices: []float32{
				1048576, -2048, 524288,
				1048584, -2040, 524296,
				1048576, -2044, 524300,
			},
			tol: 1e-3,
		},
		{
			name: "negative octant",
			vertices: []float32{
				-3, -1, -7,
				-1, -1, -7,
				-3, 2, -2,
			},
			tol: 1e-5,
		},
		{
			name: "already centred",
			vertices: []float32{
				-1, 0, -1,
				1, 0, -1,
				0, 2, 1,
				0, -2, 1,
			},
			tol: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			indices := []uint32{0, 2, 1}
			if len(tt.vertices) == 12 {
				indices = append(indices, 0, 3, 2)
			}
			mesh, err := BuildMesh(tt.vertices, indices)
			if err != nil {
				t.Fatalf("BuildMesh: %v", err)
			}

			if c := computeBounds(mesh.Vertices).Center(); c.Length() > tt.tol {
				t.Errorf("bounding box center = %v, want origin", c)
			}
			if c := mesh.Bounds.Center(); c.Length() > tt.tol {
				t.Errorf("reported bounds center = %v, want origin", c)
			}

			// Centring is a pure translation.
			in := func(i int) math.Vec3 { return math.Vec3At(tt.vertices, i) }
			for i := 1; i < mesh.VertexCount(); i++ {
				want := in(i).Sub(in(0))
				got := mesh.Vertices[i].Sub(mesh.Vertices[0])
				if got.Sub(want).Length() > tt.tol {
					t.Errorf("vertex %d offset = %v, want %v", i, got, want)
				}
			}
			if tt.tol == 0 {
				for i := range mesh.Vertices {
					if mesh.Vertices[i] != in(i) {
						t.Errorf("vertex %d moved to %v", i, mesh.Vertices[i])
					}
				}
			}
		})
	}
}

func TestBuildMeshDoesNotMutateInput(t *testing.T) {
	vertices := []float32{5, 5, 5, 6, 5, 5, 5, 5, 6}
	indices := []uint32{0, 2, 1}
	orig := append([]float32(nil), vertices...)

	mesh, err := BuildMesh(vertices, indices)
	if err != nil {
		t.Fatalf("BuildMesh: %v", err)
	}
	for i := range vertices {
		if vertices[i] != orig[i] {
			t.Fatalf("input vertex %d changed: %v -> %v", i, orig[i], vertices[i])
		}
	}

	indices[0] = 2
	if mesh.Indices[0] != 0 {
		t.Error("mesh shares the caller's index slice")
	}
}

func TestBuildMeshInvalidGeometry(t *testing.T) {
	tests := []struct {
		name     string
		vertices []float32
		indices  []uint32
	}{
		{"vertex length", []float32{0, 0, 0, 1}, nil},
		{"index length", []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, []uint32{0, 1}},
		{"index out of range", []float32{0, 0, 0, 1, 1, 1}, []uint32{0, 1, 2}},
		{"repeated vertex", []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, []uint32{0, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh, err := BuildMesh(tt.vertices, tt.indices)
			if mesh != nil {
				t.Error("expected no mesh on invalid input")
			}
			var geomErr *InvalidGeometryError
			if !errors.As(err, &geomErr) {
				t.Fatalf("expected InvalidGeometryError, got %v", err)
			}
		})
	}
}

func TestBuildMeshOutOfRangeIndexPosition(t *testing.T) {
	_, err := BuildMesh([]float32{0, 0, 0, 1, 1, 1}, []uint32{0, 1, 2})
	var geomErr *InvalidGeometryError
	if !errors.As(err, &geomErr) {
		t.Fatalf("expected InvalidGeometryError, got %v", err)
	}
	if geomErr.Index != 2 {
		t.Errorf("error index = %d, want 2", geomErr.Index)
	}
}

func TestBuildMeshUntouchedVertexKeepsZeroNormal(t *testing.T) {
	vertices := []float32{
		0, 0, 0,
		0, 0, 1,
		1, 0, 0,
		9, 9, 9, // not referenced
	}
	mesh, err := BuildMesh(vertices, []uint32{0, 1, 2})
	if err != nil {
		t.Fatalf("BuildMesh: %v", err)
	}
	if mesh.Normals[3] != (math.Vec3{}) {
		t.Errorf("untouched normal = %v, want zero", mesh.Normals[3])
	}
	if mesh.Normals[0] != (math.Vec3{X: 0, Y: 1, Z: 0}) {
		t.Errorf("normal 0 = %v, want +Y", mesh.Normals[0])
	}
}

func TestBuildMeshAreaWeightedNormals(t *testing.T) {
	// Vertex 0 is shared by a large flat triangle and a small tilted one;
	// the larger face dominates the averaged normal.
	vertices := []float32{
		0, 0, 0,
		0, 0, 10,
		10, 0, 0,
		0, 1, -1,
		-1, 0, 0,
	}
	indices := []uint32{0, 1, 2, 0, 3, 4}
	mesh, err := BuildMesh(vertices, indices)
	if err != nil {
		t.Fatalf("BuildMesh: %v", err)
	}
	n := mesh.Normals[0]
	if n.Y < 0.9 {
		t.Errorf("shared normal %v should lean towards +Y", n)
	}
	if l := n.Length(); gomath.Abs(float64(l)-1) > 1e-5 {
		t.Errorf("shared normal length = %v, want 1", l)
	}
}

func TestBuildMeshHeightRangeAxis(t *testing.T) {
	vertices := []float32{
		0, 0, 2,
		1, 0, 6,
		0, 1, 4,
	}
	mesh, err := BuildMesh(vertices, []uint32{0, 1, 2}, WithUpAxis(AxisZ))
	if err != nil {
		t.Fatalf("BuildMesh: %v", err)
	}
	if mesh.Heights != (HeightRange{Min: -2, Max: 2}) {
		t.Errorf("height range = %+v, want {-2 2}", mesh.Heights)
	}
	if got := mesh.Height(1); got != 2 {
		t.Errorf("Height(1) = %v, want 2", got)
	}
}

func TestBuildMeshUVs(t *testing.T) {
	vertices := []float32{0, 0, 0, 1, 0, 0, 0, 0, 1}
	mesh, err := BuildMesh(vertices, []uint32{0, 2, 1}, WithUVs([]float32{0, 0, 1, 0, 0, 1}))
	if err != nil {
		t.Fatalf("BuildMesh: %v", err)
	}
	if len(mesh.UVs) != 3 || mesh.UVs[1] != (math.Vec2{X: 1, Y: 0}) {
		t.Errorf("UVs = %v", mesh.UVs)
	}

	_, err = BuildMesh(vertices, []uint32{0, 2, 1}, WithUVs([]float32{0, 0}))
	var geomErr *InvalidGeometryError
	if !errors.As(err, &geomErr) {
		t.Errorf("expected InvalidGeometryError for short uv buffer, got %v", err)
	}
}

func TestBuildMeshEmpty(t *testing.T) {
	mesh, err := BuildMesh(nil, nil)
	if err != nil {
		t.Fatalf("BuildMesh(nil, nil): %v", err)
	}
	if mesh.VertexCount() != 0 || mesh.TriangleCount() != 0 {
		t.Errorf("expected empty mesh, got %d vertices %d triangles", mesh.VertexCount(), mesh.TriangleCount())
	}
}

func TestParseAxis(t *testing.T) {
	for in, want := range map[string]Axis{"x": AxisX, "Y": AxisY, "z": AxisZ, "": AxisY} {
		got, err := ParseAxis(in)
		if err != nil || got != want {
			t.Errorf("ParseAxis(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseAxis("w"); err == nil {
		t.Error("ParseAxis(w) should fail")
	}
}
