package math

import (
	"math"
	"testing"
)

func TestMulScaleComposes(t *testing.T) {
	m := Scale(2, 3, 4).Mul(Scale(0.5, 2, 1))
	want := Scale(1, 6, 4)
	for i := 0; i < 16; i++ {
		if m[i] != want[i] {
			t.Errorf("element %d: got %f, want %f", i, m[i], want[i])
		}
	}
}

func TestUnitScaleKeepsMatrix(t *testing.T) {
	m := RotateY(0.7)
	result := m.Mul(Scale(1, 1, 1))

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * S(1) should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestScaleTransform(t *testing.T) {
	got := Scale(2, 2, 2).TransformVec3(Vec3{1, -2, 3})
	want := Vec3{2, -4, 6}
	if got != want {
		t.Errorf("Scale.TransformVec3: got %v, want %v", got, want)
	}
}

func TestRotateYQuarterTurn(t *testing.T) {
	// +X rotated a quarter turn about +Y lands on -Z.
	got := RotateY(math.Pi / 2).TransformVec3(Vec3{1, 0, 0})
	if absf(got.X) > 1e-6 || absf(got.Y) > 1e-6 || absf(got.Z+1) > 1e-6 {
		t.Errorf("RotateY(pi/2)*(1,0,0) = %v, want (0,0,-1)", got)
	}
}

func TestModelOrder(t *testing.T) {
	// RotateY * Scale scales first, then rotates.
	m := RotateY(math.Pi / 2).Mul(Scale(2, 1, 1))
	got := m.TransformVec3(Vec3{1, 1, 0})
	if absf(got.X) > 1e-6 || absf(got.Y-1) > 1e-6 || absf(got.Z+2) > 1e-6 {
		t.Errorf("R*S: got %v, want (0,1,-2)", got)
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{0, 10, 30}
	view := LookAt(eye, Vec3{}, Vec3{0, 1, 0})
	got := view.TransformVec3(eye)
	if got.Length() > 1e-4 {
		t.Errorf("LookAt should map eye to origin, got %v", got)
	}
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
