package lighting

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/terrain-viewer/pkg/math"
)

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-5
}

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name string
		sun  Sun
		want math.Vec3
	}{
		{"zenith", Sun{Elevation: 90}, math.Vec3{Y: 1}},
		{"horizon north", Sun{Azimuth: 0}, math.Vec3{Z: 1}},
		{"horizon east", Sun{Azimuth: 90}, math.Vec3{X: 1}},
	}
	for _, tt := range tests {
		got := tt.sun.Direction()
		if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) || !near(got.Z, tt.want.Z) {
			t.Errorf("%s: Direction() = %v, want %v", tt.name, got, tt.want)
		}
	}

	d := DefaultSun().Direction()
	if !near(d.Length(), 1) {
		t.Errorf("default sun direction not normalized: %v", d.Length())
	}
	if d.Y <= 0 {
		t.Error("default sun should be above the horizon")
	}
}

func TestSunShade(t *testing.T) {
	s := Sun{Elevation: 90, Ambient: 0.25}

	if got := s.Shade(math.Vec3{Y: 1}); !near(got, 1) {
		t.Errorf("facing the sun: %v, want 1", got)
	}
	if got := s.Shade(math.Vec3{X: 1}); !near(got, 0.25) {
		t.Errorf("edge-on: %v, want ambient", got)
	}
	if got := s.Shade(math.Vec3{Y: -1}); !near(got, 0.25) {
		t.Errorf("facing away: %v, want ambient", got)
	}
}
