// Package lighting provides the directional light shared by the viewer and
// the offline preview.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/terrain-viewer/pkg/math"
)

// Sun is a directional light placed by compass angles in degrees.
// Azimuth turns around the up axis from +Z towards +X; elevation is
// measured from the horizon.
type Sun struct {
	Azimuth   float64
	Elevation float64
	Ambient   float32 // light floor in [0, 1]
}

// DefaultSun is a high light from behind the default camera.
func DefaultSun() Sun {
	return Sun{Azimuth: 53, Elevation: 63, Ambient: 0.35}
}

// HillshadeSun is the cartographic convention: north-west, 45 degrees up.
func HillshadeSun() Sun {
	return Sun{Azimuth: 315, Elevation: 45, Ambient: 0.35}
}

// Direction returns the normalized Y-up vector pointing towards the sun.
func (s Sun) Direction() math.Vec3 {
	az := s.Azimuth * gomath.Pi / 180
	el := s.Elevation * gomath.Pi / 180
	return math.Vec3{
		X: float32(gomath.Cos(el) * gomath.Sin(az)),
		Y: float32(gomath.Sin(el)),
		Z: float32(gomath.Cos(el) * gomath.Cos(az)),
	}
}

// Shade returns the one-sided Lambert factor for a unit normal, lifted by
// the ambient floor.
func (s Sun) Shade(normal math.Vec3) float32 {
	diffuse := max(0, normal.Dot(s.Direction()))
	return s.Ambient + (1-s.Ambient)*diffuse
}
