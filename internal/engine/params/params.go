// Package params holds the user-controlled render parameters and applies
// their changes to a rendered mesh without regenerating it.
package params

import (
	gomath "math"

	"github.com/Faultbox/terrain-viewer/internal/engine/shading"
	"github.com/Faultbox/terrain-viewer/internal/engine/terrain"
	"github.com/Faultbox/terrain-viewer/pkg/math"
)

// UI-facing scale limits. The surface itself only rejects non-positive scale.
const (
	MinScale  float32 = 0.01
	MaxScale  float32 = 2.0
	ScaleStep float32 = 0.1
)

// DefaultAngularVelocity is 0.001 rad per frame at 60 frames per second.
const DefaultAngularVelocity float32 = 0.06

// RenderParameters is the complete set of user knobs. It is independent of
// the mesh; changing it never triggers regeneration.
type RenderParameters struct {
	Wireframe  bool
	Color      shading.RGB
	Scale      float32
	ColorMode  shading.Mode
	AutoRotate bool
}

// Default returns a solid, unscaled, static parameter set.
func Default() RenderParameters {
	return RenderParameters{
		Color:     shading.BaseColors[0].Color,
		Scale:     1,
		ColorMode: shading.Solid,
	}
}

// Validate checks the fields the surface would reject.
func (p RenderParameters) Validate() error {
	if err := validateScale(p.Scale); err != nil {
		return err
	}
	if !p.ColorMode.Valid() {
		return &terrain.InvalidParameterError{Param: "color mode", Value: int(p.ColorMode), Reason: "unknown mode"}
	}
	return nil
}

func validateScale(s float32) error {
	if gomath.IsNaN(float64(s)) || gomath.IsInf(float64(s), 0) {
		return &terrain.InvalidParameterError{Param: "scale", Value: s, Reason: "must be finite"}
	}
	if s <= 0 {
		return &terrain.InvalidParameterError{Param: "scale", Value: s, Reason: "must be positive"}
	}
	return nil
}

// ClampScale limits s to the [MinScale, MaxScale] range offered by the UI.
func ClampScale(s float32) float32 {
	return max(MinScale, min(MaxScale, s))
}

// Transform is the per-mesh model transform driven by the parameters.
type Transform struct {
	Scale           float32
	RotationY       float32 // radians
	AngularVelocity float32 // radians per second while auto-rotating
}

// NewTransform returns an unrotated transform with the default spin rate.
func NewTransform(scale float32) Transform {
	return Transform{Scale: scale, AngularVelocity: DefaultAngularVelocity}
}

// Advance spins the mesh about Y by AngularVelocity*dt when autoRotate is
// set. dt is the frame delta in seconds, so the spin rate does not depend
// on the frame rate.
func (t *Transform) Advance(dt float64, autoRotate bool) {
	if !autoRotate || dt <= 0 {
		return
	}
	t.RotationY = float32(gomath.Mod(float64(t.RotationY)+float64(t.AngularVelocity)*dt, 2*gomath.Pi))
}

// Model returns the model matrix: uniform scale, then rotation about Y.
// Vertex data is never scaled.
func (t Transform) Model() math.Mat4 {
	return math.RotateY(t.RotationY).Mul(math.Scale(t.Scale, t.Scale, t.Scale))
}
