package renderer

import (
	"github.com/Faultbox/terrain-viewer/internal/engine/shading"
	"github.com/Faultbox/terrain-viewer/internal/engine/terrain"
)

// vertexColors keeps the per-vertex height colours in step with the colour
// mode. Banded colours only change with the mesh or the mode; animated
// colours change every frame.
type vertexColors struct {
	mapper  *shading.Mapper
	heights []float32
	rgb     []shading.RGB
	mode    shading.Mode
	dirty   bool
}

// reset binds the colours to a new mesh.
func (vc *vertexColors) reset(mesh *terrain.Mesh) {
	vc.mapper = shading.NewMapper(mesh.Heights)
	vc.heights = mesh.HeightsInto(vc.heights[:0])
	if cap(vc.rgb) < len(vc.heights) {
		vc.rgb = make([]shading.RGB, len(vc.heights))
	}
	vc.rgb = vc.rgb[:len(vc.heights)]
	vc.dirty = true
}

func (vc *vertexColors) setMode(m shading.Mode) {
	if m != vc.mode {
		vc.mode = m
		vc.dirty = true
	}
}

// usesVertexColor reports whether the shader should read the colour buffer.
func (vc *vertexColors) usesVertexColor() bool {
	return vc.mode != shading.Solid
}

// refresh recomputes the colours if needed and reports whether the GPU copy
// is stale.
func (vc *vertexColors) refresh(time float32) bool {
	if vc.mapper == nil || !vc.usesVertexColor() {
		return false
	}
	if !vc.dirty && vc.mode != shading.HeightBandedAnimated {
		return false
	}
	vc.mapper.Fill(vc.rgb, vc.heights, vc.mode, time)
	vc.dirty = false
	return true
}
