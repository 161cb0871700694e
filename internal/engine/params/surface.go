package params

import (
	"sync"

	"github.com/Faultbox/terrain-viewer/internal/engine/shading"
	"github.com/Faultbox/terrain-viewer/internal/engine/terrain"
)

// Target receives parameter changes. The renderer implements it.
type Target interface {
	SetWireframe(on bool)
	SetBaseColor(c shading.RGB)
	SetScale(s float32)
	SetColorMode(m shading.Mode)
	SetAutoRotate(on bool)
}

// Surface is the mutable parameter state shared between the input side and
// the render loop. Setters are idempotent; Apply pushes only what changed
// since the previous Apply.
type Surface struct {
	mu      sync.Mutex
	current RenderParameters
	applied RenderParameters
	synced  bool
}

// NewSurface starts from p, which must be valid.
func NewSurface(p RenderParameters) (*Surface, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Surface{current: p}, nil
}

// Snapshot returns a consistent copy of the current parameters.
func (s *Surface) Snapshot() RenderParameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SetWireframe sets wireframe display.
func (s *Surface) SetWireframe(on bool) {
	s.mu.Lock()
	s.current.Wireframe = on
	s.mu.Unlock()
}

// ToggleWireframe flips wireframe display and returns the new value.
func (s *Surface) ToggleWireframe() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Wireframe = !s.current.Wireframe
	return s.current.Wireframe
}

// SetColor sets the base colour.
func (s *Surface) SetColor(c shading.RGB) {
	s.mu.Lock()
	s.current.Color = c
	s.mu.Unlock()
}

// SetScale sets the uniform scale. Non-positive or non-finite values are
// rejected and leave the state unchanged.
func (s *Surface) SetScale(scale float32) error {
	if err := validateScale(scale); err != nil {
		return err
	}
	s.mu.Lock()
	s.current.Scale = scale
	s.mu.Unlock()
	return nil
}

// SetColorMode sets the colour mapping mode.
func (s *Surface) SetColorMode(m shading.Mode) error {
	if !m.Valid() {
		return &terrain.InvalidParameterError{Param: "color mode", Value: int(m), Reason: "unknown mode"}
	}
	s.mu.Lock()
	s.current.ColorMode = m
	s.mu.Unlock()
	return nil
}

// SetAutoRotate enables or disables the Y-axis spin.
func (s *Surface) SetAutoRotate(on bool) {
	s.mu.Lock()
	s.current.AutoRotate = on
	s.mu.Unlock()
}

// Reset replaces every parameter at once, e.g. when switching presets.
func (s *Surface) Reset(p RenderParameters) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.current = p
	s.mu.Unlock()
	return nil
}

// Dirty reports whether Apply has anything to push.
func (s *Surface) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.synced || s.current != s.applied
}

// Apply diffs the current parameters against the last applied set and
// calls only the changed setters on t. The first call pushes everything.
// It returns true if t was touched.
func (s *Surface) Apply(t Target) bool {
	s.mu.Lock()
	cur, prev, synced := s.current, s.applied, s.synced
	s.applied = cur
	s.synced = true
	s.mu.Unlock()

	changed := false
	if !synced || cur.Wireframe != prev.Wireframe {
		t.SetWireframe(cur.Wireframe)
		changed = true
	}
	if !synced || cur.Color != prev.Color {
		t.SetBaseColor(cur.Color)
		changed = true
	}
	if !synced || cur.Scale != prev.Scale {
		t.SetScale(cur.Scale)
		changed = true
	}
	if !synced || cur.ColorMode != prev.ColorMode {
		t.SetColorMode(cur.ColorMode)
		changed = true
	}
	if !synced || cur.AutoRotate != prev.AutoRotate {
		t.SetAutoRotate(cur.AutoRotate)
		changed = true
	}
	return changed
}

// Resync forces the next Apply to push every parameter, e.g. after the
// target was recreated for a new mesh.
func (s *Surface) Resync() {
	s.mu.Lock()
	s.synced = false
	s.mu.Unlock()
}
