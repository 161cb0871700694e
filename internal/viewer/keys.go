package viewer

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/terrain-viewer/internal/engine/params"
	"github.com/Faultbox/terrain-viewer/internal/engine/shading"
)

// action is something a key press asks the viewer to do.
type action int

const (
	actionNone action = iota
	actionToggleWireframe
	actionToggleAutoRotate
	actionNextMode
	actionNextColor
	actionScaleUp
	actionScaleDown
	actionRegenerate
	actionOpenDataset
	actionResetView
	actionPreset1
	actionPreset2
	actionPreset3
	actionScreenshot
	actionQuit
)

var bindings = map[sdl.Keycode]action{
	sdl.K_w:        actionToggleWireframe,
	sdl.K_r:        actionToggleAutoRotate,
	sdl.K_m:        actionNextMode,
	sdl.K_c:        actionNextColor,
	sdl.K_PLUS:     actionScaleUp,
	sdl.K_EQUALS:   actionScaleUp,
	sdl.K_KP_PLUS:  actionScaleUp,
	sdl.K_MINUS:    actionScaleDown,
	sdl.K_KP_MINUS: actionScaleDown,
	sdl.K_g:        actionRegenerate,
	sdl.K_o:        actionOpenDataset,
	sdl.K_SPACE:    actionResetView,
	sdl.K_1:        actionPreset1,
	sdl.K_2:        actionPreset2,
	sdl.K_3:        actionPreset3,
	sdl.K_F12:      actionScreenshot,
	sdl.K_ESCAPE:   actionQuit,
}

// applyToSurface handles the actions that only change render parameters.
// It reports whether a was one of them.
func applyToSurface(a action, s *params.Surface) (bool, error) {
	switch a {
	case actionToggleWireframe:
		s.ToggleWireframe()
	case actionToggleAutoRotate:
		s.SetAutoRotate(!s.Snapshot().AutoRotate)
	case actionNextMode:
		return true, s.SetColorMode(s.Snapshot().ColorMode.Next())
	case actionNextColor:
		s.SetColor(shading.NextBaseColor(s.Snapshot().Color).Color)
	case actionScaleUp:
		return true, s.SetScale(params.ClampScale(s.Snapshot().Scale + params.ScaleStep))
	case actionScaleDown:
		return true, s.SetScale(params.ClampScale(s.Snapshot().Scale - params.ScaleStep))
	default:
		return false, nil
	}
	return true, nil
}
