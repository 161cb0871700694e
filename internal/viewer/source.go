package viewer

import (
	"fmt"

	"github.com/Faultbox/terrain-viewer/internal/config"
	"github.com/Faultbox/terrain-viewer/internal/preset"
)

// switchPreset resolves name against the current scene. The dataset path
// and generator settings carry over; the preset supplies everything else.
func switchPreset(cur config.Scene, name string) (config.Scene, error) {
	p, err := preset.Lookup(name)
	if err != nil {
		return cur, err
	}
	next := cur
	next.Preset = p
	if p.Source == preset.Static && next.Dataset == "" {
		return cur, fmt.Errorf("preset %q needs a dataset; press O to open one", name)
	}
	if p.Source == preset.Procedural {
		next.Generate.Resolution = p.Resolution
		next.Generate.Size = p.Size
	}
	return next, nil
}

// openDataset turns the current scene into a static one for path.
func openDataset(cur config.Scene, path string) config.Scene {
	next := cur
	next.Source = preset.Static
	next.Dataset = path
	if cur.Source == preset.Procedural {
		// Files that declare up_axis override this when loaded.
		if p, err := preset.Lookup("dataset"); err == nil {
			next.UpAxis = p.UpAxis
		}
	}
	return next
}
