package assets

import (
	"fmt"

	"github.com/Faultbox/terrain-viewer/internal/config"
	"github.com/Faultbox/terrain-viewer/internal/engine/terrain"
	"github.com/Faultbox/terrain-viewer/internal/preset"
)

// Mesh builds the mesh for a resolved scene. Procedural scenes draw fresh
// jitter from the scene's random source on every call. Static scenes are
// served from the cache unless reload is set.
func (m *Manager) Mesh(s config.Scene, reload bool) (*terrain.Mesh, error) {
	switch s.Source {
	case preset.Procedural:
		g, err := terrain.Generate(s.Generate)
		if err != nil {
			return nil, fmt.Errorf("generating %s terrain: %w", s.Name, err)
		}
		return terrain.BuildGeometry(g, terrain.WithUpAxis(s.UpAxis))

	case preset.Static:
		load := m.Load
		if reload {
			load = m.Reload
		}
		d, err := load(s.Dataset)
		if err != nil {
			return nil, err
		}
		mesh, err := d.Mesh(terrain.WithUpAxis(s.UpAxis))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Dataset, err)
		}
		return mesh, nil
	}
	return nil, fmt.Errorf("unknown mesh source %v", s.Source)
}
