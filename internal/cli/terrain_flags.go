package cli

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/Faultbox/terrain-viewer/internal/assets"
	"github.com/Faultbox/terrain-viewer/internal/config"
	"github.com/Faultbox/terrain-viewer/internal/engine/terrain"
)

// terrainFlags maps the shared terrain flags to their viper keys. Flags
// default to zero so the preset decides unless the user overrides.
var terrainFlags = []struct {
	key  string
	flag string
}{
	{"terrain.preset", "preset"},
	{"terrain.resolution", "resolution"},
	{"terrain.size", "size"},
	{"terrain.seed", "seed"},
	{"terrain.up_axis", "up-axis"},
	{"terrain.elevation.jitter", "jitter"},
	{"terrain.elevation.detail_amplitude", "detail"},
}

func addTerrainFlags(fs *pflag.FlagSet) {
	fs.String("preset", "", "Terrain preset (dataset, grassy, heightmap)")
	fs.Int("resolution", 0, "Grid points per side")
	fs.Float64("size", 0, "Terrain extent in world units")
	fs.Int64("seed", 0, "Jitter seed (0 = random)")
	fs.String("up-axis", "", "Elevation axis (x, y or z)")
	fs.Float64("jitter", 0, "Upper bound of per-vertex random elevation")
	fs.Float64("detail", 0, "Perlin detail amplitude (0 disables)")
}

// bindTerrainFlags binds the running command's terrain flags. Binding
// happens at run time because every subcommand owns its own flag set.
func (a *app) bindTerrainFlags(fs *pflag.FlagSet) {
	for _, tf := range terrainFlags {
		if f := fs.Lookup(tf.flag); f != nil {
			a.bind(f, tf.key)
		}
	}
}

// loadMesh resolves the scene and builds its mesh. A dataset path makes the
// scene static.
func (a *app) loadMesh(dataset string) (*terrain.Mesh, config.Scene, error) {
	cfg, err := a.terrainConfig()
	if err != nil {
		return nil, config.Scene{}, err
	}
	if dataset != "" {
		cfg.Terrain.Dataset = dataset
	}

	scene, err := cfg.Scene()
	if err != nil {
		return nil, config.Scene{}, err
	}
	mesh, err := assets.NewManager().Mesh(scene, false)
	if err != nil {
		return nil, config.Scene{}, fmt.Errorf("building mesh: %w", err)
	}
	return mesh, scene, nil
}
