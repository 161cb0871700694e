package viewer

import (
	"path/filepath"
	"testing"

	"github.com/Faultbox/terrain-viewer/internal/assets"
	"github.com/Faultbox/terrain-viewer/internal/config"
	"github.com/Faultbox/terrain-viewer/internal/engine/terrain"
	"github.com/Faultbox/terrain-viewer/internal/preset"
)

func scene(t *testing.T, mutate func(*config.Config)) config.Scene {
	t.Helper()
	cfg := config.Default()
	cfg.Terrain.Seed = 3
	if mutate != nil {
		mutate(cfg)
	}
	s, err := cfg.Scene()
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSwitchPreset(t *testing.T) {
	cur := scene(t, nil)

	next, err := switchPreset(cur, "heightmap")
	if err != nil {
		t.Fatal(err)
	}
	if next.Name != "heightmap" || next.Generate.Resolution != 128 {
		t.Errorf("unexpected scene %+v", next.Preset)
	}
	if next.Generate.Rand != cur.Generate.Rand {
		t.Error("random source should carry over")
	}

	if _, err := switchPreset(cur, "dataset"); err == nil {
		t.Error("switching to dataset without a path should fail")
	}
	if _, err := switchPreset(cur, "nope"); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestOpenDataset(t *testing.T) {
	cur := scene(t, nil)
	next := openDataset(cur, "terrain.json")
	if next.Source != preset.Static || next.Dataset != "terrain.json" {
		t.Errorf("unexpected scene %+v", next)
	}
	if next.UpAxis != terrain.AxisZ {
		t.Errorf("up axis = %v, want Z", next.UpAxis)
	}
	if cur.Source != preset.Procedural {
		t.Error("openDataset modified the current scene")
	}
}

func TestOpenGeneratedDataset(t *testing.T) {
	cur := scene(t, func(c *config.Config) { c.Terrain.Resolution = 6 })
	g, err := terrain.Generate(cur.Generate)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "generated.json")
	if err := assets.Save(path, assets.FromGeometry(g, cur.UpAxis)); err != nil {
		t.Fatal(err)
	}

	mesh, err := assets.NewManager().Mesh(openDataset(cur, path), false)
	if err != nil {
		t.Fatal(err)
	}
	if mesh.UpAxis != terrain.AxisY {
		t.Errorf("up axis = %v, want Y", mesh.UpAxis)
	}
	span := mesh.Bounds.Max.Y - mesh.Bounds.Min.Y
	if d := mesh.Heights.Max - mesh.Heights.Min; d < span-1e-4 || d > span+1e-4 {
		t.Errorf("height span = %v, want %v", d, span)
	}
}
