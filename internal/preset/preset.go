// Package preset provides the named terrain configurations the viewer can
// start from. Each preset fixes the mesh source and the initial render
// parameters; the user can change the parameters afterwards.
package preset

import (
	"fmt"
	"sort"

	"github.com/Faultbox/terrain-viewer/internal/engine/params"
	"github.com/Faultbox/terrain-viewer/internal/engine/shading"
	"github.com/Faultbox/terrain-viewer/internal/engine/terrain"
)

// Source says where a preset's mesh comes from.
type Source int

const (
	Static Source = iota
	Procedural
)

func (s Source) String() string {
	switch s {
	case Static:
		return "static"
	case Procedural:
		return "procedural"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// Preset is a mesh source plus its initial render parameters.
type Preset struct {
	Name       string
	Source     Source
	Resolution int     // procedural only
	Size       float32 // procedural only
	UpAxis     terrain.Axis
	Params     params.RenderParameters
}

// Default is the preset used when none is configured.
const Default = "grassy"

var builtins = map[string]Preset{
	"dataset": {
		Name:   "dataset",
		Source: Static,
		UpAxis: terrain.AxisZ,
		Params: params.RenderParameters{
			Color:      shading.MustParseHex("#6b8e23"),
			Scale:      0.1,
			ColorMode:  shading.Solid,
			AutoRotate: true,
		},
	},
	"grassy": {
		Name:       "grassy",
		Source:     Procedural,
		Resolution: 100,
		Size:       100,
		UpAxis:     terrain.AxisY,
		Params: params.RenderParameters{
			Color:     shading.MustParseHex("#4CAF50"),
			Scale:     1,
			ColorMode: shading.Solid,
		},
	},
	"heightmap": {
		Name:       "heightmap",
		Source:     Procedural,
		Resolution: 128,
		Size:       100,
		UpAxis:     terrain.AxisY,
		Params: params.RenderParameters{
			Color:      shading.MustParseHex("#4CAF50"),
			Scale:      1,
			ColorMode:  shading.HeightBanded,
			AutoRotate: true,
		},
	},
}

// Lookup returns the named preset.
func Lookup(name string) (Preset, error) {
	p, ok := builtins[name]
	if !ok {
		return Preset{}, &terrain.InvalidParameterError{Param: "preset", Value: name, Reason: "unknown preset"}
	}
	return p, nil
}

// Names lists the built-in presets in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GenerateOptions returns generator options for a procedural preset.
func (p Preset) GenerateOptions() terrain.GenerateOptions {
	opts := terrain.DefaultGenerateOptions()
	if p.Resolution > 0 {
		opts.Resolution = p.Resolution
	}
	if p.Size > 0 {
		opts.Size = p.Size
	}
	return opts
}
