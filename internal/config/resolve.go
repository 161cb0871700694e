package config

import (
	"fmt"

	"github.com/Faultbox/terrain-viewer/internal/engine/debug"
	"github.com/Faultbox/terrain-viewer/internal/engine/params"
	"github.com/Faultbox/terrain-viewer/internal/engine/shading"
	"github.com/Faultbox/terrain-viewer/internal/engine/terrain"
	"github.com/Faultbox/terrain-viewer/internal/logger"
	"github.com/Faultbox/terrain-viewer/internal/preset"
)

// Validate checks everything Scene would reject, plus window and logging
// settings.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d: must be positive", c.Window.Width, c.Window.Height)
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	if _, err := debug.ParseFormat(c.Window.ScreenshotFormat); err != nil {
		return err
	}
	_, err := c.Scene()
	return err
}

// Scene is the resolved startup state: a preset with every explicit
// override from the file and flags applied on top.
type Scene struct {
	preset.Preset
	Dataset  string
	Generate terrain.GenerateOptions
}

// Scene resolves the configured preset and overrides.
func (c *Config) Scene() (Scene, error) {
	name := c.Terrain.Preset
	if name == "" {
		name = preset.Default
	}
	p, err := preset.Lookup(name)
	if err != nil {
		return Scene{}, err
	}

	s := Scene{Preset: p, Dataset: c.Terrain.Dataset}
	if s.Dataset != "" {
		s.Source = preset.Static
	}
	if s.Source == preset.Static && s.Dataset == "" {
		return Scene{}, fmt.Errorf("preset %q needs a dataset path (terrain.dataset or -dataset)", name)
	}

	t := c.Terrain
	if t.Resolution != 0 {
		s.Resolution = t.Resolution
	}
	if t.Size != 0 {
		s.Size = t.Size
	}
	if t.UpAxis != "" {
		if s.UpAxis, err = terrain.ParseAxis(t.UpAxis); err != nil {
			return Scene{}, err
		}
	}

	s.Generate = p.GenerateOptions()
	if s.Resolution != 0 {
		s.Generate.Resolution = s.Resolution
	}
	if s.Size != 0 {
		s.Generate.Size = s.Size
	}
	s.Generate.Elevation = t.Elevation
	s.Generate.Rand = terrain.NewRand(t.Seed)
	if s.Source == preset.Procedural {
		if err := s.Generate.Validate(); err != nil {
			return Scene{}, err
		}
	}

	if err := c.Render.applyTo(&s.Params); err != nil {
		return Scene{}, err
	}
	if err := s.Params.Validate(); err != nil {
		return Scene{}, err
	}
	return s, nil
}

func (r RenderConfig) applyTo(p *params.RenderParameters) error {
	if r.Color != "" {
		c, err := shading.ParseHex(r.Color)
		if err != nil {
			return err
		}
		p.Color = c
	}
	if r.Scale != 0 {
		p.Scale = r.Scale
	}
	if r.ColorMode != "" {
		m, err := shading.ParseMode(r.ColorMode)
		if err != nil {
			return err
		}
		p.ColorMode = m
	}
	if r.Wireframe != nil {
		p.Wireframe = *r.Wireframe
	}
	if r.AutoRotate != nil {
		p.AutoRotate = *r.AutoRotate
	}
	return nil
}
