// Package config handles viewer configuration loading and management.
package config

import (
	"github.com/Faultbox/terrain-viewer/internal/engine/terrain"
	"github.com/Faultbox/terrain-viewer/internal/preset"
)

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Terrain TerrainConfig `yaml:"terrain"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	ShowFPS    bool `yaml:"show_fps"`

	// F12 writes frames here; format is png or bmp.
	ScreenshotDir    string `yaml:"screenshot_dir"`
	ScreenshotFormat string `yaml:"screenshot_format"`
}

// TerrainConfig selects the mesh source. Zero values defer to the preset.
type TerrainConfig struct {
	Preset     string                  `yaml:"preset"`
	Dataset    string                  `yaml:"dataset"` // JSON dataset path; forces a static mesh
	Resolution int                     `yaml:"resolution"`
	Size       float32                 `yaml:"size"`
	Seed       int64                   `yaml:"seed"` // 0 picks a new seed every run
	UpAxis     string                  `yaml:"up_axis"`
	Elevation  terrain.ElevationParams `yaml:"elevation"`
}

// RenderConfig overrides the preset's initial render parameters.
// Empty strings, zero scale and nil booleans keep the preset value.
type RenderConfig struct {
	Color      string  `yaml:"color"` // #rrggbb
	Scale      float32 `yaml:"scale"`
	ColorMode  string  `yaml:"color_mode"` // solid, height or gradient
	Wireframe  *bool   `yaml:"wireframe"`
	AutoRotate *bool   `yaml:"auto_rotate"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,

			ScreenshotDir:    "screenshots",
			ScreenshotFormat: "png",
		},
		Terrain: TerrainConfig{
			Preset:    preset.Default,
			Elevation: terrain.DefaultElevation(),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
