// Package viewer runs the interactive terrain viewer: window, input, orbit
// camera and the render loop.
package viewer

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/terrain-viewer/internal/assets"
	"github.com/Faultbox/terrain-viewer/internal/config"
	"github.com/Faultbox/terrain-viewer/internal/engine/camera"
	"github.com/Faultbox/terrain-viewer/internal/engine/debug"
	"github.com/Faultbox/terrain-viewer/internal/engine/input"
	"github.com/Faultbox/terrain-viewer/internal/engine/params"
	"github.com/Faultbox/terrain-viewer/internal/engine/renderer"
	"github.com/Faultbox/terrain-viewer/internal/engine/terrain"
	"github.com/Faultbox/terrain-viewer/internal/engine/window"
	"github.com/Faultbox/terrain-viewer/internal/logger"
	"github.com/Faultbox/terrain-viewer/internal/preset"
)

// Viewer is the main viewer instance.
type Viewer struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera

	surface *params.Surface
	assets  *assets.Manager
	scene   config.Scene
	mesh    *terrain.Mesh

	// Native file dialog runs off the main thread and reports back here.
	opened     chan string
	dialogOpen atomic.Bool

	screenshots *debug.ScreenshotCapture
	capture     bool

	start time.Time
}

// New creates the window and renderer and builds the first mesh.
func New(cfg *config.Config) (*Viewer, error) {
	scene, err := cfg.Scene()
	if err != nil {
		return nil, err
	}
	surface, err := params.NewSurface(scene.Params)
	if err != nil {
		return nil, err
	}

	format, err := debug.ParseFormat(cfg.Window.ScreenshotFormat)
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		cfg:     cfg,
		log:     logger.Named("viewer"),
		surface: surface,
		assets:  assets.NewManager(),
		scene:   scene,
		opened:  make(chan string, 1),
		camera:  camera.NewOrbitCamera(),
		input:   input.New(),

		screenshots: debug.NewScreenshotCapture(cfg.Window.ScreenshotDir, "terrain", format),
	}

	v.log.Info("initializing viewer",
		zap.String("preset", scene.Name),
		zap.Stringer("source", scene.Source),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	// Build the first mesh before opening a window so bad input fails fast.
	mesh, err := v.assets.Mesh(scene, false)
	if err != nil {
		return nil, err
	}

	v.window, err = window.New(window.Config{
		Title:      "Terrain Viewer",
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Samples:    4,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the GL context the window created.
	w, h := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.DefaultConfig(w, h))
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.setMesh(mesh)
	v.log.Info("viewer initialized")
	return v, nil
}

// Run starts the render loop and blocks until the window closes.
func (v *Viewer) Run() error {
	v.running = true
	v.start = time.Now()

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting render loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleInput()

		select {
		case path := <-v.opened:
			v.open(path)
		default:
		}

		if v.surface.Dirty() {
			v.surface.Apply(v.renderer)
		}
		v.renderer.Update(dt)
		v.render()
		if v.capture {
			v.capture = false
			v.saveScreenshot()
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if v.cfg.Window.ShowFPS {
				v.window.SetTitle(fmt.Sprintf("Terrain Viewer - %s - %d fps", v.scene.Name, frameCount))
			}
			v.log.Debug("fps", zap.Int("count", frameCount), zap.Float64("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	hits, misses := v.assets.Stats()
	v.log.Info("closing viewer", zap.Int("cache_hits", hits), zap.Int("cache_misses", misses))

	v.assets.Close()
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) handleInput() {
	for _, e := range v.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			v.renderer.Resize(v.window.DrawableSize())
		case input.EventKeyDown:
			if !e.Repeat {
				v.do(bindings[e.Key])
			}
		}
	}

	if dx, dy := v.input.Drag(); dx != 0 || dy != 0 {
		v.camera.HandleDrag(float32(dx), float32(dy))
	}
	if wheel := v.input.Wheel(); wheel != 0 {
		v.camera.HandleZoom(wheel)
	}
}

func (v *Viewer) do(a action) {
	handled, err := applyToSurface(a, v.surface)
	if err != nil {
		v.log.Warn("parameter rejected", zap.Error(err))
		return
	}
	if handled {
		return
	}

	switch a {
	case actionRegenerate:
		v.rebuild(v.scene, true)
	case actionOpenDataset:
		v.openFileDialog()
	case actionResetView:
		v.fitCamera()
	case actionPreset1, actionPreset2, actionPreset3:
		v.selectPreset(preset.Names()[a-actionPreset1])
	case actionScreenshot:
		v.capture = true
	case actionQuit:
		v.running = false
	}
}

// rebuild replaces the mesh for scene. On failure the current mesh and
// scene stay in place.
func (v *Viewer) rebuild(scene config.Scene, reload bool) bool {
	start := time.Now()
	mesh, err := v.assets.Mesh(scene, reload)
	if err != nil {
		v.log.Warn("keeping previous mesh", zap.Error(err))
		return false
	}
	v.scene = scene
	v.setMesh(mesh)
	v.log.Info("mesh rebuilt",
		zap.String("preset", scene.Name),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Duration("took", time.Since(start)),
	)
	return true
}

func (v *Viewer) setMesh(mesh *terrain.Mesh) {
	v.mesh = mesh
	v.renderer.SetMesh(mesh)
	// New GPU buffers start blank, so push every parameter again.
	v.surface.Resync()
	v.fitCamera()
}

// fitCamera frames the mesh as drawn, so pending parameter changes are
// pushed first.
func (v *Viewer) fitCamera() {
	v.surface.Apply(v.renderer)
	v.camera.FitToBounds(v.mesh.Bounds, v.renderer.Model())
}

func (v *Viewer) selectPreset(name string) {
	next, err := switchPreset(v.scene, name)
	if err != nil {
		v.log.Warn("cannot switch preset", zap.String("preset", name), zap.Error(err))
		return
	}
	if v.rebuild(next, false) {
		if err := v.surface.Reset(next.Params); err != nil {
			v.log.Warn("preset parameters rejected", zap.Error(err))
		}
		v.fitCamera()
	}
}

func (v *Viewer) open(path string) {
	v.log.Info("opening dataset", zap.String("path", path))
	v.rebuild(openDataset(v.scene, path), true)
}

// openFileDialog shows a native file dialog to select a dataset.
// The dialog blocks, so it runs in a goroutine and hands the path back to
// the render loop.
func (v *Viewer) openFileDialog() {
	if !v.dialogOpen.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer v.dialogOpen.Store(false)

		filename, err := dialog.File().
			Filter("Terrain datasets", "json").
			Filter("All Files", "*").
			Title("Open Terrain Dataset").
			Load()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				v.log.Warn("file dialog failed", zap.Error(err))
			}
			return
		}
		v.opened <- filename
	}()
}

func (v *Viewer) saveScreenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

func (v *Viewer) render() {
	view := v.camera.ViewMatrix()
	proj := v.camera.ProjectionMatrix(v.renderer.Aspect())
	elapsed := float32(time.Since(v.start).Seconds())

	v.renderer.Begin()
	v.renderer.Draw(proj.Mul(view), elapsed)
	v.renderer.End()
}
