// Package renderer draws terrain meshes with OpenGL 4.1.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/terrain-viewer/internal/engine/lighting"
	"github.com/Faultbox/terrain-viewer/internal/engine/params"
	"github.com/Faultbox/terrain-viewer/internal/engine/renderer/shaders"
	"github.com/Faultbox/terrain-viewer/internal/engine/shader"
	"github.com/Faultbox/terrain-viewer/internal/engine/shading"
	"github.com/Faultbox/terrain-viewer/internal/engine/terrain"
	"github.com/Faultbox/terrain-viewer/internal/logger"
	"github.com/Faultbox/terrain-viewer/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int

	ClearColor shading.RGB
	Sun        lighting.Sun
}

// DefaultConfig returns a dark background lit by the default sun.
func DefaultConfig(width, height int) Config {
	return Config{
		Width:      width,
		Height:     height,
		ClearColor: shading.RGB{R: 0.1, G: 0.1, B: 0.15},
		Sun:        lighting.DefaultSun(),
	}
}

// Renderer handles all OpenGL rendering. It implements params.Target.
type Renderer struct {
	config  Config
	log     *zap.Logger
	program *shader.Program

	// GPU buffers for the current mesh
	vao        uint32
	posVBO     uint32
	normalVBO  uint32
	colorVBO   uint32
	ebo        uint32
	indexCount int32

	colors     vertexColors
	transform  params.Transform
	wireframe  bool
	baseColor  shading.RGB
	autoRotate bool
}

var _ params.Target = (*Renderer)(nil)

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:    cfg,
		log:       logger.Named("renderer"),
		transform: params.NewTransform(1),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)
	c := cfg.ClearColor
	gl.ClearColor(c.R, c.G, c.B, 1.0)

	var err error
	r.program, err = shader.New(shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	r.clearMesh()
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// SetMesh uploads mesh, replacing the previous one. The mesh is never
// modified; heights for colour mapping are read once here.
func (r *Renderer) SetMesh(mesh *terrain.Mesh) {
	r.clearMesh()
	r.colors.reset(mesh)
	if mesh.VertexCount() == 0 || len(mesh.Indices) == 0 {
		r.log.Warn("empty mesh, nothing to draw")
		return
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	vec3Size := int(unsafe.Sizeof(math.Vec3{}))
	r.posVBO = staticBuffer(0, unsafe.Pointer(&mesh.Vertices[0]), len(mesh.Vertices)*vec3Size)
	r.normalVBO = staticBuffer(1, unsafe.Pointer(&mesh.Normals[0]), len(mesh.Normals)*vec3Size)

	// Colours are rewritten whenever the mode or the animation changes.
	gl.GenBuffers(1, &r.colorVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.colorVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.colors.rgb)*int(unsafe.Sizeof(shading.RGB{})), nil, gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(2, 3, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)
	r.indexCount = int32(len(mesh.Indices))

	gl.BindVertexArray(0)

	r.log.Debug("mesh uploaded",
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Uint32("vao", r.vao),
	)
}

func staticBuffer(location uint32, data unsafe.Pointer, size int) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, size, data, gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(location, 3, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(location)
	return vbo
}

func (r *Renderer) clearMesh() {
	for _, buf := range []*uint32{&r.posVBO, &r.normalVBO, &r.colorVBO, &r.ebo} {
		if *buf != 0 {
			gl.DeleteBuffers(1, buf)
			*buf = 0
		}
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	r.indexCount = 0
}

// SetWireframe implements params.Target.
func (r *Renderer) SetWireframe(on bool) { r.wireframe = on }

// SetBaseColor implements params.Target.
func (r *Renderer) SetBaseColor(c shading.RGB) { r.baseColor = c }

// SetScale implements params.Target.
func (r *Renderer) SetScale(s float32) { r.transform.Scale = s }

// SetColorMode implements params.Target.
func (r *Renderer) SetColorMode(m shading.Mode) { r.colors.setMode(m) }

// SetAutoRotate implements params.Target.
func (r *Renderer) SetAutoRotate(on bool) { r.autoRotate = on }

// Update advances the model rotation by dt seconds.
func (r *Renderer) Update(dt float64) {
	r.transform.Advance(dt, r.autoRotate)
}

// Model returns the current model matrix.
func (r *Renderer) Model() math.Mat4 {
	return r.transform.Model()
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders the current mesh. time is the elapsed time in seconds and
// drives the animated colour mode.
func (r *Renderer) Draw(viewProj math.Mat4, time float32) {
	if r.vao == 0 {
		return
	}

	if r.colors.refresh(time) {
		gl.BindBuffer(gl.ARRAY_BUFFER, r.colorVBO)
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(r.colors.rgb)*int(unsafe.Sizeof(shading.RGB{})), unsafe.Pointer(&r.colors.rgb[0]))
	}

	p := r.program
	p.Use()
	model := r.transform.Model()
	p.SetMat4("uModel", model)
	p.SetMat4("uViewProj", viewProj)
	p.SetVec3("uBaseColor", r.baseColor.R, r.baseColor.G, r.baseColor.B)
	// uLightDir is the direction the light travels.
	l := r.config.Sun.Direction().Scale(-1)
	p.SetVec3("uLightDir", l.X, l.Y, l.Z)
	p.SetFloat("uAmbient", r.config.Sun.Ambient)
	p.SetInt("uUseVertexColor", boolToInt(r.colors.usesVertexColor()))
	p.SetInt("uWireframe", boolToInt(r.wireframe))

	if r.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}
	gl.BindVertexArray(r.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
	if r.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// End finishes the current frame.
func (r *Renderer) End() {}

// ReadPixels reads the back buffer as bottom-up RGBA rows. Call it after
// Draw and before the buffers are swapped.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
