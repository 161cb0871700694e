// Package preview renders a top-down colour-mapped image of a terrain mesh
// without a GPU. North (the positive second ground axis) is up.
package preview

import (
	"fmt"
	"image"
	"image/color"
	gomath "math"

	"github.com/disintegration/gift"

	"github.com/Faultbox/terrain-viewer/internal/engine/lighting"
	"github.com/Faultbox/terrain-viewer/internal/engine/shading"
	"github.com/Faultbox/terrain-viewer/internal/engine/terrain"
	"github.com/Faultbox/terrain-viewer/pkg/math"
)

// MaxSide bounds either image dimension.
const MaxSide = 8192

// Options controls the preview.
type Options struct {
	// Width in pixels. Height 0 keeps the mesh's ground aspect ratio.
	Width  int
	Height int

	Mode    shading.Mode
	Color   shading.RGB // base colour for Solid
	Palette shading.Palette
	Time    float32 // animation time for HeightBandedAnimated

	// Smooth is the Gaussian blur sigma applied after colouring; 0 disables it.
	Smooth float32

	Background color.NRGBA // fills pixels no triangle covers
	Sun        lighting.Sun
}

// DefaultOptions returns a 512 px wide height-banded preview.
func DefaultOptions() Options {
	return Options{
		Width:   512,
		Mode:    shading.HeightBanded,
		Color:   shading.MustParseHex("#4CAF50"),
		Palette: shading.DefaultPalette(),
		Sun:     lighting.HillshadeSun(),
	}
}

// Render rasterises mesh into an image.
func Render(mesh *terrain.Mesh, opts Options) (*image.NRGBA, error) {
	cols, rows, err := size(mesh, opts)
	if err != nil {
		return nil, err
	}
	if !opts.Mode.Valid() {
		return nil, &terrain.InvalidParameterError{Param: "color mode", Value: opts.Mode, Reason: "unknown mode"}
	}

	hm, err := terrain.BuildHeightmap(mesh, cols, rows)
	if err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, cols, rows))
	for y := 0; y < rows; y++ {
		row := rows - 1 - y
		for x := 0; x < cols; x++ {
			h, covered := hm.At(x, row)
			if !covered {
				img.SetNRGBA(x, y, opts.Background)
				continue
			}
			var c shading.RGB
			if opts.Mode == shading.Solid {
				shade := opts.Sun.Shade(normalAt(hm, x, row))
				c = shading.RGB{R: opts.Color.R * shade, G: opts.Color.G * shade, B: opts.Color.B * shade}
			} else {
				c = shading.Map(h, hm.Range, opts.Mode, opts.Palette, opts.Time)
			}
			rgba := c.RGBA()
			img.SetNRGBA(x, y, color.NRGBA{R: rgba.R, G: rgba.G, B: rgba.B, A: 255})
		}
	}

	if opts.Smooth > 0 {
		g := gift.New(gift.GaussianBlur(opts.Smooth))
		dst := image.NewNRGBA(g.Bounds(img.Bounds()))
		g.Draw(dst, img)
		img = dst
	}
	return img, nil
}

// size resolves the output dimensions.
func size(mesh *terrain.Mesh, opts Options) (int, int, error) {
	cols, rows := opts.Width, opts.Height
	if cols < 2 || cols > MaxSide {
		return 0, 0, &terrain.InvalidParameterError{Param: "width", Value: cols, Reason: fmt.Sprintf("must be in [2, %d]", MaxSide)}
	}
	if rows == 0 {
		lo := mesh.Ground(mesh.Bounds.Min)
		hi := mesh.Ground(mesh.Bounds.Max)
		extent := hi.Sub(lo)
		rows = cols
		if extent.X > 0 && extent.Y > 0 {
			rows = int(gomath.Round(float64(float32(cols) * extent.Y / extent.X)))
		}
		rows = min(max(rows, 2), MaxSide)
	}
	if rows < 2 || rows > MaxSide {
		return 0, 0, &terrain.InvalidParameterError{Param: "height", Value: rows, Reason: fmt.Sprintf("must be in [2, %d]", MaxSide)}
	}
	return cols, rows, nil
}

// normalAt estimates the Y-up surface normal at a sample, with X east and
// Z north. Interior samples use central differences; edge samples fall
// back to one-sided ones.
func normalAt(hm *terrain.Heightmap, col, row int) math.Vec3 {
	lo, hi := hm.GroundBounds()
	p := math.Vec2{X: lo.X + hm.Step.X*float32(col), Y: lo.Y + hm.Step.Y*float32(row)}

	slope := func(a, b math.Vec2, run float32) float32 {
		if run <= 0 {
			return 0
		}
		ha, _ := hm.HeightAt(a)
		hb, _ := hm.HeightAt(b)
		return (hb - ha) / run
	}

	west, east := max(p.X-hm.Step.X, lo.X), min(p.X+hm.Step.X, hi.X)
	south, north := max(p.Y-hm.Step.Y, lo.Y), min(p.Y+hm.Step.Y, hi.Y)
	dx := slope(math.Vec2{X: west, Y: p.Y}, math.Vec2{X: east, Y: p.Y}, east-west)
	dy := slope(math.Vec2{X: p.X, Y: south}, math.Vec2{X: p.X, Y: north}, north-south)
	return math.Vec3{X: -dx, Y: 1, Z: -dy}.Normalize()
}
