package shading

import (
	gomath "math"

	"github.com/Faultbox/terrain-viewer/internal/engine/terrain"
)

// Band boundaries on the normalised height.
const (
	lowBandEnd = 0.33
	midBandEnd = 0.66
	bandWidth  = 0.33
)

// Palette holds the three reference colours of the height ramp.
type Palette struct {
	Low  RGB
	Mid  RGB
	High RGB
}

// DefaultPalette is the blue-to-pale-yellow ramp.
func DefaultPalette() Palette {
	return Palette{
		Low:  MustParseHex("#2c7fb8"),
		Mid:  MustParseHex("#7fcdbb"),
		High: MustParseHex("#edf8b1"),
	}
}

// Normalize maps height into [0, 1] over r. An empty range yields 0.
func Normalize(height float32, r terrain.HeightRange) float32 {
	span := r.Span()
	if span == 0 {
		return 0
	}
	return clamp01((height - r.Min) / span)
}

// Map returns the colour of one vertex or fragment. height is the local,
// unscaled elevation; time is only read by HeightBandedAnimated.
func Map(height float32, r terrain.HeightRange, mode Mode, pal Palette, time float32) RGB {
	switch mode {
	case HeightBanded:
		return band(Normalize(height, r), pal)
	case HeightBandedAnimated:
		t := Normalize(height, r)
		wave := float32(gomath.Sin(float64(time*0.5 + height*0.1)))
		return band(clamp01(t+wave*0.1), pal)
	default:
		return pal.Mid
	}
}

func band(t float32, pal Palette) RGB {
	switch {
	case t < lowBandEnd:
		return Mix(pal.Low, pal.Mid, t/bandWidth)
	case t < midBandEnd:
		return Mix(pal.Mid, pal.High, (t-lowBandEnd)/bandWidth)
	default:
		return pal.High
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Mapper binds a height range and palette for repeated per-frame use.
type Mapper struct {
	Range   terrain.HeightRange
	Palette Palette
}

// NewMapper returns a mapper over r using the default palette.
func NewMapper(r terrain.HeightRange) *Mapper {
	return &Mapper{Range: r, Palette: DefaultPalette()}
}

// Color maps a single height.
func (m *Mapper) Color(height float32, mode Mode, time float32) RGB {
	return Map(height, m.Range, mode, m.Palette, time)
}

// Fill writes the colour of every height into dst, which must be at least
// as long as heights. It does not allocate.
func (m *Mapper) Fill(dst []RGB, heights []float32, mode Mode, time float32) {
	for i, h := range heights {
		dst[i] = Map(h, m.Range, mode, m.Palette, time)
	}
}
