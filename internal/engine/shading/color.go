// Package shading maps terrain elevation to colour.
package shading

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// RGB is a linear colour with channels in [0, 1].
type RGB struct {
	R, G, B float32
}

// ParseHex parses "#rrggbb", "rrggbb" or "#rgb".
func ParseHex(s string) (RGB, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("parse color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return RGB{
		R: float32((v>>16)&0xff) / 255,
		G: float32((v>>8)&0xff) / 255,
		B: float32(v&0xff) / 255,
	}, nil
}

// MustParseHex is ParseHex for compile-time constants.
func MustParseHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the colour as "#rrggbb".
func (c RGB) Hex() string {
	r, g, b := c.bytes()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// RGBA converts to an opaque image colour.
func (c RGB) RGBA() color.RGBA {
	r, g, b := c.bytes()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Array returns the channels as a GL-friendly array.
func (c RGB) Array() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

func (c RGB) bytes() (uint8, uint8, uint8) {
	return toByte(c.R), toByte(c.G), toByte(c.B)
}

func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Mix interpolates linearly per channel: a + (b-a)*t. No gamma handling.
func Mix(a, b RGB, t float32) RGB {
	return RGB{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
	}
}

// NamedColor is a selectable base colour.
type NamedColor struct {
	Name  string
	Color RGB
}

// BaseColors is the fixed base-colour palette offered to the user.
var BaseColors = []NamedColor{
	{"Grass Green", MustParseHex("#4CAF50")},
	{"Light Green", MustParseHex("#8BC34A")},
	{"Dark Green", MustParseHex("#689F38")},
	{"Brown", MustParseHex("#8b4513")},
	{"Gray", MustParseHex("#708090")},
}

// NextBaseColor returns the palette entry after c, wrapping around. A colour
// not in the palette advances to the first entry.
func NextBaseColor(c RGB) NamedColor {
	for i, nc := range BaseColors {
		if nc.Color == c {
			return BaseColors[(i+1)%len(BaseColors)]
		}
	}
	return BaseColors[0]
}
