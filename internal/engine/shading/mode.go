package shading

import (
	"fmt"
	"strings"
)

// Mode selects how a height becomes a colour. The numeric values match the
// colorMode uniform of the terrain shader.
type Mode int

const (
	// Solid ignores height and returns the palette's mid colour.
	Solid Mode = iota
	// HeightBanded interpolates low -> mid -> high across three height bands.
	HeightBanded
	// HeightBandedAnimated perturbs the normalised height over time before banding.
	HeightBandedAnimated
)

var modeNames = map[Mode]string{
	Solid:                "solid",
	HeightBanded:         "height",
	HeightBandedAnimated: "gradient",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

// Next cycles Solid -> HeightBanded -> HeightBandedAnimated -> Solid.
// Unknown modes restart the cycle as if they were Solid.
func (m Mode) Next() Mode {
	if !m.Valid() {
		m = Solid
	}
	return (m + 1) % Mode(len(modeNames))
}

// ParseMode accepts "solid", "height" (or "banded", "height-banded") and
// "gradient" (or "animated", "height-banded-animated").
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "solid", "":
		return Solid, nil
	case "height", "banded", "height-banded":
		return HeightBanded, nil
	case "gradient", "animated", "height-banded-animated":
		return HeightBandedAnimated, nil
	}
	return Solid, fmt.Errorf("unknown color mode %q", s)
}

// MarshalText implements encoding.TextMarshaler so modes read naturally in
// YAML and flags.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid color mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}
