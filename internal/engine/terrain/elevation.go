package terrain

import (
	gomath "math"
	"math/rand"

	"github.com/aquilax/go-perlin"
)

// Wave is one periodic elevation layer:
// sin(x*Frequency + Phase) * cos(z*Frequency + Phase) * Amplitude.
type Wave struct {
	Frequency float64 `yaml:"frequency"`
	Phase     float64 `yaml:"phase"`
	Amplitude float64 `yaml:"amplitude"`
}

func (w Wave) at(x, z float64) float64 {
	return gomath.Sin(x*w.Frequency+w.Phase) * gomath.Cos(z*w.Frequency+w.Phase) * w.Amplitude
}

// ElevationParams tunes the layered height function.
type ElevationParams struct {
	Hills     Wave    `yaml:"hills"`     // large-scale rolling hills
	Undulate  Wave    `yaml:"undulate"`  // medium-scale variation
	Roughness Wave    `yaml:"roughness"` // fine-scale detail
	Jitter    float64 `yaml:"jitter"`    // upper bound of the uniform per-vertex noise

	// Optional Perlin detail; disabled while DetailAmplitude is 0.
	DetailAmplitude float64 `yaml:"detail_amplitude"`
	DetailScale     float64 `yaml:"detail_scale"`
}

// DefaultElevation returns the grassy-field tuning.
func DefaultElevation() ElevationParams {
	return ElevationParams{
		Hills:       Wave{Frequency: 0.02, Phase: 0, Amplitude: 2},
		Undulate:    Wave{Frequency: 0.05, Phase: 0.5, Amplitude: 1},
		Roughness:   Wave{Frequency: 0.1, Phase: 1.5, Amplitude: 0.5},
		Jitter:      0.2,
		DetailScale: 25,
	}
}

// Elevation evaluates ElevationParams at world positions. It is bound to one
// random source for jitter and one Perlin permutation for detail.
type Elevation struct {
	params ElevationParams
	rng    *rand.Rand
	noise  *perlin.Perlin
}

// NewElevation binds params to rng. A nil rng uses the process-wide source.
func NewElevation(params ElevationParams, rng *rand.Rand) *Elevation {
	e := &Elevation{params: params, rng: rng}
	if params.DetailAmplitude != 0 {
		e.noise = perlin.NewPerlin(2, 2, 3, e.int63())
	}
	return e
}

// Base returns the deterministic part of the height at (x, z): the three
// periodic layers plus Perlin detail, without jitter.
func (e *Elevation) Base(x, z float64) float64 {
	h := e.params.Hills.at(x, z) + e.params.Undulate.at(x, z) + e.params.Roughness.at(x, z)
	if e.noise != nil && e.params.DetailScale > 0 {
		h += e.noise.Noise2D(x/e.params.DetailScale, z/e.params.DetailScale) * e.params.DetailAmplitude
	}
	return h
}

// At returns the full height at (x, z), including a fresh jitter sample in
// [0, Jitter).
func (e *Elevation) At(x, z float64) float64 {
	h := e.Base(x, z)
	if e.params.Jitter > 0 {
		h += e.float64() * e.params.Jitter
	}
	return h
}

func (e *Elevation) float64() float64 {
	if e.rng != nil {
		return e.rng.Float64()
	}
	return rand.Float64()
}

func (e *Elevation) int63() int64 {
	if e.rng != nil {
		return e.rng.Int63()
	}
	return rand.Int63()
}
