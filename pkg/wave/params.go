// Package wave synthesizes ocean surfaces from sums of Gerstner waves.
//
// A Field owns a base Parameters template and materializes two independent
// batches of perturbed waves from it: a small geometric batch that displaces
// mesh vertices and a larger normal-map batch that only feeds the lighting
// texture. Both batches cross into the renderer as flat float32 arrays with
// FloatsPerWave values per wave; Displace, DisplaceBasis and NormalMapNormal
// are the reference evaluators for those arrays and match the GLSL stages
// in internal/engine/ocean/shaders.
package wave

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-ocean/pkg/math"
)

// Gravity is the acceleration used by the dispersion relation, in m/s².
const Gravity = 9.81

// FloatsPerWave is the stride of the flattened wave layout:
// wavelength, steepness, speed, amplitude ratio, direction X, direction Y.
const FloatsPerWave = 6

// Offsets into one wave's slot of the flattened layout.
const (
	OffWavelength = iota
	OffSteepness
	OffSpeed
	OffAmpOverLen
	OffDirX
	OffDirY
)

// ErrInvalidParameter is wrapped by every InvalidParameterError.
var ErrInvalidParameter = errors.New("invalid wave parameter")

// ErrLayout is returned when a float array does not hold whole waves.
var ErrLayout = errors.New("wave array length is not a multiple of 6")

// InvalidParameterError reports which field of Parameters is out of range.
type InvalidParameterError struct {
	Field string
	Value float32
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s: %s = %g", ErrInvalidParameter, e.Field, e.Value)
}

func (e *InvalidParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// Parameters describes one wave, or the template a batch is perturbed from.
//
// Steepness outside [0,1] and a non-unit Direction are accepted; they only
// produce implausible (self-intersecting or scaled) surfaces.
type Parameters struct {
	Wavelength float32   `yaml:"wavelength" json:"wavelength"`
	Steepness  float32   `yaml:"steepness" json:"steepness"`
	Speed      float32   `yaml:"speed" json:"speed"`
	AmpOverLen float32   `yaml:"amp_over_len" json:"amp_over_len"`
	Direction  math.Vec2 `yaml:"direction" json:"direction"`
}

// Amplitude returns wavelength * amplitude ratio.
func (p Parameters) Amplitude() float32 {
	return p.Wavelength * p.AmpOverLen
}

// Omega returns the angular wavenumber 2π/λ.
func (p Parameters) Omega() float32 {
	return 2 * math32.Pi / p.Wavelength
}

// Validate checks the ranges the evaluators need to stay finite. The field
// itself never calls it; callers that accept user input do.
func (p Parameters) Validate() error {
	switch {
	case !(p.Wavelength > 0) || math32.IsInf(p.Wavelength, 0):
		return &InvalidParameterError{Field: "wavelength", Value: p.Wavelength}
	case !(p.AmpOverLen > 0) || math32.IsInf(p.AmpOverLen, 0):
		return &InvalidParameterError{Field: "amp_over_len", Value: p.AmpOverLen}
	case math32.IsNaN(p.Steepness) || p.Steepness < 0:
		return &InvalidParameterError{Field: "steepness", Value: p.Steepness}
	case math32.IsNaN(p.Speed):
		return &InvalidParameterError{Field: "speed", Value: p.Speed}
	case p.Direction.Length() == 0 || math32.IsNaN(p.Direction.Length()):
		return &InvalidParameterError{Field: "direction", Value: p.Direction.Length()}
	}
	return nil
}

// Wave is one member of a generated batch. It has no identity beyond its
// index in the batch.
type Wave struct {
	Parameters `yaml:",inline"`
}

// Flatten packs waves into the renderer layout.
func Flatten(waves []Wave) []float32 {
	out := make([]float32, 0, len(waves)*FloatsPerWave)
	for _, w := range waves {
		out = append(out,
			w.Wavelength,
			w.Steepness,
			w.Speed,
			w.AmpOverLen,
			w.Direction.X,
			w.Direction.Y,
		)
	}
	return out
}

// Unflatten parses a renderer-layout array back into waves.
func Unflatten(data []float32) ([]Wave, error) {
	if len(data)%FloatsPerWave != 0 {
		return nil, fmt.Errorf("%w: got %d floats", ErrLayout, len(data))
	}
	waves := make([]Wave, len(data)/FloatsPerWave)
	for i := range waves {
		s := data[i*FloatsPerWave : (i+1)*FloatsPerWave]
		waves[i] = Wave{Parameters{
			Wavelength: s[OffWavelength],
			Steepness:  s[OffSteepness],
			Speed:      s[OffSpeed],
			AmpOverLen: s[OffAmpOverLen],
			Direction:  math.Vec2{X: s[OffDirX], Y: s[OffDirY]},
		}}
	}
	return waves, nil
}
