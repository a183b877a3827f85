package wave

import (
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-ocean/pkg/math"
)

// Default batch sizes.
const (
	DefaultGeometricCount = 4
	DefaultNormalMapCount = 50
)

// Shader-side array capacities. Counts above these cannot be uploaded.
const (
	MaxGeometricWaves = 8
	MaxNormalMapWaves = 50
)

// FieldOptions tunes how a Field perturbs its template. Counts are fixed for
// the life of the field.
type FieldOptions struct {
	GeometricCount int
	NormalMapCount int

	// Geometric wavelength is drawn from [WavelengthMin, WavelengthMax] * base.
	WavelengthMin float32
	WavelengthMax float32
	// Geometric steepness is drawn from [SteepnessMin, SteepnessMax] * base.
	SteepnessMin float32
	SteepnessMax float32
	// Per-wave rotation added to the shared batch bias, drawn from ±DirectionSpread.
	DirectionSpread float32
	// Dispersion derives geometric speed from the wavelength; otherwise the
	// template speed is copied.
	Dispersion bool

	NormalMapWavelengthMin float32
	NormalMapWavelengthMax float32
	NormalMapExponentMin   float32
	NormalMapExponentMax   float32
	NormalMapAmpOverLen    float32
	NormalMapSpeedCoeff    float32
	// LatticeSnap aligns normal-map waves to whole periods over the unit
	// square so the baked texture tiles.
	LatticeSnap bool
}

// DefaultFieldOptions returns the tuning used by the renderer.
func DefaultFieldOptions() FieldOptions {
	return FieldOptions{
		GeometricCount:         DefaultGeometricCount,
		NormalMapCount:         DefaultNormalMapCount,
		WavelengthMin:          0.7,
		WavelengthMax:          2.0,
		SteepnessMin:           1,
		SteepnessMax:           1,
		DirectionSpread:        0,
		Dispersion:             true,
		NormalMapWavelengthMin: 0.3,
		NormalMapWavelengthMax: 0.8,
		NormalMapExponentMin:   1,
		NormalMapExponentMax:   3,
		NormalMapAmpOverLen:    0.02,
		NormalMapSpeedCoeff:    0.1,
		LatticeSnap:            true,
	}
}

// Field holds the base template and the two wave batches derived from it.
// It is not safe for concurrent use; Regenerate builds new slices and swaps
// them in, so slices returned earlier stay intact but stale.
type Field struct {
	base Parameters
	opts FieldOptions
	rng  *rand.Rand

	batchRotationBias float32
	geometric         []Wave
	normalMap         []Wave
}

// NewField creates a field and generates its first batches. Counts are
// clamped to [0, MaxGeometricWaves] and [0, MaxNormalMapWaves].
func NewField(base Parameters, opts FieldOptions, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	opts.GeometricCount = clampCount(opts.GeometricCount, MaxGeometricWaves)
	opts.NormalMapCount = clampCount(opts.NormalMapCount, MaxNormalMapWaves)
	f := &Field{
		base: base,
		opts: opts,
		rng:  rng,
	}
	f.Regenerate()
	return f
}

func clampCount(n, limit int) int {
	return max(0, min(n, limit))
}

// BaseParameters returns the current template.
func (f *Field) BaseParameters() Parameters {
	return f.base
}

// Options returns the tuning the field was built with.
func (f *Field) Options() FieldOptions {
	return f.opts
}

// SetBaseParameters replaces the template and regenerates both batches.
// p is not validated.
func (f *Field) SetBaseParameters(p Parameters) {
	f.base = p
	f.Regenerate()
}

// BatchRotationBias returns the direction bias shared by the current
// geometric batch.
func (f *Field) BatchRotationBias() float32 {
	return f.batchRotationBias
}

// GeometricWaves returns the current geometric batch.
func (f *Field) GeometricWaves() []Wave {
	return f.geometric
}

// NormalMapWaves returns the current normal-map batch.
func (f *Field) NormalMapWaves() []Wave {
	return f.normalMap
}

// GeometricFloats returns the geometric batch in renderer layout.
func (f *Field) GeometricFloats() []float32 {
	return Flatten(f.geometric)
}

// NormalMapFloats returns the normal-map batch in renderer layout.
func (f *Field) NormalMapFloats() []float32 {
	return Flatten(f.normalMap)
}

// Regenerate resamples both batches from the current template. Previous
// waves are discarded entirely.
func (f *Field) Regenerate() {
	bias := f.uniform(-math32.Pi/2, math32.Pi/2)

	geometric := make([]Wave, f.opts.GeometricCount)
	for i := range geometric {
		geometric[i] = f.perturbGeometric(f.base, bias)
	}

	normalMap := make([]Wave, f.opts.NormalMapCount)
	for i := range normalMap {
		normalMap[i] = f.sampleNormalMap()
	}

	f.batchRotationBias = bias
	f.geometric = geometric
	f.normalMap = normalMap
}

func (f *Field) perturbGeometric(base Parameters, bias float32) Wave {
	wl := f.uniform(f.opts.WavelengthMin, f.opts.WavelengthMax) * base.Wavelength
	st := f.uniform(f.opts.SteepnessMin, f.opts.SteepnessMax) * base.Steepness

	angle := bias
	if f.opts.DirectionSpread != 0 {
		angle += f.uniform(-f.opts.DirectionSpread, f.opts.DirectionSpread)
	}
	dir := base.Direction.Rotate(angle).Normalize()

	speed := base.Speed
	if f.opts.Dispersion {
		speed = DispersionSpeed(wl, base.Speed)
	}

	return Wave{Parameters{
		Wavelength: wl,
		Steepness:  st,
		Speed:      speed,
		AmpOverLen: base.AmpOverLen,
		Direction:  dir,
	}}
}

func (f *Field) sampleNormalMap() Wave {
	wl := f.uniform(f.opts.NormalMapWavelengthMin, f.opts.NormalMapWavelengthMax)
	k := f.uniform(f.opts.NormalMapExponentMin, f.opts.NormalMapExponentMax)
	dir := math.FromAngle(f.uniform(0, 2*math32.Pi))

	if f.opts.LatticeSnap {
		wl, dir = snapToLattice(wl, dir)
	}

	return Wave{Parameters{
		Wavelength: wl,
		Steepness:  k,
		Speed:      f.opts.NormalMapSpeedCoeff * math32.Sqrt(math32.Pi/wl),
		AmpOverLen: f.opts.NormalMapAmpOverLen,
		Direction:  dir,
	}}
}

func (f *Field) uniform(lo, hi float32) float32 {
	return lo + f.rng.Float32()*(hi-lo)
}

// DispersionSpeed returns sqrt(g·2π/λ)·λ·factor, the value stored in the
// speed slot of a geometric wave. The evaluators multiply it by 2π/λ.
func DispersionSpeed(wavelength, factor float32) float32 {
	return math32.Sqrt(Gravity*2*math32.Pi/wavelength) * wavelength * factor
}

// snapToLattice picks the integer wave vector n nearest to dir/λ and returns
// the wavelength and unit direction it implies, so that ω·dir = 2π·n.
func snapToLattice(wl float32, dir math.Vec2) (float32, math.Vec2) {
	n := dir.Scale(1 / wl).Round()
	if n.X == 0 && n.Y == 0 {
		if math32.Abs(dir.X) >= math32.Abs(dir.Y) {
			n.X = sign(dir.X)
		} else {
			n.Y = sign(dir.Y)
		}
	}
	l := n.Length()
	return 1 / l, n.Scale(1 / l)
}

// SteepnessSum returns Σ Q·ω·A over a geometric batch. Values above 1 mean
// crests can loop over themselves; nothing clamps this.
func SteepnessSum(waves []Wave) float32 {
	var sum float32
	for _, w := range waves {
		omega := w.Omega()
		a := w.Amplitude()
		q := w.Steepness / (omega * a * 4)
		sum += q * omega * a
	}
	return sum
}

func sign(x float32) float32 {
	if x < 0 {
		return -1
	}
	return 1
}
