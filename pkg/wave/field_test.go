package wave

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-ocean/pkg/math"
)

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// testBase is the renderer's reference template.
func testBase() Parameters {
	return Parameters{
		Wavelength: 16,
		Steepness:  1,
		Speed:      4,
		AmpOverLen: 0.05,
		Direction:  math.Vec2{X: 1, Y: 0.8}.Normalize(),
	}
}

func TestRegenerateCounts(t *testing.T) {
	f := NewField(testBase(), DefaultFieldOptions(), newRand(1))
	for i := 0; i < 10; i++ {
		if got := len(f.GeometricWaves()); got != DefaultGeometricCount {
			t.Fatalf("geometric count = %d, want %d", got, DefaultGeometricCount)
		}
		if got := len(f.NormalMapWaves()); got != DefaultNormalMapCount {
			t.Fatalf("normal map count = %d, want %d", got, DefaultNormalMapCount)
		}
		if got := len(f.GeometricFloats()); got != DefaultGeometricCount*FloatsPerWave {
			t.Fatalf("geometric floats = %d", got)
		}
		f.Regenerate()
	}
}

func TestRegenerateCustomCounts(t *testing.T) {
	opts := DefaultFieldOptions()
	opts.GeometricCount = 2
	opts.NormalMapCount = 15
	f := NewField(testBase(), opts, newRand(1))
	f.SetBaseParameters(Parameters{Wavelength: 4, Steepness: 0.5, Speed: 1, AmpOverLen: 0.1, Direction: math.Vec2{X: 0, Y: 1}})
	if len(f.GeometricWaves()) != 2 || len(f.NormalMapWaves()) != 15 {
		t.Errorf("counts = %d/%d, want 2/15", len(f.GeometricWaves()), len(f.NormalMapWaves()))
	}
}

func TestNewFieldClampsCounts(t *testing.T) {
	tests := []struct {
		name             string
		geometric, nmap  int
		wantGeo, wantMap int
	}{
		{"negative", -3, -1, 0, 0},
		{"zero", 0, 0, 0, 0},
		{"above shader capacity", 20, 80, MaxGeometricWaves, MaxNormalMapWaves},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultFieldOptions()
			opts.GeometricCount = tt.geometric
			opts.NormalMapCount = tt.nmap

			f := NewField(testBase(), opts, newRand(1))
			f.Regenerate()
			if got := len(f.GeometricWaves()); got != tt.wantGeo {
				t.Errorf("geometric = %d, want %d", got, tt.wantGeo)
			}
			if got := len(f.NormalMapWaves()); got != tt.wantMap {
				t.Errorf("normal map = %d, want %d", got, tt.wantMap)
			}
			if got := f.Options().GeometricCount; got != tt.wantGeo {
				t.Errorf("Options().GeometricCount = %d, want %d", got, tt.wantGeo)
			}
		})
	}
}

func TestDirectionsAreUnit(t *testing.T) {
	bases := []Parameters{
		testBase(),
		{Wavelength: 3, Steepness: 0.4, Speed: 1, AmpOverLen: 0.02, Direction: math.Vec2{X: -2, Y: 7}},
		{Wavelength: 100, Steepness: 0, Speed: 0, AmpOverLen: 0.01, Direction: math.Vec2{X: 0, Y: -1}},
	}
	opts := DefaultFieldOptions()
	opts.DirectionSpread = 0.5

	for seed := int64(0); seed < 20; seed++ {
		f := NewField(bases[0], opts, newRand(seed))
		for _, b := range bases {
			f.SetBaseParameters(b)
			for i, w := range f.GeometricWaves() {
				if l := w.Direction.Length(); math32.Abs(l-1) > 1e-5 {
					t.Errorf("seed %d geometric %d: |dir| = %v", seed, i, l)
				}
			}
			for i, w := range f.NormalMapWaves() {
				if l := w.Direction.Length(); math32.Abs(l-1) > 1e-5 {
					t.Errorf("seed %d normal map %d: |dir| = %v", seed, i, l)
				}
			}
		}
	}
}

func TestGeometricWavelengthRange(t *testing.T) {
	f := NewField(testBase(), DefaultFieldOptions(), newRand(42))
	for _, w := range f.GeometricWaves() {
		if w.Wavelength < 11.2 || w.Wavelength > 32 {
			t.Errorf("wavelength %v outside [11.2, 32]", w.Wavelength)
		}
		if w.AmpOverLen != 0.05 {
			t.Errorf("amp_over_len = %v, want 0.05", w.AmpOverLen)
		}
		if w.Steepness != 1 {
			t.Errorf("steepness = %v, want 1", w.Steepness)
		}
	}
}

func TestGeometricDispersionSpeed(t *testing.T) {
	f := NewField(testBase(), DefaultFieldOptions(), newRand(3))
	for _, w := range f.GeometricWaves() {
		want := math32.Sqrt(Gravity*2*math32.Pi/w.Wavelength) * w.Wavelength * 4
		if math32.Abs(w.Speed-want) > 1e-4 {
			t.Errorf("speed = %v, want %v", w.Speed, want)
		}
	}

	opts := DefaultFieldOptions()
	opts.Dispersion = false
	f = NewField(testBase(), opts, newRand(3))
	for _, w := range f.GeometricWaves() {
		if w.Speed != 4 {
			t.Errorf("pass-through speed = %v, want 4", w.Speed)
		}
	}
}

func TestBatchRotationBiasShared(t *testing.T) {
	base := testBase()
	f := NewField(base, DefaultFieldOptions(), newRand(11))

	bias := f.BatchRotationBias()
	if bias < -math32.Pi/2 || bias > math32.Pi/2 {
		t.Fatalf("bias %v outside [-pi/2, pi/2]", bias)
	}
	want := base.Direction.Rotate(bias).Normalize()
	for i, w := range f.GeometricWaves() {
		if w.Direction.Sub(want).Length() > 1e-6 {
			t.Errorf("wave %d direction %v, want shared %v", i, w.Direction, want)
		}
	}
}

func TestRegenerateReplacesBatch(t *testing.T) {
	f := NewField(testBase(), DefaultFieldOptions(), newRand(5))
	oldGeo := append([]Wave(nil), f.GeometricWaves()...)
	oldNM := append([]Wave(nil), f.NormalMapWaves()...)
	held := f.GeometricWaves()

	next := Parameters{Wavelength: 2, Steepness: 0.5, Speed: 1, AmpOverLen: 0.1, Direction: math.Vec2{X: 0, Y: 1}}
	f.SetBaseParameters(next)

	if f.BaseParameters() != next {
		t.Errorf("base = %+v, want %+v", f.BaseParameters(), next)
	}
	for i, w := range f.GeometricWaves() {
		if w.Wavelength < 1.4 || w.Wavelength > 4 {
			t.Errorf("wave %d wavelength %v not derived from new base", i, w.Wavelength)
		}
		if w == oldGeo[i] {
			t.Errorf("wave %d survived regeneration", i)
		}
	}
	same := 0
	for i, w := range f.NormalMapWaves() {
		if w == oldNM[i] {
			same++
		}
	}
	if same == len(oldNM) {
		t.Error("normal map batch was not resampled")
	}
	// Slices handed out before the swap are left untouched.
	for i := range held {
		if held[i] != oldGeo[i] {
			t.Errorf("held slice mutated at %d", i)
		}
	}
}

func TestRegenerateDeterministicWithSeed(t *testing.T) {
	a := NewField(testBase(), DefaultFieldOptions(), newRand(99))
	b := NewField(testBase(), DefaultFieldOptions(), newRand(99))
	fa, fb := a.NormalMapFloats(), b.NormalMapFloats()
	for i := range fa {
		if fa[i] != fb[i] {
			t.Fatalf("seeded fields differ at %d", i)
		}
	}
}

func TestNormalMapSampling(t *testing.T) {
	opts := DefaultFieldOptions()
	opts.LatticeSnap = false
	f := NewField(testBase(), opts, newRand(8))
	for i, w := range f.NormalMapWaves() {
		if w.Wavelength < 0.3 || w.Wavelength > 0.8 {
			t.Errorf("wave %d wavelength %v outside [0.3, 0.8]", i, w.Wavelength)
		}
		if w.Steepness < 1 || w.Steepness > 3 {
			t.Errorf("wave %d exponent %v outside [1, 3]", i, w.Steepness)
		}
		if w.AmpOverLen != 0.02 {
			t.Errorf("wave %d amp_over_len = %v", i, w.AmpOverLen)
		}
		want := 0.1 * math32.Sqrt(math32.Pi/w.Wavelength)
		if math32.Abs(w.Speed-want) > 1e-6 {
			t.Errorf("wave %d speed = %v, want %v", i, w.Speed, want)
		}
	}
}

func TestLatticeSnapWholePeriods(t *testing.T) {
	f := NewField(testBase(), DefaultFieldOptions(), newRand(12))
	for i, w := range f.NormalMapWaves() {
		k := w.Direction.Scale(1 / w.Wavelength)
		if d := k.Sub(k.Round()); math32.Abs(d.X) > 1e-4 || math32.Abs(d.Y) > 1e-4 {
			t.Errorf("wave %d wave vector (%v, %v) is not on the integer lattice", i, k.X, k.Y)
		}
	}
}

func TestSnapToLatticeLeavesSampleRange(t *testing.T) {
	// The sampling range applies before snapping; λ=0.8 along +X snaps to a whole period.
	wl, dir := snapToLattice(0.8, math.Vec2{X: 1})
	if wl != 1 || dir != (math.Vec2{X: 1}) {
		t.Errorf("snapToLattice(0.8, +X) = %v, %v; want 1, (1,0)", wl, dir)
	}

	f := NewField(testBase(), DefaultFieldOptions(), newRand(12))
	for i, w := range f.NormalMapWaves() {
		if w.Wavelength <= 0 || w.Wavelength > 1 {
			t.Errorf("wave %d snapped wavelength %v outside (0, 1]", i, w.Wavelength)
		}
	}
}

func TestSnapToLatticeNeverZero(t *testing.T) {
	// A long wavelength rounds dir/λ to zero; snapping must still pick a period.
	wl, dir := snapToLattice(5, math.Vec2{X: -0.6, Y: 0.8})
	if wl != 1 {
		t.Errorf("wavelength = %v, want 1", wl)
	}
	if dir != (math.Vec2{X: 0, Y: 1}) {
		t.Errorf("direction = %v, want (0,1)", dir)
	}
}

func TestSteepnessSum(t *testing.T) {
	f := NewField(testBase(), DefaultFieldOptions(), newRand(2))
	// Q·ω·A reduces to S/4 per wave, so four waves of steepness 1 sit exactly at the limit.
	if got := SteepnessSum(f.GeometricWaves()); math32.Abs(got-1) > 1e-5 {
		t.Errorf("SteepnessSum = %v, want 1", got)
	}
}

func TestDispersionSpeed(t *testing.T) {
	got := DispersionSpeed(16, 1)
	want := math32.Sqrt(9.81*2*math32.Pi/16) * 16
	if math32.Abs(got-want) > 1e-4 {
		t.Errorf("DispersionSpeed = %v, want %v", got, want)
	}
}
