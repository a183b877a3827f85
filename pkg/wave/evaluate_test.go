package wave

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-ocean/pkg/math"
)

func near(a, b math.Vec3, eps float32) bool {
	return a.Sub(b).Length() <= eps
}

func TestDisplaceZeroSteepnessAtOrigin(t *testing.T) {
	waves := []float32{10, 0, 0, 0.05, 1, 0}
	got := Displace(waves, 0, math.Vec3{})
	if got != (math.Vec3{}) {
		t.Errorf("Displace = %v, want origin", got)
	}
}

func TestDisplaceDeterministic(t *testing.T) {
	f := NewField(testBase(), DefaultFieldOptions(), newRand(4))
	waves := f.GeometricFloats()
	pos := math.Vec3{X: 3.5, Y: 0, Z: -7.25}

	a := Displace(waves, 0, pos)
	b := Displace(waves, 0, pos)
	if a != b {
		t.Errorf("Displace not repeatable: %v vs %v", a, b)
	}
	sa := DisplaceBasis(waves, 1.5, pos)
	sb := DisplaceBasis(waves, 1.5, pos)
	if sa != sb {
		t.Errorf("DisplaceBasis not repeatable: %+v vs %+v", sa, sb)
	}
}

func TestDisplaceNoWaves(t *testing.T) {
	pos := math.Vec3{X: 1, Y: 2, Z: 3}
	if got := Displace(nil, 5, pos); got != pos {
		t.Errorf("Displace with no waves = %v, want %v", got, pos)
	}
	s := DisplaceBasis(nil, 5, pos)
	if s.Bitangent != (math.Vec3{X: 1}) || s.Tangent != (math.Vec3{Z: 1}) || s.Normal != (math.Vec3{Y: 1}) {
		t.Errorf("flat basis = %+v", s)
	}
}

func TestDisplaceSingleWave(t *testing.T) {
	// λ=10, S=0.5, phase speed 2, R=0.1, travelling along +X.
	waves := []float32{10, 0.5, 2, 0.1, 1, 0}
	a := float32(10 * 0.1)
	omega := 2 * math32.Pi / 10
	q := 0.5 / (omega * a * 4)

	tests := []struct {
		name string
		pos  math.Vec3
		time float32
	}{
		{"origin", math.Vec3{}, 0},
		{"quarter period", math.Vec3{X: 2.5}, 0},
		{"moving", math.Vec3{X: 1, Z: 4}, 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term := omega*tt.pos.X + 2*omega*tt.time
			want := math.Vec3{
				X: tt.pos.X + q*a*math32.Cos(term),
				Y: tt.pos.Y + a*math32.Sin(term),
				Z: tt.pos.Z,
			}
			got := Displace(waves, tt.time, tt.pos)
			if !near(got, want, 1e-5) {
				t.Errorf("Displace = %v, want %v", got, want)
			}
		})
	}
}

func TestDisplaceDispersionFrequency(t *testing.T) {
	// The speed slot holds sqrt(g·2π/λ)·λ and is scaled by ω, so the
	// temporal frequency grows with the square root of the wave number.
	rate := func(wl float32) float32 {
		return 2 * math32.Pi / wl * DispersionSpeed(wl, 1)
	}
	if r := rate(4) / rate(16); math32.Abs(r-2) > 1e-4 {
		t.Errorf("frequency ratio λ=4/λ=16 = %v, want 2", r)
	}

	const wl, tm = 8, 0.3
	waves := []float32{wl, 0, DispersionSpeed(wl, 1), 0.05, 1, 0}
	got := Displace(waves, tm, math.Vec3{})
	want := wl * 0.05 * math32.Sin(rate(wl)*tm)
	if math32.Abs(got.Y-want) > 1e-5 {
		t.Errorf("height = %v, want %v", got.Y, want)
	}
}

func TestDisplaceIgnoresTrailingPartialWave(t *testing.T) {
	waves := []float32{10, 0.5, 2, 0.1, 1, 0}
	pos := math.Vec3{X: 1, Z: 1}
	a := Displace(waves, 0.3, pos)
	b := Displace(append(waves, 99, 99), 0.3, pos)
	if a != b {
		t.Errorf("partial trailing wave changed result: %v vs %v", a, b)
	}
}

func TestDisplaceBasisMatchesPosition(t *testing.T) {
	f := NewField(testBase(), DefaultFieldOptions(), newRand(6))
	waves := f.GeometricFloats()
	pos := math.Vec3{X: -12, Z: 30}
	if got, want := DisplaceBasis(waves, 2, pos).Position, Displace(waves, 2, pos); got != want {
		t.Errorf("basis position %v, Displace %v", got, want)
	}
}

func TestDisplaceBasisOrthonormalWithoutSteepness(t *testing.T) {
	base := testBase()
	base.Steepness = 0
	f := NewField(base, DefaultFieldOptions(), newRand(9))
	waves := f.GeometricFloats()

	for _, pos := range []math.Vec3{{}, {X: 5, Z: -3}, {X: -40, Z: 17}} {
		s := DisplaceBasis(waves, 0.4, pos)
		for name, v := range map[string]math.Vec3{"B": s.Bitangent, "T": s.Tangent, "N": s.Normal} {
			if l := v.Length(); math32.Abs(l-1) > 1e-5 {
				t.Errorf("%s at %v has length %v", name, pos, l)
			}
		}
		// With Q = 0 the closed-form normal is exactly T × B.
		cross := s.Tangent.Cross(s.Bitangent).Normalize()
		if !near(cross, s.Normal, 1e-4) {
			t.Errorf("N %v != T×B %v at %v", s.Normal, cross, pos)
		}
		if s.Normal.Y <= 0 {
			t.Errorf("normal %v points down", s.Normal)
		}
	}
}

func TestDisplaceBasisMatchesFiniteDifference(t *testing.T) {
	base := testBase()
	base.Steepness = 0.5
	f := NewField(base, DefaultFieldOptions(), newRand(10))
	waves := f.GeometricFloats()
	pos := math.Vec3{X: 3, Z: 8}
	const h = 1e-2

	s := DisplaceBasis(waves, 1, pos)
	dx := Displace(waves, 1, math.Vec3{X: pos.X + h, Z: pos.Z}).Sub(Displace(waves, 1, math.Vec3{X: pos.X - h, Z: pos.Z}))
	dz := Displace(waves, 1, math.Vec3{X: pos.X, Z: pos.Z + h}).Sub(Displace(waves, 1, math.Vec3{X: pos.X, Z: pos.Z - h}))

	if !near(s.Bitangent, dx.Normalize(), 1e-3) {
		t.Errorf("bitangent %v, finite difference %v", s.Bitangent, dx.Normalize())
	}
	if !near(s.Tangent, dz.Normalize(), 1e-3) {
		t.Errorf("tangent %v, finite difference %v", s.Tangent, dz.Normalize())
	}
}

func TestToTangent(t *testing.T) {
	s := DisplaceBasis(nil, 0, math.Vec3{})
	up := s.ToTangent(math.Vec3{Y: 1})
	if up != (math.Vec3{Z: 1}) {
		t.Errorf("world up in tangent space = %v, want +Z", up)
	}
	x := s.ToTangent(math.Vec3{X: 1})
	if x != (math.Vec3{X: 1}) {
		t.Errorf("world X in tangent space = %v, want +X", x)
	}
}

func TestNormalMapNoWaves(t *testing.T) {
	n := NormalMapNormal(nil, 3, math.Vec2{X: 0.25, Y: 0.75})
	if n != (math.Vec3{Z: 1}) {
		t.Errorf("normal = %v, want (0,0,1)", n)
	}
	c := EncodeNormal(n)
	if c != [3]float32{0.5, 0.5, 1} {
		t.Errorf("encoded = %v, want (0.5,0.5,1)", c)
	}
}

func TestNormalMapSingleWave(t *testing.T) {
	// k=2 so pow(x, k-1) = x.
	waves := []float32{0.5, 2, 0, 0.02, 0, 1}
	uv := math.Vec2{X: 0.1, Y: 0.3}

	a := float32(0.5 * 0.02)
	omega := 2 * math32.Pi / 0.5
	term := omega * uv.Y
	val := omega * a * 2 * 0.5 * (math32.Sin(term) + 1) * math32.Cos(term)
	want := math.Vec3{Y: val, Z: 1}.Normalize()

	got := NormalMapNormal(waves, 0, uv)
	if !near(got, want, 1e-5) {
		t.Errorf("NormalMapNormal = %v, want %v", got, want)
	}
}

func TestNormalMapTiles(t *testing.T) {
	f := NewField(testBase(), DefaultFieldOptions(), newRand(13))
	waves := f.NormalMapFloats()

	for _, uv := range []math.Vec2{{X: 0.1, Y: 0.2}, {X: 0.5, Y: 0.9}} {
		n := NormalMapNormal(waves, 0.7, uv)
		for _, shift := range []math.Vec2{{X: 1}, {Y: 1}} {
			m := NormalMapNormal(waves, 0.7, uv.Add(shift))
			if !near(n, m, 2e-3) {
				t.Errorf("normal at %v = %v, at %v = %v", uv, n, uv.Add(shift), m)
			}
		}
	}
}

func TestEncodeDecodeNormal(t *testing.T) {
	n := math.Vec3{X: 0.6, Y: -0.8, Z: 0}
	if got := DecodeNormal(EncodeNormal(n)); !near(got, n, 1e-6) {
		t.Errorf("decode(encode(n)) = %v, want %v", got, n)
	}
}
