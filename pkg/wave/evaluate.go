package wave

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-ocean/pkg/math"
)

// Surface is a displaced point with its tangent frame. Bitangent follows
// world X, Tangent follows world Z and Normal is +Y on a flat sea.
type Surface struct {
	Position  math.Vec3
	Bitangent math.Vec3
	Tangent   math.Vec3
	Normal    math.Vec3
}

// ToTangent expresses a world-space vector in the (B, T, N) frame, the space
// the baked normal map is authored in.
func (s Surface) ToTangent(v math.Vec3) math.Vec3 {
	return math.Vec3{
		X: v.Dot(s.Bitangent),
		Y: v.Dot(s.Tangent),
		Z: v.Dot(s.Normal),
	}
}

// gerstnerTerm holds the per-wave quantities shared by both displacement
// evaluators.
type gerstnerTerm struct {
	a, omega, q float32
	dirX, dirY  float32
	sin, cos    float32
}

func evalGerstner(w []float32, t float32, x, z float32) gerstnerTerm {
	a := w[OffWavelength] * w[OffAmpOverLen]
	omega := 2 * math32.Pi / w[OffWavelength]
	phi := w[OffSpeed] * omega
	q := w[OffSteepness] / (omega * a * 4)

	dirX, dirY := w[OffDirX], w[OffDirY]
	term := omega*(dirX*x+dirY*z) + phi*t
	s, c := math32.Sincos(term)
	return gerstnerTerm{a: a, omega: omega, q: q, dirX: dirX, dirY: dirY, sin: s, cos: c}
}

// Displace returns pos moved by every geometric wave in waves at time t.
// The input Y is carried through; only X and Z feed the phase.
func Displace(waves []float32, t float32, pos math.Vec3) math.Vec3 {
	p := pos
	for i := 0; i+FloatsPerWave <= len(waves); i += FloatsPerWave {
		g := evalGerstner(waves[i:i+FloatsPerWave], t, pos.X, pos.Z)
		p.X += g.q * g.a * g.dirX * g.cos
		p.Y += g.a * g.sin
		p.Z += g.q * g.a * g.dirY * g.cos
	}
	return p
}

// DisplaceBasis returns the displaced position together with the normalized
// partial derivatives of the surface along X (bitangent) and Z (tangent) and
// the closed-form normal.
func DisplaceBasis(waves []float32, t float32, pos math.Vec3) Surface {
	p := pos
	var b, tg, n math.Vec3
	for i := 0; i+FloatsPerWave <= len(waves); i += FloatsPerWave {
		g := evalGerstner(waves[i:i+FloatsPerWave], t, pos.X, pos.Z)
		p.X += g.q * g.a * g.dirX * g.cos
		p.Y += g.a * g.sin
		p.Z += g.q * g.a * g.dirY * g.cos

		wa := g.omega * g.a
		qws := g.q * wa * g.sin

		b.X += g.dirX * g.dirX * qws
		b.Y += g.dirX * wa * g.cos
		b.Z += g.dirX * g.dirY * qws

		tg.X += g.dirX * g.dirY * qws
		tg.Y += g.dirY * wa * g.cos
		tg.Z += g.dirY * g.dirY * qws

		n.X += g.dirX * wa * g.cos
		n.Y += qws
		n.Z += g.dirY * wa * g.cos
	}

	return Surface{
		Position:  p,
		Bitangent: math.Vec3{X: 1 - b.X, Y: b.Y, Z: -b.Z}.Normalize(),
		Tangent:   math.Vec3{X: -tg.X, Y: tg.Y, Z: 1 - tg.Z}.Normalize(),
		Normal:    math.Vec3{X: -n.X, Y: 1 - n.Y, Z: -n.Z}.Normalize(),
	}
}

// NormalMapNormal returns the unit normal of the lighting-detail surface at
// texture coordinate uv. Here the steepness slot is an exponent k, not the
// Gerstner Q.
func NormalMapNormal(waves []float32, t float32, uv math.Vec2) math.Vec3 {
	n := math.Vec3{Z: 1}
	for i := 0; i+FloatsPerWave <= len(waves); i += FloatsPerWave {
		w := waves[i : i+FloatsPerWave]
		a := w[OffWavelength] * w[OffAmpOverLen]
		omega := 2 * math32.Pi / w[OffWavelength]
		phi := w[OffSpeed] * omega
		k := w[OffSteepness]

		dirX, dirY := w[OffDirX], w[OffDirY]
		term := omega*(dirX*uv.X+dirY*uv.Y) + phi*t
		s, c := math32.Sincos(term)
		val := omega * a * k * math32.Pow(0.5*(s+1), k-1) * c

		n.X += dirX * val
		n.Y += dirY * val
	}
	return n.Normalize()
}

// EncodeNormal maps a unit normal into [0,1] colour space.
func EncodeNormal(n math.Vec3) [3]float32 {
	return [3]float32{n.X*0.5 + 0.5, n.Y*0.5 + 0.5, n.Z*0.5 + 0.5}
}

// DecodeNormal is the inverse of EncodeNormal, as the lit stage samples it.
func DecodeNormal(c [3]float32) math.Vec3 {
	return math.Vec3{X: c[0]*2 - 1, Y: c[1]*2 - 1, Z: c[2]*2 - 1}
}
