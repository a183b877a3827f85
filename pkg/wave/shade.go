package wave

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-ocean/pkg/math"
)

// Material holds the lighting terms of the lit water stage.
type Material struct {
	Ambient   float32
	Diffuse   float32
	Specular  float32
	Shininess float32
}

// DefaultMaterial matches the constants baked into surface_lit.frag.
func DefaultMaterial() Material {
	return Material{
		Ambient:   0.2,
		Diffuse:   0.7,
		Specular:  0.6,
		Shininess: 50,
	}
}

// Shade returns the light intensity at a point with unit normal n, unit
// direction to the light l and unit direction to the viewer v.
func Shade(n, l, v math.Vec3, m Material) float32 {
	diffuse := clamp01(n.Dot(l))
	r := l.Scale(-1).Reflect(n)
	specular := math32.Pow(clamp01(r.Dot(v)), m.Shininess)
	return m.Ambient + m.Diffuse*diffuse + m.Specular*specular
}

// FogFactor returns how much of the surface colour survives at distance
// dist under linear fog between start and end: 1 before start, 0 past end.
func FogFactor(dist, start, end float32) float32 {
	if end <= start {
		if dist < start {
			return 1
		}
		return 0
	}
	return clamp01((end - dist) / (end - start))
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
