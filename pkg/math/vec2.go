// Package math provides the float32 vector and matrix types shared by the
// wave evaluators and the renderer.
package math

import (
	gomath "math"

	"github.com/chewxy/math32"
)

// Vec2 is a 2D vector. For wave directions X maps to world X and Y to world Z.
type Vec2 struct {
	X float32 `yaml:"x" json:"x"`
	Y float32 `yaml:"y" json:"y"`
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product.
func (v Vec2) Dot(other Vec2) float32 {
	return v.X*other.X + v.Y*other.Y
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize returns a unit vector, or the zero vector if v has no length.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Rotate returns v rotated counter-clockwise by angle radians.
func (v Vec2) Rotate(angle float32) Vec2 {
	s, c := math32.Sincos(angle)
	return Vec2{
		X: c*v.X - s*v.Y,
		Y: s*v.X + c*v.Y,
	}
}

// Round returns v with each component rounded to the nearest integer.
func (v Vec2) Round() Vec2 {
	return Vec2{round(v.X), round(v.Y)}
}

// math32 has no Round, so go through float64.
func round(x float32) float32 {
	return float32(gomath.Round(float64(x)))
}

// FromAngle returns the unit vector pointing at angle radians from +X.
func FromAngle(angle float32) Vec2 {
	s, c := math32.Sincos(angle)
	return Vec2{c, s}
}
