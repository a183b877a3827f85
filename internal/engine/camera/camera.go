// Package camera provides the free-look camera used to inspect the water surface.
package camera

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-ocean/pkg/math"
)

// Projection selects how the camera projects the scene.
type Projection int

const (
	Perspective Projection = iota
	Orthographic
)

// ParseProjection maps a config string to a Projection.
func ParseProjection(s string) (Projection, error) {
	switch s {
	case "", "perspective":
		return Perspective, nil
	case "orthographic", "ortho":
		return Orthographic, nil
	}
	return Perspective, fmt.Errorf("unknown projection %q", s)
}

func (p Projection) String() string {
	if p == Orthographic {
		return "orthographic"
	}
	return "perspective"
}

// Zoom limits applied by SetZoom.
const (
	MinZoom = 0.5
	MaxZoom = 15
)

// pitchLimit keeps the camera just short of looking straight up or down.
const pitchLimit = math32.Pi/2 - 1e-2

// FreeLook orbits a center point at a zoom distance. Angles are radians;
// a positive vertical angle tilts the view down onto the water.
type FreeLook struct {
	HAngle float32
	VAngle float32
	Center math.Vec3

	FovY   float32 // radians
	Aspect float32
	Near   float32
	Far    float32

	Projection Projection

	zoom float32
	look math.Vec3
}

// NewFreeLook creates a camera with a perspective projection.
func NewFreeLook(fovY, aspect, near, far float32) *FreeLook {
	c := &FreeLook{
		FovY:   fovY,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		zoom:   5,
	}
	c.updateLook()
	return c
}

// Zoom returns the distance from the center.
func (c *FreeLook) Zoom() float32 {
	return c.zoom
}

// SetZoom sets the distance from the center, clamped to [MinZoom, MaxZoom].
func (c *FreeLook) SetZoom(z float32) {
	c.zoom = math32.Min(MaxZoom, math32.Max(MinZoom, z))
}

// AddZoom moves the camera along its view axis. It is not clamped.
func (c *FreeLook) AddZoom(dz float32) {
	c.zoom += dz
}

// Move translates the center point.
func (c *FreeLook) Move(v math.Vec3) {
	c.Center = c.Center.Add(v)
}

// Rotate adds to both angles, clamping the vertical one short of the poles.
func (c *FreeLook) Rotate(dh, dv float32) {
	c.HAngle += dh
	c.VAngle = math32.Min(pitchLimit, math32.Max(-pitchLimit, c.VAngle+dv))
	c.updateLook()
}

// Look returns the unit view direction.
func (c *FreeLook) Look() math.Vec3 {
	return c.look
}

func (c *FreeLook) updateLook() {
	c.look = math.FromAngles(c.HAngle-math32.Pi/2, -c.VAngle)
}

// Eye returns the camera position in world space.
func (c *FreeLook) Eye() math.Vec3 {
	return c.Center.Sub(c.look.Scale(c.zoom))
}

// ViewMatrix returns translate(0,0,-zoom) · rotX(v) · rotY(h) · translate(-center).
func (c *FreeLook) ViewMatrix() math.Mat4 {
	return math.Translate(0, 0, -c.zoom).
		Mul(math.RotateX(c.VAngle)).
		Mul(math.RotateY(c.HAngle)).
		Mul(math.Translate(-c.Center.X, -c.Center.Y, -c.Center.Z))
}

// ProjectionMatrix returns the matrix for the current projection mode.
func (c *FreeLook) ProjectionMatrix() math.Mat4 {
	return projectionFuncs[c.Projection](c)
}

var projectionFuncs = [...]func(*FreeLook) math.Mat4{
	Perspective:  perspective,
	Orthographic: orthographic,
}

func perspective(c *FreeLook) math.Mat4 {
	return math.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
}

// orthographic frames the zoom distance so switching modes keeps the
// surface roughly the same size on screen.
func orthographic(c *FreeLook) math.Mat4 {
	h := c.zoom * math32.Tan(c.FovY/2)
	w := h * c.Aspect
	return math.Ortho(-w, w, -h, h, -c.Far, c.Far)
}

// ViewProjection returns projection · view.
func (c *FreeLook) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}
