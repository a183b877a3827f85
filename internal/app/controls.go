package app

import (
	"github.com/chewxy/math32"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/midgard-ocean/internal/engine/camera"
	"github.com/Faultbox/midgard-ocean/internal/engine/input"
	"github.com/Faultbox/midgard-ocean/pkg/wave"
)

// Drag rotates by this many radians per pixel.
const dragSensitivity = 5e-3

// wheelZoomPerTick converts one wheel notch into camera zoom distance.
const wheelZoomPerTick = 120.0 / 300.0

type action int

const (
	actionNone action = iota
	actionQuit
	actionRegenerate
	actionToggleMode
	actionToggleProjection
	actionSaveNormalMap
	actionSaveConfig
)

var keyActions = map[sdl.Scancode]action{
	sdl.SCANCODE_ESCAPE: actionQuit,
	sdl.SCANCODE_R:      actionRegenerate,
	sdl.SCANCODE_M:      actionToggleMode,
	sdl.SCANCODE_P:      actionToggleProjection,
	sdl.SCANCODE_N:      actionSaveNormalMap,
	sdl.SCANCODE_S:      actionSaveConfig,
}

// Live tuning steps for the base wave template.
const (
	wavelengthFactor = 1.1
	speedFactor      = 1.1
	steepnessStep    = 0.1
	directionStep    = math32.Pi / 16
)

var tuneKeys = map[sdl.Scancode]func(wave.Parameters) wave.Parameters{
	sdl.SCANCODE_UP: func(p wave.Parameters) wave.Parameters {
		p.Wavelength *= wavelengthFactor
		return p
	},
	sdl.SCANCODE_DOWN: func(p wave.Parameters) wave.Parameters {
		p.Wavelength /= wavelengthFactor
		return p
	},
	sdl.SCANCODE_RIGHTBRACKET: func(p wave.Parameters) wave.Parameters {
		p.Steepness = math32.Min(1, p.Steepness+steepnessStep)
		return p
	},
	sdl.SCANCODE_LEFTBRACKET: func(p wave.Parameters) wave.Parameters {
		p.Steepness = math32.Max(0, p.Steepness-steepnessStep)
		return p
	},
	sdl.SCANCODE_LEFT: func(p wave.Parameters) wave.Parameters {
		p.Direction = p.Direction.Rotate(directionStep).Normalize()
		return p
	},
	sdl.SCANCODE_RIGHT: func(p wave.Parameters) wave.Parameters {
		p.Direction = p.Direction.Rotate(-directionStep).Normalize()
		return p
	},
	sdl.SCANCODE_EQUALS: func(p wave.Parameters) wave.Parameters {
		p.Speed *= speedFactor
		return p
	},
	sdl.SCANCODE_MINUS: func(p wave.Parameters) wave.Parameters {
		p.Speed /= speedFactor
		return p
	},
}

// tune applies the tuning bound to key, reporting false for other keys.
func tune(p wave.Parameters, ev input.Event) (wave.Parameters, bool) {
	if ev.Type != input.EventKeyDown {
		return p, false
	}
	f, ok := tuneKeys[ev.Key]
	if !ok {
		return p, false
	}
	return f(p), true
}

// actionFor maps an input event to an application action.
func actionFor(ev input.Event) action {
	switch ev.Type {
	case input.EventQuit:
		return actionQuit
	case input.EventKeyDown:
		return keyActions[ev.Key]
	}
	return actionNone
}

// steer applies drag and wheel events to the camera and reports whether ev
// was consumed.
func steer(cam *camera.FreeLook, ev input.Event) bool {
	switch ev.Type {
	case input.EventDrag:
		cam.Rotate(ev.DX*dragSensitivity, ev.DY*dragSensitivity)
		return true
	case input.EventWheel:
		cam.SetZoom(cam.Zoom() + ev.Wheel*wheelZoomPerTick)
		return true
	}
	return false
}

func toggleProjection(cam *camera.FreeLook) {
	if cam.Projection == camera.Perspective {
		cam.Projection = camera.Orthographic
	} else {
		cam.Projection = camera.Perspective
	}
}
