// Package input translates SDL2 events into the few events the ocean viewer reacts to.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a translated input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventDrag
	EventWheel
)

// Event is a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	DX, DY float32 // drag delta in pixels
	Wheel  float32 // wheel delta, positive away from the user
}

// Input collects events once per frame and tracks the drag state.
type Input struct {
	events   []Event
	dragging bool
	lastX    int32
	lastY    int32
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them. It returns true when the
// window was asked to close.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				i.events = append(i.events, Event{
					Type: EventKeyDown,
					Key:  e.Keysym.Scancode,
				})
			}

		case *sdl.MouseButtonEvent:
			if e.Button != sdl.BUTTON_LEFT {
				continue
			}
			i.dragging = e.Type == sdl.MOUSEBUTTONDOWN
			i.lastX, i.lastY = e.X, e.Y

		case *sdl.MouseMotionEvent:
			if !i.dragging {
				continue
			}
			i.events = append(i.events, dragEvent(i.lastX, i.lastY, e.X, e.Y))
			i.lastX, i.lastY = e.X, e.Y

		case *sdl.MouseWheelEvent:
			i.events = append(i.events, Event{
				Type:  EventWheel,
				Wheel: float32(e.Y),
			})
		}
	}

	return false
}

func dragEvent(fromX, fromY, toX, toY int32) Event {
	return Event{
		Type: EventDrag,
		DX:   float32(toX - fromX),
		DY:   float32(toY - fromY),
	}
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}
