// Package input turns SDL2 events into viewer events and tracks mouse drags.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies viewer events.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Keycode
	Repeat bool
	Width  int
	Height int
	MouseX int
	MouseY int
	DeltaX int // motion since the previous move event
	DeltaY int
	WheelY float32 // positive away from the user
	Button uint8
}

// Input handles all input processing.
type Input struct {
	events   []Event
	dragging bool
	dragX    int
	dragY    int
	wheel    float32
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events for this frame.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.reset()
	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if e, ok := translate(event); ok {
			i.push(e)
			if e.Type == EventQuit {
				quit = true
			}
		}
	}
	return quit
}

func (i *Input) reset() {
	i.events = i.events[:0]
	i.dragX, i.dragY = 0, 0
	i.wheel = 0
}

// push records e and folds it into the drag and wheel state.
func (i *Input) push(e Event) {
	i.events = append(i.events, e)
	switch e.Type {
	case EventMouseDown:
		if e.Button == sdl.BUTTON_LEFT {
			i.dragging = true
		}
	case EventMouseUp:
		if e.Button == sdl.BUTTON_LEFT {
			i.dragging = false
		}
	case EventMouseMove:
		if i.dragging {
			i.dragX += e.DeltaX
			i.dragY += e.DeltaY
		}
	case EventMouseWheel:
		i.wheel += e.WheelY
	}
}

func translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		}

	case *sdl.KeyboardEvent:
		ev := Event{Key: e.Keysym.Sym, Repeat: e.Repeat != 0}
		switch e.Type {
		case sdl.KEYDOWN:
			ev.Type = EventKeyDown
			return ev, true
		case sdl.KEYUP:
			ev.Type = EventKeyUp
			return ev, true
		}

	case *sdl.MouseMotionEvent:
		return Event{
			Type:   EventMouseMove,
			MouseX: int(e.X),
			MouseY: int(e.Y),
			DeltaX: int(e.XRel),
			DeltaY: int(e.YRel),
		}, true

	case *sdl.MouseButtonEvent:
		ev := Event{MouseX: int(e.X), MouseY: int(e.Y), Button: e.Button}
		switch e.Type {
		case sdl.MOUSEBUTTONDOWN:
			ev.Type = EventMouseDown
			return ev, true
		case sdl.MOUSEBUTTONUP:
			ev.Type = EventMouseUp
			return ev, true
		}

	case *sdl.MouseWheelEvent:
		y := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			y = -y
		}
		return Event{Type: EventMouseWheel, WheelY: y}, true
	}
	return Event{}, false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// KeyPressed reports whether any of keys went down this frame. Auto-repeat
// presses are ignored.
func (i *Input) KeyPressed(keys ...sdl.Keycode) bool {
	for _, e := range i.events {
		if e.Type != EventKeyDown || e.Repeat {
			continue
		}
		for _, k := range keys {
			if e.Key == k {
				return true
			}
		}
	}
	return false
}

// Drag returns the left-button drag distance in pixels for this frame.
func (i *Input) Drag() (dx, dy int) {
	return i.dragX, i.dragY
}

// Wheel returns the accumulated wheel movement for this frame.
func (i *Input) Wheel() float32 {
	return i.wheel
}
