// Package input turns SDL2 events into viewer commands.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies a raw event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventWheel
)

// Event is a processed SDL event.
type Event struct {
	Type   EventType
	Key    sdl.Keycode
	Width  int
	Height int
	MouseX int
	MouseY int
	DeltaX int
	DeltaY int
	Wheel  float32
	Button uint8
}

// Action is what the viewer should do in response to input.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionResize
	ActionDestination // Index holds the 0-based destination slot
	ActionTour
	ActionEscape // Stops a running tour, otherwise quits
	ActionOverview
	ActionSolarSystem
	ActionCenter
	ActionDiveIn
	ActionScreenshot
	ActionOrbit // DX, DY in pixels
	ActionDolly // DX holds the wheel delta
	ActionPick  // X, Y in pixels
)

// clickSlop is how far, in pixels, a press may travel and still count as a click.
const clickSlop = 4

// Command is one translated action.
type Command struct {
	Action Action
	Index  int
	DX, DY float32
	X, Y   float32
	Width  int
	Height int
}

var keyBindings = map[sdl.Keycode]Action{
	sdl.K_t:      ActionTour,
	sdl.K_ESCAPE: ActionEscape,
	sdl.K_o:      ActionOverview,
	sdl.K_s:      ActionSolarSystem,
	sdl.K_c:      ActionCenter,
	sdl.K_SPACE:  ActionDiveIn,
	sdl.K_F12:    ActionScreenshot,
}

// Input polls SDL and tracks drag state between frames.
type Input struct {
	events   []Event
	commands []Command
	dragging bool
	travel   int // Pixels moved since the button went down
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events:   make([]Event, 0, 16),
		commands: make([]Command, 0, 16),
	}
}

// Update polls every pending SDL event and returns the frame's commands.
func (i *Input) Update() []Command {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
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
					Key:  e.Keysym.Sym,
				})
			}

		case *sdl.MouseMotionEvent:
			i.events = append(i.events, Event{
				Type:   EventMouseMove,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				DeltaX: int(e.XRel),
				DeltaY: int(e.YRel),
			})

		case *sdl.MouseButtonEvent:
			t := EventMouseUp
			if e.Type == sdl.MOUSEBUTTONDOWN {
				t = EventMouseDown
			}
			i.events = append(i.events, Event{
				Type:   t,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				Button: e.Button,
			})

		case *sdl.MouseWheelEvent:
			i.events = append(i.events, Event{Type: EventWheel, Wheel: float32(e.Y)})
		}
	}

	i.commands = i.translate(i.commands[:0])
	return i.commands
}

func (i *Input) translate(out []Command) []Command {
	for _, e := range i.events {
		switch e.Type {
		case EventQuit:
			out = append(out, Command{Action: ActionQuit})
		case EventWindowResize:
			out = append(out, Command{Action: ActionResize, Width: e.Width, Height: e.Height})
		case EventKeyDown:
			if e.Key >= sdl.K_1 && e.Key <= sdl.K_9 {
				out = append(out, Command{Action: ActionDestination, Index: int(e.Key - sdl.K_1)})
			} else if a, ok := keyBindings[e.Key]; ok {
				out = append(out, Command{Action: a})
			}
		case EventMouseDown:
			if e.Button == sdl.BUTTON_LEFT {
				i.dragging = true
				i.travel = 0
			}
		case EventMouseUp:
			if e.Button == sdl.BUTTON_LEFT && i.dragging {
				i.dragging = false
				if i.travel <= clickSlop {
					out = append(out, Command{Action: ActionPick, X: float32(e.MouseX), Y: float32(e.MouseY)})
				}
			}
		case EventMouseMove:
			if i.dragging && (e.DeltaX != 0 || e.DeltaY != 0) {
				i.travel += abs(e.DeltaX) + abs(e.DeltaY)
				out = append(out, Command{Action: ActionOrbit, DX: float32(e.DeltaX), DY: float32(e.DeltaY)})
			}
		case EventWheel:
			if e.Wheel != 0 {
				out = append(out, Command{Action: ActionDolly, DX: e.Wheel})
			}
		}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
