package sim

import (
	"github.com/san-kum/bounce/internal/physics"
	"github.com/san-kum/bounce/internal/vec"
)

// Phase is the loop state. Terminated is absorbing.
type Phase int

const (
	Running Phase = iota
	Terminated
)

func (p Phase) String() string {
	if p == Terminated {
		return "terminated"
	}
	return "running"
}

type EventKind int

const (
	EventQuit EventKind = iota
	EventKeyDown
	EventMouseDown
)

type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
)

type MouseButton int

const (
	ButtonPrimary MouseButton = iota + 1
	ButtonMiddle
	ButtonSecondary
)

// Event is one item from the presenter's input queue.
type Event struct {
	Kind   EventKind
	Key    Key
	Button MouseButton
}

func Quit() Event {
	return Event{Kind: EventQuit}
}

func KeyDown(k Key) Event {
	return Event{Kind: EventKeyDown, Key: k}
}

func MouseDown(b MouseButton) Event {
	return Event{Kind: EventMouseDown, Button: b}
}

// Presenter is the window side of the loop: it supplies input, draws the
// current state and caps the frame rate.
type Presenter interface {
	PollEvents() []Event
	Draw(st *State)
	PaceFrame(fps int)
}

// Frame is what observers and metrics see after every tick.
type Frame struct {
	Index int
	Time  float64
	State *State
	Hits  []physics.Reflection
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f Frame)
}

type Result struct {
	Frames     int
	SimTime    float64
	Terminated bool
	Gravity    vec.Vector
	Metrics    map[string]float64
}

// Headless presents nothing, never produces input and never waits.
type Headless struct{}

func (Headless) PollEvents() []Event { return nil }
func (Headless) Draw(*State)         {}
func (Headless) PaceFrame(int)       {}
