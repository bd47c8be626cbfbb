package automation

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/sim"
)

// Action names accepted in scenario files.
const (
	ActionRotate = "rotate"
	ActionClick  = "click"
	ActionEscape = "escape"
	ActionQuit   = "quit"
)

// Scenario is a scripted input sequence for an unattended run.
type Scenario struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Frames      int             `yaml:"frames"`
	Events      []ScenarioEvent `yaml:"events"`
}

// ScenarioEvent fires before the tick that follows frame Frame, so an event
// at frame 0 is seen before anything moves.
type ScenarioEvent struct {
	Frame  int    `yaml:"frame"`
	Action string `yaml:"action"`
	Button string `yaml:"button,omitempty"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Scenario) Validate() error {
	if sc.Frames < 0 {
		return dynamo.Invalid("frames must be non-negative, got %d", sc.Frames)
	}
	for i, ev := range sc.Events {
		if ev.Frame < 0 {
			return dynamo.Invalid("event %d: frame must be non-negative, got %d", i, ev.Frame)
		}
		if _, err := ev.Event(); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}
	return nil
}

// Event translates the scripted action into loop input.
func (e ScenarioEvent) Event() (sim.Event, error) {
	switch e.Action {
	case ActionRotate:
		return sim.MouseDown(sim.ButtonPrimary), nil
	case ActionClick:
		b, err := parseButton(e.Button)
		if err != nil {
			return sim.Event{}, err
		}
		return sim.MouseDown(b), nil
	case ActionEscape:
		return sim.KeyDown(sim.KeyEscape), nil
	case ActionQuit:
		return sim.Quit(), nil
	}
	return sim.Event{}, dynamo.Invalid("unknown action %q", e.Action)
}

func parseButton(name string) (sim.MouseButton, error) {
	switch name {
	case "", "left", "primary":
		return sim.ButtonPrimary, nil
	case "middle":
		return sim.ButtonMiddle, nil
	case "right", "secondary":
		return sim.ButtonSecondary, nil
	}
	return 0, dynamo.Invalid("unknown mouse button %q", name)
}

// Scripted replays a scenario as a presenter. Drawing and pacing go to the
// wrapped presenter, if any, so a scenario can also drive a window.
type Scripted struct {
	inner  sim.Presenter
	queue  map[int][]sim.Event
	polled int
}

func NewScripted(sc *Scenario, inner sim.Presenter) (*Scripted, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	events := make([]ScenarioEvent, len(sc.Events))
	copy(events, sc.Events)
	sort.SliceStable(events, func(i, j int) bool { return events[i].Frame < events[j].Frame })

	queue := make(map[int][]sim.Event)
	for _, e := range events {
		ev, _ := e.Event()
		queue[e.Frame] = append(queue[e.Frame], ev)
	}
	return &Scripted{inner: inner, queue: queue}, nil
}

func (s *Scripted) PollEvents() []sim.Event {
	var out []sim.Event
	if s.inner != nil {
		out = s.inner.PollEvents()
	}
	out = append(out, s.queue[s.polled]...)
	delete(s.queue, s.polled)
	s.polled++
	return out
}

func (s *Scripted) Draw(st *sim.State) {
	if s.inner != nil {
		s.inner.Draw(st)
	}
}

func (s *Scripted) PaceFrame(fps int) {
	if s.inner != nil {
		s.inner.PaceFrame(fps)
	}
}

// Pending reports how many scripted events have not fired yet.
func (s *Scripted) Pending() int {
	n := 0
	for _, evs := range s.queue {
		n += len(evs)
	}
	return n
}
