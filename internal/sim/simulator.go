package sim

import (
	"context"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/integrators"
	"github.com/san-kum/bounce/internal/physics"
)

type Simulator struct {
	state     *State
	presenter Presenter
	integ     integrators.Integrator
	logger    *log.Logger
	metrics   []Metric
	observers []Observer
	fps       int
	maxFrames int
	validate  bool

	phase Phase
	frame int
	time  float64
	hits  []physics.Reflection
}

type Option func(*Simulator)

// WithFPS sets the rate passed to the presenter's pacer. The default is 1/dt.
func WithFPS(fps int) Option {
	return func(s *Simulator) { s.fps = fps }
}

// WithMaxFrames stops Run after n frames. Zero means no limit.
func WithMaxFrames(n int) Option {
	return func(s *Simulator) { s.maxFrames = n }
}

func WithIntegrator(integ integrators.Integrator) Option {
	return func(s *Simulator) { s.integ = integ }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Simulator) { s.logger = l }
}

// WithValidation checks every body for NaN/Inf after each tick.
func WithValidation(on bool) Option {
	return func(s *Simulator) { s.validate = on }
}

func WithMetric(m Metric) Option {
	return func(s *Simulator) { s.metrics = append(s.metrics, m) }
}

func WithObserver(o Observer) Option {
	return func(s *Simulator) { s.observers = append(s.observers, o) }
}

func New(state *State, presenter Presenter, opts ...Option) *Simulator {
	s := &Simulator{
		state:     state,
		presenter: presenter,
		integ:     integrators.NewSemiImplicitEuler(),
		fps:       int(math.Round(1 / state.Dt)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.presenter == nil {
		s.presenter = Headless{}
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) State() *State    { return s.state }
func (s *Simulator) Phase() Phase     { return s.phase }
func (s *Simulator) Frame() int       { return s.frame }
func (s *Simulator) Time() float64    { return s.time }
func (s *Simulator) Terminated() bool { return s.phase == Terminated }

// HandleEvent applies one input event. Quit and Escape terminate; a primary
// click rotates gravity. Everything else is ignored.
func (s *Simulator) HandleEvent(ev Event) {
	if s.phase == Terminated {
		return
	}
	switch ev.Kind {
	case EventQuit:
		s.terminate("quit")
	case EventKeyDown:
		if ev.Key == KeyEscape {
			s.terminate("escape")
		}
	case EventMouseDown:
		if ev.Button == ButtonPrimary {
			s.state.RotateGravity()
			s.logger.Debug("gravity rotated", "frame", s.frame, "gx", s.state.Gravity.X, "gy", s.state.Gravity.Y)
		}
	}
}

func (s *Simulator) terminate(reason string) {
	s.phase = Terminated
	s.logger.Info("simulation terminated", "reason", reason, "frame", s.frame)
}

// Step runs one loop iteration: drain input, tick every body, draw, pace.
// A quit seen while draining ends the iteration before the tick.
func (s *Simulator) Step() error {
	if s.phase == Terminated {
		return dynamo.ErrTerminated
	}

	for _, ev := range s.presenter.PollEvents() {
		s.HandleEvent(ev)
		if s.phase == Terminated {
			return nil
		}
	}

	s.hits = s.state.Advance(s.integ, s.hits)
	s.frame++
	s.time += s.state.Dt

	if s.validate {
		if err := s.state.Validate(s.frame, s.time); err != nil {
			return err
		}
	}

	f := Frame{Index: s.frame, Time: s.time, State: s.state, Hits: s.hits}
	for _, m := range s.metrics {
		m.Observe(f)
	}
	for _, o := range s.observers {
		o.OnFrame(f)
	}

	s.presenter.Draw(s.state)
	s.presenter.PaceFrame(s.fps)
	return nil
}

// Run steps until the loop terminates, ctx is done, or the frame limit is
// reached. The result is returned even on error.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	for _, m := range s.metrics {
		m.Reset()
	}

	s.logger.Info("simulation started",
		"bodies", len(s.state.Bodies),
		"fps", s.fps,
		"integrator", s.integ.Name(),
		"bounds", s.state.Bounds)

	for s.phase == Running {
		if s.maxFrames > 0 && s.frame >= s.maxFrames {
			break
		}

		select {
		case <-ctx.Done():
			return s.result(), ctx.Err()
		default:
		}

		if err := s.Step(); err != nil {
			s.logger.Error("simulation failed", "frame", s.frame, "err", err)
			return s.result(), err
		}
	}

	return s.result(), nil
}

func (s *Simulator) result() *Result {
	r := &Result{
		Frames:     s.frame,
		SimTime:    s.time,
		Terminated: s.phase == Terminated,
		Gravity:    s.state.Gravity,
		Metrics:    make(map[string]float64, len(s.metrics)),
	}
	for _, m := range s.metrics {
		r.Metrics[m.Name()] = m.Value()
	}
	return r
}
