package sim

import (
	"context"
	"errors"
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/physics"
	"github.com/san-kum/bounce/internal/vec"
)

type scriptedPresenter struct {
	batches [][]Event
	polls   int
	draws   int
	paces   []int
}

func (p *scriptedPresenter) PollEvents() []Event {
	defer func() { p.polls++ }()
	if p.polls < len(p.batches) {
		return p.batches[p.polls]
	}
	return nil
}

func (p *scriptedPresenter) Draw(*State)       { p.draws++ }
func (p *scriptedPresenter) PaceFrame(fps int) { p.paces = append(p.paces, fps) }

type frameCounter struct {
	frames []int
}

func (c *frameCounter) Name() string    { return "frames" }
func (c *frameCounter) Observe(f Frame) { c.frames = append(c.frames, f.Index) }
func (c *frameCounter) Value() float64  { return float64(len(c.frames)) }
func (c *frameCounter) Reset()          { c.frames = nil }

func newTestState(gravity vec.Vector) *State {
	bounds := physics.Bounds{Width: 3000, Height: 2000}
	bodies, err := physics.SpawnBodies(rand.New(rand.NewSource(11)), physics.Spawn{
		Count:    50,
		Radius:   15,
		SpeedMin: 45,
		SpeedMax: 180,
		Bounds:   bounds,
	})
	Expect(err).NotTo(HaveOccurred())
	st, err := NewState(bodies, gravity, bounds, 1.0/30)
	Expect(err).NotTo(HaveOccurred())
	return st
}

var _ = Describe("Simulator", func() {
	var (
		presenter *scriptedPresenter
		state     *State
		s         *Simulator
	)

	BeforeEach(func() {
		presenter = &scriptedPresenter{}
		state = newTestState(vec.New(0, 10))
		s = New(state, presenter)
	})

	It("starts running with the frame rate derived from dt", func() {
		Expect(s.Phase()).To(Equal(Running))
		Expect(s.Step()).To(Succeed())
		Expect(presenter.paces).To(Equal([]int{30}))
		Expect(presenter.draws).To(Equal(1))
		Expect(s.Frame()).To(Equal(1))
	})

	Context("when input arrives", func() {
		It("terminates on quit without ticking or drawing", func() {
			before := state.Bodies[0]
			presenter.batches = [][]Event{{Quit()}}

			Expect(s.Step()).To(Succeed())
			Expect(s.Terminated()).To(BeTrue())
			Expect(s.Frame()).To(Equal(0))
			Expect(presenter.draws).To(Equal(0))
			Expect(state.Bodies[0]).To(Equal(before))
		})

		It("terminates on escape and ignores other keys", func() {
			presenter.batches = [][]Event{{KeyDown(KeyUnknown)}, {KeyDown(KeyEscape)}}

			Expect(s.Step()).To(Succeed())
			Expect(s.Phase()).To(Equal(Running))
			Expect(s.Step()).To(Succeed())
			Expect(s.Phase()).To(Equal(Terminated))
		})

		It("rotates gravity a quarter turn per primary click", func() {
			presenter.batches = [][]Event{
				{MouseDown(ButtonPrimary)},
				{MouseDown(ButtonPrimary)},
				{MouseDown(ButtonPrimary), MouseDown(ButtonPrimary)},
			}

			Expect(s.Step()).To(Succeed())
			Expect(state.Gravity).To(Equal(vec.New(10, 0)))

			Expect(s.Step()).To(Succeed())
			Expect(state.Gravity.X).To(BeNumerically("~", 0, 1e-12))
			Expect(state.Gravity.Y).To(Equal(-10.0))

			Expect(s.Step()).To(Succeed())
			Expect(state.Gravity.X).To(BeNumerically("~", 0, 1e-12))
			Expect(state.Gravity.Y).To(BeNumerically("~", 10, 1e-12))
		})

		It("ignores other mouse buttons", func() {
			presenter.batches = [][]Event{{MouseDown(ButtonSecondary), MouseDown(ButtonMiddle)}}
			Expect(s.Step()).To(Succeed())
			Expect(state.Gravity).To(Equal(vec.New(0, 10)))
		})

		It("drops events queued behind a quit", func() {
			presenter.batches = [][]Event{{Quit(), MouseDown(ButtonPrimary)}}
			Expect(s.Step()).To(Succeed())
			Expect(state.Gravity).To(Equal(vec.New(0, 10)))
		})
	})

	It("refuses to step once terminated", func() {
		s.HandleEvent(Quit())
		err := s.Step()
		Expect(errors.Is(err, dynamo.ErrTerminated)).To(BeTrue())
	})

	Describe("Run", func() {
		It("stops at the frame limit", func() {
			counter := &frameCounter{}
			s = New(state, presenter, WithMaxFrames(90), WithMetric(counter))

			res, err := s.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Frames).To(Equal(90))
			Expect(res.Terminated).To(BeFalse())
			Expect(res.SimTime).To(BeNumerically("~", 3.0, 1e-9))
			Expect(res.Metrics).To(HaveKeyWithValue("frames", 90.0))
			Expect(counter.frames[0]).To(Equal(1))
		})

		It("ends when the presenter reports quit", func() {
			presenter.batches = [][]Event{nil, nil, nil, {Quit()}}

			res, err := s.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Terminated).To(BeTrue())
			Expect(res.Frames).To(Equal(3))
			Expect(presenter.draws).To(Equal(3))
		})

		It("returns the context error when cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			res, err := s.Run(ctx)
			Expect(err).To(MatchError(context.Canceled))
			Expect(res.Frames).To(Equal(0))
		})

		It("keeps every body inside the playfield", func() {
			checker := &insideChecker{}
			s = New(state, Headless{}, WithMaxFrames(600), WithObserver(checker))

			_, err := s.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(checker.escapes).To(BeZero())
			Expect(checker.frames).To(Equal(600))
		})

		It("reports non-finite state when validating", func() {
			state.Bodies[3].Vel = vec.New(math.NaN(), 0)
			s = New(state, Headless{}, WithMaxFrames(5), WithValidation(true))

			_, err := s.Run(context.Background())
			Expect(err).To(MatchError(dynamo.ErrInvalidState))
			var simErr dynamo.SimError
			Expect(errors.As(err, &simErr)).To(BeTrue())
			Expect(simErr.Body).To(Equal(3))
			Expect(simErr.Frame).To(Equal(1))
		})
	})

	Describe("Ensemble", func() {
		It("runs one simulation per seed", func() {
			seeds := make(chan int64, 4)
			factory := func(seed int64) (*Simulator, error) {
				seeds <- seed
				return New(newTestState(vec.New(0, 400)), Headless{}, WithMaxFrames(30)), nil
			}

			results, err := NewEnsemble(factory, 4, 100).Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(4))
			for _, r := range results {
				Expect(r.Frames).To(Equal(30))
			}
			close(seeds)
			var got []int64
			for seed := range seeds {
				got = append(got, seed)
			}
			Expect(got).To(ConsistOf(int64(100), int64(101), int64(102), int64(103)))
		})

		It("fails when a factory fails", func() {
			factory := func(seed int64) (*Simulator, error) {
				return nil, dynamo.Invalid("seed %d", seed)
			}
			_, err := NewEnsemble(factory, 2, 0).Run(context.Background())
			Expect(err).To(MatchError(dynamo.ErrInvalidArgument))
		})
	})
})

type insideChecker struct {
	frames  int
	escapes int
}

func (c *insideChecker) OnFrame(f Frame) {
	c.frames++
	for _, b := range f.State.Bodies {
		if !b.Inside(f.State.Bounds) {
			c.escapes++
		}
	}
}
