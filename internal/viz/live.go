package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/bounce/internal/physics"
	"github.com/san-kum/bounce/internal/sim"
)

const (
	defaultCols     = 80
	defaultRows     = 24
	panelWidth      = 48
	historyCapacity = 300
)

type TickMsg time.Time

// Model is a Bubble Tea program and a sim.Presenter at once: Update turns
// key and mouse messages into loop events, each tick runs one Step, and Step
// calls back into Draw.
type Model struct {
	sim    *sim.Simulator
	canvas *Canvas
	fps    int

	pending  []sim.Event
	energy   []float64
	hits     []float64
	frame    int
	gravity  string
	showHelp bool
	err      error
}

func NewModel(fps int) *Model {
	if fps <= 0 {
		fps = 30
	}
	return &Model{
		canvas:  NewCanvas(defaultCols, defaultRows),
		fps:     fps,
		energy:  make([]float64, 0, historyCapacity),
		hits:    make([]float64, 0, historyCapacity),
		gravity: "-",
	}
}

// Attach binds the simulator the model steps. The simulator must have been
// built with this model as its presenter.
func (m *Model) Attach(s *sim.Simulator) {
	m.sim = s
}

// Err is the error that stopped the loop, if any.
func (m *Model) Err() error { return m.err }

func (m *Model) PollEvents() []sim.Event {
	evs := m.pending
	m.pending = nil
	return evs
}

func (m *Model) Draw(st *sim.State) {
	m.canvas.Clear()
	cw, ch := float64(m.canvas.Width*2), float64(m.canvas.Height*4)
	sx, sy := cw/st.Bounds.Width, ch/st.Bounds.Height

	for _, b := range st.Bodies {
		col := CurrentTheme.Primary
		if !CurrentTheme.Mono {
			col = lipgloss.Color(physics.Hex(b.Color))
		}
		r := int(b.Radius * min(sx, sy))
		m.canvas.DrawDisc(int(b.Pos.X*sx), int(b.Pos.Y*sy), r, col)
	}

	m.energy = appendCapped(m.energy, st.KineticEnergy())
	m.gravity = fmt.Sprintf("(%.0f, %.0f)", st.Gravity.X, st.Gravity.Y)
}

// OnFrame records per-frame wall hits for the sparkline.
func (m *Model) OnFrame(f sim.Frame) {
	n := 0
	for _, h := range f.Hits {
		n += h.Count()
	}
	m.hits = appendCapped(m.hits, float64(n))
	m.frame = f.Index
}

// PaceFrame does nothing; the tick command sets the pace.
func (m *Model) PaceFrame(int) {}

func appendCapped(xs []float64, v float64) []float64 {
	if len(xs) == historyCapacity {
		copy(xs, xs[1:])
		xs = xs[:len(xs)-1]
	}
	return append(xs, v)
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.pending = append(m.pending, sim.Quit())
		case "esc":
			m.pending = append(m.pending, sim.KeyDown(sim.KeyEscape))
		case "g":
			m.pending = append(m.pending, sim.MouseDown(sim.ButtonPrimary))
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			switch msg.Button {
			case tea.MouseButtonLeft:
				m.pending = append(m.pending, sim.MouseDown(sim.ButtonPrimary))
			case tea.MouseButtonRight:
				m.pending = append(m.pending, sim.MouseDown(sim.ButtonSecondary))
			case tea.MouseButtonMiddle:
				m.pending = append(m.pending, sim.MouseDown(sim.ButtonMiddle))
			}
		}
	case tea.WindowSizeMsg:
		cols := max(msg.Width-panelWidth-4, 10)
		rows := max(msg.Height-2, 4)
		m.canvas = NewCanvas(cols, rows)
	case TickMsg:
		if m.sim == nil {
			return m, m.tick()
		}
		if err := m.sim.Step(); err != nil {
			m.err = err
			return m, tea.Quit
		}
		if m.sim.Terminated() {
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) View() string {
	t := CurrentTheme
	canvasView := lipgloss.NewStyle().Padding(1, 2).Render(m.canvas.Render(t.Primary))

	var s strings.Builder
	s.WriteString(GradientText("BOUNCE", t.Primary, t.Secondary) + "\n\n")

	row := func(label, value string) {
		s.WriteString(labelStyle(t).Render(label) + valueStyle(t).Render(value) + "\n")
	}
	simTime := 0.0
	balls := 0
	if m.sim != nil {
		simTime = m.sim.Time()
		balls = len(m.sim.State().Bodies)
	}
	row("Frame", fmt.Sprintf("%d", m.frame))
	row("Time", fmt.Sprintf("%.2fs", simTime))
	row("Balls", fmt.Sprintf("%d", balls))
	row("Gravity", m.gravity)
	if len(m.energy) > 0 {
		row("Energy", fmt.Sprintf("%.3e", m.energy[len(m.energy)-1]))
	}

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("kinetic energy"))
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(t.Accent).Render(chart) + "\n")
	}
	s.WriteString("\n" + labelStyle(t).Render("Hits") + Sparkline(m.hits, 28, t.Secondary) + "\n")

	s.WriteString(hintStyle(t).Render("click/g: rotate gravity  t: theme\nq/esc: quit  ?: help"))
	if m.showHelp {
		s.WriteString("\n" + hintStyle(t).Render(fmt.Sprintf("theme: %s  fps: %d", t.Name, m.fps)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panelStyle(t).Render(s.String()))
}

// Run drives m in the terminal until the loop terminates or ctx is done.
func Run(ctx context.Context, m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}
	return m.err
}
