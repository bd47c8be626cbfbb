package gui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/bounce/internal/audio"
	"github.com/san-kum/bounce/internal/config"
	"github.com/san-kum/bounce/internal/sim"
)

var (
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(90, 90, 90, 255)
)

const maxTelemetry = 200

// Window is the raylib presenter. It must be created, used and closed on
// the same OS thread.
type Window struct {
	logger *log.Logger
	bg     rl.Color
	width  int32
	height int32
	fps    int

	showHUD   bool
	telemetry []float64
	audio     *audio.Processor
}

// Open creates the window described by cfg.
func Open(cfg *config.Config, logger *log.Logger) (*Window, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return nil, err
	}

	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	if !rl.IsWindowReady() {
		return nil, fmt.Errorf("gui: could not open %dx%d window", cfg.Window.Width, cfg.Window.Height)
	}
	rl.SetExitKey(0)
	rl.SetTargetFPS(int32(cfg.FPS))

	logger.Debug("window opened", "width", cfg.Window.Width, "height", cfg.Window.Height, "title", cfg.Window.Title)

	return &Window{
		logger:    logger,
		bg:        rl.NewColor(bg.R, bg.G, bg.B, 255),
		width:     int32(cfg.Window.Width),
		height:    int32(cfg.Window.Height),
		fps:       cfg.FPS,
		showHUD:   true,
		telemetry: make([]float64, 0, maxTelemetry),
	}, nil
}

// AttachAudio shows the processor's output meter in the HUD.
func (w *Window) AttachAudio(p *audio.Processor) {
	w.audio = p
}

func (w *Window) Close() {
	rl.CloseWindow()
	w.logger.Debug("window closed")
}

func (w *Window) PollEvents() []sim.Event {
	var events []sim.Event
	if rl.WindowShouldClose() {
		events = append(events, sim.Quit())
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		events = append(events, sim.KeyDown(sim.KeyEscape))
	}
	if rl.IsKeyPressed(rl.KeyH) {
		w.showHUD = !w.showHUD
	}
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		events = append(events, sim.MouseDown(sim.ButtonPrimary))
	}
	if rl.IsMouseButtonPressed(rl.MouseRightButton) {
		events = append(events, sim.MouseDown(sim.ButtonSecondary))
	}
	return events
}

func (w *Window) Draw(st *sim.State) {
	w.telemetry = append(w.telemetry, st.KineticEnergy())
	if len(w.telemetry) > maxTelemetry {
		w.telemetry = w.telemetry[1:]
	}

	rl.BeginDrawing()
	rl.ClearBackground(w.bg)

	for _, b := range st.Bodies {
		pos := rl.NewVector2(float32(b.Pos.X), float32(b.Pos.Y))
		rl.DrawCircleV(pos, float32(b.Radius), rl.NewColor(b.Color.R, b.Color.G, b.Color.B, 255))
	}

	if w.showHUD {
		w.drawHUD(st)
	}

	rl.EndDrawing()
}

// PaceFrame relies on raylib's own frame limiter inside EndDrawing; it only
// updates the target when the rate changes.
func (w *Window) PaceFrame(fps int) {
	if fps != w.fps && fps > 0 {
		rl.SetTargetFPS(int32(fps))
		w.fps = fps
	}
}
