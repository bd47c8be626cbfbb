package gui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/bounce/internal/sim"
)

// scale keeps the HUD readable on very large windows.
func (w *Window) scale() int32 {
	s := w.height / 720
	if s < 1 {
		return 1
	}
	return s
}

func (w *Window) drawText(text string, x, y, size int32, color rl.Color) {
	s := w.scale()
	rl.DrawText(text, x*s, y*s, size*s, color)
}

func (w *Window) drawHUD(st *sim.State) {
	w.drawText("bounce", 30, 30, 24, ColSelect)
	w.drawText(fmt.Sprintf(":: %d balls", len(st.Bodies)), 140, 36, 16, ColText)

	w.drawGravity(st)
	w.drawTelemetry()

	w.drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 30, 680, 14, ColTextDim)
	w.drawText("[CLICK] ROTATE GRAVITY  [H] HUD  [ESC] QUIT", 160, 680, 14, ColTextDim)

	if w.audio != nil && w.audio.Active() {
		l := w.audio.Levels()
		bars := min(int((l.Bass+l.Mid+l.High)/3*20), 20)
		w.drawText(fmt.Sprintf("AUDIO [%-20s]", strings.Repeat("|", bars)), 30, 650, 14, ColAccent)
	}
}

// drawGravity draws the field direction as an arrow in the top right.
func (w *Window) drawGravity(st *sim.State) {
	s := float32(w.scale())
	cx := float32(w.width) - 80*s
	cy := 70 * s

	rl.DrawCircleLines(int32(cx), int32(cy), 30*s, ColTextDim)

	g := st.Gravity
	m := g.Magnitude()
	if m == 0 {
		w.drawText("0 g", int32(cx/s)-10, 62, 14, ColText)
		return
	}
	dx := float32(g.X/m) * 24 * s
	dy := float32(g.Y/m) * 24 * s
	rl.DrawLineEx(rl.NewVector2(cx, cy), rl.NewVector2(cx+dx, cy+dy), 2*s, ColSelect)
	rl.DrawCircleV(rl.NewVector2(cx+dx, cy+dy), 4*s, ColSelect)
}

func (w *Window) drawTelemetry() {
	if len(w.telemetry) < 2 {
		return
	}
	s := float32(w.scale())
	rectX, rectY := 30*s, 580*s
	width, height := 400*s, 60*s

	minVal, maxVal := w.telemetry[0], w.telemetry[0]
	for _, v := range w.telemetry {
		minVal, maxVal = min(minVal, v), max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(w.telemetry))
	for i, val := range w.telemetry {
		px := rectX + float32(i)/float32(maxTelemetry)*width
		norm := (val - minVal) / (maxVal - minVal)
		py := rectY + height - float32(norm)*height
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	w.drawText(fmt.Sprintf("KE %.3e", w.telemetry[len(w.telemetry)-1]), 440, 620, 14, ColText)
}
