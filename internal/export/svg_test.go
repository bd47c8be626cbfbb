package export

import (
	"strings"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/bounce/internal/storage"
	"github.com/san-kum/bounce/internal/vec"
)

func sampleRun() (storage.RunMetadata, []storage.FrameRecord) {
	meta := storage.RunMetadata{
		Bodies: 2,
		Width:  400,
		Height: 200,
		Radius: 4,
		Colors: []string{"#ff0000"},
	}
	frames := []storage.FrameRecord{
		{Time: 0.1, Positions: []vec.Vector{vec.New(10, 10), vec.New(100, 100)}},
		{Time: 0.2, Positions: []vec.Vector{vec.New(20, 10), vec.New(110, 90)}},
		{Time: 0.3, Positions: []vec.Vector{vec.New(30, 10), vec.New(120, 80)}},
	}
	return meta, frames
}

func TestRunToSVG(t *testing.T) {
	g := NewWithT(t)
	meta, frames := sampleRun()

	svg := RunToSVG(meta, frames, Options{Scale: 0.5, Background: "#101010"})

	g.Expect(svg).To(HavePrefix("<?xml"))
	g.Expect(svg).To(HaveSuffix("</svg>"))
	g.Expect(svg).To(ContainSubstring(`width="200" height="100"`))
	g.Expect(svg).To(ContainSubstring(`fill="#101010"`))
	g.Expect(strings.Count(svg, "<path")).To(Equal(2))
	g.Expect(strings.Count(svg, "<circle")).To(Equal(2))
	g.Expect(svg).To(ContainSubstring(`stroke="#ff0000"`))
	g.Expect(svg).To(ContainSubstring(`stroke="#ffffff"`))
	g.Expect(svg).To(ContainSubstring(`<circle cx="15.0" cy="5.0" r="2.0" fill="#ff0000"/>`))
	g.Expect(svg).To(ContainSubstring("M5.0,5.0 L10.0,5.0 L15.0,5.0"))
}

func TestRunToSVGTail(t *testing.T) {
	meta, frames := sampleRun()
	svg := RunToSVG(meta, frames, Options{Scale: 1, Tail: 1})

	if strings.Contains(svg, "<path") {
		t.Error("a single-frame tail should draw no paths")
	}
	if !strings.Contains(svg, `<circle cx="120.0" cy="80.0"`) {
		t.Error("expected final position of body 1")
	}
}

func TestRunToSVGNoFrames(t *testing.T) {
	meta, _ := sampleRun()
	svg := RunToSVG(meta, nil, DefaultOptions())
	if strings.Contains(svg, "<circle") || !strings.HasSuffix(svg, "</svg>") {
		t.Errorf("unexpected svg for empty run: %s", svg)
	}
}

func TestTrajectoryToSVG(t *testing.T) {
	if TrajectoryToSVG([]vec.Vector{vec.New(1, 1)}, 100, 100, "#fff") != "" {
		t.Error("expected empty output for a single point")
	}

	svg := TrajectoryToSVG([]vec.Vector{vec.New(0, 0), vec.New(10, 10)}, 120, 120, "#00ff00")
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("missing stroke color")
	}
	if !strings.Contains(svg, "M10.0,110.0 L110.0,10.0") {
		t.Errorf("unexpected path: %s", svg)
	}
}

func TestSeriesToSVG(t *testing.T) {
	svg := SeriesToSVG([]float64{3, 1, 2}, 100, 50, "#ffaa00")
	if strings.Count(svg, " L") != 2 {
		t.Errorf("expected 2 line segments: %s", svg)
	}
}
