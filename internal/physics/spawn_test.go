package physics

import (
	"errors"
	"image/color"
	"math/rand"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/bounce/internal/dynamo"
)

func defaultSpawn() Spawn {
	return Spawn{
		Count:    50,
		Radius:   15,
		SpeedMin: 3000.0 / 2000 * 30,
		SpeedMax: 3000.0 / 500 * 30,
		Bounds:   screen,
	}
}

func TestSpawnBodies(t *testing.T) {
	g := NewWithT(t)
	s := defaultSpawn()

	bodies, err := SpawnBodies(rand.New(rand.NewSource(42)), s)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(bodies).To(HaveLen(50))

	for _, b := range bodies {
		g.Expect(b.Radius).To(Equal(s.Radius))
		g.Expect(b.Mass).To(Equal(DefaultMass))
		g.Expect(b.Speed()).To(BeNumerically(">=", s.SpeedMin-1e-9))
		g.Expect(b.Speed()).To(BeNumerically("<=", s.SpeedMax+1e-9))
		g.Expect(b.Pos.X).To(BeNumerically(">=", s.Radius))
		g.Expect(b.Pos.X).To(BeNumerically("<=", s.Bounds.Width-s.Radius))
		g.Expect(b.Pos.Y).To(BeNumerically(">=", s.Radius))
		g.Expect(b.Pos.Y).To(BeNumerically("<=", s.Bounds.Height/2+s.Radius))
		g.Expect(b.Color.A).To(Equal(uint8(255)))
	}
}

func TestSpawnDeterministic(t *testing.T) {
	a, _ := SpawnBodies(rand.New(rand.NewSource(1)), defaultSpawn())
	b, _ := SpawnBodies(rand.New(rand.NewSource(1)), defaultSpawn())
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("body %d differs for the same seed", i)
		}
	}
}

func TestSpawnValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Spawn)
	}{
		{"negative count", func(s *Spawn) { s.Count = -1 }},
		{"zero width", func(s *Spawn) { s.Bounds.Width = 0 }},
		{"negative radius", func(s *Spawn) { s.Radius = -1 }},
		{"radius wider than field", func(s *Spawn) { s.Radius = 2000 }},
		{"inverted speeds", func(s *Spawn) { s.SpeedMin, s.SpeedMax = 10, 5 }},
		{"negative speed", func(s *Spawn) { s.SpeedMin = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := defaultSpawn()
			tt.mutate(&s)
			if _, err := SpawnBodies(rand.New(rand.NewSource(1)), s); !errors.Is(err, dynamo.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestHSVToRGB(t *testing.T) {
	tests := []struct {
		h       float64
		r, g, b uint8
	}{
		{0, 255, 0, 0},
		{60, 255, 255, 0},
		{120, 0, 255, 0},
		{180, 0, 255, 255},
		{240, 0, 0, 255},
		{300, 255, 0, 255},
		{360, 255, 0, 0},
		{30, 255, 128, 0},
	}
	for _, tt := range tests {
		r, g, b := HSVToRGB(tt.h, 1, 1)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("HSVToRGB(%g) = (%d,%d,%d), want (%d,%d,%d)", tt.h, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}

func TestBrightColorIsSaturated(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		c := BrightColor(rng)
		hi := max(c.R, c.G, c.B)
		lo := min(c.R, c.G, c.B)
		if hi != 255 || lo != 0 {
			t.Fatalf("color %v is not fully saturated", c)
		}
	}
}

func TestHex(t *testing.T) {
	if got := Hex(color.RGBA{R: 255, G: 8, B: 0, A: 255}); got != "#ff0800" {
		t.Errorf("Hex = %q, want #ff0800", got)
	}
}
