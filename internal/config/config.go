package config

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/integrators"
	"github.com/san-kum/bounce/internal/physics"
	"github.com/san-kum/bounce/internal/vec"
)

const (
	DefaultWidth      = 3000
	DefaultHeight     = 2000
	DefaultTitle      = "Bouncing Balls"
	DefaultFPS        = 30
	DefaultBalls      = 50
	DefaultBackground = "#000000"
)

type Config struct {
	Window     WindowConfig  `yaml:"window"`
	FPS        int           `yaml:"fps"`
	Balls      int           `yaml:"balls"`
	Radius     float64       `yaml:"radius,omitempty"`
	Speed      *SpeedRange   `yaml:"speed,omitempty"`
	Gravity    *VectorConfig `yaml:"gravity,omitempty"`
	Seed       int64         `yaml:"seed"`
	Integrator string        `yaml:"integrator"`
	Background string        `yaml:"background"`
	Audio      bool          `yaml:"audio"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// SpeedRange is in pixels per second.
type SpeedRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type VectorConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// DefaultConfig reproduces the original program. Radius, speed and gravity
// are left unset so they follow the window size and frame rate.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Title:  DefaultTitle,
		},
		FPS:        DefaultFPS,
		Balls:      DefaultBalls,
		Integrator: integrators.Default,
		Background: DefaultBackground,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := cfg.YAML()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Overrides carries command-line values. Nil fields leave the config alone.
type Overrides struct {
	Width      *int
	Height     *int
	FPS        *int
	Balls      *int
	Seed       *int64
	Integrator *string
	Audio      *bool
}

func (c *Config) Apply(o Overrides) {
	if o.Width != nil {
		c.Window.Width = *o.Width
	}
	if o.Height != nil {
		c.Window.Height = *o.Height
	}
	if o.FPS != nil {
		c.FPS = *o.FPS
	}
	if o.Balls != nil {
		c.Balls = *o.Balls
	}
	if o.Seed != nil {
		c.Seed = *o.Seed
	}
	if o.Integrator != nil {
		c.Integrator = *o.Integrator
	}
	if o.Audio != nil {
		c.Audio = *o.Audio
	}
}

func (c *Config) Bounds() physics.Bounds {
	return physics.Bounds{Width: float64(c.Window.Width), Height: float64(c.Window.Height)}
}

func (c *Config) Dt() float64 {
	return 1 / float64(c.FPS)
}

// BallRadius defaults to width/200.
func (c *Config) BallRadius() float64 {
	if c.Radius > 0 {
		return c.Radius
	}
	return float64(c.Window.Width) / 200
}

// SpeedLimits defaults to width/2000 .. width/500 pixels per frame, expressed
// per second.
func (c *Config) SpeedLimits() (float64, float64) {
	if c.Speed != nil {
		return c.Speed.Min, c.Speed.Max
	}
	w, fps := float64(c.Window.Width), float64(c.FPS)
	return w / 2000 * fps, w / 500 * fps
}

// GravityVector defaults to (0, height/5), pointing down the screen.
func (c *Config) GravityVector() vec.Vector {
	if c.Gravity != nil {
		return vec.New(c.Gravity.X, c.Gravity.Y)
	}
	return vec.New(0, float64(c.Window.Height)/5)
}

func (c *Config) Spawn() physics.Spawn {
	lo, hi := c.SpeedLimits()
	return physics.Spawn{
		Count:    c.Balls,
		Radius:   c.BallRadius(),
		SpeedMin: lo,
		SpeedMax: hi,
		Bounds:   c.Bounds(),
	}
}

func (c *Config) BackgroundColor() (color.RGBA, error) {
	return ParseColor(c.Background)
}

func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return dynamo.Invalid("window must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	case c.FPS <= 0:
		return dynamo.Invalid("fps must be positive, got %d", c.FPS)
	case c.Balls < 0:
		return dynamo.Invalid("balls must be non-negative, got %d", c.Balls)
	case c.Radius < 0:
		return dynamo.Invalid("radius must be non-negative, got %g", c.Radius)
	}
	if _, err := integrators.Get(c.Integrator); err != nil {
		return err
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	return c.Spawn().Validate()
}

// ParseColor reads "#rrggbb".
func ParseColor(hex string) (color.RGBA, error) {
	var r, g, b uint8
	if len(hex) == 7 && hex[0] == '#' {
		n, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b)
		if err == nil && n == 3 {
			return color.RGBA{R: r, G: g, B: b, A: 255}, nil
		}
	}
	return color.RGBA{}, dynamo.Invalid("color must be #rrggbb, got %q", hex)
}
