package physics

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
)

// BrightColor picks a random hue at full saturation and value.
func BrightColor(rng *rand.Rand) color.RGBA {
	r, g, b := HSVToRGB(rng.Float64()*360, 1, 1)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// HSVToRGB converts HSV to RGB (hue: 0-360, saturation: 0-1, value: 0-1).
func HSVToRGB(h, s, v float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return channel(r + m), channel(g + m), channel(b + m)
}

func channel(f float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, f)) * 255))
}

// Hex formats c as "#rrggbb".
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
