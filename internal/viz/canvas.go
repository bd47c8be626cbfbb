package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a Braille grid of Width x Height cells, i.e. (Width*2) x
// (Height*4) dots. Each cell remembers the last color drawn into it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]lipgloss.Color
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]lipgloss.Color, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]lipgloss.Color, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at (x, y) in dot coordinates.
func (c *Canvas) Set(x, y int) {
	c.SetColor(x, y, "")
}

func (c *Canvas) SetColor(x, y int, col lipgloss.Color) {
	if x < 0 || y < 0 {
		return
	}
	row, cell := y/4, x/2
	if cell >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][cell] |= rune(pixelMap[y%4][x%2])
	if col != "" {
		c.Colors[row][cell] = col
	}
}

func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	row, cell := y/4, x/2
	if cell >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][cell] &^= rune(pixelMap[y%4][x%2])
	if c.Grid[row][cell] < blank {
		c.Grid[row][cell] = blank
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = ""
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawDisc fills a disc of radius r dots. r < 1 lights a single dot.
func (c *Canvas) DrawDisc(cx, cy, r int, col lipgloss.Color) {
	if r < 1 {
		c.SetColor(cx, cy, col)
		return
	}
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.SetColor(cx+dx, cy+dy, col)
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render is String with each colored cell styled. Uncolored dots use fallback.
func (c *Canvas) Render(fallback lipgloss.Color) string {
	base := lipgloss.NewStyle().Foreground(fallback)
	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			switch {
			case r == blank:
				b.WriteRune(r)
			case c.Colors[i][j] != "":
				b.WriteString(lipgloss.NewStyle().Foreground(c.Colors[i][j]).Render(string(r)))
			default:
				b.WriteString(base.Render(string(r)))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
