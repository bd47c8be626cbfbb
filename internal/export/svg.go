package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/bounce/internal/storage"
	"github.com/san-kum/bounce/internal/vec"
)

type Options struct {
	// Scale maps simulation pixels to SVG units.
	Scale      float64
	Background string
	// Tail keeps only the last Tail frames of each path. Zero keeps all.
	Tail int
}

func DefaultOptions() Options {
	return Options{Scale: 0.25, Background: "#000000"}
}

// RunToSVG draws every body's recorded path in its own color, with the
// final position as a filled circle.
func RunToSVG(meta storage.RunMetadata, frames []storage.FrameRecord, opts Options) string {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Background == "" {
		opts.Background = "#000000"
	}
	if opts.Tail > 0 && len(frames) > opts.Tail {
		frames = frames[len(frames)-opts.Tail:]
	}

	width := meta.Width * opts.Scale
	height := meta.Height * opts.Scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, opts.Background))

	for i := 0; i < meta.Bodies; i++ {
		path := storage.Trajectory(frames, i)
		if len(path) == 0 {
			continue
		}
		stroke := bodyColor(meta, i)

		if len(path) > 1 {
			sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-opacity="0.6" stroke-width="1" d="`, stroke))
			for j, p := range path {
				if j == 0 {
					sb.WriteString(fmt.Sprintf("M%.1f,%.1f", p.X*opts.Scale, p.Y*opts.Scale))
				} else {
					sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X*opts.Scale, p.Y*opts.Scale))
				}
			}
			sb.WriteString("\"/>\n")
		}

		last := path[len(path)-1]
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, last.X*opts.Scale, last.Y*opts.Scale, meta.Radius*opts.Scale, stroke))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func bodyColor(meta storage.RunMetadata, i int) string {
	if i < len(meta.Colors) {
		return meta.Colors[i]
	}
	return "#ffffff"
}

// SeriesToSVG plots values against their index, fitted to the canvas.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	points := make([]vec.Vector, len(values))
	for i, v := range values {
		points[i] = vec.New(float64(i), v)
	}
	return TrajectoryToSVG(points, width, height, strokeColor)
}

// TrajectoryToSVG fits points to the canvas with 10% padding, y up.
func TrajectoryToSVG(points []vec.Vector, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
