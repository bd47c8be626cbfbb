package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func panelStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(t.Border).
		Padding(1, 2).
		Width(44)
}

func labelStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Muted).Width(12)
}

func valueStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Text).Bold(true)
}

func hintStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Muted).Italic(true).MarginTop(1)
}

// GradientText colors each rune of text on a line between two hex colors.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	sr, sg, sb := parseHex(string(start))
	er, eg, eb := parseHex(string(end))

	var result strings.Builder
	for i, c := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		col := hexColor(
			sr+int(t*float64(er-sr)),
			sg+int(t*float64(eg-sg)),
			sb+int(t*float64(eb-sb)),
		)
		result.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(col)).Render(string(c)))
	}
	return result.String()
}

// Sparkline renders the last width values as block characters.
func Sparkline(values []float64, width int, col lipgloss.Color) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(chars)-1))
		b.WriteRune(chars[max(0, min(idx, len(chars)-1))])
	}
	return lipgloss.NewStyle().Foreground(col).Render(b.String())
}

func parseHex(hex string) (r, g, b int) {
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return 255, 255, 255
	}
	return r, g, b
}

func hexColor(r, g, b int) string {
	clamp := func(v int) int { return max(0, min(v, 255)) }
	return fmt.Sprintf("#%02x%02x%02x", clamp(r), clamp(g), clamp(b))
}
