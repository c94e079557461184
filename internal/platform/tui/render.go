package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/giraffe-run/internal/core"
)

// palette holds the terminal style of each core.Color, indexed by color.
var palette = [...]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          fg("1"),
	core.ColorGreen:        fg("2"),
	core.ColorYellow:       fg("3"),
	core.ColorBrightGreen:  fg("10"),
	core.ColorBrightYellow: fg("11"),
	core.ColorBrightWhite:  fg("15"),
	core.ColorOrange:       fg("208"),
	core.ColorBrown:        fg("130"),
	core.ColorGray:         fg("245"),
}

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

func styleOf(c core.Color) lipgloss.Style {
	if int(c) < len(palette) {
		return palette[c]
	}
	return palette[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Each row is emitted as spans of equal color, one escape sequence per span.
func RenderScreen(s *core.Screen) string {
	var out strings.Builder
	out.Grow(s.Width()*s.Height()*2 + s.Height())

	var span strings.Builder
	for y := range s.Height() {
		if y > 0 {
			out.WriteByte('\n')
		}

		spanColor := s.GetCell(0, y).Color
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != spanColor {
				out.WriteString(styleOf(spanColor).Render(span.String()))
				span.Reset()
				spanColor = cell.Color
			}
			span.WriteRune(cell.Rune)
		}
		if span.Len() > 0 {
			out.WriteString(styleOf(spanColor).Render(span.String()))
			span.Reset()
		}
	}
	return out.String()
}
