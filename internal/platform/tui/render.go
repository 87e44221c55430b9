package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/aether-knight/internal/core"
)

// styles holds one lipgloss style per palette color.
var styles = func() []lipgloss.Style {
	out := make([]lipgloss.Style, core.NumColors)
	for i := range out {
		st := lipgloss.NewStyle()
		if code := core.Color(i).Code(); code != "" {
			st = st.Foreground(lipgloss.Color(code))
		}
		out[i] = st
	}
	return out
}()

var errorBarStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("15")).
	Background(lipgloss.Color("124"))

func styleFor(c core.Color) lipgloss.Style {
	if int(c) >= len(styles) {
		return styles[core.ColorDefault]
	}
	return styles[c]
}

// RenderScreen converts a Screen buffer to a styled string for display.
func RenderScreen(s *core.Screen) string {
	return renderRows(s, s.Height())
}

// renderRows renders the first n rows of s. Adjacent cells sharing a color
// are emitted as one styled run.
func renderRows(s *core.Screen, n int) string {
	var sb strings.Builder
	sb.Grow(s.Width()*n*2 + n)

	var run strings.Builder
	for y := range n {
		if y > 0 {
			sb.WriteRune('\n')
		}
		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			sb.WriteString(styleFor(color).Render(run.String()))
		}
	}
	return sb.String()
}

// renderWithErrorBar renders s with its bottom row replaced by msg.
func renderWithErrorBar(s *core.Screen, msg string) string {
	if s.Height() == 0 {
		return ""
	}
	line := " ERROR: " + msg
	if w := lipgloss.Width(line); w < s.Width() {
		line += strings.Repeat(" ", s.Width()-w)
	} else {
		line = string([]rune(line)[:s.Width()])
	}
	bar := errorBarStyle.Render(line)
	if s.Height() == 1 {
		return bar
	}
	return renderRows(s, s.Height()-1) + "\n" + bar
}
