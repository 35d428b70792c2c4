package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-lines/internal/core"
	"github.com/vovakirdan/tui-lines/internal/lines"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// Theme controls board glyphs and ball colors.
type Theme struct {
	Ball   rune
	Empty  rune
	Colors []core.Color // Colors[v-1] is used for ball value v
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	return Theme{
		Ball:  '●',
		Empty: '·',
		Colors: []core.Color{
			core.ColorBrightRed,
			core.ColorBrightGreen,
			core.ColorBrightYellow,
			core.ColorBrightBlue,
			core.ColorBrightMagenta,
			core.ColorBrightCyan,
		},
	}
}

// ballColor returns the color for cell value v.
func (t Theme) ballColor(v int) core.Color {
	if v < 1 || v > len(t.Colors) {
		return core.ColorDefault
	}
	return t.Colors[v-1]
}

// boardView is everything drawBoard needs from the model.
type boardView struct {
	cells            *lines.Grid
	cursor           bool
	cursorX, cursorY int
	selX, selY       int
	selected         bool
}

// drawBoard draws the framed board with cursor and selection markers.
func drawBoard(s *core.Screen, frame core.Rect, t Theme, v boardView) {
	s.DrawBox(frame)
	for y := range lines.Size {
		for x := range lines.Size {
			cx, cy := cellOrigin(frame, x, y)
			val := v.cells.At(x, y)
			if val == 0 {
				s.SetWithColor(cx+1, cy, t.Empty, core.ColorGray)
			} else {
				s.SetWithColor(cx+1, cy, t.Ball, t.ballColor(val))
			}
		}
	}

	if v.selected {
		cx, cy := cellOrigin(frame, v.selX, v.selY)
		s.SetWithColor(cx, cy, '<', core.ColorBrightWhite)
		s.SetWithColor(cx+2, cy, '>', core.ColorBrightWhite)
	}
	if v.cursor {
		cx, cy := cellOrigin(frame, v.cursorX, v.cursorY)
		s.SetWithColor(cx, cy, '[', core.ColorWhite)
		s.SetWithColor(cx+2, cy, ']', core.ColorWhite)
	}
}

// statusLine describes the board under the frame.
func statusLine(cells *lines.Grid, cuts int) string {
	return fmt.Sprintf("Balls: %2d/%d   Lines: %d", cells.Count(), lines.Size*lines.Size, cuts)
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
