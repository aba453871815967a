package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// InputSection is a single-line input framed by a rounded border whose top
// edge carries a label: ╭─ Hex (#rgb) ────╮.
type InputSection struct {
	Label string
	Hint  string

	// Swatch, when set, is drawn as a color chip at the right edge of the row.
	Swatch lipgloss.TerminalColor
}

const swatchWidth = 4

// Render draws the section width cells wide around input. The border is
// highlighted while focused.
func (s InputSection) Render(input string, width int, focused bool) string {
	var edge lipgloss.TerminalColor = BorderDefaultColor
	if focused {
		edge = BorderHighlightFocusColor
	}
	border := lipgloss.NewStyle().Foreground(edge)
	inner := max(width-2, 1)

	label := lipgloss.NewStyle().Bold(true).Foreground(edge).Render(s.Label)
	if s.Hint != "" {
		label += " " + lipgloss.NewStyle().Foreground(TextMutedColor).Render("("+s.Hint+")")
	}
	fill := max(inner-lipgloss.Width(label)-3, 0)
	top := border.Render("╭─ ") + label + border.Render(" "+strings.Repeat("─", fill)+"╮")

	chip := ""
	if s.Swatch != nil {
		chip = " " + lipgloss.NewStyle().Background(s.Swatch).Render(strings.Repeat(" ", swatchWidth))
	}
	gap := max(inner-lipgloss.Width(input)-lipgloss.Width(chip), 0)
	row := border.Render("│") + input + strings.Repeat(" ", gap) + chip + border.Render("│")

	bottom := border.Render("╰" + strings.Repeat("─", inner) + "╯")
	return top + "\n" + row + "\n" + bottom
}
