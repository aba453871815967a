package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/colortags/internal/colortag"
	"github.com/zjrosen/colortags/internal/render"
	"github.com/zjrosen/colortags/internal/ui/styles"
)

const (
	swatchZonePrefix = "editor-swatch-"
	tabWidth         = 4
)

func swatchZoneID(offset int) string {
	return fmt.Sprintf("%s%d", swatchZonePrefix, offset)
}

// cellStyle is the style key of a run of graphemes.
type cellStyle struct {
	color    string
	selected bool
	cursor   bool
}

func (c cellStyle) render(s string) string {
	if c.cursor {
		return styles.CursorStyle.Render(s)
	}
	st := lipgloss.NewStyle()
	if c.color != "" {
		st = st.Foreground(lipgloss.Color(render.ExpandHex(c.color)))
	}
	if c.selected {
		st = st.Inherit(styles.SelectionStyle)
	}
	if c.color == "" && !c.selected {
		return s
	}
	return st.Render(s)
}

// rowDecorations is the plan restricted to one row.
type rowDecorations struct {
	from     int
	hidden   []bool
	colors   []string
	controls map[int]string // offset -> control color
}

func (m Model) decorations(r colortag.Range) rowDecorations {
	n := r.To - r.From
	d := rowDecorations{
		from:     r.From,
		hidden:   make([]bool, n),
		colors:   make([]string, n),
		controls: map[int]string{},
	}
	for _, in := range m.plan {
		if in.To < r.From || in.From > r.To {
			continue
		}
		switch in.Kind {
		case colortag.InsertControl:
			d.controls[in.From] = in.Color
		case colortag.Hide:
			for o := max(in.From, r.From); o < min(in.To, r.To); o++ {
				d.hidden[o-r.From] = true
			}
		case colortag.Colorize:
			for o := max(in.From, r.From); o < min(in.To, r.To); o++ {
				d.colors[o-r.From] = in.Color
			}
		}
	}
	return d
}

// renderRow draws one document row and returns the display column of the
// cursor when it sits on this row, or -1.
func (m Model) renderRow(row int) (string, int) {
	r := m.doc.LineRange(row)
	d := m.decorations(r)
	selFrom, selTo, hasSel := m.selection()

	var out strings.Builder
	var run strings.Builder
	var runStyle cellStyle
	flush := func() {
		if run.Len() > 0 {
			out.WriteString(runStyle.render(run.String()))
			run.Reset()
		}
	}

	x := 0
	cursorX := -1
	line := m.doc.text[r.From:r.To]
	offset := r.From
	state := -1
	for len(line) > 0 {
		cluster, rest, _, newState := uniseg.StepString(line, state)
		line, state = rest, newState
		o := offset
		offset += len(cluster)

		if color, ok := d.controls[o]; ok {
			flush()
			out.WriteString(m.swatch(o, color))
			x += runewidth.StringWidth(m.cfg.SwatchGlyph)
		}
		if d.hidden[o-r.From] {
			continue
		}

		text := cluster
		if cluster == "\t" {
			text = strings.Repeat(" ", tabWidth)
		}
		st := cellStyle{
			color:    d.colors[o-r.From],
			selected: hasSel && o >= selFrom && o < selTo,
			cursor:   m.focused && o == m.cursor,
		}
		if st.cursor {
			cursorX = x
		}
		if st != runStyle {
			flush()
			runStyle = st
		}
		run.WriteString(text)
		x += runewidth.StringWidth(text)
	}
	flush()

	if m.focused && m.cursor == r.To {
		cursorX = x
		out.WriteString(styles.CursorStyle.Render(" "))
	}
	return out.String(), cursorX
}

func (m Model) swatch(offset int, color string) string {
	st := styles.MarkupStyle
	if color != "" {
		st = lipgloss.NewStyle().Foreground(lipgloss.Color(render.ExpandHex(color)))
	}
	return zone.Mark(swatchZoneID(offset), st.Render(m.cfg.SwatchGlyph))
}

func (m Model) gutterWidth() int {
	if !m.cfg.LineNumbers {
		return 0
	}
	return lipgloss.Width(styles.LineNumberStyle.Render("0"))
}

// cursorScreenPos returns the cursor cell relative to the top left corner.
func (m Model) cursorScreenPos() (int, int) {
	row, _ := m.doc.OffsetToPos(m.cursor)
	_, x := m.renderRow(row)
	return m.gutterWidth() + max(x, 0), row - m.top
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	h := m.textHeight()
	for i := 0; i < h; i++ {
		row := m.top + i
		if row < m.doc.LineCount() {
			line, _ := m.renderRow(row)
			if m.cfg.LineNumbers {
				line = styles.LineNumberStyle.Render(fmt.Sprintf("%d", row+1)) + line
			}
			b.WriteString(ansi.Truncate(line, m.width, ""))
		}
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
		b.WriteString("\n")
	}
	b.WriteString(m.statusView())

	view := b.String()
	if m.showPicker {
		view = m.picker.Overlay(view)
	}
	return zone.Scan(view)
}

func (m Model) statusView() string {
	mode := "PREVIEW"
	if m.focused {
		mode = "EDIT"
	}
	name := m.name()
	if m.dirty {
		name += " [+]"
	}
	row, col := m.doc.OffsetToPos(m.cursor)
	left := fmt.Sprintf("%s  %s  %d:%d", name, mode, row+1, m.doc.ColumnWidth(row, col)+1)

	if m.status != "" {
		msgStyle := styles.StatusMessageStyle
		if m.statusErr {
			msgStyle = styles.StatusErrorStyle
		}
		left += "  " + msgStyle.Render(m.status)
	}

	right := m.help.ShortHelpView(m.keys.ShortHelp())
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	line := left
	if gap > 0 {
		line += strings.Repeat(" ", gap) + right
	}
	return ansi.Truncate(styles.StatusBarStyle.Render(line), m.width, "")
}
