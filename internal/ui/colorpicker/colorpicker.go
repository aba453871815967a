// Package colorpicker provides the color selection popup used to recolor
// or insert tags.
package colorpicker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/zjrosen/colortags/internal/colortag"
	"github.com/zjrosen/colortags/internal/log"
	"github.com/zjrosen/colortags/internal/ui/overlay"
	"github.com/zjrosen/colortags/internal/ui/styles"
)

// Swatch is one selectable color.
type Swatch struct {
	Label string
	Hex   string // canonical, e.g. "#e74c3c"
}

// Column is a titled list of swatches.
type Column struct {
	Title    string
	Swatches []Swatch
}

// Custom mode focus fields.
const (
	customFocusInput = iota
	customFocusSave
	customFocusCancel
)

const (
	columnWidth = 15

	// zonePrefix namespaces swatch zones; zones are registered when the
	// host passes its view through zone.Scan.
	zonePrefix = "colorpicker-swatch-"
)

// Model holds the color picker state.
type Model struct {
	columns        []Column
	column         int // Current column
	selected       int // Selected row within current column
	customInput    textinput.Model
	inCustomMode   bool
	customFocus    int  // Which element is focused in custom mode
	showCustomErr  bool // Show error after Save with invalid hex
	viewportWidth  int
	viewportHeight int
	anchorX        int
	anchorY        int
	anchored       bool
}

// SelectMsg is sent when a color is selected.
type SelectMsg struct {
	Hex string
}

// CancelMsg is sent when the picker is cancelled.
type CancelMsg struct{}

// New creates a picker with the vault, recent and named color columns.
// The Recent column is omitted while the recent list is empty.
func New(vault, recent []string) Model {
	ti := textinput.New()
	ti.Placeholder = "#rrggbb"
	ti.CharLimit = 7
	ti.Width = 9
	ti.Prompt = ""

	columns := []Column{{Title: "Vault", Swatches: hexSwatches(vault)}}
	if len(recent) > 0 {
		columns = append(columns, Column{Title: "Recent", Swatches: hexSwatches(recent)})
	}
	named := make([]Swatch, 0, len(colortag.NamedColors()))
	for _, c := range colortag.NamedColors() {
		named = append(named, Swatch{Label: c.Name, Hex: c.Hex})
	}
	columns = append(columns, Column{Title: "Named", Swatches: named})

	return Model{
		columns:     columns,
		customInput: ti,
	}
}

func hexSwatches(colors []string) []Swatch {
	out := make([]Swatch, 0, len(colors))
	for _, c := range colors {
		hex := colortag.NormalizeColor(c)
		out = append(out, Swatch{Label: hex, Hex: hex})
	}
	return out
}

// SetSize sets the viewport dimensions for overlay rendering.
func (m Model) SetSize(width, height int) Model {
	m.viewportWidth = width
	m.viewportHeight = height
	return m
}

// SetAnchor positions the picker next to a screen cell instead of centering it.
func (m Model) SetAnchor(x, y int) Model {
	m.anchorX, m.anchorY, m.anchored = x, y, true
	return m
}

// SetSelected finds and selects the swatch matching color.
// Also resets to swatch selection mode (exits custom mode if active).
// If the color is not offered, the first swatch is selected.
func (m Model) SetSelected(color string) Model {
	m.inCustomMode = false
	m.customFocus = customFocusInput
	m.showCustomErr = false
	m.customInput.Blur()

	want := colortag.NormalizeColor(color)
	for col, c := range m.columns {
		for row, s := range c.Swatches {
			if s.Hex == want {
				m.column, m.selected = col, row
				return m
			}
		}
	}
	m.column, m.selected = 0, 0
	return m
}

// Columns returns the picker's columns in display order.
func (m Model) Columns() []Column {
	return m.columns
}

// Selected returns the currently selected swatch.
func (m Model) Selected() Swatch {
	if m.column >= 0 && m.column < len(m.columns) {
		swatches := m.columns[m.column].Swatches
		if m.selected >= 0 && m.selected < len(swatches) {
			return swatches[m.selected]
		}
	}
	return Swatch{}
}

// InCustomMode returns whether the picker is in custom hex entry mode.
func (m Model) InCustomMode() bool {
	return m.inCustomMode
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if mouse, ok := msg.(tea.MouseMsg); ok {
		return m.updateMouse(mouse)
	}
	if m.inCustomMode {
		return m.updateCustomMode(msg)
	}
	return m.updateNormalMode(msg)
}

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft || m.inCustomMode {
		return m, nil
	}
	for col, c := range m.columns {
		for row, s := range c.Swatches {
			if z := zone.Get(m.swatchZoneID(col, row)); z != nil && z.InBounds(msg) {
				m.column, m.selected = col, row
				log.Debug(log.CatPicker, "Swatch clicked", "column", c.Title, "hex", s.Hex)
				return m, selectCmd(s.Hex)
			}
		}
	}
	return m, nil
}

func (m Model) updateNormalMode(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	current := m.columns[m.column].Swatches
	switch keyMsg.String() {
	case "j", "down", "ctrl+n":
		if m.selected < len(current)-1 {
			m.selected++
		}
	case "k", "up", "ctrl+p":
		if m.selected > 0 {
			m.selected--
		}
	case "h", "left", "shift+tab":
		if m.column > 0 {
			m.column--
			m.clampSelected()
		}
	case "l", "right", "tab":
		if m.column < len(m.columns)-1 {
			m.column++
			m.clampSelected()
		}
	case "enter":
		if len(current) == 0 {
			return m, nil
		}
		return m, selectCmd(current[m.selected].Hex)
	case "esc", "q":
		return m, cancelCmd()
	case "c", "#":
		m.inCustomMode = true
		m.customFocus = customFocusInput
		m.customInput.SetValue("")
		if keyMsg.String() == "#" {
			m.customInput.SetValue("#")
			m.customInput.CursorEnd()
		}
		m.customInput.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m *Model) clampSelected() {
	if n := len(m.columns[m.column].Swatches); m.selected >= n {
		m.selected = max(n-1, 0)
	}
}

func (m Model) updateCustomMode(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			switch m.customFocus {
			case customFocusInput, customFocusSave:
				hex, ok := ParseHex(m.customInput.Value())
				if ok {
					log.Debug(log.CatPicker, "Custom color", "hex", hex)
					return m, selectCmd(hex)
				}
				m.showCustomErr = true
				return m, nil
			case customFocusCancel:
				return m.exitCustomMode(), nil
			}
		case "esc":
			return m.exitCustomMode(), nil
		case "tab", "down":
			m.customFocus = (m.customFocus + 1) % (customFocusCancel + 1)
			return m.syncInputFocus()
		case "shift+tab", "up":
			m.customFocus = (m.customFocus + customFocusCancel) % (customFocusCancel + 1)
			return m.syncInputFocus()
		case "left":
			if m.customFocus == customFocusCancel {
				m.customFocus = customFocusSave
				return m, nil
			}
		case "right":
			if m.customFocus == customFocusSave {
				m.customFocus = customFocusCancel
				return m, nil
			}
		}
	}

	// Only update text input when focused on it
	if m.customFocus != customFocusInput {
		return m, nil
	}
	var cmd tea.Cmd
	m.customInput, cmd = m.customInput.Update(msg)
	if m.showCustomErr {
		if _, ok := ParseHex(m.customInput.Value()); ok {
			m.showCustomErr = false
		}
	}
	return m, cmd
}

func (m Model) exitCustomMode() Model {
	m.inCustomMode = false
	m.customFocus = customFocusInput
	m.showCustomErr = false
	m.customInput.Blur()
	return m
}

func (m Model) syncInputFocus() (Model, tea.Cmd) {
	if m.customFocus == customFocusInput {
		m.customInput.Focus()
		return m, textinput.Blink
	}
	m.customInput.Blur()
	return m, nil
}

// ParseHex validates user-typed hex input. The marker is optional and
// 3- or 6-digit values are accepted; the result is lowercase with the
// marker and keeps the digit count the user typed.
func ParseHex(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	hex := string(colortag.Marker) + strings.ToLower(colortag.StripMarker(s))
	if _, ok := colortag.Resolve(hex); !ok {
		return "", false
	}
	if _, err := colorful.Hex(hex); err != nil {
		return "", false
	}
	return hex, true
}

// PreviewHex returns the 6-digit form used to paint a preview swatch.
func PreviewHex(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colortag.FallbackColor
	}
	return c.Hex()
}

func (m Model) swatchZoneID(col, row int) string {
	return fmt.Sprintf("%s%d-%d", zonePrefix, col, row)
}

// View renders the picker box.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		PaddingLeft(1)

	width := columnWidth * len(m.columns)

	var content strings.Builder
	if m.inCustomMode {
		content.WriteString(titleStyle.Render("Custom Color"))
		content.WriteString("\n")
		content.WriteString(m.customView(width))
	} else {
		content.WriteString(titleStyle.Render("Select Color"))
		content.WriteString("\n")
		content.WriteString(lipgloss.NewStyle().Foreground(styles.OverlayBorderColor).Render(strings.Repeat("─", width)))
		content.WriteString("\n")
		content.WriteString(m.columnsView())
		content.WriteString("\n")
		content.WriteString(lipgloss.NewStyle().PaddingLeft(1).Foreground(styles.TextMutedColor).Render("c custom  h/l column  esc close"))
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(width)

	return boxStyle.Render(content.String())
}

func (m Model) columnsView() string {
	maxRows := 0
	for _, c := range m.columns {
		maxRows = max(maxRows, len(c.Swatches))
	}

	columnStyle := lipgloss.NewStyle().Width(columnWidth)
	headerStyle := columnStyle.Foreground(styles.TextMutedColor)

	views := make([]string, 0, len(m.columns))
	for colIdx, c := range m.columns {
		var col strings.Builder
		col.WriteString(headerStyle.Render(" " + c.Title))
		col.WriteString("\n")
		for rowIdx := 0; rowIdx < maxRows; rowIdx++ {
			if rowIdx >= len(c.Swatches) {
				col.WriteString(strings.Repeat(" ", columnWidth))
				col.WriteString("\n")
				continue
			}
			s := c.Swatches[rowIdx]
			chip := lipgloss.NewStyle().Background(lipgloss.Color(PreviewHex(s.Hex))).Render("  ")
			prefix := " "
			if colIdx == m.column && rowIdx == m.selected {
				prefix = styles.SelectionIndicatorStyle.Render(">")
			}
			line := zone.Mark(m.swatchZoneID(colIdx, rowIdx), prefix+chip+" "+s.Label)
			col.WriteString(columnStyle.Render(line))
			col.WriteString("\n")
		}
		views = append(views, strings.TrimSuffix(col.String(), "\n"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, views...)
}

func (m Model) customView(width int) string {
	var b strings.Builder

	field := styles.InputSection{Label: "Hex", Hint: "#rgb or #rrggbb"}
	if hex, ok := ParseHex(m.customInput.Value()); ok {
		field.Swatch = lipgloss.Color(PreviewHex(hex))
	}
	section := field.Render(m.customInput.View(), width-2, m.customFocus == customFocusInput)
	b.WriteString(lipgloss.NewStyle().PaddingLeft(1).Render(section))
	b.WriteString("\n")

	if m.showCustomErr {
		b.WriteString(lipgloss.NewStyle().PaddingLeft(1).Foreground(styles.StatusErrorColor).Render("Invalid hex format"))
		b.WriteString("\n")
	}

	saveStyle := styles.PrimaryButtonStyle
	if m.customFocus == customFocusSave {
		saveStyle = styles.PrimaryButtonFocusedStyle
	}
	cancelStyle := styles.SecondaryButtonStyle
	if m.customFocus == customFocusCancel {
		cancelStyle = styles.PrimaryButtonFocusedStyle
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().PaddingLeft(1).Render(saveStyle.Render("Apply") + "  " + cancelStyle.Render("Cancel")))
	return b.String()
}

// Overlay renders the picker on top of a background view.
func (m Model) Overlay(background string) string {
	box := m.View()

	if background == "" {
		return lipgloss.Place(
			m.viewportWidth, m.viewportHeight,
			lipgloss.Center, lipgloss.Center,
			box,
		)
	}

	cfg := overlay.Config{
		Width:    m.viewportWidth,
		Height:   m.viewportHeight,
		Position: overlay.Center,
	}
	if m.anchored {
		cfg.Position = overlay.Anchored
		cfg.X, cfg.Y = m.anchorX, m.anchorY
	}
	return overlay.Place(cfg, box, background)
}

// selectCmd returns a command that sends a SelectMsg.
func selectCmd(hex string) tea.Cmd {
	return func() tea.Msg {
		return SelectMsg{Hex: hex}
	}
}

// cancelCmd returns a command that sends a CancelMsg.
func cancelCmd() tea.Cmd {
	return func() tea.Msg {
		return CancelMsg{}
	}
}
