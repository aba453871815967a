// Package editor provides the interactive markup editor. Tags render in
// display mode with their markup hidden, except the tag under the cursor,
// which shows its raw markup in its own color behind a swatch control.
package editor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/colortags/internal/colortag"
	"github.com/zjrosen/colortags/internal/config"
	"github.com/zjrosen/colortags/internal/flags"
	"github.com/zjrosen/colortags/internal/keys"
	"github.com/zjrosen/colortags/internal/log"
	"github.com/zjrosen/colortags/internal/ui/colorpicker"
)

// Config holds everything the editor needs from the outside world.
type Config struct {
	// Path is the document file. Empty means an unsaved scratch buffer.
	Path string
	// Text is the initial document content.
	Text string

	// ConfigPath receives recent color updates. Empty disables persistence.
	ConfigPath string
	Vault      []string
	Recent     []string

	SwatchGlyph string
	LineNumbers bool
	// Reload replaces an unmodified buffer when Changes fires.
	Reload bool

	Flags *flags.Registry

	// Changes signals that Path changed on disk. May be nil.
	Changes <-chan struct{}
}

// FileChangedMsg is delivered when the document file changes on disk.
type FileChangedMsg struct{}

type reloadedMsg struct{ text string }

type savedMsg struct{ version int }

type colorsSavedMsg struct{}

type errMsg struct {
	op  string
	err error
}

// pickTarget is what a picked color will be applied to.
type pickTarget int

const (
	pickRecolor pickTarget = iota // rewrite the color of the tag at the cursor
	pickInsert                    // insert a new tag at the cursor
	pickWrap                      // wrap the selection in a new tag
)

// planKey captures the inputs of the last plan.
type planKey struct {
	version int
	cursor  int
	selFrom int
	top     int
	height  int
	focused bool
}

// Model is the editor's Bubble Tea model.
type Model struct {
	cfg      Config
	keys     keys.EditorKeyMap
	help     help.Model
	showHelp bool

	doc     Document
	version int
	cursor  int
	selFrom int // selection anchor, colortag.NoAnchor when nothing is selected
	goalCol int // display column kept across vertical moves, -1 when unset
	focused bool
	top     int
	width   int
	height  int

	dirty     bool
	recent    []string
	status    string
	statusErr bool

	picker     colorpicker.Model
	showPicker bool
	target     pickTarget
	targetFrom int
	targetTo   int

	plan    []colortag.Instruction
	planned planKey
	hasPlan bool
}

// New creates an editor for cfg.
func New(cfg Config) Model {
	if cfg.SwatchGlyph == "" {
		cfg.SwatchGlyph = config.Defaults().Editor.SwatchGlyph
	}
	m := Model{
		cfg:     cfg,
		keys:    keys.DefaultEditorKeyMap(),
		help:    help.New(),
		doc:     NewDocument(cfg.Text),
		selFrom: colortag.NoAnchor,
		goalCol: -1,
		focused: true,
		width:   80,
		height:  24,
		recent:  append([]string(nil), cfg.Recent...),
	}
	m.replan()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return waitForChange(m.cfg.Changes)
}

// Text returns the current document text.
func (m Model) Text() string { return m.doc.Text() }

// Cursor returns the cursor offset.
func (m Model) Cursor() int { return m.cursor }

// Focused reports whether the editor is in editing (focused) state.
func (m Model) Focused() bool { return m.focused }

// Dirty reports whether the buffer has unsaved changes.
func (m Model) Dirty() bool { return m.dirty }

// Recent returns the recent color list, newest first.
func (m Model) Recent() []string { return m.recent }

// PickerOpen reports whether the color picker is showing.
func (m Model) PickerOpen() bool { return m.showPicker }

// Plan returns the render instructions of the visible rows.
func (m Model) Plan() []colortag.Instruction { return m.plan }

// Status returns the status bar message.
func (m Model) Status() string { return m.status }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m, cmd = m.update(msg)
	m.replan()
	return m, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.picker = m.picker.SetSize(msg.Width, msg.Height)
		m.scrollToCursor()
		return m, nil

	case tea.FocusMsg:
		m.focused = true
		return m, nil

	case tea.BlurMsg:
		m.focused = false
		return m, nil

	case FileChangedMsg:
		return m.handleFileChanged()

	case reloadedMsg:
		m.reload(msg.text)
		return m, nil

	case savedMsg:
		if msg.version == m.version {
			m.dirty = false
		}
		m.setStatus("Saved " + m.name())
		return m, nil

	case colorsSavedMsg:
		return m, nil

	case errMsg:
		log.ErrorErr(log.CatEditor, "Operation failed", msg.err, "op", msg.op)
		m.status = fmt.Sprintf("%s failed: %v", msg.op, msg.err)
		m.statusErr = true
		return m, nil

	case colorpicker.SelectMsg:
		return m.applyPick(msg.Hex)

	case colorpicker.CancelMsg:
		m.showPicker = false
		log.Debug(log.CatPicker, "Picker cancelled")
		return m, nil

	case tea.MouseMsg:
		if m.showPicker {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(msg)
			return m, cmd
		}
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.showPicker {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Save):
		return m, m.saveCmd()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.scrollToCursor()
		return m, nil
	case key.Matches(msg, m.keys.ToggleFocus):
		m.focused = !m.focused
		m.selFrom = colortag.NoAnchor
		return m, nil
	}

	if !m.focused {
		switch {
		case key.Matches(msg, m.keys.PageUp, m.keys.Up):
			m.top = max(m.top-m.textHeight(), 0)
		case key.Matches(msg, m.keys.PageDown, m.keys.Down):
			m.top = max(min(m.top+m.textHeight(), m.doc.LineCount()-m.textHeight()), 0)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Left):
		if from, _, ok := m.selection(); ok {
			m.moveTo(from)
		} else {
			m.moveTo(m.doc.PrevBoundary(m.cursor))
		}
	case key.Matches(msg, m.keys.Right):
		if _, to, ok := m.selection(); ok {
			m.moveTo(to)
		} else {
			m.moveTo(m.doc.NextBoundary(m.cursor))
		}
	case key.Matches(msg, m.keys.Up):
		m.moveVertical(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveVertical(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveVertical(-m.textHeight())
	case key.Matches(msg, m.keys.PageDown):
		m.moveVertical(m.textHeight())
	case key.Matches(msg, m.keys.Home):
		row, _ := m.doc.OffsetToPos(m.cursor)
		m.moveTo(m.doc.LineRange(row).From)
	case key.Matches(msg, m.keys.End):
		row, _ := m.doc.OffsetToPos(m.cursor)
		m.moveTo(m.doc.LineRange(row).To)
	case key.Matches(msg, m.keys.SelectLeft):
		m.extendTo(m.doc.PrevBoundary(m.cursor))
	case key.Matches(msg, m.keys.SelectRight):
		m.extendTo(m.doc.NextBoundary(m.cursor))
	case key.Matches(msg, m.keys.Newline):
		m.insert("\n")
	case key.Matches(msg, m.keys.Backspace):
		if from, to, ok := m.selection(); ok {
			m.replaceRange(from, to, "")
		} else if m.cursor > 0 {
			m.replaceRange(m.doc.PrevBoundary(m.cursor), m.cursor, "")
		}
	case key.Matches(msg, m.keys.Delete):
		if from, to, ok := m.selection(); ok {
			m.replaceRange(from, to, "")
		} else if m.cursor < m.doc.Len() {
			m.replaceRange(m.cursor, m.doc.NextBoundary(m.cursor), "")
		}
	case key.Matches(msg, m.keys.PickColor):
		m.openPicker()
	default:
		switch msg.Type {
		case tea.KeyRunes:
			m.insert(string(msg.Runes))
		case tea.KeySpace:
			m.insert(" ")
		case tea.KeyTab:
			m.insert("\t")
		}
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if !m.cfg.Flags.Enabled(flags.FlagSwatchClick) {
		return m, nil
	}
	for _, in := range m.plan {
		if in.Kind != colortag.InsertControl {
			continue
		}
		if z := zone.Get(swatchZoneID(in.From)); z != nil && z.InBounds(msg) {
			log.Debug(log.CatEditor, "Swatch clicked", "offset", in.From, "color", in.Color)
			m.focused = true
			m.moveTo(in.From)
			m.openPicker()
			return m, nil
		}
	}
	return m, nil
}

func (m Model) handleFileChanged() (Model, tea.Cmd) {
	next := waitForChange(m.cfg.Changes)
	if !m.cfg.Reload {
		return m, next
	}
	if m.dirty {
		m.status = "File changed on disk (unsaved edits kept)"
		m.statusErr = true
		return m, next
	}
	return m, tea.Batch(next, readFileCmd(m.cfg.Path))
}

func (m *Model) reload(text string) {
	if text == m.doc.Text() {
		return
	}
	m.doc = NewDocument(text)
	m.version++
	m.cursor = min(m.cursor, m.doc.Len())
	m.selFrom = colortag.NoAnchor
	m.goalCol = -1
	m.scrollToCursor()
	m.setStatus("Reloaded " + m.name())
	log.Info(log.CatEditor, "Reloaded document", "path", m.cfg.Path, "bytes", len(text))
}

// openPicker decides what a picked color will apply to and shows the picker
// next to the cursor.
func (m *Model) openPicker() {
	text := m.doc.Text()
	initial := ""
	if len(m.recent) > 0 {
		initial = m.recent[0]
	}

	from, to, hasSel := m.selection()
	switch {
	case hasSel && m.cfg.Flags.Enabled(flags.FlagWrapSelection):
		m.target, m.targetFrom, m.targetTo = pickWrap, from, to
	default:
		m.target, m.targetFrom = pickInsert, m.cursor
		if _, ok := colortag.TagAt(text, m.cursor); ok {
			m.target = pickRecolor
			if c, ok := colortag.ColorAt(text, m.cursor); ok {
				initial = c
			}
		}
	}

	x, y := m.cursorScreenPos()
	m.picker = colorpicker.New(m.cfg.Vault, m.recent).
		SetSize(m.width, m.height).
		SetSelected(initial).
		SetAnchor(x, y)
	m.showPicker = true
	log.Debug(log.CatPicker, "Picker opened", "target", m.target, "offset", m.targetFrom)
}

// applyPick applies a color chosen in the picker. A recolor whose tag has
// disappeared since the picker opened is a no-op.
func (m Model) applyPick(hex string) (Model, tea.Cmd) {
	m.showPicker = false
	text := m.doc.Text()

	var rep colortag.Replacement
	switch m.target {
	case pickRecolor:
		var ok bool
		rep, ok = colortag.ApplyColor(text, m.targetFrom, hex)
		if !ok {
			log.Debug(log.CatMutate, "No tag at position", "offset", m.targetFrom)
			m.setStatus("No tag at cursor")
			return m, nil
		}
	case pickWrap:
		rep = colortag.WrapSelection(text, m.targetFrom, m.targetTo, hex)
	default:
		rep = colortag.InsertTag(m.targetFrom, hex)
	}

	log.Debug(log.CatMutate, "Apply color", "target", m.target, "from", rep.From, "to", rep.To, "insert", rep.Insert)
	m.dispatch(rep)
	m.recent = config.AddRecentColor(m.recent, hex)
	return m, m.saveColorsCmd()
}

// dispatch applies a single-span replacement to the buffer.
func (m *Model) dispatch(rep colortag.Replacement) {
	m.doc = m.doc.Apply(rep)
	m.version++
	m.dirty = true
	if rep.Cursor != colortag.NoAnchor {
		m.cursor = rep.Cursor
	} else {
		m.cursor = mapOffset(m.cursor, rep)
	}
	m.selFrom = colortag.NoAnchor
	m.goalCol = -1
	m.scrollToCursor()
}

// mapOffset moves offset across an edit: offsets after the edited span shift
// by its delta and offsets inside it clamp to the end of the new text.
func mapOffset(offset int, rep colortag.Replacement) int {
	switch {
	case offset <= rep.From:
		return offset
	case offset >= rep.To:
		return offset + rep.Delta()
	default:
		return min(offset, rep.From+len(rep.Insert))
	}
}

func (m *Model) insert(s string) {
	from, to, ok := m.selection()
	if !ok {
		from, to = m.cursor, m.cursor
	}
	m.replaceRange(from, to, s)
}

func (m *Model) replaceRange(from, to int, s string) {
	m.dispatch(colortag.Replacement{From: from, To: to, Insert: s, Cursor: from + len(s)})
}

// selection returns the ordered selection bounds.
func (m Model) selection() (from, to int, ok bool) {
	if m.selFrom == colortag.NoAnchor || m.selFrom == m.cursor {
		return 0, 0, false
	}
	return min(m.selFrom, m.cursor), max(m.selFrom, m.cursor), true
}

func (m *Model) moveTo(offset int) {
	m.cursor = min(max(offset, 0), m.doc.Len())
	m.selFrom = colortag.NoAnchor
	m.goalCol = -1
	m.scrollToCursor()
}

func (m *Model) extendTo(offset int) {
	if m.selFrom == colortag.NoAnchor {
		m.selFrom = m.cursor
	}
	m.cursor = min(max(offset, 0), m.doc.Len())
	m.goalCol = -1
	m.scrollToCursor()
}

func (m *Model) moveVertical(delta int) {
	row, col := m.doc.OffsetToPos(m.cursor)
	if m.goalCol < 0 {
		m.goalCol = m.doc.ColumnWidth(row, col)
	}
	goal := m.goalCol
	target := min(max(row+delta, 0), m.doc.LineCount()-1)
	m.cursor = m.doc.OffsetAtWidth(target, goal)
	m.selFrom = colortag.NoAnchor
	m.scrollToCursor()
	m.goalCol = goal
}

func (m *Model) scrollToCursor() {
	row, _ := m.doc.OffsetToPos(m.cursor)
	h := m.textHeight()
	if row < m.top {
		m.top = row
	} else if row >= m.top+h {
		m.top = row - h + 1
	}
}

// textHeight is the number of document rows on screen.
func (m Model) textHeight() int {
	h := m.height - 1 // status bar
	if m.showHelp {
		h -= lipgloss.Height(m.help.FullHelpView(m.keys.FullHelp()))
	}
	return max(h, 1)
}

// anchor is the offset the planner classifies tags against.
// anchor is the lower bound of the selection, or the cursor when nothing is
// selected.
func (m Model) anchor() int {
	if !m.focused {
		return colortag.NoAnchor
	}
	if from, _, ok := m.selection(); ok {
		return from
	}
	return m.cursor
}

// replan recomputes the instructions of the visible rows whenever the
// document, viewport, cursor or focus changed since the last plan.
func (m *Model) replan() {
	next := planKey{
		version: m.version,
		cursor:  m.cursor,
		selFrom: m.selFrom,
		top:     m.top,
		height:  m.textHeight(),
		focused: m.focused,
	}

	var reason colortag.ReplanReason
	if !m.hasPlan || next.version != m.planned.version {
		reason |= colortag.DocChanged
	}
	if m.hasPlan && (next.top != m.planned.top || next.height != m.planned.height) {
		reason |= colortag.ViewportChanged
	}
	if m.hasPlan && (next.cursor != m.planned.cursor || next.selFrom != m.planned.selFrom) {
		reason |= colortag.SelectionSet
	}
	if m.hasPlan && next.focused != m.planned.focused {
		reason |= colortag.FocusChanged
	}
	if reason == 0 {
		return
	}

	visible := m.doc.VisibleRanges(m.top, next.height)
	m.plan = colortag.PlanRanges(m.doc.Text(), visible, m.anchor())
	m.planned = next
	m.hasPlan = true
	log.Debug(log.CatEditor, "Replan", "reason", reason, "ranges", len(visible), "instructions", len(m.plan))
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m Model) name() string {
	if m.cfg.Path == "" {
		return "[scratch]"
	}
	return filepath.Base(m.cfg.Path)
}

func (m Model) saveCmd() tea.Cmd {
	path := m.cfg.Path
	if path == "" {
		return func() tea.Msg {
			return errMsg{op: "save", err: errors.New("no file name")}
		}
	}
	text, version := m.doc.Text(), m.version
	return func() tea.Msg {
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil { //nolint:gosec // document file, user-readable
			return errMsg{op: "save", err: fmt.Errorf("writing %s: %w", path, err)}
		}
		log.Info(log.CatEditor, "Saved document", "path", path, "bytes", len(text))
		return savedMsg{version: version}
	}
}

func (m Model) saveColorsCmd() tea.Cmd {
	path := m.cfg.ConfigPath
	if path == "" {
		return nil
	}
	recent := append([]string(nil), m.recent...)
	vault := m.cfg.Vault
	return func() tea.Msg {
		if err := config.SaveColors(path, recent, vault); err != nil {
			return errMsg{op: "save colors", err: err}
		}
		return colorsSavedMsg{}
	}
}

func readFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return errMsg{op: "reload", err: fmt.Errorf("reading %s: %w", path, err)}
		}
		return reloadedMsg{text: string(data)}
	}
}

// waitForChange blocks on the watcher channel and reports one change.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return FileChangedMsg{}
	}
}
