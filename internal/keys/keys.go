// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// EditorKeyMap defines the keybindings for the markup editor.
// Printable keys not bound here are inserted as text.
type EditorKeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Home     key.Binding
	End      key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Selection
	SelectLeft  key.Binding
	SelectRight key.Binding

	// Editing
	Newline   key.Binding
	Backspace key.Binding
	Delete    key.Binding

	// Actions
	PickColor   key.Binding
	ToggleFocus key.Binding
	Save        key.Binding

	// General
	Help key.Binding
	Quit key.Binding
}

// DefaultEditorKeyMap returns the default editor keybindings.
func DefaultEditorKeyMap() EditorKeyMap {
	return EditorKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "line up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "line down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "back"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "forward"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "ctrl+a"),
			key.WithHelp("home", "line start"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "ctrl+e"),
			key.WithHelp("end", "line end"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),

		SelectLeft: key.NewBinding(
			key.WithKeys("shift+left"),
			key.WithHelp("shift+←", "extend selection"),
		),
		SelectRight: key.NewBinding(
			key.WithKeys("shift+right"),
			key.WithHelp("shift+→", "extend selection"),
		),

		Newline: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "new line"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "delete back"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete", "ctrl+d"),
			key.WithHelp("del", "delete forward"),
		),

		PickColor: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "pick color"),
		),
		ToggleFocus: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "preview/edit"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),

		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("ctrl+q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the status bar.
func (k EditorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PickColor, k.ToggleFocus, k.Save, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k EditorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Home, k.End, k.PageUp, k.PageDown}, // Navigation
		{k.SelectLeft, k.SelectRight, k.Newline, k.Backspace, k.Delete},       // Editing
		{k.PickColor, k.ToggleFocus, k.Save, k.Help, k.Quit},                  // General
	}
}
