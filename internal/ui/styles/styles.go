// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"}
	TextMutedColor   = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"} // Hints, help text, line numbers

	// Borders
	BorderDefaultColor        = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	BorderHighlightFocusColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Selection indicator color (used for ">" prefix in lists)
	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}

	// Overlay colors
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#8C8C8C"}

	// Button colors
	ButtonTextColor           = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	ButtonPrimaryBgColor      = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#1A5276"}
	ButtonPrimaryFocusBgColor = lipgloss.AdaptiveColor{Light: "#3498DB", Dark: "#3498DB"}
	ButtonSecondaryBgColor    = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#2D3436"}

	// Editor colors
	CursorBgColor    = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#DDDDDD"}
	CursorFgColor    = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#111111"}
	SelectionBgColor = lipgloss.AdaptiveColor{Light: "#CCE4F7", Dark: "#264F78"}
	MarkupColor      = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#7F8C8D"} // Tag markup shown while editing

	// Selection indicator style (used for ">" prefix in lists)
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	baseButtonStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true)

	PrimaryButtonStyle = baseButtonStyle.
				Foreground(ButtonTextColor).
				Background(ButtonPrimaryBgColor)

	PrimaryButtonFocusedStyle = baseButtonStyle.
					Foreground(ButtonTextColor).
					Background(ButtonPrimaryFocusBgColor).
					Underline(true).
					UnderlineSpaces(true)

	SecondaryButtonStyle = baseButtonStyle.
				Foreground(ButtonTextColor).
				Background(ButtonSecondaryBgColor)

	// Editor
	CursorStyle     = lipgloss.NewStyle().Foreground(CursorFgColor).Background(CursorBgColor)
	SelectionStyle  = lipgloss.NewStyle().Background(SelectionBgColor)
	MarkupStyle     = lipgloss.NewStyle().Foreground(MarkupColor)
	LineNumberStyle = lipgloss.NewStyle().Foreground(TextMutedColor).Width(4).AlignHorizontal(lipgloss.Right).PaddingRight(1)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor).
			Padding(0, 1)

	StatusMessageStyle = lipgloss.NewStyle().Foreground(StatusSuccessColor)
	StatusErrorStyle   = lipgloss.NewStyle().Foreground(StatusErrorColor).Bold(true)
)
