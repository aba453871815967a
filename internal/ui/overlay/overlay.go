// Package overlay renders popup content on top of a background view
// without clearing the screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position specifies where to place the overlay content.
type Position int

const (
	// Center places the overlay in the center of the viewport.
	Center Position = iota
	// Top places the overlay at the top center of the viewport.
	Top
	// Anchored places the overlay's top-left corner at (X, Y), shifted
	// left or up as needed so it stays inside the viewport. A popup that
	// would cover the anchor row is moved above it when there is room.
	Anchored
)

// Config controls overlay rendering behavior.
type Config struct {
	Width    int
	Height   int
	Position Position
	PadY     int // Top only

	// X and Y locate the anchor cell for Anchored.
	X int
	Y int
}

// Place renders foreground content on top of background.
// Uses ANSI-aware string manipulation to preserve styling in both
// the foreground and background content.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")

	// Pad background to full height
	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	startX, startY := calculatePosition(cfg, lipgloss.Width(fg), len(fgLines))

	for i, fgLine := range fgLines {
		bgY := startY + i
		if bgY >= len(bgLines) {
			break
		}
		bgLines[bgY] = spliceLine(bgLines[bgY], fgLine, startX)
	}

	return strings.Join(bgLines, "\n")
}

// spliceLine replaces the cells of bgLine starting at column x with fgLine.
func spliceLine(bgLine, fgLine string, x int) string {
	leftPart := ansi.Truncate(bgLine, x, "")
	if w := ansi.StringWidth(leftPart); w < x {
		leftPart += strings.Repeat(" ", x-w)
	}

	var rightPart string
	endX := x + ansi.StringWidth(fgLine)
	if endX < ansi.StringWidth(bgLine) {
		rightPart = ansi.TruncateLeft(bgLine, endX, "")
	}

	return leftPart + fgLine + rightPart
}

// calculatePosition determines the x,y starting coordinates for the overlay.
func calculatePosition(cfg Config, fgWidth, fgHeight int) (x, y int) {
	switch cfg.Position {
	case Top:
		x = (cfg.Width - fgWidth) / 2
		y = cfg.PadY
	case Anchored:
		x = min(cfg.X, cfg.Width-fgWidth)
		y = cfg.Y + 1
		if y+fgHeight > cfg.Height {
			// Not enough room below the anchor row.
			if above := cfg.Y - fgHeight; above >= 0 {
				y = above
			} else {
				y = cfg.Height - fgHeight
			}
		}
	default: // Center
		x = (cfg.Width - fgWidth) / 2
		y = (cfg.Height - fgHeight) / 2
	}

	return max(x, 0), max(y, 0)
}
