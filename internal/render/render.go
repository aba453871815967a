// Package render turns colortag markup into finished output: ANSI-colored
// terminal text, HTML, or plain text with the markup removed.
package render

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"github.com/zjrosen/colortags/internal/colortag"
	"github.com/zjrosen/colortags/internal/log"
)

// Format selects the output kind.
type Format string

const (
	FormatANSI  Format = "ansi"
	FormatHTML  Format = "html"
	FormatPlain Format = "plain"
)

// ParseFormat maps a config or flag value to a Format. Empty means ANSI.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatANSI:
		return FormatANSI, nil
	case FormatHTML:
		return FormatHTML, nil
	case FormatPlain:
		return FormatPlain, nil
	}
	return "", fmt.Errorf("unknown render format %q (want ansi, html, or plain)", s)
}

// Options controls a single render.
type Options struct {
	Format Format

	// Width wraps ANSI and plain output. 0 disables wrapping; HTML ignores it.
	Width int

	// Profile is the terminal color profile for ANSI output.
	// Zero value is termenv.TrueColor.
	Profile termenv.Profile
}

// Render writes source to w in the requested format.
func Render(w io.Writer, source []byte, opts Options) error {
	log.Debug(log.CatRender, "Rendering", "format", opts.Format, "width", opts.Width, "bytes", len(source))

	var out string
	switch opts.Format {
	case "", FormatANSI:
		out = ANSI(colortag.RenderStatic(string(source)), opts.Profile, opts.Width)
	case FormatPlain:
		out = Plain(colortag.RenderStatic(string(source)), opts.Width)
	case FormatHTML:
		return HTML(w, source)
	default:
		return fmt.Errorf("unknown render format %q", opts.Format)
	}

	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
