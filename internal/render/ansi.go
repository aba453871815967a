package render

import (
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"

	"github.com/zjrosen/colortags/internal/colortag"
)

// DetectProfile determines the color profile for stdout.
// Priority: COLORTERM > TERM > automatic detection. NO_COLOR forces Ascii.
func DetectProfile() termenv.Profile {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return termenv.Ascii
	}

	switch strings.ToLower(os.Getenv("COLORTERM")) {
	case "truecolor", "24bit":
		return termenv.TrueColor
	case "8bit", "256color":
		return termenv.ANSI256
	case "4bit", "16color", "8color", "3bit":
		return termenv.ANSI
	case "1bit", "2color", "mono", "false", "0":
		return termenv.Ascii
	}

	term := strings.ToLower(os.Getenv("TERM"))
	switch {
	case strings.Contains(term, "direct"):
		return termenv.TrueColor
	case strings.Contains(term, "256color"):
		return termenv.ANSI256
	case strings.Contains(term, "16color"):
		return termenv.ANSI
	case term == "dumb":
		return termenv.Ascii
	}

	return termenv.ColorProfile()
}

// ANSI renders fragments as terminal text, coloring each colored fragment
// with the nearest color the profile supports. Width > 0 word-wraps the
// result.
func ANSI(frags []colortag.Fragment, profile termenv.Profile, width int) string {
	var b strings.Builder
	for _, f := range frags {
		if !f.Colored() {
			b.WriteString(f.Text)
			continue
		}
		style := profile.String(f.Text).Foreground(profile.Color(ExpandHex(f.Color)))
		b.WriteString(style.String())
	}
	return wrap(b.String(), width)
}

// Plain renders fragments without color.
func Plain(frags []colortag.Fragment, width int) string {
	return wrap(colortag.PlainText(frags), width)
}

// ExpandHex returns the 6-digit form of a canonical color. 3-digit values are
// expanded; values go-colorful cannot parse are returned unchanged.
func ExpandHex(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	return c.Hex()
}

func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wordwrap.String(s, width)
}
