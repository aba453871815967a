package render

import (
	"bytes"
	"os"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/colortags/internal/colortag"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatANSI},
		{in: "ansi", want: FormatANSI},
		{in: "html", want: FormatHTML},
		{in: "plain", want: FormatPlain},
		{in: "pdf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestANSI_TrueColor(t *testing.T) {
	frags := colortag.RenderStatic("see $red this text")

	got := ANSI(frags, termenv.TrueColor, 0)

	assert.Equal(t, "see \x1b[38;2;231;76;60mthis text\x1b[0m", got)
}

func TestANSI_AsciiDropsColor(t *testing.T) {
	frags := colortag.RenderStatic("a $blue b $#fff c")

	assert.Equal(t, "a b c", ANSI(frags, termenv.Ascii, 0))
}

func TestANSI_ShortHexIsExpanded(t *testing.T) {
	frags := colortag.RenderStatic("$abc x")

	got := ANSI(frags, termenv.TrueColor, 0)

	assert.Equal(t, "\x1b[38;2;170;187;204mx\x1b[0m", got)
}

func TestPlain_Wraps(t *testing.T) {
	frags := colortag.RenderStatic("$red hello world again")

	assert.Equal(t, "hello world again", Plain(frags, 0))
	assert.Equal(t, "hello\nworld\nagain", Plain(frags, 10))
}

func TestExpandHex(t *testing.T) {
	assert.Equal(t, "#aabbcc", ExpandHex("#abc"))
	assert.Equal(t, "#e74c3c", ExpandHex("#e74c3c"))
	assert.Equal(t, "nope", ExpandHex("nope"))
}

func TestRender_Formats(t *testing.T) {
	source := []byte("$green ok")

	var plain bytes.Buffer
	require.NoError(t, Render(&plain, source, Options{Format: FormatPlain}))
	assert.Equal(t, "ok", plain.String())

	var ansi bytes.Buffer
	require.NoError(t, Render(&ansi, source, Options{Format: FormatANSI, Profile: termenv.Ascii}))
	assert.Equal(t, "ok", ansi.String())

	var html bytes.Buffer
	require.NoError(t, Render(&html, source, Options{Format: FormatHTML}))
	assert.Contains(t, html.String(), `style="color: #2ecc71">ok</span>`)

	err := Render(&bytes.Buffer{}, source, Options{Format: "pdf"})
	require.Error(t, err)
}

// unsetEnv removes key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	if old, ok := os.LookupEnv(key); ok {
		require.NoError(t, os.Unsetenv(key))
		t.Cleanup(func() { _ = os.Setenv(key, old) })
	}
}

func TestDetectProfile(t *testing.T) {
	tests := []struct {
		name      string
		colorTerm string
		term      string
		want      termenv.Profile
	}{
		{name: "truecolor", colorTerm: "truecolor", want: termenv.TrueColor},
		{name: "256 colorterm", colorTerm: "256color", want: termenv.ANSI256},
		{name: "16 colorterm", colorTerm: "16color", want: termenv.ANSI},
		{name: "mono", colorTerm: "mono", want: termenv.Ascii},
		{name: "term direct", term: "xterm-direct", want: termenv.TrueColor},
		{name: "term 256", term: "xterm-256color", want: termenv.ANSI256},
		{name: "dumb", term: "dumb", want: termenv.Ascii},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unsetEnv(t, "NO_COLOR")
			t.Setenv("COLORTERM", tt.colorTerm)
			t.Setenv("TERM", tt.term)
			assert.Equal(t, tt.want, DetectProfile())
		})
	}
}

func TestDetectProfile_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	t.Setenv("COLORTERM", "truecolor")

	assert.Equal(t, termenv.Ascii, DetectProfile())
}
