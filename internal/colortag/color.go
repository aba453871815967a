// Package colortag implements the inline color markup language: the tag
// tokenizer, the cursor-aware decoration planner, the tag mutator and the
// static renderer.
package colortag

import "strings"

const (
	// Trigger opens a color tag.
	Trigger = '$'

	// Marker optionally prefixes a hex color spec.
	Marker = '#'

	// FallbackColor is returned by ToCanonicalHex for values it cannot map.
	FallbackColor = "#888888"
)

// NamedColor is an entry of the fixed named color vocabulary.
type NamedColor struct {
	Name string
	Hex  string
}

// namedColors is the fixed vocabulary, in the order the picker shows it.
var namedColors = []NamedColor{
	{Name: "red", Hex: "#e74c3c"},
	{Name: "orange", Hex: "#e67e22"},
	{Name: "yellow", Hex: "#f1c40f"},
	{Name: "green", Hex: "#2ecc71"},
	{Name: "blue", Hex: "#3498db"},
	{Name: "purple", Hex: "#9b59b6"},
	{Name: "pink", Hex: "#e91e8d"},
	{Name: "cyan", Hex: "#00bcd4"},
	{Name: "gray", Hex: "#95a5a6"},
	{Name: "white", Hex: "#ecf0f1"},
	{Name: "black", Hex: "#2c3e50"},
}

var namedIndex = func() map[string]string {
	m := make(map[string]string, len(namedColors))
	for _, c := range namedColors {
		m[c.Name] = c.Hex
	}
	return m
}()

// NamedColors returns a copy of the named color vocabulary.
func NamedColors() []NamedColor {
	out := make([]NamedColor, len(namedColors))
	copy(out, namedColors)
	return out
}

// LookupNamed returns the hex value of a named color (case-insensitive).
func LookupNamed(name string) (string, bool) {
	hex, ok := namedIndex[strings.ToLower(name)]
	return hex, ok
}

// Resolve maps a raw color spec to a canonical color.
// Named colors resolve through the fixed table. Hex specs of exactly 3 or 6
// digits, with or without the marker, resolve to the marker-prefixed lowercase
// digits; 3-digit values are passed through unexpanded. Anything else,
// including the empty spec, is unresolved.
func Resolve(spec string) (string, bool) {
	if spec == "" {
		return "", false
	}
	if hex, ok := LookupNamed(spec); ok {
		return hex, true
	}
	digits := StripMarker(spec)
	if (len(digits) == 3 || len(digits) == 6) && allHex(digits) {
		return string(Marker) + strings.ToLower(digits), true
	}
	return "", false
}

// ToCanonicalHex returns color unchanged when it already carries the marker,
// the table value for a named color, and FallbackColor otherwise.
func ToCanonicalHex(color string) string {
	if strings.HasPrefix(color, string(Marker)) {
		return color
	}
	if hex, ok := LookupNamed(color); ok {
		return hex
	}
	return FallbackColor
}

// NormalizeColor returns the canonical lowercase form of any accepted color
// value: a named color, a hex value with or without the marker, or an
// already canonical value.
func NormalizeColor(color string) string {
	if hex, ok := Resolve(color); ok {
		return hex
	}
	return strings.ToLower(ToCanonicalHex(color))
}

// StripMarker removes a single leading marker character.
func StripMarker(color string) string {
	return strings.TrimPrefix(color, string(Marker))
}

func allHex(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return false
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
