package colortag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		spec   string
		want   string
		wantOK bool
	}{
		{name: "empty", spec: "", want: "", wantOK: false},
		{name: "named", spec: "red", want: "#e74c3c", wantOK: true},
		{name: "named uppercase", spec: "BLUE", want: "#3498db", wantOK: true},
		{name: "named mixed case", spec: "GrAy", want: "#95a5a6", wantOK: true},
		{name: "six digit hex", spec: "ff5500", want: "#ff5500", wantOK: true},
		{name: "six digit hex with marker", spec: "#FF5500", want: "#ff5500", wantOK: true},
		{name: "three digit hex is not expanded", spec: "fff", want: "#fff", wantOK: true},
		{name: "three digit hex with marker", spec: "#ABC", want: "#abc", wantOK: true},
		{name: "four digit hex", spec: "cafe", want: "", wantOK: false},
		{name: "five digit hex", spec: "12345", want: "", wantOK: false},
		{name: "not hex", spec: "zzz", want: "", wantOK: false},
		{name: "bare marker", spec: "#", want: "", wantOK: false},
		{name: "unknown name", spec: "magenta", want: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.spec)
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_CaseInsensitive(t *testing.T) {
	upper, _ := Resolve("RED")
	lower, _ := Resolve("red")
	assert.Equal(t, lower, upper)

	upper, _ = Resolve("FFF")
	lower, _ = Resolve("fff")
	assert.Equal(t, lower, upper)
}

func TestToCanonicalHex(t *testing.T) {
	assert.Equal(t, "#ff5500", ToCanonicalHex("#ff5500"), "marker-prefixed values pass through")
	assert.Equal(t, "#FFF", ToCanonicalHex("#FFF"))
	assert.Equal(t, "#2ecc71", ToCanonicalHex("green"))
	assert.Equal(t, "#2ecc71", ToCanonicalHex("Green"))
	assert.Equal(t, FallbackColor, ToCanonicalHex(""))
	assert.Equal(t, FallbackColor, ToCanonicalHex("ff5500"), "unprefixed hex is not a canonical value")
}

func TestNormalizeColor(t *testing.T) {
	assert.Equal(t, "#00ff00", NormalizeColor("#00FF00"))
	assert.Equal(t, "#00ff00", NormalizeColor("00ff00"))
	assert.Equal(t, "#e74c3c", NormalizeColor("red"))
	assert.Equal(t, "#abc", NormalizeColor("ABC"))
	assert.Equal(t, "#12345", NormalizeColor("#12345"), "marker-prefixed values are kept, lowercased")
	assert.Equal(t, FallbackColor, NormalizeColor("nope"))
}

func TestNamedColors(t *testing.T) {
	colors := NamedColors()
	require.Len(t, colors, 11)
	assert.Equal(t, "red", colors[0].Name)
	assert.Equal(t, "black", colors[10].Name)

	// Returned slice is a copy.
	colors[0].Hex = "#000000"
	hex, ok := LookupNamed("red")
	require.True(t, ok)
	assert.Equal(t, "#e74c3c", hex)
}

func TestRoundTrip_NamedTable(t *testing.T) {
	for _, c := range NamedColors() {
		got, ok := Resolve(StripMarker(ToCanonicalHex(c.Hex)))
		require.True(t, ok, c.Name)
		require.Equal(t, c.Hex, got, c.Name)
	}
}
