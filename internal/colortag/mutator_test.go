package colortag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyColor_ReplacesSpecOnly(t *testing.T) {
	text := "$red hello"

	for anchor := 0; anchor <= len(text); anchor++ {
		r, ok := ApplyColor(text, anchor, "#00ff00")
		require.True(t, ok, "anchor %d", anchor)
		assert.Equal(t, 0, r.From)
		assert.Equal(t, 4, r.To)
		assert.Equal(t, "$00ff00", r.Insert)
		assert.Equal(t, "$00ff00 hello", r.Apply(text))
	}
}

func TestApplyColor_NoTagAtPosition(t *testing.T) {
	text := "plain $red hello"

	_, ok := ApplyColor(text, 2, "#00ff00")
	assert.False(t, ok)

	_, ok = ApplyColor(text, -1, "#00ff00")
	assert.False(t, ok)

	_, ok = ApplyColor(text, len(text)+1, "#00ff00")
	assert.False(t, ok)
}

func TestApplyColor_EmptySpec(t *testing.T) {
	text := "$ hi"

	r, ok := ApplyColor(text, 0, "#ABCDEF")
	require.True(t, ok)
	assert.Equal(t, "$abcdef hi", r.Apply(text))
}

func TestApplyColor_BareMarkerWithoutSeparator(t *testing.T) {
	text := "$"

	r, ok := ApplyColor(text, 1, "blue")
	require.True(t, ok)
	assert.Equal(t, "$3498db", r.Apply(text))
}

func TestApplyColor_SecondTag(t *testing.T) {
	text := "$red a $blue b"

	r, ok := ApplyColor(text, 10, "fff")
	require.True(t, ok)
	assert.Equal(t, "$red a $fff b", r.Apply(text))
	assert.Equal(t, -1, r.Delta())
}

func TestApplyColor_AdjacentTagsPreferFirst(t *testing.T) {
	text := "$red$blue"

	r, ok := ApplyColor(text, 4, "#000000")
	require.True(t, ok)
	assert.Equal(t, "$000000$blue", r.Apply(text))
}

func TestApplyColor_MultiLineDocument(t *testing.T) {
	text := "first line\n$green second"

	r, ok := ApplyColor(text, 15, "#123456")
	require.True(t, ok)
	assert.Equal(t, "first line\n$123456 second", r.Apply(text))
}

func TestColorAt(t *testing.T) {
	text := "x $red a $ b"

	c, ok := ColorAt(text, 3)
	require.True(t, ok)
	assert.Equal(t, "#e74c3c", c)

	_, ok = ColorAt(text, 10)
	assert.False(t, ok, "bare tag has no color")

	_, ok = ColorAt(text, 0)
	assert.False(t, ok)
}

func TestInsertTag(t *testing.T) {
	text := "hello world"

	r := InsertTag(6, "#FF5500")
	assert.Equal(t, "hello $ff5500 world", r.Apply(text))
	assert.Equal(t, 14, r.Cursor)
}

func TestWrapSelection(t *testing.T) {
	text := "hello world"

	r := WrapSelection(text, 6, 11, "red")
	assert.Equal(t, "hello $e74c3c world", r.Apply(text))
	assert.Equal(t, len("hello $e74c3c world"), r.Cursor)

	reversed := WrapSelection(text, 11, 6, "red")
	assert.Equal(t, r, reversed)
}

func TestWrapSelection_ClampsBounds(t *testing.T) {
	text := "abc"

	r := WrapSelection(text, -3, 50, "#fff")
	assert.Equal(t, "$fff abc", r.Apply(text))
}
