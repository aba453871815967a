package colortag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderStatic_TwoTags(t *testing.T) {
	frags := RenderStatic("$red a $blue b")

	require.Equal(t, []Fragment{
		{Text: "a", Color: "#e74c3c", From: 5, To: 6},
		{Text: " ", From: 6, To: 7},
		{Text: "b", Color: "#3498db", From: 13, To: 14},
	}, frags)
	assert.Equal(t, "a b", PlainText(frags))
}

func TestRenderStatic_UnresolvedTagIsPlain(t *testing.T) {
	frags := RenderStatic("$ hi")

	require.Equal(t, []Fragment{{Text: "hi", From: 2, To: 4}}, frags)
	assert.False(t, frags[0].Colored())
}

func TestRenderStatic_EmptyContentEmitsNothing(t *testing.T) {
	frags := RenderStatic("before $red")

	require.Equal(t, []Fragment{{Text: "before ", From: 0, To: 7}}, frags)
}

func TestRenderStatic_TrimsContent(t *testing.T) {
	frags := RenderStatic("$red  padded  \nnext")

	require.Equal(t, []Fragment{
		{Text: "padded", Color: "#e74c3c", From: 6, To: 12},
		{Text: "\nnext", From: 14, To: 19},
	}, frags)
}

func TestRenderStatic_NoMarkup(t *testing.T) {
	frags := RenderStatic("just text")

	require.Equal(t, []Fragment{{Text: "just text", From: 0, To: 9}}, frags)
	assert.Empty(t, RenderStatic(""))
}

func TestRenderStatic_Idempotent(t *testing.T) {
	first := PlainText(RenderStatic("intro $green go $#ff0000 stop $ end"))
	second := PlainText(RenderStatic(first))

	assert.Equal(t, "intro go stop end", first)
	assert.Equal(t, first, second)
}
