package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/colortags/internal/colortag"
)

func TestDocument_Lines(t *testing.T) {
	d := NewDocument("one\r\ntwo\nthree")

	require.Equal(t, 3, d.LineCount())
	assert.Equal(t, colortag.Range{From: 0, To: 3}, d.LineRange(0))
	assert.Equal(t, colortag.Range{From: 5, To: 8}, d.LineRange(1))
	assert.Equal(t, colortag.Range{From: 9, To: 14}, d.LineRange(2))
	assert.Equal(t, "two", d.Line(1))
	assert.Equal(t, "three", d.Line(99), "row clamps to the last line")
}

func TestDocument_EmptyHasOneLine(t *testing.T) {
	d := NewDocument("")
	assert.Equal(t, 1, d.LineCount())
	assert.Equal(t, colortag.Range{}, d.LineRange(0))

	d = NewDocument("trailing\n")
	assert.Equal(t, 2, d.LineCount())
	assert.Equal(t, "", d.Line(1))
}

func TestDocument_VisibleRanges(t *testing.T) {
	d := NewDocument("a\nb\nc\nd")

	assert.Equal(t, []colortag.Range{{From: 2, To: 3}, {From: 4, To: 5}}, d.VisibleRanges(1, 2))
	assert.Len(t, d.VisibleRanges(2, 10), 2, "height clamps to the document")
	assert.Empty(t, d.VisibleRanges(10, 3))
}

func TestDocument_OffsetToPos(t *testing.T) {
	d := NewDocument("ab\r\ncd\nef")

	tests := []struct {
		offset   int
		row, col int
	}{
		{0, 0, 0},
		{2, 0, 2},
		{3, 0, 2}, // between \r and \n
		{4, 1, 0},
		{6, 1, 2},
		{7, 2, 0},
		{9, 2, 2},
		{100, 2, 2},
		{-5, 0, 0},
	}
	for _, tt := range tests {
		row, col := d.OffsetToPos(tt.offset)
		assert.Equal(t, tt.row, row, "row of %d", tt.offset)
		assert.Equal(t, tt.col, col, "col of %d", tt.offset)
	}

	assert.Equal(t, 5, d.PosToOffset(1, 1))
	assert.Equal(t, 6, d.PosToOffset(1, 50), "column clamps to the line end")
}

func TestDocument_Apply(t *testing.T) {
	d := NewDocument("hello")
	next := d.Apply(colortag.Replacement{From: 5, To: 5, Insert: "\nworld"})

	assert.Equal(t, "hello", d.Text(), "original is unchanged")
	assert.Equal(t, "hello\nworld", next.Text())
	assert.Equal(t, 2, next.LineCount())
}

func TestDocument_GraphemeBoundaries(t *testing.T) {
	// "e" + combining acute, then a flag made of two regional indicators.
	text := "ae\u0301\U0001F1EF\U0001F1F5z"
	d := NewDocument(text)

	assert.Equal(t, 1, d.NextBoundary(0))
	assert.Equal(t, 4, d.NextBoundary(1), "combining mark stays with its base")
	assert.Equal(t, 12, d.NextBoundary(4), "flag is one cluster")
	assert.Equal(t, len(text), d.NextBoundary(len(text)))

	assert.Equal(t, 4, d.PrevBoundary(12))
	assert.Equal(t, 1, d.PrevBoundary(4))
	assert.Equal(t, 0, d.PrevBoundary(0))
}

func TestDocument_CRLFIsOneStep(t *testing.T) {
	d := NewDocument("a\r\nb")

	assert.Equal(t, 3, d.NextBoundary(1))
	assert.Equal(t, 1, d.PrevBoundary(3))
}

func TestDocument_Widths(t *testing.T) {
	d := NewDocument("日本go")

	assert.Equal(t, 2, d.ColumnWidth(0, 3))
	assert.Equal(t, 4, d.ColumnWidth(0, 6))
	assert.Equal(t, 3, d.OffsetAtWidth(0, 3), "never lands inside a wide character")
	assert.Equal(t, 7, d.OffsetAtWidth(0, 5))
	assert.Equal(t, 8, d.OffsetAtWidth(0, 99))
}
