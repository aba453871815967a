package editor

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/colortags/internal/colortag"
)

// Document is an immutable text buffer indexed by line.
//
// Offsets are byte offsets into Text. Rows are 0-based; a row's range
// excludes its line break ("\n" or "\r\n").
type Document struct {
	text   string
	starts []int // byte offset of each row's first byte
}

// NewDocument indexes text.
func NewDocument(text string) Document {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return Document{text: text, starts: starts}
}

// Text returns the full document text.
func (d Document) Text() string { return d.text }

// Len returns the document length in bytes.
func (d Document) Len() int { return len(d.text) }

// LineCount returns the number of rows. An empty document has one row.
func (d Document) LineCount() int { return len(d.starts) }

// LineRange returns the byte range of row, excluding its line break.
func (d Document) LineRange(row int) colortag.Range {
	row = d.clampRow(row)
	from := d.starts[row]
	to := len(d.text)
	if row+1 < len(d.starts) {
		to = d.starts[row+1] - 1 // the '\n'
		if to > from && d.text[to-1] == '\r' {
			to--
		}
	}
	return colortag.Range{From: from, To: to}
}

// Line returns the text of row without its line break.
func (d Document) Line(row int) string {
	r := d.LineRange(row)
	return d.text[r.From:r.To]
}

// VisibleRanges returns the line ranges of rows [top, top+height).
func (d Document) VisibleRanges(top, height int) []colortag.Range {
	var out []colortag.Range
	for row := max(top, 0); row < min(top+height, d.LineCount()); row++ {
		out = append(out, d.LineRange(row))
	}
	return out
}

// OffsetToPos converts a document offset to (row, byte column).
// Offsets inside a "\r\n" pair map to the end of the row.
func (d Document) OffsetToPos(offset int) (row, col int) {
	offset = min(max(offset, 0), len(d.text))
	lo, hi := 0, len(d.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if d.starts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	r := d.LineRange(lo)
	return lo, min(offset, r.To) - r.From
}

// PosToOffset converts (row, byte column) to a document offset, clamping
// both to the document.
func (d Document) PosToOffset(row, col int) int {
	r := d.LineRange(row)
	return r.From + min(max(col, 0), r.To-r.From)
}

// Apply returns the document with rep applied.
func (d Document) Apply(rep colortag.Replacement) Document {
	return NewDocument(rep.Apply(d.text))
}

// NextBoundary returns the offset of the grapheme boundary after offset.
// A "\r\n" line break is stepped over as a single unit.
func (d Document) NextBoundary(offset int) int {
	if offset >= len(d.text) {
		return len(d.text)
	}
	cluster, _, _, _ := uniseg.StepString(d.text[offset:], -1)
	return offset + len(cluster)
}

// PrevBoundary returns the offset of the grapheme boundary before offset.
func (d Document) PrevBoundary(offset int) int {
	if offset <= 0 {
		return 0
	}
	row, _ := d.OffsetToPos(offset)
	from := d.starts[row]
	if from >= offset && row > 0 {
		from = d.starts[row-1]
	}

	prev := from
	s := d.text[from:offset]
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		if len(rest) == 0 {
			break
		}
		prev += len(cluster)
		s = rest
		state = newState
	}
	return prev
}

// ColumnWidth returns the display width of row's text before byte column col.
func (d Document) ColumnWidth(row, col int) int {
	line := d.Line(row)
	return runewidth.StringWidth(line[:min(max(col, 0), len(line))])
}

// OffsetAtWidth returns the offset on row whose display column is closest to
// width without passing it.
func (d Document) OffsetAtWidth(row, width int) int {
	r := d.LineRange(row)
	s := d.text[r.From:r.To]
	offset := r.From
	used := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		w := runewidth.StringWidth(cluster)
		if used+w > width {
			break
		}
		used += w
		offset += len(cluster)
		s = rest
		state = newState
	}
	return offset
}

func (d Document) clampRow(row int) int {
	return min(max(row, 0), len(d.starts)-1)
}
