package colortag

import "strings"

// Fragment is a piece of statically rendered text.
// Color is empty for plain text. From and To locate the fragment's text in
// the source so callers can map fragments back onto the original buffer.
type Fragment struct {
	Text  string
	Color string
	From  int
	To    int
}

// Colored reports whether the fragment carries a color.
func (f Fragment) Colored() bool {
	return f.Color != ""
}

// RenderStatic materializes text with all markup removed. Text between tags
// is kept verbatim; each tag contributes its trimmed content, colored when
// the spec resolves. Tags with no content contribute nothing.
func RenderStatic(text string) []Fragment {
	var frags []Fragment
	last := 0
	for _, m := range Tokenize(text) {
		if m.Start > last {
			frags = append(frags, Fragment{Text: text[last:m.Start], From: last, To: m.Start})
		}
		last = m.End

		from, to := trimSpan(text, m.ContentStart, m.ContentEnd)
		if from == to {
			continue
		}
		frags = append(frags, Fragment{Text: text[from:to], Color: m.Color, From: from, To: to})
	}
	if last < len(text) {
		frags = append(frags, Fragment{Text: text[last:], From: last, To: len(text)})
	}
	return frags
}

// PlainText concatenates fragments without any coloring.
func PlainText(frags []Fragment) string {
	var b strings.Builder
	for _, f := range frags {
		b.WriteString(f.Text)
	}
	return b.String()
}

// trimSpan narrows [from, to) of text to exclude surrounding whitespace.
func trimSpan(text string, from, to int) (int, int) {
	for from < to && isSpaceByte(text[from]) {
		from++
	}
	for to > from && isSpaceByte(text[to-1]) {
		to--
	}
	return from, to
}

func isSpaceByte(c byte) bool {
	return isInlineSpace(c) || isLineBreak(c)
}
