package colortag

import "strings"

// A hex spec consumes at most maxHexDigits digits; any further hex-looking
// characters become content.
const (
	minHexDigits = 3
	maxHexDigits = 6
)

// TagMatch is one color tag found by Tokenize.
// All offsets are byte offsets into the scanned text and satisfy
// Start <= SpecStart <= SpecEnd <= ContentStart <= ContentEnd <= End.
// End is exclusive.
type TagMatch struct {
	Start        int
	End          int
	SpecStart    int
	SpecEnd      int
	ContentStart int
	ContentEnd   int

	Spec    string // raw color spec, possibly empty
	Content string // text between the separator and the end of the tag
	Color   string // resolved color, "" when the spec does not resolve
}

// HasColor reports whether the tag's spec resolved to a color.
func (m TagMatch) HasColor() bool {
	return m.Color != ""
}

// Contains reports whether offset lies within [Start, End], both inclusive.
// The inclusive end lets a cursor sitting just after a tag still own it.
func (m TagMatch) Contains(offset int) bool {
	return offset >= m.Start && offset <= m.End
}

// shift moves every offset by delta.
func (m TagMatch) shift(delta int) TagMatch {
	m.Start += delta
	m.End += delta
	m.SpecStart += delta
	m.SpecEnd += delta
	m.ContentStart += delta
	m.ContentEnd += delta
	return m
}

// Tokenize scans text and returns its color tags in left-to-right,
// non-overlapping order. It keeps no state between calls.
//
// Every trigger character starts a tag. A tag never crosses a line break;
// its content runs to the next trigger, the next line break or the end of
// text. Whitespace directly before a following trigger is left between the
// two tags rather than inside the first one.
func Tokenize(text string) []TagMatch {
	var matches []TagMatch
	for i := 0; i < len(text); {
		if text[i] != Trigger {
			i++
			continue
		}
		m := scanTag(text, i)
		matches = append(matches, m)
		i = m.End
	}
	return matches
}

// scanTag reads the tag whose trigger sits at start.
func scanTag(text string, start int) TagMatch {
	specStart := start + 1
	specEnd := readSpec(text, specStart)

	contentStart := specEnd
	if contentStart < len(text) && text[contentStart] == ' ' {
		contentStart++ // single separator
	}

	contentEnd := contentStart
	for contentEnd < len(text) && !isTerminator(text[contentEnd]) {
		contentEnd++
	}
	if contentEnd < len(text) && text[contentEnd] == Trigger {
		for contentEnd > contentStart && isInlineSpace(text[contentEnd-1]) {
			contentEnd--
		}
	}

	spec := text[specStart:specEnd]
	color, _ := Resolve(spec)
	return TagMatch{
		Start:        start,
		End:          contentEnd,
		SpecStart:    specStart,
		SpecEnd:      specEnd,
		ContentStart: contentStart,
		ContentEnd:   contentEnd,
		Spec:         spec,
		Content:      text[contentStart:contentEnd],
		Color:        color,
	}
}

// readSpec returns the end of the longest color spec starting at from, or
// from itself when nothing matches.
func readSpec(text string, from int) int {
	return max(hexSpecEnd(text, from), namedSpecEnd(text, from))
}

// hexSpecEnd matches an optional marker followed by 3 to 6 hex digits.
func hexSpecEnd(text string, from int) int {
	i := from
	if i < len(text) && text[i] == Marker {
		i++
	}
	digits := i
	for i < len(text) && i-digits < maxHexDigits && isHexDigit(text[i]) {
		i++
	}
	if i-digits < minHexDigits {
		return from
	}
	return i
}

// namedSpecEnd matches a word of the named vocabulary, case-insensitively.
func namedSpecEnd(text string, from int) int {
	best := from
	for _, c := range namedColors {
		end := from + len(c.Name)
		if end > len(text) || end <= best {
			continue
		}
		if strings.EqualFold(text[from:end], c.Name) {
			best = end
		}
	}
	return best
}

func isTerminator(c byte) bool {
	return c == Trigger || isLineBreak(c)
}

func isLineBreak(c byte) bool {
	return c == '\n' || c == '\r'
}

func isInlineSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\f' || c == '\v'
}
