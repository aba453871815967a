package colortag

// Replacement is a single-span text edit: [From, To) becomes Insert.
// Cursor is the offset the caller should place the cursor at afterwards, or
// NoAnchor when the cursor should stay where the host keeps it.
type Replacement struct {
	From   int
	To     int
	Insert string
	Cursor int
}

// Apply returns text with the replacement applied.
func (r Replacement) Apply(text string) string {
	return text[:r.From] + r.Insert + text[r.To:]
}

// Delta is the change in text length caused by the replacement.
func (r Replacement) Delta() int {
	return len(r.Insert) - (r.To - r.From)
}

// TagAt returns the first tag of text whose [Start, End] contains anchor.
func TagAt(text string, anchor int) (TagMatch, bool) {
	if anchor < 0 || anchor > len(text) {
		return TagMatch{}, false
	}
	for _, m := range Tokenize(text) {
		if m.Contains(anchor) {
			return m, true
		}
		if m.Start > anchor {
			break
		}
	}
	return TagMatch{}, false
}

// ApplyColor rewrites the color spec of the tag at anchor.
// Only the trigger and the old spec are replaced; the separator and the
// content are untouched. The new color is written in canonical form without
// the marker. It reports false when no tag contains anchor.
func ApplyColor(text string, anchor int, color string) (Replacement, bool) {
	m, ok := TagAt(text, anchor)
	if !ok {
		return Replacement{}, false
	}
	return Replacement{
		From:   m.Start,
		To:     m.SpecEnd,
		Insert: tagPrefix(color),
		Cursor: NoAnchor,
	}, true
}

// ColorAt returns the resolved color of the tag at anchor.
func ColorAt(text string, anchor int) (string, bool) {
	m, ok := TagAt(text, anchor)
	if !ok || !m.HasColor() {
		return "", false
	}
	return m.Color, true
}

// InsertTag inserts a new empty tag with the given color at anchor and puts
// the cursor after its separator, ready for typing.
func InsertTag(anchor int, color string) Replacement {
	insert := tagPrefix(color) + " "
	return Replacement{
		From:   anchor,
		To:     anchor,
		Insert: insert,
		Cursor: anchor + len(insert),
	}
}

// WrapSelection turns the selected text [from, to) into the content of a new
// tag with the given color.
func WrapSelection(text string, from, to int, color string) Replacement {
	if from > to {
		from, to = to, from
	}
	from = min(max(0, from), len(text))
	to = min(max(from, to), len(text))
	insert := tagPrefix(color) + " " + text[from:to]
	return Replacement{
		From:   from,
		To:     to,
		Insert: insert,
		Cursor: from + len(insert),
	}
}

func tagPrefix(color string) string {
	return string(Trigger) + StripMarker(NormalizeColor(color))
}
