package colortag

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// markupPieces biases generated text toward the interesting parts of the grammar.
var markupPieces = []string{
	"$", "$", "red", "BLUE", "gray", "#", "ff5500", "abc", "deadbeef", "cafe",
	" ", " ", "\n", "\r\n", "\t", "x", "hello", "zz",
}

func genMarkup() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		parts := rapid.SliceOfN(rapid.SampledFrom(markupPieces), 0, 24).Draw(t, "parts")
		return strings.Join(parts, "")
	})
}

func TestProperty_TokenizeOrderedAndNonOverlapping(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := genMarkup().Draw(t, "text")
		matches := Tokenize(text)

		prevEnd := 0
		for i, m := range matches {
			if m.Start < prevEnd {
				t.Fatalf("match %d starts at %d before previous end %d in %q", i, m.Start, prevEnd, text)
			}
			if !(m.Start <= m.SpecStart && m.SpecStart <= m.SpecEnd && m.SpecEnd <= m.ContentStart &&
				m.ContentStart <= m.ContentEnd && m.ContentEnd <= m.End) {
				t.Fatalf("offset invariant broken for %+v in %q", m, text)
			}
			if m.End > len(text) {
				t.Fatalf("match end %d exceeds text length %d", m.End, len(text))
			}
			if text[m.Start] != Trigger {
				t.Fatalf("match %d does not start at a trigger in %q", i, text)
			}
			if strings.ContainsAny(m.Content, "$\n\r") {
				t.Fatalf("content %q contains a trigger or line break", m.Content)
			}
			prevEnd = m.End
		}
	})
}

func TestProperty_EveryTriggerStartsATag(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := genMarkup().Draw(t, "text")
		if got, want := len(Tokenize(text)), strings.Count(text, "$"); got != want {
			t.Fatalf("got %d tags for %d triggers in %q", got, want, text)
		}
	})
}

func TestProperty_ResolveCaseInsensitive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		spec := rapid.OneOf(
			rapid.StringMatching(`#?[0-9a-fA-F]{1,7}`),
			rapid.SampledFrom([]string{"red", "Orange", "YELLOW", "green", "blue", "purple", "pink", "cyan", "gray", "white", "black"}),
		).Draw(t, "spec")

		lower, lowerOK := Resolve(strings.ToLower(spec))
		upper, upperOK := Resolve(strings.ToUpper(spec))
		if lower != upper || lowerOK != upperOK {
			t.Fatalf("Resolve(%q) differs by case: %q/%v vs %q/%v", spec, lower, lowerOK, upper, upperOK)
		}
	})
}

func TestProperty_CanonicalRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		canonical := rapid.OneOf(
			rapid.Map(rapid.StringMatching(`[0-9a-f]{6}`), func(s string) string { return "#" + s }),
			rapid.Map(rapid.StringMatching(`[0-9a-f]{3}`), func(s string) string { return "#" + s }),
		).Draw(t, "canonical")

		got, ok := Resolve(StripMarker(ToCanonicalHex(canonical)))
		if !ok || got != canonical {
			t.Fatalf("round trip of %q gave %q/%v", canonical, got, ok)
		}
	})
}

func TestProperty_StaticRenderIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := genMarkup().Draw(t, "text")
		once := PlainText(RenderStatic(text))
		twice := PlainText(RenderStatic(once))
		if once != twice {
			t.Fatalf("static render not idempotent: %q -> %q -> %q", text, once, twice)
		}
		if strings.Contains(once, "$") {
			t.Fatalf("markup survived static render: %q", once)
		}
	})
}

func TestProperty_PlanSortedAndNonOverlapping(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := genMarkup().Draw(t, "text")
		anchor := rapid.IntRange(NoAnchor, len(text)+1).Draw(t, "anchor")

		plan := Plan(Tokenize(text), anchor)
		for i := 1; i < len(plan); i++ {
			prev, cur := plan[i-1], plan[i]
			if cur.From < prev.From || (cur.From == prev.From && cur.To < prev.To) {
				t.Fatalf("plan not sorted at %d: %+v then %+v", i, prev, cur)
			}
			if cur.From < prev.To {
				t.Fatalf("plan overlaps at %d: %+v then %+v", i, prev, cur)
			}
		}
	})
}

func TestProperty_ModeFollowsAnchor(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := genMarkup().Draw(t, "text")
		matches := Tokenize(text)
		anchor := rapid.IntRange(NoAnchor, len(text)+1).Draw(t, "anchor")

		controls := 0
		for _, in := range Plan(matches, anchor) {
			if in.Kind == InsertControl {
				controls++
			}
		}
		editing := 0
		for _, m := range matches {
			if Classify(m, anchor) == ModeEditing {
				editing++
				if anchor < m.Start || anchor > m.End {
					t.Fatalf("editing mode with anchor %d outside [%d, %d]", anchor, m.Start, m.End)
				}
			}
		}
		if controls != editing {
			t.Fatalf("%d controls for %d editing tags", controls, editing)
		}
	})
}

func TestProperty_ApplyColorPreservesContent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := genMarkup().Draw(t, "text")
		anchor := rapid.IntRange(0, len(text)).Draw(t, "anchor")

		m, found := TagAt(text, anchor)
		r, ok := ApplyColor(text, anchor, "#00ff00")
		if ok != found {
			t.Fatalf("ApplyColor ok=%v but TagAt found=%v", ok, found)
		}
		if !ok {
			return
		}
		out := r.Apply(text)
		if out[:m.Start] != text[:m.Start] {
			t.Fatalf("text before the tag changed: %q -> %q", text, out)
		}
		if out[m.SpecEnd+r.Delta():] != text[m.SpecEnd:] {
			t.Fatalf("text after the spec changed: %q -> %q", text, out)
		}
	})
}
