package colortag

import (
	"slices"
	"strings"
)

// NoAnchor is passed as the anchor when there is no cursor to honor (for
// example when the editor is unfocused). Every tag renders in display mode.
const NoAnchor = -1

// Mode is the render policy chosen for a single tag.
type Mode int

const (
	// ModeDisplay hides the markup and colors the content only.
	ModeDisplay Mode = iota
	// ModeEditing shows the raw markup in the tag's color plus a swatch control.
	ModeEditing
)

func (m Mode) String() string {
	switch m {
	case ModeDisplay:
		return "display"
	case ModeEditing:
		return "editing"
	default:
		return "unknown"
	}
}

// Classify picks the render mode of a tag for the given anchor. It is the
// only place the mode decision is made.
func Classify(m TagMatch, anchor int) Mode {
	if anchor != NoAnchor && m.Contains(anchor) {
		return ModeEditing
	}
	return ModeDisplay
}

// InstructionKind identifies a render instruction.
type InstructionKind int

const (
	// Hide removes [From, To) from the rendered output.
	Hide InstructionKind = iota
	// Colorize paints [From, To) with Color.
	Colorize
	// InsertControl places a swatch control at From (From == To).
	InsertControl
)

func (k InstructionKind) String() string {
	switch k {
	case Hide:
		return "hide"
	case Colorize:
		return "colorize"
	case InsertControl:
		return "control"
	default:
		return "unknown"
	}
}

// Instruction is a single decoration for the host to apply.
// Color is empty for Hide and for controls of unresolved tags.
type Instruction struct {
	Kind  InstructionKind
	From  int
	To    int
	Color string
}

// Range is a half-open span of document offsets.
type Range struct {
	From int
	To   int
}

// Plan turns tag matches into render instructions for one anchor position.
// The result is sorted by From, then To, and contains no overlapping ranges.
func Plan(matches []TagMatch, anchor int) []Instruction {
	out := make([]Instruction, 0, 2*len(matches))
	for _, m := range matches {
		out = appendInstructions(out, m, Classify(m, anchor))
	}
	sortInstructions(out)
	return out
}

// PlanRanges tokenizes each visible range of doc and plans the union.
// Ranges are clamped to the document.
func PlanRanges(doc string, visible []Range, anchor int) []Instruction {
	var out []Instruction
	for _, r := range visible {
		from := max(0, r.From)
		to := min(len(doc), r.To)
		if from >= to {
			continue
		}
		for _, m := range Tokenize(doc[from:to]) {
			m = m.shift(from)
			out = appendInstructions(out, m, Classify(m, anchor))
		}
	}
	sortInstructions(out)
	return out
}

func appendInstructions(out []Instruction, m TagMatch, mode Mode) []Instruction {
	switch mode {
	case ModeEditing:
		out = append(out, Instruction{Kind: InsertControl, From: m.Start, To: m.Start, Color: m.Color})
		if m.HasColor() {
			out = append(out, Instruction{Kind: Colorize, From: m.Start, To: m.End, Color: m.Color})
		}
	default:
		out = append(out, Instruction{Kind: Hide, From: m.Start, To: m.ContentStart})
		if m.HasColor() && m.ContentStart < m.End {
			out = append(out, Instruction{Kind: Colorize, From: m.ContentStart, To: m.End, Color: m.Color})
		}
	}
	return out
}

func sortInstructions(out []Instruction) {
	slices.SortStableFunc(out, func(a, b Instruction) int {
		if a.From != b.From {
			return a.From - b.From
		}
		return a.To - b.To
	})
}

// ReplanReason names the host event that invalidated the previous plan.
// Every reason triggers a full replan; it exists for logging only.
type ReplanReason int

const (
	DocChanged ReplanReason = 1 << iota
	ViewportChanged
	SelectionSet
	FocusChanged
)

func (r ReplanReason) String() string {
	if r == 0 {
		return "none"
	}
	var parts []string
	if r&DocChanged != 0 {
		parts = append(parts, "doc")
	}
	if r&ViewportChanged != 0 {
		parts = append(parts, "viewport")
	}
	if r&SelectionSet != 0 {
		parts = append(parts, "selection")
	}
	if r&FocusChanged != 0 {
		parts = append(parts, "focus")
	}
	return strings.Join(parts, "|")
}
