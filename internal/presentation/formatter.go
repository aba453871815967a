// Package presentation formats command output as tables, JSON or diffs.
package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatJSON writes v as indented JSON.
func (f *Formatter) FormatJSON(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// FormatTags writes one row per tag. Unresolved specs are flagged.
func (f *Formatter) FormatTags(tags []TagDTO) error {
	if len(tags) == 0 {
		_, err := fmt.Fprintln(f.writer, "no color tags")
		return err
	}

	bold := color.New(color.Bold)
	muted := color.New(color.FgHiBlack)
	warn := color.New(color.FgYellow)

	var b strings.Builder
	b.WriteString(bold.Sprintf("%-6s %-11s %-10s %s\n", "LINE", "RANGE", "COLOR", "CONTENT"))
	for _, t := range tags {
		colorCol := t.Color
		if !t.Resolved {
			colorCol = "-"
		}
		fmt.Fprintf(&b, "%-6d %-11s %-10s %q", t.Line, fmt.Sprintf("%d-%d", t.Start, t.End), colorCol, t.Content)
		if !t.Resolved {
			spec := t.Spec
			if spec == "" {
				spec = "(bare)"
			}
			b.WriteString(warn.Sprintf("  unresolved %s", spec))
		} else if t.Spec != t.Color {
			b.WriteString(muted.Sprintf("  %s", t.Spec))
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(f.writer, b.String())
	return err
}

// FormatColors lists the vault and recent colors.
func (f *Formatter) FormatColors(c ColorsDTO) error {
	bold := color.New(color.Bold)
	muted := color.New(color.FgHiBlack)

	var b strings.Builder
	if c.ConfigPath != "" {
		b.WriteString(muted.Sprintf("# %s\n", c.ConfigPath))
	}
	b.WriteString(bold.Sprintln("Vault"))
	for i, hex := range c.Vault {
		fmt.Fprintf(&b, "  %d  %s\n", i+1, hex)
	}
	b.WriteString(bold.Sprintln("Recent"))
	if len(c.Recent) == 0 {
		b.WriteString(muted.Sprintln("  (none)"))
	}
	for i, hex := range c.Recent {
		fmt.Fprintf(&b, "  %d  %s\n", i+1, hex)
	}
	_, err := io.WriteString(f.writer, b.String())
	return err
}

// Success prints a success message.
func (f *Formatter) Success(msg string) {
	color.New(color.FgGreen).Fprintln(f.writer, "✓ "+msg)
}

// FormatDiff writes a character-level diff of before and after. Deleted text
// is shown as [-text-] and inserted text as {+text+}, colored when the
// terminal supports it.
func (f *Formatter) FormatDiff(before, after string) error {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			b.WriteString(d.Text)
		case diffmatchpatch.DiffDelete:
			b.WriteString(red.Sprint("[-" + d.Text + "-]"))
		case diffmatchpatch.DiffInsert:
			b.WriteString(green.Sprint("{+" + d.Text + "+}"))
		}
	}
	out := b.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err := io.WriteString(f.writer, out)
	return err
}
