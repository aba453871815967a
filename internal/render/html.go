package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/zjrosen/colortags/internal/colortag"
)

// KindColorSpan is the node kind of a colored run of inline text.
var KindColorSpan = ast.NewNodeKind("ColorSpan")

// ColorSpan wraps the content of a color tag in a markdown document.
type ColorSpan struct {
	ast.BaseInline
	Color string
}

// Kind implements ast.Node.
func (n *ColorSpan) Kind() ast.NodeKind {
	return KindColorSpan
}

// Dump implements ast.Node.
func (n *ColorSpan) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Color": n.Color}, nil)
}

// ColorTags is a goldmark extension that renders color tags found in text
// nodes as colored spans. Code spans and code blocks are left untouched.
var ColorTags goldmark.Extender = &colorTags{}

type colorTags struct{}

func (e *colorTags) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(&colorTagTransformer{}, 500),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&colorSpanRenderer{}, 500),
	))
}

// mdRenderer is a pre-configured goldmark instance with GFM and color tags.
var mdRenderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM, ColorTags),
)

// HTML converts a markdown document containing color tags to HTML.
func HTML(w io.Writer, source []byte) error {
	var buf bytes.Buffer
	if err := mdRenderer.Convert(source, &buf); err != nil {
		return fmt.Errorf("converting markdown: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

type colorTagTransformer struct{}

// Transform replaces every run of text containing tags with plain text and
// ColorSpan nodes. Inline parsers split a line into several adjacent text
// nodes (at spaces, '_', '[', '&', '<' and so on); such a run is scanned as
// one text. A tag's content still ends where other inline markup such as
// emphasis or a link begins.
func (t *colorTagTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()

	var runs [][]*ast.Text
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.CodeSpan, *ast.CodeBlock, *ast.FencedCodeBlock, *ast.HTMLBlock, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			if n.IsRaw() {
				return ast.WalkContinue, nil
			}
			if k := len(runs) - 1; k >= 0 && continuesRun(runs[k][len(runs[k])-1], n) {
				runs[k] = append(runs[k], n)
			} else {
				runs = append(runs, []*ast.Text{n})
			}
		}
		return ast.WalkContinue, nil
	})

	for _, run := range runs {
		splitRun(run, source)
	}
}

// continuesRun reports whether next directly follows prev on the same line
// of the source.
func continuesRun(prev, next *ast.Text) bool {
	return prev.NextSibling() == next &&
		!prev.SoftLineBreak() && !prev.HardLineBreak() &&
		prev.Segment.Padding == 0 && next.Segment.Padding == 0 &&
		prev.Segment.Stop == next.Segment.Start
}

// splitRun replaces the text nodes of run with the static rendering of their
// combined value.
func splitRun(run []*ast.Text, source []byte) {
	first, tail := run[0], run[len(run)-1]
	start, stop := first.Segment.Start, tail.Segment.Stop
	value := first.Segment.Value(source)
	if len(run) > 1 {
		value = source[start:stop]
	}
	if bytes.IndexByte(value, colortag.Trigger) < 0 {
		return
	}

	parent := first.Parent()
	if parent == nil {
		return
	}

	var last ast.Node
	for _, f := range colortag.RenderStatic(string(value)) {
		inner := ast.NewTextSegment(text.NewSegment(start+f.From, start+f.To))
		var node ast.Node = inner
		if f.Colored() {
			span := &ColorSpan{Color: f.Color}
			span.AppendChild(span, inner)
			node = span
		}
		parent.InsertBefore(parent, first, node)
		last = node
	}

	// Line breaks belong after the span, not inside it.
	if tail.SoftLineBreak() || tail.HardLineBreak() {
		end, ok := last.(*ast.Text)
		if !ok {
			end = ast.NewTextSegment(text.NewSegment(stop, stop))
			parent.InsertBefore(parent, first, end)
		}
		end.SetSoftLineBreak(tail.SoftLineBreak())
		end.SetHardLineBreak(tail.HardLineBreak())
	}

	for _, n := range run {
		parent.RemoveChild(parent, n)
	}
}

type colorSpanRenderer struct{}

func (r *colorSpanRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindColorSpan, r.renderColorSpan)
}

func (r *colorSpanRenderer) renderColorSpan(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("</span>")
		return ast.WalkContinue, nil
	}
	span := n.(*ColorSpan)
	_, _ = w.WriteString(`<span class="color-tag" style="color: `)
	_, _ = w.Write(util.EscapeHTML([]byte(span.Color)))
	_, _ = w.WriteString(`">`)
	return ast.WalkContinue, nil
}
