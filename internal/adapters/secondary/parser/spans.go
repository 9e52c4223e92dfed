package parser

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/deckmd/deckmd/internal/domain/entities"
)

// htmlStripper reduces raw inline HTML to its text content.
var htmlStripper = bluemonday.StrictPolicy()

// markSet is the set of inline marks accumulated while descending the
// inline AST. Container nodes add marks; leaves emit spans carrying the
// full accumulated set.
type markSet struct {
	bold   bool
	italic bool
	strike bool
	code   bool
	href   string
}

func (m markSet) span(text string) entities.TextSpan {
	return entities.TextSpan{
		Text:   text,
		Bold:   m.bold,
		Italic: m.italic,
		Strike: m.strike,
		Code:   m.code,
		Href:   m.href,
	}
}

// extractSpans converts the inline children of node into an ordered span
// run. Marks compose additively: bold inside italic inside a link yields
// spans carrying all three.
func extractSpans(node ast.Node, source []byte) []entities.TextSpan {
	return extractSpansWithMarks(node, source, markSet{})
}

// extractSpansBold is the fallback-rendering variant that forces bold on
// every resulting span (used when heading text is lowered into plain span
// runs, e.g. inside blockquotes).
func extractSpansBold(node ast.Node, source []byte) []entities.TextSpan {
	return extractSpansWithMarks(node, source, markSet{bold: true})
}

func extractSpansWithMarks(node ast.Node, source []byte, marks markSet) []entities.TextSpan {
	var spans []entities.TextSpan
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		spans = appendSpans(spans, inlineSpans(child, source, marks)...)
	}
	return spans
}

// inlineSpans lowers a single inline node under the accumulated marks.
func inlineSpans(node ast.Node, source []byte, marks markSet) []entities.TextSpan {
	switch n := node.(type) {
	case *ast.Text:
		text := string(n.Segment.Value(source))
		if n.SoftLineBreak() || n.HardLineBreak() {
			text += "\n"
		}
		if text == "" {
			return nil
		}
		return []entities.TextSpan{marks.span(text)}

	case *ast.String:
		if len(n.Value) == 0 {
			return nil
		}
		return []entities.TextSpan{marks.span(string(n.Value))}

	case *ast.CodeSpan:
		// Inline code always sets code and keeps ambient marks.
		cm := marks
		cm.code = true
		var sb strings.Builder
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				sb.Write(t.Segment.Value(source))
			}
		}
		if sb.Len() == 0 {
			return nil
		}
		return []entities.TextSpan{cm.span(sb.String())}

	case *ast.Emphasis:
		em := marks
		if n.Level >= 2 {
			em.bold = true
		} else {
			em.italic = true
		}
		return extractSpansWithMarks(n, source, em)

	case *extast.Strikethrough:
		sm := marks
		sm.strike = true
		return extractSpansWithMarks(n, source, sm)

	case *ast.Link:
		lm := marks
		lm.href = string(n.Destination)
		return extractSpansWithMarks(n, source, lm)

	case *ast.AutoLink:
		lm := marks
		url := string(n.URL(source))
		if n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(url, "mailto:") {
			url = "mailto:" + url
		}
		lm.href = url
		return []entities.TextSpan{lm.span(string(n.Label(source)))}

	case *ast.Image:
		// Inline images inside mixed paragraphs degrade to their alt text;
		// the single-image paragraph shortcut is handled during lowering.
		alt, _ := parseImageAlt(string(nodeText(n, source)))
		if alt == "" {
			return nil
		}
		return []entities.TextSpan{marks.span(alt)}

	case *ast.RawHTML:
		var sb strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			sb.Write(seg.Value(source))
		}
		stripped := htmlStripper.Sanitize(sb.String())
		if strings.TrimSpace(stripped) == "" {
			return nil
		}
		return []entities.TextSpan{marks.span(stripped)}

	case *extast.FootnoteLink:
		fm := marks
		span := fm.span(fmt.Sprintf("[%d]", n.Index))
		span.Superscript = true
		return []entities.TextSpan{span}

	default:
		// Unknown containers contribute their children; unknown leaves
		// contribute nothing.
		if node.ChildCount() > 0 {
			return extractSpansWithMarks(node, source, marks)
		}
		return nil
	}
}

// appendSpans appends spans, merging adjacent runs with identical marks so
// goldmark's text-node segmentation does not leak into the IR.
func appendSpans(spans []entities.TextSpan, more ...entities.TextSpan) []entities.TextSpan {
	for _, s := range more {
		if s.Text == "" {
			continue
		}
		if len(spans) > 0 && spans[len(spans)-1].SameMarks(s) {
			spans[len(spans)-1].Text += s.Text
			continue
		}
		spans = append(spans, s)
	}
	return spans
}

// nodeText collects the raw text content beneath an AST node.
func nodeText(node ast.Node, source []byte) []byte {
	var sb strings.Builder
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
		case *ast.String:
			sb.Write(t.Value)
		default:
			sb.Write(nodeText(c, source))
		}
	}
	return []byte(sb.String())
}
