package parser

import (
	"log"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deckmd/deckmd/internal/domain/entities"
)

// directiveTables holds the placeholder side tables for one parse call.
// next is the first unused placeholder index; recursive column-cell
// extraction continues from it so inner placeholders never collide with
// outer ones.
type directiveTables struct {
	columns  map[int]ColumnsPayload
	figma    map[int]FigmaPayload
	callouts map[int]CalloutPayload
	next     int
}

func newDirectiveTables() *directiveTables {
	return &directiveTables{
		columns:  make(map[int]ColumnsPayload),
		figma:    make(map[int]FigmaPayload),
		callouts: make(map[int]CalloutPayload),
	}
}

func (t *directiveTables) addColumns(ps []ColumnsPayload) {
	for _, p := range ps {
		t.columns[p.Index] = p
		t.bump(p.Index)
	}
}

func (t *directiveTables) addFigma(ps []FigmaPayload) {
	for _, p := range ps {
		t.figma[p.Index] = p
		t.bump(p.Index)
	}
}

func (t *directiveTables) addCallouts(ps []CalloutPayload) {
	for _, p := range ps {
		t.callouts[p.Index] = p
		t.bump(p.Index)
	}
}

func (t *directiveTables) bump(index int) {
	if index+1 > t.next {
		t.next = index + 1
	}
}

// slideBuilder lowers one slide's Markdown AST into typed blocks,
// collecting footnote definitions along the way.
type slideBuilder struct {
	p           *Parser
	tables      *directiveTables
	footnotes   []entities.FootnoteItem
	footnotePos map[string]int
}

func newSlideBuilder(p *Parser, tables *directiveTables) *slideBuilder {
	return &slideBuilder{
		p:           p,
		tables:      tables,
		footnotePos: make(map[string]int),
	}
}

// buildBlocks parses body as Markdown and lowers every top-level node.
// When allowColumns is false (column-cell recursion) any columns block is
// filtered out: columns do not nest.
func (b *slideBuilder) buildBlocks(body string, allowColumns bool) []entities.Block {
	source := []byte(body)
	doc := b.p.md.Parser().Parse(text.NewReader(source))

	var blocks []entities.Block
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		for _, blk := range b.lowerNode(node, source) {
			if !allowColumns && blk.Type == entities.BlockTypeColumns {
				log.Printf("warning: dropping nested columns block inside a column cell")
				continue
			}
			blocks = append(blocks, blk)
		}
	}
	return blocks
}

// lowerNode dispatches one block-level AST node to its Block variant.
func (b *slideBuilder) lowerNode(node ast.Node, source []byte) []entities.Block {
	switch n := node.(type) {
	case *ast.Heading:
		level := n.Level
		if level > 4 {
			level = 4
		}
		return []entities.Block{{
			Type:    entities.BlockTypeHeading,
			Heading: &entities.HeadingBlock{Level: level, Spans: extractSpans(n, source)},
		}}

	case *ast.Paragraph:
		return b.lowerParagraph(n, source)

	case *ast.FencedCodeBlock:
		return []entities.Block{{
			Type: entities.BlockTypeCode,
			Code: &entities.CodeBlock{
				Language: canonicalLanguage(string(n.Language(source))),
				Code:     blockLines(n, source),
			},
		}}

	case *ast.CodeBlock:
		return []entities.Block{{
			Type: entities.BlockTypeCode,
			Code: &entities.CodeBlock{Code: blockLines(n, source)},
		}}

	case *ast.List:
		items := b.listItems(n, source)
		if len(items) == 0 {
			return nil
		}
		return []entities.Block{{
			Type:    entities.BlockTypeBullets,
			Bullets: &entities.BulletsBlock{Ordered: n.IsOrdered(), Items: items},
		}}

	case *ast.Blockquote:
		spans := b.quoteSpans(n, source)
		if len(spans) == 0 {
			return nil
		}
		return []entities.Block{{
			Type:       entities.BlockTypeBlockquote,
			Blockquote: &entities.BlockquoteBlock{Spans: spans},
		}}

	case *extast.Table:
		return []entities.Block{b.lowerTable(n, source)}

	case *extast.FootnoteList:
		return b.lowerFootnotes(n, source)

	case *ast.HTMLBlock:
		stripped := htmlStripper.Sanitize(blockLines(n, source))
		stripped = strings.TrimSpace(stripped)
		if stripped == "" {
			return nil
		}
		return []entities.Block{{
			Type:      entities.BlockTypeParagraph,
			Paragraph: &entities.ParagraphBlock{Spans: []entities.TextSpan{{Text: stripped}}},
		}}

	case *ast.ThematicBreak:
		// Slide separators are consumed by the splitter; a surviving break
		// carries no content.
		return nil

	default:
		return nil
	}
}

// lowerParagraph handles the two paragraph shortcuts before emitting a
// generic paragraph: a paragraph that is a single image, and a paragraph
// whose trimmed plain text is exactly a directive placeholder.
func (b *slideBuilder) lowerParagraph(n *ast.Paragraph, source []byte) []entities.Block {
	if img, ok := singleImageChild(n); ok {
		return []entities.Block{b.imageBlock(img, source)}
	}

	spans := extractSpans(n, source)
	if kind, index, ok := matchPlaceholder(strings.TrimSpace(entities.PlainText(spans))); ok {
		return b.resolvePlaceholder(kind, index)
	}
	if len(spans) == 0 {
		return nil
	}
	return []entities.Block{{
		Type:      entities.BlockTypeParagraph,
		Paragraph: &entities.ParagraphBlock{Spans: spans},
	}}
}

// singleImageChild reports whether the paragraph contains exactly one
// inline node and that node is an image.
func singleImageChild(n *ast.Paragraph) (*ast.Image, bool) {
	first := n.FirstChild()
	if first == nil || first != n.LastChild() {
		return nil, false
	}
	img, ok := first.(*ast.Image)
	return img, ok
}

// imageBlock lowers a standalone image, resolving remote vs. local by URL
// scheme. A local image that fails to read or validate degrades to a
// reference-only block instead of failing the parse.
func (b *slideBuilder) imageBlock(img *ast.Image, source []byte) entities.Block {
	url := string(img.Destination)
	alt, ov := parseImageAlt(string(nodeText(img, source)))

	blk := &entities.ImageBlock{
		URL:    url,
		Alt:    alt,
		Width:  ov.width,
		Height: ov.height,
		X:      ov.x,
		Y:      ov.y,
	}

	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		blk.Source = entities.ImageSourceRemote
		return entities.Block{Type: entities.BlockTypeImage, Image: blk}
	}

	blk.Source = entities.ImageSourceLocal
	if b.p.images != nil {
		res, err := b.p.images.Resolve(url)
		if err != nil {
			log.Printf("warning: local image %q: %v", url, err)
		} else {
			blk.Data = res.Base64()
			blk.MimeType = res.MimeType
		}
	}
	return entities.Block{Type: entities.BlockTypeImage, Image: blk}
}

// resolvePlaceholder restores an extracted directive block from its side
// table. A placeholder with no recorded payload is user text that collided
// with the placeholder pattern; it is dropped with a warning.
func (b *slideBuilder) resolvePlaceholder(kind string, index int) []entities.Block {
	switch kind {
	case directiveColumns:
		payload, ok := b.tables.columns[index]
		if !ok {
			log.Printf("warning: no columns payload for placeholder %d", index)
			return nil
		}
		return []entities.Block{b.columnsBlock(payload)}

	case directiveFigma:
		payload, ok := b.tables.figma[index]
		if !ok {
			log.Printf("warning: no figma payload for placeholder %d", index)
			return nil
		}
		return []entities.Block{b.figmaBlock(payload)}

	case directiveCallout:
		payload, ok := b.tables.callouts[index]
		if !ok {
			log.Printf("warning: no callout payload for placeholder %d", index)
			return nil
		}
		return []entities.Block{b.calloutBlock(payload)}
	}
	return nil
}

// columnsBlock re-runs directive extraction (figma and callouts only,
// never columns) over each cell, seeded from the shared counter, then
// lowers the cell body recursively.
func (b *slideBuilder) columnsBlock(payload ColumnsPayload) entities.Block {
	cells := make([][]entities.Block, 0, len(payload.Cells))
	for _, cellText := range payload.Cells {
		processed, figs := extractFigma(cellText, b.tables.next, b.p.figmaHosts)
		b.tables.addFigma(figs)
		processed, calls := extractCallouts(processed, b.tables.next)
		b.tables.addCallouts(calls)

		cellBlocks := b.buildBlocks(processed, false)
		if cellBlocks == nil {
			cellBlocks = []entities.Block{}
		}
		cells = append(cells, cellBlocks)
	}
	return entities.Block{
		Type: entities.BlockTypeColumns,
		Columns: &entities.ColumnsBlock{
			Gap:    payload.Gap,
			Widths: payload.Widths,
			Cells:  cells,
		},
	}
}

func (b *slideBuilder) figmaBlock(payload FigmaPayload) entities.Block {
	blk := &entities.FigmaBlock{
		Link:   payload.Link,
		NodeID: payload.NodeID,
		X:      payload.X,
		Y:      payload.Y,
		Width:  payload.W,
		Height: payload.H,
	}
	if len(payload.Overrides) > 0 {
		blk.Overrides = make(map[string]entities.FigmaOverride, len(payload.Overrides))
		for _, ov := range payload.Overrides {
			blk.Overrides[ov.Name] = entities.FigmaOverride{
				Text:  ov.Text,
				Spans: b.p.spansFromMarkdown(ov.Text),
			}
		}
	}
	return entities.Block{Type: entities.BlockTypeFigma, Figma: blk}
}

func (b *slideBuilder) calloutBlock(payload CalloutPayload) entities.Block {
	return entities.Block{
		Type: entities.BlockTypeCallout,
		Callout: &entities.CalloutBlock{
			Kind:  payload.Kind,
			Title: calloutTitle(payload.Kind),
			Spans: b.p.spansFromMarkdown(payload.Body),
		},
	}
}

// listItems lowers list items recursively: nested lists become children,
// multi-paragraph items join with a newline span.
func (b *slideBuilder) listItems(list *ast.List, source []byte) []entities.BulletItem {
	var items []entities.BulletItem
	for li := list.FirstChild(); li != nil; li = li.NextSibling() {
		var item entities.BulletItem
		for c := li.FirstChild(); c != nil; c = c.NextSibling() {
			switch cc := c.(type) {
			case *ast.TextBlock:
				item.Spans = joinSpanRuns(item.Spans, extractSpans(cc, source))
			case *ast.Paragraph:
				item.Spans = joinSpanRuns(item.Spans, extractSpans(cc, source))
			case *ast.List:
				item.Children = append(item.Children, b.listItems(cc, source)...)
			}
		}
		items = append(items, item)
	}
	return items
}

// quoteSpans flattens a blockquote into one span run; paragraphs join with
// newline spans and embedded headings render as forced-bold text.
func (b *slideBuilder) quoteSpans(quote *ast.Blockquote, source []byte) []entities.TextSpan {
	var spans []entities.TextSpan
	for c := quote.FirstChild(); c != nil; c = c.NextSibling() {
		var part []entities.TextSpan
		switch cc := c.(type) {
		case *ast.Heading:
			part = extractSpansBold(cc, source)
		case *ast.Blockquote:
			part = b.quoteSpans(cc, source)
		default:
			part = extractSpans(cc, source)
		}
		spans = joinSpanRuns(spans, part)
	}
	return spans
}

// lowerTable builds the span-grid table with its nullable per-column
// alignment array.
func (b *slideBuilder) lowerTable(table *extast.Table, source []byte) entities.Block {
	alignments := make([]*string, len(table.Alignments))
	for i, a := range table.Alignments {
		switch a {
		case extast.AlignLeft:
			alignments[i] = strPtr("left")
		case extast.AlignCenter:
			alignments[i] = strPtr("center")
		case extast.AlignRight:
			alignments[i] = strPtr("right")
		}
	}

	blk := &entities.TableBlock{Alignments: alignments}
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		var cells [][]entities.TextSpan
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, extractSpans(cell, source))
		}
		if _, isHeader := row.(*extast.TableHeader); isHeader {
			blk.Headers = cells
		} else {
			blk.Rows = append(blk.Rows, cells)
		}
	}
	return entities.Block{Type: entities.BlockTypeTable, Table: blk}
}

// lowerFootnotes records the slide's footnote definitions in definition
// order (last write wins on duplicate identifiers) and emits the
// block-level rendering variant.
func (b *slideBuilder) lowerFootnotes(list *extast.FootnoteList, source []byte) []entities.Block {
	var items []entities.FootnoteItem
	for c := list.FirstChild(); c != nil; c = c.NextSibling() {
		fn, ok := c.(*extast.Footnote)
		if !ok {
			continue
		}
		var spans []entities.TextSpan
		for body := fn.FirstChild(); body != nil; body = body.NextSibling() {
			spans = joinSpanRuns(spans, extractSpans(body, source))
		}
		item := entities.FootnoteItem{
			ID:      string(fn.Ref),
			Content: entities.PlainText(spans),
			Spans:   spans,
		}
		items = append(items, item)

		if pos, dup := b.footnotePos[item.ID]; dup {
			b.footnotes[pos] = item
		} else {
			b.footnotePos[item.ID] = len(b.footnotes)
			b.footnotes = append(b.footnotes, item)
		}
	}
	if len(items) == 0 {
		return nil
	}
	return []entities.Block{{
		Type:      entities.BlockTypeFootnotes,
		Footnotes: &entities.FootnotesBlock{Items: items},
	}}
}

// joinSpanRuns concatenates two span runs with a literal newline span
// between them.
func joinSpanRuns(a, b []entities.TextSpan) []entities.TextSpan {
	if len(b) == 0 {
		return a
	}
	if len(a) == 0 {
		return b
	}
	a = appendSpans(a, entities.TextSpan{Text: "\n"})
	return appendSpans(a, b...)
}

// blockLines joins the raw source lines of a block node.
func blockLines(node ast.Node, source []byte) string {
	var sb strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	return sb.String()
}

func calloutTitle(kind entities.CalloutKind) string {
	return cases.Title(language.English).String(string(kind))
}

func strPtr(s string) *string {
	return &s
}
