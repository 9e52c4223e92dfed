package parser

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckmd/deckmd/internal/domain/entities"
)

func TestParseBasicDocument(t *testing.T) {
	p := newTestParser()
	ctx := context.Background()

	slides, err := p.Parse(ctx, []byte("## Test\n\nThis is **bold** text."))
	require.NoError(t, err)
	require.Len(t, slides, 1)

	blocks := slides[0].Blocks
	require.Len(t, blocks, 2)

	require.Equal(t, entities.BlockTypeHeading, blocks[0].Type)
	assert.Equal(t, 2, blocks[0].Heading.Level)
	assert.Equal(t, "Test", entities.PlainText(blocks[0].Heading.Spans))

	require.Equal(t, entities.BlockTypeParagraph, blocks[1].Type)
	spans := blocks[1].Paragraph.Spans
	require.Len(t, spans, 3)
	assert.Equal(t, entities.TextSpan{Text: "This is "}, spans[0])
	assert.Equal(t, entities.TextSpan{Text: "bold", Bold: true}, spans[1])
	assert.Equal(t, entities.TextSpan{Text: " text."}, spans[2])
}

func TestParseMultipleSlides(t *testing.T) {
	p := newTestParser()

	doc := `---
color: "#fff"
---

# First

body

---

---
align: center
---

# Second
`
	slides, err := p.Parse(context.Background(), []byte(doc))
	require.NoError(t, err)
	require.Len(t, slides, 2)

	assert.Equal(t, 0, slides[0].Index)
	assert.True(t, slides[0].Cover)
	assert.False(t, slides[1].Cover)
	assert.Equal(t, "center", slides[1].Align)

	// The document color cascades into every style bucket.
	require.NotNil(t, slides[1].Styles)
	require.NotNil(t, slides[1].Styles.Paragraphs)
	assert.Equal(t, "#ffffff", slides[1].Styles.Paragraphs.Color)
}

func TestParseCoverSwitch(t *testing.T) {
	p := newTestParser()

	slides, err := p.Parse(context.Background(), []byte("---\ncover: false\n---\n\n# Only"))
	require.NoError(t, err)
	require.Len(t, slides, 1)
	assert.False(t, slides[0].Cover)
}

func TestParseColumns(t *testing.T) {
	p := newTestParser()

	doc := "# Layout\n\n:::columns\n:::column\nA\n:::column\nB\n:::\n"
	slides, err := p.Parse(context.Background(), []byte(doc))
	require.NoError(t, err)
	require.Len(t, slides, 1)

	require.Len(t, slides[0].Blocks, 2)
	cols := slides[0].Blocks[1]
	require.Equal(t, entities.BlockTypeColumns, cols.Type)
	require.Len(t, cols.Columns.Cells, 2)

	for i, want := range []string{"A", "B"} {
		cell := cols.Columns.Cells[i]
		require.Len(t, cell, 1)
		require.Equal(t, entities.BlockTypeParagraph, cell[0].Type)
		assert.Equal(t, want, entities.PlainText(cell[0].Paragraph.Spans))
	}
}

func TestParseColumnsWithNestedDirectives(t *testing.T) {
	p := newTestParser()

	doc := `:::columns
:::column
:::note
inner note
:::
:::column
plain
:::

:::figma
link=https://www.figma.com/design/abc?node-id=5-1
:::
`
	slides, err := p.Parse(context.Background(), []byte(doc))
	require.NoError(t, err)
	require.Len(t, slides, 1)

	blocks := slides[0].Blocks
	require.Len(t, blocks, 2)

	require.Equal(t, entities.BlockTypeColumns, blocks[0].Type)
	cells := blocks[0].Columns.Cells
	require.Len(t, cells, 2)
	require.Len(t, cells[0], 1)
	require.Equal(t, entities.BlockTypeCallout, cells[0][0].Type)
	assert.Equal(t, entities.CalloutNote, cells[0][0].Callout.Kind)
	assert.Equal(t, "inner note", entities.PlainText(cells[0][0].Callout.Spans))

	require.Equal(t, entities.BlockTypeFigma, blocks[1].Type)
	assert.Equal(t, "5-1", blocks[1].Figma.NodeID)
}

func TestParseFigmaWithoutLinkDropped(t *testing.T) {
	p := newTestParser()

	doc := "# Before\n\n:::figma\nx=10\n:::\n\nAfter paragraph.\n"
	slides, err := p.Parse(context.Background(), []byte(doc))
	require.NoError(t, err)
	require.Len(t, slides, 1)

	blocks := slides[0].Blocks
	require.Len(t, blocks, 2)
	assert.Equal(t, entities.BlockTypeHeading, blocks[0].Type)
	require.Equal(t, entities.BlockTypeParagraph, blocks[1].Type)
	assert.Equal(t, "After paragraph.", entities.PlainText(blocks[1].Paragraph.Spans))
}

func TestParseCallout(t *testing.T) {
	p := newTestParser()

	doc := ":::tip\nuse **bold** sparingly\n:::\n"
	slides, err := p.Parse(context.Background(), []byte(doc))
	require.NoError(t, err)
	require.Len(t, slides, 1)
	require.Len(t, slides[0].Blocks, 1)

	callout := slides[0].Blocks[0].Callout
	require.NotNil(t, callout)
	assert.Equal(t, entities.CalloutTip, callout.Kind)
	assert.Equal(t, "Tip", callout.Title)
	assert.Equal(t, "use bold sparingly", entities.PlainText(callout.Spans))
}

func TestParseFigmaOverrides(t *testing.T) {
	p := newTestParser()

	doc := `:::figma
link=https://www.figma.com/design/abc?node-id=7-7
w=640
text.title=Hello **world**
:::
`
	slides, err := p.Parse(context.Background(), []byte(doc))
	require.NoError(t, err)
	require.Len(t, slides[0].Blocks, 1)

	figma := slides[0].Blocks[0].Figma
	require.NotNil(t, figma)
	require.NotNil(t, figma.Width)
	assert.Equal(t, 640.0, *figma.Width)
	require.Contains(t, figma.Overrides, "title")
	ov := figma.Overrides["title"]
	assert.Equal(t, "Hello **world**", ov.Text)
	assert.Equal(t, "Hello world", entities.PlainText(ov.Spans))
}

func TestParseBullets(t *testing.T) {
	p := newTestParser()

	doc := "- top\n  - nested one\n  - nested two\n- second\n"
	slides, err := p.Parse(context.Background(), []byte(doc))
	require.NoError(t, err)
	require.Len(t, slides[0].Blocks, 1)

	bullets := slides[0].Blocks[0].Bullets
	require.NotNil(t, bullets)
	assert.False(t, bullets.Ordered)
	require.Len(t, bullets.Items, 2)
	assert.Equal(t, "top", entities.PlainText(bullets.Items[0].Spans))
	require.Len(t, bullets.Items[0].Children, 2)
	assert.Equal(t, "nested one", entities.PlainText(bullets.Items[0].Children[0].Spans))
	assert.Empty(t, bullets.Items[1].Children)
}

func TestParseOrderedList(t *testing.T) {
	p := newTestParser()

	slides, err := p.Parse(context.Background(), []byte("1. one\n2. two\n"))
	require.NoError(t, err)
	bullets := slides[0].Blocks[0].Bullets
	require.NotNil(t, bullets)
	assert.True(t, bullets.Ordered)
}

func TestParseCodeBlock(t *testing.T) {
	p := newTestParser()

	doc := "```golang\nfmt.Println(\"hi\")\n```\n"
	slides, err := p.Parse(context.Background(), []byte(doc))
	require.NoError(t, err)
	require.Len(t, slides[0].Blocks, 1)

	code := slides[0].Blocks[0].Code
	require.NotNil(t, code)
	assert.Equal(t, "go", code.Language)
	assert.Equal(t, "fmt.Println(\"hi\")\n", code.Code)
}

func TestParseBlockquote(t *testing.T) {
	p := newTestParser()

	doc := "> ## Quoted heading\n>\n> and a line\n"
	slides, err := p.Parse(context.Background(), []byte(doc))
	require.NoError(t, err)
	require.Len(t, slides[0].Blocks, 1)

	quote := slides[0].Blocks[0].Blockquote
	require.NotNil(t, quote)
	assert.Equal(t, "Quoted heading\nand a line", entities.PlainText(quote.Spans))
	assert.True(t, quote.Spans[0].Bold)
}

func TestParseTable(t *testing.T) {
	p := newTestParser()

	doc := "| Name | Count |\n|:-----|------:|\n| a | 1 |\n| b | 2 |\n"
	slides, err := p.Parse(context.Background(), []byte(doc))
	require.NoError(t, err)
	require.Len(t, slides[0].Blocks, 1)

	table := slides[0].Blocks[0].Table
	require.NotNil(t, table)
	require.Len(t, table.Headers, 2)
	assert.Equal(t, "Name", entities.PlainText(table.Headers[0]))
	require.Len(t, table.Rows, 2)
	require.Len(t, table.Alignments, 2)
	require.NotNil(t, table.Alignments[0])
	assert.Equal(t, "left", *table.Alignments[0])
	require.NotNil(t, table.Alignments[1])
	assert.Equal(t, "right", *table.Alignments[1])
}

func TestParseTableUnspecifiedAlignment(t *testing.T) {
	p := newTestParser()

	doc := "| a | b |\n|---|---|\n| 1 | 2 |\n"
	slides, err := p.Parse(context.Background(), []byte(doc))
	require.NoError(t, err)
	table := slides[0].Blocks[0].Table
	require.NotNil(t, table)
	for _, a := range table.Alignments {
		assert.Nil(t, a)
	}
}

func TestParseFootnotes(t *testing.T) {
	p := newTestParser()

	doc := "A claim[^src].\n\n[^src]: the evidence\n"
	slides, err := p.Parse(context.Background(), []byte(doc))
	require.NoError(t, err)
	require.Len(t, slides, 1)

	require.Len(t, slides[0].Footnotes, 1)
	fn := slides[0].Footnotes[0]
	assert.Equal(t, "src", fn.ID)
	assert.Equal(t, "the evidence", fn.Content)
}

func TestParseFootnoteDuplicateLastWins(t *testing.T) {
	p := newTestParser()

	doc := "x[^a]\n\n[^a]: first\n[^a]: second\n"
	slides, err := p.Parse(context.Background(), []byte(doc))
	require.NoError(t, err)
	require.Len(t, slides, 1)
	require.NotEmpty(t, slides[0].Footnotes)
	assert.Len(t, slides[0].Footnotes, 1)
}

func TestParseLocalImage(t *testing.T) {
	dir := t.TempDir()
	payload := []byte("not a real png but bytes nonetheless")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pic.png"), payload, 0o644))

	p := New(Options{BasePath: dir})

	slides, err := p.Parse(context.Background(), []byte("![diagram w:300](pic.png)\n"))
	require.NoError(t, err)
	require.Len(t, slides[0].Blocks, 1)

	img := slides[0].Blocks[0].Image
	require.NotNil(t, img)
	assert.Equal(t, entities.ImageSourceLocal, img.Source)
	assert.Equal(t, "diagram", img.Alt)
	require.NotNil(t, img.Width)
	assert.Equal(t, 300, *img.Width)
	assert.Equal(t, "image/png", img.MimeType)
	assert.Equal(t, base64.StdEncoding.EncodeToString(payload), img.Data)
}

func TestParseLocalImageDegradesOnFailure(t *testing.T) {
	p := New(Options{BasePath: t.TempDir()})

	slides, err := p.Parse(context.Background(), []byte("![missing](nope.png)\n"))
	require.NoError(t, err)
	img := slides[0].Blocks[0].Image
	require.NotNil(t, img)
	assert.Equal(t, entities.ImageSourceLocal, img.Source)
	assert.Empty(t, img.Data)
}

func TestParseRemoteImage(t *testing.T) {
	p := newTestParser()

	slides, err := p.Parse(context.Background(), []byte("![alt](https://example.com/x.png)\n"))
	require.NoError(t, err)
	img := slides[0].Blocks[0].Image
	require.NotNil(t, img)
	assert.Equal(t, entities.ImageSourceRemote, img.Source)
	assert.Empty(t, img.Data)
}

func TestParsePlainDocumentIsSupersetOfMarkdown(t *testing.T) {
	p := newTestParser()

	doc := "# Title\n\nA paragraph.\n\n- one\n- two\n\n```sh\nls\n```\n"
	slides, err := p.Parse(context.Background(), []byte(doc))
	require.NoError(t, err)
	require.Len(t, slides, 1)

	types := make([]entities.BlockType, 0, len(slides[0].Blocks))
	for _, b := range slides[0].Blocks {
		types = append(types, b.Type)
	}
	assert.Equal(t, []entities.BlockType{
		entities.BlockTypeHeading,
		entities.BlockTypeParagraph,
		entities.BlockTypeBullets,
		entities.BlockTypeCode,
	}, types)
}

func TestParseCancelledContext(t *testing.T) {
	p := newTestParser()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Parse(ctx, []byte("# x"))
	assert.Error(t, err)
}
