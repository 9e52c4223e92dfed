package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckmd/deckmd/internal/domain/entities"
)

// spansOf parses a one-paragraph snippet and returns its span run.
func spansOf(t *testing.T, snippet string) []entities.TextSpan {
	t.Helper()
	return newTestParser().spansFromMarkdown(snippet)
}

func TestExtractSpans(t *testing.T) {
	t.Run("plain text", func(t *testing.T) {
		spans := spansOf(t, "hello world")
		require.Len(t, spans, 1)
		assert.Equal(t, "hello world", spans[0].Text)
		assert.False(t, spans[0].Bold)
	})

	t.Run("marks compose additively", func(t *testing.T) {
		spans := spansOf(t, "***both***")
		require.Len(t, spans, 1)
		assert.True(t, spans[0].Bold)
		assert.True(t, spans[0].Italic)
	})

	t.Run("code inside bold keeps both marks", func(t *testing.T) {
		spans := spansOf(t, "**a `b` c**")
		require.Len(t, spans, 3)
		assert.True(t, spans[0].Bold)
		assert.False(t, spans[0].Code)
		assert.True(t, spans[1].Bold)
		assert.True(t, spans[1].Code)
		assert.Equal(t, "b", spans[1].Text)
	})

	t.Run("strikethrough", func(t *testing.T) {
		spans := spansOf(t, "~~gone~~")
		require.Len(t, spans, 1)
		assert.True(t, spans[0].Strike)
	})

	t.Run("link href propagates to children", func(t *testing.T) {
		spans := spansOf(t, "[a **b**](https://example.com)")
		require.Len(t, spans, 2)
		assert.Equal(t, "https://example.com", spans[0].Href)
		assert.Equal(t, "https://example.com", spans[1].Href)
		assert.True(t, spans[1].Bold)
	})

	t.Run("concatenation reconstructs plain text", func(t *testing.T) {
		spans := spansOf(t, "This is **bold** and *italic* and `code`.")
		assert.Equal(t, "This is bold and italic and code.", entities.PlainText(spans))
	})

	t.Run("footnote reference becomes superscript span", func(t *testing.T) {
		spans := spansOf(t, "claim[^1]\n\n[^1]: evidence")
		var sup *entities.TextSpan
		for i := range spans {
			if spans[i].Superscript {
				sup = &spans[i]
				break
			}
		}
		require.NotNil(t, sup)
		assert.Equal(t, "[1]", sup.Text)
	})

	t.Run("raw html stripped to text", func(t *testing.T) {
		spans := spansOf(t, "before <b>tagged</b> after")
		assert.Equal(t, "before tagged after", entities.PlainText(spans))
	})

	t.Run("adjacent same-mark runs merge", func(t *testing.T) {
		spans := spansOf(t, "a\nb")
		require.Len(t, spans, 1)
		assert.Equal(t, "a\nb", spans[0].Text)
	})
}

func TestAppendSpans(t *testing.T) {
	spans := appendSpans(nil,
		entities.TextSpan{Text: "a"},
		entities.TextSpan{Text: ""},
		entities.TextSpan{Text: "b"},
		entities.TextSpan{Text: "c", Bold: true},
	)
	require.Len(t, spans, 2)
	assert.Equal(t, "ab", spans[0].Text)
	assert.Equal(t, "c", spans[1].Text)
}

func TestParseImageAlt(t *testing.T) {
	t.Run("annotations stripped", func(t *testing.T) {
		alt, ov := parseImageAlt("diagram w:300 h:200 x:10 y:20")
		assert.Equal(t, "diagram", alt)
		require.NotNil(t, ov.width)
		assert.Equal(t, 300, *ov.width)
		require.NotNil(t, ov.height)
		assert.Equal(t, 200, *ov.height)
		require.NotNil(t, ov.x)
		require.NotNil(t, ov.y)
	})

	t.Run("plain alt untouched", func(t *testing.T) {
		alt, ov := parseImageAlt("a plain description")
		assert.Equal(t, "a plain description", alt)
		assert.Nil(t, ov.width)
	})

	t.Run("malformed tokens stay in alt", func(t *testing.T) {
		alt, ov := parseImageAlt("logo w:big h:-2")
		assert.Equal(t, "logo w:big h:-2", alt)
		assert.Nil(t, ov.width)
		assert.Nil(t, ov.height)
	})
}
