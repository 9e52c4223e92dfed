package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSlides(t *testing.T) {
	t.Run("separator splits slides", func(t *testing.T) {
		chunks := splitSlides("# One\n\n---\n\n# Two")
		require.Len(t, chunks, 2)
		assert.Equal(t, "# One", chunks[0])
		assert.Equal(t, "# Two", chunks[1])
	})

	t.Run("no separator yields one slide", func(t *testing.T) {
		chunks := splitSlides("# Only\n\nBody text")
		require.Len(t, chunks, 1)
	})

	t.Run("dashes inside code fence are inert", func(t *testing.T) {
		doc := "# One\n\n```\nfoo\n---\nbar\n```\n\n---\n\n# Two"
		chunks := splitSlides(doc)
		require.Len(t, chunks, 2)
		assert.Contains(t, chunks[0], "---")
	})

	t.Run("tilde fences are recognized", func(t *testing.T) {
		doc := "~~~\n---\n~~~\n\n---\n\nnext"
		chunks := splitSlides(doc)
		require.Len(t, chunks, 2)
	})

	t.Run("leading dash opens slide frontmatter", func(t *testing.T) {
		doc := "# One\n\n---\n\n---\nalign: center\n---\n\n# Two"
		chunks := splitSlides(doc)
		require.Len(t, chunks, 2)
		assert.Contains(t, chunks[1], "align: center")
		assert.Contains(t, chunks[1], "# Two")
	})

	t.Run("implicit yaml block keeps its closer", func(t *testing.T) {
		// The lines before the --- are all key/value pairs, so the dash
		// closes an implicit front-matter block instead of splitting.
		doc := "align: center\nvalign: middle\n---\n# Title"
		chunks := splitSlides(doc)
		require.Len(t, chunks, 1)
		assert.Contains(t, chunks[0], "align: center")
		assert.Contains(t, chunks[0], "# Title")
	})

	t.Run("prose before dash means separator", func(t *testing.T) {
		doc := "Some prose\n---\nMore prose"
		chunks := splitSlides(doc)
		require.Len(t, chunks, 2)
	})

	t.Run("empty chunks dropped", func(t *testing.T) {
		doc := "---\n\n---\n\n# Only"
		chunks := splitSlides(doc)
		// The leading dashes open and close an empty front-matter block.
		require.NotEmpty(t, chunks)
		assert.Contains(t, chunks[len(chunks)-1], "# Only")
	})

	t.Run("crlf normalized", func(t *testing.T) {
		chunks := splitSlides("# One\r\n\r\n---\r\n\r\n# Two")
		require.Len(t, chunks, 2)
	})
}

func TestLooksLikeYAML(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  bool
	}{
		{"simple keys", []string{"align: center", "valign: middle"}, true},
		{"nested continuation", []string{"styles:", "  headings:", "    h1:", "      size: 64"}, true},
		{"blank lines ignored", []string{"", "align: center", ""}, true},
		{"prose rejected", []string{"This is a sentence."}, false},
		{"mixed rejected", []string{"align: center", "and then prose"}, false},
		{"all blank rejected", []string{"", ""}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, looksLikeYAML(tt.lines))
		})
	}
}
