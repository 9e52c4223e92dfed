// Package parser implements the markdown-to-IR compilation pipeline:
// directive extraction, slide segmentation, front-matter cascade
// resolution, and AST-to-block lowering.
package parser

import (
	"context"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/deckmd/deckmd/internal/adapters/secondary/assets"
	"github.com/deckmd/deckmd/internal/domain/entities"
	"github.com/deckmd/deckmd/internal/domain/ports"
)

// DefaultFigmaHosts is the hostname suffix allow-list for figma links.
var DefaultFigmaHosts = []string{"figma.com"}

// Options configures a Parser. The zero value is usable: local images
// resolve against the working directory with the default size ceiling.
type Options struct {
	// BasePath resolves relative local image references.
	BasePath string

	// MaxImageBytes caps embedded local images; <= 0 selects the 5 MB
	// default.
	MaxImageBytes int64

	// AllowedFigmaHosts overrides the figma hostname allow-list.
	AllowedFigmaHosts []string

	// Images overrides the local image resolver (used in tests).
	Images ports.ImageResolver
}

// Parser compiles an extended-Markdown document into the slide deck IR.
// Each Parse call is an independent, deterministic computation; the only
// state shared between calls is the image resolver's cache.
type Parser struct {
	md         goldmark.Markdown
	images     ports.ImageResolver
	figmaHosts []string
}

// New creates a Parser. The generic Markdown grammar is delegated to
// goldmark with GFM and footnote support.
func New(opts Options) *Parser {
	images := opts.Images
	if images == nil {
		images = assets.NewResolver(opts.BasePath, opts.MaxImageBytes)
	}
	hosts := opts.AllowedFigmaHosts
	if len(hosts) == 0 {
		hosts = DefaultFigmaHosts
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
		),
	)
	return &Parser{
		md:         md,
		images:     images,
		figmaHosts: hosts,
	}
}

// Parse compiles content into an ordered slide list. There is no fatal
// error class inside the pipeline: malformed input degrades toward fewer
// blocks and fewer styles, so the returned error is reserved for a
// cancelled context.
func (p *Parser) Parse(ctx context.Context, content []byte) ([]entities.SlideContent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := strings.ReplaceAll(string(content), "\r\n", "\n")

	// Directive pre-passes. Columns first: it must see directive blocks
	// nested inside :::columns before they are globally extracted.
	tables := newDirectiveTables()
	processed, cols := extractColumns(doc, tables.next)
	tables.addColumns(cols)
	processed, figs := extractFigma(processed, tables.next, p.figmaHosts)
	tables.addFigma(figs)
	processed, calls := extractCallouts(processed, tables.next)
	tables.addCallouts(calls)

	globalYAML, rest := extractFrontmatterBlock(processed)
	globalCfg := p.parseSlideConfig(globalYAML)

	coverEnabled := true
	if globalCfg != nil && globalCfg.Cover != nil {
		coverEnabled = *globalCfg.Cover
	}

	chunks := splitSlides(rest)
	slides := make([]entities.SlideContent, 0, len(chunks))
	for i, chunk := range chunks {
		yamlText, body := extractFrontmatterBlock(chunk)
		cfg := entities.MergeSlideConfig(globalCfg, p.parseSlideConfig(yamlText))
		if cfg == nil {
			cfg = &entities.SlideConfig{}
		}

		builder := newSlideBuilder(p, tables)
		blocks := builder.buildBlocks(body, true)
		if blocks == nil {
			blocks = []entities.Block{}
		}

		slides = append(slides, entities.SlideContent{
			Index:       i,
			Blocks:      blocks,
			Background:  cfg.Background,
			Styles:      cfg.Styles.ApplyBaseColor(cfg.Color),
			SlideNumber: cfg.SlideNumber,
			TitlePrefix: cfg.TitlePrefix,
			Align:       cfg.Align,
			VAlign:      cfg.VAlign,
			Transition:  cfg.Transition,
			Footnotes:   builder.footnotes,
			Cover:       i == 0 && coverEnabled,
		})
	}

	return slides, nil
}

// spansFromMarkdown runs inline span extraction over a standalone snippet,
// joining top-level blocks with newline spans. Used for callout bodies and
// figma text overrides.
func (p *Parser) spansFromMarkdown(snippet string) []entities.TextSpan {
	source := []byte(snippet)
	doc := p.md.Parser().Parse(text.NewReader(source))

	var spans []entities.TextSpan
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		spans = joinSpanRuns(spans, extractSpans(node, source))
	}
	return spans
}

// canonicalLanguage resolves code-fence language aliases ("golang" ->
// "go") through the chroma lexer registry; unknown names pass through
// lowercased.
func canonicalLanguage(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return ""
	}
	if lexer := lexers.Get(lang); lexer != nil {
		return strings.ToLower(lexer.Config().Name)
	}
	return strings.ToLower(lang)
}

// Ensure Parser implements ports.DeckParser.
var _ ports.DeckParser = (*Parser)(nil)
