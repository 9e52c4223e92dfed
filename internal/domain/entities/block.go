package entities

// BlockType discriminates the Block tagged union.
type BlockType string

// Block type constants.
const (
	BlockTypeParagraph  BlockType = "paragraph"
	BlockTypeHeading    BlockType = "heading"
	BlockTypeBullets    BlockType = "bullets"
	BlockTypeCode       BlockType = "code"
	BlockTypeImage      BlockType = "image"
	BlockTypeBlockquote BlockType = "blockquote"
	BlockTypeTable      BlockType = "table"
	BlockTypeFigma      BlockType = "figma"
	BlockTypeCallout    BlockType = "callout"
	BlockTypeColumns    BlockType = "columns"
	BlockTypeFootnotes  BlockType = "footnotes"
)

// Block is one slide-level content block. Exactly one of the payload
// pointers is non-nil, matching Type.
type Block struct {
	Type       BlockType        `json:"type"`
	Paragraph  *ParagraphBlock  `json:"paragraph,omitempty"`
	Heading    *HeadingBlock    `json:"heading,omitempty"`
	Bullets    *BulletsBlock    `json:"bullets,omitempty"`
	Code       *CodeBlock       `json:"code,omitempty"`
	Image      *ImageBlock      `json:"image,omitempty"`
	Blockquote *BlockquoteBlock `json:"blockquote,omitempty"`
	Table      *TableBlock      `json:"table,omitempty"`
	Figma      *FigmaBlock      `json:"figma,omitempty"`
	Callout    *CalloutBlock    `json:"callout,omitempty"`
	Columns    *ColumnsBlock    `json:"columns,omitempty"`
	Footnotes  *FootnotesBlock  `json:"footnotes,omitempty"`
}

// ParagraphBlock is a run of formatted text spans.
type ParagraphBlock struct {
	Spans []TextSpan `json:"spans"`
}

// HeadingBlock is a heading of level 1-4.
type HeadingBlock struct {
	Level int        `json:"level"`
	Spans []TextSpan `json:"spans"`
}

// BulletsBlock is an ordered or unordered list.
type BulletsBlock struct {
	Ordered bool         `json:"ordered,omitempty"`
	Items   []BulletItem `json:"items"`
}

// BulletItem is one list item; Children nests recursively for sub-lists.
type BulletItem struct {
	Spans    []TextSpan   `json:"spans"`
	Children []BulletItem `json:"children,omitempty"`
}

// CodeBlock is a fenced code block.
type CodeBlock struct {
	Language string `json:"language,omitempty"`
	Code     string `json:"code"`
}

// ImageSource distinguishes remote URLs from local files.
type ImageSource string

// Image source constants.
const (
	ImageSourceRemote ImageSource = "remote"
	ImageSourceLocal  ImageSource = "local"
)

// ImageBlock is a standalone image. Local images may carry their bytes
// base64-encoded in Data; a local image without Data failed to resolve
// and degrades to a reference-only block.
type ImageBlock struct {
	URL      string      `json:"url"`
	Alt      string      `json:"alt,omitempty"`
	Source   ImageSource `json:"source"`
	Width    *int        `json:"width,omitempty"`
	Height   *int        `json:"height,omitempty"`
	X        *int        `json:"x,omitempty"`
	Y        *int        `json:"y,omitempty"`
	Data     string      `json:"data,omitempty"`
	MimeType string      `json:"mimeType,omitempty"`
}

// BlockquoteBlock is a quoted run of spans; multi-paragraph quotes join
// with newline spans.
type BlockquoteBlock struct {
	Spans []TextSpan `json:"spans"`
}

// TableBlock is a span-grid table. Alignments holds one entry per column;
// nil means the column has no explicit alignment marker.
type TableBlock struct {
	Headers    [][]TextSpan   `json:"headers"`
	Rows       [][][]TextSpan `json:"rows"`
	Alignments []*string      `json:"alignments"`
}

// FigmaBlock is a validated external selection-link payload.
type FigmaBlock struct {
	Link      string                   `json:"link"`
	NodeID    string                   `json:"nodeId,omitempty"`
	X         *float64                 `json:"x,omitempty"`
	Y         *float64                 `json:"y,omitempty"`
	Width     *float64                 `json:"width,omitempty"`
	Height    *float64                 `json:"height,omitempty"`
	Overrides map[string]FigmaOverride `json:"overrides,omitempty"`
}

// FigmaOverride is a named text override applied to the linked node.
type FigmaOverride struct {
	Text  string     `json:"text"`
	Spans []TextSpan `json:"spans,omitempty"`
}

// CalloutKind enumerates the supported callout flavors.
type CalloutKind string

// Callout kinds.
const (
	CalloutNote    CalloutKind = "note"
	CalloutTip     CalloutKind = "tip"
	CalloutWarning CalloutKind = "warning"
	CalloutCaution CalloutKind = "caution"
)

// ValidCalloutKind reports whether s names a supported callout kind.
func ValidCalloutKind(s string) bool {
	switch CalloutKind(s) {
	case CalloutNote, CalloutTip, CalloutWarning, CalloutCaution:
		return true
	}
	return false
}

// CalloutBlock is an admonition with formatted body spans.
type CalloutBlock struct {
	Kind  CalloutKind `json:"kind"`
	Title string      `json:"title,omitempty"`
	Spans []TextSpan  `json:"spans"`
}

// ColumnsBlock is a side-by-side layout of 2..MaxColumns cell lists. Cells
// never contain a nested columns block. Widths is nil for an even split.
type ColumnsBlock struct {
	Gap    float64   `json:"gap,omitempty"`
	Widths []float64 `json:"widths,omitempty"`
	Cells  [][]Block `json:"cells"`
}

// FootnotesBlock is the block-level footnote rendering; the authoritative
// footnote set lives on SlideContent.Footnotes.
type FootnotesBlock struct {
	Items []FootnoteItem `json:"items"`
}

// FootnoteItem is one footnote definition, in definition order.
type FootnoteItem struct {
	ID      string     `json:"id"`
	Content string     `json:"content"`
	Spans   []TextSpan `json:"spans,omitempty"`
}
