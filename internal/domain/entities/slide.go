package entities

import "errors"

// SlideContent is the fully resolved intermediate representation of one
// slide: its ordered blocks plus the cascade-resolved presentation
// configuration. Instances are immutable after construction and live only
// for the duration of one parse call.
type SlideContent struct {
	// ID is a unique identifier for the slide.
	ID string `json:"id,omitempty"`

	// Index is the slide position in the deck (0-based).
	Index int `json:"index"`

	// Blocks is the ordered block content of the slide.
	Blocks []Block `json:"blocks"`

	// Background is the resolved background, if any.
	Background *SlideBackground `json:"background,omitempty"`

	// Styles is the cascade-resolved style set, if any.
	Styles *SlideStyles `json:"styles,omitempty"`

	// SlideNumber is the resolved page-number configuration.
	SlideNumber *SlideNumberConfig `json:"slideNumber,omitempty"`

	// TitlePrefix is the resolved title-prefix configuration.
	TitlePrefix *TitlePrefixConfig `json:"titlePrefix,omitempty"`

	// Align and VAlign position the slide content.
	Align  string `json:"align,omitempty"`
	VAlign string `json:"valign,omitempty"`

	// Transition is the resolved entry transition.
	Transition *SlideTransitionConfig `json:"transition,omitempty"`

	// Footnotes holds the slide's footnote definitions in definition order.
	Footnotes []FootnoteItem `json:"footnotes,omitempty"`

	// Cover marks the first slide when the document-level cover switch is
	// on (the default).
	Cover bool `json:"cover,omitempty"`
}

// Validate ensures the slide content is structurally sound.
func (s *SlideContent) Validate() error {
	if s.Index < 0 {
		return errors.New("slide index must be non-negative")
	}
	for i := range s.Blocks {
		if s.Blocks[i].Type == "" {
			return errors.New("slide block missing type")
		}
	}
	return nil
}

// PlainTitle returns the text of the first heading block, or "".
func (s *SlideContent) PlainTitle() string {
	for i := range s.Blocks {
		if s.Blocks[i].Type == BlockTypeHeading && s.Blocks[i].Heading != nil {
			return PlainText(s.Blocks[i].Heading.Spans)
		}
	}
	return ""
}
