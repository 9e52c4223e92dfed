package entities

// Font size bounds for TextStyle.Size.
const (
	MinFontSize = 1
	MaxFontSize = 200
)

// TextStyle is a partial per-element style override. Nil fields inherit.
type TextStyle struct {
	Size    *int     `json:"size,omitempty"`
	Color   string   `json:"color,omitempty"`
	X       *float64 `json:"x,omitempty"`
	Y       *float64 `json:"y,omitempty"`
	Spacing *float64 `json:"spacing,omitempty"`
}

// FontVariant describes the font for one element bucket: a family, a base
// style name, and optional overrides for the emphasized renditions.
type FontVariant struct {
	Family     string `json:"family"`
	Style      string `json:"style,omitempty"`
	Bold       string `json:"bold,omitempty"`
	Italic     string `json:"italic,omitempty"`
	BoldItalic string `json:"boldItalic,omitempty"`
}

// SlideStyles holds the per-element style buckets of a slide. All fields
// are optional; absent buckets inherit the document defaults.
type SlideStyles struct {
	H1         *TextStyle              `json:"h1,omitempty"`
	H2         *TextStyle              `json:"h2,omitempty"`
	H3         *TextStyle              `json:"h3,omitempty"`
	H4         *TextStyle              `json:"h4,omitempty"`
	Paragraphs *TextStyle              `json:"paragraphs,omitempty"`
	Bullets    *TextStyle              `json:"bullets,omitempty"`
	Code       *TextStyle              `json:"code,omitempty"`
	Fonts      map[string]*FontVariant `json:"fonts,omitempty"`
}

// MergeTextStyle merges override onto base field by field; override wins
// only where it is set. Returns nil when both inputs are nil.
func MergeTextStyle(base, override *TextStyle) *TextStyle {
	if base == nil && override == nil {
		return nil
	}
	out := &TextStyle{}
	if base != nil {
		*out = *base
	}
	if override != nil {
		if override.Size != nil {
			out.Size = override.Size
		}
		if override.Color != "" {
			out.Color = override.Color
		}
		if override.X != nil {
			out.X = override.X
		}
		if override.Y != nil {
			out.Y = override.Y
		}
		if override.Spacing != nil {
			out.Spacing = override.Spacing
		}
	}
	return out
}

// MergeStyles merges a per-slide style override onto the document default,
// bucket by bucket and leaf by leaf. A slide overriding only h1.size still
// inherits the default h1.color.
func MergeStyles(base, override *SlideStyles) *SlideStyles {
	if base == nil && override == nil {
		return nil
	}
	if override == nil {
		override = &SlideStyles{}
	}
	if base == nil {
		base = &SlideStyles{}
	}
	out := &SlideStyles{
		H1:         MergeTextStyle(base.H1, override.H1),
		H2:         MergeTextStyle(base.H2, override.H2),
		H3:         MergeTextStyle(base.H3, override.H3),
		H4:         MergeTextStyle(base.H4, override.H4),
		Paragraphs: MergeTextStyle(base.Paragraphs, override.Paragraphs),
		Bullets:    MergeTextStyle(base.Bullets, override.Bullets),
		Code:       MergeTextStyle(base.Code, override.Code),
	}
	if len(base.Fonts) > 0 || len(override.Fonts) > 0 {
		out.Fonts = make(map[string]*FontVariant)
		for k, v := range base.Fonts {
			out.Fonts[k] = v
		}
		for k, v := range override.Fonts {
			out.Fonts[k] = v
		}
	}
	return out
}

// ApplyBaseColor fills the document-level fallback text color into every
// style bucket that does not already carry an explicit color. It never
// overwrites an explicit color.
func (s *SlideStyles) ApplyBaseColor(color string) *SlideStyles {
	if color == "" {
		return s
	}
	if s == nil {
		s = &SlideStyles{}
	}
	fill := func(ts *TextStyle) *TextStyle {
		if ts == nil {
			return &TextStyle{Color: color}
		}
		if ts.Color == "" {
			cp := *ts
			cp.Color = color
			return &cp
		}
		return ts
	}
	out := *s
	out.H1 = fill(s.H1)
	out.H2 = fill(s.H2)
	out.H3 = fill(s.H3)
	out.H4 = fill(s.H4)
	out.Paragraphs = fill(s.Paragraphs)
	out.Bullets = fill(s.Bullets)
	out.Code = fill(s.Code)
	return &out
}
