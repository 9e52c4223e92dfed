package entities

// Transition timing bounds in seconds.
const (
	MinTransitionDuration = 0.01
	MaxTransitionDuration = 10.0
	MinTransitionDelay    = 0.0
	MaxTransitionDelay    = 30.0
)

// SlideNumberConfig controls per-slide page numbering.
type SlideNumberConfig struct {
	Enabled  bool   `json:"enabled"`
	Position string `json:"position,omitempty"`
	Size     *int   `json:"size,omitempty"`
	Color    string `json:"color,omitempty"`
}

// TitlePrefixConfig controls the title prefix. Disabled is a tri-state
// escape hatch: an unset config inherits the document default, while
// Disabled forces the prefix off even when a default exists.
type TitlePrefixConfig struct {
	Text     string `json:"text,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

// SlideTransitionConfig controls the slide entry transition.
type SlideTransitionConfig struct {
	Style    string   `json:"style,omitempty"`
	Duration *float64 `json:"duration,omitempty"`
	Delay    *float64 `json:"delay,omitempty"`
	Curve    string   `json:"curve,omitempty"`
}

// SlideConfig is the partial configuration parsed from one front-matter
// block. Nil/empty fields are unset and inherit through the cascade.
// Color and Cover are only meaningful at document level.
type SlideConfig struct {
	Background  *SlideBackground       `json:"background,omitempty"`
	Styles      *SlideStyles           `json:"styles,omitempty"`
	Color       string                 `json:"color,omitempty"`
	SlideNumber *SlideNumberConfig     `json:"slideNumber,omitempty"`
	TitlePrefix *TitlePrefixConfig     `json:"titlePrefix,omitempty"`
	Align       string                 `json:"align,omitempty"`
	VAlign      string                 `json:"valign,omitempty"`
	Transition  *SlideTransitionConfig `json:"transition,omitempty"`
	Cover       *bool                  `json:"cover,omitempty"`
}

// MergeSlideConfig merges a per-slide override onto the document default.
// The merge is shallow and right-biased per leaf field: a slide value wins
// where defined, otherwise the default applies, otherwise the field stays
// unset. Styles merge recursively so partial overrides inherit sibling
// leaves. Two nil inputs yield nil: no config anywhere in the cascade.
func MergeSlideConfig(base, override *SlideConfig) *SlideConfig {
	if base == nil && override == nil {
		return nil
	}
	if base == nil {
		base = &SlideConfig{}
	}
	if override == nil {
		override = &SlideConfig{}
	}
	out := &SlideConfig{
		Background:  base.Background,
		Styles:      MergeStyles(base.Styles, override.Styles),
		Color:       base.Color,
		SlideNumber: mergeSlideNumber(base.SlideNumber, override.SlideNumber),
		TitlePrefix: mergeTitlePrefix(base.TitlePrefix, override.TitlePrefix),
		Align:       base.Align,
		VAlign:      base.VAlign,
		Transition:  mergeTransition(base.Transition, override.Transition),
		Cover:       base.Cover,
	}
	if override.Background != nil {
		out.Background = override.Background
	}
	if override.Color != "" {
		out.Color = override.Color
	}
	if override.Align != "" {
		out.Align = override.Align
	}
	if override.VAlign != "" {
		out.VAlign = override.VAlign
	}
	if override.Cover != nil {
		out.Cover = override.Cover
	}
	return out
}

func mergeSlideNumber(base, override *SlideNumberConfig) *SlideNumberConfig {
	if base == nil && override == nil {
		return nil
	}
	out := &SlideNumberConfig{}
	if base != nil {
		*out = *base
	}
	if override != nil {
		out.Enabled = override.Enabled
		if override.Position != "" {
			out.Position = override.Position
		}
		if override.Size != nil {
			out.Size = override.Size
		}
		if override.Color != "" {
			out.Color = override.Color
		}
	}
	return out
}

// A slide-level prefix, including an explicit disable, replaces the
// document default wholesale.
func mergeTitlePrefix(base, override *TitlePrefixConfig) *TitlePrefixConfig {
	if override != nil {
		return override
	}
	return base
}

func mergeTransition(base, override *SlideTransitionConfig) *SlideTransitionConfig {
	if base == nil && override == nil {
		return nil
	}
	out := &SlideTransitionConfig{}
	if base != nil {
		*out = *base
	}
	if override != nil {
		if override.Style != "" {
			out.Style = override.Style
		}
		if override.Duration != nil {
			out.Duration = override.Duration
		}
		if override.Delay != nil {
			out.Delay = override.Delay
		}
		if override.Curve != "" {
			out.Curve = override.Curve
		}
	}
	return out
}

// ValidAlign reports whether s is a known horizontal alignment.
func ValidAlign(s string) bool {
	switch s {
	case "left", "center", "right":
		return true
	}
	return false
}

// ValidVAlign reports whether s is a known vertical alignment.
func ValidVAlign(s string) bool {
	switch s {
	case "top", "middle", "bottom":
		return true
	}
	return false
}

// ValidSlideNumberPosition reports whether s is a known corner position.
func ValidSlideNumberPosition(s string) bool {
	switch s {
	case "top-left", "top-right", "bottom-left", "bottom-right":
		return true
	}
	return false
}

// ValidTransitionStyle reports whether s is a known transition style.
func ValidTransitionStyle(s string) bool {
	switch s {
	case "none", "fade", "slide", "push", "dissolve", "smart":
		return true
	}
	return false
}

// ValidTransitionCurve reports whether s is a known easing curve.
func ValidTransitionCurve(s string) bool {
	switch s {
	case "linear", "ease-in", "ease-out", "ease-in-out", "gentle", "quick", "bouncy", "slow":
		return true
	}
	return false
}
