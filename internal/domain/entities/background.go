package entities

// BackgroundType discriminates the background layer variants.
type BackgroundType string

// Background layer types.
const (
	BackgroundTypeSolid    BackgroundType = "solid"
	BackgroundTypeGradient BackgroundType = "gradient"
	BackgroundTypeTemplate BackgroundType = "template"
	BackgroundTypeImage    BackgroundType = "image"
)

// SlideBackground is one background layer, optionally combined with an
// independent component overlay. Template, gradient, color and image are
// mutually exclusive layer choices; Component layers on top when present.
type SlideBackground struct {
	Type      BackgroundType       `json:"type,omitempty"`
	Color     string               `json:"color,omitempty"`
	Gradient  *Gradient            `json:"gradient,omitempty"`
	Template  string               `json:"template,omitempty"`
	Image     *BackgroundImage     `json:"image,omitempty"`
	Component *BackgroundComponent `json:"component,omitempty"`
}

// Gradient is an ordered list of color stops plus an angle in degrees.
type Gradient struct {
	Stops []GradientStop `json:"stops"`
	Angle float64        `json:"angle"`
}

// GradientStop pairs a color with a position in [0,1].
type GradientStop struct {
	Color    string  `json:"color"`
	Position float64 `json:"position"`
}

// BackgroundImage is a remote URL or locally-embedded base64 payload.
type BackgroundImage struct {
	URL      string      `json:"url,omitempty"`
	Source   ImageSource `json:"source"`
	Data     string      `json:"data,omitempty"`
	MimeType string      `json:"mimeType,omitempty"`
}

// BackgroundComponent references an external design node overlaid on the
// background layer.
type BackgroundComponent struct {
	Ref     string   `json:"ref"`
	Fit     string   `json:"fit,omitempty"`
	Align   string   `json:"align,omitempty"`
	Opacity *float64 `json:"opacity,omitempty"`
}

// Component fit values.
const (
	ComponentFitFill    = "fill"
	ComponentFitContain = "contain"
	ComponentFitCover   = "cover"
)

// ValidComponentFit reports whether s is a known component fit mode.
func ValidComponentFit(s string) bool {
	switch s {
	case ComponentFitFill, ComponentFitContain, ComponentFitCover:
		return true
	}
	return false
}

// ValidComponentAlign reports whether s is a known component alignment.
func ValidComponentAlign(s string) bool {
	switch s {
	case "top-left", "top", "top-right",
		"left", "center", "right",
		"bottom-left", "bottom", "bottom-right":
		return true
	}
	return false
}
