package parser

import (
	"log"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/deckmd/deckmd/internal/domain/entities"
)

// extractFrontmatterBlock splits a text chunk into its leading front-matter
// YAML and the remaining body. Both the fenced form (---/---) and the
// implicit form (un-fenced YAML key lines terminated by a bare ---) are
// recognized. Returns ("", chunk) when no front-matter is present.
func extractFrontmatterBlock(chunk string) (yamlText, body string) {
	lines := strings.Split(chunk, "\n")

	// Skip leading blank lines.
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	if start >= len(lines) {
		return "", chunk
	}

	if strings.TrimSpace(lines[start]) == "---" {
		for i := start + 1; i < len(lines); i++ {
			if strings.TrimSpace(lines[i]) == "---" {
				return strings.Join(lines[start+1:i], "\n"),
					strings.Join(lines[i+1:], "\n")
			}
		}
		// No closing fence: not front-matter.
		return "", chunk
	}

	for i := start; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			if looksLikeYAML(lines[start:i]) {
				return strings.Join(lines[start:i], "\n"),
					strings.Join(lines[i+1:], "\n")
			}
			return "", chunk
		}
	}
	return "", chunk
}

// Loose front-matter shapes. Polymorphic fields decode as any and are
// normalized afterwards; validation is clamp-or-drop, never an error that
// aborts the parse.
type rawConfig struct {
	Background  any                `yaml:"background"`
	Styles      *rawStyles         `yaml:"styles"`
	Style       *rawStyles         `yaml:"style"`
	Fonts       map[string]rawFont `yaml:"fonts"`
	Color       string             `yaml:"color"`
	SlideNumber any                `yaml:"slideNumber"`
	TitlePrefix any                `yaml:"titlePrefix"`
	Align       string             `yaml:"align"`
	VAlign      string             `yaml:"valign"`
	Transition  *rawTransition     `yaml:"transition"`
	Cover       *bool              `yaml:"cover"`
}

type rawStyles struct {
	Headings   map[string]rawTextStyle `yaml:"headings"`
	Paragraphs *rawTextStyle           `yaml:"paragraphs"`
	Bullets    *rawTextStyle           `yaml:"bullets"`
	Code       *rawTextStyle           `yaml:"code"`
}

type rawTextStyle struct {
	Size    *int     `yaml:"size"`
	Color   string   `yaml:"color"`
	X       *float64 `yaml:"x"`
	Y       *float64 `yaml:"y"`
	Spacing *float64 `yaml:"spacing"`
}

type rawFont struct {
	Family     string `yaml:"family"`
	Style      string `yaml:"style"`
	Bold       string `yaml:"bold"`
	Italic     string `yaml:"italic"`
	BoldItalic string `yaml:"boldItalic"`
}

type rawTransition struct {
	Style    string   `yaml:"style"`
	Duration *float64 `yaml:"duration"`
	Delay    *float64 `yaml:"delay"`
	Curve    string   `yaml:"curve"`
}

// parseSlideConfig parses one front-matter YAML block into a validated
// partial SlideConfig. Invalid YAML yields nil (config treated as absent).
func (p *Parser) parseSlideConfig(yamlText string) *entities.SlideConfig {
	if strings.TrimSpace(yamlText) == "" {
		return nil
	}
	var raw rawConfig
	if err := yaml.Unmarshal([]byte(yamlText), &raw); err != nil {
		log.Printf("warning: ignoring invalid front-matter: %v", err)
		return nil
	}

	cfg := &entities.SlideConfig{
		Color:       normalizeConfigColor(raw.Color),
		SlideNumber: normalizeSlideNumber(raw.SlideNumber),
		TitlePrefix: normalizeTitlePrefix(raw.TitlePrefix),
		Transition:  normalizeTransition(raw.Transition),
		Cover:       raw.Cover,
	}

	styles := raw.Styles
	if styles == nil {
		styles = raw.Style
	}
	cfg.Styles = normalizeStyles(styles, raw.Fonts)
	cfg.Background = p.normalizeBackground(raw.Background)

	if raw.Align != "" {
		if entities.ValidAlign(raw.Align) {
			cfg.Align = raw.Align
		} else {
			log.Printf("warning: unknown align %q, ignoring", raw.Align)
		}
	}
	if raw.VAlign != "" {
		if entities.ValidVAlign(raw.VAlign) {
			cfg.VAlign = raw.VAlign
		} else {
			log.Printf("warning: unknown valign %q, ignoring", raw.VAlign)
		}
	}

	return cfg
}

func normalizeConfigColor(s string) string {
	if s == "" {
		return ""
	}
	return NormalizeColor(s)
}

func normalizeStyles(raw *rawStyles, fonts map[string]rawFont) *entities.SlideStyles {
	if raw == nil && len(fonts) == 0 {
		return nil
	}
	out := &entities.SlideStyles{}
	if raw != nil {
		out.H1 = normalizeTextStyle(raw.Headings["h1"])
		out.H2 = normalizeTextStyle(raw.Headings["h2"])
		out.H3 = normalizeTextStyle(raw.Headings["h3"])
		out.H4 = normalizeTextStyle(raw.Headings["h4"])
		if raw.Paragraphs != nil {
			out.Paragraphs = normalizeTextStyle(*raw.Paragraphs)
		}
		if raw.Bullets != nil {
			out.Bullets = normalizeTextStyle(*raw.Bullets)
		}
		if raw.Code != nil {
			out.Code = normalizeTextStyle(*raw.Code)
		}
	}
	if len(fonts) > 0 {
		out.Fonts = make(map[string]*entities.FontVariant, len(fonts))
		for name, f := range fonts {
			if f.Family == "" {
				log.Printf("warning: font for %q missing family, ignoring", name)
				continue
			}
			out.Fonts[name] = &entities.FontVariant{
				Family:     f.Family,
				Style:      f.Style,
				Bold:       f.Bold,
				Italic:     f.Italic,
				BoldItalic: f.BoldItalic,
			}
		}
		if len(out.Fonts) == 0 {
			out.Fonts = nil
		}
	}
	if out.H1 == nil && out.H2 == nil && out.H3 == nil && out.H4 == nil &&
		out.Paragraphs == nil && out.Bullets == nil && out.Code == nil &&
		out.Fonts == nil {
		return nil
	}
	return out
}

func normalizeTextStyle(raw rawTextStyle) *entities.TextStyle {
	out := &entities.TextStyle{
		Color:   normalizeConfigColor(raw.Color),
		X:       raw.X,
		Y:       raw.Y,
		Spacing: raw.Spacing,
	}
	if raw.Size != nil {
		if *raw.Size >= entities.MinFontSize && *raw.Size <= entities.MaxFontSize {
			out.Size = raw.Size
		} else {
			log.Printf("warning: font size %d outside [%d,%d], dropping", *raw.Size, entities.MinFontSize, entities.MaxFontSize)
		}
	}
	if out.Size == nil && out.Color == "" && out.X == nil && out.Y == nil && out.Spacing == nil {
		return nil
	}
	return out
}

func normalizeSlideNumber(raw any) *entities.SlideNumberConfig {
	switch v := raw.(type) {
	case nil:
		return nil
	case bool:
		return &entities.SlideNumberConfig{Enabled: v}
	case map[string]any:
		out := &entities.SlideNumberConfig{Enabled: true}
		if enabled, ok := v["enabled"].(bool); ok {
			out.Enabled = enabled
		}
		if pos, ok := v["position"].(string); ok {
			if entities.ValidSlideNumberPosition(pos) {
				out.Position = pos
			} else {
				log.Printf("warning: unknown slide number position %q, ignoring", pos)
			}
		}
		if size, ok := toInt(v["size"]); ok {
			if size >= entities.MinFontSize && size <= entities.MaxFontSize {
				out.Size = &size
			} else {
				log.Printf("warning: slide number size %d outside [%d,%d], dropping", size, entities.MinFontSize, entities.MaxFontSize)
			}
		}
		if color, ok := v["color"].(string); ok {
			out.Color = NormalizeColor(color)
		}
		return out
	default:
		log.Printf("warning: unrecognized slideNumber value %v, ignoring", raw)
		return nil
	}
}

func normalizeTitlePrefix(raw any) *entities.TitlePrefixConfig {
	switch v := raw.(type) {
	case nil:
		return nil
	case bool:
		if !v {
			return &entities.TitlePrefixConfig{Disabled: true}
		}
		return nil
	case string:
		if v == "" {
			return nil
		}
		return &entities.TitlePrefixConfig{Text: v}
	case map[string]any:
		out := &entities.TitlePrefixConfig{}
		if text, ok := v["text"].(string); ok {
			out.Text = text
		}
		if enabled, ok := v["enabled"].(bool); ok && !enabled {
			out.Disabled = true
		}
		if out.Text == "" && !out.Disabled {
			return nil
		}
		return out
	default:
		log.Printf("warning: unrecognized titlePrefix value %v, ignoring", raw)
		return nil
	}
}

func normalizeTransition(raw *rawTransition) *entities.SlideTransitionConfig {
	if raw == nil {
		return nil
	}
	out := &entities.SlideTransitionConfig{}
	if raw.Style != "" {
		if entities.ValidTransitionStyle(raw.Style) {
			out.Style = raw.Style
		} else {
			log.Printf("warning: unknown transition style %q, ignoring", raw.Style)
		}
	}
	if raw.Duration != nil {
		if *raw.Duration >= entities.MinTransitionDuration && *raw.Duration <= entities.MaxTransitionDuration {
			out.Duration = raw.Duration
		} else {
			log.Printf("warning: transition duration %.3fs outside range, dropping", *raw.Duration)
		}
	}
	if raw.Delay != nil {
		if *raw.Delay >= entities.MinTransitionDelay && *raw.Delay <= entities.MaxTransitionDelay {
			out.Delay = raw.Delay
		} else {
			log.Printf("warning: transition delay %.3fs outside range, dropping", *raw.Delay)
		}
	}
	if raw.Curve != "" {
		if entities.ValidTransitionCurve(raw.Curve) {
			out.Curve = raw.Curve
		} else {
			log.Printf("warning: unknown transition curve %q, ignoring", raw.Curve)
		}
	}
	if *out == (entities.SlideTransitionConfig{}) {
		return nil
	}
	return out
}

// normalizeBackground resolves the background field. A string uses the
// unified shorthand; a mapping may combine one background layer with a
// component overlay. When a mapping specifies several layers, priority is
// template > gradient > color > image, and component always overlays.
func (p *Parser) normalizeBackground(raw any) *entities.SlideBackground {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		return p.backgroundFromShorthand(v)
	case map[string]any:
		out := &entities.SlideBackground{}
		if comp, ok := v["component"]; ok {
			out.Component = normalizeComponent(comp)
		}
		switch {
		case stringValue(v["template"]) != "":
			out.Type = entities.BackgroundTypeTemplate
			out.Template = stringValue(v["template"])
		case v["gradient"] != nil:
			if g := gradientFromValue(v["gradient"]); g != nil {
				out.Type = entities.BackgroundTypeGradient
				out.Gradient = g
			}
		case stringValue(v["color"]) != "":
			out.Type = entities.BackgroundTypeSolid
			out.Color = NormalizeColor(stringValue(v["color"]))
		case stringValue(v["image"]) != "":
			out.Type = entities.BackgroundTypeImage
			out.Image = p.backgroundImage(stringValue(v["image"]))
		}
		if out.Type == "" && out.Component == nil {
			return nil
		}
		return out
	default:
		log.Printf("warning: unrecognized background value %v, ignoring", raw)
		return nil
	}
}

// backgroundFromShorthand interprets a bare string: a gradient shorthand,
// then a color, then an image URL/path, then a named template style.
func (p *Parser) backgroundFromShorthand(s string) *entities.SlideBackground {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if g := ParseGradient(s); g != nil {
		return &entities.SlideBackground{Type: entities.BackgroundTypeGradient, Gradient: g}
	}
	if IsColor(s) {
		return &entities.SlideBackground{Type: entities.BackgroundTypeSolid, Color: NormalizeColor(s)}
	}
	if looksLikeImageRef(s) {
		return &entities.SlideBackground{Type: entities.BackgroundTypeImage, Image: p.backgroundImage(s)}
	}
	return &entities.SlideBackground{Type: entities.BackgroundTypeTemplate, Template: s}
}

func looksLikeImageRef(s string) bool {
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return true
	}
	lower := strings.ToLower(s)
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".gif"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// backgroundImage builds the image layer, embedding local file bytes when
// the resolver can read them and degrading to a bare reference otherwise.
func (p *Parser) backgroundImage(ref string) *entities.BackgroundImage {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return &entities.BackgroundImage{URL: ref, Source: entities.ImageSourceRemote}
	}
	out := &entities.BackgroundImage{URL: ref, Source: entities.ImageSourceLocal}
	if p.images == nil {
		return out
	}
	res, err := p.images.Resolve(ref)
	if err != nil {
		log.Printf("warning: background image %q: %v", ref, err)
		return out
	}
	out.Data = res.Base64()
	out.MimeType = res.MimeType
	return out
}

func normalizeComponent(raw any) *entities.BackgroundComponent {
	m, ok := raw.(map[string]any)
	if !ok {
		log.Printf("warning: unrecognized background component %v, ignoring", raw)
		return nil
	}
	ref := stringValue(m["ref"])
	if ref == "" {
		ref = stringValue(m["node"])
	}
	if ref == "" {
		log.Printf("warning: background component missing ref, ignoring")
		return nil
	}
	out := &entities.BackgroundComponent{Ref: ref}
	if fit := stringValue(m["fit"]); fit != "" {
		if entities.ValidComponentFit(fit) {
			out.Fit = fit
		} else {
			log.Printf("warning: unknown component fit %q, ignoring", fit)
		}
	}
	if align := stringValue(m["align"]); align != "" {
		if entities.ValidComponentAlign(align) {
			out.Align = align
		} else {
			log.Printf("warning: unknown component align %q, ignoring", align)
		}
	}
	if op, ok := toFloat(m["opacity"]); ok {
		clamped := clampFloat(op, 0, 1)
		out.Opacity = &clamped
	}
	return out
}

func gradientFromValue(raw any) *entities.Gradient {
	s, ok := raw.(string)
	if !ok {
		log.Printf("warning: unrecognized gradient value %v, ignoring", raw)
		return nil
	}
	g := ParseGradient(s)
	if g == nil {
		log.Printf("warning: unparsable gradient %q, ignoring", s)
	}
	return g
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
