package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/deckmd/deckmd/internal/domain/entities"
)

var (
	hexColorRe  = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	rgbColorRe  = regexp.MustCompile(`^rgb\(\s*(-?\d+)\s*,\s*(-?\d+)\s*,\s*(-?\d+)\s*\)$`)
	rgbaColorRe = regexp.MustCompile(`^rgba\(\s*(-?\d+)\s*,\s*(-?\d+)\s*,\s*(-?\d+)\s*,\s*(-?[\d.]+)\s*\)$`)
)

// NormalizeColor canonicalizes a color string: hex shorthand is expanded
// (#abc -> #aabbcc), hex is lowercased, rgb() converts to hex with channels
// clamped to [0,255], rgba() stays rgba with clamped channels and alpha.
// Unrecognized values pass through unchanged. The function is idempotent.
func NormalizeColor(s string) string {
	c := strings.TrimSpace(s)

	if m := hexColorRe.FindStringSubmatch(c); m != nil {
		hex := strings.ToLower(m[1])
		if len(hex) == 3 {
			hex = strings.Repeat(string(hex[0]), 2) +
				strings.Repeat(string(hex[1]), 2) +
				strings.Repeat(string(hex[2]), 2)
		}
		return "#" + hex
	}

	if m := rgbColorRe.FindStringSubmatch(c); m != nil {
		r := clampChannel(m[1])
		g := clampChannel(m[2])
		b := clampChannel(m[3])
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}

	if m := rgbaColorRe.FindStringSubmatch(c); m != nil {
		r := clampChannel(m[1])
		g := clampChannel(m[2])
		b := clampChannel(m[3])
		a, err := strconv.ParseFloat(m[4], 64)
		if err != nil {
			a = 1
		}
		a = clampFloat(a, 0, 1)
		return fmt.Sprintf("rgba(%d,%d,%d,%s)", r, g, b, formatAlpha(a))
	}

	return s
}

// IsColor reports whether s normalizes to a recognized color form.
func IsColor(s string) bool {
	c := strings.TrimSpace(s)
	return hexColorRe.MatchString(c) || rgbColorRe.MatchString(c) ||
		rgbaColorRe.MatchString(c) || strings.HasPrefix(c, "rgba(")
}

func clampChannel(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func formatAlpha(a float64) string {
	return strconv.FormatFloat(a, 'g', -1, 64)
}

// ParseGradient parses the gradient shorthand "color:pos%,color:pos%@angle"
// into ordered stops with positions in [0,1] plus an angle in degrees.
// Stops with an unparsable position are dropped; fewer than two surviving
// stops yields nil. A missing @angle defaults to 0.
func ParseGradient(s string) *entities.Gradient {
	body := strings.TrimSpace(s)
	if body == "" {
		return nil
	}

	angle := 0.0
	if at := strings.LastIndex(body, "@"); at >= 0 {
		a, err := strconv.ParseFloat(strings.TrimSpace(body[at+1:]), 64)
		if err != nil {
			return nil
		}
		angle = a
		body = body[:at]
	}

	var stops []entities.GradientStop
	for _, part := range strings.Split(body, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx := strings.LastIndex(part, ":")
		if idx <= 0 {
			continue
		}
		color := NormalizeColor(part[:idx])
		posStr := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(part[idx+1:]), "%"))
		pos, err := strconv.ParseFloat(posStr, 64)
		if err != nil {
			continue
		}
		stops = append(stops, entities.GradientStop{
			Color:    color,
			Position: clampFloat(pos/100, 0, 1),
		})
	}

	if len(stops) < 2 {
		return nil
	}
	return &entities.Gradient{Stops: stops, Angle: angle}
}
