package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var imageAltTokenRe = regexp.MustCompile(`^(w|h|x|y):(\d+)$`)

// imageOverrides holds size/position overrides parsed out of an image's
// alt text.
type imageOverrides struct {
	width  *int
	height *int
	x      *int
	y      *int
}

// parseImageAlt extracts w:/h:/x:/y: annotation tokens from an alt string,
// returning the cleaned alt text and the parsed overrides. Unrecognized
// tokens stay part of the alt text.
func parseImageAlt(alt string) (string, imageOverrides) {
	var ov imageOverrides
	var kept []string
	for _, field := range strings.Fields(alt) {
		m := imageAltTokenRe.FindStringSubmatch(field)
		if m == nil {
			kept = append(kept, field)
			continue
		}
		n, err := strconv.Atoi(m[2])
		if err != nil || n < 0 {
			kept = append(kept, field)
			continue
		}
		switch m[1] {
		case "w":
			ov.width = &n
		case "h":
			ov.height = &n
		case "x":
			ov.x = &n
		case "y":
			ov.y = &n
		}
	}
	return strings.Join(kept, " "), ov
}
