package parser

import (
	"log"
	"regexp"
	"strconv"
	"strings"
)

// Column layout constants, in canvas pixels.
const (
	canvasWidth    = 1920.0
	maxColumnGap   = 200.0
	minColumnWidth = 100.0
	maxColumns     = 4
)

var widthEntryRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)(fr|%|px)?$`)

// parseColumnGap parses the gap attribute, clamped to [0, maxColumnGap].
func parseColumnGap(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
	if err != nil {
		log.Printf("warning: ignoring non-numeric column gap %q", s)
		return 0
	}
	return clampFloat(v, 0, maxColumnGap)
}

// resolveColumnWidths resolves a "/"-separated width attribute against the
// canvas. Entries are <n>fr (fractions of the space left after fixed
// entries), <n>% (of the gap-adjusted available width), or <n>[px]
// (absolute). Any inconsistency - entry count mismatch, unparsable entry,
// fixed entries exhausting the canvas, or a resolved width below the
// minimum - discards the whole attribute and columns render as an even
// split (nil result). Never a partial result.
func resolveColumnWidths(attr string, gap float64, cells int) []float64 {
	if attr == "" {
		return nil
	}
	entries := strings.Split(attr, "/")
	if len(entries) != cells {
		log.Printf("warning: %d width entries for %d columns, using even split", len(entries), cells)
		return nil
	}

	available := canvasWidth - gap*float64(cells-1)

	type widthEntry struct {
		value float64
		unit  string
	}
	parsed := make([]widthEntry, 0, len(entries))
	frSum := 0.0
	fixed := 0.0
	for _, raw := range entries {
		m := widthEntryRe.FindStringSubmatch(strings.TrimSpace(raw))
		if m == nil {
			log.Printf("warning: unparsable column width %q, using even split", raw)
			return nil
		}
		v, _ := strconv.ParseFloat(m[1], 64)
		unit := m[2]
		if unit == "" {
			unit = "px"
		}
		switch unit {
		case "fr":
			frSum += v
		case "%":
			fixed += available * v / 100
		case "px":
			fixed += v
		}
		parsed = append(parsed, widthEntry{value: v, unit: unit})
	}

	remaining := available - fixed
	if frSum > 0 && remaining <= 0 {
		log.Printf("warning: fixed column widths exhaust the canvas, using even split")
		return nil
	}

	widths := make([]float64, 0, len(parsed))
	for _, e := range parsed {
		var w float64
		switch e.unit {
		case "fr":
			w = remaining * e.value / frSum
		case "%":
			w = available * e.value / 100
		case "px":
			w = e.value
		}
		if w < minColumnWidth {
			log.Printf("warning: resolved column width %.0f below minimum %.0f, using even split", w, minColumnWidth)
			return nil
		}
		widths = append(widths, w)
	}
	return widths
}
