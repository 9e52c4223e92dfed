package parser

import (
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/deckmd/deckmd/internal/domain/entities"
)

// Directive blocks are extracted in a pre-pass over the raw document text.
// Each matched block is replaced by a unique placeholder line and its parsed
// payload recorded in a side table keyed by the placeholder index. Indices
// are threaded explicitly through startIndex so recursive column-cell
// extraction never collides with the outer document pass.
//
// Known limitation: user content that happens to contain a literal
// placeholder line will be resolved as if it were extracted; there is no
// escaping mechanism.

const placeholderPrefix = "DECKMD"

const (
	directiveColumns = "columns"
	directiveFigma   = "figma"
	directiveCallout = "callout"
)

var (
	placeholderRe   = regexp.MustCompile(`^` + placeholderPrefix + `_(columns|figma|callout)_(\d+)_PLACEHOLDER$`)
	columnsOpenRe   = regexp.MustCompile(`^:::columns(?:\s+(.*))?$`)
	figmaOpenRe     = regexp.MustCompile(`^:::figma\s*$`)
	calloutOpenRe   = regexp.MustCompile(`^:::(note|tip|warning|caution)\s*$`)
	innerOpenRe     = regexp.MustCompile(`^:::(figma|note|tip|warning|caution)\b`)
	codeFenceOpenRe = regexp.MustCompile("^(```|~~~)")
)

func placeholderLine(kind string, n int) string {
	return fmt.Sprintf("%s_%s_%d_PLACEHOLDER", placeholderPrefix, kind, n)
}

// matchPlaceholder returns the directive kind and index encoded in a
// placeholder line, or ok=false.
func matchPlaceholder(s string) (kind string, index int, ok bool) {
	m := placeholderRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}
	return m[1], n, true
}

// ColumnsPayload is the side-table entry for one extracted columns block.
type ColumnsPayload struct {
	Index  int
	Gap    float64
	Widths []float64
	Cells  []string
}

// FigmaPayload is the side-table entry for one extracted figma block.
type FigmaPayload struct {
	Index     int
	Link      string
	NodeID    string
	X, Y      *float64
	W, H      *float64
	Overrides []FigmaOverrideRaw
}

// FigmaOverrideRaw is a named text override before span derivation.
type FigmaOverrideRaw struct {
	Name string
	Text string
}

// CalloutPayload is the side-table entry for one extracted callout block.
type CalloutPayload struct {
	Index int
	Kind  entities.CalloutKind
	Body  string
}

// extractColumns replaces top-level :::columns blocks with placeholders.
// While scanning for the closing fence it tracks the nesting depth of other
// directive kinds so an inner block's ::: is not mistaken for the columns
// closer. Blocks with fewer than 2 or more than maxColumns cells fall back
// to their linear content.
func extractColumns(text string, startIndex int) (string, []ColumnsPayload) {
	lines := strings.Split(text, "\n")
	var out []string
	var payloads []ColumnsPayload
	next := startIndex
	inCode := false
	var codeFence string

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if inCode {
			out = append(out, line)
			if strings.HasPrefix(trimmed, codeFence) {
				inCode = false
			}
			continue
		}
		if m := codeFenceOpenRe.FindStringSubmatch(trimmed); m != nil {
			inCode = true
			codeFence = m[1]
			out = append(out, line)
			continue
		}

		m := columnsOpenRe.FindStringSubmatch(trimmed)
		if m == nil {
			out = append(out, line)
			continue
		}

		end, intro, cells, ok := scanColumnsBlock(lines, i+1)
		if !ok {
			log.Printf("warning: unclosed :::columns block at line %d", i+1)
			out = append(out, line)
			continue
		}

		// Lines before the first :::column delimiter stay in the document.
		out = append(out, intro...)

		if len(cells) < 2 || len(cells) > maxColumns {
			log.Printf("warning: columns block with %d cells (want 2-%d), keeping content inline", len(cells), maxColumns)
			for _, cell := range cells {
				out = append(out, strings.Split(cell, "\n")...)
			}
			i = end
			continue
		}

		attrs := parseDirectiveAttrs(m[1])
		gap := parseColumnGap(attrs["gap"])
		widths := resolveColumnWidths(attrs["width"], gap, len(cells))

		payloads = append(payloads, ColumnsPayload{
			Index:  next,
			Gap:    gap,
			Widths: widths,
			Cells:  cells,
		})
		out = append(out, placeholderLine(directiveColumns, next))
		next++
		i = end
	}

	return strings.Join(out, "\n"), payloads
}

// scanColumnsBlock scans from start for the block's closing ::: fence,
// splitting cell content on :::column delimiters. Inner directive openings
// increase depth so their closers are not taken for the columns closer.
// Lines before the first delimiter are returned as intro so no input line
// is lost.
func scanColumnsBlock(lines []string, start int) (end int, intro []string, cells []string, ok bool) {
	depth := 0
	inCode := false
	var codeFence string
	var current []string
	started := false

	flush := func() {
		if started {
			cells = append(cells, strings.Join(current, "\n"))
		} else {
			intro = current
			started = true
		}
		current = nil
	}

	for i := start; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])

		if inCode {
			current = append(current, lines[i])
			if strings.HasPrefix(trimmed, codeFence) {
				inCode = false
			}
			continue
		}
		if m := codeFenceOpenRe.FindStringSubmatch(trimmed); m != nil {
			inCode = true
			codeFence = m[1]
			current = append(current, lines[i])
			continue
		}

		switch {
		case trimmed == ":::" && depth == 0:
			flush()
			return i, intro, cells, true
		case trimmed == ":::":
			depth--
			current = append(current, lines[i])
		case trimmed == ":::column" && depth == 0:
			flush()
		case innerOpenRe.MatchString(trimmed):
			depth++
			current = append(current, lines[i])
		default:
			current = append(current, lines[i])
		}
	}
	return 0, nil, nil, false
}

// extractFigma replaces top-level :::figma blocks with placeholders. A
// block missing its link, carrying a malformed URL, or pointing at a
// non-allow-listed hostname is dropped whole.
func extractFigma(text string, startIndex int, allowedHosts []string) (string, []FigmaPayload) {
	lines := strings.Split(text, "\n")
	var out []string
	var payloads []FigmaPayload
	next := startIndex
	inCode := false
	var codeFence string

	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])

		if inCode {
			out = append(out, lines[i])
			if strings.HasPrefix(trimmed, codeFence) {
				inCode = false
			}
			continue
		}
		if m := codeFenceOpenRe.FindStringSubmatch(trimmed); m != nil {
			inCode = true
			codeFence = m[1]
			out = append(out, lines[i])
			continue
		}

		if !figmaOpenRe.MatchString(trimmed) {
			out = append(out, lines[i])
			continue
		}

		end, body, ok := scanDirectiveBody(lines, i+1)
		if !ok {
			log.Printf("warning: unclosed :::figma block at line %d", i+1)
			out = append(out, lines[i])
			continue
		}

		payload, err := parseFigmaBody(body, allowedHosts)
		if err != nil {
			log.Printf("warning: dropping figma block: %v", err)
			i = end
			continue
		}
		payload.Index = next
		payloads = append(payloads, payload)
		out = append(out, placeholderLine(directiveFigma, next))
		next++
		i = end
	}

	return strings.Join(out, "\n"), payloads
}

// extractCallouts replaces top-level :::note/:::tip/:::warning/:::caution
// blocks with placeholders.
func extractCallouts(text string, startIndex int) (string, []CalloutPayload) {
	lines := strings.Split(text, "\n")
	var out []string
	var payloads []CalloutPayload
	next := startIndex
	inCode := false
	var codeFence string

	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])

		if inCode {
			out = append(out, lines[i])
			if strings.HasPrefix(trimmed, codeFence) {
				inCode = false
			}
			continue
		}
		if m := codeFenceOpenRe.FindStringSubmatch(trimmed); m != nil {
			inCode = true
			codeFence = m[1]
			out = append(out, lines[i])
			continue
		}

		m := calloutOpenRe.FindStringSubmatch(trimmed)
		if m == nil {
			out = append(out, lines[i])
			continue
		}

		end, body, ok := scanDirectiveBody(lines, i+1)
		if !ok {
			log.Printf("warning: unclosed :::%s block at line %d", m[1], i+1)
			out = append(out, lines[i])
			continue
		}

		payloads = append(payloads, CalloutPayload{
			Index: next,
			Kind:  entities.CalloutKind(m[1]),
			Body:  strings.Join(body, "\n"),
		})
		out = append(out, placeholderLine(directiveCallout, next))
		next++
		i = end
	}

	return strings.Join(out, "\n"), payloads
}

// scanDirectiveBody collects lines until the first bare ::: closer.
func scanDirectiveBody(lines []string, start int) (end int, body []string, ok bool) {
	for i := start; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == ":::" {
			return i, body, true
		}
		body = append(body, lines[i])
	}
	return 0, nil, false
}

// parseDirectiveAttrs splits "gap=24 width=1fr/2fr" into a key/value map.
func parseDirectiveAttrs(s string) map[string]string {
	attrs := make(map[string]string)
	for _, field := range strings.Fields(s) {
		k, v, found := strings.Cut(field, "=")
		if !found || k == "" {
			continue
		}
		attrs[k] = v
	}
	return attrs
}

// parseFigmaBody parses the key=value body of a figma block.
func parseFigmaBody(body []string, allowedHosts []string) (FigmaPayload, error) {
	var p FigmaPayload
	for _, line := range body {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if name, isOverride := strings.CutPrefix(key, "text."); isOverride {
			if name != "" && value != "" {
				p.Overrides = append(p.Overrides, FigmaOverrideRaw{Name: name, Text: value})
			}
			continue
		}

		switch key {
		case "link":
			p.Link = value
		case "x":
			p.X = parseOptFloat(value)
		case "y":
			p.Y = parseOptFloat(value)
		case "w", "width":
			p.W = parseOptFloat(value)
		case "h", "height":
			p.H = parseOptFloat(value)
		}
	}

	if p.Link == "" {
		return FigmaPayload{}, fmt.Errorf("missing link property")
	}
	nodeID, err := validateFigmaLink(p.Link, allowedHosts)
	if err != nil {
		return FigmaPayload{}, err
	}
	p.NodeID = nodeID
	return p, nil
}

// validateFigmaLink checks the URL scheme and allow-listed hostname suffix
// and extracts the opaque node identifier. It fails closed.
func validateFigmaLink(link string, allowedHosts []string) (string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("malformed link %q: %w", link, err)
	}
	if u.Scheme != "https" {
		return "", fmt.Errorf("link %q must use https", link)
	}
	host := strings.ToLower(u.Hostname())
	allowed := false
	for _, suffix := range allowedHosts {
		if host == suffix || strings.HasSuffix(host, "."+suffix) {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", fmt.Errorf("hostname %q is not allow-listed", host)
	}
	return u.Query().Get("node-id"), nil
}

func parseOptFloat(s string) *float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.Printf("warning: ignoring non-numeric directive value %q", s)
		return nil
	}
	return &v
}
