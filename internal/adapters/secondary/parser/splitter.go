package parser

import (
	"regexp"
	"strings"
)

var (
	yamlKeyLineRe      = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*:(\s.*)?$`)
	yamlContinuationRe = regexp.MustCompile(`^\s+\S`)
)

// splitSlides segments the directive-processed document (global
// front-matter already stripped) into slide text chunks.
//
// A bare --- line is ambiguous: it closes an open front-matter block, opens
// a per-slide front-matter block when nothing but blank lines came before
// it in the current slide, closes an implicit front-matter block when the
// accumulated lines are all un-fenced YAML key/value pairs, and otherwise
// separates slides. Inside fenced code blocks it is inert.
func splitSlides(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var chunks []string
	var current []string
	inCode := false
	var codeFence string
	inFrontmatter := false

	flush := func() {
		chunk := strings.TrimSpace(strings.Join(current, "\n"))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		current = nil
		inFrontmatter = false
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if inCode {
			current = append(current, line)
			if strings.HasPrefix(trimmed, codeFence) {
				inCode = false
			}
			continue
		}
		if m := codeFenceOpenRe.FindStringSubmatch(trimmed); m != nil && !inFrontmatter {
			inCode = true
			codeFence = m[1]
			current = append(current, line)
			continue
		}

		if trimmed != "---" {
			current = append(current, line)
			continue
		}

		switch {
		case inFrontmatter:
			// Closing fence of an open front-matter block; the block stays
			// in the chunk for the per-slide config parse.
			current = append(current, line)
			inFrontmatter = false
		case allBlank(current):
			// Opening fence of a per-slide front-matter block.
			current = append(current, line)
			inFrontmatter = true
		case looksLikeYAML(current):
			// The accumulated lines are an implicit front-matter block and
			// this --- terminates it.
			current = append(current, line)
		default:
			flush()
		}
	}
	flush()

	return chunks
}

func allBlank(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return false
		}
	}
	return true
}

// looksLikeYAML reports whether every non-blank line is a YAML key line or
// an indented continuation, with at least one key line present.
func looksLikeYAML(lines []string) bool {
	keys := 0
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		switch {
		case yamlKeyLineRe.MatchString(l):
			keys++
		case yamlContinuationRe.MatchString(l):
		default:
			return false
		}
	}
	return keys > 0
}
