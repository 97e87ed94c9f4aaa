package ingestion

import (
	"regexp"
	"strings"
)

var (
	inlineWhitespace = regexp.MustCompile(`[ \t]+`)
	blankLineRuns    = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes whitespace in topic text so that footprint estimates
// measure content rather than formatting noise. Line structure and list
// markers are kept; runs of blank lines collapse to a single blank line.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankLineRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses inner whitespace. Nested list items keep a two-space
// indent per level so the hierarchy survives.
func cleanLine(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	if strings.TrimSpace(trimmed) == "" {
		return ""
	}
	body := inlineWhitespace.ReplaceAllString(strings.TrimRight(trimmed, " \t"), " ")

	if isListItem(trimmed) {
		depth := indentWidth(line[:len(line)-len(trimmed)]) / 2
		return strings.Repeat("  ", depth) + body
	}
	return body
}

// isListItem reports whether a line starts with a bullet or ordered-list marker
func isListItem(trimmed string) bool {
	for _, marker := range []string{"- ", "* ", "+ ", "• "} {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}
	digits := 0
	for digits < len(trimmed) && trimmed[digits] >= '0' && trimmed[digits] <= '9' {
		digits++
	}
	return digits > 0 && strings.HasPrefix(trimmed[digits:], ". ")
}

// indentWidth counts leading whitespace with tabs as four columns
func indentWidth(indent string) int {
	width := 0
	for _, r := range indent {
		if r == '\t' {
			width += 4
		} else {
			width++
		}
	}
	return width
}
