package ingestion

import (
	"regexp"
	"strings"
)

var (
	multiSpace  = regexp.MustCompile(`\s+`)
	excessBlank = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes line endings, collapses runs of spaces and keeps at
// most one blank line between paragraphs. Bullet indentation is preserved.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u00a0", " ")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := strings.Join(lines, "\n")
	result = excessBlank.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	if isBulletLine(trimmed) {
		indent := len(line) - len(trimmed)
		return strings.Repeat(" ", indent) + trimmed
	}

	return multiSpace.ReplaceAllString(trimmed, " ")
}

func isBulletLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "• ") || strings.HasPrefix(trimmed, "· ")
}

// NormalizeJobDescription cleans a pasted job description. Pasted HTML
// (copied from a job board's page source) is reduced to its text first.
func NormalizeJobDescription(raw string) string {
	if looksLikeHTML(raw) {
		if text, err := HTMLToText(raw); err == nil && text != "" {
			return text
		}
	}
	return CleanText(raw)
}

func looksLikeHTML(s string) bool {
	lower := strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(lower, "<!doctype html") || strings.HasPrefix(lower, "<html") ||
		(strings.HasPrefix(lower, "<") && (strings.Contains(lower, "</p>") || strings.Contains(lower, "</div>") || strings.Contains(lower, "</li>")))
}
