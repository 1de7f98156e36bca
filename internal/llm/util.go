package llm

import (
	"encoding/json"
	"strings"
)

// CleanJSONBlock reduces a model reply to the JSON value it carries.
// Markdown fences are removed, then any prose before the first object or
// array and after its closing bracket is dropped. A reply with no
// recognizable JSON value is returned trimmed so the caller's parse error
// shows what the model said.
func CleanJSONBlock(text string) string {
	text = stripFence(strings.TrimSpace(text))
	if text == "" || json.Valid([]byte(text)) {
		return text
	}

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}
	candidate := text[start:]

	var value string
	if candidate[0] == '{' {
		value = extractJSONObject(candidate)
	} else {
		value = extractJSONArray(candidate)
	}
	if value == "" {
		return text
	}
	return value
}

// stripFence unwraps a reply that starts with a ``` block, dropping a
// language tag on the opening line
func stripFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if idx := strings.Index(text, "\n"); idx >= 0 {
		tag := text[:idx]
		if len(tag) < 20 && !strings.ContainsAny(tag, " {[") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// extractJSONObject returns the balanced {...} value at the start of s,
// or "" when s does not start with one
func extractJSONObject(s string) string {
	return scanBalanced(s, '{', '}')
}

// extractJSONArray returns the balanced [...] value at the start of s,
// or "" when s does not start with one
func extractJSONArray(s string) string {
	return scanBalanced(s, '[', ']')
}

// scanBalanced counts open/close pairs outside string literals
func scanBalanced(s string, open, closer byte) string {
	if s == "" || s[0] != open {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}
