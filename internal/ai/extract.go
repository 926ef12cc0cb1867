package ai

import (
	"strings"
)

// ExtractJSON pulls the JSON payload out of a free-form model response. It
// tolerates three shapes: bare JSON, JSON wrapped in a fenced code block
// (with an optional language tag), and JSON embedded in surrounding prose.
// For the last case it scans for the first balanced {...} span and, failing
// that, the first balanced [...] span. When nothing extractable is found
// the text is returned unmodified so that schema validation fails loudly
// downstream instead of guessing.
func ExtractJSON(raw string) string {
	cleaned := stripCodeFences(strings.TrimSpace(raw))

	if strings.HasPrefix(cleaned, "{") || strings.HasPrefix(cleaned, "[") {
		return cleaned
	}

	if span := balancedSpan(cleaned, '{', '}'); span != "" {
		return span
	}
	if span := balancedSpan(cleaned, '[', ']'); span != "" {
		return span
	}

	return cleaned
}

// stripCodeFences removes leading/trailing triple-backtick markers and an
// optional language tag.
func stripCodeFences(raw string) string {
	if !strings.HasPrefix(raw, "```") {
		return raw
	}

	raw = strings.TrimPrefix(raw, "```")
	// Drop a language tag such as "json" on the fence line.
	if idx := strings.IndexByte(raw, '\n'); idx != -1 {
		raw = raw[idx+1:]
	} else {
		raw = strings.TrimPrefix(raw, "json")
	}

	if idx := strings.LastIndex(raw, "```"); idx != -1 {
		raw = raw[:idx]
	}

	return strings.TrimSpace(raw)
}

// balancedSpan returns the first balanced open...close span in s, tracking
// nesting depth and JSON string boundaries so that nested brackets and
// brackets inside string literals do not terminate the scan early. An
// unmatched opener yields "" (extraction failed).
func balancedSpan(s string, open, close byte) string {
	start := -1
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
			if depth > 0 {
				inString = true
			}
		case open:
			if depth == 0 {
				start = i
			}
			depth++
		case close:
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}

	return ""
}
