package analysis

import "strings"

// ExtractJSONObject isolates the single JSON object payload from a raw model
// reply that may wrap it in markdown fences or surrounding prose. The scanner
// pass returns the first balanced top-level object; if the reply's braces
// never balance (truncated output), the first-{/last-} heuristic is kept as a
// fallback so a trailing-garbage reply still gets a repair attempt.
func ExtractJSONObject(raw string) (string, error) {
	cleaned := stripCodeFences(raw)

	if obj, ok := scanObject(cleaned); ok {
		return obj, nil
	}

	first := strings.IndexByte(cleaned, '{')
	last := strings.LastIndexByte(cleaned, '}')
	if first == -1 || last == -1 || last < first {
		return "", ErrNoJSONFound
	}
	return cleaned[first : last+1], nil
}

func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if end := strings.LastIndex(s, "```"); end >= 0 {
		s = s[:end]
	}
	return strings.TrimSpace(s)
}

// scanObject walks the text tracking brace depth with string and escape
// awareness, so braces inside string values don't end the object early.
func scanObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
