package analysis

import (
	"encoding/json"
	"strings"
)

// RepairJSON returns a best-effort corrected JSON string. Valid input passes
// through untouched, which also makes the transformation idempotent. The only
// repair applied is trailing-comma removal; anything still broken after that
// is treated as a hard failure by the parser, not rewritten further.
func RepairJSON(s string) string {
	if json.Valid([]byte(s)) {
		return s
	}
	return stripTrailingCommas(s)
}

// parseObject decodes a JSON-like string into a generic object, repairing
// when the strict parse fails.
func parseObject(jsonText string) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(jsonText), &obj); err == nil {
		return obj, nil
	}
	repaired := stripTrailingCommas(jsonText)
	if err := json.Unmarshal([]byte(repaired), &obj); err != nil {
		return nil, &RepairError{Cause: err}
	}
	return obj, nil
}

// stripTrailingCommas removes commas immediately preceding a closing } or ]
// (a common LLM mistake), looping so nested occurrences are caught.
func stripTrailingCommas(s string) string {
	for {
		changed := false
		var b strings.Builder
		b.Grow(len(s))
		for i := 0; i < len(s); i++ {
			if s[i] == ',' {
				j := i + 1
				for j < len(s) && (s[j] == ' ' || s[j] == '\n' || s[j] == '\r' || s[j] == '\t') {
					j++
				}
				if j < len(s) && (s[j] == '}' || s[j] == ']') {
					changed = true
					continue
				}
			}
			b.WriteByte(s[i])
		}
		if !changed {
			return s
		}
		s = b.String()
	}
}
