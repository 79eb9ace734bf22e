package analysis

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MinJDLength is the minimum trimmed length accepted for a job description.
const MinJDLength = 50

// Texts longer than this must contain at least one JD keyword.
const keywordCheckThreshold = 100

// Terminology expected somewhere in a real job description. Substring match,
// case-insensitive. A heuristic: false positives and negatives are an
// accepted usability trade-off.
var jdKeywords = []string{
	"experience",
	"skills",
	"qualifications",
	"requirements",
	"responsibilities",
	"developer",
	"engineer",
	"role",
	"position",
	"job",
	"hiring",
	"looking for",
	"must have",
	"should have",
	"we are seeking",
	"apply",
	"candidate",
	"role description",
	"job description",
	"career",
	"opportunity",
	"join our team",
	"about the role",
}

// ValidateInput checks a raw request and returns every violation found, so
// the caller sees all fixable problems at once. An empty slice means the
// input is acceptable.
func ValidateInput(text, mode string, maxLength int) []string {
	var reasons []string

	if _, err := ParseMode(mode); err != nil {
		reasons = append(reasons, "Mode must be either 'hr' or 'dev'")
	}

	cleaned := strings.ToLower(strings.TrimSpace(text))
	if cleaned == "" {
		reasons = append(reasons, "Job description text is required")
		return reasons
	}

	length := utf8.RuneCountInString(cleaned)
	if length < MinJDLength {
		reasons = append(reasons, fmt.Sprintf("Text is too short (%d characters). Minimum %d characters required.", length, MinJDLength))
	}
	if maxLength > 0 && length > maxLength {
		reasons = append(reasons, fmt.Sprintf("Text is too long (%d characters). Maximum %d characters allowed.", length, maxLength))
	}

	if length > keywordCheckThreshold && !containsJDKeyword(cleaned) {
		reasons = append(reasons, "Text doesn't appear to be a job description. Missing common job description terminology.")
	}

	return reasons
}

func containsJDKeyword(cleaned string) bool {
	for _, keyword := range jdKeywords {
		if strings.Contains(cleaned, keyword) {
			return true
		}
	}
	return false
}
