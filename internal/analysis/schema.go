package analysis

import "strings"

// Canonical analysis result shape elicited by the prompts. Validation works
// on the decoded map because providers add and omit optional fields freely;
// these types document the contract and back the test fixtures.
//
// Required for both modes: skills, codingTask, questions.
// Required for dev mode only: skillGaps, learningPath.
// Everything else is optional enrichment and only ever warned about.
type Result struct {
	Skills           []string `json:"skills"`
	SalaryEstimation string   `json:"salaryEstimation,omitempty"`
	SoftSkills       []string `json:"softSkills,omitempty"`

	// HR mode
	EvaluationCriteria []string `json:"evaluationCriteria,omitempty"`

	// Dev mode
	ResumeKeywords    []string `json:"resumeKeywords,omitempty"`
	ProjectSuggestion string   `json:"projectSuggestion,omitempty"`
	SkillGaps         []string `json:"skillGaps,omitempty"`
	LearningPath      []string `json:"learningPath,omitempty"`

	CodingTask CodingTask `json:"codingTask"`
	Questions  Questions  `json:"questions"`
}

type CodingTask struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Difficulty        string   `json:"difficulty"`
	Requirements      []string `json:"requirements"`
	LearningResources []string `json:"learningResources,omitempty"`
}

type Questions struct {
	Technical      []string `json:"technical"`
	Behavioral     []string `json:"behavioral"`
	SelfAssessment []string `json:"selfAssessment,omitempty"`
}

var universalRequiredFields = []string{"skills", "codingTask", "questions"}

var devRequiredFields = []string{"skillGaps", "learningPath"}

var optionalFieldsByMode = map[Mode][]string{
	ModeHR:  {"salaryEstimation", "softSkills", "evaluationCriteria"},
	ModeDev: {"salaryEstimation", "softSkills", "resumeKeywords", "projectSuggestion"},
}

// ValidateResult checks that every field required for the mode is present
// and non-empty in the decoded response object.
func ValidateResult(mode Mode, result map[string]any) error {
	var missing []string
	for _, field := range universalRequiredFields {
		if !present(result[field]) {
			missing = append(missing, field)
		}
	}
	if mode == ModeDev {
		for _, field := range devRequiredFields {
			if !present(result[field]) {
				missing = append(missing, field)
			}
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Mode: mode, Missing: missing}
	}
	return nil
}

// MissingOptionalFields lists enrichment fields the provider omitted for the
// mode. Worth a warning log (prompt drift shows up here first), never a
// rejection.
func MissingOptionalFields(mode Mode, result map[string]any) []string {
	var missing []string
	for _, field := range optionalFieldsByMode[mode] {
		if !present(result[field]) {
			missing = append(missing, field)
		}
	}
	return missing
}

// present reports whether a decoded JSON value counts as filled in: non-null
// and non-empty for strings, arrays and objects.
func present(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(val) != ""
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	case bool:
		return val
	case float64:
		return val != 0
	default:
		return true
	}
}
