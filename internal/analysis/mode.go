package analysis

import (
	"errors"
	"strings"
)

// Mode defines the supported analysis perspectives.
type Mode string

const (
	// ModeHR analyzes a JD from the recruiter's side: evaluation criteria,
	// interview material, salary expectations.
	ModeHR Mode = "hr"
	// ModeDev analyzes a JD from the candidate's side: skill gaps, learning
	// path, practice material.
	ModeDev Mode = "dev"
)

// ParseMode normalizes and validates a mode string.
func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(ModeHR):
		return ModeHR, nil
	case string(ModeDev):
		return ModeDev, nil
	default:
		return "", errors.New("mode must be either 'hr' or 'dev'")
	}
}
