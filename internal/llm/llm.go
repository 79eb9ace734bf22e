package llm

import (
	"context"
	"errors"
)

// Provider is an external LLM completion backend able to analyze a job
// description. Implementations build their own mode-specific prompt, issue a
// single synchronous request, and return the raw text reply untouched; the
// caller owns JSON extraction, repair and schema validation.
type Provider interface {
	// Name identifies the provider in result source tags and logs.
	Name() string
	Analyze(ctx context.Context, jdText string, mode string) (string, error)
}

// ErrEmptyResponse is returned when a provider replied without usable content.
var ErrEmptyResponse = errors.New("provider returned empty response")
