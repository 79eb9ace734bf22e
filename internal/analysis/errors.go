package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jd-backend/internal/llm"
)

// Failure classification codes, used in logs and to pick the response status
// class. Never sent to callers verbatim.
const (
	ErrorCodeValidation     = "VALIDATION_ERROR"
	ErrorCodeProviderConfig = "PROVIDER_NOT_CONFIGURED"
	ErrorCodeProviderError  = "PROVIDER_ERROR"
	ErrorCodeTimeout        = "LLM_TIMEOUT"
	ErrorCodeExtraction     = "RESPONSE_EXTRACTION"
	ErrorCodeRepair         = "RESPONSE_REPAIR"
	ErrorCodeSchemaMismatch = "LLM_SCHEMA_MISMATCH"
)

var (
	// ErrProviderNotConfigured means the provider chain is empty: neither a
	// local endpoint nor a hosted API key was configured.
	ErrProviderNotConfigured = errors.New("no llm provider configured")
	// ErrNoJSONFound means the model replied but no JSON object could be
	// isolated from the reply.
	ErrNoJSONFound = errors.New("no JSON object found in response")
)

// InputError reports accumulated input validation failures. Its reasons are
// caller-fixable and surfaced verbatim.
type InputError struct {
	Reasons []string
}

func (e *InputError) Error() string {
	return "invalid job description: " + strings.Join(e.Reasons, "; ")
}

// RepairError means the extracted payload did not parse as JSON even after
// repair.
type RepairError struct {
	Cause error
}

func (e *RepairError) Error() string {
	return fmt.Sprintf("response JSON unparseable after repair: %v", e.Cause)
}

func (e *RepairError) Unwrap() error { return e.Cause }

// SchemaError reports response fields required for the mode that are missing.
type SchemaError struct {
	Mode    Mode
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("response missing required fields for %s mode: %s", e.Mode, strings.Join(e.Missing, ", "))
}

// Classify maps an error to its failure code.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	var inputErr *InputError
	var repairErr *RepairError
	var schemaErr *SchemaError
	switch {
	case errors.As(err, &inputErr):
		return ErrorCodeValidation
	case errors.Is(err, ErrProviderNotConfigured):
		return ErrorCodeProviderConfig
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorCodeTimeout
	case errors.Is(err, ErrNoJSONFound), errors.Is(err, llm.ErrEmptyResponse):
		return ErrorCodeExtraction
	case errors.As(err, &repairErr):
		return ErrorCodeRepair
	case errors.As(err, &schemaErr):
		return ErrorCodeSchemaMismatch
	default:
		return ErrorCodeProviderError
	}
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}
