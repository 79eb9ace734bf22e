package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"jd-backend/internal/llm"
	"jd-backend/internal/shared/metrics"
	"jd-backend/internal/shared/telemetry"
)

const rawLogMaxLen = 2000

// Request is one job-description analysis ask as received from the caller.
type Request struct {
	Text string
	Mode string
}

// Analysis is a validated result tagged with the provider that produced it.
type Analysis struct {
	ID     string
	Source string
	Result map[string]any
}

// Service orchestrates input validation and the provider chain. Providers
// are tried in order; every failure except the last provider's is demoted to
// a warning and falls through to the next provider. Stateless: safe for
// concurrent use.
type Service struct {
	Providers []llm.Provider
	Timeout   time.Duration
	MaxLength int
}

// NewService constructs a Service over an ordered provider chain.
func NewService(providers []llm.Provider, timeout time.Duration, maxLength int) *Service {
	return &Service{
		Providers: providers,
		Timeout:   timeout,
		MaxLength: maxLength,
	}
}

// Analyze validates the request, runs the provider chain and returns the
// first validated result.
func (s *Service) Analyze(ctx context.Context, req Request) (Analysis, error) {
	if reasons := ValidateInput(req.Text, req.Mode, s.MaxLength); len(reasons) > 0 {
		return Analysis{}, &InputError{Reasons: reasons}
	}
	mode, err := ParseMode(req.Mode)
	if err != nil {
		return Analysis{}, &InputError{Reasons: []string{"Mode must be either 'hr' or 'dev'"}}
	}
	if len(s.Providers) == 0 {
		return Analysis{}, ErrProviderNotConfigured
	}

	analysisID := uuid.NewString()
	startedAt := time.Now()
	metrics.IncAnalysisStarted()

	var lastErr error
	for i, provider := range s.Providers {
		result, attemptErr := s.attempt(ctx, provider, req.Text, mode, analysisID)
		if attemptErr == nil {
			duration := durationMs(startedAt)
			metrics.IncAnalysisCompleted(provider.Name())
			metrics.ObserveAnalysisDurationMs(duration)
			telemetry.Info("analysis.completed", map[string]any{
				"analysis_id": analysisID,
				"mode":        string(mode),
				"source":      provider.Name(),
				"duration_ms": duration,
			})
			return Analysis{ID: analysisID, Source: provider.Name(), Result: result}, nil
		}
		lastErr = attemptErr
		if i < len(s.Providers)-1 {
			// Earlier providers are best-effort; the next one is the safety
			// net, so their failures never reach the caller.
			metrics.IncAnalysisFallback()
			telemetry.Warn("analysis.provider.fallback", map[string]any{
				"analysis_id": analysisID,
				"provider":    provider.Name(),
				"code":        Classify(attemptErr),
				"error":       sanitizeError(attemptErr),
			})
		}
	}

	metrics.IncAnalysisFailed()
	metrics.ObserveAnalysisDurationMs(durationMs(startedAt))
	telemetry.Error("analysis.failed", map[string]any{
		"analysis_id": analysisID,
		"mode":        string(mode),
		"code":        Classify(lastErr),
		"error":       sanitizeError(lastErr),
	})
	return Analysis{}, lastErr
}

func (s *Service) attempt(ctx context.Context, provider llm.Provider, text string, mode Mode, analysisID string) (map[string]any, error) {
	attemptCtx := ctx
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	raw, err := provider.Analyze(attemptCtx, text, string(mode))
	if err != nil {
		return nil, fmt.Errorf("%s provider: %w", provider.Name(), err)
	}
	telemetry.Info("analysis.provider.raw", map[string]any{
		"analysis_id": analysisID,
		"provider":    provider.Name(),
		"raw":         telemetry.Truncate(raw, rawLogMaxLen),
	})

	jsonText, err := ExtractJSONObject(raw)
	if err != nil {
		return nil, fmt.Errorf("%s provider: %w", provider.Name(), err)
	}
	result, err := parseObject(jsonText)
	if err != nil {
		return nil, fmt.Errorf("%s provider: %w", provider.Name(), err)
	}
	if err := ValidateResult(mode, result); err != nil {
		return nil, fmt.Errorf("%s provider: %w", provider.Name(), err)
	}

	if missing := MissingOptionalFields(mode, result); len(missing) > 0 {
		telemetry.Warn("analysis.optional_fields_missing", map[string]any{
			"analysis_id": analysisID,
			"provider":    provider.Name(),
			"mode":        string(mode),
			"fields":      missing,
		})
	}
	return result, nil
}

func durationMs(startedAt time.Time) float64 {
	return float64(time.Since(startedAt).Microseconds()) / 1000.0
}
