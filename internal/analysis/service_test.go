package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"jd-backend/internal/llm"
)

type stubProvider struct {
	name  string
	resp  string
	err   error
	calls int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Analyze(ctx context.Context, jdText string, mode string) (string, error) {
	_ = ctx
	_ = jdText
	_ = mode
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.resp, nil
}

type blockingProvider struct {
	name string
}

func (b *blockingProvider) Name() string { return b.name }

func (b *blockingProvider) Analyze(ctx context.Context, jdText string, mode string) (string, error) {
	_ = jdText
	_ = mode
	<-ctx.Done()
	return "", ctx.Err()
}

func newTestService(providers ...llm.Provider) *Service {
	return NewService(providers, 5*time.Second, 10000)
}

func TestAnalyzeFirstProviderWins(t *testing.T) {
	local := &stubProvider{name: "local", resp: hrResultJSON}
	hosted := &stubProvider{name: "hosted", resp: hrResultJSON}
	svc := newTestService(local, hosted)

	got, err := svc.Analyze(context.Background(), Request{Text: validJD, Mode: "hr"})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if got.Source != "local" {
		t.Fatalf("expected source local, got %q", got.Source)
	}
	if got.ID == "" {
		t.Fatalf("expected analysis id")
	}
	if hosted.calls != 0 {
		t.Fatalf("expected hosted provider untouched, got %d calls", hosted.calls)
	}
	if _, ok := got.Result["skills"]; !ok {
		t.Fatalf("expected skills in result, got %v", got.Result)
	}
}

func TestAnalyzeFallsBackToHosted(t *testing.T) {
	local := &stubProvider{name: "local", err: errors.New("connection refused")}
	hosted := &stubProvider{name: "hosted", resp: hrResultJSON}
	svc := newTestService(local, hosted)

	got, err := svc.Analyze(context.Background(), Request{Text: validJD, Mode: "hr"})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if got.Source != "hosted" {
		t.Fatalf("expected source hosted, got %q", got.Source)
	}
	if local.calls != 1 || hosted.calls != 1 {
		t.Fatalf("expected both providers tried once, got %d/%d", local.calls, hosted.calls)
	}
}

func TestAnalyzeFallsBackOnBadPayload(t *testing.T) {
	// A provider that answers with prose is just as failed as one that
	// errors; the chain moves on.
	local := &stubProvider{name: "local", resp: "I cannot analyze this."}
	hosted := &stubProvider{name: "hosted", resp: hrResultJSON}
	svc := newTestService(local, hosted)

	got, err := svc.Analyze(context.Background(), Request{Text: validJD, Mode: "hr"})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if got.Source != "hosted" {
		t.Fatalf("expected source hosted, got %q", got.Source)
	}
}

func TestAnalyzeAllProvidersFail(t *testing.T) {
	local := &stubProvider{name: "local", err: errors.New("connection refused")}
	hosted := &stubProvider{name: "hosted", err: errors.New("quota exceeded")}
	svc := newTestService(local, hosted)

	_, err := svc.Analyze(context.Background(), Request{Text: validJD, Mode: "hr"})
	if err == nil {
		t.Fatalf("expected error")
	}
	// The caller sees the last provider's failure.
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("expected last provider error, got %v", err)
	}
	if Classify(err) != ErrorCodeProviderError {
		t.Fatalf("expected %s, got %s", ErrorCodeProviderError, Classify(err))
	}
}

func TestAnalyzeNoProviders(t *testing.T) {
	svc := newTestService()
	_, err := svc.Analyze(context.Background(), Request{Text: validJD, Mode: "hr"})
	if !errors.Is(err, ErrProviderNotConfigured) {
		t.Fatalf("expected ErrProviderNotConfigured, got %v", err)
	}
}

func TestAnalyzeInvalidInput(t *testing.T) {
	provider := &stubProvider{name: "local", resp: hrResultJSON}
	svc := newTestService(provider)

	_, err := svc.Analyze(context.Background(), Request{Text: "too short", Mode: "hr"})
	var inputErr *InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected InputError, got %v", err)
	}
	if provider.calls != 0 {
		t.Fatalf("expected no provider call on invalid input, got %d", provider.calls)
	}
}

func TestAnalyzeFencedAndTrailingCommaReply(t *testing.T) {
	raw := "```json\n" + `{
  "skills": ["Go",],
  "codingTask": {"title": "t", "description": "d", "difficulty": "beginner", "requirements": ["r"],},
  "questions": {"technical": ["q"], "behavioral": ["q"],},
}` + "\n```"
	provider := &stubProvider{name: "local", resp: raw}
	svc := newTestService(provider)

	got, err := svc.Analyze(context.Background(), Request{Text: validJD, Mode: "hr"})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	skills, ok := got.Result["skills"].([]any)
	if !ok || len(skills) != 1 {
		t.Fatalf("expected repaired skills array, got %v", got.Result["skills"])
	}
}

func TestAnalyzeSchemaMismatchFails(t *testing.T) {
	// hr-shaped reply does not satisfy dev mode.
	provider := &stubProvider{name: "local", resp: hrResultJSON}
	svc := newTestService(provider)

	_, err := svc.Analyze(context.Background(), Request{Text: validJD, Mode: "dev"})
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
}

func TestAnalyzeTimeout(t *testing.T) {
	svc := NewService([]llm.Provider{&blockingProvider{name: "local"}}, 20*time.Millisecond, 10000)

	_, err := svc.Analyze(context.Background(), Request{Text: validJD, Mode: "hr"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if Classify(err) != ErrorCodeTimeout {
		t.Fatalf("expected %s, got %s", ErrorCodeTimeout, Classify(err))
	}
}

func TestAnalyzeTimeoutFallsBack(t *testing.T) {
	hosted := &stubProvider{name: "hosted", resp: hrResultJSON}
	svc := NewService([]llm.Provider{&blockingProvider{name: "local"}, hosted}, 20*time.Millisecond, 10000)

	got, err := svc.Analyze(context.Background(), Request{Text: validJD, Mode: "hr"})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if got.Source != "hosted" {
		t.Fatalf("expected source hosted, got %q", got.Source)
	}
}
