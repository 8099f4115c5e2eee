// File path: internal/insight/generator_test.go
package insight

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	openai "github.com/openai/openai-go/v2"

	"github.com/nicodishanthj/fitsight/internal/activity"
	"github.com/nicodishanthj/fitsight/internal/llm"
)

type scriptedProvider struct {
	replies []reply
	calls   int
}

type reply struct {
	text string
	err  error
}

func (p *scriptedProvider) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	if p.calls >= len(p.replies) {
		return "", errors.New("unexpected extra call")
	}
	r := p.replies[p.calls]
	p.calls++
	return r.text, r.err
}

func (p *scriptedProvider) Name() string  { return "scripted" }
func (p *scriptedProvider) Model() string { return "scripted-model" }

func testGenerator(p *scriptedProvider) *Generator {
	g := NewGenerator(p)
	g.limiter = NewLimiter(0)
	g.sleep = func(ctx context.Context, d time.Duration) error { return nil }
	return g
}

func rateLimitErr() error {
	return &openai.Error{StatusCode: http.StatusTooManyRequests}
}

func TestGenerateSuccessParsesConfidence(t *testing.T) {
	provider := &scriptedProvider{replies: []reply{{text: "Nice progression run. [CONFIDENCE: 0.85]"}}}
	g := testGenerator(provider)
	got, err := g.Generate(context.Background(), activity.Activity{ID: "100", Type: "running"}, nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got == nil {
		t.Fatalf("expected a generated insight")
	}
	if got.Insight != "Nice progression run." {
		t.Fatalf("confidence tag not stripped: %q", got.Insight)
	}
	if got.Confidence != 0.85 {
		t.Fatalf("confidence = %v, want 0.85", got.Confidence)
	}
	if got.Model != "scripted-model" {
		t.Fatalf("model = %q", got.Model)
	}
}

func TestGenerateNonRateLimitFailureIsNotRetried(t *testing.T) {
	provider := &scriptedProvider{replies: []reply{{err: errors.New("boom")}}}
	g := testGenerator(provider)
	got, err := g.Generate(context.Background(), activity.Activity{ID: "100"}, nil)
	if err != nil {
		t.Fatalf("generation failures must be non-fatal, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil insight on failure")
	}
	if provider.calls != 1 {
		t.Fatalf("expected exactly one attempt, got %d", provider.calls)
	}
}

func TestGenerateRetriesOnRateLimit(t *testing.T) {
	provider := &scriptedProvider{replies: []reply{
		{err: rateLimitErr()},
		{err: rateLimitErr()},
		{text: "Made it. [CONFIDENCE: 0.6]"},
	}}
	g := testGenerator(provider)
	got, err := g.Generate(context.Background(), activity.Activity{ID: "100"}, nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got == nil || got.Insight != "Made it." {
		t.Fatalf("expected retried call to succeed, got %+v", got)
	}
	if provider.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", provider.calls)
	}
}

func TestGenerateGivesUpAfterMaxAttempts(t *testing.T) {
	provider := &scriptedProvider{replies: []reply{
		{err: rateLimitErr()},
		{err: rateLimitErr()},
		{err: rateLimitErr()},
	}}
	g := testGenerator(provider)
	got, err := g.Generate(context.Background(), activity.Activity{ID: "100"}, nil)
	if err != nil {
		t.Fatalf("exhausted retries must be non-fatal, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil insight after exhaustion")
	}
	if provider.calls != maxAttempts {
		t.Fatalf("expected %d attempts, got %d", maxAttempts, provider.calls)
	}
}
