// File path: internal/insight/generator.go
package insight

import (
	"context"
	"time"

	"github.com/nicodishanthj/fitsight/internal/activity"
	"github.com/nicodishanthj/fitsight/internal/common"
	"github.com/nicodishanthj/fitsight/internal/common/telemetry"
	"github.com/nicodishanthj/fitsight/internal/llm"
	"github.com/nicodishanthj/fitsight/internal/prompt"
	"github.com/nicodishanthj/fitsight/internal/trend"
)

// DefaultMinInterval is the minimum spacing between generation calls.
const DefaultMinInterval = 6 * time.Second

// Generated is one successful model response, ready to persist.
type Generated struct {
	Insight    string
	Model      string
	Confidence float64
}

// Generator wraps a provider with process-wide rate limiting and bounded
// retry. Generation failures are non-fatal: a nil result with a nil error
// means the caller should move on without an insight.
type Generator struct {
	provider llm.Provider
	limiter  *Limiter
	sleep    func(ctx context.Context, d time.Duration) error
}

func NewGenerator(provider llm.Provider) *Generator {
	return &Generator{
		provider: provider,
		limiter:  NewLimiter(DefaultMinInterval),
		sleep:    sleepCtx,
	}
}

// Generate builds trend context from candidates, renders the prompt, and
// calls the provider. Only explicit rate-limit rejections are retried; any
// other failure is logged and swallowed.
func (g *Generator) Generate(ctx context.Context, act activity.Activity, candidates []activity.Activity) (*Generated, error) {
	if g == nil || g.provider == nil {
		return nil, nil
	}
	logger := common.Logger()

	var trendCtx *trend.Context
	if len(candidates) > 0 {
		built := trend.BuildContext(act, candidates)
		if !built.Empty() {
			trendCtx = &built
		}
	}
	messages, err := llm.NormalizeMessages([]llm.Message{
		{Role: "user", Content: prompt.Format(act, trendCtx)},
	})
	if err != nil {
		return nil, err
	}

	started := time.Now()
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		raw, err := g.provider.Chat(ctx, messages)
		if err == nil {
			text, confidence := extractConfidence(raw)
			logger.Debug("insight: generation succeeded", "activity", act.ID, "confidence", confidence)
			telemetry.RecordGeneration(true, time.Since(started))
			return &Generated{Insight: text, Model: g.provider.Model(), Confidence: confidence}, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !llm.RateLimited(err) {
			logger.Warn("insight: generation failed", "activity", act.ID, "error", err)
			telemetry.RecordGeneration(false, time.Since(started))
			return nil, nil
		}
		if attempt == maxAttempts-1 {
			break
		}
		delay := nextDelay(attempt, llm.RetryAfterHint(err))
		logger.Warn("insight: rate limited, backing off", "activity", act.ID, "attempt", attempt+1, "delay", delay)
		telemetry.RecordRateLimitRetry()
		if err := g.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}
	logger.Warn("insight: rate limit retries exhausted", "activity", act.ID, "attempts", maxAttempts)
	telemetry.RecordGeneration(false, time.Since(started))
	return nil, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
