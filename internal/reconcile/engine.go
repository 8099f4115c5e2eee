// File path: internal/reconcile/engine.go
package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/nicodishanthj/fitsight/internal/activity"
	"github.com/nicodishanthj/fitsight/internal/common"
	"github.com/nicodishanthj/fitsight/internal/common/telemetry"
	"github.com/nicodishanthj/fitsight/internal/insight"
	"github.com/nicodishanthj/fitsight/internal/remote"
	"github.com/nicodishanthj/fitsight/internal/sqlite"
)

// Generator is the slice of the insight generator the engine depends on.
type Generator interface {
	Generate(ctx context.Context, act activity.Activity, candidates []activity.Activity) (*insight.Generated, error)
}

// Engine drives insight generation and keeps the local store and the remote
// descriptions converged. All work is sequential: each activity's pipeline
// completes before the next begins, so the generator's rate-limit gate
// serializes every outbound call.
type Engine struct {
	cfg    Config
	store  *sqlite.Store
	gen    Generator
	remote remote.Client
}

// New wires the engine. remoteClient may be nil for local-only operation.
func New(cfg Config, store *sqlite.Store, gen Generator, remoteClient remote.Client) *Engine {
	return &Engine{cfg: applyDefaults(cfg), store: store, gen: gen, remote: remoteClient}
}

// Process runs the full pipeline for one activity: existence check,
// generation, local upsert, optional remote comment upsert. Remote failures
// are logged and swallowed; the local write stands and a later sweep
// recovers the remote side. Only store-level faults return an error.
//
// Force mode does not delete the prior record here: callers wanting a clean
// regeneration delete first (see Regenerate).
func (e *Engine) Process(ctx context.Context, act activity.Activity, candidates []activity.Activity, force bool) (Result, error) {
	if e == nil || !e.cfg.Enabled {
		return Result{Status: StatusDisabled}, nil
	}
	logger := common.Logger()
	ctx, finish := telemetry.StartSpan(ctx, "reconcile.process")
	defer finish("activity", act.ID)
	if !force {
		exists, err := e.store.Exists(ctx, act.ID)
		if err != nil {
			return Result{Status: StatusFailed, Reason: "store lookup failed"}, err
		}
		if exists {
			logger.Debug("reconcile: insight already stored, skipping", "activity", act.ID)
			return Result{Status: StatusSkipped, Reason: "insight already stored"}, nil
		}
	}

	generated, err := e.gen.Generate(ctx, act, candidates)
	if err != nil {
		return Result{Status: StatusFailed, Reason: "generation aborted"}, err
	}
	if generated == nil {
		return Result{Status: StatusFailed, Reason: "generation failed"}, nil
	}

	record := sqlite.InsightRecord{
		ActivityID:   act.ID,
		ActivityName: act.Name,
		Insight:      generated.Insight,
		Model:        generated.Model,
		Confidence:   generated.Confidence,
		CreatedAt:    time.Now().UTC(),
	}
	if err := e.store.Upsert(ctx, record); err != nil {
		return Result{Status: StatusFailed, Reason: "store write failed"}, err
	}
	logger.Info("reconcile: insight stored", "activity", act.ID, "model", record.Model, "confidence", record.Confidence)

	if e.remote != nil {
		comment := FormatComment(record.Model, record.Confidence, record.Insight)
		if err := upsertComment(ctx, e.remote, act.ID, comment, force); err != nil {
			// Local succeeded, remote pending; a later sync pass recovers.
			logger.Warn("reconcile: remote comment upsert failed", "activity", act.ID, "error", err)
		}
	}
	return Result{Status: StatusGenerated, Record: &record}, nil
}

// Regenerate discards any stored insight for the activity and processes it
// in force mode, giving clean replace semantics on both stores.
func (e *Engine) Regenerate(ctx context.Context, act activity.Activity, candidates []activity.Activity) (Result, error) {
	if e == nil || !e.cfg.Enabled {
		return Result{Status: StatusDisabled}, nil
	}
	if err := e.store.Delete(ctx, act.ID); err != nil {
		return Result{Status: StatusFailed, Reason: "store delete failed"}, err
	}
	return e.Process(ctx, act, candidates, true)
}

// ProcessBatch runs the pipeline over activities in order, inserting a fixed
// delay between items as an extra safety margin beyond the generator's own
// gate. Generation failures are counted; only a store fault aborts the run.
func (e *Engine) ProcessBatch(ctx context.Context, activities []activity.Activity, force bool) (Summary, error) {
	var summary Summary
	if e == nil || !e.cfg.Enabled {
		return summary, nil
	}
	logger := common.Logger()
	for i, act := range activities {
		result, err := e.Process(ctx, act, activities, force)
		if err != nil {
			return summary, err
		}
		switch result.Status {
		case StatusGenerated:
			summary.Processed++
		case StatusSkipped:
			summary.Skipped++
		case StatusFailed:
			summary.Errors++
		}
		if i < len(activities)-1 && e.cfg.BatchDelay > 0 {
			if err := sleepCtx(ctx, e.cfg.BatchDelay); err != nil {
				return summary, err
			}
		}
	}
	logger.Info("reconcile: batch complete", "processed", summary.Processed, "skipped", summary.Skipped, "errors", summary.Errors)
	return summary, nil
}

// SyncMissing sweeps every stored insight and posts the ones the remote
// description no longer carries. Remote state wins: an existing block is
// never replaced here, only gaps are filled. Per-item failures are counted
// and the sweep always completes; re-running is the retry mechanism.
func (e *Engine) SyncMissing(ctx context.Context) (Summary, error) {
	var summary Summary
	if e == nil || !e.cfg.Enabled {
		return summary, nil
	}
	if e.remote == nil {
		return summary, fmt.Errorf("remote client not configured")
	}
	logger := common.Logger()
	records, err := e.store.ListAll(ctx)
	if err != nil {
		return summary, err
	}
	for _, record := range records {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}
		detail, err := e.remote.Activity(ctx, record.ActivityID)
		if err != nil {
			logger.Warn("reconcile: sweep fetch failed", "activity", record.ActivityID, "error", err)
			summary.Errors++
			continue
		}
		if HasInsight(detail.Description) {
			summary.Skipped++
			continue
		}
		comment := FormatComment(record.Model, record.Confidence, record.Insight)
		if err := upsertComment(ctx, e.remote, record.ActivityID, comment, false); err != nil {
			logger.Warn("reconcile: sweep upsert failed", "activity", record.ActivityID, "error", err)
			summary.Errors++
			continue
		}
		summary.Synced++
	}
	telemetry.RecordSweep(summary.Synced, summary.Skipped, summary.Errors)
	logger.Info("reconcile: sweep complete", "synced", summary.Synced, "skipped", summary.Skipped, "errors", summary.Errors)
	return summary, nil
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
