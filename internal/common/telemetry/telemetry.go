// File path: internal/common/telemetry/telemetry.go
package telemetry

import (
	"context"
	"expvar"
	"strings"
	"sync"
	"time"

	"github.com/nicodishanthj/fitsight/internal/common"
)

type spanKey struct{}

type span struct {
	name  string
	start time.Time
}

var (
	initOnce sync.Once

	generationTotal     *expvar.Int
	generationFailures  *expvar.Int
	generationLatencyMS *expvar.Int
	rateLimitRetries    *expvar.Int

	remoteRequestTotal     *expvar.Map
	remoteRequestLatencyMS *expvar.Map

	sweepSyncedTotal  *expvar.Int
	sweepSkippedTotal *expvar.Int
	sweepErrorTotal   *expvar.Int
)

func ensureInit() {
	initOnce.Do(func() {
		generationTotal = expvar.NewInt("fitsight_generation_total")
		generationFailures = expvar.NewInt("fitsight_generation_failures")
		generationLatencyMS = expvar.NewInt("fitsight_generation_latency_ms")
		rateLimitRetries = expvar.NewInt("fitsight_rate_limit_retries")

		remoteRequestTotal = expvar.NewMap("fitsight_remote_request_total")
		remoteRequestLatencyMS = expvar.NewMap("fitsight_remote_request_latency_ms")

		sweepSyncedTotal = expvar.NewInt("fitsight_sweep_synced_total")
		sweepSkippedTotal = expvar.NewInt("fitsight_sweep_skipped_total")
		sweepErrorTotal = expvar.NewInt("fitsight_sweep_errors_total")
	})
}

// StartSpan records the start of a named unit of work and returns a finish
// callback that logs the duration along with any extra attributes.
func StartSpan(ctx context.Context, name string) (context.Context, func(attrs ...interface{})) {
	ensureInit()
	sp := &span{name: name, start: time.Now()}
	ctx = context.WithValue(ctx, spanKey{}, sp)
	logger := common.Logger()
	logger.Debug("trace: start", "span", name)
	return ctx, func(attrs ...interface{}) {
		if sp == nil {
			return
		}
		duration := time.Since(sp.start)
		logger.Debug("trace: end", append([]interface{}{"span", name, "dur", duration}, attrs...)...)
	}
}

// RecordGeneration counts one completed generation attempt cycle.
func RecordGeneration(succeeded bool, duration time.Duration) {
	ensureInit()
	generationTotal.Add(1)
	if !succeeded {
		generationFailures.Add(1)
	}
	if duration > 0 {
		generationLatencyMS.Add(duration.Milliseconds())
	}
}

// RecordRateLimitRetry counts one backoff taken after a rate-limit rejection.
func RecordRateLimitRetry() {
	ensureInit()
	rateLimitRetries.Add(1)
}

// RecordRemoteRequest counts one remote API call keyed by operation.
func RecordRemoteRequest(op string, duration time.Duration) {
	ensureInit()
	key := strings.TrimSpace(strings.ToLower(op))
	if key == "" {
		key = "unknown"
	}
	remoteRequestTotal.Add(key, 1)
	if duration > 0 {
		remoteRequestLatencyMS.Add(key, duration.Milliseconds())
	}
}

// RecordSweep accumulates the outcome counts of one reconciliation sweep.
func RecordSweep(synced, skipped, errors int) {
	ensureInit()
	sweepSyncedTotal.Add(int64(synced))
	sweepSkippedTotal.Add(int64(skipped))
	sweepErrorTotal.Add(int64(errors))
}

// SpanDuration reports how long the span carried by ctx has been running.
func SpanDuration(ctx context.Context) time.Duration {
	sp, _ := ctx.Value(spanKey{}).(*span)
	if sp == nil {
		return 0
	}
	return time.Since(sp.start)
}
