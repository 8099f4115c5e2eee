// File path: internal/insight/ratelimit_test.go
package insight

import (
	"context"
	"testing"
	"time"
)

func TestLimiterEnforcesSpacing(t *testing.T) {
	interval := 60 * time.Millisecond
	limiter := NewLimiter(interval)
	ctx := context.Background()

	start := time.Now()
	if err := limiter.Wait(ctx); err != nil {
		t.Fatalf("first wait: %v", err)
	}
	if err := limiter.Wait(ctx); err != nil {
		t.Fatalf("second wait: %v", err)
	}
	elapsed := time.Since(start)
	if elapsed < interval {
		t.Fatalf("back-to-back calls spaced %v, want at least %v", elapsed, interval)
	}
}

func TestLimiterFirstCallDoesNotBlock(t *testing.T) {
	limiter := NewLimiter(time.Minute)
	start := time.Now()
	if err := limiter.Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("first call blocked for %v", elapsed)
	}
}

func TestLimiterRespectsCancellation(t *testing.T) {
	limiter := NewLimiter(time.Minute)
	ctx := context.Background()
	if err := limiter.Wait(ctx); err != nil {
		t.Fatalf("first wait: %v", err)
	}
	cancelled, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	if err := limiter.Wait(cancelled); err == nil {
		t.Fatalf("expected cancellation error while waiting out the interval")
	}
}
