// File path: internal/insight/retry_test.go
package insight

import (
	"testing"
	"time"
)

func TestNextDelayDoublesPerAttempt(t *testing.T) {
	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 2 * time.Second},
		{1, 4 * time.Second},
		{2, 8 * time.Second},
		{3, 16 * time.Second},
		{4, 30 * time.Second},
		{10, 30 * time.Second},
	}
	for _, tc := range cases {
		if got := nextDelay(tc.attempt, 0); got != tc.want {
			t.Fatalf("nextDelay(%d) = %v, want %v", tc.attempt, got, tc.want)
		}
	}
}

func TestNextDelayHonoursProviderHint(t *testing.T) {
	if got := nextDelay(0, 11*time.Second); got != 11*time.Second {
		t.Fatalf("hint ignored: got %v", got)
	}
	if got := nextDelay(5, 1*time.Second); got != 1*time.Second {
		t.Fatalf("hint should win over backoff: got %v", got)
	}
}

func TestNextDelayNegativeAttempt(t *testing.T) {
	if got := nextDelay(-3, 0); got != backoffBase {
		t.Fatalf("negative attempt should use base delay, got %v", got)
	}
}
