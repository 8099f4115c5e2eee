// File path: internal/insight/retry.go
package insight

import "time"

const (
	maxAttempts = 3

	backoffBase = 2 * time.Second
	backoffMax  = 30 * time.Second
)

// nextDelay returns the wait before retrying a rate-limited attempt. A
// provider-suggested hint wins outright; otherwise the delay doubles per
// attempt from the base, capped. attempt is zero-based.
func nextDelay(attempt int, hint time.Duration) time.Duration {
	if hint > 0 {
		return hint
	}
	if attempt < 0 {
		attempt = 0
	}
	delay := backoffBase
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay >= backoffMax {
			return backoffMax
		}
	}
	if delay > backoffMax {
		return backoffMax
	}
	return delay
}
