// File path: internal/reconcile/result.go
package reconcile

import "github.com/nicodishanthj/fitsight/internal/sqlite"

// Status classifies the outcome of processing one activity. The skip/fail
// distinction matters to batch summaries and to tests, so it is explicit
// rather than a bare nil result.
type Status int

const (
	// StatusDisabled means the feature gate is off; nothing happened.
	StatusDisabled Status = iota
	// StatusSkipped means an insight already exists and force was false.
	StatusSkipped
	// StatusFailed means generation did not produce an insight.
	StatusFailed
	// StatusGenerated means an insight was generated and persisted.
	StatusGenerated
)

func (s Status) String() string {
	switch s {
	case StatusDisabled:
		return "disabled"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	case StatusGenerated:
		return "generated"
	default:
		return "unknown"
	}
}

// Result is the outcome of Engine.Process for one activity.
type Result struct {
	Status Status
	Reason string
	Record *sqlite.InsightRecord
}

// Summary aggregates a batch or sweep run. Runs always complete and report
// counts instead of stopping on the first error.
type Summary struct {
	Processed int
	Synced    int
	Skipped   int
	Errors    int
}
