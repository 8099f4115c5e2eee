// File path: internal/reconcile/marker.go
package reconcile

import (
	"fmt"
	"strings"
)

// InsightMarker is the literal label that opens every posted insight block.
// It is the sole signal that a remote description already carries an
// insight, and it bounds removal during force replacement. The writer
// (FormatComment) and the detector (HasInsight) must change together.
const InsightMarker = "[AI Insight]"

// insightDivider separates an appended insight block from the user's own
// description text, and terminates a block when more text follows it.
const insightDivider = "\n\n---\n\n"

// HasInsight reports whether the description already carries a posted
// insight block.
func HasInsight(description string) bool {
	return strings.Contains(description, InsightMarker)
}

// FormatComment renders a stored insight as the display comment posted to
// the remote description: marker, model, confidence percentage, then text.
func FormatComment(model string, confidence float64, text string) string {
	return fmt.Sprintf("%s %s (%.0f%% confidence)\n%s", InsightMarker, model, confidence*100, text)
}

// stripInsightBlock removes the previously posted block: everything from the
// marker to the next divider, or to end-of-text when no divider follows.
// Removal is bounded at the block itself; user text on both sides survives,
// rejoined by a single divider.
func stripInsightBlock(description string) string {
	start := strings.Index(description, InsightMarker)
	if start < 0 {
		return description
	}
	before := strings.TrimSuffix(description[:start], insightDivider)
	after := ""
	if idx := strings.Index(description[start:], insightDivider); idx >= 0 {
		after = description[start+idx+len(insightDivider):]
	}
	if before != "" && after != "" {
		return before + insightDivider + after
	}
	return strings.TrimRight(before+after, "\n ")
}

// appendInsight appends the comment to the description, inserting the
// divider when prior text exists.
func appendInsight(description, comment string) string {
	trimmed := strings.TrimRight(description, "\n ")
	if trimmed == "" {
		return comment
	}
	return trimmed + insightDivider + comment
}
