// File path: internal/reconcile/marker_test.go
package reconcile

import (
	"strings"
	"testing"
)

func TestHasInsight(t *testing.T) {
	if HasInsight("just a note about the weather") {
		t.Fatalf("plain description misdetected")
	}
	comment := FormatComment("gpt-4o", 0.85, "Nice run.")
	if !HasInsight(comment) {
		t.Fatalf("formatted comment not detected")
	}
	if !HasInsight(appendInsight("user text", comment)) {
		t.Fatalf("appended comment not detected")
	}
}

func TestFormatCommentShowsConfidencePercent(t *testing.T) {
	comment := FormatComment("gpt-4o", 0.85, "Nice run.")
	if !strings.HasPrefix(comment, InsightMarker) {
		t.Fatalf("comment must start with the marker: %q", comment)
	}
	if !strings.Contains(comment, "85% confidence") {
		t.Fatalf("expected confidence percentage in %q", comment)
	}
	if !strings.Contains(comment, "Nice run.") {
		t.Fatalf("insight text missing from %q", comment)
	}
}

func TestAppendInsight(t *testing.T) {
	comment := FormatComment("gpt-4o", 0.5, "text")
	if got := appendInsight("", comment); got != comment {
		t.Fatalf("empty description should carry the bare comment, got %q", got)
	}
	got := appendInsight("my own notes", comment)
	if !strings.HasPrefix(got, "my own notes") {
		t.Fatalf("user text lost: %q", got)
	}
	if !strings.Contains(got, insightDivider) {
		t.Fatalf("divider missing between user text and comment: %q", got)
	}
}

func TestStripInsightBlock(t *testing.T) {
	comment := FormatComment("gpt-4o", 0.5, "old insight")

	appended := appendInsight("my own notes", comment)
	if got := stripInsightBlock(appended); got != "my own notes" {
		t.Fatalf("trailing block strip = %q, want %q", got, "my own notes")
	}

	// Block in the middle of the description ends at the next divider. The
	// surrounding user paragraphs must stay separated, not be glued together.
	withTrailing := appended + insightDivider + "later user text"
	want := "my own notes" + insightDivider + "later user text"
	if got := stripInsightBlock(withTrailing); got != want {
		t.Fatalf("mid-text strip = %q, want %q", got, want)
	}

	// Block first, user text after.
	leading := comment + insightDivider + "later user text"
	if got := stripInsightBlock(leading); got != "later user text" {
		t.Fatalf("leading block strip = %q, want %q", got, "later user text")
	}

	if got := stripInsightBlock(comment); got != "" {
		t.Fatalf("bare block strip = %q, want empty", got)
	}

	if got := stripInsightBlock("no block here"); got != "no block here" {
		t.Fatalf("strip changed a description without a block: %q", got)
	}
}

func TestForceReplaceLeavesSingleBlock(t *testing.T) {
	first := FormatComment("gpt-4o", 0.5, "first insight")
	second := FormatComment("gpt-4o", 0.9, "second insight")

	description := appendInsight("user notes", first)
	replaced := appendInsight(stripInsightBlock(description), second)

	if count := strings.Count(replaced, InsightMarker); count != 1 {
		t.Fatalf("expected exactly one insight block after replace, found %d in %q", count, replaced)
	}
	if !strings.Contains(replaced, "second insight") || strings.Contains(replaced, "first insight") {
		t.Fatalf("replace kept the old block: %q", replaced)
	}
}
