// File path: internal/reconcile/comment.go
package reconcile

import (
	"context"
	"fmt"

	"github.com/nicodishanthj/fitsight/internal/remote"
)

// upsertComment implements the remote-comment contract: fetch the current
// description, no-op when an insight is already present and force is false,
// strip-and-reappend when force is true, plain append otherwise. The remote
// description is always replaced in full; the new full text is computed
// here. Errors are returned, never raised past this boundary.
func upsertComment(ctx context.Context, client remote.Client, activityID, comment string, force bool) error {
	detail, err := client.Activity(ctx, activityID)
	if err != nil {
		return fmt.Errorf("fetch remote activity: %w", err)
	}
	description := detail.Description
	if HasInsight(description) {
		if !force {
			return nil
		}
		description = stripInsightBlock(description)
	}
	updated := appendInsight(description, comment)
	if err := client.UpdateDescription(ctx, activityID, updated); err != nil {
		return fmt.Errorf("update remote description: %w", err)
	}
	return nil
}
