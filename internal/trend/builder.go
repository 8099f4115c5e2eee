// File path: internal/trend/builder.go
package trend

import (
	"sort"
	"time"

	"github.com/nicodishanthj/fitsight/internal/activity"
)

// RecentLimit caps how many prior same-type activities feed the recent
// average comparison.
const RecentLimit = 7

// Context holds the comparison activities used to phrase an insight
// relatively: the previous day's session, the same window one week back, and
// the most recent same-type sessions. It is derived per request and never
// persisted.
type Context struct {
	Yesterday *activity.Activity
	LastWeek  *activity.Activity
	Recent    []activity.Activity
}

// Empty reports whether no comparison activity was found at all.
func (c Context) Empty() bool {
	return c.Yesterday == nil && c.LastWeek == nil && len(c.Recent) == 0
}

// BuildContext selects comparison activities for current from candidates.
// Only candidates sharing the activity type are considered, and current
// itself is always excluded. The yesterday and last-week slots take the
// first candidate whose civil date falls in the window, in the caller's
// order. The function is pure: it never mutates its inputs.
func BuildContext(current activity.Activity, candidates []activity.Activity) Context {
	var result Context
	today := civilDate(current.StartTime)
	yesterday := today.AddDate(0, 0, -1)
	weekLo := today.AddDate(0, 0, -8)
	weekHi := today.AddDate(0, 0, -6)

	for i := range candidates {
		cand := candidates[i]
		if cand.ID == current.ID || cand.Type != current.Type {
			continue
		}
		date := civilDate(cand.StartTime)
		if result.Yesterday == nil && date.Equal(yesterday) {
			c := cand
			result.Yesterday = &c
		}
		if result.LastWeek == nil && !date.Before(weekLo) && !date.After(weekHi) {
			c := cand
			result.LastWeek = &c
		}
		if cand.StartTime.Before(current.StartTime) {
			result.Recent = append(result.Recent, cand)
		}
	}

	sort.SliceStable(result.Recent, func(i, j int) bool {
		return result.Recent[i].StartTime.After(result.Recent[j].StartTime)
	})
	if len(result.Recent) > RecentLimit {
		result.Recent = result.Recent[:RecentLimit]
	}
	return result
}

// civilDate truncates a timestamp to its calendar date. The date components
// are compared as-is, so two activities recorded in different timezones
// compare by their local civil dates.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
