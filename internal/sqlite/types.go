// File path: internal/sqlite/types.go
package sqlite

import "time"

// InsightRecord is one stored insight, keyed uniquely by activity_id. The
// activity name is denormalized so listings render without a remote call.
type InsightRecord struct {
	ID           int64     `db:"id" json:"-"`
	ActivityID   string    `db:"activity_id" json:"activity_id"`
	ActivityName string    `db:"activity_name" json:"activity_name"`
	Insight      string    `db:"insight" json:"insight"`
	Model        string    `db:"model" json:"model"`
	Confidence   float64   `db:"confidence" json:"confidence"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
