// File path: internal/sqlite/queries.go
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// Exists reports whether an insight is stored for the activity.
func (s *Store) Exists(ctx context.Context, activityID string) (bool, error) {
	if err := s.ensureReady(); err != nil {
		return false, err
	}
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(1) FROM insights WHERE activity_id = ?`, activityID); err != nil {
		return false, fmt.Errorf("check insight: %w", err)
	}
	return count > 0, nil
}

// Upsert inserts the record or fully replaces the row stored under the same
// activity identifier. Last write wins; there is no partial-field update.
func (s *Store) Upsert(ctx context.Context, record InsightRecord) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	if strings.TrimSpace(record.ActivityID) == "" {
		return errors.New("activity id required")
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO insights (activity_id, activity_name, insight, model, confidence, created_at)
                VALUES (?, ?, ?, ?, ?, ?)
                ON CONFLICT(activity_id) DO UPDATE SET
                        activity_name = excluded.activity_name,
                        insight = excluded.insight,
                        model = excluded.model,
                        confidence = excluded.confidence,
                        created_at = excluded.created_at`,
		record.ActivityID, record.ActivityName, record.Insight, record.Model, record.Confidence, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert insight: %w", err)
	}
	return nil
}

// Get returns the stored insight for the activity, or nil when absent.
func (s *Store) Get(ctx context.Context, activityID string) (*InsightRecord, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	var record InsightRecord
	if err := s.db.GetContext(ctx, &record, `SELECT * FROM insights WHERE activity_id = ?`, activityID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get insight: %w", err)
	}
	return &record, nil
}

// ListAll returns every stored insight, most recently created first.
func (s *Store) ListAll(ctx context.Context) ([]InsightRecord, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	records := []InsightRecord{}
	if err := s.db.SelectContext(ctx, &records, `SELECT * FROM insights ORDER BY created_at DESC, id DESC`); err != nil {
		return nil, fmt.Errorf("select insights: %w", err)
	}
	return records, nil
}

// MissingAmong returns the subset of ids with no stored record, preserving
// the caller's order.
func (s *Store) MissingAmong(ctx context.Context, ids []string) ([]string, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT activity_id FROM insights WHERE activity_id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("build missing query: %w", err)
	}
	query = s.db.Rebind(query)
	stored := []string{}
	if err := s.db.SelectContext(ctx, &stored, query, args...); err != nil {
		return nil, fmt.Errorf("select stored ids: %w", err)
	}
	present := make(map[string]bool, len(stored))
	for _, id := range stored {
		present[id] = true
	}
	missing := make([]string, 0, len(ids))
	for _, id := range ids {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// Delete removes the stored insight for the activity. Deleting a missing key
// is not an error; force regeneration relies on delete-then-recreate.
func (s *Store) Delete(ctx context.Context, activityID string) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM insights WHERE activity_id = ?`, activityID); err != nil {
		return fmt.Errorf("delete insight: %w", err)
	}
	return nil
}
