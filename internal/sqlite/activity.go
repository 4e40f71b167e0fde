package sqlite

import (
	"context"
	"fmt"

	"github.com/rpggio/burstguard/internal/domain/activity"
)

// ActivityRepository implements activity.Repository for SQLite
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// History returns the timestamps for identity in insertion order
func (r *ActivityRepository) History(ctx context.Context, identity string) ([]activity.Timestamp, error) {
	query := `
		SELECT recorded_at
		FROM activity_timestamps
		WHERE identity = ?
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, identity)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query activity: %v", activity.ErrStorageRead, err)
	}
	defer rows.Close()

	var history []activity.Timestamp
	for rows.Next() {
		var ts string
		if err := rows.Scan(&ts); err != nil {
			return nil, fmt.Errorf("%w: failed to scan activity: %v", activity.ErrStorageRead, err)
		}
		history = append(history, activity.Timestamp(ts))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating activity rows: %v", activity.ErrStorageRead, err)
	}

	return history, nil
}

// Append inserts a single timestamp for identity
func (r *ActivityRepository) Append(ctx context.Context, identity string, ts activity.Timestamp) error {
	query := `INSERT INTO activity_timestamps (identity, recorded_at) VALUES (?, ?)`

	if _, err := r.db.ExecContext(ctx, query, identity, string(ts)); err != nil {
		return fmt.Errorf("%w: failed to append activity: %v", activity.ErrStorageWrite, err)
	}
	return nil
}
