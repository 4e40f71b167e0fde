package jsonfile

import (
	"context"
	"sync"

	"github.com/rpggio/burstguard/internal/domain/activity"
)

// ActivityRepository implements activity.Repository over a JSON file. Every
// call reloads the whole file; Append rewrites it.
type ActivityRepository struct {
	path string
	mu   sync.Mutex
}

// NewActivityRepository creates a repository for the file at path.
func NewActivityRepository(path string) *ActivityRepository {
	return &ActivityRepository{path: path}
}

// Path returns the backing file path.
func (r *ActivityRepository) Path() string {
	return r.path
}

// History returns the timestamps recorded for identity.
func (r *ActivityRepository) History(ctx context.Context, identity string) ([]activity.Timestamp, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	log, err := LoadStore(r.path)
	if err != nil {
		return nil, err
	}
	return log[identity], nil
}

// Append adds ts to the end of identity's history and persists the file.
func (r *ActivityRepository) Append(ctx context.Context, identity string, ts activity.Timestamp) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	log, err := LoadStore(r.path)
	if err != nil {
		return err
	}
	log[identity] = append(log[identity], ts)
	return SaveStore(r.path, log)
}
