package activity

import "context"

// Repository provides persistence for per-identity timestamps.
type Repository interface {
	History(ctx context.Context, identity string) ([]Timestamp, error)
	Append(ctx context.Context, identity string, ts Timestamp) error
}
