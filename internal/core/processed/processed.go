// Package processed defines the durable record of task ids that have
// already been duplicated, and the store contract implementations satisfy.
package processed

import (
	"context"
	"time"
)

// Record is the durable fact that one source task has been duplicated.
// Membership is keyed by the source task's id and is append-only during
// normal operation; only an explicit prune removes entries.
type Record struct {
	ID           string    `json:"id"`
	Title        string    `json:"title,omitempty"`
	DuplicateID  string    `json:"duplicate_id,omitempty"`
	DuplicatedAt time.Time `json:"duplicated_at"`
}

// Store persists processed records across runs. Implementations must make
// Record durable before returning so a crash after a confirmed remote
// creation cannot lose the fact that it happened.
type Store interface {
	// Contains reports whether the given source task id has been recorded.
	Contains(ctx context.Context, id string) (bool, error)

	// Record durably adds a record. Recording an id that already exists is
	// a no-op and must not fail.
	Record(ctx context.Context, rec Record) error

	// List returns all records, newest first.
	List(ctx context.Context) ([]Record, error)

	// Prune removes records whose DuplicatedAt is before cutoff and
	// returns how many were removed. This is the only sanctioned way
	// membership shrinks.
	Prune(ctx context.Context, cutoff time.Time) (int, error)
}
