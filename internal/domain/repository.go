package domain

import "context"

// JobStore defines concurrency-safe persistence for job records. A store
// serves many readers and exactly one writer per job, and must never hold
// its synchronization across a blocking call.
type JobStore interface {
	// Create allocates a fresh identifier, inserts a queued job, and
	// returns the identifier.
	Create(ctx context.Context) (string, error)
	// Get returns a point-in-time snapshot of the job, or ErrNotFound.
	Get(ctx context.Context, id string) (*Job, error)
	// Update applies the mutation atomically with respect to concurrent
	// Get and Update calls. Updates against a terminal job are ignored.
	Update(ctx context.Context, id string, mut JobMutation) error
}
