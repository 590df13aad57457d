package storage

import (
	"context"

	"github.com/riverqueue/river"
)

// JobStorage defines the minimal interface for enqueueing background jobs.
// The args parameter contains the job payload and opts can be used to
// customize insertion behavior (e.g., queue name, delay, priority).
//
// Example:
//
//	_, err := storage.AddJob(ctx, links.ClickArgs{Code: "abcd1234"}, nil)
//	if err != nil { /* handle error */ }
type JobStorage interface {
	// AddJob enqueues a new job with the given arguments. It reports false when
	// the job was skipped as a duplicate of a unique job.
	AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error)
}
