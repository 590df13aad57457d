package postgres

import (
	"context"
	"fmt"

	"github.com/riverqueue/river"
)

// AddJob enqueues a new River job using the insert-only client bound to the
// database handle. The job is visible to workers once the insert succeeds.
func (p *PgSQL) AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error) {
	job, err := p.jobs.Insert(ctx, args, opts)
	if err != nil {
		return false, fmt.Errorf("could not insert job: %w", err)
	}

	return !job.UniqueSkippedAsDuplicate, nil
}
