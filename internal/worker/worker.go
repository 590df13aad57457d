// Package worker runs the river job workers of the service.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"shortener/internal/links"
	"shortener/pkg/logger"
	"shortener/pkg/metrics"
	"shortener/pkg/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"go.uber.org/zap/exp/zapslog"
)

// Options configure the worker pool.
type Options struct {
	// MaxWorkers is the number of click jobs processed concurrently.
	MaxWorkers int
}

// Deps are the collaborators of the workers.
type Deps struct {
	// Links persists click counts.
	Links storage.LinkStorage
	// Instruments records worker metrics; may be nil.
	Instruments *metrics.Instruments
}

// Start registers the workers and starts processing jobs from the database
// behind dbPool. Stop the returned client to shut the workers down.
func Start(ctx context.Context, dbPool *pgxpool.Pool, deps Deps, opts Options) (*river.Client[pgx.Tx], error) {
	workers := river.NewWorkers()
	river.AddWorker(workers, NewClickWorker(deps.Links, deps.Instruments))

	riverClient, err := river.NewClient(riverpgxv5.New(dbPool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 1},
			links.ClickQueue:   {MaxWorkers: max(opts.MaxWorkers, 1)},
		},
		Workers: workers,
		Logger:  slog.New(zapslog.NewHandler(logger.Get(ctx).Core())),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create river queue client: %w", err)
	}

	if err := riverClient.Start(ctx); err != nil {
		return nil, fmt.Errorf("could not start river queue client: %w", err)
	}

	return riverClient, nil
}
