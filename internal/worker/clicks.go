package worker

import (
	"context"
	"fmt"
	"shortener/internal/links"
	"shortener/pkg/logger"
	"shortener/pkg/metrics"
	"shortener/pkg/storage"

	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// ClickWorker persists one click per RecordClickJob. Storage errors are
// returned so river retries the job; a code that no longer exists cancels it.
type ClickWorker struct {
	river.WorkerDefaults[links.ClickArgs]

	links storage.LinkStorage
	ins   *metrics.Instruments
}

// NewClickWorker returns a worker incrementing click counters in s.
func NewClickWorker(s storage.LinkStorage, ins *metrics.Instruments) *ClickWorker {
	return &ClickWorker{links: s, ins: ins}
}

// Work implements river.Worker.
func (w *ClickWorker) Work(ctx context.Context, job *river.Job[links.ClickArgs]) error {
	ctx = logger.WithFields(ctx, zap.Int64("job_id", job.ID), zap.String("code", job.Args.Code.String()))

	found, err := w.links.IncrementClicks(ctx, job.Args.Code, 1)
	if err != nil {
		logger.Warn(ctx, "could not record click", zap.Error(err), zap.Int("attempt", job.Attempt))

		return fmt.Errorf("could not record click: %w", err)
	}
	if !found {
		logger.Warn(ctx, "click for unknown code, cancelling job")

		return river.JobCancel(fmt.Errorf("link %s not found", job.Args.Code))
	}

	if w.ins != nil {
		w.ins.ClicksRecorded.Add(ctx, 1)
	}
	logger.Debug(ctx, "click recorded")

	return nil
}
