package workers

import "context"

// Workers runs a fixed set of workers in registration order.
type Workers struct {
	workers []Worker
}

// NewWorkers groups workers for a single Run call.
func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run starts every registered worker with ctx.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}
