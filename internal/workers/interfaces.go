// Package workers provides abstractions for managing and running
// background workers in the server.
// It defines the Worker interface, a Workers aggregate that runs multiple
// workers in a unified way, and a fixed-size Pool used to bound CPU-heavy
// jobs such as password hashing.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run starts the worker and returns; the worker keeps going in its own
// goroutines until ctx is cancelled.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    go func() { <-ctx.Done() }()
//	}
type Worker interface {
	Run(ctx context.Context)
}
