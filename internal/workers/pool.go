// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"

	"github.com/MKhiriev/go-user-auth/internal/logger"
)

// ErrPoolStopped is returned by [Pool.Do] once the pool's run context has
// been cancelled.
var ErrPoolStopped = errors.New("worker pool is stopped")

type job struct {
	fn   func()
	done chan struct{}
}

// Pool executes submitted jobs on a fixed number of goroutines.
// Submitters block until a goroutine picks their job up and finishes it, or
// until their own context is cancelled.
type Pool struct {
	size    int
	jobs    chan job
	stopped chan struct{}

	runOnce sync.Once
	logger  *logger.Logger
}

// NewPool creates a pool with size goroutines. Values below 1 are treated as 1.
// The pool does not process jobs until [Pool.Run] is called.
func NewPool(size int, logger *logger.Logger) *Pool {
	if size < 1 {
		size = 1
	}

	return &Pool{
		size:    size,
		jobs:    make(chan job),
		stopped: make(chan struct{}),
		logger:  logger,
	}
}

// Run starts the pool goroutines. They exit when ctx is cancelled; later
// calls to Run are no-ops.
func (p *Pool) Run(ctx context.Context) {
	p.runOnce.Do(func() {
		p.logger.Info().Int("size", p.size).Msg("starting worker pool")

		var wg sync.WaitGroup
		wg.Add(p.size)
		for range p.size {
			go func() {
				defer wg.Done()
				p.work(ctx)
			}()
		}

		go func() {
			wg.Wait()
			close(p.stopped)
			p.logger.Info().Msg("worker pool stopped")
		}()
	})
}

func (p *Pool) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-p.jobs:
			j.fn()
			close(j.done)
		}
	}
}

// Do runs fn on one of the pool goroutines and waits for it to finish.
//
// It returns ctx.Err() if ctx is cancelled first and [ErrPoolStopped] if the
// pool has shut down. When ctx is cancelled after fn was picked up, fn still
// runs to completion but its result must be discarded by the caller.
func (p *Pool) Do(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	j := job{fn: fn, done: make(chan struct{})}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.stopped:
		return ErrPoolStopped
	case p.jobs <- j:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-j.done:
		return nil
	}
}
