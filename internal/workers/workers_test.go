// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type mockWorker struct {
	runCount int
	ctx      context.Context
}

func (m *mockWorker) Run(ctx context.Context) {
	m.runCount++
	m.ctx = ctx
}

type markerKey struct{}

// orderWorker is a helper that appends its ID to a shared slice on Run.
type orderWorker struct {
	id    int
	order *[]int
}

func (o *orderWorker) Run(context.Context) {
	*o.order = append(*o.order, o.id)
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1, w2, w3 := &mockWorker{}, &mockWorker{}, &mockWorker{}
	ctx := context.WithValue(context.Background(), markerKey{}, "marker")

	NewWorkers(w1, w2, w3).Run(ctx)

	for i, w := range []*mockWorker{w1, w2, w3} {
		assert.Equalf(t, 1, w.runCount, "worker[%d]", i)
		assert.Equalf(t, ctx, w.ctx, "worker[%d] got a different context", i)
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	assert.NotPanics(t, func() { NewWorkers().Run(context.Background()) })
	assert.NotPanics(t, func() { (&Workers{}).Run(context.Background()) })
}

func TestWorkers_Run_Order(t *testing.T) {
	var order []int
	NewWorkers(
		&orderWorker{id: 1, order: &order},
		&orderWorker{id: 2, order: &order},
		&orderWorker{id: 3, order: &order},
	).Run(context.Background())

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestWorkers_Run_MultipleRuns(t *testing.T) {
	w := &mockWorker{}
	ws := NewWorkers(w)

	ws.Run(context.Background())
	ws.Run(context.Background())
	ws.Run(context.Background())

	assert.Equal(t, 3, w.runCount)
}
