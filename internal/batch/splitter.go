// Package batch explodes tasks that declare a micro-batch size into ordered
// batch-tasks.
package batch

import (
	"fmt"

	"github.com/specialistvlad/prodgraph/internal/model"
	"github.com/specialistvlad/prodgraph/internal/taskid"
)

// Splitter partitions oversized tasks with a Strategy.
type Splitter struct {
	strategy Strategy
}

// New creates a splitter. A nil strategy selects FillFirst.
func New(strategy Strategy) *Splitter {
	if strategy == nil {
		strategy = FillFirst{}
	}
	return &Splitter{strategy: strategy}
}

// Split returns the batches of t in order. Every batch inherits t's attributes
// and gets id `{t}-{n}` (n from 1), no batch size, a resource count of exactly
// one, and a duration proportional to its share of the quantity. A task with a
// zero quantity yields no batches.
func (s *Splitter) Split(t *model.Task) ([]*model.Task, error) {
	if t.BatchSize == nil {
		return nil, fmt.Errorf("%w: task %s has no micro-batch size", model.ErrConfig, t.Key())
	}
	size := *t.BatchSize
	if size <= 0 {
		return nil, fmt.Errorf("%w: task %s: micro_batch_size must be positive, got %d", model.ErrConfig, t.Key(), size)
	}
	if t.Quantity < 0 {
		return nil, fmt.Errorf("%w: task %s: quantity must not be negative, got %d", model.ErrConfig, t.Key(), t.Quantity)
	}
	if t.ID.IsBatch() {
		return nil, fmt.Errorf("%w: task %s is already a batch", model.ErrConfig, t.Key())
	}
	if t.Quantity == 0 {
		return nil, nil
	}

	quantities := s.strategy.Quantities(t.Quantity, size)
	if err := check(quantities, t.Quantity, size); err != nil {
		return nil, fmt.Errorf("task %s: %w", t.Key(), err)
	}

	batches := make([]*model.Task, len(quantities))
	for i, q := range quantities {
		b := t.Clone()
		b.ID = taskid.Batched(t.ID.Base, i+1)
		b.Quantity = q
		b.Duration = scaleDuration(t.Duration, q, t.Quantity)
		b.BatchSize = nil
		b.ResourceCount = model.Exact(1)
		batches[i] = b
	}
	return batches, nil
}

// scaleDuration returns the share of duration a batch of q units out of total
// takes, rounded up.
func scaleDuration(duration, q, total int) int {
	if duration <= 0 {
		return duration
	}
	return (duration*q + total - 1) / total
}

func check(quantities []int, total, size int) error {
	if len(quantities) != batchCount(total, size) {
		return fmt.Errorf("split strategy produced %d batches, want %d", len(quantities), batchCount(total, size))
	}
	sum := 0
	for _, q := range quantities {
		if q <= 0 || q > size {
			return fmt.Errorf("split strategy produced batch quantity %d outside (0, %d]", q, size)
		}
		sum += q
	}
	if sum != total {
		return fmt.Errorf("split strategy quantities sum to %d, want %d", sum, total)
	}
	return nil
}
