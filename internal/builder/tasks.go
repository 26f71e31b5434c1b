package builder

import (
	"context"
	"fmt"

	"github.com/specialistvlad/prodgraph/internal/batch"
	"github.com/specialistvlad/prodgraph/internal/ctxlog"
	"github.com/specialistvlad/prodgraph/internal/model"
	"github.com/specialistvlad/prodgraph/internal/predecessor"
	"github.com/specialistvlad/prodgraph/internal/records"
	"github.com/specialistvlad/prodgraph/internal/taskid"
)

// pendingTask is a validated task record waiting to be added to the context.
type pendingTask struct {
	task    *model.Task
	preds   []string
	flow    predecessor.Flow
	batches []*model.Task
}

// buildTasks validates every task record, explodes the batched ones and then
// registers the result in c. No task is added when any record is invalid.
func buildTasks(ctx context.Context, c *Context, recs []records.Task, splitter *batch.Splitter) error {
	logger := ctxlog.FromContext(ctx)

	pending := make([]pendingTask, 0, len(recs))
	for i, rec := range recs {
		p, err := newPendingTask(ctx, c, rec, splitter)
		if err != nil {
			return fmt.Errorf("task record %d (%q): %w", i, string(rec.ID), err)
		}
		pending = append(pending, p)
	}

	for _, p := range pending {
		if p.batches == nil {
			if err := c.addTask(p.task, p.preds); err != nil {
				return err
			}
			continue
		}
		if err := c.addExploded(p.task.Key(), p.preds, p.flow, p.batches); err != nil {
			return err
		}
		logger.Debug("Build: Task exploded into batches.", "task", p.task.Key(), "batch_count", len(p.batches))
	}
	return nil
}

func newPendingTask(ctx context.Context, c *Context, rec records.Task, splitter *batch.Splitter) (pendingTask, error) {
	id, err := taskid.Parse(string(rec.ID))
	if err != nil {
		return pendingTask{}, fmt.Errorf("%w: taskno: %w", model.ErrConfig, err)
	}

	t := &model.Task{ID: id}
	if t.Duration, err = requireNonNegative(rec.Duration, "duration"); err != nil {
		return pendingTask{}, err
	}
	if t.Priority, err = rec.Priority.Require("priority"); err != nil {
		return pendingTask{}, err
	}
	if t.Quantity, err = requireNonNegative(rec.Quantity, "quantity"); err != nil {
		return pendingTask{}, err
	}
	if t.ResourceCount, err = rec.ResourceCount.Resolve(); err != nil {
		return pendingTask{}, err
	}
	if t.BatchSize, err = batchSize(rec.MicroBatchSize); err != nil {
		return pendingTask{}, err
	}
	t.ResourceGroups = c.lookupGroups(ctx, id.String(), rec.ResourceGroupIDs)

	p := pendingTask{task: t, preds: refs(rec.Predecessors)}
	if t.BatchSize == nil {
		return p, nil
	}

	batches, err := splitter.Split(t)
	if err != nil {
		return pendingTask{}, err
	}
	if len(batches) == 0 {
		// Nothing to split; the task is kept whole.
		t.BatchSize = nil
		return p, nil
	}
	p.batches = batches
	p.flow = predecessor.Flow{
		Parent:      string(rec.ParentCollection),
		Predecessor: string(rec.PredecessorCollection),
	}
	return p, nil
}

func requireNonNegative(v records.Int, field string) (int, error) {
	n, err := v.Require(field)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative, got %d", model.ErrConfig, field, n)
	}
	return n, nil
}

// batchSize maps the micro-batch field: absent or zero means the task is not
// batched.
func batchSize(v records.Int) (*int, error) {
	if !v.Valid || v.Value == 0 {
		return nil, nil
	}
	if v.Value < 0 {
		return nil, fmt.Errorf("%w: micro_batch_size must be positive, got %d", model.ErrConfig, v.Value)
	}
	size := v.Value
	return &size, nil
}

func (c *Context) lookupGroups(ctx context.Context, task string, ids []records.Int) []*model.ResourceGroup {
	groups := make([]*model.ResourceGroup, 0, len(ids))
	for _, id := range ids {
		if !id.Valid {
			continue
		}
		g, ok := c.Groups[id.Value]
		if !ok {
			ctxlog.FromContext(ctx).Warn("Build: Unknown resource group on task, skipping.", "task", task, "resource_group_id", id.Value)
			continue
		}
		groups = append(groups, g)
	}
	return groups
}

func refs(in []records.Ref) []string {
	out := make([]string, 0, len(in))
	for _, r := range in {
		if r == "" {
			continue
		}
		out = append(out, string(r))
	}
	return out
}
