package predecessor

import (
	"context"
	"fmt"

	"github.com/specialistvlad/prodgraph/internal/ctxlog"
	"github.com/specialistvlad/prodgraph/internal/model"
)

// Resolve rewrites the predecessor list of every task in in.Order. The
// exploded-set and flow maps must be complete before it is called.
func Resolve(ctx context.Context, in Input) *Result {
	logger := ctxlog.FromContext(ctx)
	res := &Result{
		Preds:    make(map[string][]string, len(in.Order)),
		Outcomes: make([]Outcome, 0, len(in.Order)),
	}

	for _, t := range in.Order {
		key := t.Key()
		taskLogger := logger.With("task_id", key)

		preds, dropped, err := resolveTask(in, t)
		t.BatchSize = nil

		if err != nil {
			taskLogger.Warn("Predecessor resolution failed, task keeps no predecessors.", "reason", err.Error())
			res.Preds[key] = []string{}
			res.Outcomes = append(res.Outcomes, Outcome{TaskID: key, Status: Degraded, Reason: err.Error()})
			continue
		}
		if len(dropped) > 0 {
			taskLogger.Debug("Predecessor ids do not name any task, dropping them.", "dropped", dropped)
		}
		taskLogger.Debug("Resolved predecessors.", "predecessors", preds)
		res.Preds[key] = preds
		res.Outcomes = append(res.Outcomes, Outcome{TaskID: key, Status: Resolved, Dropped: dropped})
	}
	return res
}

// resolveTask returns the resolved predecessors of t and the ids that were
// dropped because no task carries them.
func resolveTask(in Input, t *model.Task) ([]string, []string, error) {
	key := t.Key()
	raw := in.Preds[key]
	current := append([]string(nil), raw...)

	if t.ID.IsBatch() {
		var err error
		current, err = rewriteBatch(in, t, raw, current)
		if err != nil {
			return nil, nil, err
		}
	}

	current = substituteExploded(in.Exploded, current)

	resolved := make([]string, 0, len(current))
	var dropped []string
	seen := make(map[string]struct{}, len(current))
	for _, p := range current {
		if p == key {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		if _, ok := in.Tasks[p]; !ok {
			dropped = append(dropped, p)
			continue
		}
		resolved = append(resolved, p)
	}
	return resolved, dropped, nil
}

// rewriteBatch applies the batch-aware rewrite to the batch t.
func rewriteBatch(in Input, t *model.Task, raw, current []string) ([]string, error) {
	key := t.Key()
	for _, p := range raw {
		counterpart, _ := t.ID.Counterpart(p)
		c := counterpart.String()

		counterpartFlow, inFlow := in.Flows[c]
		_, inPreds := in.Preds[c]

		if inFlow && inPreds {
			if own, ok := in.Flows[key]; ok && own.Predecessor == counterpartFlow.Parent {
				current = []string{c}
			}
			continue
		}

		if _, plain := in.Tasks[p]; !inPreds && !plain {
			inherited := make([]string, 0, len(current))
			for _, q := range current {
				qs, ok := in.Preds[q]
				if !ok {
					return nil, fmt.Errorf("predecessor %q of %q has no recorded predecessors to inherit", q, key)
				}
				inherited = append(inherited, qs...)
			}
			current = union(inherited)
		}
	}
	return current, nil
}

// substituteExploded replaces every exploded id by its batches. Batches are
// appended after the ids that stay, in the order the exploded ids appear.
func substituteExploded(exploded map[string][]string, preds []string) []string {
	kept := make([]string, 0, len(preds))
	var batches []string
	for _, p := range preds {
		if set, ok := exploded[p]; ok {
			batches = append(batches, set...)
			continue
		}
		kept = append(kept, p)
	}
	return append(kept, batches...)
}

// union returns ids without duplicates, keeping first occurrences in order.
func union(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
