// Package assembler materializes resolved predecessor ids into task
// references and emits the final, id-ordered task list.
package assembler

import (
	"context"
	"fmt"
	"sort"

	"github.com/specialistvlad/prodgraph/internal/ctxlog"
	"github.com/specialistvlad/prodgraph/internal/dag"
	"github.com/specialistvlad/prodgraph/internal/model"
)

// Graph is the assembled dependency graph.
type Graph struct {
	// Tasks holds every task sorted by id.
	Tasks []*model.Task
	// Levels maps a task id to its dependency depth, roots being 0.
	Levels map[string]int
}

// Assemble wires every task to its predecessor tasks. Ids that name no task are
// dropped. A cycle among the remaining edges is fatal and reported with
// model.ErrCycle.
func Assemble(ctx context.Context, tasks map[string]*model.Task, preds map[string][]string) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)

	ids := make([]string, 0, len(tasks))
	for id := range tasks {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	topology, err := buildTopology(ids, tasks, preds)
	if err != nil {
		return nil, err
	}
	if err := topology.DetectCycles(); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrCycle, err)
	}
	logger.Debug("Assemble: Cycle detection passed.", "task_count", len(ids))

	a := &assembly{tasks: tasks, preds: preds, done: make(map[string]bool, len(ids))}
	for _, id := range ids {
		a.link(id)
	}

	levels, err := topology.Levels()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrCycle, err)
	}

	ordered := make([]*model.Task, len(ids))
	for i, id := range ids {
		ordered[i] = tasks[id]
	}
	logger.Debug("Assemble: Task list ordered.", "task_count", len(ordered))
	return &Graph{Tasks: ordered, Levels: levels}, nil
}

func buildTopology(ids []string, tasks map[string]*model.Task, preds map[string][]string) (*dag.Graph, error) {
	g := dag.New()
	for _, id := range ids {
		g.AddNode(id)
	}
	for _, id := range ids {
		for _, p := range preds[id] {
			if _, ok := tasks[p]; !ok {
				continue
			}
			if p == id {
				return nil, fmt.Errorf("%w: task %s depends on itself", model.ErrCycle, id)
			}
			if err := g.AddEdge(p, id); err != nil {
				return nil, fmt.Errorf("link %s -> %s: %w", p, id, err)
			}
		}
	}
	return g, nil
}

// assembly links predecessors depth-first; done memoizes tasks whose
// predecessor lists are complete.
type assembly struct {
	tasks map[string]*model.Task
	preds map[string][]string
	done  map[string]bool
}

func (a *assembly) link(id string) {
	if a.done[id] {
		return
	}
	a.done[id] = true

	t := a.tasks[id]
	for _, p := range a.preds[id] {
		pred, ok := a.tasks[p]
		if !ok {
			continue
		}
		a.link(p)
		if !t.HasPredecessor(pred) {
			t.Predecessors = append(t.Predecessors, pred)
		}
	}
}
