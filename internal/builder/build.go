package builder

import (
	"context"
	"fmt"
	"time"

	"github.com/specialistvlad/prodgraph/internal/assembler"
	"github.com/specialistvlad/prodgraph/internal/availability"
	"github.com/specialistvlad/prodgraph/internal/batch"
	"github.com/specialistvlad/prodgraph/internal/ctxlog"
	"github.com/specialistvlad/prodgraph/internal/model"
	"github.com/specialistvlad/prodgraph/internal/predecessor"
	"github.com/specialistvlad/prodgraph/internal/records"
	"github.com/specialistvlad/prodgraph/internal/resourcegroup"
)

// Options tune a build.
type Options struct {
	// Reference is the instant window minutes are measured from. The zero
	// value means today at midnight UTC.
	Reference time.Time
	// Strategy splits batched tasks. Nil means batch.FillFirst.
	Strategy batch.Strategy
}

// Plan is the output of a build.
type Plan struct {
	Reference time.Time
	Resources map[int]*model.Resource
	Groups    map[int]*model.ResourceGroup
	// Tasks is sorted by id, with predecessors linked.
	Tasks []*model.Task

	// Preds holds the resolved predecessor ids.
	Preds    map[string][]string
	Flows    map[string]predecessor.Flow
	Exploded map[string][]string

	Outcomes []predecessor.Outcome
	Levels   map[string]int
}

// Degraded returns the outcomes of tasks whose predecessors could not be
// resolved.
func (p *Plan) Degraded() []predecessor.Outcome {
	var out []predecessor.Outcome
	for _, o := range p.Outcomes {
		if o.Status == predecessor.Degraded {
			out = append(out, o)
		}
	}
	return out
}

// Task returns the task with the given id.
func (p *Plan) Task(id string) (*model.Task, bool) {
	for _, t := range p.Tasks {
		if t.Key() == id {
			return t, true
		}
	}
	return nil, false
}

// DefaultReference returns midnight UTC of the day containing now.
func DefaultReference(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Build runs every construction phase over set.
func Build(ctx context.Context, set *records.Set, opts Options) (*Plan, error) {
	logger := ctxlog.FromContext(ctx)
	if set == nil {
		set = &records.Set{}
	}
	ref := opts.Reference
	if ref.IsZero() {
		ref = DefaultReference(time.Now())
	}
	logger.Debug("Build: Starting.", "reference", ref.Format(time.RFC3339), "record_count", set.Len())

	c := newContext()

	// Phase 1: resources.
	normalizer, err := availability.New(ref)
	if err != nil {
		return nil, err
	}
	if c.Resources, err = normalizer.NormalizeAll(ctx, set.Resources); err != nil {
		return nil, fmt.Errorf("normalizing resources: %w", err)
	}
	logger.Debug("Build: Phase 1 (resources) complete.", "resource_count", len(c.Resources))

	// Phase 2: groups.
	if c.Groups, err = resourcegroup.Resolve(ctx, set.Groups, c.Resources); err != nil {
		return nil, fmt.Errorf("resolving resource groups: %w", err)
	}
	logger.Debug("Build: Phase 2 (groups) complete.", "group_count", len(c.Groups))

	// Phase 3: tasks and batches.
	if err := buildTasks(ctx, c, set.Tasks, batch.New(opts.Strategy)); err != nil {
		return nil, fmt.Errorf("building tasks: %w", err)
	}
	logger.Debug("Build: Phase 3 (tasks) complete.", "task_count", len(c.Tasks), "exploded_count", len(c.Exploded))

	// Phase 4: predecessors.
	resolved := predecessor.Resolve(ctx, c.resolverInput())
	logger.Debug("Build: Phase 4 (predecessors) complete.", "degraded_count", len(resolved.Degraded()))

	// Phase 5: assembly.
	graph, err := assembler.Assemble(ctx, c.Tasks, resolved.Preds)
	if err != nil {
		return nil, fmt.Errorf("assembling graph: %w", err)
	}
	logger.Debug("Build: Phase 5 (assembly) complete.", "task_count", len(graph.Tasks))

	return &Plan{
		Reference: ref,
		Resources: c.Resources,
		Groups:    c.Groups,
		Tasks:     graph.Tasks,
		Preds:     resolved.Preds,
		Flows:     c.Flows,
		Exploded:  c.Exploded,
		Outcomes:  resolved.Outcomes,
		Levels:    graph.Levels,
	}, nil
}
