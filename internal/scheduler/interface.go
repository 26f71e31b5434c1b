package scheduler

import (
	"context"

	"github.com/specialistvlad/prodgraph/internal/model"
)

// Engine schedules an assembled task list on normalized resources.
//
// Tasks arrive sorted by id with their predecessors linked. Implementations
// must not modify resources or tasks.
type Engine interface {
	Schedule(ctx context.Context, resources map[int]*model.Resource, tasks []*model.Task) (*Result, error)
}

// Result summarizes what an engine did with a plan.
type Result struct {
	Resources int
	Groups    int
	Tasks     int
	// Levels is the number of dependency levels in the task graph.
	Levels int
}
