package scheduler

import (
	"fmt"
	"sort"

	"github.com/specialistvlad/prodgraph/internal/dag"
	"github.com/specialistvlad/prodgraph/internal/model"
)

// Payload is the document handed to the solver.
type Payload struct {
	Resources []ResourceEntry `json:"resources" yaml:"resources"`
	Groups    []GroupEntry    `json:"resource_groups" yaml:"resource_groups"`
	Tasks     []TaskEntry     `json:"tasks" yaml:"tasks"`
}

type ResourceEntry struct {
	ID      int            `json:"resource_id" yaml:"resource_id"`
	Windows []model.Window `json:"windows" yaml:"windows"`
}

type GroupEntry struct {
	ID          int   `json:"resource_group_id" yaml:"resource_group_id"`
	ResourceIDs []int `json:"resource_id" yaml:"resource_id"`
}

// TaskEntry is one task of the payload. ResourceCount uses the record
// convention: 0 means every resource of the group.
type TaskEntry struct {
	ID               string   `json:"taskno" yaml:"taskno"`
	Parent           string   `json:"parent,omitempty" yaml:"parent,omitempty"`
	Batch            int      `json:"batch,omitempty" yaml:"batch,omitempty"`
	Duration         int      `json:"duration" yaml:"duration"`
	Priority         int      `json:"priority" yaml:"priority"`
	Quantity         int      `json:"quantity" yaml:"quantity"`
	ResourceCount    int      `json:"resource_count" yaml:"resource_count"`
	ResourceGroupIDs []int    `json:"resource_group_id" yaml:"resource_group_id"`
	Predecessors     []string `json:"predecessors" yaml:"predecessors"`
	Level            int      `json:"level" yaml:"level"`
}

// NewPayload flattens resources and tasks into a payload. Groups are collected
// from the tasks that reference them.
func NewPayload(resources map[int]*model.Resource, tasks []*model.Task) (*Payload, error) {
	levels, err := taskLevels(tasks)
	if err != nil {
		return nil, err
	}

	p := &Payload{
		Resources: make([]ResourceEntry, 0, len(resources)),
		Groups:    []GroupEntry{},
		Tasks:     make([]TaskEntry, 0, len(tasks)),
	}

	resourceIDs := make([]int, 0, len(resources))
	for id := range resources {
		resourceIDs = append(resourceIDs, id)
	}
	sort.Ints(resourceIDs)
	for _, id := range resourceIDs {
		windows := resources[id].Windows
		if windows == nil {
			windows = []model.Window{}
		}
		p.Resources = append(p.Resources, ResourceEntry{ID: id, Windows: windows})
	}

	groups := make(map[int]*model.ResourceGroup)
	for _, t := range tasks {
		entry := TaskEntry{
			ID:               t.Key(),
			Duration:         t.Duration,
			Priority:         t.Priority,
			Quantity:         t.Quantity,
			ResourceGroupIDs: make([]int, 0, len(t.ResourceGroups)),
			Predecessors:     t.PredecessorKeys(),
			Level:            levels[t.Key()],
		}
		if t.ID.IsBatch() {
			entry.Parent = t.ID.Parent().String()
			entry.Batch = t.ID.Batch
		}
		if n, ok := t.ResourceCount.N(); ok {
			entry.ResourceCount = n
		}
		for _, g := range t.ResourceGroups {
			entry.ResourceGroupIDs = append(entry.ResourceGroupIDs, g.ID)
			groups[g.ID] = g
		}
		p.Tasks = append(p.Tasks, entry)
	}

	groupIDs := make([]int, 0, len(groups))
	for id := range groups {
		groupIDs = append(groupIDs, id)
	}
	sort.Ints(groupIDs)
	for _, id := range groupIDs {
		p.Groups = append(p.Groups, GroupEntry{ID: id, ResourceIDs: groups[id].ResourceIDs()})
	}
	return p, nil
}

func taskLevels(tasks []*model.Task) (map[string]int, error) {
	g := dag.New()
	for _, t := range tasks {
		g.AddNode(t.Key())
	}
	for _, t := range tasks {
		for _, p := range t.Predecessors {
			if !g.HasNode(p.Key()) {
				return nil, fmt.Errorf("task %s waits on %s, which is not in the task list", t.Key(), p.Key())
			}
			if err := g.AddEdge(p.Key(), t.Key()); err != nil {
				return nil, fmt.Errorf("%w: %w", model.ErrCycle, err)
			}
		}
	}
	levels, err := g.Levels()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrCycle, err)
	}
	return levels, nil
}

func maxLevel(p *Payload) int {
	if len(p.Tasks) == 0 {
		return 0
	}
	highest := 0
	for _, t := range p.Tasks {
		if t.Level > highest {
			highest = t.Level
		}
	}
	return highest + 1
}
