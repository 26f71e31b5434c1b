package predecessor

import "github.com/specialistvlad/prodgraph/internal/model"

// Flow records which item collection a batch belongs to and which collection
// its predecessor batch must come from.
type Flow struct {
	Parent      string `json:"parent" yaml:"parent"`
	Predecessor string `json:"predecessor" yaml:"predecessor"`
}

// Input is the construction state the resolver reads. None of the maps are
// modified.
type Input struct {
	// Order lists the tasks of the task map in record order.
	Order []*model.Task
	// Tasks is the task map keyed by canonical id.
	Tasks map[string]*model.Task
	// Preds holds the raw predecessor ids of every task, including the
	// pre-split ids of exploded tasks.
	Preds map[string][]string
	// Flows is keyed by batch id.
	Flows map[string]Flow
	// Exploded maps a pre-split id to its batch ids in order.
	Exploded map[string][]string
}

// Status tells whether a task's predecessors were resolved.
type Status int

const (
	Resolved Status = iota
	Degraded
)

func (s Status) String() string {
	if s == Degraded {
		return "degraded"
	}
	return "resolved"
}

// Outcome is the per-task result of resolution.
type Outcome struct {
	TaskID string
	Status Status
	// Reason explains a Degraded outcome.
	Reason string
	// Dropped lists predecessor ids that named no task and were left out.
	Dropped []string
}

// Result is the resolved predecessor map together with one outcome per task,
// in record order.
type Result struct {
	Preds    map[string][]string
	Outcomes []Outcome
}

// Degraded returns the outcomes of tasks that lost their predecessors.
func (r *Result) Degraded() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Status == Degraded {
			out = append(out, o)
		}
	}
	return out
}
