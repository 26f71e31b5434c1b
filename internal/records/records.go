// Package records defines the raw, flatly-recorded production data the plan is
// built from, and decodes it from JSON, YAML and HCL documents.
//
// Field names follow the upstream data export. Integer fields are tolerant of
// numbers encoded as strings, as the export produces both.
package records

// Availability is one schedule entry of a resource.
type Availability struct {
	Start    string   `json:"start_datetime" yaml:"start_datetime"`
	End      string   `json:"end_datetime" yaml:"end_datetime"`
	Capacity *float64 `json:"capacity_percent" yaml:"capacity_percent"`
	IsAbsent bool     `json:"is_absent" yaml:"is_absent"`
}

// Resource is a resource record with its raw schedule.
type Resource struct {
	ID           Int            `json:"resource_id" yaml:"resource_id"`
	Availability []Availability `json:"availability" yaml:"availability"`
}

// Group is a resource-group record.
type Group struct {
	ID          Int   `json:"resource_group_id" yaml:"resource_group_id"`
	ResourceIDs []Int `json:"resource_id" yaml:"resource_id"`
}

// Task is a task record. The collection ids are only meaningful when the task
// declares a micro-batch size.
type Task struct {
	ID                    Ref   `json:"taskno" yaml:"taskno"`
	Duration              Int   `json:"duration" yaml:"duration"`
	Priority              Int   `json:"priority" yaml:"priority"`
	Quantity              Int   `json:"quantity" yaml:"quantity"`
	MicroBatchSize        Int   `json:"micro_batch_size" yaml:"micro_batch_size"`
	ResourceGroupIDs      []Int `json:"resource_group_id" yaml:"resource_group_id"`
	Predecessors          []Ref `json:"predecessors" yaml:"predecessors"`
	ResourceCount         Count `json:"resource_count" yaml:"resource_count"`
	ParentCollection      Ref   `json:"parent_item_collection_id" yaml:"parent_item_collection_id"`
	PredecessorCollection Ref   `json:"predecessor_item_collection_id" yaml:"predecessor_item_collection_id"`
}

// Set is the complete input of one construction run.
type Set struct {
	Resources []Resource
	Groups    []Group
	Tasks     []Task
}

// Merge appends the records of other to s.
func (s *Set) Merge(other *Set) {
	if other == nil {
		return
	}
	s.Resources = append(s.Resources, other.Resources...)
	s.Groups = append(s.Groups, other.Groups...)
	s.Tasks = append(s.Tasks, other.Tasks...)
}

// Len returns the total number of records in the set.
func (s *Set) Len() int {
	return len(s.Resources) + len(s.Groups) + len(s.Tasks)
}
