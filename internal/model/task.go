// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import "github.com/specialistvlad/prodgraph/internal/taskid"

// Task is a single node of the dependency graph.
type Task struct {
	ID       taskid.ID
	Duration int
	Priority int
	Quantity int

	ResourceCount  ResourceCount
	ResourceGroups []*ResourceGroup

	// BatchSize is the micro-batch size declared on a task that still has to be
	// split. It is nil on every batch and on tasks that are never split.
	BatchSize *int

	// Predecessors is populated by the graph assembler and holds the tasks this
	// one waits on, each at most once.
	Predecessors []*Task
}

// Key returns the canonical string id the construction maps are keyed by.
func (t *Task) Key() string {
	return t.ID.String()
}

// PredecessorKeys returns the ids of the task's predecessors in order.
func (t *Task) PredecessorKeys() []string {
	keys := make([]string, len(t.Predecessors))
	for i, p := range t.Predecessors {
		keys[i] = p.Key()
	}
	return keys
}

// HasPredecessor reports whether p is already one of t's predecessors.
func (t *Task) HasPredecessor(p *Task) bool {
	for _, existing := range t.Predecessors {
		if existing == p {
			return true
		}
	}
	return false
}

// Clone returns a shallow copy of t without predecessors. Resource groups are
// shared with t.
func (t *Task) Clone() *Task {
	c := *t
	c.Predecessors = nil
	if t.BatchSize != nil {
		size := *t.BatchSize
		c.BatchSize = &size
	}
	return &c
}
