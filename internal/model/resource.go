// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

// Window is a half-open span of usable time, in minutes relative to the
// plan's reference instant.
type Window struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Duration returns the length of the window in minutes.
func (w Window) Duration() int {
	return w.End - w.Start
}

// Resource is a schedulable unit with its availability.
type Resource struct {
	ID      int
	Windows []Window
}

// ResourceGroup is a set of interchangeable resources.
type ResourceGroup struct {
	ID        int
	Resources []*Resource
}

// ResourceIDs returns the ids of the group's members in group order.
func (g *ResourceGroup) ResourceIDs() []int {
	ids := make([]int, len(g.Resources))
	for i, r := range g.Resources {
		ids[i] = r.ID
	}
	return ids
}
