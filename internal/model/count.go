// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import "strconv"

// ResourceCount is the number of resources a task occupies while it runs. It
// is either an exact count or the "all available" variant; the zero value is
// invalid and must not be used.
type ResourceCount struct {
	n   int
	all bool
}

// Exact returns a count of exactly n resources.
func Exact(n int) ResourceCount {
	return ResourceCount{n: n}
}

// All returns the variant that claims every resource of the chosen group.
func All() ResourceCount {
	return ResourceCount{all: true}
}

// IsAll reports whether the count is the "all available" variant.
func (c ResourceCount) IsAll() bool {
	return c.all
}

// N returns the exact count. The second value is false for the All variant.
func (c ResourceCount) N() (int, bool) {
	if c.all {
		return 0, false
	}
	return c.n, true
}

// String renders the count as the scheduler reads it: a number or "all".
func (c ResourceCount) String() string {
	if c.all {
		return "all"
	}
	return strconv.Itoa(c.n)
}
