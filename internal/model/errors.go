// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import "errors"

var (
	// ErrConfig marks a record that cannot be turned into a valid plan. It is
	// always fatal and is returned before any task is added.
	ErrConfig = errors.New("invalid configuration")

	// ErrDuplicateTask is returned when two tasks, plain or generated, end up
	// with the same id.
	ErrDuplicateTask = errors.New("duplicate task id")

	// ErrCycle is returned when the resolved predecessor edges form a cycle.
	ErrCycle = errors.New("dependency cycle")
)
