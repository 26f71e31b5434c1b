// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model holds the resolved, in-memory representation of a production
// plan: resources with their usable windows, resource groups, and tasks wired
// to their predecessors.
//
// # Core Concepts
//
//   - Resource: a schedulable unit (a machine, a worker) with a sorted list of
//     availability windows expressed in minutes from the plan's reference
//     instant.
//
//   - ResourceGroup: a named set of resources a task may be assigned to. Groups
//     share Resource pointers; they never own them.
//
//   - Task: one node of the dependency graph. A task is either a plain task from
//     the records or one batch of a task that was exploded into micro-batches.
//
// Values in this package are produced by the construction stages and are
// treated as immutable once the builder hands them to a scheduler.
package model
