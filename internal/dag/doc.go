// Package dag provides a small string-keyed directed acyclic graph used to
// validate the resolved task dependencies: cycle detection with the offending
// path, a deterministic topological order, and dependency levels.
//
// Edges point from a dependency to its dependent. Every traversal visits ids
// in sorted order so that results do not depend on map iteration.
package dag
