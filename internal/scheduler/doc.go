// Package scheduler defines the hand-off between graph construction and the
// engine that places tasks on resources. The solver itself lives outside this
// module; Export writes the payload it consumes.
package scheduler
