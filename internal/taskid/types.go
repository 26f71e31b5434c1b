package taskid

// ID is the structured representation of a task identifier.
type ID struct {
	// Base is the id of the logical task as it appears in the records.
	Base string
	// Batch is the 1-based batch index, or 0 for a task that was not split.
	Batch int
}
