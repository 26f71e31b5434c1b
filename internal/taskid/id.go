package taskid

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse validates a raw record id and returns it as a plain (unbatched) ID.
func Parse(raw string) (ID, error) {
	if raw == "" {
		return ID{}, fmt.Errorf("task id cannot be empty")
	}
	if strings.TrimSpace(raw) != raw {
		return ID{}, fmt.Errorf("task id %q has leading or trailing whitespace", raw)
	}
	return ID{Base: raw}, nil
}

// Batched returns the id of the n-th batch of base.
func Batched(base string, n int) ID {
	if n < 1 {
		panic(fmt.Sprintf("taskid: batch index must be >= 1, got %d", n))
	}
	return ID{Base: base, Batch: n}
}

// IsBatch reports whether the id names a generated batch.
func (id ID) IsBatch() bool {
	return id.Batch > 0
}

// Parent returns the id of the logical task the batch was split from. For a
// plain id it returns the id unchanged.
func (id ID) Parent() ID {
	return ID{Base: id.Base}
}

// Counterpart returns the id of the batch of base that carries the same batch
// index as id. It is how a batch names the same-position batch of one of its
// predecessors. The second return value is false for a plain id.
func (id ID) Counterpart(base string) (ID, bool) {
	if !id.IsBatch() {
		return ID{}, false
	}
	return ID{Base: base, Batch: id.Batch}, true
}

// String serializes the ID into its canonical map-key form.
func (id ID) String() string {
	if !id.IsBatch() {
		return id.Base
	}
	var sb strings.Builder
	sb.Grow(len(id.Base) + 4)
	sb.WriteString(id.Base)
	sb.WriteByte('-')
	sb.WriteString(strconv.Itoa(id.Batch))
	return sb.String()
}
