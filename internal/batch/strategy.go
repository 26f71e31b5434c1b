package batch

import (
	"fmt"
	"strings"
)

// Strategy decides how a total quantity is distributed over ceil(total/size)
// batches. Implementations must be deterministic, return exactly that many
// positive quantities, keep each at or below size, and sum to total.
type Strategy interface {
	Quantities(total, size int) []int
}

// FillFirst fills every batch to size and leaves the remainder to the last one.
type FillFirst struct{}

func (FillFirst) Quantities(total, size int) []int {
	full, rest := total/size, total%size
	out := make([]int, 0, full+1)
	for i := 0; i < full; i++ {
		out = append(out, size)
	}
	if rest > 0 {
		out = append(out, rest)
	}
	return out
}

// Even spreads the quantity as evenly as possible; leading batches take the
// extra units.
type Even struct{}

func (Even) Quantities(total, size int) []int {
	n := batchCount(total, size)
	if n == 0 {
		return nil
	}
	base, extra := total/n, total%n
	out := make([]int, n)
	for i := range out {
		out[i] = base
		if i < extra {
			out[i]++
		}
	}
	return out
}

// StrategyByName maps a configuration value to a Strategy. The empty string
// selects FillFirst.
func StrategyByName(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "fill":
		return FillFirst{}, nil
	case "even":
		return Even{}, nil
	default:
		return nil, fmt.Errorf("unknown split strategy %q: must be 'fill' or 'even'", name)
	}
}

func batchCount(total, size int) int {
	return (total + size - 1) / size
}
