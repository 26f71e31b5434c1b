package dag

import "sort"

// TopologicalOrder returns every node so that each comes after all of its
// dependencies. Ties are broken by id. A cyclic graph yields a *CycleError.
func (g *Graph) TopologicalOrder() ([]string, error) {
	inDegree := make(map[string]int, len(g.nodes))
	var ready []string
	for id, n := range g.nodes {
		inDegree[id] = len(n.deps)
		if len(n.deps) == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)

		var released []string
		for _, next := range sortedKeys(g.nodes[id].dependents) {
			inDegree[next]--
			if inDegree[next] == 0 {
				released = append(released, next)
			}
		}
		ready = append(ready, released...)
		sort.Strings(ready)
	}

	if len(order) != len(g.nodes) {
		if err := g.DetectCycles(); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// Levels assigns every node its dependency depth: roots are level 0 and any
// other node sits one level below its deepest dependency.
func (g *Graph) Levels() (map[string]int, error) {
	order, err := g.TopologicalOrder()
	if err != nil {
		return nil, err
	}
	levels := make(map[string]int, len(order))
	for _, id := range order {
		level := 0
		for depID := range g.nodes[id].deps {
			if l := levels[depID] + 1; l > level {
				level = l
			}
		}
		levels[id] = level
	}
	return levels, nil
}
