package depgraph

import "sort"

// DetectCycles finds circular dependencies by depth-first search over the
// internal edges. Roots are visited in discovery order and neighbors in
// lexicographic order, so the same graph always yields the same cycle list.
//
// Every back-edge found on a distinct walk is recorded as its own cycle,
// even when two walks cover the same strongly connected component. Edges
// lying on any cycle get IsCircular set.
func DetectCycles(modules *ModuleSet, edges []*Edge) [][]string {
	adjacency := make(map[string][]string, modules.Len())
	byPair := make(map[[2]string]*Edge, len(edges))
	for _, e := range edges {
		adjacency[e.Source] = append(adjacency[e.Source], e.Target)
		byPair[[2]string{e.Source, e.Target}] = e
	}
	for _, targets := range adjacency {
		sort.Strings(targets)
	}

	var cycles [][]string
	visited := make(map[string]bool, modules.Len())
	onStack := make(map[string]bool)

	var visit func(name string, path []string)
	visit = func(name string, path []string) {
		visited[name] = true
		onStack[name] = true
		path = append(path, name)

		for _, next := range adjacency[name] {
			if onStack[next] {
				start := 0
				for i, n := range path {
					if n == next {
						start = i
						break
					}
				}
				cycle := make([]string, 0, len(path)-start+1)
				cycle = append(cycle, path[start:]...)
				cycle = append(cycle, next)
				cycles = append(cycles, cycle)

				for i := 0; i < len(cycle)-1; i++ {
					if e := byPair[[2]string{cycle[i], cycle[i+1]}]; e != nil {
						e.IsCircular = true
					}
				}
				continue
			}
			if !visited[next] {
				// each branch walks its own copy of the path
				branch := make([]string, len(path))
				copy(branch, path)
				visit(next, branch)
			}
		}

		onStack[name] = false
	}

	for _, name := range modules.Names() {
		if !visited[name] {
			visit(name, nil)
		}
	}

	return cycles
}
