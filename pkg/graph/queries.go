package graph

import "sort"

// findReach returns the set of all tokens reachable from any token in
// fromSet via adjacency, excluding the seeds themselves unless reachable
// from another seed through a non-trivial path. Breadth-first, O(V+E) in
// the induced subgraph.
func findReach(adjacency map[ModuleToken]map[ModuleToken]struct{}, fromSet map[ModuleToken]struct{}) map[ModuleToken]struct{} {
	visited := make(map[ModuleToken]struct{})
	reached := make(map[ModuleToken]struct{})

	queue := make([]ModuleToken, 0, len(fromSet))
	for t := range fromSet {
		if _, ok := visited[t]; !ok {
			visited[t] = struct{}{}
			queue = append(queue, t)
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for next := range adjacency[cur] {
			if _, ok := visited[next]; ok {
				if _, isSeed := fromSet[next]; isSeed {
					reached[next] = struct{}{}
				}
				continue
			}
			visited[next] = struct{}{}
			reached[next] = struct{}{}
			queue = append(queue, next)
		}
	}

	return reached
}

// FindDownstreamModules returns the modules that (transitively) import
// module, i.e. depend on it. as_package expands module with its
// descendants before traversing reverse_imports.
func (g *Graph) FindDownstreamModules(module ModuleToken, asPackage bool) map[ModuleToken]struct{} {
	from := tokenSet(module)
	if asPackage {
		from = g.ExtendWithDescendants(from)
	}
	return findReach(g.reverseImports, from)
}

// FindUpstreamModules returns the modules that module (transitively)
// imports, i.e. what it depends on. Symmetric with FindDownstreamModules,
// traversing imports instead of reverse_imports.
func (g *Graph) FindUpstreamModules(module ModuleToken, asPackage bool) map[ModuleToken]struct{} {
	from := tokenSet(module)
	if asPackage {
		from = g.ExtendWithDescendants(from)
	}
	return findReach(g.imports, from)
}

// FindShortestChain finds the shortest import chain from importer to
// imported. asPackages expands both seeds with their descendants first.
func (g *Graph) FindShortestChain(importer, imported ModuleToken, asPackages bool) []ModuleToken {
	from := tokenSet(importer)
	to := tokenSet(imported)
	if asPackages {
		from = g.ExtendWithDescendants(from)
		to = g.ExtendWithDescendants(to)
	}
	return g.FindShortestChainWithExcludedModulesAndImports(from, to, nil, nil)
}

// FindShortestChainWithExcludedModulesAndImports finds the shortest path
// (minimum edge count) from any token in fromSet to any token in toSet
// through forward imports, ignoring excludedModules (neither traversed nor
// accepted as an endpoint) and any edge (u,v) where v is in
// excludedImports[u]. Returns nil if no such path exists. Deterministic
// given a fixed graph and fixed exclusion sets: ties are broken by
// preferring the lowest-numbered token at each BFS frontier step, since
// tokens are visited in sorted order.
func (g *Graph) FindShortestChainWithExcludedModulesAndImports(
	fromSet, toSet map[ModuleToken]struct{},
	excludedModules map[ModuleToken]struct{},
	excludedImports map[ModuleToken]map[ModuleToken]struct{},
) []ModuleToken {
	isExcludedModule := func(t ModuleToken) bool {
		if excludedModules == nil {
			return false
		}
		_, ok := excludedModules[t]
		return ok
	}
	isExcludedEdge := func(u, v ModuleToken) bool {
		if excludedImports == nil {
			return false
		}
		_, ok := excludedImports[u][v]
		return ok
	}

	prev := make(map[ModuleToken]ModuleToken)
	visited := make(map[ModuleToken]struct{})

	var queue []ModuleToken
	seeds := sortedTokens(fromSet)
	for _, t := range seeds {
		if isExcludedModule(t) {
			continue
		}
		if _, ok := visited[t]; ok {
			continue
		}
		visited[t] = struct{}{}
		queue = append(queue, t)
		if _, isGoal := toSet[t]; isGoal {
			return []ModuleToken{t}
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		neighbors := sortedTokens(g.imports[cur])
		for _, next := range neighbors {
			if isExcludedModule(next) || isExcludedEdge(cur, next) {
				continue
			}
			if _, ok := visited[next]; ok {
				continue
			}
			visited[next] = struct{}{}
			prev[next] = cur
			if _, isGoal := toSet[next]; isGoal {
				return reconstructPath(prev, seeds, next)
			}
			queue = append(queue, next)
		}
	}

	return nil
}

func reconstructPath(prev map[ModuleToken]ModuleToken, seeds []ModuleToken, goal ModuleToken) []ModuleToken {
	path := []ModuleToken{goal}
	cur := goal
	for {
		p, ok := prev[cur]
		if !ok {
			break
		}
		path = append(path, p)
		cur = p
	}
	reverse(path)
	return path
}

func reverse(s []ModuleToken) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func sortedTokens(set map[ModuleToken]struct{}) []ModuleToken {
	out := make([]ModuleToken, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ChainExists reports whether a shortest chain exists between the two
// modules.
func (g *Graph) ChainExists(importer, imported ModuleToken, asPackages bool) bool {
	return g.FindShortestChain(importer, imported, asPackages) != nil
}

// FindShortestChains enumerates chains via the greedy peel: repeatedly
// find a shortest chain, exclude its edges, and repeat until none remain.
// asPackages short-circuits with a ChainExists check, then expands both
// seed sets with descendants before the iterative enumeration.
func (g *Graph) FindShortestChains(importer, imported ModuleToken, asPackages bool) [][]ModuleToken {
	if !g.ChainExists(importer, imported, asPackages) {
		return nil
	}

	from := tokenSet(importer)
	to := tokenSet(imported)
	if asPackages {
		from = g.ExtendWithDescendants(from)
		to = g.ExtendWithDescendants(to)
	}

	return g.findShortestChains(from, to, nil)
}

func (g *Graph) findShortestChains(fromSet, toSet map[ModuleToken]struct{}, excludedModules map[ModuleToken]struct{}) [][]ModuleToken {
	var chains [][]ModuleToken
	excludedImports := make(map[ModuleToken]map[ModuleToken]struct{})

	for {
		chain := g.FindShortestChainWithExcludedModulesAndImports(fromSet, toSet, excludedModules, excludedImports)
		if chain == nil {
			break
		}

		for i := 0; i < len(chain)-1; i++ {
			u, v := chain[i], chain[i+1]
			if excludedImports[u] == nil {
				excludedImports[u] = make(map[ModuleToken]struct{})
			}
			excludedImports[u][v] = struct{}{}
		}

		chains = append(chains, chain)
	}

	return chains
}
