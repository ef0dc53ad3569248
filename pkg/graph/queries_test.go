package graph

import "testing"

func chainNames(g *Graph, chain []ModuleToken) []string {
	names := make([]string, len(chain))
	for i, t := range chain {
		names[i] = g.Name(t)
	}
	return names
}

func assertChainEquals(t *testing.T, g *Graph, chain []ModuleToken, want ...string) {
	t.Helper()
	got := chainNames(g, chain)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestFindDownstreamAndUpstreamModules(t *testing.T) {
	g := New()
	g.AddImport("a", "b")
	g.AddImport("b", "c")

	a, _ := g.Token("a")
	c, _ := g.Token("c")

	downstreamOfC := g.FindDownstreamModules(c, false)
	names := map[string]bool{}
	for t := range downstreamOfC {
		names[g.Name(t)] = true
	}
	if !names["a"] || !names["b"] {
		t.Errorf("downstream of c = %v, want to include a and b", names)
	}

	upstreamOfA := g.FindUpstreamModules(a, false)
	names = map[string]bool{}
	for t := range upstreamOfA {
		names[g.Name(t)] = true
	}
	if !names["b"] || !names["c"] {
		t.Errorf("upstream of a = %v, want to include b and c", names)
	}
}

func TestReachMonotonicity(t *testing.T) {
	g := New()
	g.AddImport("a", "x")
	g.AddImport("b", "y")
	g.AddImport("x", "z")

	a, _ := g.Token("a")
	b, _ := g.Token("b")

	reachA := findReach(g.imports, tokenSet(a))
	reachAB := findReach(g.imports, tokenSet(a, b))

	for tok := range reachA {
		if _, ok := reachAB[tok]; !ok {
			t.Errorf("reach(A) ⊄ reach(A∪B): %v missing from superset", g.Name(tok))
		}
	}
}

func TestFindShortestChainDirect(t *testing.T) {
	g := New()
	g.AddImport("a", "b")

	a, _ := g.Token("a")
	b, _ := g.Token("b")

	chain := g.FindShortestChain(a, b, false)
	assertChainEquals(t, g, chain, "a", "b")
}

func TestFindShortestChainPicksShortestOverLonger(t *testing.T) {
	g := New()
	g.AddImport("a", "b")
	g.AddImport("b", "d")
	g.AddImport("a", "d")

	a, _ := g.Token("a")
	d, _ := g.Token("d")

	chain := g.FindShortestChain(a, d, false)
	assertChainEquals(t, g, chain, "a", "d")
}

func TestFindShortestChainNoPath(t *testing.T) {
	g := New()
	g.Intern("a")
	g.Intern("b")

	a, _ := g.Token("a")
	b, _ := g.Token("b")

	if chain := g.FindShortestChain(a, b, false); chain != nil {
		t.Fatalf("expected no chain, got %v", chainNames(g, chain))
	}
}

func TestChainExists(t *testing.T) {
	g := New()
	g.AddImport("a", "b")
	a, _ := g.Token("a")
	b, _ := g.Token("b")

	if !g.ChainExists(a, b, false) {
		t.Error("expected a chain to exist")
	}
	if g.ChainExists(b, a, false) {
		t.Error("did not expect a chain from b to a")
	}
}

func TestFindShortestChainsDiamond(t *testing.T) {
	// A→B→D and A→C→D: two disjoint shortest chains of equal length.
	g := New()
	g.AddImport("A", "B")
	g.AddImport("B", "D")
	g.AddImport("A", "C")
	g.AddImport("C", "D")

	a, _ := g.Token("A")
	d, _ := g.Token("D")

	chains := g.FindShortestChains(a, d, false)
	if len(chains) != 2 {
		t.Fatalf("got %d chains, want 2", len(chains))
	}
	for _, chain := range chains {
		if len(chain) != 3 {
			t.Errorf("chain %v has length %d, want 3", chainNames(g, chain), len(chain))
		}
	}

	seen := map[string]bool{}
	for _, chain := range chains {
		names := chainNames(g, chain)
		seen[names[1]] = true
	}
	if !seen["B"] || !seen["C"] {
		t.Errorf("expected one chain through B and one through C, got %v", seen)
	}
}

func TestFindShortestChainsTerminatesWithNoPath(t *testing.T) {
	g := New()
	g.Intern("a")
	g.Intern("b")
	a, _ := g.Token("a")
	b, _ := g.Token("b")

	chains := g.FindShortestChains(a, b, false)
	if chains != nil {
		t.Fatalf("expected no chains, got %v", chains)
	}
}

func TestFindShortestChainWithExcludedModules(t *testing.T) {
	g := New()
	g.AddImport("a", "b")
	g.AddImport("b", "d")
	g.AddImport("a", "c")
	g.AddImport("c", "d")

	a, _ := g.Token("a")
	b, _ := g.Token("b")
	d, _ := g.Token("d")

	chain := g.FindShortestChainWithExcludedModulesAndImports(
		tokenSet(a), tokenSet(d), tokenSet(b), nil,
	)
	assertChainEquals(t, g, chain, "a", "c", "d")
}
