// Package graph implements the import graph's store and queries: token
// interning over Module names, forward/reverse adjacency, a hierarchy
// index for descendant expansion, and the reach/shortest-chain/
// all-shortest-chains queries built on top of them.
package graph

import (
	"sort"
	"strings"

	"github.com/ksoze/impgraph/pkg/domain"
)

// ModuleToken is an interned handle for a Module name, used throughout the
// graph so that set membership and adjacency lookups are integer-keyed
// rather than string-keyed.
type ModuleToken int

// Graph is an immutable, token-interned directed multigraph over Module
// names. Construct with New, then query with the methods below; there is
// no mutation API beyond AddImport, used only while building the graph.
type Graph struct {
	tokenOf map[string]ModuleToken
	nameOf  []string

	imports        map[ModuleToken]map[ModuleToken]struct{}
	reverseImports map[ModuleToken]map[ModuleToken]struct{}

	// descendants[t] is the set of tokens whose names are strict dotted
	// descendants of nameOf[t]. Computed lazily from tokenOf on first use
	// (see descendantsOf) and cached here.
	descendants map[ModuleToken][]ModuleToken
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		tokenOf:        make(map[string]ModuleToken),
		imports:        make(map[ModuleToken]map[ModuleToken]struct{}),
		reverseImports: make(map[ModuleToken]map[ModuleToken]struct{}),
	}
}

// Intern returns the token for name, interning it if this is the first
// time it has been seen.
func (g *Graph) Intern(name string) ModuleToken {
	if t, ok := g.tokenOf[name]; ok {
		return t
	}
	t := ModuleToken(len(g.nameOf))
	g.tokenOf[name] = t
	g.nameOf = append(g.nameOf, name)
	g.imports[t] = make(map[ModuleToken]struct{})
	g.reverseImports[t] = make(map[ModuleToken]struct{})
	return t
}

// Token returns the token for an already-interned name.
func (g *Graph) Token(name string) (ModuleToken, bool) {
	t, ok := g.tokenOf[name]
	return t, ok
}

// Name returns the dotted name a token was interned from.
func (g *Graph) Name(t ModuleToken) string {
	if int(t) < 0 || int(t) >= len(g.nameOf) {
		return ""
	}
	return g.nameOf[t]
}

// AddImport records that importer imports imported, interning both names.
// Idempotent: inserting the same edge twice has no additional effect.
// Both imports and reverseImports are updated together, maintaining the
// invariant that the two maps are always exact transposes of each other.
func (g *Graph) AddImport(importerName, importedName string) {
	importer := g.Intern(importerName)
	imported := g.Intern(importedName)
	g.imports[importer][imported] = struct{}{}
	g.reverseImports[imported][importer] = struct{}{}
}

// Build constructs a Graph from ImportsByModule, interning every importer
// and imported module name encountered (including modules with empty
// import sets, so they still exist as graph nodes).
func Build(imports domain.ImportsByModule) *Graph {
	g := New()
	for module := range imports {
		g.Intern(module.Name)
	}
	for _, set := range imports {
		for imp := range set {
			g.AddImport(imp.Importer, imp.Imported)
		}
	}
	return g
}

// descendantsOf returns the tokens whose names start with
// g.Name(t) + ".", computed once per token and cached.
func (g *Graph) descendantsOf(t ModuleToken) []ModuleToken {
	if cached, ok := g.descendants[t]; ok {
		return cached
	}
	if g.descendants == nil {
		g.descendants = make(map[ModuleToken][]ModuleToken)
	}

	prefix := g.Name(t) + "."
	var out []ModuleToken
	for name, other := range g.tokenOf {
		if strings.HasPrefix(name, prefix) {
			out = append(out, other)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	g.descendants[t] = out
	return out
}

// ExtendWithDescendants returns tokens ∪ {descendants(t) : t ∈ tokens}, the
// "with-descendants" expansion used by package-scoped queries.
func (g *Graph) ExtendWithDescendants(tokens map[ModuleToken]struct{}) map[ModuleToken]struct{} {
	out := make(map[ModuleToken]struct{}, len(tokens))
	for t := range tokens {
		out[t] = struct{}{}
		for _, d := range g.descendantsOf(t) {
			out[d] = struct{}{}
		}
	}
	return out
}

func tokenSet(tokens ...ModuleToken) map[ModuleToken]struct{} {
	out := make(map[ModuleToken]struct{}, len(tokens))
	for _, t := range tokens {
		out[t] = struct{}{}
	}
	return out
}
