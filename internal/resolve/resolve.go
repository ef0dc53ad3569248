// Package resolve turns a raw parsed import into a classified graph edge:
// absolute-name resolution for relative imports, internal/external
// classification against the set of known modules, and external-name
// distillation against the set of discovered packages.
package resolve

import (
	"sort"
	"strings"

	"github.com/ksoze/impgraph/pkg/domain"
)

// AbsoluteName resolves a (possibly dotted-relative) imported object name
// against the importing module.
func AbsoluteName(importer domain.Module, isPackage bool, name string) string {
	dots := countLeadingDots(name)
	if dots == 0 {
		return name
	}

	parts := strings.Split(importer.Name, ".")
	var base string
	switch {
	case isPackage && dots == 1:
		base = importer.Name
	case isPackage:
		base = strings.Join(parts[:len(parts)-dots+1], ".")
	default:
		base = strings.Join(parts[:len(parts)-dots], ".")
	}

	return base + "." + name[dots:]
}

func countLeadingDots(s string) int {
	n := 0
	for n < len(s) && s[n] == '.' {
		n++
	}
	return n
}

// Internal classifies an absolute module name against the set of known
// internal modules: an exact match wins; failing that, the name with its
// last dotted component removed wins if it is a known module (the import
// targets a symbol defined in that module, not a submodule). Shorter
// prefixes are not tried. Otherwise it reports false and the caller treats
// the import as external.
func Internal(absoluteName string, allModules map[domain.Module]struct{}) (domain.Module, bool) {
	candidate := domain.Module{Name: absoluteName}
	if _, ok := allModules[candidate]; ok {
		return candidate, true
	}
	if idx := strings.LastIndex(absoluteName, "."); idx >= 0 {
		parent := domain.Module{Name: absoluteName[:idx]}
		if _, ok := allModules[parent]; ok {
			return parent, true
		}
	}
	return domain.Module{}, false
}

// isStrictDescendant reports whether name starts with ancestor + ".".
func isStrictDescendant(name, ancestor string) bool {
	return strings.HasPrefix(name, ancestor+".")
}

// DistillExternal turns a module name already classified as external into
// the coarsest external name that does not shadow an internal namespace
// package. Returns ("", false) when moduleName is itself a parent
// namespace of a found package and must not be recorded.
func DistillExternal(moduleName string, foundPackages map[string]domain.FoundPackage) (string, bool) {
	root := moduleName
	if idx := strings.Index(moduleName, "."); idx >= 0 {
		root = moduleName[:idx]
	}

	for _, pkg := range foundPackages {
		if isStrictDescendant(pkg.Name, moduleName) {
			return "", false
		}
	}

	names := make([]string, 0, len(foundPackages))
	for name := range foundPackages {
		names = append(names, name)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	candidates := make(map[string]struct{})
	for _, pkgName := range names {
		if !isStrictDescendant(pkgName, root) {
			continue
		}

		internalParts := strings.Split(pkgName, ".")
		externalParts := strings.Split(moduleName, ".")

		var shared []string
		for len(externalParts) > 0 && len(internalParts) > 0 && externalParts[0] == internalParts[0] {
			shared = append(shared, externalParts[0])
			externalParts = externalParts[1:]
			internalParts = internalParts[1:]
		}
		if len(externalParts) == 0 {
			continue
		}
		shared = append(shared, externalParts[0])
		candidates[strings.Join(shared, ".")] = struct{}{}
	}

	if len(candidates) == 0 {
		return root, true
	}

	deepest := deepestCandidate(candidates)
	return deepest, true
}

// deepestCandidate picks the candidate with the most dotted components,
// breaking ties alphabetically for a deterministic result.
func deepestCandidate(candidates map[string]struct{}) string {
	names := make([]string, 0, len(candidates))
	for name := range candidates {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		di := strings.Count(names[i], ".")
		dj := strings.Count(names[j], ".")
		if di != dj {
			return di < dj
		}
		return names[i] < names[j]
	})
	return names[len(names)-1]
}
