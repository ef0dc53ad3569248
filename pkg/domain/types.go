// Package domain defines the core data types shared by the scanner, cache
// codec, and graph: modules, found packages, and direct imports.
package domain

import "fmt"

// Module is a single source file or package, identified by its dotted
// name (e.g. "a.b.c"). Two modules are equal iff their names are equal.
type Module struct {
	Name string
}

// String returns the module's dotted name.
func (m Module) String() string {
	return m.Name
}

// ModuleFile binds a Module to the filename that defines it.
type ModuleFile struct {
	Module   Module
	Filename string
}

// FoundPackage is an internal package rooted at some dotted name,
// associated with a directory on disk and the module files it owns.
// Provided by the package-discovery collaborator (internal/discovery).
type FoundPackage struct {
	Name       string
	Directory  string
	ModuleFiles map[Module]ModuleFile
}

// Modules returns the set of Modules owned by this package.
func (p FoundPackage) Modules() map[Module]struct{} {
	out := make(map[Module]struct{}, len(p.ModuleFiles))
	for m := range p.ModuleFiles {
		out[m] = struct{}{}
	}
	return out
}

// DirectImport is one import statement's worth of data: the importer and
// imported module names, the 1-based line number, and the verbatim source
// line. Equality is structural over all four fields.
type DirectImport struct {
	Importer     string
	Imported     string
	LineNumber   int
	LineContents string
}

// ImportsByModule maps each Module to the set of DirectImports it issues.
// The importer field of every DirectImport keyed by M must equal M.Name.
type ImportsByModule map[Module]map[DirectImport]struct{}

// NewImportsByModule creates an empty ImportsByModule map.
func NewImportsByModule() ImportsByModule {
	return make(ImportsByModule)
}

// Add inserts imp into the set for module, creating the set if needed.
func (ibm ImportsByModule) Add(module Module, imp DirectImport) {
	set, ok := ibm[module]
	if !ok {
		set = make(map[DirectImport]struct{})
		ibm[module] = set
	}
	set[imp] = struct{}{}
}

// ModulesFromFoundPackages returns the union of module_files[*].module
// across packages: the set of all internal modules.
func ModulesFromFoundPackages(packages map[string]FoundPackage) map[Module]struct{} {
	modules := make(map[Module]struct{})
	for _, pkg := range packages {
		for m := range pkg.ModuleFiles {
			modules[m] = struct{}{}
		}
	}
	return modules
}

// GoString renders a DirectImport for debugging/error messages.
func (d DirectImport) GoString() string {
	return fmt.Sprintf("%s -> %s (line %d)", d.Importer, d.Imported, d.LineNumber)
}
