// Package scan implements the import scanner: for each known internal
// module, locate its file, parse its imports, resolve and classify them,
// and assemble the resulting domain.ImportsByModule. Work is distributed
// over a bounded goroutine pool, with each worker's partial result merged
// into the shared map under a mutex.
package scan

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ksoze/impgraph/internal/fsys"
	"github.com/ksoze/impgraph/internal/pyimport"
	"github.com/ksoze/impgraph/internal/resolve"
	"github.com/ksoze/impgraph/pkg/cache"
	"github.com/ksoze/impgraph/pkg/domain"
)

// Options controls what a scan includes.
type Options struct {
	IncludeExternalPackages    bool
	ExcludeTypeCheckingImports bool

	// Concurrency bounds the number of modules scanned in parallel. Zero
	// or negative means unbounded (one goroutine per module).
	Concurrency int
}

// Parser is the subset of pyimport.Parser's capability the scanner needs;
// an interface so the scanner can be tested without a real tree-sitter
// grammar instance.
type Parser interface {
	Parse(source, filename string) ([]pyimport.ParsedImport, error)
}

// lockedParser serializes Parse calls, so that a Parser which is not safe
// for concurrent use (such as pyimport.Parser) can be shared by the worker
// pool in Scan.
type lockedParser struct {
	mu sync.Mutex
	p  Parser
}

func (l *lockedParser) Parse(source, filename string) ([]pyimport.ParsedImport, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.p.Parse(source, filename)
}

// Scan runs the scanner over every module owned by the given found
// packages, producing ImportsByModule for every one of them (including
// modules with no imports at all).
func Scan(fs fsys.FileSystem, parser Parser, foundPackages map[string]domain.FoundPackage, opts Options) (domain.ImportsByModule, error) {
	allModules := domain.ModulesFromFoundPackages(foundPackages)
	owner := buildOwnerIndex(foundPackages)

	modules := make([]domain.Module, 0, len(allModules))
	for m := range allModules {
		modules = append(modules, m)
	}

	result := domain.NewImportsByModule()
	var mu sync.Mutex
	errs := make(chan error, len(modules))

	// distillCache memoizes DistillExternal by absolute imported name: many
	// modules in a codebase import the same third-party root (e.g.
	// "requests"), and the distillation walk over foundPackages is the same
	// for all of them. The cache is safe for concurrent use by the worker
	// pool below; unbounded, since the key space is capped by the number of
	// distinct external names actually imported across the scan.
	distillCache := cache.New(cache.Options{})

	parser = &lockedParser{p: parser}

	sem := make(chan struct{}, poolSize(opts.Concurrency, len(modules)))
	var wg sync.WaitGroup

	for _, m := range modules {
		m := m
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			imports, err := scanModule(fs, parser, m, owner, allModules, foundPackages, distillCache, opts)
			if err != nil {
				errs <- fmt.Errorf("scanning %s: %w", m.Name, err)
				return
			}

			mu.Lock()
			for imp := range imports {
				result.Add(m, imp)
			}
			if _, ok := result[m]; !ok {
				result[m] = make(map[domain.DirectImport]struct{})
			}
			mu.Unlock()
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

func poolSize(requested, total int) int {
	if requested > 0 {
		return requested
	}
	if total == 0 {
		return 1
	}
	return total
}

func buildOwnerIndex(foundPackages map[string]domain.FoundPackage) map[domain.Module]domain.FoundPackage {
	owner := make(map[domain.Module]domain.FoundPackage)
	for _, pkg := range foundPackages {
		for m := range pkg.Modules() {
			owner[m] = pkg
		}
	}
	return owner
}

func scanModule(
	fs fsys.FileSystem,
	parser Parser,
	module domain.Module,
	owner map[domain.Module]domain.FoundPackage,
	allModules map[domain.Module]struct{},
	foundPackages map[string]domain.FoundPackage,
	distillCache *cache.LRUCache,
	opts Options,
) (map[domain.DirectImport]struct{}, error) {
	pkg, ok := owner[module]
	if !ok {
		return nil, &domain.MissingOwnerError{Module: module.Name}
	}

	filename, isPackage, err := determineModuleFilename(fs, module, pkg)
	if err != nil {
		return nil, err
	}

	source, err := fs.Read(filename)
	if err != nil {
		return nil, err
	}

	parsed, err := parser.Parse(source, filename)
	if err != nil {
		return nil, err
	}

	imports := make(map[domain.DirectImport]struct{})

	for _, p := range parsed {
		if opts.ExcludeTypeCheckingImports && p.TypecheckingOnly {
			continue
		}

		absolute := resolve.AbsoluteName(module, isPackage, p.Name)

		if internalModule, ok := resolve.Internal(absolute, allModules); ok {
			imports[domain.DirectImport{
				Importer:     module.Name,
				Imported:     internalModule.Name,
				LineNumber:   p.LineNumber,
				LineContents: p.LineContents,
			}] = struct{}{}
			continue
		}

		if !opts.IncludeExternalPackages {
			continue
		}

		distilled, ok := distillExternalCached(distillCache, absolute, foundPackages)
		if !ok {
			continue
		}
		imports[domain.DirectImport{
			Importer:     module.Name,
			Imported:     distilled,
			LineNumber:   p.LineNumber,
			LineContents: p.LineContents,
		}] = struct{}{}
	}

	return imports, nil
}

// distilledName is the cached shape of a DistillExternal lookup, including
// the suppressed (Ok: false) case so that it is cached too.
type distilledName struct {
	Name string
	Ok   bool
}

func distillExternalCached(c *cache.LRUCache, absolute string, foundPackages map[string]domain.FoundPackage) (string, bool) {
	if cached, hit := c.Get(absolute); hit {
		d := cached.(distilledName)
		return d.Name, d.Ok
	}

	name, ok := resolve.DistillExternal(absolute, foundPackages)
	c.Set(absolute, distilledName{Name: name, Ok: ok})
	return name, ok
}

// determineModuleFilename computes module's source filename by joining the
// owning package's directory with the leaf components of module.Name
// beyond the package's own depth, trying "{root}.py" then
// "{root}/__init__.py" in that order.
func determineModuleFilename(fs fsys.FileSystem, module domain.Module, pkg domain.FoundPackage) (filename string, isPackage bool, err error) {
	topLevel := strings.Split(pkg.Name, ".")
	moduleComponents := strings.Split(module.Name, ".")
	leaf := moduleComponents[len(topLevel):]

	rootComponents := append([]string{pkg.Directory}, leaf...)
	root := fs.Join(rootComponents...)

	normal := root + ".py"
	if fs.Exists(normal) {
		return normal, false, nil
	}

	init := fs.Join(root, "__init__.py")
	if fs.Exists(init) {
		return init, true, nil
	}

	return "", false, &domain.FileNotFoundError{Path: root}
}
