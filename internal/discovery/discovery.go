// Package discovery walks a root directory on disk and produces the
// domain.FoundPackage values the scanner needs: directory walk, default
// excludes, and a per-directory ignore file matched with
// github.com/sabhiram/go-gitignore.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/ksoze/impgraph/internal/fsys"
	"github.com/ksoze/impgraph/pkg/domain"
)

// defaultExcludes lists the directory names that are never meaningful
// Python packages; the walk skips them.
var defaultExcludes = map[string]bool{
	"node_modules": true,
	".git":         true,
	"__pycache__":  true,
	".venv":        true,
	"venv":         true,
	"dist":         true,
	"build":        true,
	".idea":        true,
	".vscode":      true,
	".hg":          true,
	".svn":         true,
	".tox":         true,
	".nox":         true,
}

// Options configures a discovery walk.
type Options struct {
	// IgnoreFileName is the name of the per-directory gitignore-style
	// exclusion file (e.g. ".impgraphignore"). Empty disables it.
	IgnoreFileName string
}

// Root names a directory to walk and the dotted package name its
// top-level __init__ file should be rooted at.
type Root struct {
	Name string
	Dir  string
}

// Discover walks each root directory, returning one domain.FoundPackage per
// directory that contains an __init__.py (or __init__.pyi) file, plus the
// .py files owned by it. Sibling directories without an __init__ file are
// skipped entirely along with their descendants, matching Python's own
// package-recognition rule.
func Discover(fs fsys.FileSystem, roots []Root, opts Options) (map[string]domain.FoundPackage, error) {
	out := make(map[string]domain.FoundPackage)

	for _, root := range roots {
		if err := discoverRoot(fs, root, opts, out); err != nil {
			return nil, fmt.Errorf("discovering root %q: %w", root.Name, err)
		}
	}

	return out, nil
}

func discoverRoot(fs fsys.FileSystem, root Root, opts Options, out map[string]domain.FoundPackage) error {
	ignorers := loadIgnoreChain(root.Dir, opts.IgnoreFileName, nil)

	return walk(fs, root.Dir, root.Name, opts, ignorers, out)
}

type ignoreFrame struct {
	baseDir string
	matcher *gitignore.GitIgnore
}

func loadIgnoreChain(dir, ignoreFileName string, parent []ignoreFrame) []ignoreFrame {
	chain := parent
	if ignoreFileName == "" {
		return chain
	}
	path := filepath.Join(dir, ignoreFileName)
	if _, err := os.Stat(path); err != nil {
		return chain
	}
	m, err := gitignore.CompileIgnoreFile(path)
	if err != nil {
		return chain
	}
	return append(append([]ignoreFrame{}, chain...), ignoreFrame{baseDir: dir, matcher: m})
}

func ignored(chain []ignoreFrame, absPath string, isDir bool) bool {
	for _, frame := range chain {
		rel, err := filepath.Rel(frame.baseDir, absPath)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		// A directory is also tested with a trailing "/", so that
		// directory-only patterns such as "build/" match it.
		if frame.matcher.MatchesPath(rel) || (isDir && frame.matcher.MatchesPath(rel+"/")) {
			return true
		}
	}
	return false
}

func walk(fs fsys.FileSystem, dir, dotted string, opts Options, chain []ignoreFrame, out map[string]domain.FoundPackage) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}

	chain = loadIgnoreChain(dir, opts.IgnoreFileName, chain)

	var hasInit bool
	var initFile string
	var pyFiles []string
	var subdirs []os.DirEntry

	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		abs := filepath.Join(dir, name)
		if ignored(chain, abs, e.IsDir()) {
			continue
		}
		if e.IsDir() {
			if defaultExcludes[name] {
				continue
			}
			subdirs = append(subdirs, e)
			continue
		}
		switch name {
		case "__init__.py", "__init__.pyi":
			hasInit = true
			initFile = abs
		default:
			if strings.HasSuffix(name, ".py") {
				pyFiles = append(pyFiles, name)
			}
		}
	}

	if !hasInit {
		// Not a package: descendants are unreachable as internal modules
		// (Python itself treats a directory with no __init__ as a
		// non-package; implicit namespace packages are not handled here).
		return nil
	}

	moduleFiles := make(map[domain.Module]domain.ModuleFile)
	moduleFiles[domain.Module{Name: dotted}] = domain.ModuleFile{
		Module:   domain.Module{Name: dotted},
		Filename: initFile,
	}

	sort.Strings(pyFiles)
	for _, name := range pyFiles {
		leaf := strings.TrimSuffix(name, ".py")
		modName := dotted + "." + leaf
		moduleFiles[domain.Module{Name: modName}] = domain.ModuleFile{
			Module:   domain.Module{Name: modName},
			Filename: filepath.Join(dir, name),
		}
	}

	out[dotted] = domain.FoundPackage{
		Name:        dotted,
		Directory:   dir,
		ModuleFiles: moduleFiles,
	}

	for _, e := range subdirs {
		childDotted := dotted + "." + e.Name()
		if err := walk(fs, filepath.Join(dir, e.Name()), childDotted, opts, chain, out); err != nil {
			return err
		}
	}

	return nil
}
