package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/ksoze/impgraph/internal/fsys"
	"github.com/ksoze/impgraph/pkg/domain"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll(%s): %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
}

func packageNames(found map[string]domain.FoundPackage) []string {
	names := make([]string, 0, len(found))
	for name := range found {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func TestDiscoverSimplePackage(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "mypackage")
	writeFile(t, filepath.Join(root, "__init__.py"), "")
	writeFile(t, filepath.Join(root, "foo.py"), "")
	writeFile(t, filepath.Join(root, "bar", "__init__.py"), "")
	writeFile(t, filepath.Join(root, "bar", "baz.py"), "")

	found, err := Discover(fsys.NewReal(), []Root{{Name: "mypackage", Dir: root}}, Options{})
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}

	if _, ok := found["mypackage"]; !ok {
		t.Fatalf("expected mypackage to be discovered, got %v", packageNames(found))
	}
	if _, ok := found["mypackage.bar"]; !ok {
		t.Fatalf("expected mypackage.bar to be discovered, got %v", packageNames(found))
	}

	top := found["mypackage"]
	if len(top.ModuleFiles) != 2 { // __init__ + foo
		t.Errorf("mypackage.ModuleFiles has %d entries, want 2", len(top.ModuleFiles))
	}
	if _, ok := top.ModuleFiles[domain.Module{Name: "mypackage.foo"}]; !ok {
		t.Errorf("expected mypackage.foo among module files")
	}

	bar := found["mypackage.bar"]
	if len(bar.ModuleFiles) != 2 { // __init__ + baz
		t.Errorf("mypackage.bar.ModuleFiles has %d entries, want 2", len(bar.ModuleFiles))
	}
	if _, ok := bar.ModuleFiles[domain.Module{Name: "mypackage.bar.baz"}]; !ok {
		t.Errorf("expected mypackage.bar.baz among module files")
	}
}

func TestDiscoverSkipsNonPackageDirectories(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "mypackage")
	writeFile(t, filepath.Join(root, "__init__.py"), "")
	// notapkg has no __init__.py: it and its descendants are skipped.
	writeFile(t, filepath.Join(root, "notapkg", "file.py"), "")
	writeFile(t, filepath.Join(root, "notapkg", "sub", "__init__.py"), "")

	found, err := Discover(fsys.NewReal(), []Root{{Name: "mypackage", Dir: root}}, Options{})
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if _, ok := found["mypackage.notapkg"]; ok {
		t.Errorf("did not expect mypackage.notapkg to be discovered")
	}
	if _, ok := found["mypackage.notapkg.sub"]; ok {
		t.Errorf("did not expect mypackage.notapkg.sub to be discovered")
	}
}

func TestDiscoverSkipsDefaultExcludes(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "mypackage")
	writeFile(t, filepath.Join(root, "__init__.py"), "")
	writeFile(t, filepath.Join(root, "__pycache__", "__init__.py"), "")
	writeFile(t, filepath.Join(root, "node_modules", "__init__.py"), "")

	found, err := Discover(fsys.NewReal(), []Root{{Name: "mypackage", Dir: root}}, Options{})
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	for _, name := range packageNames(found) {
		if name != "mypackage" {
			t.Errorf("unexpected discovered package %q", name)
		}
	}
}

func TestDiscoverHonorsIgnoreFile(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "mypackage")
	writeFile(t, filepath.Join(root, "__init__.py"), "")
	writeFile(t, filepath.Join(root, ".impgraphignore"), "excluded/\n")
	writeFile(t, filepath.Join(root, "excluded", "__init__.py"), "")

	found, err := Discover(fsys.NewReal(), []Root{{Name: "mypackage", Dir: root}}, Options{IgnoreFileName: ".impgraphignore"})
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if _, ok := found["mypackage.excluded"]; ok {
		t.Errorf("expected mypackage.excluded to be ignored")
	}
}
