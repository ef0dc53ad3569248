package pyimport

import "testing"

func names(imports []ParsedImport) []string {
	out := make([]string, len(imports))
	for i, imp := range imports {
		out[i] = imp.Name
	}
	return out
}

func TestParsePlainImport(t *testing.T) {
	imports, err := ParseImports("import os\n", "mod.py")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(imports) != 1 || imports[0].Name != "os" {
		t.Fatalf("got %+v", imports)
	}
	if imports[0].LineNumber != 1 {
		t.Errorf("LineNumber = %d, want 1", imports[0].LineNumber)
	}
	if imports[0].LineContents != "import os" {
		t.Errorf("LineContents = %q", imports[0].LineContents)
	}
	if imports[0].TypecheckingOnly {
		t.Errorf("TypecheckingOnly = true, want false")
	}
}

func TestParseDottedImport(t *testing.T) {
	imports, err := ParseImports("import os.path\n", "mod.py")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got := names(imports); len(got) != 1 || got[0] != "os.path" {
		t.Fatalf("got %v", got)
	}
}

func TestParseAliasedImport(t *testing.T) {
	imports, err := ParseImports("import numpy as np\n", "mod.py")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got := names(imports); len(got) != 1 || got[0] != "numpy" {
		t.Fatalf("got %v", got)
	}
}

func TestParseFromImportExplicitModule(t *testing.T) {
	imports, err := ParseImports("from os.path import join, exists\n", "mod.py")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	// An explicit from-module emits one ParsedImport named after the
	// from-clause, not one per imported name.
	if got := names(imports); len(got) != 1 || got[0] != "os.path" {
		t.Fatalf("got %v", got)
	}
}

func TestParseFromImportBareDots(t *testing.T) {
	imports, err := ParseImports("from . import helper, other\n", "pkg/sub.py")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	got := names(imports)
	want := []string{".helper", ".other"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseFromImportRelativeWithModule(t *testing.T) {
	imports, err := ParseImports("from ..pkg import x\n", "pkg/sub/mod.py")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got := names(imports); len(got) != 1 || got[0] != "..pkg" {
		t.Fatalf("got %v", got)
	}
}

func TestParseWildcardImport(t *testing.T) {
	imports, err := ParseImports("from os.path import *\n", "mod.py")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got := names(imports); len(got) != 1 || got[0] != "os.path" {
		t.Fatalf("got %v", got)
	}
}

func TestParseTypeCheckingGuardedImport(t *testing.T) {
	source := `from typing import TYPE_CHECKING

if TYPE_CHECKING:
    import expensive_module
`
	imports, err := ParseImports(source, "mod.py")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	var guarded, plain []ParsedImport
	for _, imp := range imports {
		if imp.TypecheckingOnly {
			guarded = append(guarded, imp)
		} else {
			plain = append(plain, imp)
		}
	}
	if len(guarded) != 1 || guarded[0].Name != "expensive_module" {
		t.Fatalf("guarded = %+v", guarded)
	}
	if len(plain) != 1 || plain[0].Name != "typing" {
		t.Fatalf("plain = %+v", plain)
	}
}

func TestParseMultipleStatementsPreservesOrder(t *testing.T) {
	source := "import a\nimport b\nimport c\n"
	imports, err := ParseImports(source, "mod.py")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	got := names(imports)
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	for i, imp := range imports {
		if imp.LineNumber != i+1 {
			t.Errorf("import %d has LineNumber %d, want %d", i, imp.LineNumber, i+1)
		}
	}
}
