package fsys

import (
	"sort"
	"testing"
)

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestParseIndentedSimplePackage(t *testing.T) {
	input := `
mypackage/
    __init__.py
    foo.py
    bar/
        __init__.py
        baz.py
`
	out := ParseIndented(input)
	want := []string{
		"mypackage/__init__.py",
		"mypackage/bar/__init__.py",
		"mypackage/bar/baz.py",
		"mypackage/foo.py",
	}
	got := keys(out)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	for _, path := range want {
		if out[path] != "" {
			t.Errorf("out[%q] = %q, want empty", path, out[path])
		}
	}
}

func TestParseIndentedAbsoluteRoot(t *testing.T) {
	input := `
/src/mypackage/
    __init__.py
`
	out := ParseIndented(input)
	if _, ok := out["/src/mypackage/__init__.py"]; !ok {
		t.Fatalf("expected an absolute path key, got %v", keys(out))
	}
}

func TestParseIndentedSiblingsPopBackToParent(t *testing.T) {
	input := `
root/
    a.py
    sub/
        b.py
    c.py
`
	out := ParseIndented(input)
	want := []string{"root/a.py", "root/c.py", "root/sub/b.py"}
	got := keys(out)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseIndentedIgnoresBlankLinesAndTrailingWhitespace(t *testing.T) {
	input := "root/   \n\n    a.py   \n\n"
	out := ParseIndented(input)
	if _, ok := out["root/a.py"]; !ok {
		t.Fatalf("expected root/a.py, got %v", keys(out))
	}
}

func TestParseIndentedRootFileOnly(t *testing.T) {
	out := ParseIndented("standalone.py")
	if len(out) != 1 {
		t.Fatalf("got %v, want a single entry", keys(out))
	}
	if _, ok := out["standalone.py"]; !ok {
		t.Fatalf("expected standalone.py, got %v", keys(out))
	}
}
