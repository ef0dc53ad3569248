package fsys

import (
	"errors"
	"testing"

	"github.com/ksoze/impgraph/pkg/domain"
)

func TestFakeReadExistsAndMissing(t *testing.T) {
	fs := NewFake(`
mypackage/
    __init__.py
`, map[string]string{
		"mypackage/__init__.py": "import os\n",
	})

	if !fs.Exists("mypackage/__init__.py") {
		t.Fatal("expected mypackage/__init__.py to exist")
	}
	if fs.Exists("mypackage/missing.py") {
		t.Fatal("did not expect mypackage/missing.py to exist")
	}

	content, err := fs.Read("mypackage/__init__.py")
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if content != "import os" {
		t.Errorf("content = %q, want %q", content, "import os")
	}

	_, err = fs.Read("mypackage/missing.py")
	var notFound *domain.FileNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected FileNotFoundError, got %v", err)
	}
}

func TestFakeWriteThenRead(t *testing.T) {
	fs := NewFakeFromMap(nil)
	if err := fs.Write("out/cache.json", `{"a": []}`); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	content, err := fs.Read("out/cache.json")
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if content != `{"a": []}` {
		t.Errorf("content = %q", content)
	}
}

func TestFakeJoinAndSplit(t *testing.T) {
	var fs Fake
	if got := fs.Join("a", "b", "c"); got != "a/b/c" {
		t.Errorf("Join = %q", got)
	}
	head, tail := fs.Split("a/b/c")
	if head != "a/b" || tail != "c" {
		t.Errorf("Split = (%q, %q)", head, tail)
	}
	head, tail = fs.Split("a/b/")
	if head != "a/b" || tail != "" {
		t.Errorf("Split(trailing slash) = (%q, %q)", head, tail)
	}
}
