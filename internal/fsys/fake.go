package fsys

import (
	"strings"

	"github.com/ksoze/impgraph/pkg/domain"
)

// Fake is an in-memory FileSystem, used as a test fixture. It is
// constructed either from a raw path->contents map or from the indented
// textual description parsed by ParseIndented (see ParseIndented for the
// grammar).
type Fake struct {
	contents map[string]string
}

// NewFake builds a Fake from an indented description (may be empty) plus
// an optional content map overriding specific paths. Content-map values
// are unindented and trimmed, mirroring the Rust fixture's behavior.
func NewFake(indented string, contentMap map[string]string) *Fake {
	var parsed map[string]string
	if indented != "" {
		parsed = ParseIndented(indented)
	} else {
		parsed = make(map[string]string)
	}
	for path, val := range contentMap {
		parsed[path] = unindent(val)
	}
	return &Fake{contents: parsed}
}

// NewFakeFromMap builds a Fake directly from a raw path->contents map,
// with no indented description.
func NewFakeFromMap(raw map[string]string) *Fake {
	contents := make(map[string]string, len(raw))
	for k, v := range raw {
		contents[k] = v
	}
	return &Fake{contents: contents}
}

func (Fake) Sep() string { return "/" }

func (f Fake) Join(components ...string) string {
	parts := make([]string, len(components))
	for i, c := range components {
		parts[i] = strings.TrimSuffix(c, "/")
	}
	return strings.Join(parts, "/")
}

func (Fake) Split(path string) (head, tail string) {
	if withoutSlash, ok := strings.CutSuffix(path, "/"); ok {
		return withoutSlash, ""
	}
	idx := strings.LastIndex(path, "/")
	if idx == -1 {
		return "", path
	}
	return path[:idx], path[idx+1:]
}

// Exists reports whether path is exactly a key in the fixture's content
// map.
func (f Fake) Exists(path string) bool {
	_, ok := f.contents[path]
	return ok
}

func (f Fake) Read(path string) (string, error) {
	content, ok := f.contents[path]
	if !ok {
		return "", &domain.FileNotFoundError{Path: path}
	}
	return content, nil
}

// Write overwrites path's entry in the fixture's content map.
func (f *Fake) Write(path, contents string) error {
	f.contents[path] = contents
	return nil
}

// unindent removes a uniform leading whitespace prefix (the smallest
// indentation shared by all non-blank lines) and trims the result, the
// way Rust's `unindent` crate treats caller-provided content-map entries.
func unindent(s string) string {
	lines := strings.Split(s, "\n")
	minIndent := -1
	for _, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent <= 0 {
		return strings.TrimSpace(s)
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if len(line) >= minIndent {
			out[i] = line[minIndent:]
		} else {
			out[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
