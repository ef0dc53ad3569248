// Package fsys provides the file-system abstraction the scanner and cache
// codec both consume: a uniform path split/join/exists/read/write
// capability set, with a real (host-disk) implementation and a fake (in-memory) one
// used as a test fixture. See original_source/rust/src/filesystem.rs,
// which this package is a direct Go port of.
package fsys

// FileSystem is the capability set exposed to callers: sep, join, split,
// exists, read, and write. The scanner and cache codec accept either the Real or
// Fake implementation polymorphically.
type FileSystem interface {
	// Sep returns the platform path separator ("/" for Fake).
	Sep() string

	// Join concatenates components with Sep, stripping a trailing
	// separator from each component first.
	Join(components ...string) string

	// Split returns (head, tail): the parent path and the last
	// component. A trailing-separator path has an empty tail.
	Split(path string) (head, tail string)

	// Exists reports whether path names a regular file (Real) or a key
	// in the fixture's content map (Fake).
	Exists(path string) bool

	// Read returns the decoded contents of path.
	Read(path string) (string, error)

	// Write overwrites path with contents, creating it if necessary.
	Write(path, contents string) error
}
