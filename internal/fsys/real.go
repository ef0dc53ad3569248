package fsys

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ksoze/impgraph/pkg/domain"
)

// encodingDeclRe matches a PEP 263 coding declaration: a comment line
// containing "coding:" or "coding=" followed by a label.
var encodingDeclRe = regexp.MustCompile(`^[ \t\f]*#.*?coding[:=][ \t]*([-_.a-zA-Z0-9]+)`)

// Real operates on the host filesystem.
type Real struct{}

// NewReal creates a Real file-system handle.
func NewReal() *Real { return &Real{} }

func (Real) Sep() string { return string(filepath.Separator) }

func (Real) Join(components ...string) string {
	parts := make([]string, len(components))
	for i, c := range components {
		parts[i] = strings.TrimSuffix(c, string(filepath.Separator))
	}
	return filepath.Join(parts...)
}

func (Real) Split(path string) (head, tail string) {
	head, tail = filepath.Split(path)
	head = strings.TrimSuffix(head, string(filepath.Separator))
	return head, tail
}

func (Real) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Read decodes bytes as follows: examine the first two lines for a PEP
// 263 encoding declaration; if found, decode using that encoding (failing
// with a DecodeError on an unknown label or a decoding error); otherwise
// decode as UTF-8 strictly, failing with a DecodeError on invalid UTF-8.
func (Real) Read(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", &domain.FileNotFoundError{Path: path, Cause: err}
	}

	if label, ok := declaredEncoding(raw); ok {
		decoded, decErr := decodeWithLabel(raw, label)
		if decErr != nil {
			return "", &domain.DecodeError{Path: path, Detail: decErr.Error()}
		}
		return decoded, nil
	}

	if !utf8.Valid(raw) {
		return "", &domain.DecodeError{Path: path, Detail: "invalid UTF-8"}
	}
	return string(raw), nil
}

// Write truncates-and-writes contents to path, creating parent
// directories as needed.
func (Real) Write(path, contents string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(contents), 0o644)
}

// declaredEncoding looks for a coding declaration in the first two lines,
// per PEP 263 (https://peps.python.org/pep-0263/).
func declaredEncoding(raw []byte) (string, bool) {
	lines := strings.SplitN(string(raw), "\n", 3)
	limit := len(lines)
	if limit > 2 {
		limit = 2
	}
	for _, line := range lines[:limit] {
		if m := encodingDeclRe.FindStringSubmatch(line); m != nil {
			return m[1], true
		}
	}
	return "", false
}
