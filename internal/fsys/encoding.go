package fsys

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/ianaindex"
)

// decodeWithLabel decodes raw bytes using the named encoding label,
// resolving it against the IANA character-set registry and its aliases
// (e.g. "iso-8859-1", "latin1", "l1", "windows-1252"). A label the
// registry does not list as written is retried with its "-" and "_"
// separators removed, so spellings such as "latin-1" resolve too; a label
// that still does not resolve is reported as unknown.
func decodeWithLabel(raw []byte, label string) (string, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil || enc == nil {
		enc, err = ianaindex.IANA.Encoding(strings.NewReplacer("-", "", "_", "").Replace(label))
	}
	if err != nil || enc == nil {
		return "", fmt.Errorf("unknown encoding %q", label)
	}

	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decoding as %q: %w", label, err)
	}
	if !utf8.Valid(decoded) {
		return "", fmt.Errorf("decoding as %q produced invalid UTF-8", label)
	}
	return string(decoded), nil
}
