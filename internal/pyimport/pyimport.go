// Package pyimport parses Python source with tree-sitter and walks the
// resulting syntax tree for import and from-import statements, emitting a
// sequence of ParsedImport values. An explicit from-module emits one
// ParsedImport named after the from-clause; a bare-dots from-clause emits
// one ParsedImport per imported name, since the names themselves stand in
// for submodules. Names imported inside an `if TYPE_CHECKING:` block are
// flagged via the typechecking_only field.
package pyimport

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/ksoze/impgraph/pkg/domain"
)

// ParsedImport is one import statement's parsed shape.
type ParsedImport struct {
	Name             string
	LineNumber       int
	LineContents     string
	TypecheckingOnly bool
}

// Parser wraps a tree-sitter Python grammar instance. Not safe for
// concurrent use by multiple goroutines on the same instance; callers
// scanning in parallel should construct one Parser per goroutine.
type Parser struct {
	parser *sitter.Parser
}

// New creates a Parser configured with the Python grammar.
func New() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &Parser{parser: p}
}

// Parse extracts every import statement from source, in source order.
func (p *Parser) Parse(source, filename string) ([]ParsedImport, error) {
	content := []byte(source)
	tree := p.parser.Parse(nil, content)
	if tree == nil {
		return nil, &domain.ParseError{Path: filename, Detail: "tree-sitter returned no tree"}
	}
	defer tree.Close()

	lines := splitLines(source)
	w := &walker{content: content, lines: lines}
	w.walk(tree.RootNode(), false)
	return w.out, nil
}

type walker struct {
	content []byte
	lines   []string
	out     []ParsedImport
}

func (w *walker) walk(node *sitter.Node, underTypeChecking bool) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "import_statement":
		w.emitImportStatement(node, underTypeChecking)
		return
	case "import_from_statement":
		w.emitImportFromStatement(node, underTypeChecking)
		return
	case "if_statement":
		w.walkIfStatement(node, underTypeChecking)
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		w.walk(node.Child(i), underTypeChecking)
	}
}

// walkIfStatement descends into an if-statement's branches, marking the
// "if" consequence block as type-checking-only when the condition tests
// TYPE_CHECKING (bare name or typing.TYPE_CHECKING), per PEP 484. Other
// branches (elif/else) are walked at the enclosing level, since
// TYPE_CHECKING is conventionally false at runtime in those branches too,
// but this parser is conservative and only marks the guarded consequence.
func (w *walker) walkIfStatement(node *sitter.Node, underTypeChecking bool) {
	guardsTypeChecking := false
	var consequence *sitter.Node

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "identifier":
			if w.nodeText(child) == "TYPE_CHECKING" {
				guardsTypeChecking = true
			}
		case "attribute":
			if w.nodeText(child) == "typing.TYPE_CHECKING" {
				guardsTypeChecking = true
			}
		case "block":
			if consequence == nil {
				consequence = child
			} else {
				w.walk(child, underTypeChecking)
			}
		default:
			w.walk(child, underTypeChecking)
		}
	}

	if consequence != nil {
		w.walk(consequence, underTypeChecking || guardsTypeChecking)
	}
}

func (w *walker) emitImportStatement(node *sitter.Node, underTypeChecking bool) {
	line := int(node.StartPoint().Row) + 1
	contents := w.lineContents(int(node.StartPoint().Row))

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "dotted_name":
			name := w.nodeText(child)
			if name != "" {
				w.append(name, line, contents, underTypeChecking)
			}
		case "aliased_import":
			name := w.aliasedTarget(child)
			if name != "" {
				w.append(name, line, contents, underTypeChecking)
			}
		}
	}
}

func (w *walker) emitImportFromStatement(node *sitter.Node, underTypeChecking bool) {
	line := int(node.StartPoint().Row) + 1
	contents := w.lineContents(int(node.StartPoint().Row))

	var fromClause string
	var bareDots string
	var importedNames []string
	sawDottedModule := false

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "dotted_name":
			if !sawDottedModule && fromClause == "" && bareDots == "" {
				fromClause = w.nodeText(child)
				sawDottedModule = true
			} else {
				importedNames = append(importedNames, w.nodeText(child))
			}
		case "relative_import":
			fromClause, bareDots = w.relativeImportClause(child)
			sawDottedModule = true
		case "wildcard_import":
			importedNames = append(importedNames, "*")
		case "aliased_import":
			importedNames = append(importedNames, w.aliasedSourceName(child))
		}
	}

	if bareDots != "" {
		// "from . import a, b": each imported name is itself a submodule
		// of the dots-only package.
		for _, name := range importedNames {
			if name == "" || name == "*" {
				continue
			}
			w.append(bareDots+name, line, contents, underTypeChecking)
		}
		return
	}

	if fromClause != "" {
		w.append(fromClause, line, contents, underTypeChecking)
	}
}

// relativeImportClause returns either (dottedClause, "") when the relative
// import names a module after the dots ("from ..pkg import x" ->
// ("..pkg", "")), or ("", dotsOnly) when it is bare dots ("from . import x"
// -> ("", ".")).
func (w *walker) relativeImportClause(node *sitter.Node) (dotted, bareDots string) {
	var prefix, module string
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "import_prefix":
			prefix = w.nodeText(child)
		case "dotted_name":
			module = w.nodeText(child)
		}
	}
	if module != "" {
		return prefix + module, ""
	}
	return "", prefix
}

func (w *walker) aliasedTarget(node *sitter.Node) string {
	var name string
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if child.Type() == "dotted_name" {
			name = w.nodeText(child)
		}
	}
	return name
}

func (w *walker) aliasedSourceName(node *sitter.Node) string {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if child.Type() == "dotted_name" || child.Type() == "identifier" {
			return w.nodeText(child)
		}
	}
	return ""
}

func (w *walker) append(name string, line int, contents string, typechecking bool) {
	w.out = append(w.out, ParsedImport{
		Name:             name,
		LineNumber:       line,
		LineContents:     contents,
		TypecheckingOnly: typechecking,
	})
}

func (w *walker) nodeText(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	start, end := node.StartByte(), node.EndByte()
	if start >= uint32(len(w.content)) || end > uint32(len(w.content)) {
		return ""
	}
	return string(w.content[start:end])
}

func (w *walker) lineContents(row int) string {
	if row < 0 || row >= len(w.lines) {
		return ""
	}
	return w.lines[row]
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}

// ParseImports is a convenience entry point over a one-shot Parser.
func ParseImports(source, filename string) ([]ParsedImport, error) {
	return New().Parse(source, filename)
}
