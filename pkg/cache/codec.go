// Package cache implements the persistent import-scan cache codec (a JSON
// document mapping importer module name to a list of {imported,
// line_number, line_contents} objects) and, in cache.go, an in-memory LRU
// cache.
package cache

import (
	"encoding/json"
	"sort"

	"github.com/ksoze/impgraph/internal/fsys"
	"github.com/ksoze/impgraph/pkg/domain"
)

// entryTriple is the on-disk shape of one imported module: a JSON object
// with "imported", "line_number" and "line_contents" fields. The importer
// is the enclosing document key
// and is never stored in the triple itself.
type entryTriple struct {
	Imported     string `json:"imported"`
	LineNumber   int    `json:"line_number"`
	LineContents string `json:"line_contents"`
}

// document is the full on-disk shape: module name -> its import triples.
type document map[string][]entryTriple

// Write serializes imports and writes it through fs at filename,
// overwriting any existing content.
func Write(fs fsys.FileSystem, filename string, imports domain.ImportsByModule) error {
	doc := toDocument(imports)

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	return fs.Write(filename, string(raw))
}

func toDocument(imports domain.ImportsByModule) document {
	doc := make(document, len(imports))
	for module, set := range imports {
		triples := make([]entryTriple, 0, len(set))
		for imp := range set {
			triples = append(triples, entryTriple{
				Imported:     imp.Imported,
				LineNumber:   imp.LineNumber,
				LineContents: imp.LineContents,
			})
		}
		sort.Slice(triples, func(i, j int) bool {
			if triples[i].LineNumber != triples[j].LineNumber {
				return triples[i].LineNumber < triples[j].LineNumber
			}
			return triples[i].Imported < triples[j].Imported
		})
		doc[module.Name] = triples
	}
	return doc
}

// Read reads filename through fs, parses the document, and reconstructs
// ImportsByModule, restoring each DirectImport's importer field from the
// outer key it was stored under. A malformed or truncated document fails
// with domain.CorruptCacheError; there is no partial result.
func Read(fs fsys.FileSystem, filename string) (domain.ImportsByModule, error) {
	raw, err := fs.Read(filename)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, &domain.CorruptCacheError{Path: filename, Cause: err}
	}

	result := domain.NewImportsByModule()
	for moduleName, triples := range doc {
		module := domain.Module{Name: moduleName}
		if _, ok := result[module]; !ok {
			result[module] = make(map[domain.DirectImport]struct{})
		}
		for _, t := range triples {
			result.Add(module, domain.DirectImport{
				Importer:     moduleName,
				Imported:     t.Imported,
				LineNumber:   t.LineNumber,
				LineContents: t.LineContents,
			})
		}
	}

	return result, nil
}
