package cache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksoze/impgraph/internal/fsys"
	"github.com/ksoze/impgraph/pkg/domain"
)

func TestWriteThenReadRoundTrips(t *testing.T) {
	imports := domain.NewImportsByModule()
	imports.Add(domain.Module{Name: "pkg.sub"}, domain.DirectImport{
		Importer: "pkg.sub", Imported: "pkg.helper", LineNumber: 3, LineContents: "from . import helper",
	})
	imports.Add(domain.Module{Name: "pkg.sub"}, domain.DirectImport{
		Importer: "pkg.sub", Imported: "os", LineNumber: 1, LineContents: "import os",
	})
	imports.Add(domain.Module{Name: "pkg"}, domain.DirectImport{
		Importer: "pkg", Imported: "pkg.sub", LineNumber: 1, LineContents: "from . import sub",
	})

	fs := fsys.NewFakeFromMap(nil)
	require.NoError(t, Write(fs, "cache.json", imports))

	got, err := Read(fs, "cache.json")
	require.NoError(t, err)

	assert.Equal(t, imports, got)
}

func TestReadRestoresImporterField(t *testing.T) {
	fs := fsys.NewFakeFromMap(map[string]string{
		"cache.json": `{
			"pkg.sub": [
				{"imported": "os", "line_number": 1, "line_contents": "import os"}
			]
		}`,
	})

	got, err := Read(fs, "cache.json")
	require.NoError(t, err)

	sub := got[domain.Module{Name: "pkg.sub"}]
	require.Len(t, sub, 1)
	for imp := range sub {
		assert.Equal(t, "pkg.sub", imp.Importer)
		assert.Equal(t, "os", imp.Imported)
	}
}

func TestReadUnknownKeysBecomeModulesWithNoImports(t *testing.T) {
	fs := fsys.NewFakeFromMap(map[string]string{
		"cache.json": `{"some.module": []}`,
	})

	got, err := Read(fs, "cache.json")
	require.NoError(t, err)

	imports, ok := got[domain.Module{Name: "some.module"}]
	require.True(t, ok)
	assert.Empty(t, imports)
}

func TestReadCorruptDocumentFails(t *testing.T) {
	fs := fsys.NewFakeFromMap(map[string]string{
		"cache.json": "not json at all {{{",
	})

	_, err := Read(fs, "cache.json")
	require.Error(t, err)

	var corrupt *domain.CorruptCacheError
	require.True(t, errors.As(err, &corrupt))
	assert.Equal(t, "cache.json", corrupt.Path)
}

func TestReadMissingFileFails(t *testing.T) {
	fs := fsys.NewFakeFromMap(nil)
	_, err := Read(fs, "missing.json")
	require.Error(t, err)

	var notFound *domain.FileNotFoundError
	assert.True(t, errors.As(err, &notFound))
}
