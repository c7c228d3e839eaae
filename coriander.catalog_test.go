package coriander

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalogYAML = `templates:
  - name: greeting
    template: "[hello|hi] my name is *~name"
    description: Introductions
    tags: [chat]
  - name: age
    template: "INT~age years old"
`

func TestParseCatalog(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		catalog, err := ParseCatalog([]byte(testCatalogYAML), "test.yaml")
		require.NoError(t, err)

		expected := &Catalog{Templates: []*StoredTemplate{
			{Name: "greeting", Template: "[hello|hi] my name is *~name", Description: "Introductions", Tags: []string{"chat"}},
			{Name: "age", Template: "INT~age years old"},
		}}
		if diff := cmp.Diff(expected, catalog); diff != "" {
			t.Errorf("catalog mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty document", func(t *testing.T) {
		catalog, err := ParseCatalog([]byte(""), "empty.yaml")
		require.NoError(t, err)
		assert.Empty(t, catalog.Templates)
	})

	t.Run("comment only document", func(t *testing.T) {
		catalog, err := ParseCatalog([]byte("# nothing here\n"), "empty.yaml")
		require.NoError(t, err)
		assert.Empty(t, catalog.Templates)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := ParseCatalog([]byte("templates: [\n"), "bad.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgCatalogParse)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := ParseCatalog([]byte("templates:\n  - name: a\n    pattern: x\n"), "bad.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgCatalogParse)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := ParseCatalog([]byte("templates:\n  - template: x\n"), "bad.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgCatalogInvalid)
	})

	t.Run("duplicate name", func(t *testing.T) {
		data := "templates:\n  - name: a\n    template: x\n  - name: a\n    template: y\n"
		_, err := ParseCatalog([]byte(data), "bad.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgCatalogInvalid)
	})

	t.Run("empty template is allowed", func(t *testing.T) {
		catalog, err := ParseCatalog([]byte("templates:\n  - name: blank\n"), "ok.yaml")
		require.NoError(t, err)
		require.Len(t, catalog.Templates, 1)
		assert.Equal(t, "", catalog.Templates[0].Template)
	})
}

func TestCatalog_Mutations(t *testing.T) {
	catalog := &Catalog{}
	catalog.Set(&StoredTemplate{Name: "a", Template: "1"})
	catalog.Set(&StoredTemplate{Name: "b", Template: "2"})
	catalog.Set(&StoredTemplate{Name: "a", Template: "3"})

	require.Len(t, catalog.Templates, 2)
	got, ok := catalog.Get("a")
	require.True(t, ok)
	assert.Equal(t, "3", got.Template)

	assert.True(t, catalog.Remove("a"))
	assert.False(t, catalog.Remove("a"))
	_, ok = catalog.Get("a")
	assert.False(t, ok)
}

func TestCatalog_WriteFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "catalog.yaml")

	original, err := ParseCatalog([]byte(testCatalogYAML), "test.yaml")
	require.NoError(t, err)
	require.NoError(t, original.WriteFile(path))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	loaded, err := LoadCatalog(path)
	require.NoError(t, err)
	if diff := cmp.Diff(original, loaded, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgCatalogRead)
}

func TestEngine_LoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalogYAML), 0o644))

	engine := MustNew()
	n, err := engine.LoadCatalogFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"age", "greeting"}, engine.ListTemplates())

	_, err = engine.LoadCatalogFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestIsCatalogFile(t *testing.T) {
	assert.True(t, isCatalogFile("a.yaml"))
	assert.True(t, isCatalogFile("dir/a.yml"))
	assert.False(t, isCatalogFile("a.yaml.tmp"))
	assert.False(t, isCatalogFile("a.json"))
}
