package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmbeddedCatalog(t *testing.T) {
	tables, err := Load()
	require.NoError(t, err)
	require.Len(t, tables, 5)

	t.Run("analytics table first", func(t *testing.T) {
		assert.Equal(t, "VersaAnalytics", tables[0].Name)
		assert.Equal(t, "Versa Analytics", tables[0].DisplayName)
		require.NotEmpty(t, tables[0].Columns)
		assert.Equal(t, "TimeGenerated", tables[0].Columns[0].Name)
		assert.Equal(t, "datetime", tables[0].Columns[0].Type)
	})

	t.Run("embedded catalog is valid", func(t *testing.T) {
		assert.Empty(t, Validate(tables))
	})
}

func TestLoadFile(t *testing.T) {
	tables, err := LoadFile(filepath.Join("testdata", "custom.yaml"))
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "BranchHealth", tables[0].Name)
	assert.Len(t, tables[0].Columns, 3)
	assert.Equal(t, "LinkUtilization", tables[1].Name)
	assert.Empty(t, Validate(tables))
}

func TestLoadFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join("testdata", "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("wrong kind", func(t *testing.T) {
		_, err := LoadFile(filepath.Join("testdata", "wrong_kind.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected kind")
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		_, err := LoadFile(filepath.Join("testdata", "unknown_field.yaml"))
		assert.Error(t, err)
	})

	t.Run("unsupported apiVersion", func(t *testing.T) {
		_, err := LoadBytes([]byte("apiVersion: auxtables/v2\nkind: TableCatalog\ntables: []\n"), "inline")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported apiVersion")
	})
}

func TestSelect(t *testing.T) {
	tables := []TableSpec{
		{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}, {Name: "E"},
	}

	t.Run("empty selection is full catalog", func(t *testing.T) {
		got, err := Select(tables, nil)
		require.NoError(t, err)
		assert.Len(t, got, 5)
	})

	t.Run("subset preserves selection order", func(t *testing.T) {
		got, err := Select(tables, []int{3, 1})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "C", got[0].Name)
		assert.Equal(t, "A", got[1].Name)
	})

	t.Run("out of range rejected", func(t *testing.T) {
		_, err := Select(tables, []int{6})
		assert.Error(t, err)
		_, err = Select(tables, []int{0})
		assert.Error(t, err)
	})
}
