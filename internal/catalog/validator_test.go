package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTable() TableSpec {
	return TableSpec{
		Name: "VersaAnalytics",
		Columns: []ColumnSpec{
			{Name: "TimeGenerated", Type: "datetime"},
			{Name: "Appliance", Type: "string"},
			{Name: "SessionCount", Type: "long"},
		},
	}
}

func TestValidate_OK(t *testing.T) {
	assert.Empty(t, Validate([]TableSpec{validTable()}))
}

func TestValidate_Errors(t *testing.T) {
	t.Run("empty catalog", func(t *testing.T) {
		errs := Validate(nil)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Error(), "no tables")
	})

	t.Run("missing table name", func(t *testing.T) {
		tbl := validTable()
		tbl.Name = ""
		errs := Validate([]TableSpec{tbl})
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Error(), "name is required")
	})

	t.Run("bad table name", func(t *testing.T) {
		tbl := validTable()
		tbl.Name = "9versa-analytics"
		errs := Validate([]TableSpec{tbl})
		require.NotEmpty(t, errs)
		assert.Contains(t, errs[0].Error(), "alphanumeric")
	})

	t.Run("duplicate table names", func(t *testing.T) {
		errs := Validate([]TableSpec{validTable(), validTable()})
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Error(), "duplicate table name")
	})

	t.Run("no columns", func(t *testing.T) {
		tbl := validTable()
		tbl.Columns = nil
		errs := Validate([]TableSpec{tbl})
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Error(), "at least one column")
	})

	t.Run("first column must be datetime", func(t *testing.T) {
		tbl := validTable()
		tbl.Columns[0].Type = "string"
		errs := Validate([]TableSpec{tbl})
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Error(), "datetime")
	})

	t.Run("duplicate column names", func(t *testing.T) {
		tbl := validTable()
		tbl.Columns = append(tbl.Columns, ColumnSpec{Name: "Appliance", Type: "string"})
		errs := Validate([]TableSpec{tbl})
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Error(), "duplicate column name")
	})

	t.Run("invalid column type", func(t *testing.T) {
		tbl := validTable()
		tbl.Columns = append(tbl.Columns, ColumnSpec{Name: "Score", Type: "double"})
		errs := Validate([]TableSpec{tbl})
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Error(), `invalid column type "double"`)
	})

	t.Run("all errors collected", func(t *testing.T) {
		bad := TableSpec{
			Name: "Feed",
			Columns: []ColumnSpec{
				{Name: "TimeGenerated", Type: "datetime"},
				{Name: "A", Type: "float"},
				{Name: "A", Type: "string"},
			},
		}
		errs := Validate([]TableSpec{bad})
		assert.Len(t, errs, 2)
	})
}
