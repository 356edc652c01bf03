package catalog

import (
	"fmt"
	"regexp"
)

// ValidationError represents a single validation problem.
type ValidationError struct {
	Path    string // e.g. "table[VersaAnalytics]" or "table[VersaAnalytics].column[Latency]"
	Message string
}

func (e ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// Valid Log Analytics column types, transmitted verbatim on the wire.
var validColumnTypes = map[string]bool{
	"datetime": true,
	"string":   true,
	"int":      true,
	"long":     true,
	"real":     true,
}

// Table short names become Azure resource name segments (<name>_CL,
// <name>-DCE, <name>-DCR), so they are restricted to a conservative
// identifier shape.
var validTableName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]{0,39}$`)

var validColumnName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,44}$`)

// Validate checks a table catalog for structural correctness. It returns a
// list of all validation errors (does not stop at the first error).
func Validate(tables []TableSpec) []ValidationError {
	var errs []ValidationError

	if len(tables) == 0 {
		errs = append(errs, ValidationError{Message: "catalog declares no tables"})
	}

	seenTables := make(map[string]bool, len(tables))
	for _, t := range tables {
		path := fmt.Sprintf("table[%s]", t.Name)

		if t.Name == "" {
			errs = append(errs, ValidationError{Path: "table[]", Message: "table name is required"})
			continue
		}
		if !validTableName.MatchString(t.Name) {
			errs = append(errs, ValidationError{Path: path, Message: "table name must be alphanumeric and start with a letter"})
		}
		if seenTables[t.Name] {
			errs = append(errs, ValidationError{Path: path, Message: "duplicate table name"})
		}
		seenTables[t.Name] = true

		if len(t.Columns) == 0 {
			errs = append(errs, ValidationError{Path: path, Message: "table must declare at least one column"})
			continue
		}
		if t.Columns[0].Type != "datetime" {
			errs = append(errs, ValidationError{Path: path, Message: fmt.Sprintf("first column %q must be a datetime timestamp column", t.Columns[0].Name)})
		}

		seenColumns := make(map[string]bool, len(t.Columns))
		for _, c := range t.Columns {
			cpath := fmt.Sprintf("%s.column[%s]", path, c.Name)
			if c.Name == "" {
				errs = append(errs, ValidationError{Path: path, Message: "column name is required"})
				continue
			}
			if !validColumnName.MatchString(c.Name) {
				errs = append(errs, ValidationError{Path: cpath, Message: "column name must be alphanumeric or underscore and start with a letter"})
			}
			if seenColumns[c.Name] {
				errs = append(errs, ValidationError{Path: cpath, Message: "duplicate column name"})
			}
			seenColumns[c.Name] = true
			if !validColumnTypes[c.Type] {
				errs = append(errs, ValidationError{Path: cpath, Message: fmt.Sprintf("invalid column type %q (expected one of datetime, string, int, long, real)", c.Type)})
			}
		}
	}

	return errs
}
