package catalog

// SupportedAPIVersion is the current API version for catalog documents.
const SupportedAPIVersion = "auxtables/v1"

// KindTableCatalog is the document kind for a table catalog.
const KindTableCatalog = "TableCatalog"

// TableCatalogDoc is the YAML envelope declaring a set of custom log tables.
type TableCatalogDoc struct {
	APIVersion string      `yaml:"apiVersion"`
	Kind       string      `yaml:"kind"`
	Tables     []TableSpec `yaml:"tables"`
}

// TableSpec describes a single custom log table to provision.
// The short name is expanded to the final table identifier (<name>_CL)
// and to the names of the supporting ingestion resources at deploy time.
type TableSpec struct {
	Name        string       `yaml:"name"`
	DisplayName string       `yaml:"display_name,omitempty"`
	Description string       `yaml:"description,omitempty"`
	Columns     []ColumnSpec `yaml:"columns"`
}

// ColumnSpec describes a single column in a table definition.
// Type is one of the Log Analytics column types: datetime, string,
// int, long, real.
type ColumnSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}
