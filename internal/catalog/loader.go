// Package catalog defines the declarative table catalog: the YAML document
// model describing custom log tables, the embedded default catalog, and the
// loading, validation, and selection steps that feed the deployment pipeline.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Load returns the embedded default table catalog.
func Load() ([]TableSpec, error) {
	return LoadBytes(defaultCatalog, "catalog.yaml")
}

// LoadFile reads a table catalog document from the given YAML file.
func LoadFile(path string) ([]TableSpec, error) {
	data, err := os.ReadFile(path) //nolint:gosec // intentional: reading user-specified catalog files
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return LoadBytes(data, path)
}

// LoadBytes parses a table catalog document. Unknown fields are rejected so
// that typos in column or table attributes surface as load errors rather
// than silently dropped configuration.
func LoadBytes(data []byte, path string) ([]TableSpec, error) {
	var doc TableCatalogDoc
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if doc.APIVersion != SupportedAPIVersion {
		return nil, fmt.Errorf("%s: unsupported apiVersion %q (expected %q)", path, doc.APIVersion, SupportedAPIVersion)
	}
	if doc.Kind != KindTableCatalog {
		return nil, fmt.Errorf("%s: unexpected kind %q (expected %q)", path, doc.Kind, KindTableCatalog)
	}
	return doc.Tables, nil
}

// Select returns the subset of tables addressed by 1-based catalog indices,
// in the order the indices were given. An empty index list selects the full
// catalog in catalog order.
func Select(tables []TableSpec, indices []int) ([]TableSpec, error) {
	if len(indices) == 0 {
		return tables, nil
	}
	out := make([]TableSpec, 0, len(indices))
	for _, i := range indices {
		if i < 1 || i > len(tables) {
			return nil, fmt.Errorf("table index %d out of range (catalog has %d tables)", i, len(tables))
		}
		out = append(out, tables[i-1])
	}
	return out, nil
}
