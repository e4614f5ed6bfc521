// Package format provides mechanisms for converting resolved type name differences
// to and from external formats.
//
// Notably, the package provides the [Importer] and [Exporter] interfaces for doing this
// in a format-agnostic way.
//
// It also provides the built in importers and exporters such as JSON, YAML, TOML and
// the plain text assertion message.
package format

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"go.followtheprocess.codes/typediff/internal/resolver"
)

// Names of the supported formats.
const (
	Text = "text"
	JSON = "json"
	YAML = "yaml"
	TOML = "toml"
)

// Exporter is the interface defining a mechanism for exporting resolved differences
// into an external format.
type Exporter interface {
	// Export exports the [resolver.Result] list into an external format, written to w.
	Export(w io.Writer, results []resolver.Result) error
}

// Importer is the interface defining a mechanism for importing pairs of type names
// from external formats.
type Importer interface {
	// Import imports the data from the external format into a list of [resolver.Pair].
	Import(r io.Reader) ([]resolver.Pair, error)
}

// Exporters returns the names of every format that can be exported to.
func Exporters() []string {
	return []string{Text, JSON, YAML, TOML}
}

// Importers returns the names of every format that can be imported from.
func Importers() []string {
	return []string{JSON, YAML, TOML}
}

// ExporterFor returns the [Exporter] for the named format.
func ExporterFor(name string) (Exporter, error) {
	switch name {
	case Text:
		return TextExporter{}, nil
	case JSON:
		return JSONExporter{}, nil
	case YAML:
		return YAMLExporter{}, nil
	case TOML:
		return TOMLExporter{}, nil
	default:
		return nil, unknown(name, Exporters())
	}
}

// ImporterFor returns the [Importer] for the named format.
func ImporterFor(name string) (Importer, error) {
	switch name {
	case JSON:
		return JSONImporter{}, nil
	case YAML:
		return YAMLImporter{}, nil
	case TOML:
		return TOMLImporter{}, nil
	default:
		return nil, unknown(name, Importers())
	}
}

// IsExporter reports whether name is a supported export format.
func IsExporter(name string) bool {
	return slices.Contains(Exporters(), name)
}

// IsImporter reports whether name is a supported import format.
func IsImporter(name string) bool {
	return slices.Contains(Importers(), name)
}

func unknown(name string, supported []string) error {
	return fmt.Errorf("unsupported format %q, expected one of (%s)", name, strings.Join(supported, ", "))
}
