package format

import (
	"encoding/json"
	"fmt"
	"io"

	"go.followtheprocess.codes/typediff/internal/resolver"
)

// JSONExporter is an [Exporter] that writes results as a JSON array.
type JSONExporter struct{}

// Export implements [Exporter] for [JSONExporter] and exports the given results
// as a complete JSON document.
func (j JSONExporter) Export(w io.Writer, results []resolver.Result) error {
	if results == nil {
		// Always an array, never null
		results = []resolver.Result{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(results)
}

// JSONImporter is an [Importer] that reads a JSON array of expected and actual
// type name objects.
type JSONImporter struct{}

// Import implements [Importer] for [JSONImporter] and imports the given
// JSON document into a list of [resolver.Pair].
func (j JSONImporter) Import(r io.Reader) ([]resolver.Pair, error) {
	var pairs []resolver.Pair

	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&pairs); err != nil {
		return nil, fmt.Errorf("could not decode JSON: %w", err)
	}

	return pairs, nil
}
