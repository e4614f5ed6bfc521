package format

import (
	"errors"
	"fmt"
	"io"

	"go.followtheprocess.codes/typediff/internal/resolver"
	"go.yaml.in/yaml/v4"
)

const yamlIndent = 2

// YAMLExporter is an [Exporter] that writes results as a YAML sequence.
type YAMLExporter struct{}

// Export implements [Exporter] for [YAMLExporter] and exports the given results as
// a complete YAML document.
func (y YAMLExporter) Export(w io.Writer, results []resolver.Result) error {
	if results == nil {
		results = []resolver.Result{}
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(yamlIndent)

	if err := encoder.Encode(results); err != nil {
		return err
	}

	return encoder.Close()
}

// YAMLImporter is an [Importer] that reads a YAML sequence of expected and actual
// type name mappings.
type YAMLImporter struct{}

// Import implements [Importer] for [YAMLImporter].
//
// An empty document is an empty list.
func (y YAMLImporter) Import(r io.Reader) ([]resolver.Pair, error) {
	var pairs []resolver.Pair

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	if err := decoder.Decode(&pairs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}

		return nil, fmt.Errorf("could not decode YAML: %w", err)
	}

	return pairs, nil
}
