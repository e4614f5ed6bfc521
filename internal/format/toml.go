package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"go.followtheprocess.codes/typediff/internal/resolver"
)

// TOML documents can't have an array at the root so results and pairs are
// arrays of tables.
type (
	tomlResults struct {
		Results []resolver.Result `toml:"result"`
	}

	tomlPairs struct {
		Pairs []resolver.Pair `toml:"pair"`
	}
)

// TOMLExporter is an [Exporter] that writes results as a TOML array of [[result]] tables.
type TOMLExporter struct{}

// Export implements [Exporter] for [TOMLExporter] and exports the given results
// as a complete TOML document.
func (t TOMLExporter) Export(w io.Writer, results []resolver.Result) error {
	encoder := toml.NewEncoder(w)
	encoder.Indent = ""

	return encoder.Encode(tomlResults{Results: results})
}

// TOMLImporter is an [Importer] that reads a TOML array of [[pair]] tables.
type TOMLImporter struct{}

// Import implements [Importer] for [TOMLImporter].
func (t TOMLImporter) Import(r io.Reader) ([]resolver.Pair, error) {
	var doc tomlPairs

	meta, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("could not decode TOML: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) != 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}

		return nil, fmt.Errorf("could not decode TOML: unknown keys: %s", strings.Join(keys, ", "))
	}

	return doc.Pairs, nil
}
