package format_test

import (
	"bytes"
	"flag"
	"os"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"go.followtheprocess.codes/snapshot"
	"go.followtheprocess.codes/test"
	"go.followtheprocess.codes/typediff/internal/format"
	"go.followtheprocess.codes/typediff/internal/resolver"
	"go.yaml.in/yaml/v4"
)

var (
	update = flag.Bool("update", false, "Update snapshots")
	clean  = flag.Bool("clean", false, "Clean all snapshots and recreate")
)

// results is a fixed set of results used across the exporter tests.
func results() []resolver.Result {
	return []resolver.Result{
		resolver.Difference(resolver.Pair{Expected: "NS.A.Dummy", Actual: "NS.B.Dummy"}),
		resolver.Difference(resolver.Pair{Expected: "A.Generic`1[B.Type]", Actual: "A.Generic`1[B.OtherType]"}),
		resolver.Difference(resolver.Pair{Expected: "List`2[A]", Actual: "System.Int32"}),
	}
}

func TestExporterFor(t *testing.T) {
	for _, name := range format.Exporters() {
		t.Run(name, func(t *testing.T) {
			exporter, err := format.ExporterFor(name)
			test.Ok(t, err)
			test.True(t, exporter != nil)
			test.True(t, format.IsExporter(name))
		})
	}

	_, err := format.ExporterFor("xml")
	test.Err(t, err)
	test.Equal(t, err.Error(), `unsupported format "xml", expected one of (text, json, yaml, toml)`)
	test.False(t, format.IsExporter("xml"))
}

func TestImporterFor(t *testing.T) {
	for _, name := range format.Importers() {
		t.Run(name, func(t *testing.T) {
			importer, err := format.ImporterFor(name)
			test.Ok(t, err)
			test.True(t, importer != nil)
			test.True(t, format.IsImporter(name))
		})
	}

	_, err := format.ImporterFor(format.Text)
	test.Err(t, err)
	test.Equal(t, err.Error(), `unsupported format "text", expected one of (json, yaml, toml)`)
	test.False(t, format.IsImporter(format.Text))
}

func TestTextExporter(t *testing.T) {
	buf := &bytes.Buffer{}
	err := format.TextExporter{}.Export(buf, results())
	test.Ok(t, err)

	want := "Expected: A.Dummy\n" +
		"But was:  B.Dummy\n" +
		"\n" +
		"Expected: Generic`1[Type]\n" +
		"But was:  Generic`1[OtherType]\n" +
		"\n" +
		"# could not parse type name \"List`2[A]\": expected:5-6: generic type declares 2 type arguments but 1 were given\n" +
		"Expected: List`2[A]\n" +
		"But was:  Int32\n"

	test.Diff(t, buf.String(), want)
}

func TestTextExporterEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	err := format.TextExporter{}.Export(buf, nil)
	test.Ok(t, err)
	test.Equal(t, buf.String(), "")
}

func TestJSONExporter(t *testing.T) {
	buf := &bytes.Buffer{}
	err := format.JSONExporter{}.Export(buf, results()[:1])
	test.Ok(t, err)

	want := `[
  {
    "expected": "NS.A.Dummy",
    "actual": "NS.B.Dummy",
    "expectedShort": "A.Dummy",
    "actualShort": "B.Dummy"
  }
]
`

	test.Diff(t, buf.String(), want)

	buf.Reset()
	err = format.JSONExporter{}.Export(buf, nil)
	test.Ok(t, err)
	test.Equal(t, buf.String(), "[]\n")
}

func TestExportSnapshot(t *testing.T) {
	for _, name := range format.Exporters() {
		t.Run(name, func(t *testing.T) {
			snap := snapshot.New(
				t,
				snapshot.Update(*update),
				snapshot.Clean(*clean),
				snapshot.Color(os.Getenv("CI") == ""),
			)

			exporter, err := format.ExporterFor(name)
			test.Ok(t, err)

			buf := &bytes.Buffer{}
			test.Ok(t, exporter.Export(buf, results()))

			snap.Snap(buf.String())
		})
	}
}

func TestYAMLExporter(t *testing.T) {
	want := results()

	buf := &bytes.Buffer{}
	err := format.YAMLExporter{}.Export(buf, want)
	test.Ok(t, err)

	var got []resolver.Result
	test.Ok(t, yaml.Unmarshal(buf.Bytes(), &got))

	test.EqualFunc(t, got, want, equalResults)
}

func TestTOMLExporter(t *testing.T) {
	want := results()

	buf := &bytes.Buffer{}
	err := format.TOMLExporter{}.Export(buf, want)
	test.Ok(t, err)

	test.True(t, strings.HasPrefix(buf.String(), "[[result]]"), test.Context("got %q", buf.String()))

	var got struct {
		Results []resolver.Result `toml:"result"`
	}

	_, err = toml.Decode(buf.String(), &got)
	test.Ok(t, err)

	test.EqualFunc(t, got.Results, want, equalResults)
}

func TestImporters(t *testing.T) {
	want := []resolver.Pair{
		{Expected: "NS.A.Dummy", Actual: "NS.B.Dummy1"},
		{Expected: "List`1[System.Int32]", Actual: "List`1[System.Int64]"},
	}

	tests := []struct {
		name    string // Name of the test case
		format  string // Name of the format
		input   string // Raw document
		wantErr bool   // Whether we want an error
	}{
		{
			name:   "json",
			format: format.JSON,
			input: `[
  {"expected": "NS.A.Dummy", "actual": "NS.B.Dummy1"},
  {"expected": "List` + "`" + `1[System.Int32]", "actual": "List` + "`" + `1[System.Int64]"}
]`,
		},
		{
			name:   "yaml",
			format: format.YAML,
			input: "- expected: NS.A.Dummy\n" +
				"  actual: NS.B.Dummy1\n" +
				"- expected: List`1[System.Int32]\n" +
				"  actual: List`1[System.Int64]\n",
		},
		{
			name:   "toml",
			format: format.TOML,
			input: "[[pair]]\n" +
				"expected = \"NS.A.Dummy\"\n" +
				"actual = \"NS.B.Dummy1\"\n" +
				"\n" +
				"[[pair]]\n" +
				"expected = \"List`1[System.Int32]\"\n" +
				"actual = \"List`1[System.Int64]\"\n",
		},
		{
			name:    "json unknown field",
			format:  format.JSON,
			input:   `[{"expected": "A", "actual": "B", "other": "C"}]`,
			wantErr: true,
		},
		{
			name:    "json not an array",
			format:  format.JSON,
			input:   `{"expected": "A", "actual": "B"}`,
			wantErr: true,
		},
		{
			name:    "yaml unknown field",
			format:  format.YAML,
			input:   "- expected: A\n  actual: B\n  other: C\n",
			wantErr: true,
		},
		{
			name:    "toml unknown key",
			format:  format.TOML,
			input:   "[[pair]]\nexpected = \"A\"\nactual = \"B\"\nother = \"C\"\n",
			wantErr: true,
		},
		{
			name:    "toml syntax error",
			format:  format.TOML,
			input:   "[[pair]\nexpected = ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			importer, err := format.ImporterFor(tt.format)
			test.Ok(t, err)

			got, err := importer.Import(strings.NewReader(tt.input))
			test.WantErr(t, err, tt.wantErr)

			if !tt.wantErr {
				test.EqualFunc(t, got, want, equalPairs)
			}
		})
	}
}

func TestYAMLImporterEmpty(t *testing.T) {
	got, err := format.YAMLImporter{}.Import(strings.NewReader(""))
	test.Ok(t, err)
	test.Equal(t, len(got), 0)
}

func equalResults(a, b []resolver.Result) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func equalPairs(a, b []resolver.Pair) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
