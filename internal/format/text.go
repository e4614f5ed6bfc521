package format

import (
	_ "embed"
	"io"
	"strings"
	"text/template"

	"go.followtheprocess.codes/typediff/internal/resolver"
)

//go:embed templates/text.txt.tmpl
var textTempl string

// textFunctions are custom template functions available in the textTemplate.
//
//nolint:gochecknoglobals // This has to be here
var textFunctions = template.FuncMap{
	"comment": comment,
}

// textTemplate is the parsed assertion message text/template.
//
//nolint:gochecknoglobals // Having the template as a global means it's parsed only once
var textTemplate = template.Must(template.New("text").Funcs(textFunctions).Parse(textTempl))

// TextExporter is an [Exporter] that writes each result as the two line
// "Expected/But was" block shown in assertion failures, separated by a blank line.
//
// Fallback results are preceded by their parse errors as '#' comments.
type TextExporter struct{}

// Export implements [Exporter] for [TextExporter].
func (t TextExporter) Export(w io.Writer, results []resolver.Result) error {
	return textTemplate.Execute(w, results)
}

// comment prefixes every line of s with "# ".
func comment(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = "# " + line
	}

	return strings.Join(lines, "\n")
}
