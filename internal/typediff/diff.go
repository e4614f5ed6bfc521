package typediff

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/huh"
	"go.followtheprocess.codes/hue"
	"go.followtheprocess.codes/msg"
	"go.followtheprocess.codes/typediff/internal/format"
	"go.followtheprocess.codes/typediff/internal/resolver"
	"go.followtheprocess.codes/typediff/internal/typename/parser"
)

// Styles.
const (
	// labelStyle is the style used for the "Expected:" and "But was:" labels.
	labelStyle = hue.Bold

	// expectedStyle is the style used to render the shortened expected type name.
	expectedStyle = hue.Green

	// actualStyle is the style used to render the shortened actual type name.
	actualStyle = hue.Red

	// dimmed is the style used for informational content like the raw names
	// a fallback result was built from.
	dimmed = hue.BrightBlack | hue.Italic
)

// DiffOptions are the options passed to the diff subcommand.
type DiffOptions struct {
	// Expected is the fully-qualified expected type name, prompted for if empty.
	Expected string

	// Actual is the fully-qualified actual type name, prompted for if empty.
	Actual string

	// Format is the output format e.g. text, json, yaml.
	Format string

	// Debug enables debug logging.
	Debug bool
}

// Validate reports whether the DiffOptions is valid, returning an error
// if it's not.
//
// nil means the options are valid.
func (d DiffOptions) Validate() error {
	if !format.IsExporter(d.Format) {
		return fmt.Errorf("invalid option for --format %q, allowed values are %v", d.Format, format.Exporters())
	}

	return nil
}

// Diff implements the diff subcommand.
func (a App) Diff(ctx context.Context, options DiffOptions) error {
	logger := a.logger.Prefixed("diff")

	if err := options.Validate(); err != nil {
		return err
	}

	logger.Debug("Diff configuration", slog.String("version", a.version), slog.String("options", fmt.Sprintf("%+v", options)))

	pair, err := a.promptMissing(ctx, options)
	if err != nil {
		return err
	}

	logger.Debug("Resolving", slog.String("expected", pair.Expected), slog.String("actual", pair.Actual))

	result := resolver.Difference(pair)

	if result.Fallback {
		logger.Debug("Falling back to raw names", slog.String("error", result.Error))
		msg.Fwarn(a.stderr, "showing raw names, %s", result.Error)
	}

	if options.Format != format.Text {
		exporter, err := format.ExporterFor(options.Format)
		if err != nil {
			return err
		}

		return exporter.Export(a.stdout, []resolver.Result{result})
	}

	a.showResult(result)

	return nil
}

// showResult prints the result in a user friendly way to a.stdout.
func (a App) showResult(result resolver.Result) {
	fmt.Fprintf(a.stdout, "%s %s\n", labelStyle.Text("Expected:"), expectedStyle.Text(result.ExpectedShort))
	fmt.Fprintf(a.stdout, "%s  %s\n", labelStyle.Text("But was:"), actualStyle.Text(result.ActualShort))

	if result.Fallback {
		fmt.Fprintln(a.stdout)
		fmt.Fprintln(a.stdout, dimmed.Text(fmt.Sprintf("(from %s and %s)", result.Expected, result.Actual)))
	}
}

// promptMissing asks the user for whichever of the expected and actual type names
// were not given on the command line.
func (a App) promptMissing(ctx context.Context, options DiffOptions) (resolver.Pair, error) {
	pair := resolver.Pair{Expected: options.Expected, Actual: options.Actual}

	var fields []huh.Field

	if pair.Expected == "" {
		fields = append(fields, huh.NewInput().
			Title("Expected type").
			Placeholder("System.Collections.Generic.List`1[System.Int32]").
			Validate(validateTypeName("expected")).
			Value(&pair.Expected),
		)
	}

	if pair.Actual == "" {
		fields = append(fields, huh.NewInput().
			Title("Actual type").
			Placeholder("System.Collections.Generic.List`1[System.Int64]").
			Validate(validateTypeName("actual")).
			Value(&pair.Actual),
		)
	}

	if len(fields) == 0 {
		return pair, nil
	}

	a.logger.Prefixed("diff").Debug("Prompting for missing type names", slog.Int("count", len(fields)))

	form := huh.NewForm(huh.NewGroup(fields...)).
		WithInput(a.stdin).
		WithOutput(a.stderr)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return resolver.Pair{}, errors.New("aborted")
		}

		return resolver.Pair{}, fmt.Errorf("could not prompt for type names: %w", err)
	}

	return pair, nil
}

// validateTypeName returns a huh input validator that rejects anything that does
// not parse as a type name.
func validateTypeName(name string) func(string) error {
	return func(s string) error {
		_, err := parser.Parse(name, s, nil)
		return err
	}
}
