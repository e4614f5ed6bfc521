package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/cli/flag"
	"go.followtheprocess.codes/typediff/internal/format"
	"go.followtheprocess.codes/typediff/internal/typediff"
)

const batchLong = `
Batch reads a list of expected and actual type name pairs and resolves
the difference for each of them concurrently.

The input may be JSON, YAML or TOML. JSON and YAML documents are a list
of objects with 'expected' and 'actual' keys, TOML documents are an array
of [[pair]] tables with the same keys. The input format is inferred from
the file extension unless '--input-format' is given.

Names that fail to parse are not an error, they are shown as given and
the result marked as a fallback.
`

// batch returns the typediff batch subcommand.
func batch() (*cli.Command, error) {
	var options typediff.BatchOptions

	return cli.New(
		"batch",
		cli.Short("Resolve the difference for a file of type name pairs"),
		cli.Long(batchLong),
		cli.Arg(&options.Path, "path", "File of pairs to resolve, '-' for stdin"),
		cli.Flag(
			&options.Format,
			"format",
			'f',
			"Output format, one of (text|json|yaml|toml)",
			cli.FlagDefault(format.JSON),
		),
		cli.Flag(
			&options.InputFormat,
			"input-format",
			'i',
			"Input format, one of (json|yaml|toml)",
		),
		cli.Flag(
			&options.Concurrency,
			"concurrency",
			flag.NoShortHand,
			"Maximum number of pairs resolved at once",
			cli.FlagDefault(typediff.DefaultConcurrency),
		),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			app := typediff.New(options.Debug, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())
			return app.Batch(ctx, options)
		}),
	)
}
