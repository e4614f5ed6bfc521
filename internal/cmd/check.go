package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/cli/flag"
	"go.followtheprocess.codes/typediff/internal/typediff"
	"go.followtheprocess.codes/typediff/internal/typename"
)

const checkLong = `
The path argument is a file containing one type name per line, or '-' to
read them from stdin.

Blank lines and lines starting with '#' are ignored. Every remaining line
is parsed and any syntax errors reported with their line and column.
`

// check returns the typediff check subcommand.
func check() (*cli.Command, error) {
	var options typediff.CheckOptions

	return cli.New(
		"check",
		cli.Short("Check type names for syntax errors"),
		cli.Long(checkLong),
		cli.Arg(&options.Path, "path", "File of type names to check, '-' for stdin", cli.ArgDefault("-")),
		cli.Flag(
			&options.Concurrency,
			"concurrency",
			flag.NoShortHand,
			"Maximum number of type names parsed at once",
			cli.FlagDefault(typediff.DefaultConcurrency),
		),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			app := typediff.New(options.Debug, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())
			return app.Check(ctx, typename.PrettyConsoleHandler(cmd.Stderr()), options)
		}),
	)
}
