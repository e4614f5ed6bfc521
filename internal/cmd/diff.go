package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/typediff/internal/format"
	"go.followtheprocess.codes/typediff/internal/typediff"
)

const diffLong = `
Diff takes an expected and an actual fully-qualified type name and shows the
shortest form of each that still tells them apart.

Namespaces shared by both names are dropped, generic type arguments are compared
argument by argument so a difference deep inside a generic stays visible.

If either name is omitted, you will be prompted for it.
`

// diff returns the typediff diff subcommand.
func diff() (*cli.Command, error) {
	var options typediff.DiffOptions

	return cli.New(
		"diff",
		cli.Short("Show the difference between two type names"),
		cli.Long(diffLong),
		cli.Arg(&options.Expected, "expected", "The expected type name", cli.ArgDefault("")),
		cli.Arg(&options.Actual, "actual", "The actual type name", cli.ArgDefault("")),
		cli.Flag(
			&options.Format,
			"format",
			'f',
			"Output format, one of (text|json|yaml|toml)",
			cli.FlagDefault(format.Text),
		),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			app := typediff.New(options.Debug, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())
			return app.Diff(ctx, options)
		}),
	)
}
