// Package cmd implements typediff's CLI.
package cmd

import (
	"go.followtheprocess.codes/cli"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

// Build builds and returns the typediff CLI.
func Build() (*cli.Command, error) {
	return cli.New(
		"typediff",
		cli.Short("Show the shortest distinguishing names for two .NET types"),
		cli.Version(version),
		cli.Commit(commit),
		cli.BuildDate(date),
		cli.Example("Show how two types differ", "typediff diff NS.A.Dummy NS.B.Dummy"),
		cli.Example(
			"Compare two generic types, printing the result as JSON",
			"typediff diff 'A.Generic`1[B.Type]' 'A.Generic`1[C.Type]' --format json",
		),
		cli.Example("Prompt for the type names interactively", "typediff diff"),
		cli.Example("Check a file of type names for syntax errors", "typediff check ./types.txt"),
		cli.Example("Resolve a file of pairs, exporting as YAML", "typediff batch ./pairs.json --format yaml"),
		cli.SubCommands(diff, check, batch),
	)
}
