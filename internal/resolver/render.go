package resolver

import (
	"strings"

	"go.followtheprocess.codes/typediff/internal/typename"
)

// Render reconstructs a display type name from a (possibly generic) name and its
// already rendered arguments.
//
//	Render("List`1", []string{"Int32"})    // "List`1[Int32]"
//	Render("Int32", nil)                  // "Int32"
func Render(name string, args []string) string {
	if len(args) == 0 {
		return name
	}

	return name + "[" + strings.Join(args, ",") + "]"
}

// Shorten renders sig with every namespace collapsed to its bare name, at every
// level of nesting. There is no counterpart to diff against so nothing is kept
// for disambiguation.
//
//	Shorten(System.Collections.Generic.List`1[System.Int32]) // "List`1[Int32]"
func Shorten(sig typename.Signature) string {
	args := make([]string, 0, len(sig.Args))
	for _, arg := range sig.Args {
		args = append(args, Shorten(arg))
	}

	return Render(sig.Name(), args) + sig.Decorators
}
