// Package resolver implements the type name difference resolver.
//
// Given two parsed type names it produces the shortest display form of each that
// still makes them visibly distinct, recursing into generic type arguments so
// that a difference deep inside a generic is shown without the noise of every
// namespace along the way.
//
// Everything in this package is pure, it holds no state and is safe to call from
// any number of goroutines at once.
package resolver

import (
	"errors"
	"fmt"

	"go.followtheprocess.codes/typediff/internal/typename"
	"go.followtheprocess.codes/typediff/internal/typename/parser"
)

// Pair is an expected and actual fully-qualified type name.
type Pair struct {
	Expected string `json:"expected" toml:"expected" yaml:"expected"`
	Actual   string `json:"actual" toml:"actual" yaml:"actual"`
}

// Result is the outcome of resolving the difference between a [Pair].
type Result struct {
	Pair `yaml:",inline"`

	// ExpectedShort is the shortened display name for the expected type.
	ExpectedShort string `json:"expectedShort" toml:"expectedShort" yaml:"expectedShort"`

	// ActualShort is the shortened display name for the actual type.
	ActualShort string `json:"actualShort" toml:"actualShort" yaml:"actualShort"`

	// Error describes why one or both names could not be parsed, empty on success.
	Error string `json:"error,omitempty" toml:"error,omitempty" yaml:"error,omitempty"`

	// Fallback is set when a name failed to parse and its raw text is shown instead.
	Fallback bool `json:"fallback,omitempty" toml:"fallback,omitempty" yaml:"fallback,omitempty"`
}

// String renders the result as the two line block used in assertion failures.
func (r Result) String() string {
	return fmt.Sprintf("Expected: %s\nBut was:  %s\n", r.ExpectedShort, r.ActualShort)
}

// Resolve returns the shortened display names for expected and actual.
//
// The cases, in priority order:
//
//   - Both generic: the top level names (including their arity) are suffix diffed, then
//     arguments present on both sides are resolved recursively. Any excess arguments on
//     the side with the larger arity have nothing to diff against so are fully shortened.
//   - One generic: the two sides share no structure, so each is fully shortened on its
//     own with [Shorten]. Internals of the generic side are never diffed against the
//     non-generic name.
//   - Neither generic: the paths are suffix diffed with [Suffixes].
//
// Resolve cannot fail given signatures produced by the parser.
func Resolve(expected, actual typename.Signature) (string, string) {
	switch {
	case expected.IsGeneric() && actual.IsGeneric():
		return resolveGeneric(expected, actual)
	case expected.IsGeneric() || actual.IsGeneric():
		return Shorten(expected), Shorten(actual)
	default:
		return Suffixes(decorated(expected), decorated(actual))
	}
}

// resolveGeneric resolves two generic signatures.
func resolveGeneric(expected, actual typename.Signature) (string, string) {
	expectedName, actualName := Suffixes(expected.Segments(), actual.Segments())

	common := min(len(expected.Args), len(actual.Args))

	expectedArgs := make([]string, 0, len(expected.Args))
	actualArgs := make([]string, 0, len(actual.Args))

	for i := range common {
		expectedArg, actualArg := Resolve(expected.Args[i], actual.Args[i])
		expectedArgs = append(expectedArgs, expectedArg)
		actualArgs = append(actualArgs, actualArg)
	}

	for _, arg := range expected.Args[common:] {
		expectedArgs = append(expectedArgs, Shorten(arg))
	}

	for _, arg := range actual.Args[common:] {
		actualArgs = append(actualArgs, Shorten(arg))
	}

	return Render(expectedName, expectedArgs) + expected.Decorators, Render(actualName, actualArgs) + actual.Decorators
}

// decorated returns the path of a non-generic signature with any decorators
// attached to the final segment, so "System.Int32[]" and "System.Int32" differ
// at the last segment.
func decorated(sig typename.Signature) []string {
	segments := sig.Segments()
	if len(segments) != 0 {
		segments[len(segments)-1] += sig.Decorators
	}

	return segments
}

// Names parses both raw type names and resolves the difference between them.
//
// If either fails to parse, the errors (each a *[typename.ParseError]) are joined
// and returned with empty names.
func Names(expected, actual string) (string, string, error) {
	expectedSig, expectedErr := parser.Parse("expected", expected, nil)
	actualSig, actualErr := parser.Parse("actual", actual, nil)

	if err := errors.Join(expectedErr, actualErr); err != nil {
		return "", "", err
	}

	expectedShort, actualShort := Resolve(expectedSig, actualSig)

	return expectedShort, actualShort, nil
}

// Difference resolves a [Pair] into a [Result].
//
// It never fails: a name that cannot be parsed is shown exactly as given, the
// other side (if it parsed) is fully shortened, and the result is marked as a
// fallback with the parse error recorded.
func Difference(pair Pair) Result {
	result := Result{Pair: pair}

	expectedSig, expectedErr := parser.Parse("expected", pair.Expected, nil)
	actualSig, actualErr := parser.Parse("actual", pair.Actual, nil)

	err := errors.Join(expectedErr, actualErr)
	if err == nil {
		result.ExpectedShort, result.ActualShort = Resolve(expectedSig, actualSig)
		return result
	}

	result.Fallback = true
	result.Error = err.Error()

	if expectedErr != nil {
		result.ExpectedShort = pair.Expected
	} else {
		result.ExpectedShort = Shorten(expectedSig)
	}

	if actualErr != nil {
		result.ActualShort = pair.Actual
	} else {
		result.ActualShort = Shorten(actualSig)
	}

	return result
}
