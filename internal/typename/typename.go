// Package typename provides the structured form of a fully-qualified type name along
// with the position and diagnostic types shared by the scanner and parser.
//
// A fully-qualified type name looks like:
//
//	Namespace.Outer+Inner`2[Some.Arg,Other.Generic`1[Leaf]]
//
// That is: dot separated namespace and nesting segments, an optional backtick followed
// by the generic arity (and any classes nested inside the generic, "List`1+Enumerator"),
// and a bracketed, comma separated list of argument type names which may themselves
// be generic.
package typename

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrParse is the sentinel wrapped by every [ParseError], use it with [errors.Is].
var ErrParse = errors.New("parse error")

// Signature is a parsed fully-qualified type name.
//
// Signatures are only ever constructed by the parser and are treated as immutable
// values, each one owns its argument subtrees outright.
type Signature struct {
	// Path is the dot separated name segments, outermost first. It always has
	// at least one element and never contains the arity marker or brackets.
	Path []string `json:"path" toml:"path" yaml:"path"`

	// Args are the generic type arguments, len(Args) == Arity.
	Args []Signature `json:"args,omitempty" toml:"args,omitempty" yaml:"args,omitempty"`

	// Nested is the nested class continuation that follows the arity marker of a
	// generic name e.g. "+Enumerator" in "List`1+Enumerator[Int32]". Any arity markers
	// it contains count towards Arity.
	Nested string `json:"nested,omitempty" toml:"nested,omitempty" yaml:"nested,omitempty"`

	// Decorators holds any trailing array, pointer or by-ref markers e.g. "[]", "[,]*".
	Decorators string `json:"decorators,omitempty" toml:"decorators,omitempty" yaml:"decorators,omitempty"`

	// Arity is the number of generic type parameters, 0 means non-generic. For a nested
	// generic this is the total across every arity marker in the name.
	Arity int `json:"arity,omitempty" toml:"arity,omitempty" yaml:"arity,omitempty"`
}

// IsGeneric reports whether the signature describes a generic type.
func (s Signature) IsGeneric() bool {
	return s.Arity > 0
}

// Bare returns the last segment of the path, the type name with no namespace.
func (s Signature) Bare() string {
	if len(s.Path) == 0 {
		return ""
	}

	return s.Path[len(s.Path)-1]
}

// Name returns the bare name, with the arity marker and any nested class
// continuation appended if the signature is generic e.g. "Dictionary`2" or
// "Dictionary`2+KeyCollection".
func (s Signature) Name() string {
	if !s.IsGeneric() {
		return s.Bare()
	}

	return s.Bare() + "`" + strconv.Itoa(s.Arity-s.nestedArity()) + s.Nested
}

// nestedArity returns the sum of the arity markers inside s.Nested.
func (s Signature) nestedArity() int {
	total := 0
	rest := s.Nested

	for {
		index := strings.IndexByte(rest, '`')
		if index < 0 {
			return total
		}

		rest = rest[index+1:]

		end := 0
		for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
			end++
		}

		n, _ := strconv.Atoi(rest[:end])
		total += n
		rest = rest[end:]
	}
}

// Segments returns the path with its final segment replaced by [Signature.Name], so
// a generic name and its arity compare as a single unit.
//
// The returned slice is a copy, callers may modify it.
func (s Signature) Segments() []string {
	segments := make([]string, len(s.Path))
	copy(segments, s.Path)

	if len(segments) != 0 {
		segments[len(segments)-1] = s.Name()
	}

	return segments
}

// String implements [fmt.Stringer] for a [Signature], rendering it back
// into its fully-qualified form.
func (s Signature) String() string {
	builder := &strings.Builder{}

	prefix := s.Path
	if len(prefix) != 0 {
		prefix = prefix[:len(prefix)-1]
	}

	for _, segment := range prefix {
		builder.WriteString(segment)
		builder.WriteByte('.')
	}

	builder.WriteString(s.Name())

	if len(s.Args) != 0 {
		builder.WriteByte('[')

		for i, arg := range s.Args {
			if i > 0 {
				builder.WriteByte(',')
			}

			builder.WriteString(arg.String())
		}

		builder.WriteByte(']')
	}

	builder.WriteString(s.Decorators)

	return builder.String()
}

// Position is a position within a single type name source.
//
// Type names are single line so there is no line information, columns are byte based
// and 1 indexed to match what a terminal shows.
type Position struct {
	Name     string `json:"name"`     // Name of the source e.g. "expected" or "names.txt:3"
	Offset   int    `json:"offset"`   // Byte offset of the position from the start of the source
	StartCol int    `json:"startCol"` // Start column (1 indexed)
	EndCol   int    `json:"endCol"`   // End column (1 indexed), EndCol == StartCol when pointing to a single character
}

// IsValid reports whether the [Position] describes a valid source position.
func (p Position) IsValid() bool {
	return p.Name != "" && p.StartCol >= 1 && p.EndCol >= p.StartCol
}

// String returns a string representation of a [Position].
//
//   - "name:start-end": valid position pointing to a range of text
//   - "name:start": valid position pointing to a single character (EndCol == StartCol)
func (p Position) String() string {
	if !p.IsValid() {
		return fmt.Sprintf(
			"BadPosition: {Name: %q, StartCol: %d, EndCol: %d}",
			p.Name,
			p.StartCol,
			p.EndCol,
		)
	}

	if p.StartCol == p.EndCol {
		return fmt.Sprintf("%s:%d", p.Name, p.StartCol)
	}

	return fmt.Sprintf("%s:%d-%d", p.Name, p.StartCol, p.EndCol)
}

// Diagnostic is a syntax level diagnostic.
type Diagnostic struct {
	Msg      string   `json:"msg"`      // A descriptive message explaining the error
	Position Position `json:"position"` // The source position the diagnostic points to
}

// String prints a [Diagnostic].
func (d Diagnostic) String() string {
	return d.Position.String() + ": " + d.Msg + "\n"
}

// ErrorHandler is a function that is called in response to syntax errors.
type ErrorHandler func(pos Position, msg string)

// ParseError is returned when a type name cannot be parsed.
//
// It carries every diagnostic reported while parsing and matches [ErrParse]
// under [errors.Is].
type ParseError struct {
	Raw         string       // The raw text that failed to parse
	Diagnostics []Diagnostic // Diagnostics reported during parsing, in source order
}

// Error implements the error interface for [ParseError].
func (e *ParseError) Error() string {
	if len(e.Diagnostics) == 0 {
		return fmt.Sprintf("could not parse type name %q", e.Raw)
	}

	first := e.Diagnostics[0]

	return fmt.Sprintf("could not parse type name %q: %s: %s", e.Raw, first.Position, first.Msg)
}

// Unwrap returns [ErrParse].
func (e *ParseError) Unwrap() error {
	return ErrParse
}
