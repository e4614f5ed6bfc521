// Package token provides the set of lexical tokens for a fully-qualified type name.
package token

import (
	"fmt"
	"slices"
)

// Kind is the kind of a token.
type Kind int

//go:generate stringer -type Kind -linecomment
const (
	EOF          Kind = iota // EOF
	Error                    // Error
	Name                     // Name
	Dot                      // Dot
	Arity                    // Arity
	LeftBracket              // LeftBracket
	RightBracket             // RightBracket
	Comma                    // Comma
	Star                     // Star
	Ampersand                // Ampersand
)

// Token is a lexical token in a type name.
type Token struct {
	Kind  Kind // The kind of token this is
	Start int  // Byte offset from the start of the source to the start of this token
	End   int  // Byte offset from the start of the source to the end of this token
}

// String implements [fmt.Stringer] for a [Token].
func (t Token) String() string {
	return fmt.Sprintf("<Token::%s start=%d, end=%d>", t.Kind, t.Start, t.End)
}

// Is reports whether the token is any of the provided [Kind]s.
func (t Token) Is(kinds ...Kind) bool {
	return slices.Contains(kinds, t.Kind)
}

// Text returns the slice of src the token spans.
//
// It returns "" if the token's offsets lie outside src.
func (t Token) Text(src string) string {
	if t.Start < 0 || t.End > len(src) || t.Start > t.End {
		return ""
	}

	return src[t.Start:t.End]
}

// MarshalText implements [encoding.TextMarshaler] for [Kind].
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
