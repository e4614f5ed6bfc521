// Package scanner implements a lexical scanner for fully-qualified type names, reading
// the raw text and producing a stream of tokens to be consumed by the parser.
//
// The scanner is a state-function based scanner similar to that described by Rob Pike
// in his talk [Lexical Scanning in Go], each "scanFn" does the work for the current
// state and returns the next one.
//
// Unlike the talk (and text/template) the state machine is not run in its own goroutine,
// type names are tiny and parsing them must stay a plain, synchronous function call. Instead
// [Scanner.Scan] drives the state machine forward just far enough to produce the next token.
//
// [Lexical Scanning in Go]: https://go.dev/talks/2011/lex.slide#1
package scanner

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"go.followtheprocess.codes/typediff/internal/typename"
	"go.followtheprocess.codes/typediff/internal/typename/token"
)

// eof signifies we have reached the end of the input.
const eof = rune(-1)

// scanFn represents the state of the scanner as a function that does the work
// associated with the current state, then returns the next state.
type scanFn func(*Scanner) scanFn

// Scanner is the type name scanner.
type Scanner struct {
	handler     typename.ErrorHandler // Called with every syntax error, may be nil
	state       scanFn                // The current state, nil once scanning has finished
	name        string                // Name of the source e.g. "expected"
	src         string                // Raw source text
	pending     []token.Token         // Tokens emitted but not yet returned from Scan
	diagnostics []typename.Diagnostic // Diagnostics gathered during scanning
	start       int                   // The start position of the current token
	pos         int                   // Current scanner position in src (bytes, 0 indexed)
}

// New returns a new [Scanner] ready to scan src.
//
// The handler is called for every syntax error encountered, it may be nil in which
// case errors are only available through [Scanner.Diagnostics].
func New(name, src string, handler typename.ErrorHandler) *Scanner {
	return &Scanner{
		handler: handler,
		state:   scanStart,
		name:    name,
		src:     src,
	}
}

// Scan scans the input and returns the next token.
//
// Once the input is exhausted (or an error token has been returned), every
// subsequent call returns an EOF token.
func (s *Scanner) Scan() token.Token {
	for len(s.pending) == 0 {
		if s.state == nil {
			return token.Token{Kind: token.EOF, Start: len(s.src), End: len(s.src)}
		}

		s.state = s.state(s)
	}

	tok := s.pending[0]
	s.pending = s.pending[1:]

	return tok
}

// Diagnostics returns the list of diagnostics gathered during scanning.
func (s *Scanner) Diagnostics() []typename.Diagnostic {
	// Copy so the caller can't mutate ours
	diagCopy := make([]typename.Diagnostic, 0, len(s.diagnostics))
	diagCopy = append(diagCopy, s.diagnostics...)

	return diagCopy
}

// next returns the next utf8 rune in the input, or [eof], and advances the scanner
// over that rune.
func (s *Scanner) next() rune {
	if s.pos >= len(s.src) {
		return eof
	}

	char, width := utf8.DecodeRuneInString(s.src[s.pos:])
	s.pos += width

	return char
}

// peek returns the next utf8 rune in the input, or [eof], but does not
// advance the scanner.
func (s *Scanner) peek() rune {
	if s.pos >= len(s.src) {
		return eof
	}

	char, _ := utf8.DecodeRuneInString(s.src[s.pos:])

	return char
}

// skip ignores any characters for which the predicate returns true, stopping at the
// first one that returns false.
//
// The scanner start position is brought up to the current position before returning.
func (s *Scanner) skip(predicate func(r rune) bool) {
	for predicate(s.peek()) {
		s.next()
	}

	s.start = s.pos
}

// takeWhile consumes characters so long as the predicate returns true, stopping at the
// first one that returns false such that after it returns, [Scanner.next] returns the first 'false' rune.
func (s *Scanner) takeWhile(predicate func(r rune) bool) {
	for predicate(s.peek()) {
		s.next()
	}
}

// emit queues a token of the given kind spanning from start to the current position.
func (s *Scanner) emit(kind token.Kind) {
	s.pending = append(s.pending, token.Token{
		Kind:  kind,
		Start: s.start,
		End:   s.pos,
	})

	s.start = s.pos
}

// error records a diagnostic spanning the current token, passes it to the installed
// handler and emits an error token.
func (s *Scanner) error(msg string) {
	// Columns are 1 indexed, the end column is inclusive
	startCol := 1 + s.start

	endCol := s.pos
	if endCol < startCol {
		endCol = startCol
	}

	position := typename.Position{
		Name:     s.name,
		Offset:   s.start,
		StartCol: startCol,
		EndCol:   endCol,
	}

	s.diagnostics = append(s.diagnostics, typename.Diagnostic{Position: position, Msg: msg})

	if s.handler != nil {
		s.handler(position, msg)
	}

	s.emit(token.Error)
}

// errorf calls error with a formatted message.
func (s *Scanner) errorf(format string, a ...any) {
	s.error(fmt.Sprintf(format, a...))
}

// scanStart is the initial state of the scanner.
func scanStart(s *Scanner) scanFn {
	if s.pos == 0 {
		// Leading whitespace around the whole name is ignored
		s.skip(unicode.IsSpace)
	}

	switch char := s.next(); char {
	case eof:
		s.emit(token.EOF)
		return nil
	case '.':
		s.emit(token.Dot)
	case '[':
		s.emit(token.LeftBracket)
	case ']':
		s.emit(token.RightBracket)
	case ',':
		s.emit(token.Comma)

		// Argument lists may be written "[A, B]"
		s.skip(unicode.IsSpace)
	case '*':
		s.emit(token.Star)
	case '&':
		s.emit(token.Ampersand)
	case '`':
		return scanArity
	case utf8.RuneError:
		s.errorf("invalid utf8 character at offset %d", s.start)
		return nil
	default:
		if unicode.IsSpace(char) {
			return scanSpace
		}

		return scanName
	}

	return scanStart
}

// scanSpace scans whitespace anywhere other than the start of the input or after a
// ',', which is only allowed if it runs to the end of the input.
//
// The first whitespace character has already been consumed.
func scanSpace(s *Scanner) scanFn {
	s.takeWhile(unicode.IsSpace)

	if s.peek() == eof {
		s.start = s.pos
		s.emit(token.EOF)

		return nil
	}

	s.error("unexpected whitespace, only allowed after ',' in a type argument list")

	return nil
}

// scanArity scans a generic arity marker, a '`' followed by one or more digits.
//
// The opening '`' has already been consumed.
func scanArity(s *Scanner) scanFn {
	if !isDigit(s.peek()) {
		s.error("arity marker '`' must be followed by the number of type arguments")
		return nil
	}

	s.takeWhile(isDigit)
	s.emit(token.Arity)

	return scanStart
}

// scanName scans a single name segment.
//
// The first character of the name has already been consumed.
func scanName(s *Scanner) scanFn {
	s.takeWhile(isName)
	s.emit(token.Name)

	return scanStart
}

// isDigit reports whether r is a valid ASCII digit.
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isName reports whether r is valid inside a name segment.
//
// Anything that isn't structural punctuation or whitespace is allowed so that
// nested type separators ('+') and compiler generated names ('<>c__DisplayClass')
// survive as part of the segment.
func isName(r rune) bool {
	switch r {
	case eof, utf8.RuneError, '.', '`', '[', ']', ',', '*', '&':
		return false
	default:
		return !unicode.IsSpace(r)
	}
}
