// Package parser implements the fully-qualified type name parser.
//
// The parser is a recursive descent parser over the tokens produced by the scanner, the
// grammar it accepts is:
//
//	type       = path [ generic ] { decorator }
//	generic    = Arity { "+" Name [ Arity ] } "[" type { "," type } "]"
//	path       = Name { "." Name }
//	decorator  = "[" { "," } "]" | "*" | "&"
//
// Every generic argument is parsed by a recursive call to the type rule, so commas that
// live inside an argument's own brackets are consumed at that argument's depth and can
// never be mistaken for separators in the enclosing list.
package parser

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go.followtheprocess.codes/typediff/internal/typename"
	"go.followtheprocess.codes/typediff/internal/typename/scanner"
	"go.followtheprocess.codes/typediff/internal/typename/token"
)

// errParse is returned internally to unwind the recursion on the first syntax error,
// callers only ever see a [typename.ParseError].
var errParse = errors.New("parse error")

// Parser is the type name parser.
type Parser struct {
	handler     typename.ErrorHandler // The installed error handler, may be nil
	scanner     *scanner.Scanner      // Scanner to produce tokens
	name        string                // Name of the source being parsed
	src         string                // Raw source text
	diagnostics []typename.Diagnostic // Every diagnostic reported, from the scanner or the parser
	current     token.Token           // Current token under inspection
	next        token.Token           // Next token in the stream
}

// New initialises and returns a new [Parser] that parses src.
//
// The name identifies the source in diagnostics e.g. "expected". The handler is
// called for every syntax error, it may be nil.
func New(name, src string, handler typename.ErrorHandler) *Parser {
	p := &Parser{
		handler: handler,
		name:    name,
		src:     src,
	}

	p.scanner = scanner.New(name, src, p.collect)

	// Read 2 tokens so current and next are set
	p.advance()
	p.advance()

	return p
}

// Parse is a convenience wrapper that parses a single type name in one call.
func Parse(name, src string, handler typename.ErrorHandler) (typename.Signature, error) {
	return New(name, src, handler).Parse()
}

// Parse parses the source to completion, returning the [typename.Signature].
//
// If the source is not a well formed type name, the returned error is a
// *[typename.ParseError] carrying every diagnostic reported, the zero Signature
// is returned alongside it.
func (p *Parser) Parse() (typename.Signature, error) {
	sig, err := p.parseType()
	if err == nil && !p.current.Is(token.EOF) {
		// Error tokens have already been reported by the scanner
		if !p.current.Is(token.Error) {
			p.errorf("unexpected %s after type name", p.describe(p.current))
		}

		err = errParse
	}

	if err != nil || len(p.diagnostics) != 0 {
		// The parser reads a token ahead so a scanner error may be reported before
		// a parser error that sits earlier in the source
		slices.SortStableFunc(p.diagnostics, func(a, b typename.Diagnostic) int {
			return cmp.Compare(a.Position.Offset, b.Position.Offset)
		})

		return typename.Signature{}, &typename.ParseError{
			Raw:         p.src,
			Diagnostics: p.diagnostics,
		}
	}

	return sig, nil
}

// advance advances the parser by a single token.
func (p *Parser) advance() {
	p.current = p.next
	p.next = p.scanner.Scan()
}

// parseType parses a complete, possibly generic, type name. On return p.current
// is the first token after the type.
func (p *Parser) parseType() (typename.Signature, error) {
	path, err := p.parsePath()
	if err != nil {
		return typename.Signature{}, err
	}

	sig := typename.Signature{Path: path}

	if p.current.Is(token.Arity) {
		arity, nested, args, err := p.parseGeneric()
		if err != nil {
			return typename.Signature{}, err
		}

		sig.Arity = arity
		sig.Nested = nested
		sig.Args = args
	}

	decorators, err := p.parseDecorators()
	if err != nil {
		return typename.Signature{}, err
	}

	sig.Decorators = decorators

	return sig, nil
}

// parsePath parses a dot separated sequence of names.
func (p *Parser) parsePath() ([]string, error) {
	if err := p.expect(token.Name, "expected a type name, got %s"); err != nil {
		return nil, err
	}

	path := []string{p.current.Text(p.src)}
	p.advance()

	for p.current.Is(token.Dot) {
		p.advance()

		if err := p.expect(token.Name, "expected a name after '.', got %s"); err != nil {
			return nil, err
		}

		path = append(path, p.current.Text(p.src))
		p.advance()
	}

	return path, nil
}

// parseGeneric parses the arity marker, any nested class continuation and the
// bracketed argument list that must follow, checking that the number of arguments
// matches the declared arity.
//
// It assumes p.current is the Arity token.
func (p *Parser) parseGeneric() (int, string, []typename.Signature, error) {
	arityToken := p.current

	arity, err := p.parseArity(arityToken)
	if err != nil {
		return 0, "", nil, err
	}

	p.advance()

	// Classes nested inside a generic follow its arity e.g. "List`1+Enumerator[Int32]",
	// they may declare their own type parameters which share the one argument list
	var nested strings.Builder

	for p.current.Is(token.Name) && strings.HasPrefix(p.current.Text(p.src), "+") {
		nested.WriteString(p.current.Text(p.src))
		p.advance()

		if p.current.Is(token.Arity) {
			extra, err := p.parseArity(p.current)
			if err != nil {
				return 0, "", nil, err
			}

			arity += extra

			nested.WriteString(p.current.Text(p.src))
			p.advance()
		}
	}

	if err := p.expect(token.LeftBracket, "expected '[' to open the type argument list, got %s"); err != nil {
		return 0, "", nil, err
	}

	p.advance()

	var args []typename.Signature

	for {
		arg, err := p.parseType()
		if err != nil {
			return 0, "", nil, err
		}

		args = append(args, arg)

		if p.current.Is(token.Comma) {
			p.advance()
			continue
		}

		if err := p.expect(token.RightBracket, "expected ',' or ']' in type argument list, got %s"); err != nil {
			return 0, "", nil, err
		}

		p.advance()

		break
	}

	if len(args) != arity {
		p.errorAt(arityToken, fmt.Sprintf("generic type declares %d type arguments but %d were given", arity, len(args)))
		return 0, "", nil, errParse
	}

	return arity, nested.String(), args, nil
}

// parseArity returns the number of type parameters declared by an arity marker.
//
// The count must be a positive integer written without leading zeros, so that every
// marker has exactly one spelling.
func (p *Parser) parseArity(tok token.Token) (int, error) {
	text := strings.TrimPrefix(tok.Text(p.src), "`")

	arity, err := strconv.Atoi(text)
	if err != nil || arity < 1 || strings.HasPrefix(text, "0") {
		p.errorAt(tok, fmt.Sprintf("generic arity must be a positive integer, got %q", tok.Text(p.src)))
		return 0, errParse
	}

	return arity, nil
}

// parseDecorators parses any trailing array, pointer or by-ref decorators returning
// them in canonical form (no whitespace).
func (p *Parser) parseDecorators() (string, error) {
	var decorators strings.Builder

	for {
		switch {
		case p.current.Is(token.Star):
			decorators.WriteByte('*')
		case p.current.Is(token.Ampersand):
			decorators.WriteByte('&')
		case p.current.Is(token.LeftBracket):
			decorators.WriteByte('[')
			p.advance()

			for p.current.Is(token.Comma) {
				decorators.WriteByte(',')
				p.advance()
			}

			if err := p.expect(token.RightBracket, "expected ']' to close array specifier, got %s"); err != nil {
				return "", err
			}

			decorators.WriteByte(']')
		default:
			return decorators.String(), nil
		}

		p.advance()
	}
}

// expect asserts that p.current is of the given kind, reporting a syntax error
// with the formatted message if not. The format is passed a description of the
// offending token.
//
// expect does not advance, the caller consumes the token once it has read it.
func (p *Parser) expect(kind token.Kind, format string) error {
	if p.current.Is(token.Error) {
		// The scanner has already reported this one
		return errParse
	}

	if !p.current.Is(kind) {
		p.errorf(format, p.describe(p.current))
		return errParse
	}

	return nil
}

// describe returns a human readable description of a token for use in error messages.
func (p *Parser) describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of input"
	case token.Name:
		return fmt.Sprintf("name %q", tok.Text(p.src))
	case token.Arity:
		return fmt.Sprintf("arity marker %q", tok.Text(p.src))
	default:
		return fmt.Sprintf("%q", tok.Text(p.src))
	}
}

// position returns the source position of a token.
func (p *Parser) position(tok token.Token) typename.Position {
	startCol := 1 + tok.Start

	endCol := tok.End
	if endCol < startCol {
		endCol = startCol
	}

	return typename.Position{
		Name:     p.name,
		Offset:   tok.Start,
		StartCol: startCol,
		EndCol:   endCol,
	}
}

// collect records a diagnostic and forwards it to the installed handler, it is
// installed as the scanner's handler too so every diagnostic ends up in one place.
func (p *Parser) collect(pos typename.Position, msg string) {
	p.diagnostics = append(p.diagnostics, typename.Diagnostic{Position: pos, Msg: msg})

	if p.handler != nil {
		p.handler(pos, msg)
	}
}

// errorAt reports a syntax error pointing at tok.
func (p *Parser) errorAt(tok token.Token, msg string) {
	p.collect(p.position(tok), msg)
}

// errorf reports a syntax error at the current token with a formatted message.
func (p *Parser) errorf(format string, a ...any) {
	p.errorAt(p.current, fmt.Sprintf(format, a...))
}
