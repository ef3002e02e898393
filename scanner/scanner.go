/*
Package scanner defines the tokenizer interface consumed by package
earley, plus two implementations: a thin wrapper over the Go standard
library's text/scanner, and an adapter for timtadh/lexmachine for
clients that need a custom lexical grammar.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package scanner

import (
	"io"
	"text/scanner"

	"github.com/corrective-parsing/alcep"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("alcep.scanner")
}

// EOF mirrors text/scanner.EOF; the recognizer treats it as the signal
// to stop consuming the input word.
const EOF = scanner.EOF

// Tokenizer is the scanner interface a Recognizer depends on.
type Tokenizer interface {
	NextToken() alcep.Token
	SetErrorHandler(func(error))
}

// DefaultTokenizer wraps text/scanner.Scanner.
type DefaultTokenizer struct {
	scanner.Scanner
	Error func(error)
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

func logError(e error) {
	tracer().Errorf("scanner error: %s", e.Error())
}

// GoTokenizer creates a tokenizer accepting tokens similar to the Go
// language, reading from input.
func GoTokenizer(sourceID string, input io.Reader) *DefaultTokenizer {
	t := &DefaultTokenizer{Error: logError}
	t.Init(input)
	t.Filename = sourceID
	return t
}

// SetErrorHandler installs h as the error handler, or restores the
// default logging handler if h is nil.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() alcep.Token {
	tok := t.Scan()
	if tok == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
	}
	return defaultToken{
		kind:   alcep.TokType(tok),
		lexeme: t.TokenText(),
		span:   alcep.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)},
	}
}

type defaultToken struct {
	kind   alcep.TokType
	lexeme string
	span   alcep.Span
}

func (t defaultToken) TokType() alcep.TokType  { return t.kind }
func (t defaultToken) Lexeme() string          { return t.lexeme }
func (t defaultToken) Value() interface{}      { return t.lexeme }
func (t defaultToken) Span() alcep.Span        { return t.span }
