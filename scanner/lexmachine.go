package scanner

import (
	"github.com/corrective-parsing/alcep"
	"github.com/timtadh/lexmachine"
)

// LexmachineTokenizer adapts a compiled lexmachine.Scanner to the
// Tokenizer interface, for clients whose lexical grammar is richer than
// what text/scanner offers (keywords, regex-driven terminals, etc).
type LexmachineTokenizer struct {
	scanner *lexmachine.Scanner
	Error   func(error)
}

var _ Tokenizer = (*LexmachineTokenizer)(nil)

// NewLexmachineTokenizer wraps an already-started lexmachine scanner.
// Build the scanner with lexmachine.NewLexer()/Scanner(input) the usual
// way; this type only adapts the resulting iterator.
func NewLexmachineTokenizer(sc *lexmachine.Scanner) *LexmachineTokenizer {
	return &LexmachineTokenizer{scanner: sc, Error: logError}
}

func (t *LexmachineTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface. It returns an EOF-typed
// token once the underlying scanner is exhausted.
func (t *LexmachineTokenizer) NextToken() alcep.Token {
	tok, err, eof := t.scanner.Next()
	if eof {
		return defaultToken{kind: alcep.TokType(EOF)}
	}
	if err != nil {
		t.Error(err)
		return defaultToken{kind: alcep.TokType(EOF)}
	}
	lmtok := tok.(*lexmachine.Token)
	return defaultToken{
		kind:   alcep.TokType(lmtok.Type),
		lexeme: string(lmtok.Lexeme),
		span:   alcep.Span{uint64(lmtok.StartColumn), uint64(lmtok.EndColumn)},
	}
}
