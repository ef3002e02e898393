package earley

import (
	"testing"

	"github.com/corrective-parsing/alcep"
	"github.com/corrective-parsing/alcep/csppf"
	"github.com/corrective-parsing/alcep/grammar"
)

// makeGrammar builds a tiny grammar for digit sums: S -> S "+" D | D,
// D -> "0" | "1".
func makeGrammar(t *testing.T) (*grammar.Grammar, grammar.Symbol, grammar.Symbol, grammar.Symbol) {
	t.Helper()
	plus := grammar.Symbol{Name: "+", Terminal: true, TokType: 1}
	zero := grammar.Symbol{Name: "0", Terminal: true, TokType: 2}
	one := grammar.Symbol{Name: "1", Terminal: true, TokType: 3}

	b := grammar.NewBuilder("sums")
	b.LHS("S").N("S").T(plus.Name, plus.TokType).N("D").End()
	b.LHS("S").N("D").End()
	b.LHS("D").T(zero.Name, zero.TokType).End()
	b.LHS("D").T(one.Name, one.TokType).End()
	g, err := b.Grammar("S")
	if err != nil {
		t.Fatalf("Grammar: %v", err)
	}
	return g, plus, zero, one
}

type fixedToken struct {
	kind   alcep.TokType
	lexeme string
}

func (f fixedToken) TokType() alcep.TokType { return f.kind }
func (f fixedToken) Lexeme() string         { return f.lexeme }
func (f fixedToken) Value() interface{}     { return f.lexeme }
func (f fixedToken) Span() alcep.Span       { return alcep.Span{} }

// fixedTokenizer replays a fixed slice of tokens, then EOF forever.
type fixedTokenizer struct {
	toks []alcep.Token
	pos  int
}

func (f *fixedTokenizer) NextToken() alcep.Token {
	if f.pos >= len(f.toks) {
		return fixedToken{kind: alcep.TokType(-1)}
	}
	tok := f.toks[f.pos]
	f.pos++
	return tok
}

func (f *fixedTokenizer) SetErrorHandler(func(error)) {}

func TestParseWellFormedInputFindsADerivation(t *testing.T) {
	g, plus, zero, one := makeGrammar(t)
	ga := grammar.Analyze(g)
	r := NewRecognizer(ga)

	tz := &fixedTokenizer{toks: []alcep.Token{
		fixedToken{kind: one.TokType, lexeme: "1"},
		fixedToken{kind: plus.TokType, lexeme: "+"},
		fixedToken{kind: zero.TokType, lexeme: "0"},
	}}
	root, err := r.Parse(tz, g.Start)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(root.Packed) == 0 {
		t.Fatalf("expected at least one derivation for a well-formed input")
	}
}

func TestParseBadTokenStillFindsACorrection(t *testing.T) {
	g, plus, zero, _ := makeGrammar(t)
	ga := grammar.Analyze(g)
	r := NewRecognizer(ga)

	// "0 + +" — the second "+" cannot be read as D, forcing a
	// replacement or deletion correction.
	tz := &fixedTokenizer{toks: []alcep.Token{
		fixedToken{kind: zero.TokType, lexeme: "0"},
		fixedToken{kind: plus.TokType, lexeme: "+"},
		fixedToken{kind: plus.TokType, lexeme: "+"},
	}}
	root, err := r.Parse(tz, g.Start)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(root.Packed) == 0 {
		t.Fatalf("expected at least one correction for a malformed input")
	}
}

func TestParseOfflineMatchesStreaming(t *testing.T) {
	g, plus, zero, one := makeGrammar(t)
	ga := grammar.Analyze(g)

	toks := []alcep.Token{
		fixedToken{kind: one.TokType, lexeme: "1"},
		fixedToken{kind: plus.TokType, lexeme: "+"},
		fixedToken{kind: zero.TokType, lexeme: "0"},
	}

	streaming := NewRecognizer(ga)
	rootA, err := streaming.Parse(&fixedTokenizer{toks: toks}, g.Start)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	offline := NewRecognizer(ga)
	rootB, err := offline.ParseOffline(toks, g.Start)
	if err != nil {
		t.Fatalf("ParseOffline: %v", err)
	}

	if !csppf.Equal(rootA, rootB) {
		t.Fatalf("streaming and offline forests are not structurally equal:\nALCEP:  %d alternatives\nOALCEP: %d alternatives", len(rootA.Packed), len(rootB.Packed))
	}
}

// TestParseOfflineDisambiguatesReplacements checks a case the simple
// ambiguity-count comparison couldn't: an input with a genuine
// replacement choice, where getting the Left/Right wiring or the
// Q0/Xi split wrong in ParseOffline would still produce the right
// number of alternatives but attach the wrong edit operations to them.
func TestParseOfflineDisambiguatesReplacements(t *testing.T) {
	g, plus, zero, _ := makeGrammar(t)
	ga := grammar.Analyze(g)

	toks := []alcep.Token{
		fixedToken{kind: zero.TokType, lexeme: "0"},
		fixedToken{kind: plus.TokType, lexeme: "+"},
		fixedToken{kind: plus.TokType, lexeme: "+"},
	}

	streaming := NewRecognizer(ga)
	rootA, err := streaming.Parse(&fixedTokenizer{toks: toks}, g.Start)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	offline := NewRecognizer(ga)
	rootB, err := offline.ParseOffline(toks, g.Start)
	if err != nil {
		t.Fatalf("ParseOffline: %v", err)
	}

	if !csppf.Equal(rootA, rootB) {
		t.Fatalf("streaming and offline forests are not structurally equal for a malformed input")
	}
}

func TestParseEmptyGrammarStartFails(t *testing.T) {
	b := grammar.NewBuilder("empty")
	b.LHS("A").T("x", 1).End()
	g, err := b.Grammar("S")
	if err != nil {
		t.Fatalf("Grammar: %v", err)
	}
	ga := grammar.Analyze(g)
	r := NewRecognizer(ga)
	tz := &fixedTokenizer{}
	if _, err := r.Parse(tz, g.Start); err == nil {
		t.Fatalf("expected an error for a start symbol with no productions")
	}
}
