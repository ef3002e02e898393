package grammar_test

import (
	"testing"

	"github.com/corrective-parsing/alcep/grammar"
)

// makeGrammar builds a tiny left-recursive expression grammar, slightly
// adapted from the classical Sum/Product/Factor example.
func makeGrammar(t *testing.T) *grammar.Analysis {
	b := grammar.NewBuilder("Expressions")
	b.LHS("Sum").N("Sum").T("+", '+').N("Product").End()
	b.LHS("Sum").N("Product").End()
	b.LHS("Product").N("Product").T("*", '*').N("Factor").End()
	b.LHS("Product").N("Factor").End()
	b.LHS("Factor").T("n", 'n').End()
	g, err := b.Grammar("Sum")
	if err != nil {
		t.Fatal(err)
	}
	return grammar.Analyze(g)
}

func TestPredictions(t *testing.T) {
	ga := makeGrammar(t)
	sum := grammar.Symbol{Name: "Sum"}
	preds := ga.Predictions(sum)
	if len(preds) != 2 {
		t.Fatalf("expected 2 rules for Sum, got %d", len(preds))
	}
}

func TestNullableWithEpsilonRule(t *testing.T) {
	b := grammar.NewBuilder("G")
	b.LHS("A").N("B").End()
	b.LHS("B").Epsilon()
	g, err := b.Grammar("A")
	if err != nil {
		t.Fatal(err)
	}
	ga := grammar.Analyze(g)
	if !ga.Nullable(grammar.Symbol{Name: "B"}) {
		t.Error("B should be nullable")
	}
	if !ga.Nullable(grammar.Symbol{Name: "A"}) {
		t.Error("A should be nullable since its only rule is all-nullable")
	}
}

func TestPrioritizedGrammarRejected(t *testing.T) {
	b := grammar.NewBuilder("G")
	b.LHS("A").T("a", 'a').Priority(1).End()
	if _, err := b.Grammar("A"); err != grammar.ErrPrioritizedGrammar {
		t.Fatalf("expected ErrPrioritizedGrammar, got %v", err)
	}
}

func TestFirstOfTerminal(t *testing.T) {
	ga := makeGrammar(t)
	factor := grammar.Symbol{Name: "Factor"}
	first := ga.First(factor)
	if len(first) != 1 || first[0].Name != "n" {
		t.Fatalf("FIRST(Factor) = %v, want [n]", first)
	}
}
