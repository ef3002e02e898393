package interactive

import (
	"testing"

	"github.com/corrective-parsing/alcep/grammar"
)

// makeGrammar builds the same tiny digit-sum grammar package earley's
// own tests use: S -> S "+" D | D, D -> "0" | "1".
func makeGrammar(t *testing.T) (grammar.Analyzer, grammar.Symbol, grammar.Symbol, grammar.Symbol, grammar.Symbol) {
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
	return grammar.Analyze(g), g.Start, plus, zero, one
}

func TestDriverBeginOffersStartingTerminals(t *testing.T) {
	ga, start, _, zero, one := makeGrammar(t)
	d := NewDriver(ga, start)

	menu, err := d.Begin()
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if !d.offers(zero) || !d.offers(one) {
		t.Fatalf("expected the opening menu to offer both digits, got %v", menu)
	}
}

func TestDriverReadRejectsTerminalNotOnMenu(t *testing.T) {
	ga, start, _, _, _ := makeGrammar(t)
	d := NewDriver(ga, start)
	if _, err := d.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	// '+' is on the opening menu (inserting a digit completes S at
	// position 0), so use a terminal the grammar does not have at all.
	star := grammar.Symbol{Name: "*", Terminal: true, TokType: 4}
	if _, err := d.Read(star, "*"); err == nil {
		t.Fatalf("expected Read to reject a terminal the opening menu never offered")
	}
}

func TestDriverReadReplaceDeleteDriveToCompletion(t *testing.T) {
	ga, start, plus, zero, one := makeGrammar(t)
	d := NewDriver(ga, start)
	if _, err := d.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	menu, err := d.Read(one, "1")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !contains(menu, plus) {
		t.Fatalf("expected '+' to be offered after reading a digit, got %v", menu)
	}

	if _, err := d.Read(plus, "+"); err != nil {
		t.Fatalf("Read '+': %v", err)
	}

	// Charge a Replace instead of reading the next digit straight.
	menu, err = d.Replace(zero, "x")
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	_ = menu

	root, err := d.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if len(root.Packed) == 0 {
		t.Fatalf("expected at least one derivation after Finish")
	}
	if !d.Finished() {
		t.Fatalf("expected Finished() to report true after a successful Finish")
	}
}

func TestDriverDeleteCarriesItemsForward(t *testing.T) {
	ga, start, _, zero, _ := makeGrammar(t)
	d := NewDriver(ga, start)
	if _, err := d.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	menu := d.Delete("?")
	if !contains(menu, zero) {
		t.Fatalf("expected the menu to still offer a digit after deleting a stray token, got %v", menu)
	}

	if _, err := d.Read(zero, "0"); err != nil {
		t.Fatalf("Read after Delete: %v", err)
	}
	root, err := d.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if len(root.Packed) == 0 {
		t.Fatalf("expected at least one derivation")
	}
}

func TestDriverFinishBeforeBeginFails(t *testing.T) {
	ga, start, _, _, _ := makeGrammar(t)
	d := NewDriver(ga, start)
	if _, err := d.Finish(); err == nil {
		t.Fatalf("expected Finish to fail when Begin was never called")
	}
}

func contains(menu []grammar.Symbol, sym grammar.Symbol) bool {
	for _, s := range menu {
		if s == sym {
			return true
		}
	}
	return false
}
