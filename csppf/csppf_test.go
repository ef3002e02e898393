package csppf_test

import (
	"testing"

	"github.com/corrective-parsing/alcep/csppf"
	"github.com/corrective-parsing/alcep/editop"
	"github.com/corrective-parsing/alcep/grammar"
)

func TestForestSharesStructurallyIdenticalSymbolNodes(t *testing.T) {
	f := csppf.NewForest()
	sym := grammar.Symbol{Name: "A"}
	rule := &grammar.Rule{Index: 0, LHS: sym}
	tok := f.Token(editop.Read{Letter: "a"}, 0, 1)
	packed := &csppf.PackedNode{Rule: rule, Right: tok}
	sn1 := f.Symbol(sym, 0, 1, packed)
	sn2 := f.Symbol(sym, 0, 1, packed)
	if sn1 != sn2 {
		t.Error("expected the same SymbolNode instance to be returned for identical (sym, span)")
	}
	if len(sn1.Packed) != 1 {
		t.Errorf("expected exactly one packed alternative, got %d", len(sn1.Packed))
	}
}

func TestForestAddsAmbiguousAlternative(t *testing.T) {
	f := csppf.NewForest()
	sym := grammar.Symbol{Name: "A"}
	rule1 := &grammar.Rule{Index: 0, LHS: sym}
	rule2 := &grammar.Rule{Index: 1, LHS: sym}
	tok := f.Token(editop.Read{Letter: "a"}, 0, 1)
	sn := f.Symbol(sym, 0, 1, &csppf.PackedNode{Rule: rule1, Right: tok})
	sn = f.Symbol(sym, 0, 1, &csppf.PackedNode{Rule: rule2, Right: tok})
	if len(sn.Packed) != 2 {
		t.Errorf("expected 2 packed alternatives, got %d", len(sn.Packed))
	}
}

func TestEqualDetectsStructuralEquality(t *testing.T) {
	// Both forests are built over the same grammar rule, as the two
	// recognizers are; rule identity is by pointer.
	sym := grammar.Symbol{Name: "A"}
	rule := &grammar.Rule{Index: 0, LHS: sym}
	build := func() *csppf.SymbolNode {
		f := csppf.NewForest()
		tok := f.Token(editop.Read{Letter: "a"}, 0, 1)
		return f.Symbol(sym, 0, 1, &csppf.PackedNode{Rule: rule, Right: tok})
	}
	a, b := build(), build()
	if !csppf.Equal(a, b) {
		t.Error("expected two independently built but structurally identical forests to be Equal")
	}
}

func TestEqualDetectsDifference(t *testing.T) {
	f := csppf.NewForest()
	sym := grammar.Symbol{Name: "A"}
	rule := &grammar.Rule{Index: 0, LHS: sym}
	tokA := f.Token(editop.Read{Letter: "a"}, 0, 1)
	tokB := f.Token(editop.Read{Letter: "b"}, 0, 1)
	a := f.Symbol(sym, 0, 1, &csppf.PackedNode{Rule: rule, Right: tokA})
	other := csppf.NewForest()
	b := other.Symbol(sym, 0, 1, &csppf.PackedNode{Rule: rule, Right: tokB})
	if csppf.Equal(a, b) {
		t.Error("expected forests with different token leaves to not be Equal")
	}
}
