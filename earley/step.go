package earley

import (
	"fmt"

	"github.com/corrective-parsing/alcep/csppf"
	"github.com/corrective-parsing/alcep/editop"
	"github.com/corrective-parsing/alcep/grammar"
	"github.com/emirpasic/gods/sets/linkedhashset"
)

// The methods in this file let a caller drive the recognizer one
// position-advancing edit at a time instead of exploring every possible
// edit automatically, which is what package interactive needs to
// implement ALCIEP. Insertion is not among them: since it never
// advances position, it stays part of ordinary closure (computeEarleySet
// applies it unconditionally, exactly as in ALCEP), matching how the
// original alciep.py folds insertion into every compute_earley_set call
// regardless of interactivity — only the scanner, replacement and
// deletion rules are meaningfully a per-step user choice.

// Begin seeds Earley set 0 for start, runs its closure, and returns the
// distinct terminals some item of the resulting set now expects — the
// menu of read/replace choices available before any input is consumed.
func (r *Recognizer) Begin(start grammar.Symbol) ([]grammar.Symbol, error) {
	predictions := r.ga.Predictions(start)
	if len(predictions) == 0 {
		return nil, fmt.Errorf("earley: start symbol %s has no productions", start)
	}
	r.forest = csppf.NewForest()
	r.nodeOf = make(map[nodeKey]csppf.Node)
	r.sets = []*linkedhashset.Set{linkedhashset.New()}
	r.toScan = linkedhashset.New()
	for _, rule := range predictions {
		r.sets[0].Add(startItem(rule, 0))
	}
	r.computeEarleySet(0, r.toScan)
	return r.expectedTerminals(), nil
}

// Position returns the number of positions committed so far (the index
// of the current, still-open Earley set).
func (r *Recognizer) Position() uint64 { return uint64(len(r.sets) - 1) }

func (r *Recognizer) expectedTerminals() []grammar.Symbol {
	seen := make(map[grammar.Symbol]bool)
	var out []grammar.Symbol
	for _, v := range r.toScan.Values() {
		it := v.(Item)
		if sym, has := it.Expect(); has && !seen[sym] {
			seen[sym] = true
			out = append(out, sym)
		}
	}
	return out
}

// Read commits the scanner rule: every item currently expecting sym
// advances past it, charging a Read edit for letter. Returns the next
// menu of expected terminals.
func (r *Recognizer) Read(sym grammar.Symbol, letter string) ([]grammar.Symbol, error) {
	return r.advanceMatching(sym, editop.Read{Letter: letter})
}

// Replace commits the replacement rule: every item currently expecting
// sym advances past it, charging a Replace edit of letter for sym's own
// name.
func (r *Recognizer) Replace(sym grammar.Symbol, letter string) ([]grammar.Symbol, error) {
	return r.advanceMatching(sym, editop.Replace{Letter: letter, By: sym.Name})
}

// Delete commits the deletion rule: every item of the current set is
// carried forward unchanged, charging a Delete edit for letter.
func (r *Recognizer) Delete(letter string) []grammar.Symbol {
	i := r.Position()
	r.sets = append(r.sets, linkedhashset.New())
	deleted := r.forest.Token(editop.Delete{Letter: letter}, i, i+1)
	for _, v := range r.sets[i].Values() {
		item := v.(Item)
		left := r.nodeOf[nodeKey{item, i}]
		node := r.buildNode(item, i+1, left, deleted)
		r.nodeOf[nodeKey{item, i + 1}] = node
		r.sets[i+1].Add(item)
	}
	r.toScan = linkedhashset.New()
	r.computeEarleySet(i+1, r.toScan)
	return r.expectedTerminals()
}

func (r *Recognizer) advanceMatching(sym grammar.Symbol, op editop.Op) ([]grammar.Symbol, error) {
	i := r.Position()
	matched := false
	r.sets = append(r.sets, linkedhashset.New())
	for _, v := range r.toScan.Values() {
		item := v.(Item)
		expect, has := item.Expect()
		if !has || expect != sym {
			continue
		}
		matched = true
		tok := r.forest.Token(op, i, i+1)
		r.advance(item, i, i+1, tok, r.nextAdd(i+1))
	}
	if !matched {
		return nil, fmt.Errorf("earley: no item at position %d expects %s", i, sym)
	}
	r.toScan = linkedhashset.New()
	r.computeEarleySet(i+1, r.toScan)
	return r.expectedTerminals(), nil
}

// Finish closes the recognition: it returns the symbol node for start
// spanning the whole interaction, or an error if start was never
// completed.
func (r *Recognizer) Finish(start grammar.Symbol) (*csppf.SymbolNode, error) {
	end := r.Position()
	var solutions []*csppf.PackedNode
	for _, v := range r.sets[end].Values() {
		it := v.(Item)
		if it.Start != 0 || it.Rule.LHS != start || !it.IsComplete() {
			continue
		}
		if sn, ok := r.nodeOf[nodeKey{it, end}].(*csppf.SymbolNode); ok {
			solutions = append(solutions, sn.Packed...)
		}
	}
	if len(solutions) == 0 {
		return nil, fmt.Errorf("earley: %s was never completed", start)
	}
	root := r.forest.Symbol(start, 0, end, nil)
	for _, p := range solutions {
		root.Packed = appendIfNewPacked(root.Packed, p)
	}
	r.forest.SetRoot(root)
	return root, nil
}
