package earley

import (
	"fmt"

	"github.com/corrective-parsing/alcep"
	"github.com/corrective-parsing/alcep/csppf"
	"github.com/corrective-parsing/alcep/editop"
	"github.com/corrective-parsing/alcep/grammar"
)

// ParseOffline runs the OALCEP strategy, grounded on the optimized
// parser of the original implementation: rather than repeating the
// predict/complete/insert closure at every input position the way Parse
// does, it exploits the fact that the deletion rule lets any item
// survive, dot unchanged, from one Earley set into the next. That makes
// the closure's *shape* — which items exist, ignoring which span they
// witness — identical at every position, so it only needs to be
// computed once, against the start items (set Q0) and, separately, the
// items reachable from it rather than seeded into it (set Xi). The
// forest is then synthesized directly from Q0/Xi by five analytic
// node/edge passes, one per edit rule plus the completer, instead of by
// replaying the closure per position.
//
// Q0's items are the ones anchored at input position 0 (the start items
// themselves, plus anything the completer/held-completion shortcut
// derives from them); they only ever witness spans starting at 0. Xi's
// items are reachable generically from any position, since predict and
// insertion never depend on where in the input they fire; they witness
// spans starting anywhere.
func (r *Recognizer) ParseOffline(tokens []alcep.Token, start grammar.Symbol) (*csppf.SymbolNode, error) {
	predictions := r.ga.Predictions(start)
	if len(predictions) == 0 {
		return nil, fmt.Errorf("earley: start symbol %s has no productions", start)
	}
	r.forest = csppf.NewForest()

	startItems := make([]Item, 0, len(predictions))
	for _, rule := range predictions {
		startItems = append(startItems, startItem(rule, 0))
	}
	q0, xi := r.computeQ0Xi(startItems)

	n := len(tokens)
	r.deletionEdges(q0, xi, n, tokens)
	r.insertionEdges(q0, xi, n)
	r.scanReplaceEdges(q0, xi, n, tokens)
	r.completerEdgesQ0(q0, n)
	r.completerEdgesXi(q0, xi, n)

	root := r.forest.Symbol(start, 0, uint64(n), nil)
	if len(root.Packed) == 0 {
		return nil, fmt.Errorf("earley: no corrections found for %s over %d input positions", start, n)
	}
	r.forest.SetRoot(root)
	if r.debug {
		tracer().Debugf("OALCEP done: %d/%d Q0/Xi items, %d packed alternatives at root", len(q0), len(xi), len(root.Packed))
	}
	return root, nil
}

// computeQ0Xi computes the two item sets ParseOffline needs, closing
// startItems under the predictor, completer and insertion rules exactly
// as computeEarleySet does, but without ever touching a forest node:
// node construction is deferred entirely to the later edge passes,
// since at this stage an item's witness depends on which span it'll
// eventually be asked about.
//
// Q0 holds every item reached this way, start items included. Xi holds
// the items some predict/complete/insert step actually derived — the
// ones that make sense anchored at a span not starting at 0. A start
// item is in Xi only if the predictor derives it again, as it does when
// the start symbol itself appears after a dot.
func (r *Recognizer) computeQ0Xi(startItems []Item) (q0, xi []Item) {
	inQ0 := make(map[Item]bool, len(startItems))
	inXi := make(map[Item]bool)
	held := make(map[grammar.Symbol]bool)

	q0 = append(q0, startItems...)
	for _, it := range startItems {
		inQ0[it] = true
	}
	queue := append([]Item(nil), startItems...)

	addItem := func(it Item) {
		if !inQ0[it] {
			inQ0[it] = true
			q0 = append(q0, it)
			queue = append(queue, it)
		}
		if !inXi[it] {
			inXi[it] = true
			xi = append(xi, it)
		}
	}

	for qi := 0; qi < len(queue); qi++ {
		item := queue[qi]
		sym, has := item.Expect()
		switch {
		case !has:
			// Completer rule. Every item already in Q0 that was
			// waiting on this item's LHS advances — Q0 only, since
			// this closure has no notion of "the earley set item
			// started in" beyond the single set it's all computed
			// against.
			held[item.Rule.LHS] = true
			for _, orig := range q0 {
				origSym, ok := orig.Expect()
				if ok && origSym == item.Rule.LHS {
					addItem(orig.Advance())
				}
			}
		case !sym.IsTerminal():
			// Predictor rule, plus the held-completions shortcut for
			// a non-terminal that has already completed earlier in
			// this same closure.
			for _, rule := range r.ga.Predictions(sym) {
				addItem(startItem(rule, 0))
			}
			if held[sym] {
				addItem(item.Advance())
			}
		default:
			// Insertion rule: an item expecting a terminal may always
			// advance past it without consuming input.
			addItem(item.Advance())
		}
	}
	return q0, xi
}

// nodeAt returns the node witnessing it over [from,to), or nil if
// nothing has been matched yet at a zero-width span (dot at 0, from ==
// to): there the item denotes no derivation at all, matching how a
// Packed node's Left/Right is left nil by the rest of this module for
// the very same case. A node is always built once from != to, even at
// dot 0, since reaching a real span with no progress can only mean the
// span was consumed entirely by the deletion rule, which still needs
// something to hang its edges off of.
func (r *Recognizer) nodeAt(it Item, from, to uint64) csppf.Node {
	if from == to && it.Dot == 0 {
		return nil
	}
	if it.IsComplete() {
		return r.forest.Symbol(it.Rule.LHS, from, to, nil)
	}
	return r.forest.Intermediate(it.Rule, it.Dot, from, to, nil)
}

// packAt adds the packed alternative (left, right) to the node for the
// already-advanced item it over [from,to), the OALCEP equivalent of
// buildNode: the two differ only in that buildNode derives "from" from
// the item's own Start field, which every OALCEP item leaves at 0 — the
// edge passes below instead pass "from" in explicitly, since it's the
// position being synthesized, not carried by the item.
func (r *Recognizer) packAt(it Item, from, to uint64, left, right csppf.Node) csppf.Node {
	var split uint64
	if right != nil {
		split = right.Span().From()
	}
	packed := &csppf.PackedNode{Rule: it.Rule, Split: split, Left: left, Right: right}
	if it.IsComplete() {
		return r.forest.Symbol(it.Rule.LHS, from, to, packed)
	}
	return r.forest.Intermediate(it.Rule, it.Dot, from, to, packed)
}

// deletionEdges wires the deletion rule: an item at [j,i) survives,
// dot unchanged, to [j,i+1), charging the token at position i to a
// Delete edit. Q0 items only ever start at 0; Xi items start anywhere
// from 1 up to the position they're being extended from.
func (r *Recognizer) deletionEdges(q0, xi []Item, n int, tokens []alcep.Token) {
	for _, it := range q0 {
		for i := 0; i < n; i++ {
			del := r.forest.Token(editop.Delete{Letter: tokens[i].Lexeme()}, uint64(i), uint64(i+1))
			left := r.nodeAt(it, 0, uint64(i))
			r.packAt(it, 0, uint64(i+1), left, del)
		}
	}
	for _, it := range xi {
		for i := 1; i < n; i++ {
			del := r.forest.Token(editop.Delete{Letter: tokens[i].Lexeme()}, uint64(i), uint64(i+1))
			for j := 1; j <= i; j++ {
				left := r.nodeAt(it, uint64(j), uint64(i))
				r.packAt(it, uint64(j), uint64(i+1), left, del)
			}
		}
	}
}

// insertionEdges wires the insertion rule: an item expecting terminal a
// at [j,i) advances past a without consuming input, charging an Insert
// edit for a's lexeme; the span stays [j,i) since nothing was consumed.
func (r *Recognizer) insertionEdges(q0, xi []Item, n int) {
	for _, it := range q0 {
		sym, has := it.Expect()
		if !has || !sym.IsTerminal() {
			continue
		}
		adv := it.Advance()
		for i := 0; i <= n; i++ {
			ins := r.forest.Token(editop.Insert{Word: sym.Name}, uint64(i), uint64(i))
			left := r.nodeAt(it, 0, uint64(i))
			r.packAt(adv, 0, uint64(i), left, ins)
		}
	}
	for _, it := range xi {
		sym, has := it.Expect()
		if !has || !sym.IsTerminal() {
			continue
		}
		adv := it.Advance()
		for i := 0; i <= n; i++ {
			for j := 1; j <= i; j++ {
				ins := r.forest.Token(editop.Insert{Word: sym.Name}, uint64(i), uint64(i))
				left := r.nodeAt(it, uint64(j), uint64(i))
				r.packAt(adv, uint64(j), uint64(i), left, ins)
			}
		}
	}
}

// scanReplaceEdges wires the scanner and replacement rules together,
// exactly as Recognizer.shift does for the streaming variant: an item
// expecting terminal a at [j,i) consumes token i, becoming a Read if
// the token matches a or a Replace otherwise, extending to [j,i+1).
func (r *Recognizer) scanReplaceEdges(q0, xi []Item, n int, tokens []alcep.Token) {
	opAt := func(sym grammar.Symbol, tok alcep.Token) editop.Op {
		if alcep.TokType(sym.TokType) == tok.TokType() {
			return editop.Read{Letter: tok.Lexeme()}
		}
		return editop.Replace{Letter: tok.Lexeme(), By: sym.Name}
	}
	for _, it := range q0 {
		sym, has := it.Expect()
		if !has || !sym.IsTerminal() {
			continue
		}
		adv := it.Advance()
		for i := 0; i < n; i++ {
			node := r.forest.Token(opAt(sym, tokens[i]), uint64(i), uint64(i+1))
			left := r.nodeAt(it, 0, uint64(i))
			r.packAt(adv, 0, uint64(i+1), left, node)
		}
	}
	for _, it := range xi {
		sym, has := it.Expect()
		if !has || !sym.IsTerminal() {
			continue
		}
		adv := it.Advance()
		for i := 0; i < n; i++ {
			node := r.forest.Token(opAt(sym, tokens[i]), uint64(i), uint64(i+1))
			for j := 1; j <= i; j++ {
				left := r.nodeAt(it, uint64(j), uint64(i))
				r.packAt(adv, uint64(j), uint64(i+1), left, node)
			}
		}
	}
}

// completerEdgesQ0 wires the completer purely within Q0: every
// completed item's LHS is matched against every Q0 item that was
// waiting on it (necessarily starting at 0, since that's all Q0 ever
// witnesses), producing the advanced item over [0,i) for every i.
func (r *Recognizer) completerEdgesQ0(q0 []Item, n int) {
	for _, it := range q0 {
		if !it.IsComplete() {
			continue
		}
		lhs := it.Rule.LHS
		for _, orig := range q0 {
			sym, has := orig.Expect()
			if !has || sym != lhs {
				continue
			}
			adv := orig.Advance()
			left := r.nodeAt(orig, 0, 0)
			for i := 0; i <= n; i++ {
				right := r.nodeAt(it, 0, uint64(i))
				r.packAt(adv, 0, uint64(i), left, right)
			}
		}
	}
}

// completerEdgesXi wires the completer wherever Xi is involved: a
// completed Xi item over [j,i) combines with an originator waiting on
// its LHS, either another Xi item over [k,j) (giving the general
// [k,i) case) or a Q0 item over [0,j) (giving the [0,i) case, since a
// Q0 originator only ever starts at 0).
func (r *Recognizer) completerEdgesXi(q0, xi []Item, n int) {
	for _, it := range xi {
		if !it.IsComplete() {
			continue
		}
		lhs := it.Rule.LHS
		for _, orig := range xi {
			sym, has := orig.Expect()
			if !has || sym != lhs {
				continue
			}
			adv := orig.Advance()
			for i := 0; i <= n; i++ {
				for j := 1; j <= i; j++ {
					right := r.nodeAt(it, uint64(j), uint64(i))
					for k := 1; k <= j; k++ {
						left := r.nodeAt(orig, uint64(k), uint64(j))
						r.packAt(adv, uint64(k), uint64(i), left, right)
					}
				}
			}
		}
		for _, orig := range q0 {
			sym, has := orig.Expect()
			if !has || sym != lhs {
				continue
			}
			adv := orig.Advance()
			for i := 0; i <= n; i++ {
				for j := 1; j <= i; j++ {
					right := r.nodeAt(it, uint64(j), uint64(i))
					left := r.nodeAt(orig, 0, uint64(j))
					r.packAt(adv, 0, uint64(i), left, right)
				}
			}
		}
	}
}
