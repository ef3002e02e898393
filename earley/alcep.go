/*
Package earley implements the two automatic all-corrections Earley
strategies: ALCEP (this file), a single streaming left-to-right pass
that interleaves insertion, scanning, replacement and deletion into the
classical predict/complete Earley loop, and OALCEP (oalcep.go), which
computes the same forest offline from a closure of correction sets.

Both are grounded on the predict/complete/scan naming and structure of
the teacher's package lr/earley, generalized from plain recognition to
all-corrections recognition: every Earley item additionally tracks the
csppf.Node that witnesses its derivation so far, and every set gains an
insertion step (advance a terminal-expecting item without consuming
input) and, when shifting to the next set, a deletion step (carry every
item of the current set forward, charging the skipped token to a
Delete edit) alongside the ordinary scan/replace split.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package earley

import (
	"fmt"

	"github.com/corrective-parsing/alcep"
	"github.com/corrective-parsing/alcep/csppf"
	"github.com/corrective-parsing/alcep/editop"
	"github.com/corrective-parsing/alcep/grammar"
	"github.com/corrective-parsing/alcep/scanner"
	"github.com/emirpasic/gods/sets/linkedhashset"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("alcep.earley")
}

// Option configures a Recognizer.
type Option func(*Recognizer)

// Debug turns on export of intermediate Earley sets through tracer().
func Debug(on bool) Option {
	return func(r *Recognizer) { r.debug = on }
}

// OrderedSets records whether the caller asks for insertion-ordered
// internal work sets (true, the default). The recognizer's Earley sets
// and to-scan sets are always insertion-ordered linked hash sets; this
// setting does not change them, so the order alternatives are appended
// to a forest node's Packed family is the same either way.
func OrderedSets(on bool) Option {
	return func(r *Recognizer) { r.ordered = on }
}

// Recognizer runs the streaming ALCEP algorithm: it consumes a token at
// a time from a scanner.Tokenizer and builds a csppf.Forest holding
// every correction that turns the input into a sentence of the
// grammar.
type Recognizer struct {
	ga      grammar.Analyzer
	ordered bool
	debug   bool

	forest  *csppf.Forest
	sets    []*linkedhashset.Set // earley sets, one per input position
	nodeOf  map[nodeKey]csppf.Node
	toScan  *linkedhashset.Set // items of the current set expecting a terminal; used by package interactive
}

// NewRecognizer returns a Recognizer for the grammar described by ga.
func NewRecognizer(ga grammar.Analyzer, opts ...Option) *Recognizer {
	r := &Recognizer{ga: ga, ordered: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// nodeKey identifies the csppf.Node witnessing an item's derivation so
// far, as of a given Earley-set position. An Item alone is not enough:
// the same item (same rule, dot and start) can reappear, unchanged, in
// several successive sets by way of the deletion rule, each time with a
// different witness, since each reappearance covers a different span
// of input.
type nodeKey struct {
	it  Item
	end uint64
}

// Parse runs the recognizer over tok, looking for every derivation of
// start. It returns the forest's root symbol node (start spanning the
// whole input) or an error if start has no predictions at all (an
// empty, hence unusable, grammar).
func (r *Recognizer) Parse(tok scanner.Tokenizer, start grammar.Symbol) (*csppf.SymbolNode, error) {
	predictions := r.ga.Predictions(start)
	if len(predictions) == 0 {
		return nil, fmt.Errorf("earley: start symbol %s has no productions", start)
	}
	r.forest = csppf.NewForest()
	r.nodeOf = make(map[nodeKey]csppf.Node)
	r.sets = []*linkedhashset.Set{linkedhashset.New()}

	toScan := linkedhashset.New()
	for _, rule := range predictions {
		r.sets[0].Add(startItem(rule, 0))
	}

	var i uint64
	token := tok.NextToken()
	for {
		r.computeEarleySet(i, toScan)
		if token.TokType() == alcep.TokType(scanner.EOF) {
			break
		}
		next := linkedhashset.New()
		r.sets = append(r.sets, next)
		r.shift(i, toScan, token)
		toScan = linkedhashset.New()
		i++
		token = tok.NextToken()
	}

	var solutions []*csppf.PackedNode
	end := i
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
		return nil, fmt.Errorf("earley: no corrections found for %s over %d input positions", start, end)
	}
	root := r.forest.Symbol(start, 0, end, nil)
	for _, p := range solutions {
		root.Packed = appendIfNewPacked(root.Packed, p)
	}
	r.forest.SetRoot(root)
	if r.debug {
		tracer().Debugf("ALCEP done: %d earley sets, %d packed alternatives at root", len(r.sets), len(root.Packed))
	}
	return root, nil
}

func appendIfNewPacked(family []*csppf.PackedNode, p *csppf.PackedNode) []*csppf.PackedNode {
	for _, existing := range family {
		if existing == p {
			return family
		}
	}
	return append(family, p)
}

// computeEarleySet runs the closure of Earley set i to a fixed point:
// predictor, completer and the insertion rule, following each other
// until no item adds anything new. Every item that ends up expecting a
// terminal is added to toScan, for the shift step that follows.
func (r *Recognizer) computeEarleySet(i uint64, toScan *linkedhashset.Set) {
	current := r.sets[i]
	held := make(map[grammar.Symbol]csppf.Node)

	queue := make([]Item, 0, current.Size())
	for _, v := range current.Values() {
		it := v.(Item)
		queue = append(queue, it)
		if sym, has := it.Expect(); has && sym.IsTerminal() {
			toScan.Add(it)
		}
	}

	addItem := func(it Item) {
		if !current.Contains(it) {
			current.Add(it)
			queue = append(queue, it)
		}
		if sym, has := it.Expect(); has && sym.IsTerminal() {
			toScan.Add(it)
		}
	}

	for qi := 0; qi < len(queue); qi++ {
		item := queue[qi]
		if r.debug {
			tracer().Debugf("set %d: %s", i, item.Rule)
		}
		sym, has := item.Expect()
		switch {
		case !has:
			r.complete(item, i, held, addItem)
		case !sym.IsTerminal():
			r.predict(item, i, held, addItem)
		default:
			r.insert(item, i, addItem)
		}
	}
}

// complete implements the completer. item has just been recognized in
// full (its dot is at the end of its RHS); every item in the set where
// item started that was waiting on item's LHS gets advanced.
func (r *Recognizer) complete(item Item, i uint64, held map[grammar.Symbol]csppf.Node, addItem func(Item)) {
	a := item.Rule.LHS
	node, ok := r.nodeOf[nodeKey{item, i}]
	if !ok {
		// Epsilon production: recognized with no children at all.
		node = r.forest.Symbol(a, i, i, &csppf.PackedNode{Rule: item.Rule})
		r.nodeOf[nodeKey{item, i}] = node
	}
	if item.Start == i {
		held[a] = node
	}
	for _, v := range r.sets[item.Start].Values() {
		orig := v.(Item)
		sym, has := orig.Expect()
		if !has || sym != a {
			continue
		}
		r.advance(orig, i, i, node, addItem)
	}
}

// predict implements the predictor: item expects a non-terminal B, so
// every production of B is started in the current set. Predictions for
// a B already completed earlier in this very set are combined with
// item immediately, via the held-completions shortcut, instead of
// waiting for the next pass around the queue.
func (r *Recognizer) predict(item Item, i uint64, held map[grammar.Symbol]csppf.Node, addItem func(Item)) {
	b, _ := item.Expect()
	for _, rule := range r.ga.Predictions(b) {
		addItem(startItem(rule, i))
	}
	if node, ok := held[b]; ok {
		r.advance(item, i, i, node, addItem)
	}
}

// insert implements the insertion rule: an item expecting terminal a
// may advance past it without consuming any input, charging an Insert
// edit for a's lexeme. This is what lets a correction invent tokens the
// input never had.
func (r *Recognizer) insert(item Item, i uint64, addItem func(Item)) {
	a, _ := item.Expect()
	tok := r.forest.Token(editop.Insert{Word: a.Name}, i, i)
	r.advance(item, i, i, tok, addItem)
}

// shift moves from Earley set i to i+1: every item of toScan consumes
// token, either via the scanner rule (token matches the expected
// terminal) or the replacement rule (it doesn't); independently, every
// item of the current set — complete or not — survives into i+1 by way
// of the deletion rule, charging the skipped token to a Delete edit.
func (r *Recognizer) shift(i uint64, toScan *linkedhashset.Set, token alcep.Token) {
	for _, v := range toScan.Values() {
		item := v.(Item)
		a, _ := item.Expect()
		var op editop.Op
		if alcep.TokType(a.TokType) == token.TokType() {
			op = editop.Read{Letter: token.Lexeme()}
		} else {
			op = editop.Replace{Letter: token.Lexeme(), By: a.Name}
		}
		tok := r.forest.Token(op, i, i+1)
		r.advance(item, i, i+1, tok, r.nextAdd(i+1))
	}
	deleted := r.forest.Token(editop.Delete{Letter: token.Lexeme()}, i, i+1)
	for _, v := range r.sets[i].Values() {
		item := v.(Item)
		left := r.nodeOf[nodeKey{item, i}]
		node := r.buildNode(item, i+1, left, deleted)
		r.nodeOf[nodeKey{item, i + 1}] = node
		r.sets[i+1].Add(item)
	}
}

func (r *Recognizer) nextAdd(end uint64) func(Item) {
	return func(it Item) {
		r.sets[end].Add(it)
	}
}

// advance moves item one position past its dot, recording the node
// that now witnesses its (longer) derivation, and hands the new item to
// add.
func (r *Recognizer) advance(item Item, curEnd, newEnd uint64, right csppf.Node, add func(Item)) {
	left := r.nodeOf[nodeKey{item, curEnd}]
	newItem := item.Advance()
	node := r.buildNode(newItem, newEnd, left, right)
	r.nodeOf[nodeKey{newItem, newEnd}] = node
	add(newItem)
}

// buildNode wraps left/right into the packed node for newItem (whose
// dot already reflects the advance), and folds that packed node into
// either a Symbol node (newItem now complete) or an Intermediate node
// (more RHS symbols remain), merging with any existing alternative the
// forest already holds for that same span.
func (r *Recognizer) buildNode(newItem Item, end uint64, left, right csppf.Node) csppf.Node {
	var split uint64
	if right != nil {
		split = right.Span().From()
	}
	packed := &csppf.PackedNode{Rule: newItem.Rule, Split: split, Left: left, Right: right}
	if newItem.IsComplete() {
		return r.forest.Symbol(newItem.Rule.LHS, newItem.Start, end, packed)
	}
	return r.forest.Intermediate(newItem.Rule, newItem.Dot, newItem.Start, end, packed)
}

// Forest returns the CSPPF built by the most recent call to Parse.
func (r *Recognizer) Forest() *csppf.Forest { return r.forest }
