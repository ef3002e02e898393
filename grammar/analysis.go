package grammar

import (
	"github.com/emirpasic/gods/sets/linkedhashset"
)

// Analyzer is the boundary contract a Recognizer depends on: rule
// lookup, predictions, FIRST/NULLABLE classification and the terminal/
// non-terminal partition of a grammar's symbols. Grammar/Analyze below
// is the one concrete implementation used by this module's own tests;
// the interface exists so a client can plug in a different grammar
// representation without touching package earley.
type Analyzer interface {
	Grammar() *Grammar
	Rules() []*Rule
	Predictions(sym Symbol) []*Rule
	Nullable(sym Symbol) bool
	First(sym Symbol) []Symbol
	Terminals() []Symbol
	NonTerminals() []Symbol
}

// Analysis is the default Analyzer, computing NULLABLE and FIRST by
// fixed-point iteration over the rule set.
type Analysis struct {
	g            *Grammar
	nullable     map[Symbol]bool
	first        map[Symbol]*linkedhashset.Set
	terminals    []Symbol
	nonterminals []Symbol
}

var _ Analyzer = (*Analysis)(nil)

// Analyze computes an Analysis for g. It is the grammar package's
// equivalent of package lr's lr.Analysis(g).
func Analyze(g *Grammar) *Analysis {
	a := &Analysis{
		g:        g,
		nullable: make(map[Symbol]bool),
		first:    make(map[Symbol]*linkedhashset.Set),
	}
	a.classify()
	a.computeNullable()
	a.computeFirst()
	return a
}

func (a *Analysis) Grammar() *Grammar { return a.g }

func (a *Analysis) Rules() []*Rule { return a.g.Rules }

// Predictions returns every rule whose LHS is sym — the set a predictor
// step adds to the current Earley set when it encounters sym after the
// dot.
func (a *Analysis) Predictions(sym Symbol) []*Rule {
	return a.g.RulesFor(sym)
}

func (a *Analysis) Nullable(sym Symbol) bool {
	return a.nullable[sym]
}

func (a *Analysis) First(sym Symbol) []Symbol {
	set, ok := a.first[sym]
	if !ok {
		return nil
	}
	items := set.Values()
	out := make([]Symbol, len(items))
	for i, it := range items {
		out[i] = it.(Symbol)
	}
	return out
}

func (a *Analysis) Terminals() []Symbol { return a.terminals }

func (a *Analysis) NonTerminals() []Symbol { return a.nonterminals }

func (a *Analysis) classify() {
	seenT := map[Symbol]bool{}
	seenN := map[Symbol]bool{}
	add := func(sym Symbol) {
		if sym.Terminal {
			if !seenT[sym] {
				seenT[sym] = true
				a.terminals = append(a.terminals, sym)
			}
			return
		}
		if !seenN[sym] {
			seenN[sym] = true
			a.nonterminals = append(a.nonterminals, sym)
		}
	}
	for _, r := range a.g.Rules {
		add(r.LHS)
		for _, sym := range r.RHS {
			add(sym)
		}
	}
}

// computeNullable runs the standard worklist fixed point: a
// non-terminal is nullable if some rule for it has an empty RHS, or all
// of its RHS symbols are themselves nullable.
func (a *Analysis) computeNullable() {
	changed := true
	for changed {
		changed = false
		for _, r := range a.g.Rules {
			if a.nullable[r.LHS] {
				continue
			}
			if r.IsEpsilon() {
				a.nullable[r.LHS] = true
				changed = true
				continue
			}
			allNullable := true
			for _, sym := range r.RHS {
				if sym.Terminal || !a.nullable[sym] {
					allNullable = false
					break
				}
			}
			if allNullable {
				a.nullable[r.LHS] = true
				changed = true
			}
		}
	}
}

// computeFirst runs the standard fixed point for FIRST sets, treating
// terminals as their own singleton FIRST set.
func (a *Analysis) computeFirst() {
	firstOf := func(sym Symbol) *linkedhashset.Set {
		set, ok := a.first[sym]
		if !ok {
			set = linkedhashset.New()
			a.first[sym] = set
		}
		return set
	}
	for _, t := range a.terminals {
		firstOf(t).Add(t)
	}
	changed := true
	for changed {
		changed = false
		for _, r := range a.g.Rules {
			lhsFirst := firstOf(r.LHS)
			sizeBefore := lhsFirst.Size()
			for _, sym := range r.RHS {
				for _, v := range firstOf(sym).Values() {
					lhsFirst.Add(v)
				}
				if !a.nullable[sym] {
					break
				}
			}
			if lhsFirst.Size() != sizeBefore {
				changed = true
			}
		}
	}
}
