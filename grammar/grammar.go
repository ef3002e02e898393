/*
Package grammar provides the grammar-analysis boundary a Recognizer
depends on: rule iteration, FIRST/NULLABLE sets and terminal/
non-terminal classification, built the way package lr's grammar builder
does it, but closed over the needs of all-corrections parsing rather
than LR table construction.

Priority-annotated grammars — where a rule picks between several
right-hand sides by preference rather than offering all of them as
legitimate derivations — are rejected outright: ErrPrioritizedGrammar,
because giving one derivation priority over another would silently
drop corrections the client asked to see all of.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package grammar

import (
	"errors"
	"fmt"

	"github.com/corrective-parsing/alcep"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("alcep.grammar")
}

// ErrPrioritizedGrammar is returned by Builder.Grammar when a rule was
// added with a priority different from the default.
var ErrPrioritizedGrammar = errors.New("grammar: prioritized grammars are not supported by all-corrections parsing")

// Symbol is a grammar symbol: either a terminal (carrying a TokType) or
// a non-terminal (carrying only a Name).
type Symbol struct {
	Name     string
	Terminal bool
	TokType  alcep.TokType
}

func (s Symbol) String() string {
	if s.Terminal {
		return fmt.Sprintf("%s<%d>", s.Name, s.TokType)
	}
	return s.Name
}

// IsTerminal reports whether s is a terminal symbol.
func (s Symbol) IsTerminal() bool { return s.Terminal }

// Rule is a single production LHS -> RHS. Index is this rule's position
// in the owning Grammar's rule list, used as a stable identity for
// packed-node construction.
type Rule struct {
	Index int
	LHS   Symbol
	RHS   []Symbol
}

func (r Rule) String() string {
	s := r.LHS.String() + " ->"
	if len(r.RHS) == 0 {
		return s + " ε"
	}
	for _, sym := range r.RHS {
		s += " " + sym.String()
	}
	return s
}

// IsEpsilon reports whether r has an empty right-hand side.
func (r Rule) IsEpsilon() bool { return len(r.RHS) == 0 }

// Grammar holds a complete, finished set of rules over a start symbol.
// Rules are pointers: a Rule's identity (not just its content) is used
// throughout package csppf to recognize when two derivations used the
// very same production.
type Grammar struct {
	Name  string
	Start Symbol
	Rules []*Rule
}

// RulesFor returns every rule whose LHS equals sym, in declaration order.
func (g *Grammar) RulesFor(sym Symbol) []*Rule {
	var rs []*Rule
	for _, r := range g.Rules {
		if r.LHS == sym {
			rs = append(rs, r)
		}
	}
	return rs
}

// Builder accumulates rules for a Grammar, mirroring package lr's
// fluent LHS().N().T().End() builder.
type Builder struct {
	name        string
	rules       []*Rule
	prioritized bool
	cur         *Rule
}

// NewBuilder starts a new grammar builder named name.
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// LHS begins a new rule with left-hand side lhs.
func (b *Builder) LHS(lhs string) *Builder {
	b.cur = &Rule{LHS: Symbol{Name: lhs}}
	return b
}

// N appends a non-terminal to the rule under construction.
func (b *Builder) N(name string) *Builder {
	b.cur.RHS = append(b.cur.RHS, Symbol{Name: name})
	return b
}

// T appends a terminal to the rule under construction.
func (b *Builder) T(name string, tokType alcep.TokType) *Builder {
	b.cur.RHS = append(b.cur.RHS, Symbol{Name: name, Terminal: true, TokType: tokType})
	return b
}

// Priority marks the rule under construction with a non-default
// priority. A grammar built with any prioritized rule fails at
// Grammar() with ErrPrioritizedGrammar: priorities are incompatible
// with reporting all corrections.
func (b *Builder) Priority(int) *Builder {
	b.prioritized = true
	return b
}

// Epsilon finishes the current rule as an epsilon production.
func (b *Builder) Epsilon() *Builder {
	return b.End()
}

// End finishes the rule under construction and appends it to the grammar.
func (b *Builder) End() *Builder {
	b.cur.Index = len(b.rules)
	b.rules = append(b.rules, b.cur)
	b.cur = nil
	return b
}

// Grammar finalizes the builder into a Grammar, using start as the
// grammar's start symbol. It fails if any rule was marked prioritized.
func (b *Builder) Grammar(start string) (*Grammar, error) {
	if b.prioritized {
		return nil, ErrPrioritizedGrammar
	}
	return &Grammar{Name: b.name, Start: Symbol{Name: start}, Rules: b.rules}, nil
}
