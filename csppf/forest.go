package csppf

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/corrective-parsing/alcep/editop"
	"github.com/corrective-parsing/alcep/grammar"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("alcep.csppf")
}

// Forest owns the node cache of a CSPPF and the root symbol node, once
// known. Structural sharing is implemented exactly like the teacher's
// SPPF forest: nodes are looked up by a structural key before a new one
// is allocated, so that two derivations covering the same span with the
// same rule end up pointing at the same node.
type Forest struct {
	symbols       map[string]*SymbolNode
	intermediates map[string]*IntermediateNode
	tokens        map[string]*TokenNode
	root          *SymbolNode
}

// NewForest returns an empty forest.
func NewForest() *Forest {
	return &Forest{
		symbols:       make(map[string]*SymbolNode),
		intermediates: make(map[string]*IntermediateNode),
		tokens:        make(map[string]*TokenNode),
	}
}

// Root returns the forest's root symbol node, if one has been recorded
// via SetRoot.
func (f *Forest) Root() *SymbolNode { return f.root }

// SetRoot records sn as the forest's root node.
func (f *Forest) SetRoot(sn *SymbolNode) { f.root = sn }

func symbolKey(sym grammar.Symbol, from, to uint64) string {
	return fmt.Sprintf("S|%s|%d|%d|%d", sym.Name, sym.Terminal, from, to)
}

// Symbol returns the (possibly newly created) symbol node for sym over
// [from,to), and records packed as one of its alternatives if it isn't
// already present (structural dedup by rule+split+children identity,
// matching the "OR-node" sharing rule of the teacher's forest).
func (f *Forest) Symbol(sym grammar.Symbol, from, to uint64, packed *PackedNode) *SymbolNode {
	key := symbolKey(sym, from, to)
	sn, ok := f.symbols[key]
	if !ok {
		sn = &SymbolNode{Sym: sym, Extent: spanOf(from, to)}
		f.symbols[key] = sn
	}
	if packed != nil {
		sn.Packed = addPackedIfNew(sn.Packed, packed)
	}
	return sn
}

func intermediateKey(rule *grammar.Rule, upTo int, from, to uint64) string {
	return fmt.Sprintf("I|%d|%d|%d|%d", rule.Index, upTo, from, to)
}

// Intermediate returns the (possibly newly created) intermediate node
// for rule's first upTo RHS symbols over [from,to).
func (f *Forest) Intermediate(rule *grammar.Rule, upTo int, from, to uint64, packed *PackedNode) *IntermediateNode {
	key := intermediateKey(rule, upTo, from, to)
	in, ok := f.intermediates[key]
	if !ok {
		in = &IntermediateNode{Rule: rule, UpTo: upTo, Extent: spanOf(from, to)}
		f.intermediates[key] = in
	}
	if packed != nil {
		in.Packed = addPackedIfNew(in.Packed, packed)
	}
	return in
}

// Token returns the (possibly newly created) token leaf wrapping op at
// [from,to).
func (f *Forest) Token(op editop.Op, from, to uint64) *TokenNode {
	key, err := structhash.Hash(struct {
		Op       string
		From, To uint64
	}{op.String(), from, to}, 1)
	if err != nil {
		panic(err)
	}
	tn, ok := f.tokens[key]
	if !ok {
		tn = &TokenNode{Op: op, Extent: spanOf(from, to)}
		f.tokens[key] = tn
	}
	return tn
}

func spanOf(from, to uint64) (s [2]uint64) {
	s[0], s[1] = from, to
	return s
}

// addPackedIfNew appends p to family unless a structurally identical
// packed node (same rule, split and children identity) is already
// present.
func addPackedIfNew(family []*PackedNode, p *PackedNode) []*PackedNode {
	for _, existing := range family {
		if packedEqual(existing, p) {
			return family
		}
	}
	tracer().Debugf("new packed alternative: %v", p)
	return append(family, p)
}

func packedEqual(a, b *PackedNode) bool {
	if a.Rule != b.Rule || a.Split != b.Split {
		return false
	}
	return a.Left == b.Left && a.Right == b.Right
}
