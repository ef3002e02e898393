/*
Package csppf implements the Correction Shared Packed Parse Forest: the
binarised, shared DAG a Recognizer builds while looking for corrections,
and that package transform later walks to enumerate them.

A CSPPF has four node kinds. Symbol nodes and Intermediate nodes are
"or" nodes: each carries one Packed node per distinct way the span was
derived (their ambiguity, if any). Packed nodes are "and" nodes,
pairing a rule and a split point with the at-most-two children that
realize it — the left child is nil when nothing of the rule had been
matched yet, and otherwise the node witnessing the item before the
step (usually an Intermediate node, or a Symbol node when the deletion
rule extends an already complete item); the right child is a Symbol or
Token node, or nil for an epsilon production. Token nodes are leaves,
each wrapping one editop.Op.

This mirrors the teacher's SymbolNode/rhsNode/or-edge/and-edge split
(package lr/sppf), collapsed into four struct kinds because the
correction forest, unlike a general SPPF, is always binarised (see
DESIGN.md).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package csppf

import (
	"fmt"

	"github.com/corrective-parsing/alcep"
	"github.com/corrective-parsing/alcep/editop"
	"github.com/corrective-parsing/alcep/grammar"
)

// Kind distinguishes the four node kinds of a CSPPF.
type Kind int

const (
	SymbolKind Kind = iota
	IntermediateKind
	PackedKind
	TokenKind
)

func (k Kind) String() string {
	switch k {
	case SymbolKind:
		return "Symbol"
	case IntermediateKind:
		return "Intermediate"
	case PackedKind:
		return "Packed"
	case TokenKind:
		return "Token"
	default:
		return "?"
	}
}

// Node is any node of a CSPPF.
type Node interface {
	Kind() Kind
	Span() alcep.Span
	fmt.Stringer
}

// SymbolNode represents recognition of grammar symbol Sym over Extent,
// by way of one or more packed alternatives (ambiguity if len > 1).
type SymbolNode struct {
	Sym    grammar.Symbol
	Extent alcep.Span
	Packed []*PackedNode
}

func (n *SymbolNode) Kind() Kind       { return SymbolKind }
func (n *SymbolNode) Span() alcep.Span { return n.Extent }
func (n *SymbolNode) String() string   { return fmt.Sprintf("[%s %s]", n.Sym, n.Extent) }

// IntermediateNode represents a partial match of Rule's right-hand side
// up to (but not including) position UpTo, over Extent. The recognizers
// create one for every incomplete item they witness over a span,
// including items whose dot is still at 0 that the deletion rule
// carried forward; they let a Packed node stay strictly binary.
type IntermediateNode struct {
	Rule   *grammar.Rule
	UpTo   int
	Extent alcep.Span
	Packed []*PackedNode
}

func (n *IntermediateNode) Kind() Kind       { return IntermediateKind }
func (n *IntermediateNode) Span() alcep.Span { return n.Extent }
func (n *IntermediateNode) String() string {
	return fmt.Sprintf("[%s•%d %s]", n.Rule, n.UpTo, n.Extent)
}

// PackedNode is the "and" node binding a rule and a split point to its
// at-most-two children.
type PackedNode struct {
	Rule  *grammar.Rule
	Split uint64
	Left  Node // nil, *IntermediateNode, *SymbolNode, or *TokenNode
	Right Node // *SymbolNode or *TokenNode, nil for an epsilon production
}

func (n *PackedNode) Kind() Kind { return PackedKind }
func (n *PackedNode) Span() alcep.Span {
	switch {
	case n.Left != nil:
		return n.Left.Span().Extend(n.Right.Span())
	case n.Right != nil:
		return n.Right.Span()
	default:
		return alcep.Span{}
	}
}
func (n *PackedNode) String() string {
	return fmt.Sprintf("(%s @%d)", n.Rule, n.Split)
}

// TokenNode is a leaf wrapping one edit operation.
type TokenNode struct {
	Op     editop.Op
	Extent alcep.Span
}

func (n *TokenNode) Kind() Kind       { return TokenKind }
func (n *TokenNode) Span() alcep.Span { return n.Extent }
func (n *TokenNode) String() string   { return n.Op.String() }
