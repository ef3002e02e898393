/*
Package debugviz exports a CSPPF as GraphViz DOT, for inspecting a
Recognizer's output by eye. It is not exercised by any parsing
operation itself; it exists purely as a debugging aid, the same role
lr/sppf's ToGraphViz plays for the teacher's native SPPF.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package debugviz

import (
	"fmt"
	"io"
	"sort"

	"github.com/corrective-parsing/alcep/csppf"
	"github.com/pterm/pterm"
)

// ToGraphViz writes root and everything reachable from it to w in
// GraphViz DOT format: one box per Symbol/Intermediate node, one oval
// per Token node, rounded nodes for Packed alternatives, dashed "or" edges from a node
// to each of its packed alternatives, and solid "and" edges from a
// packed alternative to its (up to two) children, labelled L/R.
//
// If root is nil, ToGraphViz writes an empty graph and emits a pterm
// warning rather than failing outright — mirroring the fallback the
// original tooling takes when asked to render a forest that was never
// actually produced (e.g. a failed recognition).
func ToGraphViz(root *csppf.SymbolNode, w io.Writer) {
	if root == nil {
		pterm.Warning.Println("debugviz: nothing to render, forest root is nil")
		io.WriteString(w, "digraph G {\n}\n")
		return
	}
	v := &visitor{
		w:    w,
		seen: make(map[csppf.Node]bool),
	}
	io.WriteString(w, `digraph G {
{ graph [fontname="Helvetica"];
  node [fontname="Helvetica",shape=box,fontsize=10];
  edge [fontname="Helvetica",fontsize=9];
`)
	v.visit(root)
	io.WriteString(w, "}\n")
	v.writeEdges()
	io.WriteString(w, "{ rank=max;\n")
	for _, leaf := range v.leaves {
		fmt.Fprintf(w, "%q;", leaf)
	}
	io.WriteString(w, "\n}\n}\n")
}

type edge struct {
	from, to, label string
	dashed          bool
}

// visitor walks a CSPPF once, collecting node declarations (written as
// it goes, so their relative order in the file matches traversal
// order) and edges (buffered, so they can be emitted after every node
// has already been declared — GraphViz doesn't require this, but it
// keeps the file readable top-to-bottom the way the teacher's does).
type visitor struct {
	w      io.Writer
	seen   map[csppf.Node]bool
	edges  []edge
	leaves []string
}

func (v *visitor) visit(n csppf.Node) {
	if n == nil || v.seen[n] {
		return
	}
	v.seen[n] = true
	switch node := n.(type) {
	case *csppf.SymbolNode:
		if node.Sym.IsTerminal() {
			fmt.Fprintf(v.w, "%q [fillcolor=grey90,style=filled]\n", node.String())
			v.leaves = append(v.leaves, node.String())
		} else {
			fmt.Fprintf(v.w, "%q []\n", node.String())
		}
		for _, p := range node.Packed {
			v.edges = append(v.edges, edge{node.String(), p.String(), "", true})
			v.visit(p)
		}
	case *csppf.IntermediateNode:
		fmt.Fprintf(v.w, "%q [color=\"#404040\"]\n", node.String())
		for _, p := range node.Packed {
			v.edges = append(v.edges, edge{node.String(), p.String(), "", true})
			v.visit(p)
		}
	case *csppf.PackedNode:
		fmt.Fprintf(v.w, "%q [style=rounded,color=\"#404040\"]\n", node.String())
		if node.Left != nil {
			v.edges = append(v.edges, edge{node.String(), node.Left.String(), "L", false})
			v.visit(node.Left)
		}
		if node.Right != nil {
			v.edges = append(v.edges, edge{node.String(), node.Right.String(), "R", false})
			v.visit(node.Right)
		}
	case *csppf.TokenNode:
		fmt.Fprintf(v.w, "%q [fillcolor=lightyellow,style=filled,shape=oval]\n", node.String())
		v.leaves = append(v.leaves, node.String())
	}
}

func (v *visitor) writeEdges() {
	sort.SliceStable(v.edges, func(i, j int) bool { return v.edges[i].from < v.edges[j].from })
	for _, e := range v.edges {
		style := ""
		if e.dashed {
			style = " [style=dashed]"
		} else if e.label != "" {
			style = fmt.Sprintf(" [label=%s]", e.label)
		}
		fmt.Fprintf(v.w, "%q -> %q%s\n", e.from, e.to, style)
	}
}
