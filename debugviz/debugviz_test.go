package debugviz

import (
	"strings"
	"testing"

	"github.com/corrective-parsing/alcep"
	"github.com/corrective-parsing/alcep/csppf"
	"github.com/corrective-parsing/alcep/editop"
	"github.com/corrective-parsing/alcep/grammar"
)

func tok(op editop.Op, from, to uint64) *csppf.TokenNode {
	return &csppf.TokenNode{Op: op, Extent: alcep.Span{from, to}}
}

func TestToGraphVizNilRootWritesEmptyGraph(t *testing.T) {
	var b strings.Builder
	ToGraphViz(nil, &b)
	if got := b.String(); got != "digraph G {\n}\n" {
		t.Fatalf("expected an empty digraph, got %q", got)
	}
}

func TestToGraphVizDeclaresNodesAndEdges(t *testing.T) {
	a := tok(editop.Read{Letter: "a"}, 0, 1)
	b := tok(editop.Read{Letter: "b"}, 1, 2)
	packed := &csppf.PackedNode{Left: a, Right: b}
	root := &csppf.SymbolNode{Sym: grammar.Symbol{Name: "S"}, Extent: alcep.Span{0, 2}, Packed: []*csppf.PackedNode{packed}}

	var out strings.Builder
	ToGraphViz(root, &out)
	dot := out.String()

	for _, want := range []string{"digraph G {", root.String(), packed.String(), a.String(), b.String(), "style=dashed", "[label=L]", "[label=R]"} {
		if !strings.Contains(dot, want) {
			t.Errorf("expected DOT output to contain %q, got:\n%s", want, dot)
		}
	}
}

func TestToGraphVizMarksTerminalSymbolsFilled(t *testing.T) {
	terminal := tok(editop.Read{Letter: "a"}, 0, 1)
	packed := &csppf.PackedNode{Right: terminal}
	sym := &csppf.SymbolNode{Sym: grammar.Symbol{Name: "a", Terminal: true}, Extent: alcep.Span{0, 1}, Packed: []*csppf.PackedNode{packed}}

	var out strings.Builder
	ToGraphViz(sym, &out)
	if !strings.Contains(out.String(), "fillcolor=grey90") {
		t.Errorf("expected a terminal symbol node to be filled grey, got:\n%s", out.String())
	}
}

func TestToGraphVizAvoidsInfiniteLoopOnSharedNode(t *testing.T) {
	shared := tok(editop.Read{Letter: "a"}, 0, 1)
	p1 := &csppf.PackedNode{Right: shared}
	p2 := &csppf.PackedNode{Right: shared}
	root := &csppf.SymbolNode{Sym: grammar.Symbol{Name: "S"}, Extent: alcep.Span{0, 1}, Packed: []*csppf.PackedNode{p1, p2}}

	var out strings.Builder
	ToGraphViz(root, &out)
	if n := strings.Count(out.String(), "\""+shared.String()+"\" [fillcolor"); n != 1 {
		t.Errorf("expected the shared token node to be declared exactly once, got %d declarations", n)
	}
}
