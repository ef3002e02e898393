package csppf

// Equal performs a structural-equality check between two CSPPFs,
// starting at their respective roots. It is the mechanical form of
// invariant I4 ("the CSPPF built by ALCEP and by OALCEP for the same
// grammar and input are structurally identical"): rather than comparing
// pointers (the two forests are built by independent algorithms and
// never share nodes), it walks both DAGs recursively, depth-first, in
// lockstep and compares node contents and family sizes, matching the
// members of two families without regard to their order.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() || a.Span() != b.Span() {
		return false
	}
	switch x := a.(type) {
	case *TokenNode:
		y := b.(*TokenNode)
		return x.Op.String() == y.Op.String()
	case *SymbolNode:
		y := b.(*SymbolNode)
		if x.Sym != y.Sym {
			return false
		}
		return equalFamilies(x.Packed, y.Packed)
	case *IntermediateNode:
		y := b.(*IntermediateNode)
		if x.Rule != y.Rule || x.UpTo != y.UpTo {
			return false
		}
		return equalFamilies(x.Packed, y.Packed)
	case *PackedNode:
		y := b.(*PackedNode)
		if x.Rule != y.Rule || x.Split != y.Split {
			return false
		}
		return Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	default:
		return false
	}
}

// equalFamilies compares two packed-node families without regard to
// order, since a forest's insertion order is an artifact of which
// recognizer produced it, not part of the forest's meaning.
func equalFamilies(a, b []*PackedNode) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, pa := range a {
		found := false
		for i, pb := range b {
			if used[i] {
				continue
			}
			if Equal(pa, pb) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
