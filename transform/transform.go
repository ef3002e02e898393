/*
Package transform turns a CSPPF into the concrete corrections a client
actually wants to see: it walks the shared, possibly ambiguous, possibly
cyclic DAG a Recognizer built and enumerates every word-ordered
correction.Correction it denotes.

The walk is a structural fold, not a search: a Token leaf denotes a
one-operation correction (bookended with empty insertions so it already
satisfies the alternating invariant correction.New expects); a Packed
node denotes the concatenation of whatever its left and right children
denote; a Symbol or Intermediate node — an "or" node — denotes the union
of whatever each of its Packed alternatives denotes. Concatenation
happens pairwise across every combination of left/right alternatives, so
a single ambiguous node can make the result set grow multiplicatively;
Policy exists to cut that back down.

A node already on the current path is treated as contributing nothing
rather than walked again, which is what keeps a unit-rule cycle (A -> A)
from recursing forever: such a cycle can never be the only way to derive
something, since the recognizer only ever creates it alongside at least
one genuinely terminating alternative.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package transform

import (
	"github.com/corrective-parsing/alcep/correction"
	"github.com/corrective-parsing/alcep/csppf"
	"github.com/corrective-parsing/alcep/editop"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/exp/slices"
)

func tracer() tracing.Trace {
	return tracing.Select("alcep.transform")
}

// Policy controls which corrections Enumerate keeps.
type Policy struct {
	// OnlySimplified drops any correction whose construction passed
	// through a simplifiable boundary (see correction.CanSimplify),
	// pruning during the walk rather than after.
	OnlySimplified bool
	// OnlySmallest keeps only the corrections no other candidate
	// pointwise-dominates (see smallestOnly/Correction.Compare),
	// computed once the full candidate set is known. Corrections that
	// are incomparable to every other candidate survive regardless of
	// their edit count.
	OnlySmallest bool
	// SmallestDynamically asks for the same result as OnlySmallest, but
	// hints that a caller walking a very large forest would rather the
	// walk itself prune dominated branches early. This implementation
	// runs the same pairwise-domination pass (smallestOnly) after
	// generation; see DESIGN.md for why the eager form wasn't worth the
	// extra state threading for a walk this module never actually runs.
	SmallestDynamically bool
	// UseCounted keeps only corrections that respect Bounds.
	UseCounted bool
	Bounds     correction.Bounds
}

// Enumerate walks root and returns every word-ordered correction it
// denotes, filtered according to policy.
func Enumerate(root csppf.Node, policy Policy) []correction.Correction {
	w := &walker{
		policy:   policy,
		visiting: make(map[csppf.Node]bool),
		done:     make(map[csppf.Node][]correction.Correction),
	}
	out := w.visit(root)
	if policy.OnlySmallest || policy.SmallestDynamically {
		out = smallestOnly(out)
	}
	if policy.UseCounted {
		out = withinBounds(out, policy.Bounds)
	}
	// A CSPPF's packed-alternative order depends on which forest call
	// happened to register a family member first, which in turn depends
	// on closure-queue order — deterministic for a fixed input, but not
	// meaningful to a client. Sorting by the resulting word gives a
	// stable, reproducible enumeration order independent of that detail.
	slices.SortFunc(out, func(a, b correction.Correction) bool {
		if wa, wb := a.Apply(), b.Apply(); wa != wb {
			return wa < wb
		}
		return a.String() < b.String()
	})
	tracer().Debugf("transform: %d corrections after policy", len(out))
	return out
}

// ToCounted wraps c as a CountedCorrection against bounds, counting its
// operations directly rather than threading counts through the walk.
func ToCounted(c correction.Correction, bounds correction.Bounds) correction.CountedCorrection {
	ins, del, rep := countEdits(c)
	return correction.CountedCorrection{
		Correction:   c,
		Bounds:       bounds,
		Insertions:   ins,
		Deletions:    del,
		Replacements: rep,
	}
}

type walker struct {
	policy   Policy
	visiting map[csppf.Node]bool
	done     map[csppf.Node][]correction.Correction
}

func (w *walker) visit(node csppf.Node) []correction.Correction {
	if node == nil {
		return nil
	}
	if cached, ok := w.done[node]; ok {
		return cached
	}
	if w.visiting[node] {
		return nil
	}
	w.visiting[node] = true
	var result []correction.Correction
	switch n := node.(type) {
	case *csppf.TokenNode:
		result = []correction.Correction{leafCorrection(n)}
	case *csppf.PackedNode:
		result = w.visitPacked(n)
	case *csppf.SymbolNode:
		for _, p := range n.Packed {
			result = append(result, w.visitPacked(p)...)
		}
	case *csppf.IntermediateNode:
		for _, p := range n.Packed {
			result = append(result, w.visitPacked(p)...)
		}
	}
	delete(w.visiting, node)
	w.done[node] = result
	return result
}

func (w *walker) visitPacked(p *csppf.PackedNode) []correction.Correction {
	if p.Left == nil && p.Right == nil {
		return []correction.Correction{correction.New([]editop.Op{editop.Insert{}}, true)}
	}
	if p.Left == nil {
		return w.visit(p.Right)
	}
	if p.Right == nil {
		return w.visit(p.Left)
	}
	lefts := w.visit(p.Left)
	rights := w.visit(p.Right)
	out := make([]correction.Correction, 0, len(lefts)*len(rights))
	for _, l := range lefts {
		for _, r := range rights {
			c, ok := l.Concatenate(r, w.policy.OnlySimplified)
			if !ok {
				continue
			}
			out = append(out, c)
		}
	}
	return out
}

// leafCorrection wraps a single edit operation as a minimal correction.
// An Insert leaf is already a valid length-1 correction; any other
// operation needs the empty insertions that bookend it in a word-ordered
// correction, which the forest itself doesn't materialize as separate
// nodes.
func leafCorrection(n *csppf.TokenNode) correction.Correction {
	if ins, ok := n.Op.(editop.Insert); ok {
		return correction.New([]editop.Op{ins}, true)
	}
	return correction.New([]editop.Op{editop.Insert{}, n.Op, editop.Insert{}}, true)
}

func countEdits(c correction.Correction) (ins, del, rep int) {
	for _, op := range c.Ops {
		switch o := op.(type) {
		case editop.Insert:
			if o.Word != "" {
				ins++
			}
		case editop.Delete:
			del++
		case editop.Replace:
			rep++
		}
	}
	return
}

func editCount(c correction.Correction) int {
	ins, del, rep := countEdits(c)
	return ins + del + rep
}

// smallestOnly keeps every correction that is not pointwise-dominated by
// some other candidate: a correction survives unless another one in the
// set compares Smaller against it. Since all candidates denote the same
// (G, w) they share the same length (one non-insertion operation per
// input token, I3), so every pair is comparable via Correction.Compare
// and domination is decided purely by that pairwise comparison — two
// incomparable corrections both survive even if one has more edits.
func smallestOnly(cands []correction.Correction) []correction.Correction {
	out := make([]correction.Correction, 0, len(cands))
	for i, c := range cands {
		dominated := false
		for j, d := range cands {
			if i == j {
				continue
			}
			if d.Compare(c) == editop.Smaller {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, c)
		}
	}
	return out
}

func withinBounds(cands []correction.Correction, bounds correction.Bounds) []correction.Correction {
	out := make([]correction.Correction, 0, len(cands))
	for _, c := range cands {
		ins, del, rep := countEdits(c)
		if bounds.MaxInsertions != -1 && ins > bounds.MaxInsertions {
			continue
		}
		if bounds.MaxDeletions != -1 && del > bounds.MaxDeletions {
			continue
		}
		if bounds.MaxReplacements != -1 && rep > bounds.MaxReplacements {
			continue
		}
		if bounds.MaxEdits != -1 && ins+del+rep > bounds.MaxEdits {
			continue
		}
		out = append(out, c)
	}
	return out
}
