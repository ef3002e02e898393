/*
Package correction implements word-ordered corrections: the concrete,
orderable sequences of edit operations a transform walk extracts from a
correction shared packed parse forest.

A word-ordered correction is an alternating sequence

	Ins₀ E₁ Ins₁ E₂ Ins₂ … Eₙ Insₙ

of insertions at even positions and read/delete/replace operations at
odd positions; Apply replays it against the (implicit) input word,
Concatenate joins two corrections that share a boundary letter by fusing
their adjoining insertions, and Compare lifts editop.Compare pointwise
to decide domination between same-length corrections.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package correction

import (
	"fmt"
	"strings"

	"github.com/corrective-parsing/alcep/editop"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("alcep.correction")
}

// Correction is a word-ordered sequence of edit operations.
type Correction struct {
	Ops []editop.Op
}

// New wraps ops as a Correction. If validate is true, New panics if ops
// is not a valid alternating insert/non-insert sequence — this is meant
// to catch transform bugs early, not to validate untrusted input.
func New(ops []editop.Op, validate bool) Correction {
	if validate {
		if len(ops)%2 != 1 {
			panic("correction: operation count is not odd")
		}
		for i, op := range ops {
			_, isIns := op.(editop.Insert)
			if i%2 == 0 && !isIns {
				panic(fmt.Sprintf("correction: expected insertion at position %d, got %v", i, op))
			}
			if i%2 == 1 && isIns {
				panic(fmt.Sprintf("correction: expected non-insertion at position %d, got %v", i, op))
			}
		}
	}
	return Correction{Ops: ops}
}

// Len returns the number of edit operations in c.
func (c Correction) Len() int { return len(c.Ops) }

// IsZero reports whether c carries no operations at all.
func (c Correction) IsZero() bool { return len(c.Ops) == 0 }

// Apply replays c's operations and returns the resulting word.
func (c Correction) Apply() string {
	var b strings.Builder
	for _, op := range c.Ops {
		switch o := op.(type) {
		case editop.Read:
			b.WriteString(o.Letter)
		case editop.Delete:
			// contributes nothing
		case editop.Insert:
			b.WriteString(o.Word)
		case editop.Replace:
			b.WriteString(o.By)
		default:
			tracer().Errorf("correction: unknown edit operation %v", op)
		}
	}
	return b.String()
}

func (c Correction) String() string {
	parts := make([]string, len(c.Ops))
	for i, op := range c.Ops {
		parts[i] = op.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Concatenate joins c with other, fusing the insertion that ends c with
// the insertion that starts other. If either correction is empty (zero
// operations), the other is returned unchanged. When simplify is true
// and the fused result would be simplifiable (see CanSimplify),
// Concatenate returns ok == false instead of constructing it — callers
// use this to prune non-simplified corrections as early as possible
// during a forest walk.
func (c Correction) Concatenate(other Correction, simplify bool) (result Correction, ok bool) {
	if len(c.Ops) == 0 {
		return other, true
	}
	if len(other.Ops) == 0 {
		return c, true
	}
	if simplify && c.CanSimplify(other) {
		return Correction{}, false
	}
	leftIns := c.Ops[len(c.Ops)-1].(editop.Insert)
	rightIns := other.Ops[0].(editop.Insert)
	fused := editop.Insert{Word: leftIns.Word + rightIns.Word}
	ops := make([]editop.Op, 0, len(c.Ops)+len(other.Ops)-1)
	ops = append(ops, c.Ops[:len(c.Ops)-1]...)
	ops = append(ops, fused)
	ops = append(ops, other.Ops[1:]...)
	return Correction{Ops: ops}, true
}

// CanSimplify reports whether concatenating c and other would yield a
// correction that admits a shorter equivalent — one of the boundary
// cases of the simplification rule. Two non-empty adjoining insertions
// never simplify. If exactly one is non-empty, the fusion simplifies
// when the operation on the far side of the empty insertion is a
// Delete, or a Replace whose removed letter ends (left insertion
// non-empty) or whose substituted letter starts (right insertion
// non-empty) the non-empty word. If both are empty, it simplifies only
// when a Replace(x→y) on the left meets a Delete(y) on the right.
//
// Both corrections are assumed already in simplified form themselves;
// CanSimplify only decides about the new boundary their concatenation
// creates.
func (c Correction) CanSimplify(other Correction) bool {
	selfLast := c.Ops[len(c.Ops)-1].(editop.Insert)
	otherFirst := other.Ops[0].(editop.Insert)

	switch {
	case selfLast.Word != "" && otherFirst.Word != "":
		return false

	case selfLast.Word != "" && otherFirst.Word == "":
		if len(other.Ops) == 1 {
			return false
		}
		switch op := other.Ops[1].(type) {
		case editop.Delete:
			return true
		case editop.Replace:
			// The left insertion must end with the letter the
			// following Replace reads away; that's the letter the
			// Replace removes from the input, i.e. op.Letter.
			return strings.HasSuffix(selfLast.Word, op.Letter)
		default:
			return false
		}

	case selfLast.Word == "" && otherFirst.Word != "":
		if len(c.Ops) == 1 {
			return false
		}
		switch op := c.Ops[len(c.Ops)-2].(type) {
		case editop.Delete:
			return true
		case editop.Replace:
			// The right insertion must start with the letter the
			// preceding Replace substituted in, i.e. op.By.
			return strings.HasPrefix(otherFirst.Word, op.By)
		default:
			return false
		}

	default: // both empty
		if len(other.Ops) == 1 || len(c.Ops) == 1 {
			return false
		}
		left, leftIsReplace := c.Ops[len(c.Ops)-2].(editop.Replace)
		if !leftIsReplace {
			return false
		}
		right, rightIsDelete := other.Ops[1].(editop.Delete)
		if !rightIsDelete {
			return false
		}
		return left.By == right.Letter
	}
}

// Compare lifts editop.Compare pointwise over two corrections of equal
// length: c is Smaller than other if every operation of c is smaller-or-
// equal to the corresponding operation of other and at least one is
// strictly smaller; corrections that disagree in direction, or whose
// operations are ever editop.Incomparable, compare as Incomparable.
//
// Compare panics if c and other have different lengths, mirroring the
// original implementation's assertion — comparing corrections of
// different lengths is always a caller bug, never a data condition.
func (c Correction) Compare(other Correction) editop.Verdict {
	if len(c.Ops) != len(other.Ops) {
		panic("correction: only corrections of equal length can be compared")
	}
	current := editop.Equal
	for i, op := range c.Ops {
		switch v, _ := editop.Compare(op, other.Ops[i]); v {
		case editop.Incomparable:
			return editop.Incomparable
		case editop.Smaller:
			switch current {
			case editop.Equal:
				current = editop.Smaller
			case editop.Bigger:
				return editop.Incomparable
			}
		case editop.Bigger:
			switch current {
			case editop.Equal:
				current = editop.Bigger
			case editop.Smaller:
				return editop.Incomparable
			}
		}
	}
	return current
}
