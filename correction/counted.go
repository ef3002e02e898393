package correction

import "github.com/corrective-parsing/alcep/editop"

// Bounds configures the per-kind edit limits a CountedCorrection must
// respect. A limit of -1 means unlimited, matching the original's
// convention for "no newly created object is checked".
type Bounds struct {
	MaxInsertions  int
	MaxDeletions   int
	MaxReplacements int
	MaxEdits       int
}

// Unbounded carries no limit on any edit kind.
var Unbounded = Bounds{MaxInsertions: -1, MaxDeletions: -1, MaxReplacements: -1, MaxEdits: -1}

// CountedCorrection wraps a Correction with running counts of each edit
// kind, checked against Bounds every time two counted corrections are
// concatenated. It is the vehicle for the transform package's
// max_ins/max_del/max_rep/max_edits options.
type CountedCorrection struct {
	Correction
	Bounds      Bounds
	Insertions  int
	Deletions   int
	Replacements int
}

// NewCounted builds a zero-count CountedCorrection from ops. Insertions
// here counts non-empty Insert words; a CountedCorrection built directly
// from leaves (as opposed to via Concatenate) starts with counts of 0
// regardless of its own operations, exactly as the original does — the
// counters track concatenations performed, not operations present.
func NewCounted(ops []editop.Op, bounds Bounds, validate bool) CountedCorrection {
	return CountedCorrection{Correction: New(ops, validate), Bounds: bounds}
}

// Concatenate joins c with other the same way Correction.Concatenate
// does, additionally summing edit counters and rejecting the
// concatenation (ok == false) if any bound in c.Bounds would be
// exceeded. The child's Bounds are inherited from c.
func (c CountedCorrection) Concatenate(other CountedCorrection, simplify bool) (result CountedCorrection, ok bool) {
	if len(c.Ops) == 0 {
		other.Bounds = c.Bounds
		return other, true
	}
	if len(other.Ops) == 0 {
		return c, true
	}
	if simplify && c.Correction.CanSimplify(other.Correction) {
		return CountedCorrection{}, false
	}

	ins := c.Insertions + other.Insertions
	if c.Bounds.MaxInsertions != -1 && ins > c.Bounds.MaxInsertions {
		return CountedCorrection{}, false
	}
	del := c.Deletions + other.Deletions
	if c.Bounds.MaxDeletions != -1 && del > c.Bounds.MaxDeletions {
		return CountedCorrection{}, false
	}
	rep := c.Replacements + other.Replacements
	if c.Bounds.MaxReplacements != -1 && rep > c.Bounds.MaxReplacements {
		return CountedCorrection{}, false
	}
	if c.Bounds.MaxEdits != -1 && ins+del+rep > c.Bounds.MaxEdits {
		return CountedCorrection{}, false
	}

	merged, _ := c.Correction.Concatenate(other.Correction, false)
	return CountedCorrection{
		Correction:   merged,
		Bounds:       c.Bounds,
		Insertions:   ins,
		Deletions:    del,
		Replacements: rep,
	}, true
}

// WithEdit returns a CountedCorrection wrapping a single non-insertion
// edit operation between two empty insertions, its counters initialized
// from the operation's own kind. Use this (not NewCounted) to seed the
// leaves a transform walk folds together with Concatenate, so that
// counts accumulate correctly across the walk.
func WithEdit(op editop.Op, bounds Bounds) CountedCorrection {
	cc := CountedCorrection{Correction: New([]editop.Op{editop.Insert{}, op, editop.Insert{}}, false), Bounds: bounds}
	switch op.(type) {
	case editop.Delete:
		cc.Deletions = 1
	case editop.Replace:
		cc.Replacements = 1
	}
	return cc
}

// WithInsert returns a CountedCorrection wrapping a single Insert
// operation. A non-empty word counts as one insertion, matching the
// original's per-concatenation counting (every non-empty insertion
// edit operation produced by the grammar represents one inserted word,
// regardless of its length).
func WithInsert(word string, bounds Bounds) CountedCorrection {
	cc := CountedCorrection{Correction: New([]editop.Op{editop.Insert{Word: word}}, false), Bounds: bounds}
	if word != "" {
		cc.Insertions = 1
	}
	return cc
}
