/*
Package editop defines the edit-operation algebra that forms the leaves
of a correction shared packed parse forest: read, insert, delete and
replace.

Edit operations are partially ordered by Compare: an insertion is
smaller than another insertion if its inserted word is a scattered
subsequence of the other's, and read/delete/replace operations on the
same letter are ordered read < replace and read < delete (read is
"free" and always the preferred operation; a replace or delete always
represents a real correction). Comparing an
insertion against any non-insertion operation is undefined and reported
as an error, mirroring the fact that insertions occupy even positions
and all other operations occupy odd positions in a word-ordered
correction (see package correction).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package editop

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("alcep.editop")
}

// These package vars give the four operations' String() output a
// configurable display symbol, mirroring the original's
// EDIT_OPERATION_*_SYMBOL constants. Replace uses two symbols, one in
// front of the replaced letter and one between it and its substitute;
// with the defaults, Replace{Letter: "a", By: "b"} renders as
// Repl'a'->'b'.
var (
	InsSymbol      = "Ins"
	DelSymbol      = "Del"
	Replace1Symbol = "Repl"
	Replace2Symbol = "->"
	ReadSymbol     = "Read"
)

// Verdict is the result of comparing two edit operations.
type Verdict int

const (
	// Equal means both operations have identical effect.
	Equal Verdict = iota
	// Incomparable means neither operation dominates the other.
	Incomparable
	// Smaller means the receiver is strictly smaller than the argument.
	Smaller
	// Bigger means the receiver is strictly bigger than the argument.
	Bigger
)

func (v Verdict) String() string {
	switch v {
	case Equal:
		return "="
	case Smaller:
		return "<"
	case Bigger:
		return ">"
	default:
		return "?"
	}
}

// ErrIncomparableKind is returned by Compare when an Insert is compared
// against a non-Insert operation (or vice versa). The correction
// algebra gives this comparison no meaning; callers that hit it have a
// malformed, non-word-ordered sequence of operations.
var ErrIncomparableKind = errors.New("editop: insertions cannot be compared to non-insertion operations")

// Op is any edit operation. The four concrete types below are the only
// implementations; client code should type-switch on them rather than
// add new ones.
type Op interface {
	fmt.Stringer
	// isOp is an unexported marker that closes the set of
	// implementations to this package.
	isOp()
}

// Insert represents inserting Word in front of the input letter that
// follows it in a word-ordered correction. The empty Insert (Word == "")
// is the identity element of concatenation.
type Insert struct {
	Word string
}

func (Insert) isOp() {}

func (i Insert) String() string { return InsSymbol + "'" + i.Word + "'" }

// Delete represents deleting Letter from the input.
type Delete struct {
	Letter string
}

func (Delete) isOp() {}

func (d Delete) String() string { return DelSymbol + "'" + d.Letter + "'" }

// Replace represents substituting By for Letter.
type Replace struct {
	Letter string
	By     string
}

func (Replace) isOp() {}

func (r Replace) String() string {
	return Replace1Symbol + "'" + r.Letter + "'" + Replace2Symbol + "'" + r.By + "'"
}

// Read represents reading Letter from the input unchanged.
type Read struct {
	Letter string
}

func (Read) isOp() {}

func (r Read) String() string { return ReadSymbol + "'" + r.Letter + "'" }

// Compare implements the partial order of the §4.1 table. An error is
// returned only when a and b are of incomparable kinds (one is an
// Insert, the other is not).
func Compare(a, b Op) (Verdict, error) {
	ai, aIns := a.(Insert)
	bi, bIns := b.(Insert)
	if aIns != bIns {
		return Incomparable, ErrIncomparableKind
	}
	if aIns {
		return compareInsertions(ai, bi), nil
	}
	return compareNonInsertions(a, b), nil
}

// compareInsertions orders two insertions by the scattered-subsequence
// relation: Ins(w1) < Ins(w2) iff w1 is a scattered subsequence of w2.
func compareInsertions(a, b Insert) Verdict {
	if a.Word == b.Word {
		return Equal
	}
	if len(a.Word) <= len(b.Word) {
		return scatteredSubsequence(a.Word, b.Word)
	}
	if v := scatteredSubsequence(b.Word, a.Word); v == Smaller {
		return Bigger
	} else {
		return v
	}
}

// scatteredSubsequence reports how the shorter word relates to the
// longer one: Equal if identical (never reached by callers, who check
// that first), Smaller if shorter is a scattered subsequence of longer,
// Incomparable otherwise. shorter must not be longer than longer.
func scatteredSubsequence(shorter, longer string) Verdict {
	if len(shorter) == 0 {
		return Smaller
	}
	i := 0
	for _, letter := range longer {
		if rune(shorter[i]) == letter {
			i++
			if i == len(shorter) {
				return Smaller
			}
		}
	}
	return Incomparable
}

// compareNonInsertions implements the read/delete/replace cross table.
func compareNonInsertions(a, b Op) Verdict {
	switch x := a.(type) {
	case Read:
		switch y := b.(type) {
		case Read:
			if x.Letter == y.Letter {
				return Equal
			}
			return Incomparable
		case Delete:
			if x.Letter == y.Letter {
				return Smaller
			}
			return Incomparable
		case Replace:
			if x.Letter == y.Letter {
				return Smaller
			}
			return Incomparable
		}
	case Delete:
		switch y := b.(type) {
		case Read:
			if x.Letter == y.Letter {
				return Bigger
			}
			return Incomparable
		case Delete:
			if x.Letter == y.Letter {
				return Equal
			}
			return Incomparable
		case Replace:
			return Incomparable
		}
	case Replace:
		switch y := b.(type) {
		case Read:
			if x.Letter == y.Letter {
				return Bigger
			}
			return Incomparable
		case Delete:
			return Incomparable
		case Replace:
			if x.Letter == y.Letter && x.By == y.By {
				return Equal
			}
			return Incomparable
		}
	}
	tracer().Errorf("editop: unreachable comparison %v vs %v", a, b)
	return Incomparable
}
