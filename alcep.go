/*
Package alcep implements all-corrections Earley parsing: given a
context-free grammar and an input word that the grammar may reject, it
computes the set of all corrections — minimal interleavings of read,
insert, delete and replace edits — that make the word derivable.

Three variants are provided, mirroring the three parsing strategies of
package earley: ALCEP processes the input in a single left-to-right
sweep, OALCEP computes the same correction forest offline from closure
sets, and ALCIEP drives the process interactively, one user-chosen edit
at a time (see package interactive).

The result of either automatic variant is a Correction Shared Packed
Parse Forest (CSPPF, package csppf), a DAG shared across all found
derivations. Package transform turns a CSPPF into the concrete set of
word-ordered corrections a client actually wants to see.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package alcep

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'alcep'.
func tracer() tracing.Trace {
	return tracing.Select("alcep")
}

// TokType is a category type for a Token. Applications using the default
// scanner implementations in package scanner will receive TokTypes
// compatible with text/scanner's token constants.
type TokType int32

// TokTypeStringer is provided by a scanner/grammar combination to print
// out token categories for diagnostics.
type TokTypeStringer func(TokType) string

// Token represents an input token, as produced by a scanner and consumed
// by a Recognizer.
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// TokenRetriever retrieves the token that occupies a given input
// position.
type TokenRetriever func(uint64) Token

// Span captures a run of input positions. For every terminal and
// non-terminal, and for every edit operation, a CSPPF tracks which
// input positions the node covers. A span denotes a start position and
// the position just behind the end; x…x is the empty span at
// position x (used by insertions, which consume no input).
type Span [2]uint64

// From returns the start position of a span.
func (s Span) From() uint64 { return s[0] }

// To returns the position just behind the end of a span.
func (s Span) To() uint64 { return s[1] }

// Len returns the number of input positions s covers.
func (s Span) Len() uint64 { return s[1] - s[0] }

// IsNull returns true for the zero span.
func (s Span) IsNull() bool { return s == Span{} }

// IsEmpty returns true if s covers no input position, i.e. From == To.
// Insertion edit operations always have an empty span.
func (s Span) IsEmpty() bool { return s[0] == s[1] }

// Extend widens s so that it also covers other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

// Variant selects which all-corrections Earley strategy a Recognizer
// should use.
type Variant int

const (
	// ALCEP computes corrections in a single streaming left-to-right pass.
	ALCEP Variant = iota
	// OALCEP computes the same correction forest offline, from closure sets.
	OALCEP
)

func (v Variant) String() string {
	switch v {
	case ALCEP:
		return "ALCEP"
	case OALCEP:
		return "OALCEP"
	default:
		return "Variant(?)"
	}
}
