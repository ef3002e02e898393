/*
Package interactive implements ALCIEP: an interactive variant of
all-corrections Earley parsing where, at each input position, a client
(typically a human through the reference REPL in repl.go) picks exactly
one of the edits the grammar currently allows, rather than having the
recognizer explore every one of them automatically the way ALCEP/OALCEP
do.

Driver is the interface contract: Begin reports the terminals some item
currently expects, Read/Replace/Delete commit one edit and report the
next menu, and Finish closes the interaction into a single CSPPF root
node — exactly the family of positions package earley's ALCEP algorithm
would otherwise populate all at once. Insertion stays automatic (folded
into the closure computed after every commit), matching how the
original alciep.py always applies its insertion rule regardless of
interactivity; only the position-advancing edits are a user choice.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package interactive

import (
	"errors"
	"fmt"

	"github.com/corrective-parsing/alcep/csppf"
	"github.com/corrective-parsing/alcep/earley"
	"github.com/corrective-parsing/alcep/grammar"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("alcep.interactive")
}

// ErrNoSuchTerminal is returned by Driver.Read/Replace when sym isn't
// one of the terminals the current menu (the last Options() result)
// actually offered.
var ErrNoSuchTerminal = errors.New("interactive: no item expects that terminal")

// Driver wraps an earley.Recognizer's stepwise API with the small
// amount of extra state (the current menu, whether Begin has run) a
// client needs to drive ALCIEP correctly.
type Driver struct {
	r       *earley.Recognizer
	start   grammar.Symbol
	menu    []grammar.Symbol
	began   bool
	finished bool
}

// NewDriver returns a Driver for the grammar described by ga, to be
// parsed starting at start.
func NewDriver(ga grammar.Analyzer, start grammar.Symbol, opts ...earley.Option) *Driver {
	return &Driver{r: earley.NewRecognizer(ga, opts...), start: start}
}

// Begin seeds the recognizer and returns the first menu of terminals
// some item expects.
func (d *Driver) Begin() ([]grammar.Symbol, error) {
	menu, err := d.r.Begin(d.start)
	if err != nil {
		return nil, err
	}
	d.began = true
	d.menu = menu
	tracer().Debugf("ALCIEP begin: %d terminals expected", len(menu))
	return menu, nil
}

// Options returns the menu reported by the most recent Begin/Read/
// Replace/Delete call.
func (d *Driver) Options() []grammar.Symbol { return d.menu }

func (d *Driver) offers(sym grammar.Symbol) bool {
	for _, s := range d.menu {
		if s == sym {
			return true
		}
	}
	return false
}

// Read commits the scanner rule for sym, reading letter unchanged.
func (d *Driver) Read(sym grammar.Symbol, letter string) ([]grammar.Symbol, error) {
	if !d.offers(sym) {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchTerminal, sym)
	}
	menu, err := d.r.Read(sym, letter)
	if err != nil {
		return nil, err
	}
	d.menu = menu
	return menu, nil
}

// Replace commits the replacement rule for sym, replacing the input
// letter with sym.
func (d *Driver) Replace(sym grammar.Symbol, letter string) ([]grammar.Symbol, error) {
	if !d.offers(sym) {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchTerminal, sym)
	}
	menu, err := d.r.Replace(sym, letter)
	if err != nil {
		return nil, err
	}
	d.menu = menu
	return menu, nil
}

// Delete commits the deletion rule, skipping letter entirely.
func (d *Driver) Delete(letter string) []grammar.Symbol {
	d.menu = d.r.Delete(letter)
	return d.menu
}

// Finish closes the interaction and returns the CSPPF root for start.
// It fails if Begin was never called, or if start was never completed.
func (d *Driver) Finish() (*csppf.SymbolNode, error) {
	if !d.began {
		return nil, errors.New("interactive: Begin was never called")
	}
	root, err := d.r.Finish(d.start)
	if err != nil {
		return nil, err
	}
	d.finished = true
	return root, nil
}

// Finished reports whether Finish has already succeeded.
func (d *Driver) Finished() bool { return d.finished }

// Forest returns the CSPPF under construction (or completed, after
// Finish).
func (d *Driver) Forest() *csppf.Forest { return d.r.Forest() }
