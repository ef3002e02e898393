package alcep

import (
	"fmt"

	"github.com/corrective-parsing/alcep/correction"
	"github.com/corrective-parsing/alcep/csppf"
	"github.com/corrective-parsing/alcep/earley"
	"github.com/corrective-parsing/alcep/grammar"
	"github.com/corrective-parsing/alcep/scanner"
	"github.com/corrective-parsing/alcep/transform"
)

// Config selects how Parse runs: which of the two automatic strategies
// to use, whether to trace intermediate Earley sets, and how the
// resulting forest should be reduced to concrete corrections.
type Config struct {
	// Variant picks ALCEP (streaming) or OALCEP (offline); the zero
	// value is ALCEP.
	Variant Variant
	// Debug turns on tracing of intermediate recognizer state.
	Debug bool
	// OrderedSets requests deterministic iteration order for internal
	// work sets; see earley.OrderedSets.
	OrderedSets bool
	// Policy controls which corrections transform.Enumerate keeps once
	// the forest has been built. The zero value keeps everything.
	Policy transform.Policy
}

// Result is the outcome of a successful Parse: the forest the
// recognizer built, and the corrections transform.Enumerate extracted
// from it under the requested Policy.
type Result struct {
	Forest      *csppf.Forest
	Corrections []correction.Correction
}

// Parse runs a Recognizer over tok against ga's grammar, starting at
// start, and reduces the resulting forest to corrections according to
// cfg. It is the one-call entry point; package earley and package
// transform remain available directly for callers who need the
// intermediate forest or want to drive the recognizer incrementally
// (see package interactive).
func Parse(ga grammar.Analyzer, tok scanner.Tokenizer, start grammar.Symbol, cfg Config) (*Result, error) {
	opts := []earley.Option{earley.Debug(cfg.Debug), earley.OrderedSets(cfg.OrderedSets)}
	r := earley.NewRecognizer(ga, opts...)

	var (
		root *csppf.SymbolNode
		err  error
	)
	switch cfg.Variant {
	case OALCEP:
		var toks []Token
		for t := tok.NextToken(); t.TokType() != TokType(scanner.EOF); t = tok.NextToken() {
			toks = append(toks, t)
		}
		root, err = r.ParseOffline(toks, start)
	default:
		root, err = r.Parse(tok, start)
	}
	if err != nil {
		return nil, fmt.Errorf("alcep: %w", err)
	}

	corrections := transform.Enumerate(root, cfg.Policy)
	return &Result{Forest: r.Forest(), Corrections: corrections}, nil
}
