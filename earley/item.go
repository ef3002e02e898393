package earley

import "github.com/corrective-parsing/alcep/grammar"

// Item is an Earley item [Rule -> α•β, Start], following the classical
// formulation: Rule is the production, Dot the number of RHS symbols
// already matched, and Start the Earley set this item originated in.
type Item struct {
	Rule  *grammar.Rule
	Dot   int
	Start uint64
}

// Expect returns the symbol immediately after the dot, and true, or the
// zero Symbol and false if the item is complete.
func (it Item) Expect() (grammar.Symbol, bool) {
	if it.Dot >= len(it.Rule.RHS) {
		return grammar.Symbol{}, false
	}
	return it.Rule.RHS[it.Dot], true
}

// IsComplete reports whether the dot has reached the end of the RHS.
func (it Item) IsComplete() bool {
	return it.Dot >= len(it.Rule.RHS)
}

// Advance returns a copy of it with the dot moved one position right.
func (it Item) Advance() Item {
	it.Dot++
	return it
}

// startItem returns the initial (dot at position 0) item for rule,
// starting at position start.
func startItem(rule *grammar.Rule, start uint64) Item {
	return Item{Rule: rule, Dot: 0, Start: start}
}
