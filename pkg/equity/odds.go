package equity

import (
	"github.com/cardroom/holdem-engine/pkg/notation"
)

// RequiredEquity returns the minimum pot share needed to break even on a
// call: toCall / (pot + toCall).
func RequiredEquity(pot, toCall float64) float64 {
	if pot+toCall <= 0 {
		return 0
	}
	return toCall / (pot + toCall)
}

// DrawOdds returns the exact probability, in [0,1], of hitting one of the
// given outs by the river. This is the complement of the miss product over
// the unseen cards (47 on the flop, 46 on the turn), not the rule-of-4/2
// shortcut.
func DrawOdds(outs int, street notation.Street) float64 {
	if outs <= 0 {
		return 0
	}
	switch street {
	case notation.Flop:
		miss := float64(47-outs) / 47 * float64(46-outs) / 46
		return 1 - miss
	case notation.Turn:
		return float64(outs) / 46
	default:
		// No cards to come on the river; preflop draws are not modeled.
		return 0
	}
}
