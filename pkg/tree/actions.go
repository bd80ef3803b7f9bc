package tree

import (
	"github.com/cardroom/holdem-engine/pkg/notation"
)

// minChips is the smallest meaningful wager; anything under it is noise
// from pot-fraction arithmetic.
const minChips = 0.01

// Config fixes the action abstraction for one tree build.
type Config struct {
	// BetSizes are pot-relative sizings (0.5 = half pot) offered for bets
	// and raises.
	BetSizes []float64

	// MaxRaisesPerStreet caps bet/raise rounds on one street; once hit,
	// only fold/call remain.
	MaxRaisesPerStreet int

	// MaxDepth hard-caps tree depth; deeper lines are truncated into
	// showdown terminals to bound tree size.
	MaxDepth int
}

// DefaultConfig mirrors common solver settings: three sizings, two raises
// per street, depth 10.
func DefaultConfig() Config {
	return Config{
		BetSizes:           []float64{0.5, 0.75, 1.5},
		MaxRaisesPerStreet: 2,
		MaxDepth:           10,
	}
}

// GenerateActions returns the legal actions for the player to act. Action
// amounts are the chips that action adds to the pot (a raise amount
// includes the call portion).
func GenerateActions(pot float64, stacks, bets [2]float64, toAct, raisesThisStreet int, cfg Config) []notation.Action {
	stack := stacks[toAct]
	facing := bets[1-toAct] - bets[toAct]

	var actions []notation.Action

	if facing > minChips {
		actions = append(actions, notation.Action{Type: notation.Fold})
		actions = append(actions, notation.Action{Type: notation.Call})

		// Raising ends once a player is covered or the cap is reached.
		if stack > facing+minChips && raisesThisStreet < cfg.MaxRaisesPerStreet {
			potAfterCall := pot + facing
			for _, frac := range cfg.BetSizes {
				amount := facing + potAfterCall*frac
				if amount >= stack {
					continue // collapses into the all-in below
				}
				actions = append(actions, notation.Action{Type: notation.Raise, Amount: amount})
			}
			actions = appendAllIn(actions, notation.Raise, stack)
		}
		return actions
	}

	actions = append(actions, notation.Action{Type: notation.Check})

	if stack > minChips {
		for _, frac := range cfg.BetSizes {
			amount := pot * frac
			if amount < minChips {
				continue
			}
			if amount >= stack {
				continue
			}
			actions = append(actions, notation.Action{Type: notation.Bet, Amount: amount})
		}
		if len(cfg.BetSizes) > 0 {
			actions = appendAllIn(actions, notation.Bet, stack)
		}
	}

	return actions
}

// appendAllIn adds the all-in wager unless an existing sizing already is
// one.
func appendAllIn(actions []notation.Action, t notation.ActionType, stack float64) []notation.Action {
	for _, a := range actions {
		if a.Type == t && a.Amount >= stack-minChips {
			return actions
		}
	}
	return append(actions, notation.Action{Type: t, Amount: stack})
}
