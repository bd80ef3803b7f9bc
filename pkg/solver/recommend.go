package solver

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/cardroom/holdem-engine/pkg/cards"
	"github.com/cardroom/holdem-engine/pkg/notation"
)

// minRecommendProb filters out noise actions the averaged strategy never
// meaningfully takes.
const minRecommendProb = 0.01

// Recommend looks up the solved strategy for a situation and returns every
// action with at least 1% frequency, sorted by frequency descending. The
// hand accepts either class notation ("AKs") or two explicit cards
// ("AsKs"); history is the tree's action string.
func Recommend(hand string, board []cards.Card, history string, player int, strategies map[string][]ActionProb) ([]ActionProb, error) {
	normalized, err := notation.NormalizeHand(hand)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%d|%s|%s|%s", player, normalized, cards.FormatCards(board), history)
	probs, ok := strategies[key]
	if !ok {
		return nil, fmt.Errorf("%w: no strategy for %q", cards.ErrInvalidInput, key)
	}

	out := lo.Filter(probs, func(p ActionProb, _ int) bool {
		return p.Probability >= minRecommendProb
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Probability > out[j].Probability
	})
	return out, nil
}
