package solver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cardroom/holdem-engine/pkg/cards"
	"github.com/cardroom/holdem-engine/pkg/notation"
)

func recommendFixture() map[string][]ActionProb {
	return map[string][]ActionProb{
		"0|AKs|Kh7s2c|": {
			{Action: notation.Action{Type: notation.Check}, Probability: 0.2},
			{Action: notation.Action{Type: notation.Bet, Amount: 5}, Probability: 0.795},
			{Action: notation.Action{Type: notation.Bet, Amount: 15}, Probability: 0.005},
		},
	}
}

func TestRecommend(t *testing.T) {
	board, _ := cards.ParseCards("Kh7s2c")

	probs, err := Recommend("AKs", board, "", 0, recommendFixture())
	require.NoError(t, err)

	// Sub-1% actions are dropped and the rest sorted by frequency.
	require.Len(t, probs, 2)
	require.Equal(t, notation.Bet, probs[0].Action.Type)
	require.Equal(t, 0.795, probs[0].Probability)
	require.Equal(t, notation.Check, probs[1].Action.Type)
}

func TestRecommendExplicitCards(t *testing.T) {
	board, _ := cards.ParseCards("Kh7s2c")

	// Explicit cards normalize to the hand class.
	probs, err := Recommend("AsKs", board, "", 0, recommendFixture())
	require.NoError(t, err)
	require.Len(t, probs, 2)
}

func TestRecommendUnknownSituation(t *testing.T) {
	board, _ := cards.ParseCards("Kh7s2c")

	_, err := Recommend("QQ", board, "", 0, recommendFixture())
	require.ErrorIs(t, err, cards.ErrInvalidInput)

	_, err = Recommend("AKs", board, "b5.0", 0, recommendFixture())
	require.ErrorIs(t, err, cards.ErrInvalidInput)
}

func TestRecommendBadHand(t *testing.T) {
	board, _ := cards.ParseCards("Kh7s2c")

	_, err := Recommend("notahand", board, "", 0, recommendFixture())
	require.ErrorIs(t, err, cards.ErrInvalidInput)
}
