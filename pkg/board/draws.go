package board

import (
	"fmt"
	"sort"

	"github.com/cardroom/holdem-engine/pkg/cards"
	"github.com/cardroom/holdem-engine/pkg/equity"
	"github.com/cardroom/holdem-engine/pkg/notation"
)

// DrawType names a category of outstanding draw.
type DrawType string

const (
	FlushDraw         DrawType = "flush_draw"
	BackdoorFlushDraw DrawType = "backdoor_flush_draw"
	OpenEndedDraw     DrawType = "open_ended_straight_draw"
	GutshotDraw       DrawType = "gutshot_straight_draw"
	OvercardDraw      DrawType = "overcards"
)

// DrawInfo describes one draw the hero holds: its outs, the probability of
// completing by the river (a fraction in [0,1]), and the hole/board cards
// contributing to it.
type DrawInfo struct {
	Type        DrawType
	Outs        int
	Probability float64
	Cards       []cards.Card
}

// backdoorFlushProbability is the approximate runner-runner flush chance.
// The 10-out figure alongside it is kept as documented approximate
// behavior rather than derived from the outs formula.
const (
	backdoorFlushOuts        = 10
	backdoorFlushProbability = 0.042
)

// FindDraws enumerates the hero's draws. It is only meaningful with 3 or 4
// community cards (2 or 1 cards to come); other board sizes yield nothing.
func FindDraws(hole, board []cards.Card) ([]DrawInfo, error) {
	if len(hole) != 2 {
		return nil, fmt.Errorf("%w: need exactly 2 hole cards, got %d", cards.ErrInvalidInput, len(hole))
	}
	seen := make(map[cards.Card]bool, len(hole)+len(board))
	for _, c := range append(append([]cards.Card{}, hole...), board...) {
		if seen[c] {
			return nil, fmt.Errorf("%w: duplicate card %s", cards.ErrInvalidInput, c)
		}
		seen[c] = true
	}
	if len(board) != 3 && len(board) != 4 {
		return nil, nil
	}

	street := notation.StreetForBoard(len(board))
	all := append(append([]cards.Card{}, hole...), board...)

	var draws []DrawInfo

	if d, ok := flushDraw(hole, all, street, len(board)); ok {
		draws = append(draws, d)
	}
	if d, ok := straightDraw(hole, all, street); ok {
		draws = append(draws, d)
	}
	if d, ok := overcards(hole, board, street); ok {
		draws = append(draws, d)
	}

	return draws, nil
}

// flushDraw detects a made flush draw (exactly 4 of one suit, 9 outs) or a
// backdoor draw (3 of one suit with two cards to come).
func flushDraw(hole, all []cards.Card, street notation.Street, boardLen int) (DrawInfo, bool) {
	var suitCounts [4]int
	for _, c := range all {
		suitCounts[c.Suit]++
	}

	for suit, n := range suitCounts {
		s := cards.Suit(suit)
		holeContributes := hole[0].Suit == s || hole[1].Suit == s
		if !holeContributes {
			continue
		}
		if n == 4 {
			return DrawInfo{
				Type:        FlushDraw,
				Outs:        9,
				Probability: equity.DrawOdds(9, street),
				Cards:       suitedCards(all, s),
			}, true
		}
		if n == 3 && boardLen == 3 {
			return DrawInfo{
				Type:        BackdoorFlushDraw,
				Outs:        backdoorFlushOuts,
				Probability: backdoorFlushProbability,
				Cards:       suitedCards(all, s),
			}, true
		}
	}
	return DrawInfo{}, false
}

// straightDraw runs the sliding 4-value window over hole+board ranks.
// A window of four consecutive values is open-ended (8 outs) unless it
// butts against an end of the ladder; a window spanning five values with
// one hole is a gutshot (4 outs). A made straight reports no draw.
func straightDraw(hole, all []cards.Card, street notation.Street) (DrawInfo, bool) {
	var rankCounts [13]int
	for _, c := range all {
		rankCounts[c.Rank]++
	}
	values := uniqueValues(rankCounts)
	hasAce := rankCounts[cards.Ace] > 0
	vals := values
	if hasAce && len(values) > 0 && values[0] <= 5 {
		vals = append([]int{1}, values...)
	}

	// Five in a row is a made straight, not a draw.
	for i := 0; i+4 < len(vals); i++ {
		if vals[i+4]-vals[i] == 4 {
			return DrawInfo{}, false
		}
	}

	bestOuts := 0
	var bestType DrawType
	var bestWindow []int
	for i := 0; i+3 < len(vals); i++ {
		span := vals[i+3] - vals[i]
		window := vals[i : i+4]
		if !windowUsesHole(window, hole) {
			continue
		}
		switch {
		case span == 3:
			outs := 8
			t := OpenEndedDraw
			if vals[i] == 1 || vals[i+3] == 14 {
				outs = 4
				t = GutshotDraw
			}
			if outs > bestOuts {
				bestOuts, bestType, bestWindow = outs, t, window
			}
		case span == 4:
			if bestOuts < 4 {
				bestOuts, bestType, bestWindow = 4, GutshotDraw, window
			}
		}
	}

	if bestOuts == 0 {
		return DrawInfo{}, false
	}
	return DrawInfo{
		Type:        bestType,
		Outs:        bestOuts,
		Probability: equity.DrawOdds(bestOuts, street),
		Cards:       windowCards(bestWindow, all),
	}, true
}

// overcards reports hole cards ranked above the highest board card, worth
// 3 outs apiece.
func overcards(hole, board []cards.Card, street notation.Street) (DrawInfo, bool) {
	top := board[0].Rank
	for _, c := range board[1:] {
		if c.Rank > top {
			top = c.Rank
		}
	}

	var over []cards.Card
	for _, c := range hole {
		if c.Rank > top {
			over = append(over, c)
		}
	}
	if len(over) == 0 {
		return DrawInfo{}, false
	}
	outs := 3 * len(over)
	return DrawInfo{
		Type:        OvercardDraw,
		Outs:        outs,
		Probability: equity.DrawOdds(outs, street),
		Cards:       over,
	}, true
}

func suitedCards(all []cards.Card, s cards.Suit) []cards.Card {
	var out []cards.Card
	for _, c := range all {
		if c.Suit == s {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rank > out[j].Rank })
	return out
}

func windowUsesHole(window []int, hole []cards.Card) bool {
	for _, v := range window {
		for _, h := range hole {
			hv := h.Rank.Value()
			if hv == v || (h.Rank == cards.Ace && v == 1) {
				return true
			}
		}
	}
	return false
}

func windowCards(window []int, all []cards.Card) []cards.Card {
	var out []cards.Card
	for _, c := range all {
		cv := c.Rank.Value()
		for _, v := range window {
			if cv == v || (c.Rank == cards.Ace && v == 1) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}
