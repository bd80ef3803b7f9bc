package board

import (
	"sort"

	"github.com/cardroom/holdem-engine/pkg/cards"
)

// FindNuts lists the best hands possible on the board, strongest first.
// This is a structural heuristic (paired board admits quads, any 3-flush
// admits the nut flush, and so on), not a full-range enumeration.
func FindNuts(board []cards.Card) []string {
	if len(board) < 3 {
		return nil
	}

	t, err := AnalyzeTexture(board)
	if err != nil {
		return nil
	}

	var nuts []string
	if t.Paired {
		nuts = append(nuts, "Four of a Kind", "Full House")
	}
	if t.FlushPossible {
		if t.Monotone || !t.Paired {
			nuts = append(nuts, "Nut Flush ("+cards.Ace.String()+t.FlushSuit.String()+" high)")
		} else {
			nuts = append(nuts, "Nut Flush")
		}
	}
	if straightPossible(board) {
		nuts = append(nuts, "Straight")
	}
	if !t.Paired {
		nuts = append(nuts, "Set")
	}
	nuts = append(nuts, "Two Pair", "Overpair / Top Pair")
	return nuts
}

// FindDangerCards lists next cards that most change what the nuts are:
// flush-advancing suits first, then straight completers, then cards
// pairing the top of the board. Heuristic and ordered, not exhaustive.
func FindDangerCards(board []cards.Card) []cards.Card {
	if len(board) < 3 || len(board) >= 5 {
		return nil
	}

	onBoard := make(map[cards.Card]bool, len(board))
	var suitCounts [4]int
	top := board[0].Rank
	for _, c := range board {
		onBoard[c] = true
		suitCounts[c.Suit]++
		if c.Rank > top {
			top = c.Rank
		}
	}

	var danger []cards.Card
	seen := make(map[cards.Card]bool)
	add := func(c cards.Card) {
		if !onBoard[c] && !seen[c] {
			seen[c] = true
			danger = append(danger, c)
		}
	}

	// Flush-advancing cards, highest first.
	for suit, n := range suitCounts {
		if n >= 2 {
			s := cards.Suit(suit)
			ranks := cards.Ranks()
			for i := len(ranks) - 1; i >= 0; i-- {
				add(cards.NewCard(ranks[i], s))
			}
		}
	}

	// Straight completers: ranks that put four values within a 5-card span.
	for _, r := range straightCompleters(board) {
		for _, s := range cards.Suits() {
			add(cards.NewCard(r, s))
		}
	}

	// Pairing the top board card opens up boats.
	for _, s := range cards.Suits() {
		add(cards.NewCard(top, s))
	}

	return danger
}

// straightPossible reports whether any three board values fit inside a
// 5-rank span, which is enough for some holding to have a straight.
func straightPossible(board []cards.Card) bool {
	values := boardValues(board)
	for i := 0; i+2 < len(values); i++ {
		if values[i+2]-values[i] <= 4 {
			return true
		}
	}
	return false
}

// straightCompleters returns candidate ranks whose arrival leaves four
// values within a 5-rank span, descending.
func straightCompleters(board []cards.Card) []cards.Rank {
	values := boardValues(board)
	present := make(map[int]bool, len(values))
	for _, v := range values {
		present[v] = true
	}

	var out []cards.Rank
	for v := 14; v >= 2; v-- {
		if present[v] {
			continue
		}
		withV := append([]int{v}, values...)
		sort.Ints(withV)
		for i := 0; i+3 < len(withV); i++ {
			if withV[i+3]-withV[i] <= 4 {
				out = append(out, cards.Rank(v-2))
				break
			}
		}
	}
	return out
}

func boardValues(board []cards.Card) []int {
	var rankCounts [13]int
	for _, c := range board {
		rankCounts[c.Rank]++
	}
	values := uniqueValues(rankCounts)
	if rankCounts[cards.Ace] > 0 {
		values = append([]int{1}, values...)
	}
	return values
}
