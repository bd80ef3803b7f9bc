package cards

import (
	"fmt"
	"sort"
)

// HandRanking represents the category of a poker hand
type HandRanking uint8

const (
	HighCard HandRanking = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns a human-readable representation of the hand ranking
func (r HandRanking) String() string {
	switch r {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// EvaluatedHand is the result of ranking a 5-7 card set. Score is a single
// comparable integer: a higher score is always the stronger hand, and equal
// scores are true ties.
type EvaluatedHand struct {
	Ranking     HandRanking
	Score       int64
	BestFive    []Card
	Kickers     []Rank
	Description string
}

// scoreTier separates ranking categories in the packed score. Below it, the
// primary rank and up to four kickers occupy two decimal digits each, most
// significant first, so plain integer comparison reproduces poker tie-break
// order.
const scoreTier = 1_000_000_000_000

func packScore(ranking HandRanking, slots ...Rank) int64 {
	score := int64(ranking) * scoreTier
	mult := int64(100_000_000)
	for _, s := range slots {
		score += int64(s.Value()) * mult
		mult /= 100
	}
	return score
}

// Compare returns -1 if a loses to b, 0 on an exact tie, 1 if a wins.
func Compare(a, b EvaluatedHand) int {
	switch {
	case a.Score < b.Score:
		return -1
	case a.Score > b.Score:
		return 1
	default:
		return 0
	}
}

// Evaluate ranks the best 5-card hand available in 5-7 cards. For 6 or 7
// cards every C(n,5) subset is evaluated and the maximum kept; the
// exhaustive search is what guarantees correctness (21 subsets for 7
// cards, so there is no reason to shortcut it).
func Evaluate(cs []Card) (EvaluatedHand, error) {
	n := len(cs)
	if n < 5 || n > 7 {
		return EvaluatedHand{}, fmt.Errorf("%w: need 5-7 cards, got %d", ErrInvalidInput, n)
	}
	seen := make(map[Card]bool, n)
	for _, c := range cs {
		if seen[c] {
			return EvaluatedHand{}, fmt.Errorf("%w: duplicate card %s", ErrInvalidInput, c)
		}
		seen[c] = true
	}

	if n == 5 {
		return evaluate5(cs), nil
	}

	// Iterative index enumerator over all 5-card subsets.
	idx := [5]int{0, 1, 2, 3, 4}
	var five [5]Card
	var best EvaluatedHand
	best.Score = -1
	for {
		for i, j := range idx {
			five[i] = cs[j]
		}
		if hv := evaluate5(five[:]); hv.Score > best.Score {
			best = hv
		}

		// Advance to the next combination.
		i := 4
		for i >= 0 && idx[i] == n-5+i {
			i--
		}
		if i < 0 {
			break
		}
		idx[i]++
		for j := i + 1; j < 5; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
	return best, nil
}

// evaluate5 classifies exactly 5 cards.
func evaluate5(five []Card) EvaluatedHand {
	var rankCounts [13]int
	var suitCounts [4]int
	for _, c := range five {
		rankCounts[c.Rank]++
		suitCounts[c.Suit]++
	}

	isFlush := false
	for _, count := range suitCounts {
		if count == 5 {
			isFlush = true
			break
		}
	}

	isStraight, straightHigh := checkStraight(rankCounts)

	// With exactly 5 cards a flush means one suit, so any straight in a
	// flush hand is a straight flush.
	if isFlush && isStraight {
		if straightHigh == Ace {
			return EvaluatedHand{
				Ranking:     RoyalFlush,
				Score:       packScore(RoyalFlush, Ace),
				BestFive:    straightOrder(five, straightHigh),
				Description: "Royal Flush",
			}
		}
		return EvaluatedHand{
			Ranking:     StraightFlush,
			Score:       packScore(StraightFlush, straightHigh),
			BestFive:    straightOrder(five, straightHigh),
			Description: fmt.Sprintf("Straight Flush, %s high", straightHigh),
		}
	}

	groups := rankGroups(rankCounts[:])

	if groups[0].count == 4 {
		return EvaluatedHand{
			Ranking:     FourOfAKind,
			Score:       packScore(FourOfAKind, groups[0].rank, groups[1].rank),
			BestFive:    groupOrder(five, groups),
			Kickers:     []Rank{groups[1].rank},
			Description: fmt.Sprintf("Four of a Kind, %ss", groups[0].rank.Name()),
		}
	}

	if groups[0].count == 3 && groups[1].count == 2 {
		return EvaluatedHand{
			Ranking:     FullHouse,
			Score:       packScore(FullHouse, groups[0].rank, groups[1].rank),
			BestFive:    groupOrder(five, groups),
			Description: fmt.Sprintf("%ss full of %ss", groups[0].rank.Name(), groups[1].rank.Name()),
		}
	}

	if isFlush {
		ranks := descendingRanks(rankCounts[:])
		return EvaluatedHand{
			Ranking:     Flush,
			Score:       packScore(Flush, ranks[0], ranks[1], ranks[2], ranks[3], ranks[4]),
			BestFive:    groupOrder(five, groups),
			Kickers:     ranks[1:],
			Description: fmt.Sprintf("Flush, %s high", ranks[0]),
		}
	}

	if isStraight {
		return EvaluatedHand{
			Ranking:     Straight,
			Score:       packScore(Straight, straightHigh),
			BestFive:    straightOrder(five, straightHigh),
			Description: fmt.Sprintf("Straight, %s high", straightHigh),
		}
	}

	if groups[0].count == 3 {
		return EvaluatedHand{
			Ranking:     ThreeOfAKind,
			Score:       packScore(ThreeOfAKind, groups[0].rank, groups[1].rank, groups[2].rank),
			BestFive:    groupOrder(five, groups),
			Kickers:     []Rank{groups[1].rank, groups[2].rank},
			Description: fmt.Sprintf("Three of a Kind, %ss", groups[0].rank.Name()),
		}
	}

	if groups[0].count == 2 && groups[1].count == 2 {
		return EvaluatedHand{
			Ranking:     TwoPair,
			Score:       packScore(TwoPair, groups[0].rank, groups[1].rank, groups[2].rank),
			BestFive:    groupOrder(five, groups),
			Kickers:     []Rank{groups[2].rank},
			Description: fmt.Sprintf("Two Pair, %ss and %ss", groups[0].rank.Name(), groups[1].rank.Name()),
		}
	}

	if groups[0].count == 2 {
		return EvaluatedHand{
			Ranking:     OnePair,
			Score:       packScore(OnePair, groups[0].rank, groups[1].rank, groups[2].rank, groups[3].rank),
			BestFive:    groupOrder(five, groups),
			Kickers:     []Rank{groups[1].rank, groups[2].rank, groups[3].rank},
			Description: fmt.Sprintf("Pair of %ss", groups[0].rank.Name()),
		}
	}

	ranks := descendingRanks(rankCounts[:])
	return EvaluatedHand{
		Ranking:     HighCard,
		Score:       packScore(HighCard, ranks[0], ranks[1], ranks[2], ranks[3], ranks[4]),
		BestFive:    groupOrder(five, groups),
		Kickers:     ranks[1:],
		Description: fmt.Sprintf("%s High", ranks[0].Name()),
	}
}

type rankGroup struct {
	rank  Rank
	count int
}

// rankGroups returns ranks grouped by count, sorted by count descending,
// then rank descending.
func rankGroups(rankCounts []int) []rankGroup {
	groups := make([]rankGroup, 0, 5)
	for r := int(Ace); r >= int(Two); r-- {
		rank := Rank(r)
		if rankCounts[rank] > 0 {
			groups = append(groups, rankGroup{rank: rank, count: rankCounts[rank]})
		}
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})
	return groups
}

// descendingRanks lists the distinct ranks present, highest first.
func descendingRanks(rankCounts []int) []Rank {
	ranks := make([]Rank, 0, 5)
	for r := int(Ace); r >= int(Two); r-- {
		if rankCounts[r] > 0 {
			ranks = append(ranks, Rank(r))
		}
	}
	return ranks
}

// checkStraight checks for 5 consecutive distinct ranks.
// Returns (isStraight, highCard).
func checkStraight(rankCounts [13]int) (bool, Rank) {
	for h := int(Ace); h >= int(Six); h-- {
		high := Rank(h)
		hasStraight := true
		for i := 0; i < 5; i++ {
			if rankCounts[Rank(int(high)-i)] == 0 {
				hasStraight = false
				break
			}
		}
		if hasStraight {
			return true, high
		}
	}

	// Wheel (A-2-3-4-5): the Ace plays low, so the high card is the Five.
	if rankCounts[Ace] > 0 && rankCounts[Two] > 0 && rankCounts[Three] > 0 &&
		rankCounts[Four] > 0 && rankCounts[Five] > 0 {
		return true, Five
	}

	return false, 0
}

// groupOrder sorts the five cards by tie-break significance: higher group
// counts first, then higher ranks.
func groupOrder(five []Card, groups []rankGroup) []Card {
	pos := make(map[Rank]int, len(groups))
	for i, g := range groups {
		pos[g.rank] = i
	}
	out := make([]Card, len(five))
	copy(out, five)
	sort.Slice(out, func(i, j int) bool {
		return pos[out[i].Rank] < pos[out[j].Rank]
	})
	return out
}

// straightOrder sorts straight cards high to low, with the Ace moved to the
// back when it plays low in a wheel.
func straightOrder(five []Card, high Rank) []Card {
	out := make([]Card, len(five))
	copy(out, five)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Rank > out[j].Rank
	})
	if high == Five && out[0].Rank == Ace {
		out = append(out[1:], out[0])
	}
	return out
}
