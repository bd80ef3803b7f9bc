package notation

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cardroom/holdem-engine/pkg/cards"
)

// HandRange maps hand-class notation ("AA", "AKs", "87o") to a weight in
// [0,1]. A pair expands to 6 concrete combos, suited to 4, offsuit to 12,
// minus any combo conflicting with visible cards.
type HandRange map[string]float64

// WeightedCombo is one concrete instantiation of a range entry, carrying
// the weight it contributes to range-level aggregates.
type WeightedCombo struct {
	Combo  Combo
	Weight float64
}

// ParseRange parses a comma-separated range string into a HandRange.
// Entries accept an optional ":weight" suffix and dash ranges:
//
//	"AA,KK-JJ,AKs:0.5,QJo"
func ParseRange(rangeStr string) (HandRange, error) {
	rangeStr = strings.TrimSpace(rangeStr)
	if rangeStr == "" {
		return nil, fmt.Errorf("%w: empty range string", cards.ErrInvalidInput)
	}

	hr := make(HandRange)
	for _, part := range strings.Split(rangeStr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		weight := 1.0
		if i := strings.IndexByte(part, ':'); i >= 0 {
			w, err := strconv.ParseFloat(part[i+1:], 64)
			if err != nil || w < 0 || w > 1 {
				return nil, fmt.Errorf("%w: bad weight in %q", cards.ErrInvalidInput, part)
			}
			weight = w
			part = part[:i]
		}

		hands, err := expandNotation(part)
		if err != nil {
			return nil, err
		}
		for _, h := range hands {
			hr[h] = weight
		}
	}
	return hr, nil
}

// expandNotation turns one entry (single hand or dash range) into its
// normalized hand-class notations.
func expandNotation(part string) ([]string, error) {
	if strings.Contains(part, "-") {
		return expandDashRange(part)
	}
	h, err := NormalizeHand(part)
	if err != nil {
		return nil, err
	}
	return []string{h}, nil
}

// NormalizeHand normalizes hand notation: ranks ordered high to low, and
// two explicit card tokens reduced to their hand class (e.g., "AsKs" ->
// "AKs", "KhAd" -> "AKo").
func NormalizeHand(hand string) (string, error) {
	hand = strings.TrimSpace(hand)

	// Two explicit cards.
	if len(hand) == 4 {
		c1, err := cards.ParseCard(hand[:2])
		if err != nil {
			return "", err
		}
		c2, err := cards.ParseCard(hand[2:])
		if err != nil {
			return "", err
		}
		if c1 == c2 {
			return "", fmt.Errorf("%w: duplicate card in %q", cards.ErrInvalidInput, hand)
		}
		return Combo{Card1: c1, Card2: c2}.Notation(), nil
	}

	if len(hand) < 2 || len(hand) > 3 {
		return "", fmt.Errorf("%w: hand notation %q", cards.ErrInvalidInput, hand)
	}

	r1, err := cards.ParseRank(hand[0])
	if err != nil {
		return "", err
	}
	r2, err := cards.ParseRank(hand[1])
	if err != nil {
		return "", err
	}
	if r2 > r1 {
		r1, r2 = r2, r1
	}

	if len(hand) == 2 {
		if r1 != r2 {
			return "", fmt.Errorf("%w: ambiguous hand %q (use 's' or 'o')", cards.ErrInvalidInput, hand)
		}
		return fmt.Sprintf("%s%s", r1, r2), nil
	}

	if r1 == r2 {
		return "", fmt.Errorf("%w: pair %q cannot be suited or offsuit", cards.ErrInvalidInput, hand)
	}
	switch hand[2] {
	case 's', 'S':
		return fmt.Sprintf("%s%ss", r1, r2), nil
	case 'o', 'O':
		return fmt.Sprintf("%s%so", r1, r2), nil
	default:
		return "", fmt.Errorf("%w: suited/offsuit indicator %c", cards.ErrInvalidInput, hand[2])
	}
}

// expandDashRange handles entries like "KK-JJ" or "AKs-ATs".
func expandDashRange(rangeStr string) ([]string, error) {
	parts := strings.Split(rangeStr, "-")
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: range %q (expected AA-KK form)", cards.ErrInvalidInput, rangeStr)
	}

	start, err := NormalizeHand(parts[0])
	if err != nil {
		return nil, err
	}
	end, err := NormalizeHand(parts[1])
	if err != nil {
		return nil, err
	}
	if (len(start) == 3) != (len(end) == 3) || (len(start) == 3 && start[2] != end[2]) {
		return nil, fmt.Errorf("%w: mismatched suitedness in %q", cards.ErrInvalidInput, rangeStr)
	}

	sr1, _ := cards.ParseRank(start[0])
	sr2, _ := cards.ParseRank(start[1])
	er1, _ := cards.ParseRank(end[0])
	er2, _ := cards.ParseRank(end[1])

	var out []string

	// Pair ranges run down the pair ladder.
	if sr1 == sr2 && er1 == er2 {
		if er1 > sr1 {
			sr1, er1 = er1, sr1
		}
		for r := int(sr1); r >= int(er1); r-- {
			out = append(out, fmt.Sprintf("%s%s", cards.Rank(r), cards.Rank(r)))
		}
		return out, nil
	}

	// Non-pair ranges vary the second rank under a fixed first rank.
	if sr1 != er1 {
		return nil, fmt.Errorf("%w: range %q (first rank must match)", cards.ErrInvalidInput, rangeStr)
	}
	if er2 > sr2 {
		sr2, er2 = er2, sr2
	}
	suffix := start[2:]
	for r := int(sr2); r >= int(er2); r-- {
		out = append(out, fmt.Sprintf("%s%s%s", sr1, cards.Rank(r), suffix))
	}
	return out, nil
}

// ExpandHand expands hand-class notation into its concrete combos, dropping
// any combo that shares a card with the blockers.
func ExpandHand(hand string, blockers []cards.Card) ([]Combo, error) {
	hand, err := NormalizeHand(hand)
	if err != nil {
		return nil, err
	}

	r1, _ := cards.ParseRank(hand[0])
	r2, _ := cards.ParseRank(hand[1])
	suited := len(hand) == 3 && hand[2] == 's'

	var out []Combo
	for _, c := range generateCombos(r1, r2, suited) {
		if !c.Conflicts(blockers) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Expand expands the whole range into weighted combos, spreading each
// entry's weight evenly across its surviving combos. Entries fully blocked
// by visible cards drop out, shrinking the weighting denominator.
func (hr HandRange) Expand(blockers []cards.Card) ([]WeightedCombo, error) {
	hands := make([]string, 0, len(hr))
	for h := range hr {
		hands = append(hands, h)
	}
	sort.Strings(hands)

	var out []WeightedCombo
	for _, h := range hands {
		w := hr[h]
		if w <= 0 {
			continue
		}
		combos, err := ExpandHand(h, blockers)
		if err != nil {
			return nil, err
		}
		if len(combos) == 0 {
			continue
		}
		per := w / float64(len(combos))
		for _, c := range combos {
			out = append(out, WeightedCombo{Combo: c, Weight: per})
		}
	}
	return out, nil
}

// generateCombos generates all combos for a hand class: 6 for pairs, 4 for
// suited, 12 for offsuit.
func generateCombos(rank1, rank2 cards.Rank, suited bool) []Combo {
	var combos []Combo
	suits := cards.Suits()

	if rank1 == rank2 {
		for i := 0; i < len(suits); i++ {
			for j := i + 1; j < len(suits); j++ {
				combos = append(combos, Combo{
					Card1: cards.NewCard(rank1, suits[i]),
					Card2: cards.NewCard(rank2, suits[j]),
				})
			}
		}
	} else if suited {
		for _, suit := range suits {
			combos = append(combos, Combo{
				Card1: cards.NewCard(rank1, suit),
				Card2: cards.NewCard(rank2, suit),
			})
		}
	} else {
		for _, suit1 := range suits {
			for _, suit2 := range suits {
				if suit1 != suit2 {
					combos = append(combos, Combo{
						Card1: cards.NewCard(rank1, suit1),
						Card2: cards.NewCard(rank2, suit2),
					})
				}
			}
		}
	}

	return combos
}
