// Package board classifies community-card texture and enumerates draws.
// Everything here is pure and deterministic: textures are recomputed from
// scratch on every board change, never mutated incrementally.
package board

import (
	"fmt"
	"sort"

	"github.com/cardroom/holdem-engine/pkg/cards"
)

// TextureLabel buckets a board into a coarse wetness class.
type TextureLabel string

const (
	TextureDry     TextureLabel = "dry"
	TextureSemiWet TextureLabel = "semi-wet"
	TextureWet     TextureLabel = "wet"
)

// DangerLevel grades how threatening the board is to one-pair hands.
type DangerLevel string

const (
	DangerLow    DangerLevel = "low"
	DangerMedium DangerLevel = "medium"
	DangerHigh   DangerLevel = "high"
)

// Texture is the stateless classification of 0-5 community cards.
type Texture struct {
	Paired bool
	Trips  bool

	Monotone bool // 3-card board, all one suit
	TwoTone  bool
	Rainbow  bool

	// FlushSuit is set when three or more board cards share a suit (a
	// flush is possible); FlushDrawSuit when exactly two do.
	FlushSuit     cards.Suit
	FlushPossible bool
	FlushDrawSuit cards.Suit
	FlushDraw     bool

	// Connectivity is the sum of gaps between consecutive sorted unique
	// rank values; lower means more connected. The wheel rule caps gaps
	// when an Ace-low straight is in reach.
	Connectivity int

	OESDPossible    bool
	GutshotPossible bool

	// Wetness is the weighted factor count behind Label and Danger.
	Wetness int
	Label   TextureLabel
	Danger  DangerLevel
}

// AnalyzeTexture classifies 0-5 community cards.
func AnalyzeTexture(board []cards.Card) (Texture, error) {
	if len(board) > 5 {
		return Texture{}, fmt.Errorf("%w: at most 5 community cards, got %d", cards.ErrInvalidInput, len(board))
	}
	seen := make(map[cards.Card]bool, len(board))
	for _, c := range board {
		if seen[c] {
			return Texture{}, fmt.Errorf("%w: duplicate card %s", cards.ErrInvalidInput, c)
		}
		seen[c] = true
	}

	var t Texture
	if len(board) == 0 {
		t.Label = TextureDry
		t.Danger = DangerLow
		return t, nil
	}

	var rankCounts [13]int
	var suitCounts [4]int
	for _, c := range board {
		rankCounts[c.Rank]++
		suitCounts[c.Suit]++
	}

	maxRank := 0
	for _, n := range rankCounts {
		if n > maxRank {
			maxRank = n
		}
	}
	t.Paired = maxRank >= 2
	t.Trips = maxRank >= 3

	maxSuit := 0
	for suit, n := range suitCounts {
		if n > maxSuit {
			maxSuit = n
		}
		if n >= 3 {
			t.FlushPossible = true
			t.FlushSuit = cards.Suit(suit)
		}
		if n == 2 {
			t.FlushDraw = true
			t.FlushDrawSuit = cards.Suit(suit)
		}
	}
	t.Monotone = len(board) == 3 && maxSuit == 3
	t.TwoTone = maxSuit == 2
	t.Rainbow = maxSuit <= 1

	values := uniqueValues(rankCounts)
	t.Connectivity = connectivity(values, rankCounts[cards.Ace] > 0)
	t.OESDPossible, t.GutshotPossible = straightWindows(values, rankCounts[cards.Ace] > 0)

	// Fixed wetness-factor weighting; the thresholds are documented
	// constants, nothing learned.
	w := 0
	if t.Monotone {
		w += 4
	}
	if t.TwoTone {
		w++
	}
	if t.OESDPossible {
		w++
		if t.TwoTone {
			w++
		}
	}
	if len(values) >= 3 && t.Connectivity <= 2 {
		w += 2
	}
	if t.Paired && w >= 2 {
		w++
	}
	t.Wetness = w

	switch {
	case w <= 1:
		t.Label = TextureDry
		t.Danger = DangerLow
	case w <= 3:
		t.Label = TextureSemiWet
		t.Danger = DangerMedium
	default:
		t.Label = TextureWet
		t.Danger = DangerHigh
	}

	return t, nil
}

// uniqueValues returns the distinct rank values present, ascending.
func uniqueValues(rankCounts [13]int) []int {
	values := make([]int, 0, 13)
	for r, n := range rankCounts {
		if n > 0 {
			values = append(values, cards.Rank(r).Value())
		}
	}
	sort.Ints(values)
	return values
}

// connectivity sums the gaps between consecutive sorted unique rank
// values. When an Ace sits next to wheel cards, the Ace also counts as 1
// and the cheaper of the two readings wins.
func connectivity(values []int, hasAce bool) int {
	if len(values) < 2 {
		return 0
	}
	sum := gapSum(values)
	if hasAce && values[0] <= 5 {
		low := append([]int{1}, values[:len(values)-1]...)
		if s := gapSum(low); s < sum {
			sum = s
		}
	}
	return sum
}

func gapSum(values []int) int {
	sum := 0
	for i := 1; i < len(values); i++ {
		sum += values[i] - values[i-1] - 1
	}
	return sum
}

// straightWindows slides a 4-value window over the sorted unique rank
// values: a window spanning 3 is four-in-a-row (open-ended), spanning 4
// leaves one inside hole (gutshot). Edge windows against the Ace are
// one-ended and count as gutshots.
func straightWindows(values []int, hasAce bool) (oesd, gutshot bool) {
	vals := values
	if hasAce && len(values) > 0 && values[0] <= 5 {
		vals = append([]int{1}, values...)
	}
	for i := 0; i+3 < len(vals); i++ {
		span := vals[i+3] - vals[i]
		switch {
		case span == 3:
			if vals[i] == 1 || vals[i+3] == 14 {
				gutshot = true
			} else {
				oesd = true
			}
		case span == 4:
			gutshot = true
		}
	}
	return oesd, gutshot
}
