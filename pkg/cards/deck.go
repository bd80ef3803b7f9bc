package cards

import (
	"fmt"

	"lukechampine.com/frand"
)

// Rand is the random source consumed by the engine. Production code uses
// frand; tests inject a seeded source to get reproducible simulations.
type Rand interface {
	Intn(n int) int
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// DefaultRand returns the production random source.
func DefaultRand() Rand {
	return frand.New()
}

// Deck is a set of cards remaining to be dealt. It is always derived from
// the full 52-card deck minus the cards already visible.
type Deck struct {
	cards []Card
}

// NewDeck builds a deck of the 52 unique cards minus the given known cards.
// Duplicate known cards are an input error.
func NewDeck(known ...Card) (*Deck, error) {
	seen := make(map[Card]bool, len(known))
	for _, c := range known {
		if seen[c] {
			return nil, fmt.Errorf("%w: duplicate card %s", ErrInvalidInput, c)
		}
		seen[c] = true
	}

	d := &Deck{cards: make([]Card, 0, 52-len(known))}
	for _, rank := range Ranks() {
		for _, suit := range Suits() {
			c := Card{Rank: rank, Suit: suit}
			if !seen[c] {
				d.cards = append(d.cards, c)
			}
		}
	}
	return d, nil
}

// Remaining returns how many undealt cards are left.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining cards.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Draw deals n cards without replacement using a partial Fisher-Yates
// shuffle over the remaining cards. The deck itself is not consumed; each
// call draws from the full remaining set, so one Deck serves many trials.
func (d *Deck) Draw(n int, rng Rand, buf []Card) ([]Card, error) {
	if n > len(d.cards) {
		return nil, fmt.Errorf("%w: need %d cards, %d remain", ErrDeckExhausted, n, len(d.cards))
	}
	if cap(buf) < n {
		buf = make([]Card, n)
	}
	buf = buf[:n]

	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(d.cards)-i)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
		buf[i] = d.cards[i]
	}
	return buf, nil
}
