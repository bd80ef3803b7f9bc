package notation

import (
	"fmt"

	"github.com/cardroom/holdem-engine/pkg/cards"
)

// ActionType represents a poker action
type ActionType uint8

const (
	Check ActionType = iota
	Call
	Bet
	Raise
	Fold
)

// String returns the action type as a string
func (a ActionType) String() string {
	switch a {
	case Check:
		return "check"
	case Call:
		return "call"
	case Bet:
		return "bet"
	case Raise:
		return "raise"
	case Fold:
		return "fold"
	default:
		return "unknown"
	}
}

// Action represents a poker action with an optional amount (for bets/raises)
type Action struct {
	Type   ActionType
	Amount float64 // In big blinds (0 for check/call/fold)
}

// String returns the action in notation format (e.g., "c", "b3.5", "r9")
func (a Action) String() string {
	switch a.Type {
	case Check:
		return "x"
	case Call:
		return "c"
	case Bet:
		return fmt.Sprintf("b%.1f", a.Amount)
	case Raise:
		return fmt.Sprintf("r%.1f", a.Amount)
	case Fold:
		return "f"
	default:
		return "?"
	}
}

// HistoryString joins an action sequence into the compact form used in
// info-set keys (e.g., "b5.0c" or "xx").
func HistoryString(history []Action) string {
	s := ""
	for _, a := range history {
		s += a.String()
	}
	return s
}

// Street represents which betting round we're on
type Street uint8

const (
	Preflop Street = iota
	Flop
	Turn
	River
)

// String returns the street name
func (s Street) String() string {
	switch s {
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	default:
		return "unknown"
	}
}

// StreetForBoard determines the street from the number of community cards.
func StreetForBoard(boardSize int) Street {
	switch boardSize {
	case 3:
		return Flop
	case 4:
		return Turn
	case 5:
		return River
	default:
		return Preflop
	}
}

// Combo represents a specific 2-card combination (hole cards)
type Combo struct {
	Card1 cards.Card
	Card2 cards.Card
}

// String returns the combo in standard notation (e.g., "AsKh")
func (c Combo) String() string {
	return fmt.Sprintf("%s%s", c.Card1, c.Card2)
}

// Cards returns the combo as a 2-card slice.
func (c Combo) Cards() []cards.Card {
	return []cards.Card{c.Card1, c.Card2}
}

// Conflicts reports whether the combo shares a card with any of the given
// cards.
func (c Combo) Conflicts(blockers []cards.Card) bool {
	for _, b := range blockers {
		if c.Card1 == b || c.Card2 == b {
			return true
		}
	}
	return false
}

// Notation returns the combo's hand-class notation ("AA", "AKs", "87o").
func (c Combo) Notation() string {
	hi, lo := c.Card1, c.Card2
	if lo.Rank > hi.Rank {
		hi, lo = lo, hi
	}
	if hi.Rank == lo.Rank {
		return fmt.Sprintf("%s%s", hi.Rank, lo.Rank)
	}
	if hi.Suit == lo.Suit {
		return fmt.Sprintf("%s%ss", hi.Rank, lo.Rank)
	}
	return fmt.Sprintf("%s%so", hi.Rank, lo.Rank)
}
