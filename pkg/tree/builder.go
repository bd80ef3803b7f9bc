package tree

import (
	"fmt"

	"github.com/cardroom/holdem-engine/pkg/cards"
	"github.com/cardroom/holdem-engine/pkg/notation"
)

// Builder constructs betting trees. The tree is combo-independent: showdown
// terminals carry no payoff and are valued at traversal time against the
// sampled hands.
type Builder struct {
	Config Config
}

// NewBuilder creates a tree builder with the given action config.
func NewBuilder(config Config) *Builder {
	return &Builder{Config: config}
}

// Build constructs the tree for a heads-up postflop spot. Player 0 acts
// first on every street.
func (b *Builder) Build(board []cards.Card, pot float64, stacks [2]float64) (*Node, error) {
	if len(board) < 3 || len(board) > 5 {
		return nil, fmt.Errorf("%w: postflop board needs 3-5 cards, got %d", cards.ErrInvalidInput, len(board))
	}
	seen := make(map[cards.Card]bool, len(board))
	for _, c := range board {
		if seen[c] {
			return nil, fmt.Errorf("%w: duplicate board card %s", cards.ErrInvalidInput, c)
		}
		seen[c] = true
	}
	if pot <= 0 {
		return nil, fmt.Errorf("%w: pot must be positive", cards.ErrInvalidInput)
	}

	street := notation.StreetForBoard(len(board))
	return b.buildNode(board, street, pot, stacks, [2]float64{0, 0}, 0, 0, "", nil, 0), nil
}

// buildNode recursively builds one node.
// lastAction is the previous action on the current street, nil at a street
// open. history accumulates the action string across streets.
func (b *Builder) buildNode(
	board []cards.Card,
	street notation.Street,
	pot float64,
	stacks, bets [2]float64,
	toAct, raisesThisStreet int,
	history string,
	lastAction *notation.Action,
	depth int,
) *Node {
	// Depth cap: truncate into a showdown terminal to bound tree size.
	if depth >= b.Config.MaxDepth {
		return newShowdownNode(board, street, pot, stacks)
	}

	actions := GenerateActions(pot, stacks, bets, toAct, raisesThisStreet, b.Config)
	if len(actions) == 0 {
		// Acting player is all-in with nothing to face; run it out.
		return newShowdownNode(board, street, pot, stacks)
	}

	node := &Node{
		Type:       Decision,
		Player:     toAct,
		Pot:        pot,
		Stacks:     stacks,
		Bets:       bets,
		Street:     street,
		Board:      board,
		Actions:    actions,
		Children:   make(map[string]*Node, len(actions)),
		History:    history,
		FoldWinner: -1,
	}

	for _, action := range actions {
		child := b.applyAction(node, action, raisesThisStreet, lastAction, depth)
		node.Children[ActionKey(action)] = child
	}

	return node
}

// applyAction advances the state by one action and builds the resulting
// subtree.
func (b *Builder) applyAction(n *Node, action notation.Action, raisesThisStreet int, lastAction *notation.Action, depth int) *Node {
	pot := n.Pot
	stacks := n.Stacks
	bets := n.Bets
	toAct := n.Player
	history := n.History + action.String()

	switch action.Type {
	case notation.Fold:
		return &Node{
			Type:       Terminal,
			Player:     -1,
			Pot:        pot,
			Stacks:     stacks,
			Street:     n.Street,
			Board:      n.Board,
			History:    history,
			FoldWinner: 1 - toAct,
		}

	case notation.Call:
		call := bets[1-toAct] - bets[toAct]
		if call > stacks[toAct] {
			call = stacks[toAct]
		}
		pot += call
		stacks[toAct] -= call
		bets[toAct] += call
		return b.closeStreet(n.Board, n.Street, pot, stacks, history)

	case notation.Check:
		if lastAction != nil && lastAction.Type == notation.Check {
			// Check behind closes the street.
			return b.closeStreet(n.Board, n.Street, pot, stacks, history)
		}
		return b.buildNode(n.Board, n.Street, pot, stacks, bets, 1-toAct, raisesThisStreet, history, &action, depth+1)

	case notation.Bet, notation.Raise:
		amount := action.Amount
		if amount > stacks[toAct] {
			amount = stacks[toAct]
		}
		pot += amount
		stacks[toAct] -= amount
		bets[toAct] += amount
		return b.buildNode(n.Board, n.Street, pot, stacks, bets, 1-toAct, raisesThisStreet+1, history, &action, depth+1)
	}

	// Unreachable with a well-formed action set.
	return newShowdownNode(n.Board, n.Street, pot, stacks)
}

// closeStreet advances to the next betting round with bets reset, or to a
// showdown terminal after river action (or when both players are all-in).
func (b *Builder) closeStreet(board []cards.Card, street notation.Street, pot float64, stacks [2]float64, history string) *Node {
	if street == notation.River || (stacks[0] <= minChips && stacks[1] <= minChips) {
		return newShowdownNode(board, street, pot, stacks)
	}
	// No chance node is inserted here: the board is fixed by config, and
	// unseen runout cards are averaged over inside the showdown oracle.
	return b.buildNode(board, street+1, pot, stacks, [2]float64{0, 0}, 0, 0, history+"/", nil, 0)
}

func newShowdownNode(board []cards.Card, street notation.Street, pot float64, stacks [2]float64) *Node {
	return &Node{
		Type:       Terminal,
		Player:     -1,
		Pot:        pot,
		Stacks:     stacks,
		Street:     street,
		Board:      board,
		FoldWinner: -1,
		Showdown:   true,
	}
}
