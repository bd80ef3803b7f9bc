// Package tree builds the bounded extensive-form betting tree the solver
// walks. Nodes form a cycle-free tree owned by the root; children are never
// shared.
package tree

import (
	"fmt"

	"github.com/cardroom/holdem-engine/pkg/cards"
	"github.com/cardroom/holdem-engine/pkg/notation"
)

// NodeType separates decision points from terminals.
type NodeType uint8

const (
	Decision NodeType = iota
	Terminal
)

// Node is a single state in the betting tree. Terminal nodes carry either a
// definite fold winner or are marked Showdown, in which case their value is
// resolved at traversal time against the concrete sampled hands.
type Node struct {
	Type   NodeType
	Player int // acting player at decision nodes, -1 at terminals

	Pot    float64
	Stacks [2]float64
	Bets   [2]float64 // chips committed this street
	Street notation.Street
	Board  []cards.Card

	Actions  []notation.Action
	Children map[string]*Node

	// History is the compact action string from the root, with '/'
	// between streets. It is the history component of info-set keys.
	History string

	// FoldWinner is the index of the player awarded the pot after a fold,
	// or -1 when the terminal is a showdown.
	FoldWinner int
	Showdown   bool
}

// ActionKey returns the string key for an action in the Children map.
func ActionKey(a notation.Action) string {
	return a.String()
}

// InfoSetKey builds the information-set key for the player acting at this
// node holding the given hand class. Format:
// "player|hand|board|history".
func (n *Node) InfoSetKey(hand string) string {
	return fmt.Sprintf("%d|%s|%s|%s", n.Player, hand, cards.FormatCards(n.Board), n.History)
}

// NumChildren returns the number of child nodes.
func (n *Node) NumChildren() int {
	return len(n.Children)
}

// String returns a human-readable representation of the node.
func (n *Node) String() string {
	if n.Type == Terminal {
		if n.Showdown {
			return fmt.Sprintf("Terminal{showdown pot=%.1fbb}", n.Pot)
		}
		return fmt.Sprintf("Terminal{fold pot=%.1fbb winner=%d}", n.Pot, n.FoldWinner)
	}
	return fmt.Sprintf("Decision{player=%d pot=%.1fbb street=%s actions=%d history=%q}",
		n.Player, n.Pot, n.Street, len(n.Actions), n.History)
}

// CountNodes walks the subtree and returns its size.
func (n *Node) CountNodes() int {
	count := 1
	for _, child := range n.Children {
		count += child.CountNodes()
	}
	return count
}
