// Package solver approximates GTO mixed strategies for a constrained
// heads-up betting subgame by Counterfactual Regret Minimization.
package solver

import (
	"io"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"

	"github.com/cardroom/holdem-engine/pkg/cards"
	"github.com/cardroom/holdem-engine/pkg/equity"
	"github.com/cardroom/holdem-engine/pkg/notation"
	"github.com/cardroom/holdem-engine/pkg/tree"
)

// Config fixes one solve: the spot, the action abstraction, and the
// iteration budget. Callers bound iterations, depth and sample counts to
// keep cost predictable; the engine enforces no timeout of its own.
type Config struct {
	Ranges [2]notation.HandRange
	Board  []cards.Card

	Pot       float64
	StackSize float64 // per player, in big blinds

	BetSizes           []float64
	MaxRaisesPerStreet int
	MaxDepth           int

	Iterations int

	// MaxCombosPerRange caps the representative hands sampled from each
	// range per iteration.
	MaxCombosPerRange int

	// ShowdownSamples is the oracle sample count at non-river showdowns.
	ShowdownSamples int

	Rng cards.Rand

	// LogEvery emits a progress log line every N iterations (0 disables).
	LogEvery int

	// IterationLog, when set, receives a YAML document per logged
	// iteration for convergence debugging.
	IterationLog io.Writer
}

// ActionProb is one entry of a mixed strategy.
type ActionProb struct {
	Action      notation.Action `json:"action"`
	Probability float64         `json:"probability"`
	EV          float64         `json:"ev"`
}

// Result is the output of a solve: the time-averaged strategy for every
// visited info set, plus convergence metadata.
type Result struct {
	Strategies map[string][]ActionProb

	// Exploitability is a coarse proxy derived from cross-infoset
	// strategy variance, not an exact best-response computation.
	Exploitability float64

	Iterations int
	InfoSets   int
	Elapsed    time.Duration
}

// Solver owns the info-set table for exactly one Solve call. A fresh
// Solver per solve is what keeps stale entries from leaking between runs.
type Solver struct {
	cfg   Config
	table map[string]*InfoSet
	calc  *equity.Calculator
	rng   cards.Rand
	root  *tree.Node

	// Showdown equities are Monte Carlo estimates; caching per combo pair
	// keeps the oracle consistent across iterations.
	oracle map[string]float64
}

// New creates a solver for one solve call, filling config defaults.
func New(cfg Config) *Solver {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 10
	}
	if cfg.MaxRaisesPerStreet <= 0 {
		cfg.MaxRaisesPerStreet = 2
	}
	if len(cfg.BetSizes) == 0 {
		cfg.BetSizes = []float64{0.5, 0.75, 1.5}
	}
	if cfg.MaxCombosPerRange <= 0 {
		cfg.MaxCombosPerRange = 16
	}
	if cfg.ShowdownSamples <= 0 {
		cfg.ShowdownSamples = 64
	}
	if cfg.Iterations <= 0 {
		cfg.Iterations = 1000
	}
	rng := cfg.Rng
	if rng == nil {
		rng = cards.DefaultRand()
	}
	return &Solver{
		cfg:    cfg,
		table:  make(map[string]*InfoSet),
		calc:   equity.NewCalculatorWithRand(rng),
		rng:    rng,
		oracle: make(map[string]float64),
	}
}

// Solve builds the betting tree and runs CFR. An unsatisfiable config
// (empty range, everything blocked) yields a degenerate result with an
// empty strategy table rather than an error: card-conflict filtering
// happens per hand pair, not globally up front.
func (s *Solver) Solve() (*Result, error) {
	start := time.Now()

	builder := tree.NewBuilder(tree.Config{
		BetSizes:           s.cfg.BetSizes,
		MaxRaisesPerStreet: s.cfg.MaxRaisesPerStreet,
		MaxDepth:           s.cfg.MaxDepth,
	})
	root, err := builder.Build(s.cfg.Board, s.cfg.Pot, [2]float64{s.cfg.StackSize, s.cfg.StackSize})
	if err != nil {
		return nil, err
	}
	s.root = root

	combos0 := s.representativeCombos(s.cfg.Ranges[0])
	combos1 := s.representativeCombos(s.cfg.Ranges[1])

	log.Info().
		Int("treeNodes", root.CountNodes()).
		Int("combos0", len(combos0)).
		Int("combos1", len(combos1)).
		Int("iterations", s.cfg.Iterations).
		Msg("starting solve")

	for it := 0; it < s.cfg.Iterations; it++ {
		for _, c0 := range combos0 {
			for _, c1 := range combos1 {
				if c1.Conflicts(c0.Cards()) {
					continue
				}
				s.cfr(root, [2]notation.Combo{c0, c1}, 1.0, 1.0)
			}
		}
		s.logIteration(it)
	}

	return s.buildResult(start), nil
}

// representativeCombos expands a range against the board and keeps the
// top-weighted combos up to the configured cap.
func (s *Solver) representativeCombos(hr notation.HandRange) []notation.Combo {
	if len(hr) == 0 {
		return nil
	}
	weighted, err := hr.Expand(s.cfg.Board)
	if err != nil {
		return nil
	}
	sort.SliceStable(weighted, func(i, j int) bool {
		return weighted[i].Weight > weighted[j].Weight
	})
	if len(weighted) > s.cfg.MaxCombosPerRange {
		weighted = weighted[:s.cfg.MaxCombosPerRange]
	}
	combos := make([]notation.Combo, len(weighted))
	for i, wc := range weighted {
		combos[i] = wc.Combo
	}
	return combos
}

// cfr walks the tree for one concrete hand pair, updating regrets and
// strategy sums. reach0/reach1 are each player's probability of playing to
// this node. Returns the node value for both players.
func (s *Solver) cfr(node *tree.Node, combos [2]notation.Combo, reach0, reach1 float64) [2]float64 {
	if node.Type == tree.Terminal {
		return s.terminalValue(node, combos)
	}

	player := node.Player
	is, ok := s.table[node.InfoSetKey(combos[player].Notation())]
	if !ok {
		is = newInfoSet(node.InfoSetKey(combos[player].Notation()), node.Actions)
		s.table[is.Key] = is
	}

	strategy := is.CurrentStrategy()
	numActions := len(node.Actions)
	actionValues := make([][2]float64, numActions)
	var nodeValue [2]float64

	for i, action := range node.Actions {
		child := node.Children[tree.ActionKey(action)]
		var childValue [2]float64
		if player == 0 {
			childValue = s.cfr(child, combos, reach0*strategy[i], reach1)
		} else {
			childValue = s.cfr(child, combos, reach0, reach1*strategy[i])
		}
		actionValues[i] = childValue
		nodeValue[0] += strategy[i] * childValue[0]
		nodeValue[1] += strategy[i] * childValue[1]
	}

	oppReach := reach1
	ownReach := reach0
	if player == 1 {
		oppReach = reach0
		ownReach = reach1
	}

	regrets := make([]float64, numActions)
	values := make([]float64, numActions)
	for i := 0; i < numActions; i++ {
		values[i] = actionValues[i][player]
		regrets[i] = oppReach * (values[i] - nodeValue[player])
	}
	is.addRegrets(regrets)
	is.addStrategy(strategy, ownReach)
	is.addValues(values, oppReach)

	return nodeValue
}

// terminalValue resolves a terminal node for the given hand pair: fold
// terminals pay the pot to the non-folder; showdowns ask the equity oracle.
func (s *Solver) terminalValue(node *tree.Node, combos [2]notation.Combo) [2]float64 {
	if !node.Showdown {
		var v [2]float64
		v[node.FoldWinner] = node.Pot
		return v
	}

	key := combos[0].String() + combos[1].String()
	eq, ok := s.oracle[key]
	if !ok {
		var err error
		eq, err = s.calc.HeadToHead(combos[0], combos[1], s.cfg.Board, s.cfg.ShowdownSamples)
		if err != nil {
			// Conflicting pairs are filtered before traversal, so this
			// only fires on a genuinely broken configuration; treat the
			// showdown as a chop.
			eq = 0.5
		}
		s.oracle[key] = eq
	}
	return [2]float64{node.Pot * eq, node.Pot * (1 - eq)}
}

// buildResult snapshots averaged strategies and convergence metadata.
func (s *Solver) buildResult(start time.Time) *Result {
	strategies := make(map[string][]ActionProb, len(s.table))
	var allProbs []float64

	for key, is := range s.table {
		avg := is.AverageStrategy()
		probs := make([]ActionProb, len(is.Actions))
		for i, action := range is.Actions {
			probs[i] = ActionProb{
				Action:      action,
				Probability: avg[i],
				EV:          is.meanValue(i),
			}
			allProbs = append(allProbs, avg[i])
		}
		strategies[key] = probs
	}

	exploit := 0.0
	if len(allProbs) > 1 {
		exploit = math.Sqrt(stat.Variance(allProbs, nil))
	}

	res := &Result{
		Strategies:     strategies,
		Exploitability: exploit,
		Iterations:     s.cfg.Iterations,
		InfoSets:       len(s.table),
		Elapsed:        time.Since(start),
	}

	log.Info().
		Int("infoSets", res.InfoSets).
		Float64("exploitability", res.Exploitability).
		Dur("elapsed", res.Elapsed).
		Msg("solve finished")

	return res
}

// logIteration handles progress and YAML iteration logging.
func (s *Solver) logIteration(it int) {
	if s.cfg.LogEvery <= 0 || (it+1)%s.cfg.LogEvery != 0 {
		return
	}
	absRegret := 0.0
	count := 0
	for _, is := range s.table {
		for _, r := range is.RegretSum {
			absRegret += math.Abs(r)
			count++
		}
	}
	avg := 0.0
	if count > 0 {
		avg = absRegret / float64(count)
	}

	log.Debug().Int("iteration", it+1).Int("infoSets", len(s.table)).
		Float64("avgAbsRegret", avg).Msg("cfr progress")

	if s.cfg.IterationLog != nil {
		writeIterationLog(s.cfg.IterationLog, IterationLog{
			Iteration:    it + 1,
			InfoSets:     len(s.table),
			AvgAbsRegret: avg,
		})
	}
}
