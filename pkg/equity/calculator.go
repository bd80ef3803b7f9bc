// Package equity estimates win/tie/lose distributions by Monte Carlo
// simulation. Results are statistical estimates: there is no fixed seed in
// production, and precision improves with sample count.
package equity

import (
	"fmt"
	"math"
	"runtime"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/cardroom/holdem-engine/pkg/cards"
	"github.com/cardroom/holdem-engine/pkg/notation"
)

// Result is the outcome of an equity calculation. Win, Tie and Lose are
// percentages summing to ~100 within rounding.
type Result struct {
	Win     float64
	Tie     float64
	Lose    float64
	Samples int
	// StdErr is the standard error of the win percentage, in percentage
	// points. Callers wanting tighter confidence request more samples.
	StdErr float64
}

// Equity returns the pot share the hero expects (win + tie/2), as a
// fraction in [0,1].
func (r Result) Equity() float64 {
	return (r.Win + r.Tie/2) / 100
}

// Input describes one equity calculation.
type Input struct {
	Hero           []cards.Card
	Community      []cards.Card // 0-5 cards
	NumOpponents   int          // at least 1
	NumSimulations int
	Villain        []cards.Card // optional: one revealed opponent
}

// Calculator runs Monte Carlo equity trials.
type Calculator struct {
	rng      cards.Rand
	parallel int
}

// NewCalculator creates a calculator with the production random source and
// parallel range evaluation.
func NewCalculator() *Calculator {
	return &Calculator{rng: cards.DefaultRand(), parallel: runtime.NumCPU()}
}

// NewCalculatorWithRand creates a calculator driven by the given source.
// Evaluation is serial so a seeded source yields reproducible results.
func NewCalculatorWithRand(rng cards.Rand) *Calculator {
	return &Calculator{rng: rng, parallel: 1}
}

// Calculate estimates the hero's equity over NumSimulations sampled
// runouts. Each trial completes the board, deals every unknown opponent,
// and evaluates all 7-card hands: the hero wins only if no opponent
// strictly beats them, and ties when the best of the field only matches.
func (c *Calculator) Calculate(in Input) (Result, error) {
	if len(in.Hero) != 2 {
		return Result{}, fmt.Errorf("%w: hero needs exactly 2 cards, got %d", cards.ErrInvalidInput, len(in.Hero))
	}
	if len(in.Community) > 5 {
		return Result{}, fmt.Errorf("%w: at most 5 community cards, got %d", cards.ErrInvalidInput, len(in.Community))
	}
	if len(in.Villain) != 0 && len(in.Villain) != 2 {
		return Result{}, fmt.Errorf("%w: villain needs exactly 2 cards, got %d", cards.ErrInvalidInput, len(in.Villain))
	}
	if in.NumSimulations <= 0 {
		return Result{}, fmt.Errorf("%w: simulations must be positive", cards.ErrInvalidInput)
	}

	opponents := in.NumOpponents
	if opponents < 1 {
		opponents = 1
	}
	unknown := opponents
	if len(in.Villain) == 2 {
		unknown--
	}

	known := make([]cards.Card, 0, 9)
	known = append(known, in.Hero...)
	known = append(known, in.Community...)
	known = append(known, in.Villain...)

	deck, err := cards.NewDeck(known...)
	if err != nil {
		return Result{}, err
	}

	// DeckExhausted is checked up front, not discovered mid-simulation.
	need := (5 - len(in.Community)) + 2*unknown
	if need > deck.Remaining() {
		return Result{}, fmt.Errorf("%w: trial needs %d cards, %d unseen remain",
			cards.ErrDeckExhausted, need, deck.Remaining())
	}

	return c.runTrials(in, deck, unknown, need, c.rng), nil
}

// runTrials executes the sampling loop against a prepared deck.
func (c *Calculator) runTrials(in Input, deck *cards.Deck, unknown, need int, rng cards.Rand) Result {
	toCome := 5 - len(in.Community)
	wins, ties := 0, 0

	board := make([]cards.Card, 0, 5)
	hand7 := make([]cards.Card, 0, 7)
	drawBuf := make([]cards.Card, need)

	for trial := 0; trial < in.NumSimulations; trial++ {
		drawn, _ := deck.Draw(need, rng, drawBuf)

		board = append(board[:0], in.Community...)
		board = append(board, drawn[:toCome]...)

		hand7 = append(hand7[:0], in.Hero...)
		hand7 = append(hand7, board...)
		hero, _ := cards.Evaluate(hand7)

		beaten, tied := false, false
		if len(in.Villain) == 2 {
			hand7 = append(hand7[:0], in.Villain...)
			hand7 = append(hand7, board...)
			opp, _ := cards.Evaluate(hand7)
			switch cards.Compare(opp, hero) {
			case 1:
				beaten = true
			case 0:
				tied = true
			}
		}
		for o := 0; o < unknown && !beaten; o++ {
			hand7 = append(hand7[:0], drawn[toCome+2*o], drawn[toCome+2*o+1])
			hand7 = append(hand7, board...)
			opp, _ := cards.Evaluate(hand7)
			switch cards.Compare(opp, hero) {
			case 1:
				beaten = true
			case 0:
				tied = true
			}
		}

		if !beaten {
			if tied {
				ties++
			} else {
				wins++
			}
		}
	}

	n := float64(in.NumSimulations)
	winFrac := float64(wins) / n
	return Result{
		Win:     winFrac * 100,
		Tie:     float64(ties) / n * 100,
		Lose:    float64(in.NumSimulations-wins-ties) / n * 100,
		Samples: in.NumSimulations,
		StdErr:  math.Sqrt(winFrac*(1-winFrac)/n) * 100,
	}
}

// HeadToHead returns the hero's equity fraction against one concrete
// villain combo. River boards are resolved exactly; earlier streets sample
// the remaining runouts. This is the solver's showdown oracle.
func (c *Calculator) HeadToHead(hero, villain notation.Combo, board []cards.Card, samples int) (float64, error) {
	if len(board) == 5 {
		hand7 := append(hero.Cards(), board...)
		h, err := cards.Evaluate(hand7)
		if err != nil {
			return 0, err
		}
		v, err := cards.Evaluate(append(villain.Cards(), board...))
		if err != nil {
			return 0, err
		}
		switch cards.Compare(h, v) {
		case 1:
			return 1, nil
		case -1:
			return 0, nil
		default:
			return 0.5, nil
		}
	}

	res, err := c.Calculate(Input{
		Hero:           hero.Cards(),
		Community:      board,
		NumOpponents:   1,
		NumSimulations: samples,
		Villain:        villain.Cards(),
	})
	if err != nil {
		return 0, err
	}
	return res.Equity(), nil
}

// CalculateVsRange estimates equity against a weighted range. Every range
// entry expands to its non-conflicting combos; each combo gets simsPerCombo
// trials as a single revealed opponent, and contributes entryWeight divided
// by the entry's surviving combo count to the weighted average.
//
// This is the most expensive single call in the engine; cost scales with
// range size times simsPerCombo, so callers budget it explicitly. Combos
// run in parallel with per-worker accumulators merged at the end.
func (c *Calculator) CalculateVsRange(hero, board []cards.Card, hr notation.HandRange, simsPerCombo int) (Result, error) {
	blockers := append(append([]cards.Card{}, hero...), board...)
	combos, err := hr.Expand(blockers)
	if err != nil {
		return Result{}, err
	}
	if len(combos) == 0 {
		return Result{}, fmt.Errorf("%w: range is empty after removing blocked combos", cards.ErrInvalidInput)
	}

	log.Debug().Int("combos", len(combos)).Int("simsPerCombo", simsPerCombo).
		Msg("range equity calculation")

	wins := make([]float64, len(combos))
	ties := make([]float64, len(combos))
	loses := make([]float64, len(combos))
	weights := make([]float64, len(combos))

	run := func(i int, rng cards.Rand) error {
		wc := combos[i]
		calc := &Calculator{rng: rng, parallel: 1}
		res, err := calc.Calculate(Input{
			Hero:           hero,
			Community:      board,
			NumOpponents:   1,
			NumSimulations: simsPerCombo,
			Villain:        wc.Combo.Cards(),
		})
		if err != nil {
			return err
		}
		wins[i], ties[i], loses[i], weights[i] = res.Win, res.Tie, res.Lose, wc.Weight
		return nil
	}

	if c.parallel <= 1 {
		for i := range combos {
			if err := run(i, c.rng); err != nil {
				return Result{}, err
			}
		}
	} else {
		var g errgroup.Group
		g.SetLimit(c.parallel)
		for i := range combos {
			i := i
			g.Go(func() error { return run(i, cards.DefaultRand()) })
		}
		if err := g.Wait(); err != nil {
			return Result{}, err
		}
	}

	res := Result{
		Win:     stat.Mean(wins, weights),
		Tie:     stat.Mean(ties, weights),
		Lose:    stat.Mean(loses, weights),
		Samples: simsPerCombo * len(combos),
	}
	res.StdErr = math.Sqrt(stat.Variance(wins, weights) / float64(len(combos)))
	return res, nil
}
