package solver

import (
	"fmt"

	"github.com/cardroom/holdem-engine/pkg/notation"
)

// InfoSet holds the CFR state for one information set: everything the
// acting player knows, keyed by (player, hand class, board, action
// history). Created lazily on first visit with a uniform strategy.
type InfoSet struct {
	Key     string
	Actions []notation.Action

	RegretSum   []float64 // cumulative counterfactual regret per action
	StrategySum []float64 // cumulative reach-weighted strategy, for averaging

	// Mean action values for EV reporting, weighted by opponent reach.
	valueSum    []float64
	valueWeight float64
}

func newInfoSet(key string, actions []notation.Action) *InfoSet {
	n := len(actions)
	return &InfoSet{
		Key:         key,
		Actions:     actions,
		RegretSum:   make([]float64, n),
		StrategySum: make([]float64, n),
		valueSum:    make([]float64, n),
	}
}

// CurrentStrategy computes the present strategy by regret matching: action
// probability proportional to positive accumulated regret, uniform when no
// regret is positive.
func (s *InfoSet) CurrentStrategy() []float64 {
	n := len(s.Actions)
	strategy := make([]float64, n)

	normalizing := 0.0
	for i := 0; i < n; i++ {
		if s.RegretSum[i] > 0 {
			strategy[i] = s.RegretSum[i]
			normalizing += s.RegretSum[i]
		}
	}

	if normalizing > 0 {
		for i := 0; i < n; i++ {
			strategy[i] /= normalizing
		}
	} else {
		uniform := 1.0 / float64(n)
		for i := 0; i < n; i++ {
			strategy[i] = uniform
		}
	}

	return strategy
}

// AverageStrategy returns the time-averaged strategy. This average, not the
// fluctuating current strategy, is what converges toward equilibrium.
func (s *InfoSet) AverageStrategy() []float64 {
	n := len(s.Actions)
	avg := make([]float64, n)

	normalizing := 0.0
	for i := 0; i < n; i++ {
		normalizing += s.StrategySum[i]
	}

	if normalizing > 0 {
		for i := 0; i < n; i++ {
			avg[i] = s.StrategySum[i] / normalizing
		}
	} else {
		uniform := 1.0 / float64(n)
		for i := 0; i < n; i++ {
			avg[i] = uniform
		}
	}

	return avg
}

// addRegrets accumulates per-action regret already scaled by opponent
// reach.
func (s *InfoSet) addRegrets(regrets []float64) {
	for i := range s.Actions {
		s.RegretSum[i] += regrets[i]
	}
}

// addStrategy accumulates the current strategy weighted by the acting
// player's reach probability.
func (s *InfoSet) addStrategy(strategy []float64, reach float64) {
	for i := range s.Actions {
		s.StrategySum[i] += reach * strategy[i]
	}
}

// addValues tracks action values for EV reporting.
func (s *InfoSet) addValues(values []float64, weight float64) {
	for i := range s.Actions {
		s.valueSum[i] += weight * values[i]
	}
	s.valueWeight += weight
}

// meanValue returns the reach-weighted mean value of action i.
func (s *InfoSet) meanValue(i int) float64 {
	if s.valueWeight == 0 {
		return 0
	}
	return s.valueSum[i] / s.valueWeight
}

// String returns a human-readable representation.
func (s *InfoSet) String() string {
	avg := s.AverageStrategy()
	out := fmt.Sprintf("InfoSet: %s\n", s.Key)
	for i, action := range s.Actions {
		out += fmt.Sprintf("  %s: %.1f%% (regret: %.2f)\n", action, avg[i]*100, s.RegretSum[i])
	}
	return out
}
