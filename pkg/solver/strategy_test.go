package solver

import (
	"math"
	"testing"

	"github.com/cardroom/holdem-engine/pkg/notation"
)

func testActions() []notation.Action {
	return []notation.Action{
		{Type: notation.Check},
		{Type: notation.Bet, Amount: 5},
		{Type: notation.Bet, Amount: 10},
	}
}

func assertSumsToOne(t *testing.T, probs []float64) {
	t.Helper()
	sum := 0.0
	for _, p := range probs {
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("strategy sums to %v, want 1", sum)
	}
}

func TestCurrentStrategyUniformStart(t *testing.T) {
	is := newInfoSet("0|AA|Kh7s2c|", testActions())

	strategy := is.CurrentStrategy()
	assertSumsToOne(t, strategy)
	for i, p := range strategy {
		if math.Abs(p-1.0/3.0) > 1e-9 {
			t.Errorf("action %d prob = %v, want uniform third", i, p)
		}
	}
}

func TestCurrentStrategyRegretMatching(t *testing.T) {
	is := newInfoSet("0|AA|Kh7s2c|", testActions())
	is.addRegrets([]float64{3, 1, -2})

	strategy := is.CurrentStrategy()
	assertSumsToOne(t, strategy)

	// Positive regrets split proportionally; negative regret gets zero.
	if math.Abs(strategy[0]-0.75) > 1e-9 {
		t.Errorf("strategy[0] = %v, want 0.75", strategy[0])
	}
	if math.Abs(strategy[1]-0.25) > 1e-9 {
		t.Errorf("strategy[1] = %v, want 0.25", strategy[1])
	}
	if strategy[2] != 0 {
		t.Errorf("strategy[2] = %v, want 0", strategy[2])
	}
}

func TestCurrentStrategyAllNegativeRegret(t *testing.T) {
	is := newInfoSet("0|AA|Kh7s2c|", testActions())
	is.addRegrets([]float64{-1, -5, -0.5})

	strategy := is.CurrentStrategy()
	assertSumsToOne(t, strategy)
	for i, p := range strategy {
		if math.Abs(p-1.0/3.0) > 1e-9 {
			t.Errorf("action %d prob = %v, want uniform fallback", i, p)
		}
	}
}

func TestAverageStrategy(t *testing.T) {
	is := newInfoSet("0|AA|Kh7s2c|", testActions())

	// Two visits with different strategies and reaches.
	is.addStrategy([]float64{1, 0, 0}, 1.0)
	is.addStrategy([]float64{0, 1, 0}, 3.0)

	avg := is.AverageStrategy()
	assertSumsToOne(t, avg)
	if math.Abs(avg[0]-0.25) > 1e-9 || math.Abs(avg[1]-0.75) > 1e-9 {
		t.Errorf("average = %v, want [0.25 0.75 0]", avg)
	}
}

func TestAverageStrategyUnvisited(t *testing.T) {
	is := newInfoSet("0|AA|Kh7s2c|", testActions())
	avg := is.AverageStrategy()
	assertSumsToOne(t, avg)
}

func TestMeanValue(t *testing.T) {
	is := newInfoSet("0|AA|Kh7s2c|", testActions())

	if is.meanValue(0) != 0 {
		t.Error("unvisited info set should report zero EV")
	}

	is.addValues([]float64{10, 0, 0}, 1.0)
	is.addValues([]float64{20, 0, 0}, 1.0)
	if math.Abs(is.meanValue(0)-15) > 1e-9 {
		t.Errorf("meanValue = %v, want 15", is.meanValue(0))
	}

	// Weighted by opponent reach.
	is2 := newInfoSet("1|KK|Kh7s2c|x", testActions())
	is2.addValues([]float64{10, 0, 0}, 1.0)
	is2.addValues([]float64{40, 0, 0}, 2.0)
	if math.Abs(is2.meanValue(0)-30) > 1e-9 {
		t.Errorf("weighted meanValue = %v, want 30", is2.meanValue(0))
	}
}
