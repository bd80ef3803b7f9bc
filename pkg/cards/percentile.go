package cards

// percentileBands maps each ranking category to the percentile interval it
// occupies among random 7-card hands. The bounds come from the standard
// 7-card category frequencies and are an approximation: the exact
// percentile of a hand would require full enumeration against all opposing
// holdings, which is not what callers of this number need.
var percentileBands = [10][2]float64{
	HighCard:      {0.0, 17.4},
	OnePair:       {17.4, 60.1},
	TwoPair:       {60.1, 83.9},
	ThreeOfAKind:  {83.9, 88.7},
	Straight:      {88.7, 92.6},
	Flush:         {92.6, 95.6},
	FullHouse:     {95.6, 98.2},
	FourOfAKind:   {98.2, 98.9},
	StraightFlush: {98.9, 99.97},
	RoyalFlush:    {99.97, 100.0},
}

// maxPacked is the largest possible intra-category kicker packing
// (five Ace slots).
const maxPacked = 14*100_000_000 + 14*1_000_000 + 14*10_000 + 14*100 + 14

// Percentile estimates how the hand ranks against random 7-card hands, as a
// value in [0,100]. The category fixes the interval; the packed kicker
// magnitude interpolates linearly within it.
func Percentile(h EvaluatedHand) float64 {
	band := percentileBands[h.Ranking]
	packed := float64(h.Score - int64(h.Ranking)*scoreTier)
	frac := packed / maxPacked
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return band[0] + frac*(band[1]-band[0])
}
