package board

import (
	"errors"
	"testing"

	"github.com/cardroom/holdem-engine/pkg/cards"
)

func mustDraws(t *testing.T, hole, board string) []DrawInfo {
	t.Helper()
	h, err := cards.ParseCards(hole)
	if err != nil {
		t.Fatal(err)
	}
	b, err := cards.ParseCards(board)
	if err != nil {
		t.Fatal(err)
	}
	draws, err := FindDraws(h, b)
	if err != nil {
		t.Fatal(err)
	}
	return draws
}

func findDraw(draws []DrawInfo, dt DrawType) (DrawInfo, bool) {
	for _, d := range draws {
		if d.Type == dt {
			return d, true
		}
	}
	return DrawInfo{}, false
}

func TestFindDrawsFlushDraw(t *testing.T) {
	draws := mustDraws(t, "AhKh", "9h4h2c")

	d, ok := findDraw(draws, FlushDraw)
	if !ok {
		t.Fatalf("no flush draw in %v", draws)
	}
	if d.Outs != 9 {
		t.Errorf("flush draw outs = %d, want 9", d.Outs)
	}
	if d.Probability < 0.34 || d.Probability > 0.36 {
		t.Errorf("flush draw probability = %v, want ~0.35", d.Probability)
	}
	if len(d.Cards) != 4 {
		t.Errorf("flush draw cards = %v, want the 4 hearts", d.Cards)
	}
}

func TestFindDrawsFlushDrawOnTurn(t *testing.T) {
	draws := mustDraws(t, "AhKh", "9h4h2c7s")

	d, ok := findDraw(draws, FlushDraw)
	if !ok {
		t.Fatalf("no flush draw in %v", draws)
	}
	if d.Outs != 9 {
		t.Errorf("outs = %d, want 9", d.Outs)
	}
	// One card to come: exactly 9/46.
	want := 9.0 / 46.0
	if d.Probability < want-1e-9 || d.Probability > want+1e-9 {
		t.Errorf("probability = %v, want %v", d.Probability, want)
	}
}

func TestFindDrawsBackdoorFlush(t *testing.T) {
	draws := mustDraws(t, "AhKh", "9h4c2s")

	d, ok := findDraw(draws, BackdoorFlushDraw)
	if !ok {
		t.Fatalf("no backdoor flush draw in %v", draws)
	}
	if d.Outs != 10 {
		t.Errorf("backdoor outs = %d, want 10", d.Outs)
	}
	if d.Probability != 0.042 {
		t.Errorf("backdoor probability = %v, want 0.042", d.Probability)
	}

	// With one card to come there is no runner-runner.
	turn := mustDraws(t, "AhKh", "9h4c2s7d")
	if _, ok := findDraw(turn, BackdoorFlushDraw); ok {
		t.Error("backdoor flush draw reported on the turn")
	}
}

func TestFindDrawsOpenEnded(t *testing.T) {
	draws := mustDraws(t, "Ts9s", "8h7c2d")

	d, ok := findDraw(draws, OpenEndedDraw)
	if !ok {
		t.Fatalf("no open-ender in %v", draws)
	}
	if d.Outs != 8 {
		t.Errorf("open-ender outs = %d, want 8", d.Outs)
	}
}

func TestFindDrawsGutshot(t *testing.T) {
	draws := mustDraws(t, "Ts9s", "7h6c2d")

	d, ok := findDraw(draws, GutshotDraw)
	if !ok {
		t.Fatalf("no gutshot in %v", draws)
	}
	if d.Outs != 4 {
		t.Errorf("gutshot outs = %d, want 4", d.Outs)
	}
}

func TestFindDrawsWheelDrawIsGutshot(t *testing.T) {
	// A-2-3-4 only the five completes; the window butts against the
	// bottom of the ladder.
	draws := mustDraws(t, "Ah2h", "3c4d9s")

	d, ok := findDraw(draws, GutshotDraw)
	if !ok {
		t.Fatalf("no gutshot in %v", draws)
	}
	if d.Outs != 4 {
		t.Errorf("wheel draw outs = %d, want 4", d.Outs)
	}
	if _, ok := findDraw(draws, OpenEndedDraw); ok {
		t.Error("wheel draw misreported as open-ended")
	}
}

func TestFindDrawsBroadwayDrawIsGutshot(t *testing.T) {
	// A-K-Q-J butts against the top of the ladder: only the ten completes.
	draws := mustDraws(t, "AhKh", "QcJd2s")

	d, ok := findDraw(draws, GutshotDraw)
	if !ok {
		t.Fatalf("no gutshot in %v", draws)
	}
	if d.Outs != 4 {
		t.Errorf("broadway-edge draw outs = %d, want 4", d.Outs)
	}
	if _, ok := findDraw(draws, OpenEndedDraw); ok {
		t.Error("one-ended draw misreported as open-ended")
	}
}

func TestFindDrawsMadeStraight(t *testing.T) {
	draws := mustDraws(t, "Ts9s", "8h7c6d")
	if _, ok := findDraw(draws, OpenEndedDraw); ok {
		t.Error("made straight reported as a draw")
	}
	if _, ok := findDraw(draws, GutshotDraw); ok {
		t.Error("made straight reported as a gutshot")
	}
}

func TestFindDrawsHoleMustParticipate(t *testing.T) {
	// The board alone is four to a straight; the hole cards contribute
	// nothing, so no straight draw is credited to the hero.
	draws := mustDraws(t, "AhKh", "8h7c6d5s")
	if _, ok := findDraw(draws, OpenEndedDraw); ok {
		t.Error("board-only straight draw credited to hero")
	}
}

func TestFindDrawsOvercards(t *testing.T) {
	draws := mustDraws(t, "AhKd", "9h4c2s")

	d, ok := findDraw(draws, OvercardDraw)
	if !ok {
		t.Fatalf("no overcards in %v", draws)
	}
	if d.Outs != 6 {
		t.Errorf("two overcards = %d outs, want 6", d.Outs)
	}

	one := mustDraws(t, "AhTd", "Kh4c2s")
	d, ok = findDraw(one, OvercardDraw)
	if !ok || d.Outs != 3 {
		t.Errorf("one overcard = %v, want 3 outs", d)
	}

	none := mustDraws(t, "5h4d", "Kh9c7s")
	if _, ok := findDraw(none, OvercardDraw); ok {
		t.Error("no overcards expected")
	}
}

func TestFindDrawsBoardSizes(t *testing.T) {
	h, _ := cards.ParseCards("AhKh")

	river, _ := cards.ParseCards("9h4h2c7s3d")
	draws, err := FindDraws(h, river)
	if err != nil || draws != nil {
		t.Errorf("river board: draws=%v err=%v, want nil,nil", draws, err)
	}

	draws, err = FindDraws(h, nil)
	if err != nil || draws != nil {
		t.Errorf("preflop: draws=%v err=%v, want nil,nil", draws, err)
	}
}

func TestFindDrawsErrors(t *testing.T) {
	one, _ := cards.ParseCards("Ah")
	flop, _ := cards.ParseCards("9h4h2c")
	if _, err := FindDraws(one, flop); !errors.Is(err, cards.ErrInvalidInput) {
		t.Errorf("one hole card: error = %v", err)
	}

	h, _ := cards.ParseCards("AhKh")
	dup, _ := cards.ParseCards("Ah4h2c")
	if _, err := FindDraws(h, dup); !errors.Is(err, cards.ErrInvalidInput) {
		t.Errorf("duplicate card: error = %v", err)
	}
}
