package board

import (
	"errors"
	"testing"

	"github.com/cardroom/holdem-engine/pkg/cards"
)

func mustAnalyze(t *testing.T, s string) Texture {
	t.Helper()
	cs, err := cards.ParseCards(s)
	if err != nil {
		t.Fatal(err)
	}
	tex, err := AnalyzeTexture(cs)
	if err != nil {
		t.Fatal(err)
	}
	return tex
}

func TestAnalyzeTextureDryFlop(t *testing.T) {
	tex := mustAnalyze(t, "Kh7s2c")

	if !tex.Rainbow || tex.TwoTone || tex.Monotone {
		t.Errorf("Kh7s2c should be rainbow: %+v", tex)
	}
	if tex.Paired {
		t.Error("Kh7s2c is not paired")
	}
	if tex.Label != TextureDry || tex.Danger != DangerLow {
		t.Errorf("Kh7s2c label=%s danger=%s, want dry/low", tex.Label, tex.Danger)
	}
}

func TestAnalyzeTextureMonotoneFlop(t *testing.T) {
	tex := mustAnalyze(t, "Kh9h4h")

	if !tex.Monotone {
		t.Error("Kh9h4h should be monotone")
	}
	if !tex.FlushPossible || tex.FlushSuit != cards.Hearts {
		t.Errorf("flush should be possible in hearts: %+v", tex)
	}
	if tex.Label != TextureWet || tex.Danger != DangerHigh {
		t.Errorf("monotone flop label=%s danger=%s, want wet/high", tex.Label, tex.Danger)
	}
}

func TestAnalyzeTextureConnectedTwoTone(t *testing.T) {
	tex := mustAnalyze(t, "9h8h7c")

	if !tex.TwoTone {
		t.Error("9h8h7c should be two-tone")
	}
	if tex.Connectivity != 0 {
		t.Errorf("connectivity = %d, want 0", tex.Connectivity)
	}
	// The 4-value window needs a fourth rank, so a 3-rank flop never flags
	// an open-ender by itself.
	if tex.OESDPossible {
		t.Error("three ranks cannot fill a 4-value window")
	}
	if tex.Label != TextureSemiWet || tex.Danger != DangerMedium {
		t.Errorf("9h8h7c label=%s danger=%s, want semi-wet/medium", tex.Label, tex.Danger)
	}
}

func TestAnalyzeTextureConnectedTurn(t *testing.T) {
	tex := mustAnalyze(t, "9h8h7c6s")

	if !tex.OESDPossible {
		t.Error("9876 supports an open-ender")
	}
	if tex.Label != TextureWet || tex.Danger != DangerHigh {
		t.Errorf("9h8h7c6s label=%s danger=%s, want wet/high", tex.Label, tex.Danger)
	}
}

func TestAnalyzeTexturePaired(t *testing.T) {
	tex := mustAnalyze(t, "KsKh2c")

	if !tex.Paired || tex.Trips {
		t.Errorf("KsKh2c paired=%v trips=%v", tex.Paired, tex.Trips)
	}
	if tex.Label != TextureDry {
		t.Errorf("KsKh2c label = %s, want dry", tex.Label)
	}

	trips := mustAnalyze(t, "KsKhKc")
	if !trips.Trips {
		t.Error("KsKhKc should flag trips")
	}
}

func TestAnalyzeTextureWheelConnectivity(t *testing.T) {
	// The ace reads as 1 next to wheel cards, so A-2-3 is fully connected.
	tex := mustAnalyze(t, "Ah2s3c")
	if tex.Connectivity != 0 {
		t.Errorf("Ah2s3c connectivity = %d, want 0", tex.Connectivity)
	}
}

func TestAnalyzeTextureFlushDrawOnTurn(t *testing.T) {
	tex := mustAnalyze(t, "Kh9h4c2s")
	if !tex.FlushDraw || tex.FlushDrawSuit != cards.Hearts {
		t.Errorf("Kh9h4c2s should show a heart flush draw: %+v", tex)
	}
	if tex.FlushPossible {
		t.Error("two hearts do not make a flush possible")
	}

	three := mustAnalyze(t, "Kh9h4h2s")
	if !three.FlushPossible || three.FlushSuit != cards.Hearts {
		t.Errorf("Kh9h4h2s should make a heart flush possible: %+v", three)
	}
	if three.Monotone {
		t.Error("monotone is a 3-card-board property")
	}
}

func TestAnalyzeTextureEmptyBoard(t *testing.T) {
	tex, err := AnalyzeTexture(nil)
	if err != nil {
		t.Fatal(err)
	}
	if tex.Label != TextureDry || tex.Danger != DangerLow {
		t.Errorf("empty board label=%s danger=%s, want dry/low", tex.Label, tex.Danger)
	}
}

func TestAnalyzeTextureErrors(t *testing.T) {
	dup, _ := cards.ParseCards("KhKh2c")
	if _, err := AnalyzeTexture(dup); !errors.Is(err, cards.ErrInvalidInput) {
		t.Errorf("duplicate cards: error = %v", err)
	}

	six, _ := cards.ParseCards("2h3h4h5h6h7h")
	if _, err := AnalyzeTexture(six); !errors.Is(err, cards.ErrInvalidInput) {
		t.Errorf("six cards: error = %v", err)
	}
}

func TestFindNuts(t *testing.T) {
	paired, _ := cards.ParseCards("KsKh2c")
	nuts := FindNuts(paired)
	if len(nuts) == 0 || nuts[0] != "Four of a Kind" {
		t.Errorf("paired board nuts = %v, want quads first", nuts)
	}

	mono, _ := cards.ParseCards("Kh9h4h")
	nuts = FindNuts(mono)
	if len(nuts) == 0 || nuts[0] != "Nut Flush (Ah high)" {
		t.Errorf("monotone board nuts = %v", nuts)
	}

	dry, _ := cards.ParseCards("Kh7s2c")
	nuts = FindNuts(dry)
	if len(nuts) == 0 || nuts[0] != "Set" {
		t.Errorf("dry board nuts = %v, want set first", nuts)
	}
}

func TestFindDangerCards(t *testing.T) {
	two, _ := cards.ParseCards("Kh9h4c")
	danger := FindDangerCards(two)
	if len(danger) == 0 {
		t.Fatal("two-tone board should have danger cards")
	}
	// Flush-advancing hearts come first, highest first.
	if danger[0] != cards.NewCard(cards.Ace, cards.Hearts) {
		t.Errorf("first danger card = %s, want Ah", danger[0])
	}
	for _, c := range danger {
		if c == cards.NewCard(cards.King, cards.Hearts) || c == cards.NewCard(cards.Nine, cards.Hearts) {
			t.Errorf("board card %s listed as danger card", c)
		}
	}

	river, _ := cards.ParseCards("Kh9h4c2s7d")
	if got := FindDangerCards(river); got != nil {
		t.Errorf("complete board has no next card, got %v", got)
	}
}
