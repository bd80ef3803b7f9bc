package notation

import (
	"errors"
	"math"
	"testing"

	"github.com/cardroom/holdem-engine/pkg/cards"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		input     string
		wantHands []string
		wantErr   bool
	}{
		{"AA", []string{"AA"}, false},
		{"AA,KK", []string{"AA", "KK"}, false},
		{"AKs", []string{"AKs"}, false},
		{"AKo", []string{"AKo"}, false},
		{"KK-JJ", []string{"KK", "QQ", "JJ"}, false},
		{"JJ-KK", []string{"KK", "QQ", "JJ"}, false},
		{"AKs-ATs", []string{"AKs", "AQs", "AJs", "ATs"}, false},
		{"AA, KK , QQ", []string{"AA", "KK", "QQ"}, false},
		{"AsKs", []string{"AKs"}, false},
		{"", nil, true},
		{"AK", nil, true},   // non-pair needs s/o
		{"AAs", nil, true},  // pair cannot be suited
		{"AKx", nil, true},  // bad indicator
		{"AKs-KQs", nil, true},
		{"AA:1.5", nil, true},
	}

	for _, tt := range tests {
		hr, err := ParseRange(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseRange(%q): expected error, got %v", tt.input, hr)
			} else if !errors.Is(err, cards.ErrInvalidInput) {
				t.Errorf("ParseRange(%q): error %v is not ErrInvalidInput", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRange(%q): unexpected error %v", tt.input, err)
			continue
		}
		if len(hr) != len(tt.wantHands) {
			t.Errorf("ParseRange(%q) = %v, want hands %v", tt.input, hr, tt.wantHands)
			continue
		}
		for _, h := range tt.wantHands {
			if _, ok := hr[h]; !ok {
				t.Errorf("ParseRange(%q) missing %q", tt.input, h)
			}
		}
	}
}

func TestParseRangeWeights(t *testing.T) {
	hr, err := ParseRange("AA,AKs:0.5,QJo:0")
	if err != nil {
		t.Fatal(err)
	}
	if hr["AA"] != 1.0 {
		t.Errorf("AA weight = %v, want 1", hr["AA"])
	}
	if hr["AKs"] != 0.5 {
		t.Errorf("AKs weight = %v, want 0.5", hr["AKs"])
	}
	if hr["QJo"] != 0 {
		t.Errorf("QJo weight = %v, want 0", hr["QJo"])
	}
}

func TestNormalizeHand(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"AA", "AA"},
		{"KQs", "KQs"},
		{"QKs", "KQs"},
		{"87o", "87o"},
		{"78o", "87o"},
		{"AsKs", "AKs"},
		{"KhAd", "AKo"},
		{"2c2d", "22"},
	}

	for _, tt := range tests {
		got, err := NormalizeHand(tt.input)
		if err != nil {
			t.Errorf("NormalizeHand(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeHand(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	if _, err := NormalizeHand("AsAs"); !errors.Is(err, cards.ErrInvalidInput) {
		t.Errorf("duplicate explicit cards: error = %v", err)
	}
}

func TestExpandHandComboCounts(t *testing.T) {
	tests := []struct {
		hand string
		want int
	}{
		{"AA", 6},
		{"AKs", 4},
		{"AKo", 12},
	}

	for _, tt := range tests {
		combos, err := ExpandHand(tt.hand, nil)
		if err != nil {
			t.Fatalf("ExpandHand(%q): %v", tt.hand, err)
		}
		if len(combos) != tt.want {
			t.Errorf("ExpandHand(%q) = %d combos, want %d", tt.hand, len(combos), tt.want)
		}
	}
}

func TestExpandHandBlockers(t *testing.T) {
	blockers, _ := cards.ParseCards("As")
	combos, err := ExpandHand("AA", blockers)
	if err != nil {
		t.Fatal(err)
	}
	// One ace removed leaves C(3,2) = 3 combos.
	if len(combos) != 3 {
		t.Errorf("AA with As blocked = %d combos, want 3", len(combos))
	}
	for _, c := range combos {
		if c.Conflicts(blockers) {
			t.Errorf("combo %s conflicts with blockers", c)
		}
	}
}

func TestExpand(t *testing.T) {
	hr, err := ParseRange("AA,AKs:0.5")
	if err != nil {
		t.Fatal(err)
	}

	wcs, err := hr.Expand(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(wcs) != 10 {
		t.Fatalf("expanded to %d combos, want 10", len(wcs))
	}

	var total float64
	for _, wc := range wcs {
		total += wc.Weight
	}
	// AA contributes 1.0, AKs:0.5 contributes 0.5.
	if math.Abs(total-1.5) > 1e-9 {
		t.Errorf("total weight = %v, want 1.5", total)
	}
}

func TestExpandFullyBlockedEntry(t *testing.T) {
	hr, err := ParseRange("AA,KK")
	if err != nil {
		t.Fatal(err)
	}

	// Three aces on board leave no AA combo but KK untouched.
	blockers, _ := cards.ParseCards("AsAhAd")
	wcs, err := hr.Expand(blockers)
	if err != nil {
		t.Fatal(err)
	}
	for _, wc := range wcs {
		if wc.Combo.Notation() == "AA" {
			t.Errorf("blocked AA combo %s survived", wc.Combo)
		}
	}
	// A lone remaining ace cannot pair, so only KK's 6 combos survive.
	if len(wcs) != 6 {
		t.Errorf("expanded to %d combos, want 6: %v", len(wcs), wcs)
	}
}
