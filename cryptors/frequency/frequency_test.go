package frequency

import (
	"errors"
	"math"
	"testing"

	"github.com/bgallie/classicrypt/cryptors"
	"github.com/bgallie/classicrypt/cryptors/substitution"
)

const epsilon = 1e-9

func symbols(t Table) string {
	rs := make([]rune, len(t))
	for i, e := range t {
		rs[i] = e.Symbol
	}
	return string(rs)
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		order   string
		percent map[rune]float64
	}{
		{"hello", "Hello, World!", "HELOWRD", map[rune]float64{'H': 10, 'L': 30, 'O': 20}},
		{"case folding", "aAbB", "AB", map[rune]float64{'A': 50, 'B': 50}},
		{"romanian", "Știință", "ȘTINȚĂ", map[rune]float64{'I': 2.0 / 7 * 100, 'Ă': 1.0 / 7 * 100}},
		{"empty", "", "", nil},
		{"no letters", "1234 !?", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := Analyze(tt.text)
			if symbols(table) != tt.order {
				t.Errorf("expected order %q, got %q", tt.order, symbols(table))
			}
			for r, want := range tt.percent {
				got, ok := table.Lookup(r)
				if !ok || math.Abs(got-want) > epsilon {
					t.Errorf("%c: expected %.4f, got %.4f (%v)", r, want, got, ok)
				}
			}
			if len(table) > 0 && math.Abs(table.Sum()-100) > epsilon {
				t.Errorf("shares sum to %f", table.Sum())
			}
		})
	}
}

func TestAnalyzeAbsentSymbols(t *testing.T) {
	table := Analyze("aaa")
	if _, ok := table.Lookup('B'); ok {
		t.Error("B never occurs and must not be part of the table")
	}
	if p, _ := table.Lookup('a'); p != 100 {
		t.Errorf("expected 100, got %f", p)
	}
}

func TestEnglish(t *testing.T) {
	if len(English) != 26 {
		t.Fatalf("expected 26 entries, got %d", len(English))
	}
	if math.Abs(English.Sum()-100) > 1e-6 {
		t.Errorf("reference shares sum to %f", English.Sum())
	}
	if got := symbols(English.Sorted())[:6]; got != "ETAOIN" {
		t.Errorf("expected ETAOIN, got %s", got)
	}
}

func TestSortedIsStable(t *testing.T) {
	table := Analyze("abcabcdd")
	// A, B, C and D share 25% each.
	if got := symbols(table.Sorted()); got != "ABCD" {
		t.Errorf("expected ABCD, got %s", got)
	}
	if got := symbols(Analyze("xyzzy").Sorted()); got != "YZX" {
		t.Errorf("expected YZX, got %s", got)
	}
	if symbols(table) != "ABCD" {
		t.Error("Sorted modified the table")
	}
}

func TestSuggestMapping(t *testing.T) {
	m := SuggestMapping(Analyze("KHOOR"), English)

	want := substitution.Map{'O': 'E', 'K': 'T', 'H': 'A', 'R': 'O'}
	if !m.Equal(want) {
		t.Errorf("expected %s, got %s", want, m)
	}
	if got := Decode("Khoor!", m); got != "Taeeo!" {
		t.Errorf("expected Taeeo!, got %s", got)
	}
}

func TestSuggestMappingInjective(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog while the fox sleeps"
	m := SuggestMapping(Analyze(text), English)
	if len(m.Collisions()) != 0 {
		t.Errorf("suggested map has collisions: %v", m.Collisions())
	}
	if len(m) != len(Analyze(text)) {
		t.Errorf("expected every cipher symbol to be mapped, got %d", len(m))
	}
}

func TestSuggestMappingShortReference(t *testing.T) {
	reference := Table{{'E', 60}, {'T', 40}}
	m := SuggestMapping(Analyze("aaabbc"), reference)

	if len(m) != 2 || m['A'] != 'E' || m['B'] != 'T' {
		t.Errorf("unexpected map %s", m)
	}
	if _, ok := m['C']; ok {
		t.Error("C ranks below the reference and must stay unmapped")
	}
}

func TestParseReference(t *testing.T) {
	table, err := ParseReference(map[string]float64{"b": 40, "A": 60})
	if err != nil {
		t.Fatal(err)
	}
	if symbols(table) != "AB" {
		t.Errorf("expected AB, got %s", symbols(table))
	}

	bad := []map[string]float64{
		{},
		{"AB": 10},
		{"1": 10},
		{"A": -1},
		{"a": 10, "A": 20},
	}
	for _, m := range bad {
		if _, err := ParseReference(m); !errors.Is(err, cryptors.ErrConfiguration) {
			t.Errorf("%v: expected ErrConfiguration, got %v", m, err)
		}
	}
}
