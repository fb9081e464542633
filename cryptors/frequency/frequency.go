// Package frequency computes letter frequency tables and derives a starting
// substitution map for a monoalphabetic cipher text by pairing its symbols
// with a reference distribution, most frequent with most frequent.
package frequency

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bgallie/classicrypt/cryptors"
	"github.com/bgallie/classicrypt/cryptors/substitution"
	"github.com/friendsofgo/errors"
)

// Entry is the share of one symbol, in percent of all counted letters.
type Entry struct {
	Symbol  rune
	Percent float64
}

// Table is an ordered frequency table.  Analyze returns symbols in the order
// they first appear; reference tables are in natural order.
type Table []Entry

// English holds the reference frequencies of the letters in English text.
var English = Table{
	{'A', 8.17}, {'B', 1.49}, {'C', 2.78}, {'D', 4.25}, {'E', 12.70},
	{'F', 2.23}, {'G', 2.01}, {'H', 6.09}, {'I', 6.97}, {'J', 0.15},
	{'K', 0.77}, {'L', 4.03}, {'M', 2.41}, {'N', 6.75}, {'O', 7.51},
	{'P', 1.93}, {'Q', 0.09}, {'R', 5.99}, {'S', 6.33}, {'T', 9.06},
	{'U', 2.76}, {'V', 0.98}, {'W', 2.36}, {'X', 0.15}, {'Y', 1.97},
	{'Z', 0.07},
}

// Analyze counts the letters of text, ignoring case, and returns the share of
// each one.  Non-letters are not counted and symbols that never occur are not
// part of the table, so text without letters gives an empty table.
func Analyze(text string) Table {
	counts := make(map[rune]int)
	var order []rune
	total := 0

	for _, r := range strings.ToUpper(text) {
		if !unicode.IsLetter(r) {
			continue
		}
		if counts[r] == 0 {
			order = append(order, r)
		}
		counts[r]++
		total++
	}

	table := make(Table, 0, len(order))
	for _, r := range order {
		table = append(table, Entry{r, float64(counts[r]) / float64(total) * 100})
	}

	return table
}

// ParseReference builds a reference table from a symbol to percent map, as
// read from a configuration file.  Keys must be single letters.
func ParseReference(m map[string]float64) (Table, error) {
	table := make(Table, 0, len(m))

	for k, v := range m {
		r, size := utf8.DecodeRuneInString(k)
		if size == 0 || size != len(k) || !unicode.IsLetter(r) {
			return nil, errors.Wrapf(cryptors.ErrConfiguration, "reference key %q is not a single letter", k)
		}
		if v < 0 {
			return nil, errors.Wrapf(cryptors.ErrConfiguration, "reference share of %q is negative", k)
		}
		table = append(table, Entry{unicode.ToUpper(r), v})
	}
	if len(table) == 0 {
		return nil, errors.Wrap(cryptors.ErrConfiguration, "reference table is empty")
	}

	sort.Slice(table, func(i, j int) bool { return table[i].Symbol < table[j].Symbol })
	for i := 1; i < len(table); i++ {
		if table[i].Symbol == table[i-1].Symbol {
			return nil, errors.Wrapf(cryptors.ErrConfiguration, "reference symbol %q appears twice", table[i].Symbol)
		}
	}

	return table, nil
}

// Sum returns the total of all shares.
func (t Table) Sum() float64 {
	var sum float64
	for _, e := range t {
		sum += e.Percent
	}
	return sum
}

// Lookup returns the share of r.
func (t Table) Lookup(r rune) (float64, bool) {
	r = unicode.ToUpper(r)
	for _, e := range t {
		if e.Symbol == r {
			return e.Percent, true
		}
	}
	return 0, false
}

// Sorted returns a copy of t in descending order of share.  Equal shares keep
// their order in t.
func (t Table) Sorted() Table {
	s := make(Table, len(t))
	copy(s, t)
	sort.SliceStable(s, func(i, j int) bool { return s[i].Percent > s[j].Percent })
	return s
}

// Clone returns an independent copy of t.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	c := make(Table, len(t))
	copy(c, t)
	return c
}

func (t Table) String() string {
	var sb strings.Builder
	for _, e := range t {
		fmt.Fprintf(&sb, "%c %6.2f%%\n", e.Symbol, e.Percent)
	}
	return sb.String()
}

// SuggestMapping pairs the symbols of cipher with those of reference by rank:
// the most frequent cipher symbol maps to the most frequent reference symbol
// and so on.  No reference symbol is used twice.  Cipher symbols ranked below
// the last reference symbol stay unmapped.
func SuggestMapping(cipher, reference Table) substitution.Map {
	c, r := cipher.Sorted(), reference.Sorted()
	m := make(substitution.Map, len(c))

	for i, e := range c {
		if i >= len(r) {
			break
		}
		m.Set(e.Symbol, r[i].Symbol)
	}

	return m
}

// Decode renders cipher text through m.  It is substitution.Apply.
func Decode(text string, m substitution.Map) string {
	return substitution.Apply(text, m)
}
