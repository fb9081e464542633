// Package alphabet implements the ordered symbol alphabets shared by the
// classical ciphers.  An alphabet is an ordered set of unique symbols; the
// index of a symbol is its cipher position.
package alphabet

import (
	"strings"
	"unicode"

	"github.com/bgallie/classicrypt/cryptors"
	"github.com/friendsofgo/errors"
)

const (
	// Latin is the natural order of the 26 letters of the English alphabet.
	Latin = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	// Romanian holds the extended characters appended to Latin by the 6x5
	// digraph matrix.
	Romanian = "ȘȚĂÎÂ"
)

// Alphabet is an immutable ordered sequence of unique symbols.
type Alphabet struct {
	symbols []rune
	index   map[rune]int
}

// New creates an alphabet from the symbols in s, in order.  It fails with
// cryptors.ErrConfiguration if s is empty or holds a symbol more than once.
func New(s string) (*Alphabet, error) {
	return fromRunes([]rune(s))
}

// MustNew is like New but panics on error.  It is meant for package level
// alphabets built from constants.
func MustNew(s string) *Alphabet {
	a, err := New(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Natural returns the natural 26 letter alphabet.
func Natural() *Alphabet {
	return natural
}

var natural = MustNew(Latin)

func fromRunes(symbols []rune) (*Alphabet, error) {
	if len(symbols) == 0 {
		return nil, errors.Wrap(cryptors.ErrConfiguration, "empty alphabet")
	}

	a := &Alphabet{
		symbols: make([]rune, len(symbols)),
		index:   make(map[rune]int, len(symbols)),
	}
	copy(a.symbols, symbols)

	for i, r := range a.symbols {
		if _, dup := a.index[r]; dup {
			return nil, errors.Wrapf(cryptors.ErrConfiguration, "duplicate symbol %q in alphabet", r)
		}
		a.index[r] = i
	}

	return a, nil
}

// Keyed builds a keyed alphabet from base.  The keyword is upper cased and its
// symbols that belong to base (and are not excluded) are placed first in
// first-seen order, each only once.  The remaining symbols of base follow in
// their natural order, skipping the excluded ones.
func Keyed(keyword string, base *Alphabet, excluded ...rune) (*Alphabet, error) {
	if base == nil || base.Len() == 0 {
		return nil, errors.Wrap(cryptors.ErrConfiguration, "keyed alphabet needs a base alphabet")
	}

	skip := make(map[rune]bool, len(excluded))
	for _, r := range excluded {
		skip[unicode.ToUpper(r)] = true
	}

	symbols := make([]rune, 0, base.Len())
	seen := make(map[rune]bool, base.Len())
	add := func(r rune) {
		if skip[r] || seen[r] || !base.Contains(r) {
			return
		}
		seen[r] = true
		symbols = append(symbols, r)
	}

	for _, r := range keyword {
		add(unicode.ToUpper(r))
	}
	for _, r := range base.symbols {
		add(r)
	}

	return fromRunes(symbols)
}

// Len returns the number of symbols in the alphabet.
func (a *Alphabet) Len() int {
	if a == nil {
		return 0
	}
	return len(a.symbols)
}

// Index returns the position of r, which must already be upper case.
func (a *Alphabet) Index(r rune) (int, bool) {
	i, ok := a.index[r]
	return i, ok
}

// Contains reports whether r is a symbol of the alphabet.
func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.index[r]
	return ok
}

// At returns the symbol at position i modulo the alphabet length, so negative
// positions wrap around.
func (a *Alphabet) At(i int) rune {
	return a.symbols[Mod(i, len(a.symbols))]
}

// Symbols returns a copy of the ordered symbols.
func (a *Alphabet) Symbols() []rune {
	s := make([]rune, len(a.symbols))
	copy(s, a.symbols)
	return s
}

// Extend returns a new alphabet with the extra symbols appended.
func (a *Alphabet) Extend(extra string) (*Alphabet, error) {
	return fromRunes(append(a.Symbols(), []rune(extra)...))
}

// Normalize upper cases text and drops every symbol that is not part of the
// alphabet.
func (a *Alphabet) Normalize(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))

	for _, r := range text {
		r = unicode.ToUpper(r)
		if a.Contains(r) {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

func (a *Alphabet) String() string {
	return string(a.symbols)
}

// Mod returns i modulo n in the range [0, n).
func Mod(i, n int) int {
	return ((i % n) + n) % n
}
