// Package substitution implements the monoalphabetic ciphers: the shift
// (Caesar) cipher over a natural or keyed alphabet, and the general
// substitution of symbols through a Map.
package substitution

import (
	"strings"
	"unicode"

	"github.com/bgallie/classicrypt/cryptors"
	"github.com/bgallie/classicrypt/cryptors/alphabet"
	"github.com/friendsofgo/errors"
)

const (
	MinimumShift = 1
	MaximumShift = 25
)

// Shift moves every symbol of text that belongs to a by k positions, modulo
// the alphabet length.  Symbols outside the alphabet are dropped and the
// output is always upper case.  A negative k shifts backwards.
func Shift(text string, a *alphabet.Alphabet, k int) (string, error) {
	if a.Len() == 0 {
		return "", errors.Wrap(cryptors.ErrConfiguration, "shift needs a non-empty alphabet")
	}

	var sb strings.Builder
	sb.Grow(len(text))

	for _, r := range text {
		idx, ok := a.Index(unicode.ToUpper(r))
		if !ok {
			continue
		}
		sb.WriteRune(a.At(idx + k))
	}

	return sb.String(), nil
}

// Unshift reverses Shift.  It is Shift with the key negated.
func Unshift(text string, a *alphabet.Alphabet, k int) (string, error) {
	return Shift(text, a, -k)
}

// Caesar is a shift cipher with a fixed key over a (possibly keyed) alphabet.
type Caesar struct {
	alpha   *alphabet.Alphabet
	keyword string
	shift   int
}

// NewCaesar returns the plain Caesar cipher over the natural alphabet.
func NewCaesar(shift int) *Caesar {
	return &Caesar{alpha: alphabet.Natural(), shift: shift}
}

// NewKeyedCaesar returns the two key Caesar cipher: the shift is applied over
// the alphabet keyed by keyword.  The keyword must pass ValidateKeyword.
func NewKeyedCaesar(keyword string, shift int) (*Caesar, error) {
	if err := ValidateKeyword(keyword); err != nil {
		return nil, err
	}

	a, err := alphabet.Keyed(keyword, alphabet.Natural())
	if err != nil {
		return nil, err
	}

	return &Caesar{alpha: a, keyword: strings.ToUpper(keyword), shift: shift}, nil
}

func (c *Caesar) Name() string {
	if c.keyword != "" {
		return "keyed-caesar"
	}
	return "caesar"
}

// Alphabet returns the alphabet the cipher shifts over.
func (c *Caesar) Alphabet() *alphabet.Alphabet {
	return c.alpha
}

func (c *Caesar) Encrypt(text string) (string, error) {
	return Shift(text, c.alpha, c.shift)
}

func (c *Caesar) Decrypt(text string) (string, error) {
	return Unshift(text, c.alpha, c.shift)
}

// ValidateShift checks that k is a usable shift key (1 to 25).
func ValidateShift(k int) error {
	if k < MinimumShift || k > MaximumShift {
		return errors.Wrapf(cryptors.ErrInvalidKey, "shift must be between %d and %d, got %d", MinimumShift, MaximumShift, k)
	}
	return nil
}

// ValidateKeyword checks that a keyword holds only Latin letters and is at
// least cryptors.MinimumKeywordLength long.
func ValidateKeyword(keyword string) error {
	n := 0
	for _, r := range keyword {
		if !isLatin(r) {
			return errors.Wrapf(cryptors.ErrInvalidKey, "keyword must contain only letters, found %q", r)
		}
		n++
	}

	if n < cryptors.MinimumKeywordLength {
		return errors.Wrapf(cryptors.ErrInvalidKey, "keyword must be at least %d letters long, got %d", cryptors.MinimumKeywordLength, n)
	}

	return nil
}

// ValidateText checks that text holds only Latin letters and white space.
func ValidateText(text string) error {
	for i, r := range text {
		if !isLatin(r) && !unicode.IsSpace(r) {
			return errors.Wrapf(cryptors.ErrInvalidInput, "text must contain only letters and spaces, found %q at offset %d", r, i)
		}
	}
	return nil
}

func isLatin(r rune) bool {
	return ('A' <= r && r <= 'Z') || ('a' <= r && r <= 'z')
}
