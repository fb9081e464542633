package playfair

import (
	"strings"
	"unicode/utf8"

	"github.com/bgallie/classicrypt/cryptors"
	"github.com/friendsofgo/errors"
)

// Digraph is an ordered pair of matrix symbols.
type Digraph [2]rune

func (d Digraph) String() string {
	return string(d[:])
}

// Digraphs normalizes text and splits it into pairs.  A pair of identical
// symbols is split by inserting Filler after the first one (AlternateFiller
// when the symbol is Filler) and pairing continues from the second.  A final
// single symbol is completed the same way.
func (m *Matrix) Digraphs(text string) []Digraph {
	symbols := []rune(m.Normalize(text))
	pairs := make([]Digraph, 0, (len(symbols)+1)/2)

	for i := 0; i < len(symbols); {
		a := symbols[i]
		if i+1 < len(symbols) && symbols[i+1] != a {
			pairs = append(pairs, Digraph{a, symbols[i+1]})
			i += 2
			continue
		}

		pairs = append(pairs, Digraph{a, fillerFor(a)})
		i++
	}

	return pairs
}

func fillerFor(r rune) rune {
	if r == Filler {
		return AlternateFiller
	}
	return Filler
}

// EncryptPair substitutes one digraph: symbols in the same row move one column
// right, symbols in the same column move one row down, otherwise each symbol
// takes the column of the other.
func (m *Matrix) EncryptPair(d Digraph) (Digraph, error) {
	return m.substitute(d, 1)
}

// DecryptPair reverses EncryptPair.
func (m *Matrix) DecryptPair(d Digraph) (Digraph, error) {
	return m.substitute(d, -1)
}

func (m *Matrix) substitute(d Digraph, step int) (Digraph, error) {
	r1, c1, ok1 := m.Position(d[0])
	r2, c2, ok2 := m.Position(d[1])
	if !ok1 || !ok2 {
		return d, errors.Wrapf(cryptors.ErrInvalidInput, "digraph %s holds a symbol outside the matrix", d)
	}

	switch {
	case r1 == r2 && c1 == c2:
		return d, errors.Wrapf(cryptors.ErrInvalidInput, "digraph %s repeats a symbol", d)
	case r1 == r2:
		return Digraph{m.At(r1, c1+step), m.At(r2, c2+step)}, nil
	case c1 == c2:
		return Digraph{m.At(r1+step, c1), m.At(r2+step, c2)}, nil
	default:
		return Digraph{m.At(r1, c2), m.At(r2, c1)}, nil
	}
}

// Cipher is a Playfair cipher bound to one keyword.
type Cipher struct {
	matrix *Matrix
}

// New creates a Playfair cipher.  The keyword must hold at least
// cryptors.MinimumKeywordLength symbols, all of them part of the matrix
// alphabet (the excluded letter counts as its replacement).
func New(keyword string, opts ...Option) (*Cipher, error) {
	m, err := NewMatrix(keyword, opts...)
	if err != nil {
		return nil, err
	}

	collapsed := m.collapse(keyword)
	for _, r := range collapsed {
		if !m.grid.Contains(r) {
			return nil, errors.Wrapf(cryptors.ErrInvalidKey, "keyword symbol %q is not part of the %s matrix", r, m.variant)
		}
	}
	if n := utf8.RuneCountInString(collapsed); n < cryptors.MinimumKeywordLength {
		return nil, errors.Wrapf(cryptors.ErrInvalidKey, "keyword must be at least %d symbols long, got %d", cryptors.MinimumKeywordLength, n)
	}

	return &Cipher{matrix: m}, nil
}

func (c *Cipher) Name() string {
	return "playfair"
}

func (c *Cipher) Matrix() *Matrix {
	return c.matrix
}

// Encrypt normalizes text into digraphs and substitutes each of them.
func (c *Cipher) Encrypt(text string) (string, error) {
	var sb strings.Builder

	for _, d := range c.matrix.Digraphs(text) {
		e, err := c.matrix.EncryptPair(d)
		if err != nil {
			return "", err
		}
		sb.WriteString(e.String())
	}

	return sb.String(), nil
}

// Decrypt reverses Encrypt.  The normalized cipher text must have an even
// length.  Trailing Filler symbols are removed from the result, together with
// an AlternateFiller that pads a final Filler, so a plain text that really
// ends in Filler loses it.
func (c *Cipher) Decrypt(text string) (string, error) {
	symbols := []rune(c.matrix.Normalize(text))
	if len(symbols)%2 != 0 {
		return "", errors.Wrapf(cryptors.ErrInvalidInput, "cipher text has an odd number of symbols (%d)", len(symbols))
	}

	plain := make([]rune, 0, len(symbols))
	for i := 0; i < len(symbols); i += 2 {
		d, err := c.matrix.DecryptPair(Digraph{symbols[i], symbols[i+1]})
		if err != nil {
			return "", err
		}
		plain = append(plain, d[0], d[1])
	}

	return stripFiller(plain), nil
}

func stripFiller(plain []rune) string {
	if n := len(plain); n >= 2 && plain[n-1] == AlternateFiller && plain[n-2] == Filler {
		plain = plain[:n-1]
	}
	return strings.TrimRight(string(plain), string(Filler))
}
