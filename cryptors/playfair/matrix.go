// Package playfair implements the Playfair digraph substitution cipher over a
// keyed 5 column matrix.  The default matrix has 6 rows holding the Latin
// letters without J followed by the Romanian letters ȘȚĂÎÂ; the classic
// matrix has 5 rows and only the Latin letters.
package playfair

import (
	"strings"
	"unicode"

	"github.com/bgallie/classicrypt/cryptors"
	"github.com/bgallie/classicrypt/cryptors/alphabet"
	"github.com/friendsofgo/errors"
)

const (
	Columns = 5
	// Filler completes an odd final digraph and splits a pair of identical
	// symbols.
	Filler = 'X'
	// AlternateFiller is used where Filler itself would form the pair.
	AlternateFiller = 'Q'
)

// Variant selects the matrix layout.
type Variant int

const (
	Extended Variant = iota // 6x5, Latin without J plus ȘȚĂÎÂ
	Classic                 // 5x5, Latin without J
)

// ParseVariant accepts "6x5" or "extended" and "5x5" or "classic".
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "6x5", "extended":
		return Extended, nil
	case "5x5", "classic":
		return Classic, nil
	}
	return Extended, errors.Wrapf(cryptors.ErrConfiguration, "unknown matrix variant %q", s)
}

func (v Variant) String() string {
	if v == Classic {
		return "5x5"
	}
	return "6x5"
}

type options struct {
	variant     Variant
	excluded    rune
	replacement rune
}

// Option configures a Matrix.
type Option func(*options)

// WithVariant selects the matrix layout.
func WithVariant(v Variant) Option {
	return func(o *options) { o.variant = v }
}

// WithExcluded sets the letter left out of the matrix and the letter it is
// collapsed onto in keywords and text.  The default is J collapsed onto I.
func WithExcluded(excluded, replacement rune) Option {
	return func(o *options) {
		o.excluded = unicode.ToUpper(excluded)
		o.replacement = unicode.ToUpper(replacement)
	}
}

// Matrix is an immutable Playfair grid.
type Matrix struct {
	grid        *alphabet.Alphabet
	rows        int
	variant     Variant
	excluded    rune
	replacement rune
}

// NewMatrix builds the grid for keyword: the keyword symbols first, each
// once, then the rest of the matrix alphabet in natural order.  Keyword
// symbols outside the matrix alphabet are ignored.
func NewMatrix(keyword string, opts ...Option) (*Matrix, error) {
	o := options{variant: Extended, excluded: 'J', replacement: 'I'}
	for _, opt := range opts {
		opt(&o)
	}

	base, err := alphabet.Keyed("", alphabet.Natural(), o.excluded)
	if err != nil {
		return nil, err
	}
	if o.variant == Extended {
		if base, err = base.Extend(alphabet.Romanian); err != nil {
			return nil, err
		}
	}
	if base.Len()%Columns != 0 {
		return nil, errors.Wrapf(cryptors.ErrConfiguration, "%d symbols do not fill rows of %d", base.Len(), Columns)
	}
	for _, r := range []rune{o.replacement, Filler, AlternateFiller} {
		if !base.Contains(r) {
			return nil, errors.Wrapf(cryptors.ErrConfiguration, "symbol %q is not part of the matrix", r)
		}
	}

	m := &Matrix{
		rows:        base.Len() / Columns,
		variant:     o.variant,
		excluded:    o.excluded,
		replacement: o.replacement,
	}
	if m.grid, err = alphabet.Keyed(m.collapse(keyword), base); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Matrix) Rows() int {
	return m.rows
}

func (m *Matrix) Cols() int {
	return Columns
}

func (m *Matrix) Variant() Variant {
	return m.variant
}

// Alphabet returns the matrix symbols in row major order.
func (m *Matrix) Alphabet() *alphabet.Alphabet {
	return m.grid
}

// Position returns the row and column of r.
func (m *Matrix) Position(r rune) (row, col int, ok bool) {
	idx, ok := m.grid.Index(r)
	if !ok {
		return 0, 0, false
	}
	return idx / Columns, idx % Columns, true
}

// At returns the symbol at row, col.  Both wrap around.
func (m *Matrix) At(row, col int) rune {
	return m.grid.At(alphabet.Mod(row, m.rows)*Columns + alphabet.Mod(col, Columns))
}

// Normalize upper cases text, collapses the excluded letter onto its
// replacement and drops every symbol that is not in the matrix.
func (m *Matrix) Normalize(text string) string {
	return m.grid.Normalize(m.collapse(text))
}

func (m *Matrix) collapse(text string) string {
	return strings.Map(func(r rune) rune {
		if r = unicode.ToUpper(r); r == m.excluded {
			return m.replacement
		}
		return r
	}, text)
}

// String renders the matrix one row per line.
func (m *Matrix) String() string {
	var sb strings.Builder
	symbols := m.grid.Symbols()

	for row := 0; row < m.rows; row++ {
		for col, r := range symbols[row*Columns : (row+1)*Columns] {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteRune(r)
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
