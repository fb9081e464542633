// permutator project permutator.go
package permutator

import (
	"bytes"
	"fmt"
	"math/big"
	"strings"

	"github.com/bgallie/classicrypt/cryptors"
	"github.com/bgallie/classicrypt/cryptors/bitops"
	"github.com/friendsofgo/errors"
)

// Table is a bit permutation table.  Entry i holds the 1-based position of
// the input bit that becomes output bit i, so the table length is the output
// width.
type Table []int

// PC1 is the DES Permuted Choice 1 table.  It selects 56 of the 64 key bits,
// dropping every eighth (parity) bit.
var PC1 = Table{
	57, 49, 41, 33, 25, 17, 9,
	1, 58, 50, 42, 34, 26, 18,
	10, 2, 59, 51, 43, 35, 27,
	19, 11, 3, 60, 52, 44, 36,
	63, 55, 47, 39, 31, 23, 15,
	7, 62, 54, 46, 38, 30, 22,
	14, 6, 61, 53, 45, 37, 29,
	21, 13, 5, 28, 20, 12, 4,
}

// Validate checks that every entry addresses a bit of a width bit input.
func (t Table) Validate(width int) error {
	if len(t) == 0 {
		return errors.Wrap(cryptors.ErrConfiguration, "empty permutation table")
	}

	for i, v := range t {
		if v < 1 || v > width {
			return errors.Wrapf(cryptors.ErrIndexOutOfRange, "table entry %d is %d, outside [1, %d]", i, v, width)
		}
	}

	return nil
}

// Format renders the table with cols entries per row.
func (t Table) Format(cols int) string {
	var output bytes.Buffer

	for i, v := range t {
		if i > 0 {
			if i%cols == 0 {
				output.WriteString("\n")
			} else {
				output.WriteString("  ")
			}
		}
		output.WriteString(fmt.Sprintf("%2d", v))
	}

	output.WriteString("\n")
	return output.String()
}

func (t Table) String() string {
	return t.Format(7)
}

// Bits is an ordered sequence of bit values, each 0 or 1.
type Bits []uint8

// BitsFromBytes unpacks p, most significant bit first.
func BitsFromBytes(p []byte) Bits {
	b := make(Bits, len(p)*cryptors.BitsPerByte)
	for i := range b {
		if bitops.GetBit(p, uint(i)) {
			b[i] = 1
		}
	}
	return b
}

// ParseBits parses a string of '0' and '1'.
func ParseBits(s string) (Bits, error) {
	b := make(Bits, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
		case '1':
			b[i] = 1
		default:
			return nil, errors.Wrapf(cryptors.ErrInvalidInput, "invalid bit %q at offset %d", s[i], i)
		}
	}
	return b, nil
}

// Bytes packs b most significant bit first.  A trailing partial byte is
// padded with zero bits.
func (b Bits) Bytes() []byte {
	p := make([]byte, (len(b)+cryptors.BitsPerByte-1)/cryptors.BitsPerByte)
	for i, v := range b {
		if v != 0 {
			bitops.SetBit(p, uint(i))
		}
	}
	return p
}

// String renders b as a binary string.
func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, v := range b {
		sb.WriteByte('0' + v)
	}
	return sb.String()
}

// Hex renders b as an upper case hexadecimal number, zero padded to one digit
// per 4 bits.
func (b Bits) Hex() string {
	if len(b) == 0 {
		return ""
	}

	n, _ := new(big.Int).SetString(b.String(), 2)
	digits := (len(b) + 3) / 4
	h := strings.ToUpper(n.Text(16))

	return strings.Repeat("0", digits-len(h)) + h
}

// Apply permutes bits through table: output bit i is bits[table[i]-1].  It
// fails with cryptors.ErrIndexOutOfRange if an entry addresses a bit outside
// the input.
func Apply(bits Bits, table Table) (Bits, error) {
	if err := table.Validate(len(bits)); err != nil {
		return nil, err
	}

	res := make(Bits, len(table))
	for i, v := range table {
		res[i] = bits[v-1]
	}

	return res, nil
}

// Permute applies table to a packed block, most significant bit first.  The
// result has len(table) bits, zero padded to a whole byte.
func Permute(block []byte, table Table) ([]byte, error) {
	if err := table.Validate(len(block) * cryptors.BitsPerByte); err != nil {
		return nil, err
	}

	res := make([]byte, (len(table)+cryptors.BitsPerByte-1)/cryptors.BitsPerByte)
	for i, v := range table {
		if bitops.GetBit(block, uint(v-1)) {
			bitops.SetBit(res, uint(i))
		}
	}

	return res, nil
}

// Permutator is a permutation table bound to a fixed input width.  The table
// is validated once, when the Permutator is created.
type Permutator struct {
	table Table
	width int
}

// New creates a Permutator for inputs of width bits.
func New(table Table, width int) (*Permutator, error) {
	if err := table.Validate(width); err != nil {
		return nil, err
	}

	p := Permutator{table: make(Table, len(table)), width: width}
	copy(p.table, table)
	return &p, nil
}

// InputWidth returns the number of input bits the Permutator expects.
func (p *Permutator) InputWidth() int {
	return p.width
}

// OutputWidth returns the number of bits the Permutator produces.
func (p *Permutator) OutputWidth() int {
	return len(p.table)
}

func (p *Permutator) Apply(bits Bits) (Bits, error) {
	if len(bits) != p.width {
		return nil, errors.Wrapf(cryptors.ErrKeyLength, "expected %d bits, got %d", p.width, len(bits))
	}
	return Apply(bits, p.table)
}

func (p *Permutator) Permute(block []byte) ([]byte, error) {
	if len(block)*cryptors.BitsPerByte != p.width {
		return nil, errors.Wrapf(cryptors.ErrKeyLength, "expected %d bits, got %d", p.width, len(block)*cryptors.BitsPerByte)
	}
	return Permute(block, p.table)
}

func (p *Permutator) String() string {
	return p.table.String()
}
