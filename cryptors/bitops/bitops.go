// bitops project bitops.go
package bitops

import (
	"strings"

	"github.com/bgallie/classicrypt/cryptors"
	"github.com/friendsofgo/errors"
)

// Bits are numbered from 0 starting at the most significant bit of ary[0],
// which is the numbering used by the DES permutation tables.

func SetBit(ary []byte, bit uint) []byte {
	ary[bit>>3] |= 0x80 >> (bit & 7)
	return ary
}

func ClrBit(ary []byte, bit uint) []byte {
	ary[bit>>3] &= ^byte(0x80 >> (bit & 7))
	return ary
}

func GetBit(ary []byte, bit uint) bool {
	return ary[bit>>3]&(0x80>>(bit&7)) != 0
}

// ToBinary renders ary as a string of '0' and '1', 8 characters per byte.
func ToBinary(ary []byte) string {
	var sb strings.Builder
	sb.Grow(len(ary) * cryptors.BitsPerByte)

	for i := uint(0); i < uint(len(ary))*cryptors.BitsPerByte; i++ {
		if GetBit(ary, i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}

	return sb.String()
}

// FromBinary packs a string of '0' and '1' into bytes.  A length that is not
// a multiple of 8 leaves the low order bits of the last byte clear.
func FromBinary(s string) ([]byte, error) {
	ary := make([]byte, (len(s)+cryptors.BitsPerByte-1)/cryptors.BitsPerByte)

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '1':
			SetBit(ary, uint(i))
		case '0':
		default:
			return nil, errors.Wrapf(cryptors.ErrInvalidInput, "invalid binary digit %q at offset %d", s[i], i)
		}
	}

	return ary, nil
}
