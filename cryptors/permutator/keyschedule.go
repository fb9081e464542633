package permutator

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bgallie/classicrypt/cryptors"
	"github.com/friendsofgo/errors"
)

const (
	KeySymbols = 8
	KeyBits    = KeySymbols * cryptors.BitsPerByte
)

var pc1 = mustNew(PC1, KeyBits)

func mustNew(t Table, width int) *Permutator {
	p, err := New(t, width)
	if err != nil {
		panic(err)
	}
	return p
}

// TextToBits encodes every symbol of text as its 8 bit ASCII code, most
// significant bit first, and concatenates the codes.  Only printable ASCII
// symbols are accepted.  It fails with cryptors.ErrKeyLength unless the
// result is exactly width bits.
func TextToBits(text string, width int) (Bits, error) {
	if n := utf8.RuneCountInString(text); n*cryptors.BitsPerByte != width {
		return nil, errors.Wrapf(cryptors.ErrKeyLength, "%d symbols encode %d bits, expected %d", n, n*cryptors.BitsPerByte, width)
	}

	for i, r := range text {
		if r < ' ' || r > '~' {
			return nil, errors.Wrapf(cryptors.ErrInvalidInput, "symbol %q at offset %d is not printable ASCII", r, i)
		}
	}

	return BitsFromBytes([]byte(text)), nil
}

// KeySchedule holds the representations of a DES key through the PC-1 step.
type KeySchedule struct {
	Key            string // the 8 symbol key
	Hex            string // key bytes, lower case hexadecimal
	Binary         string // 64 bit binary string
	PermutedBinary string // K+, 56 bit binary string
	PermutedHex    string // K+, 14 digit upper case hexadecimal
}

// NewKeySchedule runs an 8 symbol key through PC-1.
func NewKeySchedule(key string) (*KeySchedule, error) {
	bits, err := TextToBits(key, KeyBits)
	if err != nil {
		return nil, err
	}

	permuted, err := pc1.Apply(bits)
	if err != nil {
		return nil, err
	}

	return &KeySchedule{
		Key:            key,
		Hex:            hex.EncodeToString([]byte(key)),
		Binary:         bits.String(),
		PermutedBinary: permuted.String(),
		PermutedHex:    permuted.Hex(),
	}, nil
}

// Verify derives each representation from its neighbour independently and
// reports a cryptors.ErrConfiguration if any of them disagree.
func (ks *KeySchedule) Verify() error {
	raw, err := hex.DecodeString(ks.Hex)
	if err != nil {
		return errors.Wrapf(cryptors.ErrConfiguration, "hex key: %v", err)
	}
	if !bytes.Equal(raw, []byte(ks.Key)) {
		return errors.Wrap(cryptors.ErrConfiguration, "hex key does not encode the key")
	}
	if BitsFromBytes(raw).String() != ks.Binary {
		return errors.Wrap(cryptors.ErrConfiguration, "binary key does not match the hex key")
	}

	packed, err := pc1.Permute(raw)
	if err != nil {
		return err
	}
	if got := BitsFromBytes(packed)[:pc1.OutputWidth()].String(); got != ks.PermutedBinary {
		return errors.Wrap(cryptors.ErrConfiguration, "permuted binary does not match the packed permutation")
	}

	permuted, err := ParseBits(ks.PermutedBinary)
	if err != nil {
		return err
	}
	if permuted.Hex() != ks.PermutedHex {
		return errors.Wrap(cryptors.ErrConfiguration, "permuted hex does not match the permuted binary")
	}

	return nil
}

func (ks *KeySchedule) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Original Key (String): %s\n", ks.Key)
	fmt.Fprintf(&sb, "Hexadecimal Key: %s\n", ks.Hex)
	fmt.Fprintf(&sb, "Binary Key: %s\n", ks.Binary)
	fmt.Fprintf(&sb, "Permuted Key K+ (Binary): %s\n", ks.PermutedBinary)
	fmt.Fprintf(&sb, "Permuted Key K+ (Hex): %s\n", ks.PermutedHex)
	return sb.String()
}
