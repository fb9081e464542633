package permutator

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/bgallie/classicrypt/cryptors"
)

func TestApply(t *testing.T) {
	bits, err := ParseBits("1011")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		table    Table
		expected string
	}{
		{"identity", Table{1, 2, 3, 4}, "1011"},
		{"reverse", Table{4, 3, 2, 1}, "1101"},
		{"select", Table{1, 3}, "11"},
		{"expand", Table{2, 2, 2, 1, 1}, "00011"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(bits, tt.table)
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			if len(got) != len(tt.table) {
				t.Errorf("expected %d bits, got %d", len(tt.table), len(got))
			}
			if got.String() != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestApplyOutOfRange(t *testing.T) {
	bits := make(Bits, 4)
	for _, table := range []Table{{0, 1}, {1, 5}, {-1}} {
		if _, err := Apply(bits, table); !errors.Is(err, cryptors.ErrIndexOutOfRange) {
			t.Errorf("table %v: expected ErrIndexOutOfRange, got %v", table, err)
		}
	}

	if _, err := Apply(bits, Table{}); !errors.Is(err, cryptors.ErrConfiguration) {
		t.Errorf("empty table: expected ErrConfiguration, got %v", err)
	}

	if _, err := New(PC1, 32); !errors.Is(err, cryptors.ErrIndexOutOfRange) {
		t.Errorf("PC1 over 32 bits: expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestPC1Shape(t *testing.T) {
	if len(PC1) != 56 {
		t.Fatalf("PC1 has %d entries", len(PC1))
	}

	seen := make(map[int]bool)
	for _, v := range PC1 {
		if v%8 == 0 {
			t.Errorf("PC1 selects parity bit %d", v)
		}
		if seen[v] {
			t.Errorf("PC1 selects bit %d twice", v)
		}
		seen[v] = true
	}

	lines := strings.Split(strings.TrimSpace(PC1.String()), "\n")
	if len(lines) != 8 || !strings.HasPrefix(lines[0], "57  49  41") {
		t.Errorf("unexpected table rendering:\n%s", PC1)
	}
}

func TestPermuteMatchesApply(t *testing.T) {
	// Key from the classic DES walk through: K = 133457799BBCDFF1.
	key := []byte{0x13, 0x34, 0x57, 0x79, 0x9B, 0xBC, 0xDF, 0xF1}

	packed, err := Permute(key, PC1)
	if err != nil {
		t.Fatalf("Permute failed: %v", err)
	}
	if !bytes.Equal(packed, []byte{0xF0, 0xCC, 0xAA, 0xF5, 0x56, 0x67, 0x8F}) {
		t.Errorf("unexpected K+ %x", packed)
	}

	bits, err := Apply(BitsFromBytes(key), PC1)
	if err != nil {
		t.Fatal(err)
	}
	if bits.String() != "11110000110011001010101011110101010101100110011110001111" {
		t.Errorf("unexpected K+ bits %s", bits)
	}
	if !bytes.Equal(bits.Bytes(), packed) {
		t.Errorf("Apply gave %x, Permute gave %x", bits.Bytes(), packed)
	}
	if bits.Hex() != "F0CCAAF556678F" {
		t.Errorf("unexpected K+ hex %s", bits.Hex())
	}
}

func TestPermutatorWidth(t *testing.T) {
	p, err := New(PC1, KeyBits)
	if err != nil {
		t.Fatal(err)
	}
	if p.InputWidth() != 64 || p.OutputWidth() != 56 {
		t.Errorf("unexpected widths %d -> %d", p.InputWidth(), p.OutputWidth())
	}

	if _, err := p.Apply(make(Bits, 63)); !errors.Is(err, cryptors.ErrKeyLength) {
		t.Errorf("expected ErrKeyLength, got %v", err)
	}
	if _, err := p.Permute(make([]byte, 7)); !errors.Is(err, cryptors.ErrKeyLength) {
		t.Errorf("expected ErrKeyLength, got %v", err)
	}

	// Every 64 bit input permutes to 56 bits.
	for _, b := range []byte{0x00, 0xFF, 0xA5, 0x3C} {
		out, err := p.Apply(BitsFromBytes(bytes.Repeat([]byte{b}, 8)))
		if err != nil {
			t.Fatal(err)
		}
		if len(out) != 56 {
			t.Errorf("input %#x: expected 56 bits, got %d", b, len(out))
		}
	}
}

func TestBitsHex(t *testing.T) {
	tests := []struct {
		bits     string
		expected string
	}{
		{"0000", "0"},
		{"00000001", "01"},
		{"111", "7"},
		{"10100101", "A5"},
	}

	for _, tt := range tests {
		t.Run(tt.bits, func(t *testing.T) {
			b, err := ParseBits(tt.bits)
			if err != nil {
				t.Fatal(err)
			}
			if b.Hex() != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, b.Hex())
			}
		})
	}

	if _, err := ParseBits("012"); !errors.Is(err, cryptors.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
