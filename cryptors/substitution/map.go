package substitution

import (
	"sort"
	"strings"
	"unicode"

	"github.com/bgallie/classicrypt/cryptors/alphabet"
)

// Map maps a cipher text symbol to a plain text symbol.  Keys and values are
// upper case.  A partial map is valid; unmapped symbols pass through Apply
// unchanged.  A Map need not be injective: two cipher symbols mapped to the
// same plain symbol are reported by Collisions.
type Map map[rune]rune

// ShiftMap returns the Map equivalent of shifting over a by k positions.
func ShiftMap(a *alphabet.Alphabet, k int) Map {
	m := make(Map, a.Len())
	for i, r := range a.Symbols() {
		m[r] = a.At(i + k)
	}
	return m
}

// Set maps cipher symbol c to plain symbol p, replacing any prior mapping.
func (m Map) Set(c, p rune) {
	m[unicode.ToUpper(c)] = unicode.ToUpper(p)
}

func (m Map) Delete(c rune) {
	delete(m, unicode.ToUpper(c))
}

// Clone returns an independent copy of m.  Clone of a nil map is an empty map.
func (m Map) Clone() Map {
	c := make(Map, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// Equal reports whether m and o hold the same mappings.
func (m Map) Equal(o Map) bool {
	if len(m) != len(o) {
		return false
	}
	for k, v := range m {
		if ov, ok := o[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Keys returns the mapped cipher symbols in ascending order.
func (m Map) Keys() []rune {
	keys := make([]rune, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Collisions returns, for every plain symbol assigned to more than one cipher
// symbol, the sorted cipher symbols that share it.
func (m Map) Collisions() map[rune][]rune {
	byPlain := make(map[rune][]rune)
	for _, k := range m.Keys() {
		byPlain[m[k]] = append(byPlain[m[k]], k)
	}

	for p, cs := range byPlain {
		if len(cs) < 2 {
			delete(byPlain, p)
		}
	}

	return byPlain
}

// Invert returns the plain to cipher map.  The result is only meaningful for
// an injective map; on a collision the larger cipher symbol wins.
func (m Map) Invert() Map {
	inv := make(Map, len(m))
	for _, k := range m.Keys() {
		inv[m[k]] = k
	}
	return inv
}

// String renders m as "A=E B=T ..." in cipher symbol order.
func (m Map) String() string {
	pairs := make([]string, 0, len(m))
	for _, k := range m.Keys() {
		pairs = append(pairs, string(k)+"="+string(m[k]))
	}
	return strings.Join(pairs, " ")
}

// Apply substitutes every symbol of text through m.  Lookups ignore case and
// the case of the original symbol is kept.  Unmapped symbols, including every
// non-letter, are copied unchanged.
func Apply(text string, m Map) string {
	var sb strings.Builder
	sb.Grow(len(text))

	for _, r := range text {
		p, ok := m[unicode.ToUpper(r)]
		switch {
		case !ok:
			sb.WriteRune(r)
		case unicode.IsLower(r):
			sb.WriteRune(unicode.ToLower(p))
		default:
			sb.WriteRune(unicode.ToUpper(p))
		}
	}

	return sb.String()
}
