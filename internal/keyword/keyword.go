// Package keyword implements Vellum's keyword lookup as a perfect-hash
// table keyed by (first_byte, last_byte, length) mod 128, with a
// length-dispatched switch bypass for short lexemes. Both paths must
// agree with each other and with token.Keywords; keyword_test.go
// round-trips every entry through Lookup, which sends lexemes of five
// bytes or fewer to the switch and longer ones to the table.
package keyword

import (
	"github.com/cespare/xxhash/v2"

	"github.com/vellum-lang/vellum/token"
)

const buckets = 128

type slot struct {
	spelling string
	kind     token.Kind
}

var table [buckets]slot

func init() {
	for spelling, kind := range token.Keywords {
		b := bucketFor(spelling[0], spelling[len(spelling)-1], len(spelling))
		if table[b].spelling != "" && table[b].spelling != spelling {
			panic("keyword: perfect-hash collision between " + table[b].spelling + " and " + spelling)
		}
		table[b] = slot{spelling: spelling, kind: kind}
	}
}

// bucketFor computes the table slot for the (first_byte, last_byte,
// length) key. xxhash mixes the 3-byte key into a bucket index; the
// first and last bytes are XORed with fixed salts, chosen so that the
// fixed keyword set lands in distinct buckets. The table is verified
// collision-free at init time, so lookups never need a probe sequence.
func bucketFor(first, last byte, length int) int {
	const saltFirst, saltLast = 5, 135
	key := [3]byte{first ^ saltFirst, last ^ saltLast, byte(length)}
	return int(xxhash.Sum64(key[:]) % buckets)
}

// Lookup classifies an identifier-shaped lexeme as a keyword. On a
// table miss, or a bucket whose stored spelling doesn't byte-for-byte
// match text (hash collision between a keyword and a non-keyword
// identifier of the same (first,last,length) key), it reports !ok and
// the caller treats the lexeme as a plain Identifier.
func Lookup(text []byte) (kind token.Kind, ok bool) {
	if len(text) == 0 {
		return token.Identifier, false
	}

	if len(text) <= 5 {
		return lookupShort(text)
	}

	b := bucketFor(text[0], text[len(text)-1], len(text))
	s := table[b]
	if s.spelling == "" || len(s.spelling) != len(text) || s.spelling != string(text) {
		return token.Identifier, false
	}
	return s.kind, true
}

// lookupShort bypasses the hash table for lexemes of five bytes or
// fewer via a length-dispatched switch, per the spec's stated
// optimization — semantics are identical to the table path, just
// faster for the common case of short keywords.
func lookupShort(s []byte) (token.Kind, bool) {
	switch len(s) {
	case 2:
		switch string(s) {
		case "if":
			return token.KwIf, true
		case "in":
			return token.KwIn, true
		case "fn":
			return token.KwFn, true
		case "as":
			return token.KwAs, true
		case "i8":
			return token.KwI8, true
		case "u8":
			return token.KwU8, true
		}
	case 3:
		switch string(s) {
		case "i16":
			return token.KwI16, true
		case "i32":
			return token.KwI32, true
		case "i64":
			return token.KwI64, true
		case "u16":
			return token.KwU16, true
		case "u32":
			return token.KwU32, true
		case "u64":
			return token.KwU64, true
		case "f32":
			return token.KwF32, true
		case "f64":
			return token.KwF64, true
		case "str":
			return token.KwStr, true
		case "for":
			return token.KwFor, true
		case "use":
			return token.KwUse, true
		case "mut":
			return token.KwMut, true
		case "pub":
			return token.KwPub, true
		}
	case 4:
		switch string(s) {
		case "bool":
			return token.KwBool, true
		case "char":
			return token.KwChar, true
		case "else":
			return token.KwElse, true
		case "loop":
			return token.KwLoop, true
		case "enum":
			return token.KwEnum, true
		case "this":
			return token.KwThis, true
		case "true":
			return token.KwTrue, true
		case "impl":
			return token.KwImpl, true
		case "fast":
			return token.KwFast, true
		}
	case 5:
		switch string(s) {
		case "while":
			return token.KwWhile, true
		case "match":
			return token.KwMatch, true
		case "break":
			return token.KwBreak, true
		case "trait":
			return token.KwTrait, true
		case "union":
			return token.KwUnion, true
		case "const":
			return token.KwConst, true
		case "async":
			return token.KwAsync, true
		case "await":
			return token.KwAwait, true
		case "false":
			return token.KwFalse, true
		}
	}
	return token.Identifier, false
}
