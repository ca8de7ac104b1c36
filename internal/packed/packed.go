// Package packed converts between external encodings (text, hex, base64, raw
// bytes) and the word-packed representation consumed by the hash families.
//
// A packed value is a slice of 32-bit words plus an exact length in bits.
// Where a byte lands inside the words depends only on the endianness
// modifier of the consuming family: SHA-1 and SHA-2 read words big-endian
// (BigEndian, -1), Keccak reads them little-endian (LittleEndian, +1). Every
// encoder and decoder in this package goes through Place so the two
// conventions can never drift apart.
package packed

import "github.com/pkg/errors"

// ErrInputFormat is returned for malformed hex or base64 input.
var ErrInputFormat = errors.New("invalid input format")

// EndianMod selects the byte placement convention inside a word.
type EndianMod int

const (
	BigEndian    EndianMod = -1
	LittleEndian EndianMod = 1
)

// Value is a bit string packed into 32-bit words. Bits past BitLen are
// ignored by every consumer.
type Value struct {
	Words  []uint32
	BitLen int
}

// ByteLen returns the number of whole bytes held by v.
func (v Value) ByteLen() int { return v.BitLen >> 3 }

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	return Value{Words: append([]uint32(nil), v.Words...), BitLen: v.BitLen}
}

// Place maps a byte offset to the word holding it and the left shift that
// moves a byte into position inside that word.
func Place(byteOffset int, mod EndianMod) (word int, shift uint) {
	base := 0
	if mod == BigEndian {
		base = 3
	}
	return byteOffset >> 2, uint(8 * (base + int(mod)*(byteOffset&3)))
}

// ByteAt extracts the byte at byteOffset.
func ByteAt(words []uint32, byteOffset int, mod EndianMod) byte {
	w, s := Place(byteOffset, mod)
	if w >= len(words) {
		return 0
	}
	return byte(words[w] >> s)
}

// putByte ORs b into words at byteOffset, growing words as needed. The
// target position must be zero.
func putByte(words []uint32, byteOffset int, b byte, mod EndianMod) []uint32 {
	w, s := Place(byteOffset, mod)
	for len(words) <= w {
		words = append(words, 0)
	}
	words[w] |= uint32(b) << s
	return words
}

// appendBytes places data after the whole bytes already held by existing.
func appendBytes(existing Value, data []byte, mod EndianMod) Value {
	words := existing.Words
	off := existing.ByteLen()
	for i, b := range data {
		words = putByte(words, off+i, b, mod)
	}
	return Value{Words: words, BitLen: existing.BitLen + 8*len(data)}
}

// FromBytes packs data into a fresh value.
func FromBytes(data []byte, mod EndianMod) Value {
	return appendBytes(Value{}, data, mod)
}

// Bytes unpacks the whole bytes of v.
func (v Value) Bytes(mod EndianMod) []byte {
	return ToBytes(v.Words, v.BitLen, mod)
}

// Concat appends the whole bytes of b after the whole bytes of a. a is not
// modified.
func Concat(a, b Value, mod EndianMod) Value {
	out := Value{Words: make([]uint32, (a.ByteLen()+3)>>2, (a.ByteLen()+b.ByteLen()+3)>>2), BitLen: a.ByteLen() * 8}
	for i := 0; i < a.ByteLen(); i++ {
		out.Words = putByte(out.Words, i, ByteAt(a.Words, i, mod), mod)
	}
	return appendBytes(out, b.Bytes(mod), mod)
}
