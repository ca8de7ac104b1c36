// Package sp800185 implements the NIST SP 800-185 string encodings used by
// cSHAKE and KMAC. All values are packed little-endian, the convention of the
// Keccak family.
package sp800185

import "github.com/Giulio2002/streamhash/internal/packed"

const mod = packed.LittleEndian

// bigEndianBytes returns the shortest big-endian representation of x, at
// least one byte long.
func bigEndianBytes(x uint64) []byte {
	n := 1
	for v := x >> 8; v != 0; v >>= 8 {
		n++
	}
	out := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = byte(x)
		x >>= 8
	}
	return out
}

// LeftEncode returns left_encode(x): the byte count followed by x.
func LeftEncode(x uint64) packed.Value {
	b := bigEndianBytes(x)
	return packed.FromBytes(append([]byte{byte(len(b))}, b...), mod)
}

// RightEncode returns right_encode(x): x followed by the byte count.
func RightEncode(x uint64) packed.Value {
	b := bigEndianBytes(x)
	return packed.FromBytes(append(b, byte(len(b))), mod)
}

// EncodeString returns encode_string(v) = left_encode(len(v) in bits) || v.
func EncodeString(v packed.Value) packed.Value {
	return packed.Concat(LeftEncode(uint64(v.BitLen)), v, mod)
}

// BytePad returns bytepad(v, w) as whole words: left_encode(w) || v, zero
// filled to a multiple of w bytes. w must be a positive multiple of 4.
func BytePad(v packed.Value, w int) []uint32 {
	enc := packed.Concat(LeftEncode(uint64(w)), v, mod)
	wordsPerBlock := w >> 2
	n := (enc.ByteLen() + 3) >> 2
	if r := n % wordsPerBlock; r != 0 {
		n += wordsPerBlock - r
	}
	out := make([]uint32, n)
	copy(out, enc.Words)
	return out
}
