package md

import "github.com/Giulio2002/streamhash/internal/arith"

const (
	sha1BlockWords = 16
	// SHA1BlockSize is the block size of SHA-1 in bits.
	SHA1BlockSize = 512
	// SHA1Size is the digest size of SHA-1 in bits.
	SHA1Size = 160
)

// SHA1State is the five-word chaining value.
type SHA1State [5]uint32

var sha1IV = SHA1State{0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476, 0xc3d2e1f0}

// SHA1 is the SHA-1 family.
type SHA1 struct{}

func (SHA1) NewState() SHA1State { return sha1IV }

func (SHA1) Clone(s SHA1State) SHA1State { return s }

// Round compresses one 16-word block into h.
func (SHA1) Round(block []uint32, h SHA1State) SHA1State {
	var w [80]uint32
	copy(w[:16], block[:16])
	for t := 16; t < 80; t++ {
		w[t] = arith.Rotl32(w[t-3]^w[t-8]^w[t-14]^w[t-16], 1)
	}

	a, b, c, d, e := h[0], h[1], h[2], h[3], h[4]
	for t := 0; t < 80; t++ {
		var f, k uint32
		switch {
		case t < 20:
			f, k = arith.Ch(b, c, d), 0x5a827999
		case t < 40:
			f, k = arith.Parity(b, c, d), 0x6ed9eba1
		case t < 60:
			f, k = arith.Maj(b, c, d), 0x8f1bbcdc
		default:
			f, k = arith.Parity(b, c, d), 0xca62c1d6
		}
		tmp := arith.Add5(arith.Rotl32(a, 5), f, e, k, w[t])
		e, d, c, b, a = d, c, arith.Rotl32(b, 30), a, tmp
	}

	h[0] = arith.Add2(a, h[0])
	h[1] = arith.Add2(b, h[1])
	h[2] = arith.Add2(c, h[2])
	h[3] = arith.Add2(d, h[3])
	h[4] = arith.Add2(e, h[4])
	return h
}

// Finalize pads the remainder, compresses the final blocks and returns the
// five digest words. outputBits is ignored.
func (f SHA1) Finalize(remainder []uint32, remainderBits int, processedBits uint64, h SHA1State, _ int) []uint32 {
	padded := pad(remainder, remainderBits, processedBits, sha1BlockWords, 2)
	for i := 0; i < len(padded); i += sha1BlockWords {
		h = f.Round(padded[i:i+sha1BlockWords], h)
	}
	return h[:]
}
