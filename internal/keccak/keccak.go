// Package keccak implements the Keccak-f[1600] sponge behind SHA-3, SHAKE,
// cSHAKE, KMAC and the pre-standard Keccak-256.
//
// The state is a 5x5 matrix of 64-bit lanes indexed [x][y]. Message blocks
// arrive word-packed little-endian (packed.LittleEndian): lane x+5y is built
// from words 2(x+5y) (low half) and 2(x+5y)+1 (high half). The rate and the
// domain delimiter are the only things that differ between variants.
package keccak

import "github.com/Giulio2002/streamhash/internal/arith"

// Domain delimiters, XORed into the first free byte of the final block.
const (
	DelimKeccak byte = 0x01
	DelimCSHAKE byte = 0x04
	DelimSHA3   byte = 0x06
	DelimSHAKE  byte = 0x1f
)

// Rates in bits.
const (
	Rate128  = 1344
	Rate224  = 1152
	Rate256  = 1088
	Rate384  = 832
	Rate512  = 576
	laneBits = 64
)

// State is the 1600-bit sponge state.
type State [5][5]uint64

// Sponge is one Keccak variant: a rate in bits and a domain delimiter.
type Sponge struct {
	Rate      int
	Delimiter byte
}

func (Sponge) NewState() State { return State{} }

func (Sponge) Clone(s State) State { return s }

// Round XORs a rate-sized block into s and permutes. A nil block only
// permutes.
func (Sponge) Round(block []uint32, s State) State {
	for i := 0; i+1 < len(block); i += 2 {
		lane := i >> 1
		s[lane%5][lane/5] ^= arith.Join(block[i+1], block[i])
	}
	keccakF1600(&s)
	return s
}

// Finalize absorbs every whole block still in the remainder, pads the rest
// with the delimiter and the final 0x80 bit, and squeezes outputBits of
// output. processedBits is not part of the sponge padding and is ignored.
func (sp Sponge) Finalize(remainder []uint32, remainderBits int, _ uint64, s State, outputBits int) []uint32 {
	rateWords := sp.Rate / 32
	i := 0
	for ; remainderBits >= sp.Rate; i += rateWords {
		s = sp.Round(remainder[i:i+rateWords], s)
		remainderBits -= sp.Rate
	}

	last := make([]uint32, rateWords)
	copy(last, remainder[i:min(len(remainder), i+(remainderBits+31)/32)])
	if r := remainderBits % 32; r != 0 {
		last[remainderBits/32] &= 1<<r - 1
	}
	n := remainderBits >> 3
	last[n>>2] ^= uint32(sp.Delimiter) << (8 * (n & 3))
	last[rateWords-1] ^= 0x80000000
	s = sp.Round(last, s)

	return sp.squeeze(s, outputBits)
}

// squeeze emits lanes low word first in x-then-y order, permuting each time
// a full rate has been read.
func (sp Sponge) squeeze(s State, outputBits int) []uint32 {
	out := make([]uint32, 0, (outputBits+31)/32)
	lane := 0
	for len(out)*32 < outputBits {
		hi, lo := arith.Split(s[lane%5][lane/5])
		out = append(out, lo)
		if len(out)*32 >= outputBits {
			break
		}
		out = append(out, hi)
		lane++
		if lane*laneBits%sp.Rate == 0 {
			keccakF1600(&s)
			lane = 0
		}
	}
	return out
}

// SHA3 returns the SHA3 sponge for a digest of size bits.
func SHA3(size int) Sponge { return Sponge{Rate: 1600 - 2*size, Delimiter: DelimSHA3} }

// SHAKE returns the SHAKE sponge at the given security level.
func SHAKE(level int) Sponge { return Sponge{Rate: 1600 - 2*level, Delimiter: DelimSHAKE} }

// CSHAKE returns the cSHAKE sponge at the given security level.
func CSHAKE(level int) Sponge { return Sponge{Rate: 1600 - 2*level, Delimiter: DelimCSHAKE} }
