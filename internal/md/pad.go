// Package md implements the Merkle–Damgård SHA families: SHA-1, SHA-224,
// SHA-256, SHA-384 and SHA-512.
//
// Blocks and remainders are word-packed big-endian (packed.BigEndian).
package md

// pad appends the FIPS 180-4 padding to the first remainderBits bits of
// remainder: a single 1 bit, zeros, and the total message length in the
// last lenWords words of the final block. blockWords is the block size in
// words. The caller's slice is not modified.
func pad(remainder []uint32, remainderBits int, processedBits uint64, blockWords, lenWords int) []uint32 {
	blockBits := blockWords * 32
	lenBits := lenWords * 32
	// The 1 bit and the length field must both fit after the remainder.
	nBlocks := (remainderBits+lenBits+1)/blockBits + 1
	offset := nBlocks*blockWords - 1

	out := make([]uint32, offset+1)
	copy(out, remainder[:min(len(remainder), (remainderBits+31)/32)])
	if r := remainderBits % 32; r != 0 {
		out[remainderBits/32] &= ^uint32(0) << (32 - r)
	}

	out[remainderBits>>5] |= 1 << (31 - remainderBits%32)

	total := uint64(remainderBits) + processedBits
	out[offset] = uint32(total)
	out[offset-1] = uint32(total >> 32)
	return out
}
