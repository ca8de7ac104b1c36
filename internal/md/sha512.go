package md

import "github.com/Giulio2002/streamhash/internal/arith"

const (
	sha512BlockWords = 32
	// SHA512BlockSize is the block size of SHA-384 and SHA-512 in bits.
	SHA512BlockSize = 1024
)

// SHA512State is the eight double-word chaining value of SHA-384 and
// SHA-512.
type SHA512State [8]uint64

var k512 = [80]uint64{
	0x428a2f98d728ae22, 0x7137449123ef65cd, 0xb5c0fbcfec4d3b2f, 0xe9b5dba58189dbbc,
	0x3956c25bf348b538, 0x59f111f1b605d019, 0x923f82a4af194f9b, 0xab1c5ed5da6d8118,
	0xd807aa98a3030242, 0x12835b0145706fbe, 0x243185be4ee4b28c, 0x550c7dc3d5ffb4e2,
	0x72be5d74f27b896f, 0x80deb1fe3b1696b1, 0x9bdc06a725c71235, 0xc19bf174cf692694,
	0xe49b69c19ef14ad2, 0xefbe4786384f25e3, 0x0fc19dc68b8cd5b5, 0x240ca1cc77ac9c65,
	0x2de92c6f592b0275, 0x4a7484aa6ea6e483, 0x5cb0a9dcbd41fbd4, 0x76f988da831153b5,
	0x983e5152ee66dfab, 0xa831c66d2db43210, 0xb00327c898fb213f, 0xbf597fc7beef0ee4,
	0xc6e00bf33da88fc2, 0xd5a79147930aa725, 0x06ca6351e003826f, 0x142929670a0e6e70,
	0x27b70a8546d22ffc, 0x2e1b21385c26c926, 0x4d2c6dfc5ac42aed, 0x53380d139d95b3df,
	0x650a73548baf63de, 0x766a0abb3c77b2a8, 0x81c2c92e47edaee6, 0x92722c851482353b,
	0xa2bfe8a14cf10364, 0xa81a664bbc423001, 0xc24b8b70d0f89791, 0xc76c51a30654be30,
	0xd192e819d6ef5218, 0xd69906245565a910, 0xf40e35855771202a, 0x106aa07032bbd1b8,
	0x19a4c116b8d2d0c8, 0x1e376c085141ab53, 0x2748774cdf8eeb99, 0x34b0bcb5e19b48a8,
	0x391c0cb3c5c95a63, 0x4ed8aa4ae3418acb, 0x5b9cca4f7763e373, 0x682e6ff3d6b2b8a3,
	0x748f82ee5defb2fc, 0x78a5636f43172f60, 0x84c87814a1f0ab72, 0x8cc702081a6439ec,
	0x90befffa23631e28, 0xa4506cebde82bde9, 0xbef9a3f7b2c67915, 0xc67178f2e372532b,
	0xca273eceea26619c, 0xd186b8c721c0c207, 0xeada7dd6cde0eb1e, 0xf57d4f7fee6ed178,
	0x06f067aa72176fba, 0x0a637dc5a2c898a6, 0x113f9804bef90dae, 0x1b710b35131c471b,
	0x28db77f523047d84, 0x32caab7b40c72493, 0x3c9ebe0a15c9bebc, 0x431d67c49c100d4c,
	0x4cc5d4becb3e42b6, 0x597f299cfc657e2a, 0x5fcb6fab3ad6faec, 0x6c44198c4a475817,
}

var (
	sha384IV = SHA512State{
		0xcbbb9d5dc1059ed8, 0x629a292a367cd507, 0x9159015a3070dd17, 0x152fecd8f70e5939,
		0x67332667ffc00b31, 0x8eb44a8768581511, 0xdb0c2e0d64f98fa7, 0x47b5481dbefa4fa4,
	}
	sha512IV = SHA512State{
		0x6a09e667f3bcc908, 0xbb67ae8584caa73b, 0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
		0x510e527fade682d1, 0x9b05688c2b3e6c1f, 0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
	}
)

// SHA512 is the SHA-384/SHA-512 family. The zero value is SHA-512.
type SHA512 struct {
	Is384 bool
}

// Size returns the digest size in bits.
func (f SHA512) Size() int {
	if f.Is384 {
		return 384
	}
	return 512
}

func (f SHA512) NewState() SHA512State {
	if f.Is384 {
		return sha384IV
	}
	return sha512IV
}

func (SHA512) Clone(s SHA512State) SHA512State { return s }

// Round compresses one 32-word block into h. Each message double-word is
// built from a high word followed by a low word.
func (SHA512) Round(block []uint32, h SHA512State) SHA512State {
	var w [80]uint64
	for t := 0; t < 16; t++ {
		w[t] = arith.Join(block[2*t], block[2*t+1])
	}
	for t := 16; t < 80; t++ {
		w[t] = arith.Add4x64(arith.Gamma1x64(w[t-2]), w[t-7], arith.Gamma0x64(w[t-15]), w[t-16])
	}

	a, b, c, d, e, f, g, hh := h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7]
	for t := 0; t < 80; t++ {
		t1 := arith.Add5x64(hh, arith.Sigma1x64(e), arith.Ch64(e, f, g), k512[t], w[t])
		t2 := arith.Add2x64(arith.Sigma0x64(a), arith.Maj64(a, b, c))
		hh, g, f, e, d, c, b, a = g, f, e, arith.Add2x64(d, t1), c, b, a, arith.Add2x64(t1, t2)
	}

	h[0] = arith.Add2x64(a, h[0])
	h[1] = arith.Add2x64(b, h[1])
	h[2] = arith.Add2x64(c, h[2])
	h[3] = arith.Add2x64(d, h[3])
	h[4] = arith.Add2x64(e, h[4])
	h[5] = arith.Add2x64(f, h[5])
	h[6] = arith.Add2x64(g, h[6])
	h[7] = arith.Add2x64(hh, h[7])
	return h
}

// Finalize pads the remainder with a 128-bit length field, compresses the
// final blocks and returns the digest as high/low word pairs. SHA-384
// returns the first six double-words.
func (fam SHA512) Finalize(remainder []uint32, remainderBits int, processedBits uint64, h SHA512State, _ int) []uint32 {
	padded := pad(remainder, remainderBits, processedBits, sha512BlockWords, 4)
	for i := 0; i < len(padded); i += sha512BlockWords {
		h = fam.Round(padded[i:i+sha512BlockWords], h)
	}
	out := make([]uint32, 0, fam.Size()/32)
	for _, x := range h[:fam.Size()/64] {
		hi, lo := arith.Split(x)
		out = append(out, hi, lo)
	}
	return out
}
