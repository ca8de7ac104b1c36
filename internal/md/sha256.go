package md

import "github.com/Giulio2002/streamhash/internal/arith"

const (
	sha256BlockWords = 16
	// SHA256BlockSize is the block size of SHA-224 and SHA-256 in bits.
	SHA256BlockSize = 512
)

// SHA256State is the eight-word chaining value of SHA-224 and SHA-256.
type SHA256State [8]uint32

var k256 = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

var (
	sha224IV = SHA256State{0xc1059ed8, 0x367cd507, 0x3070dd17, 0xf70e5939, 0xffc00b31, 0x68581511, 0x64f98fa7, 0xbefa4fa4}
	sha256IV = SHA256State{0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a, 0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19}
)

// SHA256 is the SHA-224/SHA-256 family. The zero value is SHA-256.
type SHA256 struct {
	Is224 bool
}

// Size returns the digest size in bits.
func (f SHA256) Size() int {
	if f.Is224 {
		return 224
	}
	return 256
}

func (f SHA256) NewState() SHA256State {
	if f.Is224 {
		return sha224IV
	}
	return sha256IV
}

func (SHA256) Clone(s SHA256State) SHA256State { return s }

// Round compresses one 16-word block into h.
func (SHA256) Round(block []uint32, h SHA256State) SHA256State {
	var w [64]uint32
	copy(w[:16], block[:16])
	for t := 16; t < 64; t++ {
		w[t] = arith.Add4(arith.Gamma1(w[t-2]), w[t-7], arith.Gamma0(w[t-15]), w[t-16])
	}

	a, b, c, d, e, f, g, hh := h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7]
	for t := 0; t < 64; t++ {
		t1 := arith.Add5(hh, arith.Sigma1(e), arith.Ch(e, f, g), k256[t], w[t])
		t2 := arith.Add2(arith.Sigma0(a), arith.Maj(a, b, c))
		hh, g, f, e, d, c, b, a = g, f, e, arith.Add2(d, t1), c, b, a, arith.Add2(t1, t2)
	}

	h[0] = arith.Add2(a, h[0])
	h[1] = arith.Add2(b, h[1])
	h[2] = arith.Add2(c, h[2])
	h[3] = arith.Add2(d, h[3])
	h[4] = arith.Add2(e, h[4])
	h[5] = arith.Add2(f, h[5])
	h[6] = arith.Add2(g, h[6])
	h[7] = arith.Add2(hh, h[7])
	return h
}

// Finalize pads the remainder and compresses the final blocks. SHA-224
// returns the first seven words of its own chaining value.
func (fam SHA256) Finalize(remainder []uint32, remainderBits int, processedBits uint64, h SHA256State, _ int) []uint32 {
	padded := pad(remainder, remainderBits, processedBits, sha256BlockWords, 2)
	for i := 0; i < len(padded); i += sha256BlockWords {
		h = fam.Round(padded[i:i+sha256BlockWords], h)
	}
	return h[:fam.Size()/32]
}
