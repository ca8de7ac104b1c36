package keccak

const (
	// rate256 is the sponge rate for Keccak-256 in bytes: (1600 - 2*256) / 8.
	rate256 = Rate256 / 8
)

// Sum256 computes the pre-standard Keccak-256 hash of data, as used by
// Ethereum. It differs from SHA3-256 only in the delimiter (0x01, not 0x06).
func Sum256(data []byte) [32]byte {
	var h Hasher
	h.Write(data)
	return h.Sum256()
}

// Hasher is a streaming Keccak-256 hasher over byte slices. The zero value
// is ready to use and needs no heap allocation.
type Hasher struct {
	state    State
	buf      [rate256]byte
	absorbed int
}

// Reset resets the hasher to its initial state.
func (h *Hasher) Reset() {
	h.state = State{}
	h.absorbed = 0
}

// Write absorbs data into the hasher.
func (h *Hasher) Write(p []byte) {
	if h.absorbed > 0 {
		n := copy(h.buf[h.absorbed:rate256], p)
		h.absorbed += n
		p = p[n:]
		if h.absorbed == rate256 {
			xorIn(&h.state, h.buf[:])
			keccakF1600(&h.state)
			h.absorbed = 0
		}
	}

	for len(p) >= rate256 {
		xorIn(&h.state, p[:rate256])
		keccakF1600(&h.state)
		p = p[rate256:]
	}

	if len(p) > 0 {
		h.absorbed = copy(h.buf[:], p)
	}
}

// Sum256 finalizes and returns the 32-byte Keccak-256 digest.
// Does not modify the hasher state.
func (h *Hasher) Sum256() [32]byte {
	s := h.state
	var last [rate256]byte
	copy(last[:], h.buf[:h.absorbed])
	last[h.absorbed] ^= DelimKeccak
	last[rate256-1] ^= 0x80
	xorIn(&s, last[:])
	keccakF1600(&s)
	return squeeze256(&s)
}

func squeeze256(s *State) [32]byte {
	var out [32]byte
	for i := 0; i < 4; i++ {
		putLE64(out[8*i:], s[i][0])
	}
	return out
}

// xorIn XORs data into the leading lanes of s, 8 bytes at a time.
func xorIn(s *State, data []byte) {
	n := len(data) >> 3
	for i := 0; i < n; i++ {
		s[i%5][i/5] ^= le64(data[8*i:])
	}
	// Handle remaining bytes (< 8).
	for i := n << 3; i < len(data); i++ {
		lane := i >> 3
		s[lane%5][lane/5] ^= uint64(data[i]) << (8 * (i & 7))
	}
}

// le64 reads a little-endian uint64 from at least 8 bytes.
func le64(b []byte) uint64 {
	_ = b[7]
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}

func putLE64(b []byte, v uint64) {
	_ = b[7]
	b[0], b[1], b[2], b[3] = byte(v), byte(v>>8), byte(v>>16), byte(v>>24)
	b[4], b[5], b[6], b[7] = byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56)
}
