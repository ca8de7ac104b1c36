package packed

import (
	"bytes"
	"strings"
)

const hexTab = "0123456789abcdef"

// ToHex renders the first bitLen/8 bytes of words as lowercase hex, or
// uppercase when upper is set.
func ToHex(words []uint32, bitLen int, mod EndianMod, upper bool) string {
	n := bitLen / 8
	var sb strings.Builder
	sb.Grow(2 * n)
	for i := 0; i < n; i++ {
		b := ByteAt(words, i, mod)
		sb.WriteByte(hexTab[b>>4])
		sb.WriteByte(hexTab[b&0xf])
	}
	if upper {
		return strings.ToUpper(sb.String())
	}
	return sb.String()
}

// ToBase64 renders the first bitLen/8 bytes of words as standard base64.
// pad replaces each padding position and may be empty.
func ToBase64(words []uint32, bitLen int, mod EndianMod, pad string) string {
	n := bitLen / 8
	var sb strings.Builder
	for i := 0; i < n; i += 3 {
		var triplet uint32
		for j := 0; j < 3; j++ {
			if i+j < n {
				triplet |= uint32(ByteAt(words, i+j, mod)) << (16 - 8*j)
			}
		}
		for j := 0; j < 4; j++ {
			if i*8+j*6 <= bitLen {
				sb.WriteByte(b64Tab[(triplet>>(6*(3-j)))&0x3f])
			} else {
				sb.WriteString(pad)
			}
		}
	}
	return sb.String()
}

// ToRaw renders the first bitLen/8 bytes of words as a raw byte string.
func ToRaw(words []uint32, bitLen int, mod EndianMod) string {
	return string(ToBytes(words, bitLen, mod))
}

// ToBytes returns the first bitLen/8 bytes of words.
func ToBytes(words []uint32, bitLen int, mod EndianMod) []byte {
	out := make([]byte, bitLen/8)
	for i := range out {
		out[i] = ByteAt(words, i, mod)
	}
	return out
}

// ToBuffer returns the first bitLen/8 bytes of words in a fresh buffer.
func ToBuffer(words []uint32, bitLen int, mod EndianMod) *bytes.Buffer {
	return bytes.NewBuffer(ToBytes(words, bitLen, mod))
}
