package streamhash

import (
	"bytes"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/sha3"
)

// reference digests for the fixed-length variants.
var reference = map[Variant]func([]byte) []byte{
	SHA1:     func(b []byte) []byte { s := sha1.Sum(b); return s[:] },
	SHA224:   func(b []byte) []byte { s := sha256.Sum224(b); return s[:] },
	SHA256:   func(b []byte) []byte { s := sha256.Sum256(b); return s[:] },
	SHA384:   func(b []byte) []byte { s := sha512.Sum384(b); return s[:] },
	SHA512:   func(b []byte) []byte { s := sha512.Sum512(b); return s[:] },
	SHA3_224: func(b []byte) []byte { s := sha3.Sum224(b); return s[:] },
	SHA3_256: func(b []byte) []byte { s := sha3.Sum256(b); return s[:] },
	SHA3_384: func(b []byte) []byte { s := sha3.Sum384(b); return s[:] },
	SHA3_512: func(b []byte) []byte { s := sha3.Sum512(b); return s[:] },
	Keccak256: func(b []byte) []byte {
		h := sha3.NewLegacyKeccak256()
		h.Write(b)
		return h.Sum(nil)
	},
}

func data(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*131 + 17)
	}
	return b
}

func mustNew(t *testing.T, v Variant, f Format, opts ...Option) *Hash {
	t.Helper()
	h, err := New(v, f, append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)...)
	require.NoError(t, err)
	return h
}

func TestKnownVectors(t *testing.T) {
	tests := []struct {
		variant Variant
		input   string
		opts    []OutputOption
		want    string
	}{
		{SHA1, "abc", nil, "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{SHA1, "", nil, "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
		{SHA224, "abc", nil, "23097d223405d8228642a477bda255b32aadbce4bda0b3f7e36c9da7"},
		{SHA256, "abc", nil, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{SHA384, "abc", nil, "cb00753f45a35e8bb5a03d699ac65007272c32ab0eded1631a8b605a43ff5bed8086072ba1e7cc2358baeca134c825a7"},
		{SHA512, "abc", nil, "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"},
		{SHA3_256, "", nil, "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a"},
		{SHA3_256, "abc", nil, "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"},
		{SHAKE128, "", []OutputOption{WithOutputLen(256)}, "7f9c2ba4e88f827d616045507605853ed73b8093f6efbc88eb1a6eacfa66ef26"},
		{Keccak256, "", nil, "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"},
	}
	for _, tt := range tests {
		h := mustNew(t, tt.variant, FormatText)
		require.NoError(t, h.UpdateString(tt.input))
		got, err := h.GetHash(FormatHex, tt.opts...)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s(%q)", tt.variant, tt.input)
	}
}

func TestFixedVariantsAgainstReference(t *testing.T) {
	for v, ref := range reference {
		for _, n := range []int{0, 1, 55, 56, 63, 64, 65, 111, 112, 127, 128, 135, 136, 137, 300, 1000} {
			msg := data(n)
			got, err := Sum(v, msg)
			require.NoError(t, err)
			require.Equal(t, ref(msg), got, "%s len %d", v, n)
		}
	}
}

func TestSHAKEAgainstReference(t *testing.T) {
	msg := data(500)
	for _, outBytes := range []int{1, 16, 32, 168, 169, 400} {
		want := make([]byte, outBytes)
		sha3.ShakeSum128(want, msg)
		got, err := Sum(SHAKE128, msg, WithOutputLen(8*outBytes))
		require.NoError(t, err)
		assert.Equal(t, want, got)

		sha3.ShakeSum256(want, msg)
		got, err = Sum(SHAKE256, msg, WithShakeLen(8*outBytes))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestIncrementalEqualsOneShot(t *testing.T) {
	msg := data(260)
	for _, v := range Variants {
		if v == KMAC128 || v == KMAC256 {
			continue
		}
		whole, err := Sum(v, msg, WithOutputLen(264))
		require.NoError(t, err)
		for _, split := range []int{0, 1, 3, 63, 64, 65, 127, 128, 136, 168, 259, 260} {
			h := mustNew(t, v, FormatByteSlice)
			require.NoError(t, h.Update(msg[:split]))
			require.NoError(t, h.Update(msg[split:]))
			got, err := h.GetHashBytes(WithOutputLen(264))
			require.NoError(t, err)
			require.Equal(t, whole, got, "%s split at %d", v, split)
		}
	}
}

func TestInputFormatsAgree(t *testing.T) {
	inputs := []struct {
		format Format
		value  string
	}{
		{FormatText, "abc"},
		{FormatHex, "616263"},
		{FormatB64, "YWJj"},
		{FormatBytes, "abc"},
		{FormatByteSlice, "abc"},
		{FormatBuffer, "abc"},
	}
	for _, v := range []Variant{SHA256, SHA3_256} {
		want := reference[v]([]byte("abc"))
		for _, in := range inputs {
			h := mustNew(t, v, in.format)
			require.NoError(t, h.UpdateString(in.value))
			got, err := h.GetHashBytes()
			require.NoError(t, err)
			assert.Equal(t, want, got, "%s from %v", v, in.format)
		}
	}
}

func TestTextEncodings(t *testing.T) {
	tests := []struct {
		enc  Encoding
		text string
		raw  []byte
	}{
		{UTF8, "a\U0001F600", []byte{'a', 0xf0, 0x9f, 0x98, 0x80}},
		{UTF16BE, "ab", []byte{0, 'a', 0, 'b'}},
		{UTF16LE, "ab", []byte{'a', 0, 'b', 0}},
		{UTF16BE, "\U0001F600", []byte{0xd8, 0x3d, 0xde, 0x00}},
		{UTF16LE, "\U0001F600", []byte{0x3d, 0xd8, 0x00, 0xde}},
	}
	for _, tt := range tests {
		for _, v := range []Variant{SHA1, SHA3_512} {
			h := mustNew(t, v, FormatText, WithEncoding(tt.enc))
			require.NoError(t, h.UpdateString(tt.text))
			got, err := h.GetHashBytes()
			require.NoError(t, err)
			assert.Equal(t, reference[v](tt.raw), got, "%s %v %q", v, tt.enc, tt.text)
		}
	}
}

func TestOutputFormats(t *testing.T) {
	want := reference[SHA1]([]byte("abc"))
	h := mustNew(t, SHA1, FormatText)
	require.NoError(t, h.UpdateString("abc"))

	got, err := h.GetHash(FormatHex, WithOutputUpper())
	require.NoError(t, err)
	assert.Equal(t, strings.ToUpper(hex.EncodeToString(want)), got)

	got, err = h.GetHash(FormatB64)
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString(want), got)

	got, err = h.GetHash(FormatB64, WithB64Pad("#"))
	require.NoError(t, err)
	assert.Equal(t, strings.ReplaceAll(base64.StdEncoding.EncodeToString(want), "=", "#"), got)

	got, err = h.GetHash(FormatB64, WithB64Pad(""))
	require.NoError(t, err)
	assert.Equal(t, base64.RawStdEncoding.EncodeToString(want), got)

	got, err = h.GetHash(FormatBytes)
	require.NoError(t, err)
	assert.Equal(t, string(want), got)

	buf, err := h.GetHashBuffer()
	require.NoError(t, err)
	assert.Equal(t, want, buf.Bytes())

	_, err = h.GetHash(FormatText)
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestGetHashDoesNotConsume(t *testing.T) {
	h := mustNew(t, SHA512, FormatText)
	require.NoError(t, h.UpdateString("hello "))
	first, err := h.GetHashBytes()
	require.NoError(t, err)
	assert.Equal(t, reference[SHA512]([]byte("hello ")), first)

	require.NoError(t, h.UpdateString("world"))
	second, err := h.GetHashBytes()
	require.NoError(t, err)
	assert.Equal(t, reference[SHA512]([]byte("hello world")), second)
}

func TestNumRounds(t *testing.T) {
	for _, v := range []Variant{SHA1, SHA256, SHA384, SHA3_224, Keccak256} {
		h := mustNew(t, v, FormatText, WithNumRounds(3))
		require.NoError(t, h.UpdateString("abc"))
		got, err := h.GetHashBytes()
		require.NoError(t, err)
		ref := reference[v]
		assert.Equal(t, ref(ref(ref([]byte("abc")))), got, "%s", v)
	}
}

func TestNumRoundsSHAKE(t *testing.T) {
	for _, outBytes := range []int{3, 4, 5, 32} {
		h := mustNew(t, SHAKE256, FormatText, WithNumRounds(2))
		require.NoError(t, h.UpdateString("abc"))
		got, err := h.GetHashBytes(WithOutputLen(8 * outBytes))
		require.NoError(t, err)

		first := make([]byte, outBytes)
		sha3.ShakeSum256(first, []byte("abc"))
		want := make([]byte, outBytes)
		sha3.ShakeSum256(want, first)
		assert.Equal(t, want, got, "%d bytes", outBytes)
	}
}

func TestClone(t *testing.T) {
	h := mustNew(t, SHA3_384, FormatText)
	require.NoError(t, h.UpdateString("common "))
	c := h.Clone()
	require.NoError(t, h.UpdateString("a"))
	require.NoError(t, c.UpdateString("b"))

	a, err := h.GetHashBytes()
	require.NoError(t, err)
	b, err := c.GetHashBytes()
	require.NoError(t, err)
	assert.Equal(t, reference[SHA3_384]([]byte("common a")), a)
	assert.Equal(t, reference[SHA3_384]([]byte("common b")), b)
}

func TestWriter(t *testing.T) {
	msg := data(5000)
	h := mustNew(t, SHA224, FormatByteSlice)
	n, err := io.Copy(h, bytes.NewReader(msg))
	require.NoError(t, err)
	assert.Equal(t, int64(len(msg)), n)
	got, err := h.GetHashBytes()
	require.NoError(t, err)
	assert.Equal(t, reference[SHA224](msg), got)

	bad := mustNew(t, SHA224, FormatHex)
	_, err = bad.Write([]byte("xyz"))
	require.ErrorIs(t, err, ErrInputFormat)
}

func TestSizes(t *testing.T) {
	h := mustNew(t, SHA512, FormatText)
	assert.Equal(t, 128, h.BlockSize())
	assert.Equal(t, 64, h.Size())
	assert.Equal(t, SHA512, h.Variant())

	s := mustNew(t, SHAKE128, FormatText)
	assert.Equal(t, 168, s.BlockSize())
	assert.Zero(t, s.Size())
}

func TestParse(t *testing.T) {
	v, err := ParseVariant("sha3-256")
	require.NoError(t, err)
	assert.Equal(t, SHA3_256, v)
	for _, name := range Variants {
		got, err := ParseVariant(string(name))
		require.NoError(t, err)
		assert.Equal(t, name, got)
	}
	_, err = ParseVariant("MD5")
	require.ErrorIs(t, err, ErrUnsupportedVariant)

	f, err := ParseFormat("uint8array")
	require.NoError(t, err)
	assert.Equal(t, FormatByteSlice, f)
	_, err = ParseFormat("JSON")
	require.ErrorIs(t, err, ErrConfiguration)

	e, err := ParseEncoding("UTF16LE")
	require.NoError(t, err)
	assert.Equal(t, UTF16LE, e)
	_, err = ParseEncoding("latin1")
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestErrors(t *testing.T) {
	_, err := New("SHA-0", FormatText)
	require.ErrorIs(t, err, ErrUnsupportedVariant)

	_, err = New(SHA256, Format(0))
	require.ErrorIs(t, err, ErrConfiguration)

	_, err = New(SHA256, FormatText, WithNumRounds(0))
	require.ErrorIs(t, err, ErrConfiguration)

	_, err = New(SHA256, FormatText, WithNumRounds(2), WithHMACKey(TextInput("k")))
	require.ErrorIs(t, err, ErrConfiguration)

	_, err = New(CSHAKE128, FormatText, WithNumRounds(2))
	require.ErrorIs(t, err, ErrConfiguration)

	h := mustNew(t, SHAKE128, FormatText)
	_, err = h.GetHash(FormatHex)
	require.ErrorIs(t, err, ErrConfiguration)
	_, err = h.GetHash(FormatHex, WithOutputLen(12))
	require.ErrorIs(t, err, ErrConfiguration)
	_, err = h.GetHash(FormatHex, WithOutputLen(-8))
	require.ErrorIs(t, err, ErrConfiguration)

	// Fixed-length variants still validate the requested length.
	f := mustNew(t, SHA256, FormatText)
	_, err = f.GetHash(FormatHex, WithOutputLen(7))
	require.ErrorIs(t, err, ErrConfiguration)

	x := mustNew(t, SHA256, FormatHex)
	require.ErrorIs(t, x.UpdateString("abc"), ErrInputFormat)
	b := mustNew(t, SHA256, FormatB64)
	require.ErrorIs(t, b.UpdateString("YW=j"), ErrInputFormat)
}

func TestSumKeccak256MatchesStream(t *testing.T) {
	msg := data(1000)
	one, err := Sum(Keccak256, msg)
	require.NoError(t, err)

	h := mustNew(t, Keccak256, FormatByteSlice)
	require.NoError(t, h.Update(msg))
	streamed, err := h.GetHashBytes()
	require.NoError(t, err)
	assert.Equal(t, streamed, one)
}
