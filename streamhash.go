// Package streamhash computes SHA-1, SHA-2, SHA-3, SHAKE, cSHAKE and KMAC
// digests (and HMACs over the fixed-length families) through one incremental
// API. Input may arrive as text, hex, base64 or raw bytes; digests are
// returned in any of the same representations.
//
//	h, err := streamhash.New(streamhash.SHA256, streamhash.FormatText)
//	if err != nil { ... }
//	_ = h.UpdateString("abc")
//	digest, err := h.GetHash(streamhash.FormatHex)
package streamhash

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/Giulio2002/streamhash/internal/packed"
)

// Variant names a hash construction.
type Variant string

const (
	SHA1      Variant = "SHA-1"
	SHA224    Variant = "SHA-224"
	SHA256    Variant = "SHA-256"
	SHA384    Variant = "SHA-384"
	SHA512    Variant = "SHA-512"
	SHA3_224  Variant = "SHA3-224"
	SHA3_256  Variant = "SHA3-256"
	SHA3_384  Variant = "SHA3-384"
	SHA3_512  Variant = "SHA3-512"
	SHAKE128  Variant = "SHAKE128"
	SHAKE256  Variant = "SHAKE256"
	CSHAKE128 Variant = "CSHAKE128"
	CSHAKE256 Variant = "CSHAKE256"
	KMAC128   Variant = "KMAC128"
	KMAC256   Variant = "KMAC256"
	// Keccak256 is the pre-standard Keccak used by Ethereum. It is SHA3-256
	// with the original 0x01 padding.
	Keccak256 Variant = "KECCAK-256"
)

// Variants lists every supported variant.
var Variants = []Variant{
	SHA1, SHA224, SHA256, SHA384, SHA512,
	SHA3_224, SHA3_256, SHA3_384, SHA3_512,
	SHAKE128, SHAKE256, CSHAKE128, CSHAKE256, KMAC128, KMAC256,
	Keccak256,
}

func (v Variant) String() string { return string(v) }

// ParseVariant resolves a variant name, ignoring case.
func ParseVariant(s string) (Variant, error) {
	v := Variant(strings.ToUpper(s))
	if _, ok := variantSpecs[v]; !ok {
		return "", errors.Wrapf(ErrUnsupportedVariant, "%q", s)
	}
	return v, nil
}

// Format is an external representation of input or output data.
type Format = packed.Format

const (
	FormatText      = packed.FormatText
	FormatHex       = packed.FormatHex
	FormatB64       = packed.FormatB64
	FormatBytes     = packed.FormatBytes
	FormatByteSlice = packed.FormatByteSlice
	FormatBuffer    = packed.FormatBuffer
)

// Encoding is the character encoding applied to FormatText input.
type Encoding = packed.Encoding

const (
	UTF8    = packed.UTF8
	UTF16BE = packed.UTF16BE
	UTF16LE = packed.UTF16LE
)

// ParseFormat resolves a format name such as "HEX" or "UINT8ARRAY".
func ParseFormat(s string) (Format, error) {
	f, err := packed.ParseFormat(s)
	if err != nil {
		return 0, errors.Wrapf(ErrConfiguration, "%v", err)
	}
	return f, nil
}

// ParseEncoding resolves an encoding name such as "UTF16BE". The empty
// string is UTF8.
func ParseEncoding(s string) (Encoding, error) {
	e, err := packed.ParseEncoding(s)
	if err != nil {
		return 0, errors.Wrapf(ErrConfiguration, "%v", err)
	}
	return e, nil
}
