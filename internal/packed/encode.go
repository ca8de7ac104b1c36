package packed

import (
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"
)

const b64Tab = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// Converter packs input after the bits already held in existing. The words
// of existing may be reused.
type Converter func(input []byte, existing Value) (Value, error)

// NewConverter returns the converter for inputs of the given format. enc is
// only consulted for FormatText.
func NewConverter(format Format, enc Encoding, mod EndianMod) (Converter, error) {
	switch format {
	case FormatText:
		return func(in []byte, existing Value) (Value, error) { return Text(in, enc, existing, mod) }, nil
	case FormatHex:
		return func(in []byte, existing Value) (Value, error) { return Hex(in, existing, mod) }, nil
	case FormatB64:
		return func(in []byte, existing Value) (Value, error) { return Base64(in, existing, mod) }, nil
	case FormatBytes, FormatByteSlice, FormatBuffer:
		return func(in []byte, existing Value) (Value, error) { return Raw(in, existing, mod), nil }, nil
	default:
		return nil, errors.Errorf("format must be HEX, TEXT, B64, BYTES, ARRAYBUFFER, or UINT8ARRAY, got %v", format)
	}
}

// Text packs a UTF-8 string after transcoding it to enc. Supplementary
// plane runes become a single 4-byte sequence in UTF-8 and a surrogate pair
// in UTF-16.
//
// UTF-16 output is placed one byte at a time. Callers only ever append
// UTF-16 text to values that came from UTF-16 text, so existing always holds
// an even number of bytes and code units never straddle the placement.
func Text(s []byte, enc Encoding, existing Value, mod EndianMod) (Value, error) {
	switch enc {
	case UTF8:
		return appendBytes(existing, s, mod), nil
	case UTF16BE, UTF16LE:
		order := unicode.BigEndian
		if enc == UTF16LE {
			order = unicode.LittleEndian
		}
		b, err := unicode.UTF16(order, unicode.IgnoreBOM).NewEncoder().Bytes(s)
		if err != nil {
			return Value{}, errors.Wrapf(ErrInputFormat, "cannot encode text as %v: %v", enc, err)
		}
		return appendBytes(existing, b, mod), nil
	default:
		return Value{}, errors.Errorf("encoding must be UTF8, UTF16BE, or UTF16LE, got %v", enc)
	}
}

// Hex packs a hexadecimal string. Its length must be even.
func Hex(s []byte, existing Value, mod EndianMod) (Value, error) {
	if len(s)%2 != 0 {
		return Value{}, errors.Wrap(ErrInputFormat, "string of HEX type must be in byte increments")
	}
	out := make([]byte, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		hi, ok1 := fromHexChar(s[i])
		lo, ok2 := fromHexChar(s[i+1])
		if !ok1 || !ok2 {
			return Value{}, errors.Wrapf(ErrInputFormat, "string of HEX type contains invalid characters at offset %d", i)
		}
		out[i/2] = hi<<4 | lo
	}
	return appendBytes(existing, out, mod), nil
}

func fromHexChar(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Base64 packs a standard-alphabet base64 string. Padding is optional but
// may only appear after all content characters.
func Base64(s []byte, existing Value, mod EndianMod) (Value, error) {
	content := make([]byte, 0, len(s))
	firstEqual := -1
	for i, c := range s {
		switch {
		case c == '=':
			if firstEqual < 0 {
				firstEqual = i
			}
		case b64Index(c) >= 0:
			content = append(content, c)
		default:
			return Value{}, errors.Wrapf(ErrInputFormat, "invalid character %q in base-64 string", c)
		}
	}
	if firstEqual >= 0 && firstEqual < len(content) {
		return Value{}, errors.Wrap(ErrInputFormat, "invalid '=' found in base-64 string")
	}

	out := make([]byte, 0, len(content)*3/4+2)
	for i := 0; i < len(content); i += 4 {
		part := content[i:min(i+4, len(content))]
		var tmp uint32
		for j, c := range part {
			tmp |= uint32(b64Index(c)) << (18 - 6*j)
		}
		// n characters carry n-1 whole bytes.
		for j := 0; j < len(part)-1; j++ {
			out = append(out, byte(tmp>>(16-8*j)))
		}
	}
	return appendBytes(existing, out, mod), nil
}

func b64Index(c byte) int {
	switch {
	case 'A' <= c && c <= 'Z':
		return int(c - 'A')
	case 'a' <= c && c <= 'z':
		return int(c-'a') + 26
	case '0' <= c && c <= '9':
		return int(c-'0') + 52
	case c == '+':
		return 62
	case c == '/':
		return 63
	}
	return -1
}

// Raw packs bytes unchanged.
func Raw(b []byte, existing Value, mod EndianMod) Value {
	return appendBytes(existing, b, mod)
}
