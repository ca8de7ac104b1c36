package packed

import (
	"strings"

	"github.com/pkg/errors"
)

// Format names an external representation of a bit string.
type Format int

const (
	FormatText Format = iota + 1
	FormatHex
	FormatB64
	FormatBytes
	FormatByteSlice
	FormatBuffer
)

var formatNames = map[Format]string{
	FormatText:      "TEXT",
	FormatHex:       "HEX",
	FormatB64:       "B64",
	FormatBytes:     "BYTES",
	FormatByteSlice: "UINT8ARRAY",
	FormatBuffer:    "ARRAYBUFFER",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	for f, name := range formatNames {
		if strings.EqualFold(name, s) {
			return f, nil
		}
	}
	return 0, errors.Errorf("format must be HEX, TEXT, B64, BYTES, ARRAYBUFFER, or UINT8ARRAY, got %q", s)
}

// Encoding is the Unicode transformation applied to TEXT input.
type Encoding int

const (
	UTF8 Encoding = iota
	UTF16BE
	UTF16LE
)

var encodingNames = map[Encoding]string{
	UTF8:    "UTF8",
	UTF16BE: "UTF16BE",
	UTF16LE: "UTF16LE",
}

func (e Encoding) String() string {
	if name, ok := encodingNames[e]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseEncoding resolves an encoding name, case-insensitively. The empty
// string selects UTF8.
func ParseEncoding(s string) (Encoding, error) {
	if s == "" {
		return UTF8, nil
	}
	for e, name := range encodingNames {
		if strings.EqualFold(name, s) {
			return e, nil
		}
	}
	return 0, errors.Errorf("encoding must be UTF8, UTF16BE, or UTF16LE, got %q", s)
}
