package streamhash

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Giulio2002/streamhash/internal/packed"
)

// Input is a key or string parameter together with its representation.
// Encoding is only consulted for FormatText.
type Input struct {
	Value    []byte
	Format   Format
	Encoding Encoding
}

// TextInput returns s as UTF-8 text.
func TextInput(s string) Input { return Input{Value: []byte(s), Format: FormatText} }

// HexInput returns a hex-encoded input.
func HexInput(s string) Input { return Input{Value: []byte(s), Format: FormatHex} }

// BytesInput returns a raw byte input.
func BytesInput(b []byte) Input { return Input{Value: b, Format: FormatByteSlice} }

func (in Input) pack(name string, mod packed.EndianMod) (packed.Value, error) {
	conv, err := packed.NewConverter(in.Format, in.Encoding, mod)
	if err != nil {
		return packed.Value{}, errors.Wrapf(ErrConfiguration, "%s must include a value and format: %v", name, err)
	}
	return conv(in.Value, packed.Value{})
}

type config struct {
	encoding      Encoding
	numRounds     int
	hmacKey       *Input
	kmacKey       *Input
	customization *Input
	funcName      *Input
	logger        *zap.Logger
}

func defaultConfig() *config {
	return &config{
		encoding:  UTF8,
		numRounds: 1,
		logger:    zap.NewNop(),
	}
}

// Option configures a Hash at construction.
type Option func(*config)

// WithEncoding sets the character encoding of FormatText input.
func WithEncoding(enc Encoding) Option {
	return func(c *config) { c.encoding = enc }
}

// WithNumRounds hashes the digest again n-1 times, each round against a
// fresh state. It cannot be combined with a MAC key or cSHAKE.
func WithNumRounds(n int) Option {
	return func(c *config) { c.numRounds = n }
}

// WithHMACKey keys the hash for HMAC.
func WithHMACKey(key Input) Option {
	return func(c *config) { c.hmacKey = &key }
}

// WithKMACKey sets the KMAC key. Required for KMAC128 and KMAC256.
func WithKMACKey(key Input) Option {
	return func(c *config) { c.kmacKey = &key }
}

// WithCustomization sets the cSHAKE or KMAC customization string S.
func WithCustomization(s Input) Option {
	return func(c *config) { c.customization = &s }
}

// WithFuncName sets the cSHAKE function name N.
func WithFuncName(n Input) Option {
	return func(c *config) { c.funcName = &n }
}

// WithLogger sets the logger used for debug events. Key material and input
// data are never logged.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

type outputConfig struct {
	upper     bool
	b64Pad    string
	outputLen int
	shakeLen  int
}

// OutputOption configures how a digest is rendered.
type OutputOption func(*outputConfig)

func resolveOutput(opts []OutputOption) (outputConfig, error) {
	oc := outputConfig{b64Pad: "="}
	for _, o := range opts {
		o(&oc)
	}
	if oc.outputLen == 0 {
		oc.outputLen = oc.shakeLen
	}
	if oc.outputLen < 0 || oc.outputLen%8 != 0 {
		return oc, errors.Wrapf(ErrConfiguration, "output length must be a multiple of 8, got %d", oc.outputLen)
	}
	return oc, nil
}

// WithOutputUpper renders hex digests in upper case.
func WithOutputUpper() OutputOption {
	return func(oc *outputConfig) { oc.upper = true }
}

// WithB64Pad sets the base64 padding string. The default is "="; the empty
// string disables padding.
func WithB64Pad(pad string) OutputOption {
	return func(oc *outputConfig) { oc.b64Pad = pad }
}

// WithOutputLen sets the output length in bits for SHAKE, cSHAKE and KMAC.
// It must be a multiple of 8 and is ignored by fixed-length variants.
func WithOutputLen(bits int) OutputOption {
	return func(oc *outputConfig) { oc.outputLen = bits }
}

// WithShakeLen is the older name of WithOutputLen. WithOutputLen wins when
// both are given.
//
// Deprecated: use WithOutputLen.
func WithShakeLen(bits int) OutputOption {
	return func(oc *outputConfig) { oc.shakeLen = bits }
}
