package streamhash

import (
	"bytes"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Giulio2002/streamhash/internal/keccak"
	"github.com/Giulio2002/streamhash/internal/packed"
)

// Hash is an incremental digest or MAC computation. Reading a digest does
// not consume it: Update may be called again afterwards. A Hash is not safe
// for concurrent use.
type Hash struct {
	variant Variant
	spec    variantSpec
	eng     engine
	log     *zap.Logger
}

// New returns a Hash for variant whose Update input is in inputFormat.
func New(variant Variant, inputFormat Format, opts ...Option) (*Hash, error) {
	vs, ok := variantSpecs[variant]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedVariant, "%q", string(variant))
	}
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}
	log := cfg.logger.With(zap.String("variant", string(variant)))

	if cfg.numRounds != 1 {
		switch {
		case cfg.hmacKey != nil || cfg.kmacKey != nil:
			return nil, errors.Wrap(ErrConfiguration, "cannot set numRounds with MAC")
		case vs.cshake:
			return nil, errors.Wrap(ErrConfiguration, "cannot set numRounds for CSHAKE variants")
		}
	}

	eng, err := newEngine(variant, vs, inputFormat, cfg)
	if err != nil {
		log.Debug("construction failed", zap.Error(err))
		return nil, err
	}
	h := &Hash{variant: variant, spec: vs, eng: eng, log: log}
	if cfg.hmacKey != nil {
		if err := h.setHMACKey(*cfg.hmacKey); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// Variant returns the hash variant.
func (h *Hash) Variant() Variant { return h.variant }

// BlockSize returns the block size (or sponge rate) in bytes.
func (h *Hash) BlockSize() int { return h.spec.blockSize >> 3 }

// Size returns the digest size in bytes, or 0 if the caller chooses the
// output length.
func (h *Hash) Size() int { return h.spec.outputSize >> 3 }

// Update appends input, encoded in the Hash's input format.
func (h *Hash) Update(input []byte) error { return h.eng.Update(input) }

// UpdateString appends s, encoded in the Hash's input format.
func (h *Hash) UpdateString(s string) error { return h.eng.Update([]byte(s)) }

// Write implements io.Writer on top of Update.
func (h *Hash) Write(p []byte) (int, error) {
	if err := h.eng.Update(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// GetHash returns the digest rendered as FormatHex, FormatB64 or
// FormatBytes. If a MAC key is set the MAC is returned instead.
func (h *Hash) GetHash(format Format, opts ...OutputOption) (string, error) {
	words, n, oc, err := h.digest(opts)
	if err != nil {
		return "", err
	}
	return h.render(format, words, n, oc)
}

// GetHashBytes returns the digest as a byte slice.
func (h *Hash) GetHashBytes(opts ...OutputOption) ([]byte, error) {
	words, n, _, err := h.digest(opts)
	if err != nil {
		return nil, err
	}
	return packed.ToBytes(words, n, h.spec.endian), nil
}

// GetHashBuffer returns the digest in a new buffer.
func (h *Hash) GetHashBuffer(opts ...OutputOption) (*bytes.Buffer, error) {
	words, n, _, err := h.digest(opts)
	if err != nil {
		return nil, err
	}
	return packed.ToBuffer(words, n, h.spec.endian), nil
}

func (h *Hash) digest(opts []OutputOption) ([]uint32, int, outputConfig, error) {
	oc, err := resolveOutput(opts)
	if err != nil {
		return nil, 0, oc, err
	}
	words, n, err := h.eng.Digest(oc.outputLen)
	return words, n, oc, err
}

// SetHMACKey keys the hash for HMAC after construction. It must be called
// before Update.
//
// Deprecated: pass WithHMACKey to New.
func (h *Hash) SetHMACKey(key Input) error { return h.setHMACKey(key) }

func (h *Hash) setHMACKey(key Input) error {
	if !h.spec.hmac {
		err := errors.Wrapf(ErrState, "variant %s does not support HMAC", h.variant)
		h.log.Debug("rejected", zap.Error(err))
		return err
	}
	v, err := key.pack("hmacKey", h.spec.endian)
	if err != nil {
		h.log.Debug("rejected", zap.Error(err))
		return err
	}
	return h.eng.SetHMACKey(v)
}

// GetHMAC returns the HMAC rendered as FormatHex, FormatB64 or FormatBytes.
// Output length options are ignored.
func (h *Hash) GetHMAC(format Format, opts ...OutputOption) (string, error) {
	oc, err := resolveOutput(opts)
	if err != nil {
		return "", err
	}
	words, n, err := h.eng.HMAC()
	if err != nil {
		return "", err
	}
	return h.render(format, words, n, oc)
}

// GetHMACBytes returns the HMAC as a byte slice.
func (h *Hash) GetHMACBytes() ([]byte, error) {
	words, n, err := h.eng.HMAC()
	if err != nil {
		return nil, err
	}
	return packed.ToBytes(words, n, h.spec.endian), nil
}

func (h *Hash) render(format Format, words []uint32, n int, oc outputConfig) (string, error) {
	switch format {
	case FormatHex:
		return packed.ToHex(words, n, h.spec.endian, oc.upper), nil
	case FormatB64:
		return packed.ToBase64(words, n, h.spec.endian, oc.b64Pad), nil
	case FormatBytes:
		return packed.ToRaw(words, n, h.spec.endian), nil
	default:
		return "", errors.Wrapf(ErrConfiguration, "format must be HEX, B64, or BYTES, got %v", format)
	}
}

// Clone returns an independent copy of h, including any MAC key.
func (h *Hash) Clone() *Hash {
	c := *h
	c.eng = h.eng.fork()
	return &c
}

// Sum is a one-shot digest of raw bytes. Variable-length variants need
// WithOutputLen; KMAC needs a key and cannot be used here.
func Sum(variant Variant, data []byte, opts ...OutputOption) ([]byte, error) {
	if variant == Keccak256 {
		if _, err := resolveOutput(opts); err != nil {
			return nil, err
		}
		d := keccak.Sum256(data)
		return d[:], nil
	}
	h, err := New(variant, FormatByteSlice)
	if err != nil {
		return nil, err
	}
	if err := h.Update(data); err != nil {
		return nil, err
	}
	return h.GetHashBytes(opts...)
}
